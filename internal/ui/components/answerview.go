// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabooung/regnav-tui/internal/answer"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// STRUCTURED ANSWER VIEW
// =============================================================================

// AnswerView renders a projected structured answer: per-question breakdown,
// the synthesized final answer, and a collapsible reference section with
// laws, precedents, and the glossary. The reasoning trace is never part of
// the render model, so it cannot appear here.
type AnswerView struct {
	theme    *styles.Theme
	width    int
	expanded bool
}

// NewAnswerView creates an answer view renderer.
func NewAnswerView(theme *styles.Theme) AnswerView {
	return AnswerView{theme: theme, width: 80}
}

// SetWidth sets the render width.
func (v *AnswerView) SetWidth(width int) {
	v.width = width
}

// SetExpanded controls whether the reference section is unfolded.
func (v *AnswerView) SetExpanded(expanded bool) {
	v.expanded = expanded
}

// Expanded reports whether the reference section is unfolded.
func (v AnswerView) Expanded() bool {
	return v.expanded
}

// Render renders the answer model. An empty model renders to "".
func (v AnswerView) Render(m answer.RenderModel) string {
	if m.IsEmpty() {
		return ""
	}

	width := v.width
	if width <= 0 {
		width = 80
	}
	bodyWidth := width - 6
	if bodyWidth < 30 {
		bodyWidth = 30
	}

	wrap := lipgloss.NewStyle().Width(bodyWidth)

	var sections []string

	// Per-question breakdown
	for _, item := range m.Breakdown {
		var sb strings.Builder
		sb.WriteString(v.theme.QuestionTitle.Render(item.Question))
		sb.WriteString("\n")
		sb.WriteString(wrap.Render(v.theme.AnswerBody.Render(item.Answer)))
		if item.LegalBasis != "" {
			sb.WriteString("\n")
			sb.WriteString(v.theme.LegalBasis.Render("근거: " + item.LegalBasis))
		}
		sections = append(sections, sb.String())
	}

	// Final answer
	if m.FinalAnswer != "" {
		var sb strings.Builder
		sb.WriteString(v.theme.FinalAnswerHead.Render("종합 답변"))
		sb.WriteString("\n")
		box := v.theme.FinalAnswerBox.Width(bodyWidth)
		sb.WriteString(box.Render(m.FinalAnswer))
		sections = append(sections, sb.String())
	}

	// Collapsible references
	if m.HasReferences() {
		sections = append(sections, v.renderReferences(m, bodyWidth))
	}

	return strings.Join(sections, "\n\n")
}

// renderReferences renders the reference section header plus, when expanded,
// the laws, precedents, and glossary lists.
func (v AnswerView) renderReferences(m answer.RenderModel, bodyWidth int) string {
	var sb strings.Builder

	marker := "+"
	if v.expanded {
		marker = "-"
	}
	counts := fmt.Sprintf(" (법률 %d개, 판례 %d개, 용어 %d개)",
		len(m.ReferencedLaws), len(m.Precedents), len(m.Terms))
	sb.WriteString(v.theme.ReferenceHead.Render("[" + marker + "] 관련 참조 정보"))
	sb.WriteString(v.theme.ReferenceItem.Render(counts))

	if !v.expanded {
		sb.WriteString("\n")
		sb.WriteString(v.theme.ReferenceItem.Render("    Ctrl+E 펼치기"))
		return sb.String()
	}

	wrap := lipgloss.NewStyle().Width(bodyWidth)

	if len(m.ReferencedLaws) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(v.theme.ReferenceTitle.Render("참조 법률"))
		for _, law := range m.ReferencedLaws {
			sb.WriteString("\n")
			sb.WriteString(wrap.Render(v.theme.ReferenceItem.Render("  • " + law)))
		}
	}

	if len(m.Precedents) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(v.theme.ReferenceTitle.Render("참조 판례"))
		for _, p := range m.Precedents {
			sb.WriteString("\n")
			sb.WriteString(wrap.Render(v.theme.ReferenceItem.Render("  • " + p)))
		}
	}

	if len(m.Terms) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(v.theme.ReferenceTitle.Render("법률 용어 설명"))
		for _, term := range m.Terms {
			sb.WriteString("\n")
			sb.WriteString(v.theme.TermName.Render("  " + term.Name))
			sb.WriteString("\n")
			sb.WriteString(wrap.Render(v.theme.TermDefinition.Render(term.Definition)))
		}
	}

	return sb.String()
}
