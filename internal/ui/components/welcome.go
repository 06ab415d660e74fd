// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// examplePrompts are the canned questions offered on the empty screen.
// Pressing the matching number key inserts the prompt into the input.
var examplePrompts = []string{
	"최근 개정된 금융 규제 알려줘",
	"개인정보보호법 주요 조항 설명해줘",
	"환경 영향 평가법 의무 대상은?",
	"디지털 자산 기본법 시행 일정이 어떻게 되나요?",
}

// usageTips are shown under the banner on the empty screen.
var usageTips = []string{
	"구체적인 질문이 효과적입니다",
	"법률명과 시행일을 포함하여 질문하면 더 정확한 답변을 받을 수 있습니다",
	"처음 질문 후에 후속 질문도 자유롭게 가능합니다",
}

// ExamplePrompts returns the example prompts in display order.
func ExamplePrompts() []string {
	out := make([]string, len(examplePrompts))
	copy(out, examplePrompts)
	return out
}

// ExamplePrompt returns the example at the given 1-based position, or ""
// when the position is out of range.
func ExamplePrompt(n int) string {
	if n < 1 || n > len(examplePrompts) {
		return ""
	}
	return examplePrompts[n-1]
}

// Welcome renders the empty-conversation state: product banner, example
// prompts selectable by number key, usage tips, and the brand footer.
type Welcome struct {
	theme *styles.Theme
	width int
}

// NewWelcome creates a welcome screen renderer.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{theme: theme, width: 80}
}

// SetWidth sets the render width.
func (w *Welcome) SetWidth(width int) {
	w.width = width
}

// Render renders the welcome screen.
func (w Welcome) Render() string {
	width := w.width
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 8
	if contentWidth < 40 {
		contentWidth = 40
	}
	if contentWidth > 80 {
		contentWidth = 80
	}

	var sb strings.Builder

	center := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(contentWidth)

	sb.WriteString(center.Render(w.theme.WelcomeLogo.Render("규제 정보 AI 어시스턴트")))
	sb.WriteString("\n\n")
	sb.WriteString(center.Render(w.theme.WelcomeSubtitle.Render("규제 관련 질문을 입력하시면 신속하고 정확하게 답변해 드립니다")))
	sb.WriteString("\n\n")

	sep := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Align(lipgloss.Center).
		Width(contentWidth)
	sb.WriteString(sep.Render(strings.Repeat("-", 40)))
	sb.WriteString("\n\n")

	sb.WriteString(w.theme.WelcomeTipHead.Render("다음과 같은 질문을 시도해보세요"))
	sb.WriteString("\n\n")

	for i, example := range examplePrompts {
		line := fmt.Sprintf("  %s  %s",
			w.theme.WelcomeExampleNo.Render(fmt.Sprintf("[%d]", i+1)),
			w.theme.WelcomeExample.Render(example))
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(w.theme.WelcomeTipHead.Render("사용 팁"))
	sb.WriteString("\n\n")

	for _, tip := range usageTips {
		sb.WriteString("  " + w.theme.WelcomeTip.Render("• "+tip))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	footer := w.theme.WelcomeFooter.Render("Reg Navigator - 규제 정보 검색 및 분석 AI")
	sb.WriteString(center.Render(footer))
	sb.WriteString("\n")
	sb.WriteString(center.Render(w.theme.WelcomeTip.Render("1-4 예시 질문 | Ctrl+O 설정 | Ctrl+Q 종료")))

	container := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width-4).
		Padding(2, 0)

	return container.Render(sb.String())
}
