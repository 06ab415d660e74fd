// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// RAW PAYLOAD VIEW
// =============================================================================

// RawJSON renders the raw structured payload with syntax highlighting and
// line numbers. This is the developer-facing alternative to the answer view,
// toggled from the chat screen.
type RawJSON struct {
	theme *styles.Theme
	width int
}

// NewRawJSON creates a raw payload renderer.
func NewRawJSON(theme *styles.Theme) RawJSON {
	return RawJSON{theme: theme, width: 80}
}

// SetWidth sets the render width.
func (r *RawJSON) SetWidth(width int) {
	r.width = width
}

// Render renders the raw JSON with a language badge, indentation, chroma
// highlighting, and line numbers. Invalid JSON is shown as-is.
func (r RawJSON) Render(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	pretty := indentJSON(raw)
	highlighted := highlightJSON(pretty)
	lines := strings.Split(highlighted, "\n")

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	var renderedLines []string
	for i, line := range lines {
		lineNum := lineNumStyle.Render(strconv.Itoa(i + 1))
		renderedLines = append(renderedLines, lineNum+line)
	}

	badge := r.theme.RawBadge.Render("json")
	content := badge + "\n" + strings.Join(renderedLines, "\n")

	maxWidth := r.width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return r.theme.RawBlock.MaxWidth(maxWidth).Render(content)
}

// indentJSON pretty-prints raw JSON, returning the input unchanged when it
// does not parse.
func indentJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(raw)), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

// highlightJSON applies chroma terminal highlighting to JSON text. Falls
// back to the plain text when tokenizing or formatting fails.
func highlightJSON(code string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}
