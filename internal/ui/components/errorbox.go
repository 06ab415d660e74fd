// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabooung/regnav-tui/internal/ragapi"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BOX
// =============================================================================

// ErrorBox is a styled error display with optional suggestions.
type ErrorBox struct {
	theme *styles.Theme
	width int

	Title       string
	Message     string
	Suggestions []string
}

// NewErrorBox creates an error box with title and message.
func NewErrorBox(theme *styles.Theme, title, message string) ErrorBox {
	return ErrorBox{theme: theme, width: 80, Title: title, Message: message}
}

// genericErrorText is the only message body a failed send may show.
// Transport detail (addresses, dial errors, status text) stays on the
// stderr/log path and never renders in the chat.
const genericErrorText = "요청을 처리하지 못했습니다. 잠시 후 다시 시도해주세요."

// NewErrorBoxFromErr creates an error box classified from a client error.
// The suggestions depend on the error type so the user gets an actionable
// hint; the underlying error text itself is never shown.
func NewErrorBoxFromErr(theme *styles.Theme, err error) ErrorBox {
	box := NewErrorBox(theme, "오류", genericErrorText)

	switch {
	case ragapi.IsUnreachable(err):
		box.Title = "서버에 연결할 수 없습니다"
		box.Suggestions = []string{
			"RAG 백엔드가 실행 중인지 확인하세요",
			"base_url 설정을 확인하세요",
			"모의 모드로 전환: REGNAV_MOCK=1",
		}
	case ragapi.IsTimeout(err):
		box.Title = "응답 시간 초과"
		box.Suggestions = []string{
			"잠시 후 다시 시도하세요",
			"timeout_secs 설정을 늘려보세요",
		}
	}

	return box
}

// SetWidth sets the render width.
func (e *ErrorBox) SetWidth(width int) {
	e.width = width
}

// Render renders the error box.
func (e ErrorBox) Render() string {
	var sb strings.Builder

	sb.WriteString(e.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " " + e.Title))
	sb.WriteString("\n")
	sb.WriteString(e.theme.ErrorMessage.Render(e.Message))

	for _, s := range e.Suggestions {
		sb.WriteString("\n")
		sb.WriteString(e.theme.ErrorTip.Render("  - " + s))
	}

	maxWidth := e.width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Rose).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(sb.String())
}
