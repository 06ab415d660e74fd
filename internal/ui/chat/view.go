// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains all rendering logic for the chat screen: the header,
// the message area, the input area, the status bar, and the overlays.
package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabooung/regnav-tui/internal/answer"
	"github.com/yabooung/regnav-tui/internal/model"
	"github.com/yabooung/regnav-tui/internal/ui/components"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat screen.
// Layout: header (1 line) + messages (viewport) + input (3 lines) + status (1 line).
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.settings.IsVisible() {
		return m.settings.View()
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()
	input := m.renderInput()
	status := m.renderStatusBar()

	availableHeight := m.height - lipgloss.Height(header) - lipgloss.Height(input) - lipgloss.Height(status)
	if availableHeight < 1 {
		availableHeight = 1
	}

	messages := m.viewport.View()
	if lipgloss.Height(messages) != availableHeight {
		messages = lipgloss.NewStyle().
			Height(availableHeight).
			MaxHeight(availableHeight).
			Width(m.width).
			Render(messages)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		messages,
		input,
		status,
	)
}

// =============================================================================
// HEADER
// =============================================================================

// renderHeader renders the title bar with brand, model name, and state icon.
func (m Model) renderHeader() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	brand := m.theme.HeaderBrand.Render("Reg Navigator")
	subtitle := m.theme.HeaderSubtitle.Render(" | 규제 정보 AI 어시스턴트")
	modelInfo := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(" | " + m.cfg.Model.Name)

	var statusIcon string
	switch m.state {
	case StateAwaiting:
		statusIcon = lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render(" " + styles.StatusIndicators.Pending)
	default:
		statusIcon = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Render(" " + styles.StatusIndicators.Active)
	}

	return m.theme.Header.
		Width(width).
		Render(brand + subtitle + modelInfo + statusIcon)
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the conversation, or the welcome screen when it is
// empty. The thinking indicator and the error box render at the bottom.
func (m *Model) renderMessages() string {
	if m.conversation.IsEmpty() {
		return m.welcome.Render()
	}

	var parts []string
	messages := m.conversation.History()

	for _, msg := range messages {
		parts = append(parts, m.renderMessage(msg))
	}

	if m.state == StateAwaiting {
		parts = append(parts, m.renderThinking())
	}

	if m.lastError != nil {
		parts = append(parts, m.lastError.Render())
	}

	return strings.Join(parts, "\n\n")
}

// renderMessage renders a single message based on its role.
func (m *Model) renderMessage(msg *model.Message) string {
	switch msg.Role {
	case model.RoleUser:
		return m.renderUserMessage(msg)
	case model.RoleBot:
		return m.renderBotMessage(msg)
	case model.RoleSystem:
		return m.renderSystemMessage(msg)
	default:
		return msg.Content
	}
}

// renderUserMessage renders a right-aligned user bubble.
func (m *Model) renderUserMessage(msg *model.Message) string {
	maxWidth := m.bubbleWidth()

	bubble := m.theme.UserBubble.MaxWidth(maxWidth).Render(msg.Content)

	if m.cfg.UI.ShowTimestamps {
		ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
		bubble = lipgloss.JoinVertical(lipgloss.Right, bubble, ts)
	}

	return lipgloss.NewStyle().
		Width(m.contentWidth()).
		Align(lipgloss.Right).
		Render(bubble)
}

// renderBotMessage renders an assistant message. Structured payloads go
// through the answer view, or the raw view when toggled; errors and plain
// text render as-is.
func (m *Model) renderBotMessage(msg *model.Message) string {
	maxWidth := m.bubbleWidth()

	if msg.IsError {
		return m.theme.ErrorBubble.MaxWidth(maxWidth).Render(msg.Content)
	}

	parsed := answer.Parse(msg.Content, false)

	var body string
	switch parsed.Kind {
	case answer.KindStructured:
		if m.showRaw {
			if raw := answer.ExtractJSON(msg.Content); raw != "" {
				rv := components.NewRawJSON(m.theme)
				rv.SetWidth(maxWidth)
				return rv.Render(raw)
			}
		}

		av := components.NewAnswerView(m.theme)
		av.SetWidth(maxWidth)
		av.SetExpanded(m.refsExpanded)
		body = av.Render(answer.Project(parsed.Data))

		if parsed.PlainText != "" {
			body = parsed.PlainText + "\n\n" + body
		}
	default:
		body = parsed.Content
	}

	bubble := m.theme.BotBubble.MaxWidth(maxWidth).Render(body)

	if m.cfg.UI.ShowTimestamps {
		ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
		bubble = lipgloss.JoinVertical(lipgloss.Left, bubble, ts)
	}

	return bubble
}

// renderSystemMessage renders a centered system notice.
func (m *Model) renderSystemMessage(msg *model.Message) string {
	return lipgloss.NewStyle().
		Width(m.contentWidth()).
		Align(lipgloss.Center).
		Render(m.theme.SystemBubble.Render(msg.Content))
}

// renderThinking renders the spinner line shown while a turn is in flight.
func (m *Model) renderThinking() string {
	sp := m.spinner.View()
	text := m.theme.ThinkingText.Render("답변을 생성하는 중입니다")
	dots := m.theme.ThinkingDots.Render("...")

	var elapsed string
	if m.thinkingElapsed > 0 {
		elapsed = m.theme.ThinkingTime.Render(fmt.Sprintf(" (%.1fs)", m.thinkingElapsed.Seconds()))
	}

	return sp + " " + text + dots + elapsed
}

// =============================================================================
// INPUT AREA
// =============================================================================

// renderInput renders the input area: top border, input line, char count.
// Fixed at 3 lines to prevent layout shift while typing.
func (m Model) renderInput() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	borderColor := styles.FocusRing
	if m.state == StateAwaiting {
		borderColor = styles.OverlayDim
	}
	border := lipgloss.NewStyle().
		Foreground(borderColor).
		Render(strings.Repeat("─", width))

	var statusIndicator string
	if m.state == StateAwaiting {
		statusIndicator = lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render(" (응답 대기 중...)")
	}

	inputLineWidth := width - 4
	if inputLineWidth < 10 {
		inputLineWidth = 10
	}
	inputLine := lipgloss.NewStyle().
		Width(inputLineWidth).
		Render("  " + m.input.View() + statusIndicator)

	result := lipgloss.JoinVertical(
		lipgloss.Left,
		border,
		inputLine,
		m.renderCharCount(),
	)

	return lipgloss.NewStyle().
		Height(inputHeight).
		MaxHeight(inputHeight).
		Width(width).
		Render(result)
}

// renderCharCount renders the character count indicator.
func (m Model) renderCharCount() string {
	count := len([]rune(m.input.Value()))
	limit := m.input.CharLimit
	if limit <= 0 {
		limit = 1
	}

	style := m.theme.CharCount
	percent := float64(count) / float64(limit) * 100
	if percent >= 90 {
		style = m.theme.CharCountDanger
	} else if percent >= 75 {
		style = m.theme.CharCountWarning
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	countWidth := width - 4
	if countWidth < 10 {
		countWidth = 10
	}

	return lipgloss.NewStyle().
		Width(countWidth).
		Align(lipgloss.Right).
		Padding(0, 2).
		Render(style.Render(strconv.Itoa(count) + " / " + strconv.Itoa(limit)))
}

// =============================================================================
// STATUS BAR
// =============================================================================

// renderStatusBar renders the bottom status bar.
// Format: MOCK | 단순 쿼리 | gpt-4o-mini | 메시지 4 | C-o 설정 C-r 원본 C-q 종료
func (m Model) renderStatusBar() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	var modeBadge string
	if m.cfg.Chat.UseMock {
		modeBadge = m.theme.ModeMock.Render("MOCK")
	} else {
		modeBadge = m.theme.ModeLive.Render("LIVE")
	}

	parts := []string{modeBadge}

	if m.cfg.Chat.UseSimpleQuery {
		parts = append(parts, m.theme.ModeSimple.Render("단순 쿼리"))
	}

	parts = append(parts,
		lipgloss.NewStyle().Foreground(styles.TextMuted).Render(m.cfg.Model.Name),
		lipgloss.NewStyle().Foreground(styles.TextMuted).Render(
			"메시지 "+strconv.Itoa(m.conversation.MessageCount())),
	)

	shortcuts := m.theme.ShortcutKey.Render("C-o") + m.theme.ShortcutDesc.Render(" 설정 ") +
		m.theme.ShortcutKey.Render("C-r") + m.theme.ShortcutDesc.Render(" 원본 ") +
		m.theme.ShortcutKey.Render("C-q") + m.theme.ShortcutDesc.Render(" 종료")

	content := strings.Join(parts, sep)
	full := content + sep + shortcuts
	if lipgloss.Width(full) <= width-2 {
		content = full
	}

	return m.theme.StatusBar.Width(width).Render(content)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelpOverlay renders the full-screen help view.
func (m Model) renderHelpOverlay() string {
	var sb strings.Builder

	sb.WriteString(m.theme.SettingsTitle.Render("단축키"))
	sb.WriteString("\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			sb.WriteString(fmt.Sprintf("  %s  %s\n",
				m.theme.ShortcutKey.Render(fmt.Sprintf("%-12s", h.Key)),
				m.theme.ShortcutDesc.Render(h.Desc)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.theme.SettingsHint.Render("아무 키나 누르면 닫힙니다"))

	box := m.theme.SettingsBox.Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

// contentWidth is the full usable width of the message area.
func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// bubbleWidth caps message bubbles below the full width for readability.
func (m *Model) bubbleWidth() int {
	w := m.contentWidth() - 8
	if w < 30 {
		w = 30
	}
	if m.cfg.UI.CompactMode {
		return w
	}
	if w > 100 {
		w = 100
	}
	return w
}
