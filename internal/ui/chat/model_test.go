// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/model"
	"github.com/yabooung/regnav-tui/internal/ragapi"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

func newTestModel() Model {
	theme := styles.NewTheme()
	theme.SetSize(100, 30)
	cfg := config.Default()
	m := New(theme, cfg, ragapi.NewClient())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func sendKey(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func submitQuery(t *testing.T, m Model, query string) (Model, tea.Cmd) {
	t.Helper()
	m = typeText(t, m, query)
	return sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestNewModelStartsReady(t *testing.T) {
	m := newTestModel()

	if m.GetState() != StateReady {
		t.Errorf("state = %v, want StateReady", m.GetState())
	}
	if m.IsAwaiting() {
		t.Error("new model should not be awaiting")
	}
	if !m.GetConversation().IsEmpty() {
		t.Error("new model should have an empty conversation")
	}
}

func TestEmptyConversationShowsWelcome(t *testing.T) {
	m := newTestModel()

	view := m.View()
	if !strings.Contains(view, "규제 정보 AI 어시스턴트") {
		t.Error("empty conversation should show the welcome banner")
	}
	if !strings.Contains(view, "다음과 같은 질문을 시도해보세요") {
		t.Error("welcome screen should list example prompts")
	}
}

// =============================================================================
// SEND CYCLE
// =============================================================================

func TestSubmitTransitionsToAwaiting(t *testing.T) {
	m, cmd := submitQuery(t, newTestModel(), "드론 비행 규제 알려줘")

	if !m.IsAwaiting() {
		t.Error("submission should transition to awaiting")
	}
	if cmd == nil {
		t.Error("submission should produce a command batch")
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared after submit, got %q", m.input.Value())
	}

	last := m.GetConversation().LastUserMessage()
	if last == nil || last.Content != "드론 비행 규제 알려줘" {
		t.Errorf("user message not recorded, got %+v", last)
	}
}

func TestSubmitEmptyInputIsNoOp(t *testing.T) {
	m, _ := sendKey(t, newTestModel(), tea.KeyMsg{Type: tea.KeyEnter})

	if m.IsAwaiting() {
		t.Error("empty submission should not start a turn")
	}
	if !m.GetConversation().IsEmpty() {
		t.Error("empty submission should not record a message")
	}
}

func TestSubmitWhileAwaitingIsIgnored(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "첫 번째 질문")
	m, _ = submitQuery(t, m, "두 번째 질문")

	if got := m.GetConversation().MessageCount(); got != 1 {
		t.Errorf("message count = %d, want 1 (second submit ignored)", got)
	}
}

func TestAnswerCompletesTurn(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "드론 비행 규제 알려줘")

	env := ragapi.MockResponse("드론 비행 규제 알려줘")
	updated, _ := m.Update(AnswerMsg{ConversationID: m.GetConversation().ID, Envelope: env})
	m = updated.(Model)

	if m.IsAwaiting() {
		t.Error("answer should return the model to ready")
	}
	if got := m.GetConversation().MessageCount(); got != 2 {
		t.Errorf("message count = %d, want 2", got)
	}
	last := m.GetConversation().LastMessage()
	if last.Role != model.RoleBot {
		t.Errorf("last message role = %v, want bot", last.Role)
	}
}

func TestStaleAnswerIsDropped(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "질문")

	env := ragapi.MockResponse("질문")
	updated, _ := m.Update(AnswerMsg{ConversationID: "other-conversation", Envelope: env})
	m = updated.(Model)

	if !m.IsAwaiting() {
		t.Error("answer for another conversation must not complete this turn")
	}
	if got := m.GetConversation().MessageCount(); got != 1 {
		t.Errorf("message count = %d, want 1", got)
	}
}

func TestAnswerErrorRecordsErrorMessage(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "질문")

	updated, _ := m.Update(AnswerErrorMsg{
		ConversationID: m.GetConversation().ID,
		Err:            errors.New("connection refused"),
	})
	m = updated.(Model)

	if m.IsAwaiting() {
		t.Error("error should return the model to ready")
	}
	last := m.GetConversation().LastMessage()
	if last == nil || !last.IsError {
		t.Errorf("error turn should record an error message, got %+v", last)
	}
	if m.lastError == nil {
		t.Error("error box should be set after a failed turn")
	}
}

func TestFailedTurnViewHidesTransportDetail(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "질문")

	updated, _ := m.Update(AnswerErrorMsg{
		ConversationID: m.GetConversation().ID,
		Err:            errors.New("dial tcp 127.0.0.1:8002: connect: connection refused"),
	})
	m = updated.(Model)

	view := m.View()
	for _, leak := range []string{"dial tcp", "connection refused", "127.0.0.1"} {
		if strings.Contains(view, leak) {
			t.Errorf("chat view leaks transport detail %q", leak)
		}
	}
	if !strings.Contains(view, "죄송합니다") {
		t.Error("failed turn should show the generic error message")
	}
}

func TestStaleErrorIsDropped(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "질문")

	updated, _ := m.Update(AnswerErrorMsg{
		ConversationID: "other-conversation",
		Err:            errors.New("boom"),
	})
	m = updated.(Model)

	if !m.IsAwaiting() {
		t.Error("error for another conversation must not complete this turn")
	}
	if m.lastError != nil {
		t.Error("error box should not be set for a stale error")
	}
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func TestClearResetsConversation(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "질문")
	env := ragapi.MockResponse("질문")
	updated, _ := m.Update(AnswerMsg{ConversationID: m.GetConversation().ID, Envelope: env})
	m = updated.(Model)

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	if !m.GetConversation().IsEmpty() {
		t.Error("ctrl+l should clear the conversation")
	}
}

func TestToggleRawView(t *testing.T) {
	m := newTestModel()
	if m.ShowingRaw() {
		t.Fatal("raw view should start off")
	}

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.ShowingRaw() {
		t.Error("ctrl+r should enable the raw view")
	}

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.ShowingRaw() {
		t.Error("ctrl+r should toggle the raw view off again")
	}
}

func TestSettingsOverlayOpenClose(t *testing.T) {
	m := newTestModel()

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !m.GetSettings().IsVisible() {
		t.Fatal("ctrl+o should open the settings overlay")
	}
	if !strings.Contains(m.View(), "기본값으로 재설정") {
		t.Error("settings overlay should show the reset row")
	}

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.GetSettings().IsVisible() {
		t.Error("esc should close the settings overlay")
	}
}

func TestSettingsOverlayCapturesToggle(t *testing.T) {
	m := newTestModel()
	wasMock := m.cfg.Chat.UseMock

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")})

	if m.cfg.Chat.UseMock == wasMock {
		t.Error("space in settings should toggle the selected row")
	}
	if m.input.Value() != "" {
		t.Errorf("keys in settings should not reach the input, got %q", m.input.Value())
	}
}

func TestExampleKeyFillsAndSubmits(t *testing.T) {
	m := newTestModel()

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	last := m.GetConversation().LastUserMessage()
	if last == nil || !strings.Contains(last.Content, "금융 규제") {
		t.Errorf("key 1 should insert the first example prompt, got %+v", last)
	}
}

func TestDigitsGoToInputWhenTyping(t *testing.T) {
	m := typeText(t, newTestModel(), "제")
	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})

	if got := m.input.Value(); got != "제1" {
		t.Errorf("input = %q, want %q (digit appended, not example)", got, "제1")
	}
}

// =============================================================================
// VIEW
// =============================================================================

func TestViewShowsModeBadge(t *testing.T) {
	m := newTestModel()

	if !strings.Contains(m.View(), "MOCK") {
		t.Error("status bar should show MOCK while mock mode is on")
	}

	m.cfg.Chat.UseMock = false
	if !strings.Contains(m.View(), "LIVE") {
		t.Error("status bar should show LIVE when mock mode is off")
	}
}

func TestViewShowsThinkingIndicator(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "질문")
	m.updateViewport()

	if !strings.Contains(m.View(), "답변을 생성하는 중입니다") {
		t.Error("awaiting state should show the thinking indicator")
	}
}

func TestViewRendersStructuredAnswer(t *testing.T) {
	m, _ := submitQuery(t, newTestModel(), "드론 비행 규제 알려줘")
	env := ragapi.MockResponse("드론 비행 규제 알려줘")
	updated, _ := m.Update(AnswerMsg{ConversationID: m.GetConversation().ID, Envelope: env})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "종합 답변") {
		t.Error("structured answer should render the final answer heading")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel()

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if !strings.Contains(m.View(), "단축키") {
		t.Error("ctrl+g should show the help overlay")
	}

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "아무 키나 누르면 닫힙니다") {
		t.Error("any key should dismiss the help overlay")
	}
}
