// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"

	"github.com/yabooung/regnav-tui/internal/ragapi"
)

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleBot, "Assistant"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%s) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestMessageIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		msg := NewUserMessage("질문")
		if seen[msg.ID] {
			t.Fatalf("duplicate message ID %q", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("드론 비행 허가에 대해 자세히 알려주세요")
	preview := msg.Preview(10)
	if got := len([]rune(preview)); got > 10 {
		t.Errorf("preview rune length = %d, want <= 10", got)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("truncated preview missing ellipsis: %q", preview)
	}
}

func TestNewConversation(t *testing.T) {
	conv := NewConversation()
	if conv.ID == "" {
		t.Error("conversation ID is empty")
	}
	if !conv.IsEmpty() {
		t.Error("new conversation should be empty")
	}
	if conv.State() != StateIdle {
		t.Errorf("state = %v, want idle", conv.State())
	}

	other := NewConversation()
	if conv.ID == other.ID {
		t.Error("conversation IDs should be unique")
	}
}

func TestBeginSend(t *testing.T) {
	conv := NewConversation()

	msg, ok := conv.BeginSend("  드론 비행 질문  ")
	if !ok {
		t.Fatal("BeginSend refused a valid query")
	}
	if msg.Content != "드론 비행 질문" {
		t.Errorf("content = %q, want trimmed query", msg.Content)
	}
	if msg.Role != RoleUser {
		t.Errorf("role = %v, want user", msg.Role)
	}
	if conv.State() != StateAwaiting {
		t.Errorf("state = %v, want awaiting", conv.State())
	}
	if conv.MessageCount() != 1 {
		t.Errorf("message count = %d, want 1", conv.MessageCount())
	}
}

func TestBeginSendRefusesEmpty(t *testing.T) {
	conv := NewConversation()

	for _, q := range []string{"", "   ", "\n\t"} {
		if _, ok := conv.BeginSend(q); ok {
			t.Errorf("BeginSend(%q) accepted an empty query", q)
		}
	}
	if conv.MessageCount() != 0 {
		t.Errorf("refused sends must append nothing, got %d messages", conv.MessageCount())
	}
	if conv.State() != StateIdle {
		t.Errorf("state = %v, want idle", conv.State())
	}
}

func TestBeginSendRefusesWhileAwaiting(t *testing.T) {
	conv := NewConversation()

	if _, ok := conv.BeginSend("첫 번째 질문"); !ok {
		t.Fatal("first BeginSend refused")
	}
	if _, ok := conv.BeginSend("두 번째 질문"); ok {
		t.Error("second BeginSend accepted while awaiting")
	}

	// Exactly one user message was appended.
	if conv.MessageCount() != 1 {
		t.Errorf("message count = %d, want 1", conv.MessageCount())
	}
}

func TestCompleteSendWithRawJSON(t *testing.T) {
	conv := NewConversation()
	conv.BeginSend("질문")

	env := &ragapi.Envelope{
		Answer:  "평문 답변",
		RawJSON: `{"final_answer":"구조화 답변"}`,
		References: []ragapi.Reference{
			{Title: "근거 법률", URL: "https://example.com/law"},
		},
	}
	msg := conv.CompleteSend(env)
	if msg == nil {
		t.Fatal("CompleteSend returned nil")
	}

	// raw_json takes precedence and is wrapped so the parser recovers it.
	want := "```json\n" + env.RawJSON + "\n```"
	if msg.Content != want {
		t.Errorf("content = %q, want %q", msg.Content, want)
	}
	if msg.Role != RoleBot {
		t.Errorf("role = %v, want bot", msg.Role)
	}
	if len(msg.References) != 1 || msg.References[0].Title != "근거 법률" {
		t.Errorf("references = %v", msg.References)
	}
	if conv.State() != StateIdle {
		t.Errorf("state = %v, want idle", conv.State())
	}
}

func TestCompleteSendAnswerOnly(t *testing.T) {
	conv := NewConversation()
	conv.BeginSend("질문")

	msg := conv.CompleteSend(&ragapi.Envelope{Answer: "평문 답변"})
	if msg.Content != "평문 답변" {
		t.Errorf("content = %q", msg.Content)
	}
	if len(msg.References) != 0 {
		t.Errorf("references = %v, want none", msg.References)
	}
}

func TestCompleteSendIgnoredWhenIdle(t *testing.T) {
	conv := NewConversation()
	if msg := conv.CompleteSend(&ragapi.Envelope{Answer: "답변"}); msg != nil {
		t.Error("CompleteSend should be a no-op while idle")
	}
	if conv.MessageCount() != 0 {
		t.Error("no message should be appended while idle")
	}
}

func TestFailSend(t *testing.T) {
	conv := NewConversation()
	conv.BeginSend("질문")

	msg := conv.FailSend()
	if msg == nil {
		t.Fatal("FailSend returned nil")
	}
	if msg.Content != GenericErrorMessage {
		t.Errorf("content = %q, want the generic error text", msg.Content)
	}
	if !msg.IsError {
		t.Error("error message not flagged")
	}
	if msg.Role != RoleBot {
		t.Errorf("role = %v, want bot", msg.Role)
	}

	// Exactly two messages total, state back to idle.
	if conv.MessageCount() != 2 {
		t.Errorf("message count = %d, want 2", conv.MessageCount())
	}
	if conv.State() != StateIdle {
		t.Errorf("state = %v, want idle", conv.State())
	}
}

func TestClear(t *testing.T) {
	conv := NewConversation()
	conv.BeginSend("질문")
	conv.CompleteSend(&ragapi.Envelope{Answer: "답변"})

	if !conv.Clear() {
		t.Fatal("Clear refused while idle")
	}
	if !conv.IsEmpty() {
		t.Error("conversation not empty after Clear")
	}
}

func TestClearRefusedWhileAwaiting(t *testing.T) {
	conv := NewConversation()
	conv.BeginSend("질문")

	if conv.Clear() {
		t.Error("Clear accepted while awaiting")
	}
	if conv.MessageCount() != 1 {
		t.Error("Clear while awaiting must not drop messages")
	}
}

func TestSendCycle(t *testing.T) {
	// idle -> awaiting -> idle, repeatable.
	conv := NewConversation()
	for i := 0; i < 3; i++ {
		if _, ok := conv.BeginSend("질문"); !ok {
			t.Fatalf("cycle %d: BeginSend refused", i)
		}
		if conv.CompleteSend(&ragapi.Envelope{Answer: "답변"}) == nil {
			t.Fatalf("cycle %d: CompleteSend failed", i)
		}
	}
	if conv.MessageCount() != 6 {
		t.Errorf("message count = %d, want 6", conv.MessageCount())
	}
	if conv.LastUserMessage() == nil {
		t.Error("LastUserMessage returned nil")
	}
}
