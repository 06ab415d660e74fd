// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/ragapi"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SendQueryCmd creates a command that sends one query through the RAG
// client and delivers the outcome as an AnswerMsg or AnswerErrorMsg. The
// config is snapshotted here so settings edits made while the request is
// in flight do not affect it.
func SendQueryCmd(client *ragapi.Client, cfg *config.Config, conversationID, query string) tea.Cmd {
	opts := cfg.Options()
	useMock := cfg.Chat.UseMock

	return func() tea.Msg {
		env, err := client.ChatWithAI(context.Background(), query, opts, useMock)
		if err != nil {
			return AnswerErrorMsg{ConversationID: conversationID, Err: err}
		}
		return AnswerMsg{ConversationID: conversationID, Envelope: env}
	}
}

// ThinkingTickCmd creates a command that updates the thinking elapsed time.
func ThinkingTickCmd(startTime time.Time) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ThinkingTickMsg{Elapsed: t.Sub(startTime)}
	})
}
