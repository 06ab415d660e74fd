// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat screen for the regnav TUI.
//
// This file defines the Bubble Tea message types the screen reacts to.
package chat

import (
	"time"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/ragapi"
)

// =============================================================================
// ANSWER MESSAGES
// =============================================================================

// AnswerMsg delivers a completed answer for an in-flight turn.
type AnswerMsg struct {
	ConversationID string
	Envelope       *ragapi.Envelope
}

// AnswerErrorMsg signals that an in-flight turn failed.
type AnswerErrorMsg struct {
	ConversationID string
	Err            error
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// ThinkingTickMsg updates the elapsed time shown next to the spinner.
type ThinkingTickMsg struct {
	Elapsed time.Duration
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// ErrorDismissMsg dismisses the current error box.
type ErrorDismissMsg struct{}

// ConfigReloadedMsg carries a configuration reloaded from disk, typically
// delivered by the file watcher while the TUI is running.
type ConfigReloadedMsg struct {
	Config *config.Config
}
