// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat screen for the regnav TUI.
//
// The screen drives a model.Conversation through its send cycle: Enter
// begins a send, a background command calls the RAG client, and the
// resulting message either completes the turn or records the failure.
// While a turn is in flight the input refuses further submits and a
// spinner shows elapsed time.
//
// Bot content is classified by the answer package on render: structured
// payloads go through the answer view (or the raw JSON view when toggled),
// everything else renders as plain text. The settings overlay edits the
// session configuration in place; nothing the screen does is persisted.
package chat
