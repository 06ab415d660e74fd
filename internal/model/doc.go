// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is an append-only message log guarded by a small send state
// machine (idle / awaiting). Messages are immutable once appended; the state
// machine is the only writer. Nothing in this package is persisted: a
// conversation lives exactly as long as the process that created it.
package model
