// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ragapi provides the client for the chain-of-thought RAG backend.
//
// It covers the full request/response path: BuildRequest constructs the wire
// payload from per-session options, Client posts it to the single /cot-rag
// endpoint, and the mock engine produces deterministic canned envelopes for
// offline development. ChatWithAI is the one entry point callers use; it
// routes between the live client and the mock engine.
package ragapi
