// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package answer turns raw message content into something renderable.
//
// Parse recognizes the structured chain-of-thought payload a bot message may
// carry, either inside a fenced json block or as the whole content, and fails
// closed to plain text on anything malformed. Project flattens a recognized
// payload into the ordered sections the views render. The reasoning trace in
// the payload never survives projection.
package answer
