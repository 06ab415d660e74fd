// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the regnav TUI.
//
// Components are pure renderers over the display model: the welcome screen,
// the structured answer view, the raw payload view, the error box, and the
// session settings panel. Each takes a styles.Theme and a width and returns
// a rendered string; none of them talk to the network or hold conversation
// state.
package components
