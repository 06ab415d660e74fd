// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the regnav command line interface.
//
// The default command starts the full-screen TUI. The remaining commands
// cover non-interactive use: "ask" for a single question with rendered
// output, "repl" for a lightweight line-based chat with input history,
// "config" for inspecting and editing the configuration file, and
// "version" for build information.
//
// Output honors TTY detection: markdown rendering and colors are only
// applied when stdout is a terminal, so piped output stays clean.
package cli
