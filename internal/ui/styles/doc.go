// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the regnav TUI.
//
// The package exposes an adaptive color palette and a Theme type that
// bundles every Lip Gloss style the views use. Colors are declared with
// lipgloss.AdaptiveColor so light and dark terminals get readable pairs
// without any runtime switching.
package styles
