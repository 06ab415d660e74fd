// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for regnav-tui.
//
// The helpers fall into two groups:
//   - Width-aware string handling. The assistant answers regulatory questions
//     in Korean, so truncation and padding must account for double-width
//     Hangul when laying out terminal columns. These are thin wrappers over
//     github.com/mattn/go-runewidth.
//   - Input normalization. Terminal IMEs can deliver Hangul as decomposed
//     jamo sequences; NormalizeQuery folds input to NFC so that keyword
//     matching and request payloads are stable.
//
// The package also carries AtomicWriteFile, used by the config layer to
// persist settings without risking a torn file on crash.
package util
