// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package answer

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/yabooung/regnav-tui/internal/ragapi"
)

// Kind discriminates the two parse outcomes.
type Kind int

const (
	// KindPlain renders the content as ordinary text.
	KindPlain Kind = iota
	// KindStructured renders the projected payload carried in Data.
	KindStructured
)

// Parsed is the result of classifying message content.
type Parsed struct {
	Kind Kind

	// Content is the original message content, set on the plain variant.
	Content string

	// Data is the recovered payload, set on the structured variant.
	Data *ragapi.StructuredPayload

	// PlainText is the prose surrounding a fenced payload block, trimmed.
	// Empty when the whole content was the payload.
	PlainText string
}

// fencedJSON matches a fenced code block tagged json that contains a single
// JSON object. Non-greedy so prose after the block survives.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// ExtractJSON returns the JSON object carried in content: the body of a
// fenced json block when one is present, otherwise the whole content when
// it is itself a JSON object. Returns "" when neither form applies.
func ExtractJSON(content string) string {
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return trimmed
	}
	return ""
}

// Parse classifies message content. User messages are always plain; bot
// content is structured when a fenced json block, or the entire content,
// parses as a JSON object. Any failure falls back to plain text with the
// content untouched. Parse never panics.
func Parse(content string, isUser bool) Parsed {
	if isUser {
		return Parsed{Kind: KindPlain, Content: content}
	}

	if m := fencedJSON.FindStringSubmatchIndex(content); m != nil {
		var data ragapi.StructuredPayload
		if err := json.Unmarshal([]byte(content[m[2]:m[3]]), &data); err == nil {
			plain := strings.TrimSpace(content[:m[0]] + content[m[1]:])
			return Parsed{Kind: KindStructured, Data: &data, PlainText: plain}
		}
		return Parsed{Kind: KindPlain, Content: content}
	}

	// No fenced block: accept the whole content when it is one JSON object.
	// Scalar JSON ("123", `"text"`) stays plain.
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		var data ragapi.StructuredPayload
		if err := json.Unmarshal([]byte(trimmed), &data); err == nil {
			return Parsed{Kind: KindStructured, Data: &data}
		}
	}

	return Parsed{Kind: KindPlain, Content: content}
}
