// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package answer

import (
	"sort"

	"github.com/yabooung/regnav-tui/internal/ragapi"
)

// RenderModel is the flattened, display-ready form of a structured payload.
// It contains only user-visible material.
type RenderModel struct {
	// Breakdown holds the per-question triples, in payload order.
	Breakdown []BreakdownItem

	// FinalAnswer is the synthesized answer block.
	FinalAnswer string

	// Reference sections, collapsed by default in the views.
	ReferencedLaws []string
	Precedents     []string
	Terms          []Term
}

// BreakdownItem is one question/answer/legal-basis triple.
type BreakdownItem struct {
	Question   string
	Answer     string
	LegalBasis string
}

// Term is a glossary entry.
type Term struct {
	Name       string
	Definition string
}

// Project flattens a payload into a RenderModel. The payload's reasoning
// trace is dropped here and is not recoverable from the result; that is a
// product confidentiality rule, not a rendering choice. Glossary entries are
// sorted by term so rendering is deterministic. Missing optional sections
// come out empty, never as placeholders.
func Project(data *ragapi.StructuredPayload) RenderModel {
	var m RenderModel
	if data == nil {
		return m
	}

	for _, item := range data.QuestionBreakdown {
		m.Breakdown = append(m.Breakdown, BreakdownItem{
			Question:   item.Question,
			Answer:     item.Answer,
			LegalBasis: item.LegalBasis,
		})
	}

	m.FinalAnswer = data.FinalAnswer
	m.ReferencedLaws = append(m.ReferencedLaws, data.ReferencedLaws...)
	m.Precedents = append(m.Precedents, data.ReferencedPrecedents...)

	for name, def := range data.LegalTermsExplained {
		m.Terms = append(m.Terms, Term{Name: name, Definition: def})
	}
	sort.Slice(m.Terms, func(i, j int) bool { return m.Terms[i].Name < m.Terms[j].Name })

	return m
}

// HasReferences reports whether any of the collapsible reference sections
// has content.
func (m RenderModel) HasReferences() bool {
	return len(m.ReferencedLaws) > 0 || len(m.Precedents) > 0 || len(m.Terms) > 0
}

// IsEmpty reports whether the model has nothing to render.
func (m RenderModel) IsEmpty() bool {
	return len(m.Breakdown) == 0 && m.FinalAnswer == "" && !m.HasReferences()
}
