// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package answer

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabooung/regnav-tui/internal/ragapi"
)

func TestProjectFullPayload(t *testing.T) {
	data := &ragapi.StructuredPayload{
		ThinkingProcess: []string{"1단계 내부 추론", "2단계 내부 추론"},
		QuestionBreakdown: []ragapi.QuestionItem{
			{Question: "첫 질문", Answer: "첫 답변", LegalBasis: "근거 1"},
			{Question: "둘째 질문", Answer: "둘째 답변"},
		},
		ReferencedLaws:       []string{"법률 A", "법률 B"},
		ReferencedPrecedents: []string{"판례 1"},
		LegalTermsExplained:  map[string]string{"나용어": "설명 나", "가용어": "설명 가"},
		FinalAnswer:          "종합 답변",
	}

	m := Project(data)

	require.Len(t, m.Breakdown, 2)
	assert.Equal(t, "첫 질문", m.Breakdown[0].Question)
	assert.Equal(t, "근거 1", m.Breakdown[0].LegalBasis)
	assert.Equal(t, "", m.Breakdown[1].LegalBasis)

	assert.Equal(t, "종합 답변", m.FinalAnswer)
	assert.Equal(t, []string{"법률 A", "법률 B"}, m.ReferencedLaws)
	assert.Equal(t, []string{"판례 1"}, m.Precedents)

	// Glossary is sorted by term for deterministic rendering.
	require.Len(t, m.Terms, 2)
	assert.Equal(t, "가용어", m.Terms[0].Name)
	assert.Equal(t, "나용어", m.Terms[1].Name)

	assert.True(t, m.HasReferences())
	assert.False(t, m.IsEmpty())
}

func TestProjectExcludesThinkingProcess(t *testing.T) {
	marker := "INTERNAL-REASONING-MARKER"
	data := &ragapi.StructuredPayload{
		ThinkingProcess: []string{marker + " 단계 1", marker + " 단계 2"},
		FinalAnswer:     "공개 가능한 답변",
	}

	m := Project(data)

	// No field of the render model may carry the reasoning trace.
	serialized, err := json.Marshal(m)
	require.NoError(t, err)
	assert.NotContains(t, string(serialized), marker)
	assert.NotContains(t, fmt.Sprintf("%+v", m), marker)
}

func TestProjectMissingOptionals(t *testing.T) {
	data := &ragapi.StructuredPayload{FinalAnswer: "답변만 있는 경우"}

	m := Project(data)

	assert.Empty(t, m.Breakdown)
	assert.Empty(t, m.ReferencedLaws)
	assert.Empty(t, m.Precedents)
	assert.Empty(t, m.Terms)
	assert.False(t, m.HasReferences())
	assert.False(t, m.IsEmpty())
	assert.Equal(t, "답변만 있는 경우", m.FinalAnswer)
}

func TestProjectNil(t *testing.T) {
	m := Project(nil)
	assert.True(t, m.IsEmpty())
}

func TestProjectDeterministicTerms(t *testing.T) {
	data := &ragapi.StructuredPayload{
		LegalTermsExplained: map[string]string{
			"다": "3", "가": "1", "나": "2", "라": "4",
		},
	}

	first := Project(data)
	for i := 0; i < 20; i++ {
		again := Project(data)
		assert.Equal(t, first.Terms, again.Terms)
	}

	names := make([]string, len(first.Terms))
	for i, term := range first.Terms {
		names[i] = term.Name
	}
	assert.Equal(t, []string{"가", "나", "다", "라"}, names)
}

func TestProjectMockPayloads(t *testing.T) {
	// Projection of every mock payload hides the reasoning trace and keeps
	// the visible sections.
	for _, q := range []string{"드론", "금융", "환경", "개인정보", "아무 질문"} {
		env := ragapi.MockResponse(q)

		var data ragapi.StructuredPayload
		require.NoError(t, json.Unmarshal([]byte(env.RawJSON), &data))
		require.NotEmpty(t, data.ThinkingProcess, "query %q", q)

		m := Project(&data)
		assert.NotEmpty(t, m.FinalAnswer, "query %q", q)
		assert.NotEmpty(t, m.Breakdown, "query %q", q)

		rendered := fmt.Sprintf("%+v", m)
		for _, step := range data.ThinkingProcess {
			assert.False(t, strings.Contains(rendered, step), "query %q leaked reasoning", q)
		}
	}
}
