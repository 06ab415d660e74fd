// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package answer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabooung/regnav-tui/internal/ragapi"
)

func TestParseUserAlwaysPlain(t *testing.T) {
	// Even content that looks structured stays plain for user messages.
	content := `{"final_answer": "답변"}`
	p := Parse(content, true)

	assert.Equal(t, KindPlain, p.Kind)
	assert.Equal(t, content, p.Content)
	assert.Nil(t, p.Data)
}

func TestParseFencedBlock(t *testing.T) {
	payload := &ragapi.StructuredPayload{
		QuestionBreakdown: []ragapi.QuestionItem{
			{Question: "질문?", Answer: "답변", LegalBasis: "근거 법률"},
		},
		ReferencedLaws: []string{"항공안전법"},
		FinalAnswer:    "종합 답변입니다.",
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	content := "검토 결과를 안내드립니다.\n```json\n" + string(raw) + "\n```\n추가 문의를 환영합니다."
	p := Parse(content, false)

	require.Equal(t, KindStructured, p.Kind)
	require.NotNil(t, p.Data)
	assert.Equal(t, payload.FinalAnswer, p.Data.FinalAnswer)
	assert.Equal(t, payload.QuestionBreakdown, p.Data.QuestionBreakdown)
	assert.Equal(t, "검토 결과를 안내드립니다.\n\n추가 문의를 환영합니다.", p.PlainText)
}

func TestParseFencedRoundTrip(t *testing.T) {
	// A payload wrapped at the send boundary comes back deep-equal.
	original := &ragapi.StructuredPayload{
		ThinkingProcess:      []string{"내부 추론"},
		QuestionBreakdown:    []ragapi.QuestionItem{{Question: "q", Answer: "a"}},
		ReferencedLaws:       []string{"법률 1", "법률 2"},
		ReferencedPrecedents: []string{"대법원 2020다12345"},
		LegalTermsExplained:  map[string]string{"용어": "설명"},
		FinalAnswer:          "최종 답변",
	}
	raw, err := json.Marshal(original)
	require.NoError(t, err)

	p := Parse("```json\n"+string(raw)+"\n```", false)
	require.Equal(t, KindStructured, p.Kind)
	assert.Equal(t, original, p.Data)
	assert.Equal(t, "", p.PlainText)
}

func TestParseWholeContentObject(t *testing.T) {
	p := Parse(`{"final_answer": "전체가 JSON인 응답"}`, false)

	require.Equal(t, KindStructured, p.Kind)
	assert.Equal(t, "전체가 JSON인 응답", p.Data.FinalAnswer)
	assert.Equal(t, "", p.PlainText)
}

func TestParseFailClosed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain prose", "일반 텍스트 답변입니다."},
		{"empty", ""},
		{"broken json object", `{"final_answer": `},
		{"scalar json number", "123"},
		{"scalar json string", `"문자열"`},
		{"json array", `[1, 2, 3]`},
		{"fenced block with broken json", "```json\n{broken\n```"},
		{"unclosed fence", "```json\n{\"final_answer\":\"x\"}"},
		{"wrong field types", `{"final_answer": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.content, false)
			assert.Equal(t, KindPlain, p.Kind)
			assert.Equal(t, tt.content, p.Content)
			assert.Nil(t, p.Data)
		})
	}
}

func TestParseTotality(t *testing.T) {
	// Nothing should panic, whatever the input.
	inputs := []string{
		"```json",
		"``````",
		"```json``````json```",
		"```json\n{}\n```",
		"\x00\xff",
		"{{{{{{",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Parse(in, false) }, "input %q", in)
	}
}

func TestParseEmptyObject(t *testing.T) {
	// An empty object is still a valid structured payload.
	p := Parse("{}", false)
	require.Equal(t, KindStructured, p.Kind)
	require.NotNil(t, p.Data)
}

func TestParseMockEnginePayloads(t *testing.T) {
	// Everything the mock engine emits must round-trip through the parser
	// once wrapped the way the send boundary wraps it.
	queries := []string{"드론 비행 허가", "금융 규제", "환경 규제", "개인정보 보호", "기타 질문"}
	for _, q := range queries {
		env := ragapi.MockResponse(q)
		require.NotEmpty(t, env.RawJSON, "query %q", q)

		p := Parse("```json\n"+env.RawJSON+"\n```", false)
		require.Equal(t, KindStructured, p.Kind, "query %q", q)
		assert.NotEmpty(t, p.Data.FinalAnswer, "query %q", q)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "fenced block",
			content: "앞 설명\n```json\n{\"final_answer\": \"답변\"}\n```",
			want:    `{"final_answer": "답변"}`,
		},
		{
			name:    "bare object",
			content: `{"final_answer": "답변"}`,
			want:    `{"final_answer": "답변"}`,
		},
		{
			name:    "plain text",
			content: "일반 텍스트 답변",
			want:    "",
		},
		{
			name:    "broken json",
			content: `{"final_answer": `,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.content))
		})
	}
}
