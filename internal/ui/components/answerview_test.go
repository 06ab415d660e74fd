// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/yabooung/regnav-tui/internal/answer"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

func testModel() answer.RenderModel {
	return answer.RenderModel{
		Breakdown: []answer.BreakdownItem{
			{
				Question:   "드론 비행 허가가 필요한가요?",
				Answer:     "최대이륙중량에 따라 허가 대상이 달라집니다.",
				LegalBasis: "항공안전법 제122조",
			},
		},
		FinalAnswer:    "드론 비행은 항공안전법에 따라 사전 승인이 필요할 수 있습니다.",
		ReferencedLaws: []string{"항공안전법", "항공사업법"},
		Precedents:     []string{"대법원 2021다12345"},
		Terms: []answer.Term{
			{Name: "최대이륙중량", Definition: "이륙 시 허용되는 최대 중량"},
		},
	}
}

func TestAnswerViewRenderSections(t *testing.T) {
	v := NewAnswerView(styles.NewTheme())
	v.SetWidth(100)
	v.SetExpanded(true)

	out := v.Render(testModel())

	wants := []string{
		"드론 비행 허가가 필요한가요?",
		"근거: 항공안전법 제122조",
		"종합 답변",
		"관련 참조 정보",
		"참조 법률",
		"항공사업법",
		"참조 판례",
		"대법원 2021다12345",
		"법률 용어 설명",
		"최대이륙중량",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("rendered answer missing %q", want)
		}
	}
}

func TestAnswerViewCollapsedHidesReferences(t *testing.T) {
	v := NewAnswerView(styles.NewTheme())
	v.SetWidth(100)
	v.SetExpanded(false)

	out := v.Render(testModel())

	if !strings.Contains(out, "관련 참조 정보") {
		t.Error("collapsed view should still show the reference header")
	}
	if !strings.Contains(out, "법률 2개, 판례 1개, 용어 1개") {
		t.Error("collapsed view should show section counts")
	}
	if strings.Contains(out, "참조 법률") {
		t.Error("collapsed view should not render the law list")
	}
	if strings.Contains(out, "이륙 시 허용되는 최대 중량") {
		t.Error("collapsed view should not render term definitions")
	}
}

func TestAnswerViewEmptyModel(t *testing.T) {
	v := NewAnswerView(styles.NewTheme())
	if out := v.Render(answer.RenderModel{}); out != "" {
		t.Errorf("empty model should render to empty string, got %q", out)
	}
}

func TestAnswerViewMissingOptionalSections(t *testing.T) {
	v := NewAnswerView(styles.NewTheme())
	v.SetExpanded(true)

	out := v.Render(answer.RenderModel{FinalAnswer: "답변만 있는 경우"})

	if !strings.Contains(out, "답변만 있는 경우") {
		t.Error("final answer should render")
	}
	if strings.Contains(out, "관련 참조 정보") {
		t.Error("reference header should be absent with no references")
	}
}
