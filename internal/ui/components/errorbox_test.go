// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/yabooung/regnav-tui/internal/ragapi"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

func TestErrorBoxClassification(t *testing.T) {
	theme := styles.NewTheme()

	tests := []struct {
		name      string
		err       error
		wantTitle string
	}{
		{"unreachable", ragapi.ErrUnreachable, "서버에 연결할 수 없습니다"},
		{"timeout", ragapi.ErrTimeout, "응답 시간 초과"},
		{"unknown", errors.New("boom"), "오류"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewErrorBoxFromErr(theme, tt.err)
			if box.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", box.Title, tt.wantTitle)
			}
		})
	}
}

func TestErrorBoxHidesTransportDetail(t *testing.T) {
	theme := styles.NewTheme()
	err := &ragapi.ClientError{
		Type:    ragapi.ErrTypeUnreachable,
		Message: "backend is not reachable",
		Cause:   errors.New("dial tcp 127.0.0.1:8002: connect: connection refused"),
	}

	box := NewErrorBoxFromErr(theme, err)
	out := box.Render()

	for _, leak := range []string{"dial tcp", "connection refused", "127.0.0.1", "not reachable"} {
		if strings.Contains(out, leak) {
			t.Errorf("error box leaks transport detail %q:\n%s", leak, out)
		}
	}
	if !strings.Contains(out, "요청을 처리하지 못했습니다") {
		t.Error("error box should show the generic message body")
	}
	if !strings.Contains(out, "REGNAV_MOCK=1") {
		t.Error("unreachable errors should still suggest mock mode")
	}
}
