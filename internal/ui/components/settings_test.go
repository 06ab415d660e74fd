// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

func newTestSettings() (*Settings, *config.Config) {
	cfg := config.Default()
	s := NewSettings(styles.NewTheme(), cfg)
	s.Show()
	return s, cfg
}

func TestSettingsToggleMock(t *testing.T) {
	s, cfg := newTestSettings()

	if !cfg.Chat.UseMock {
		t.Fatal("mock should default to enabled")
	}

	// First row is the mock toggle.
	s.Toggle()
	if cfg.Chat.UseMock {
		t.Error("Toggle should flip use_mock off")
	}
	s.Toggle()
	if !cfg.Chat.UseMock {
		t.Error("Toggle should flip use_mock back on")
	}
}

func TestSettingsCursorBounds(t *testing.T) {
	s, _ := newTestSettings()

	s.MoveUp()
	if s.cursor != 0 {
		t.Error("cursor should not move above the first row")
	}

	for i := 0; i < 100; i++ {
		s.MoveDown()
	}
	if s.cursor != len(s.items)-1 {
		t.Error("cursor should stop at the last row")
	}
}

func TestSettingsTemperatureClamped(t *testing.T) {
	s, cfg := newTestSettings()

	// Move to the temperature row.
	for i, item := range s.items {
		if item.label == "temperature" {
			s.cursor = i
			break
		}
	}

	for i := 0; i < 50; i++ {
		s.Increase()
	}
	if cfg.Model.Temperature != 1.0 {
		t.Errorf("temperature should clamp at 1.0, got %v", cfg.Model.Temperature)
	}

	for i := 0; i < 50; i++ {
		s.Decrease()
	}
	if cfg.Model.Temperature != 0.0 {
		t.Errorf("temperature should clamp at 0.0, got %v", cfg.Model.Temperature)
	}
}

func TestSettingsModelPresetCycle(t *testing.T) {
	s, cfg := newTestSettings()

	for i, item := range s.items {
		if item.label == "모델 이름" {
			s.cursor = i
			break
		}
	}

	start := cfg.Model.Name
	seen := map[string]bool{start: true}
	for i := 0; i < len(modelPresets)-1; i++ {
		s.Increase()
		seen[cfg.Model.Name] = true
	}
	if len(seen) != len(modelPresets) {
		t.Errorf("cycling should visit all %d presets, saw %d", len(modelPresets), len(seen))
	}

	s.Increase()
	if cfg.Model.Name != start {
		t.Errorf("full cycle should return to %q, got %q", start, cfg.Model.Name)
	}
}

func TestSettingsResetRestoresDefaults(t *testing.T) {
	s, cfg := newTestSettings()

	cfg.Chat.UseMock = false
	cfg.Chat.UseSimpleQuery = false
	cfg.Model.Temperature = 0.9
	cfg.API.BaseURL = "http://example.com/api"

	s.Reset()

	def := config.Default()
	if cfg.Chat.UseMock {
		t.Error("reset must leave mock mode as the user set it")
	}
	if cfg.Chat.UseSimpleQuery != def.Chat.UseSimpleQuery {
		t.Error("reset should restore simple-query mode")
	}
	if cfg.Model.Temperature != def.Model.Temperature {
		t.Error("reset should restore model settings")
	}
	if cfg.API.BaseURL != "http://example.com/api" {
		t.Error("reset should keep connection settings")
	}
}

func TestSettingsView(t *testing.T) {
	s, _ := newTestSettings()
	s.SetSize(100, 40)

	out := s.View()

	wants := []string{"설정", "모의 응답 사용", "temperature", "기본값으로 재설정"}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("settings view missing %q", want)
		}
	}
}
