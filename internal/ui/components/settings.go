// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// SESSION SETTINGS PANEL
// =============================================================================

// modelPresets are the model names the panel cycles through.
var modelPresets = []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"}

// settingItem is one row of the settings panel. Toggle reacts to
// space/enter; dec and inc react to left/right. Nil handlers mean the row
// does not support that interaction.
type settingItem struct {
	section string
	label   string
	value   func(c *config.Config) string
	toggle  func(c *config.Config)
	dec     func(c *config.Config)
	inc     func(c *config.Config)
}

// Settings is the overlay panel that edits the session configuration.
// Edits mutate the config in place; nothing is persisted here. The reset
// row restores request defaults while keeping connection and UI settings.
type Settings struct {
	theme  *styles.Theme
	cfg    *config.Config
	items  []settingItem
	cursor int

	visible bool
	width   int
	height  int
}

// NewSettings creates a settings panel bound to the given session config.
func NewSettings(theme *styles.Theme, cfg *config.Config) *Settings {
	s := &Settings{
		theme: theme,
		cfg:   cfg,
		width: 80,
	}
	s.items = buildItems()
	return s
}

func buildItems() []settingItem {
	onOff := func(b bool) string {
		if b {
			return "켜짐"
		}
		return "꺼짐"
	}

	return []settingItem{
		{
			section: "채팅",
			label:   "모의 응답 사용",
			value:   func(c *config.Config) string { return onOff(c.Chat.UseMock) },
			toggle:  func(c *config.Config) { c.Chat.UseMock = !c.Chat.UseMock },
		},
		{
			label:  "단순 쿼리 모드",
			value:  func(c *config.Config) string { return onOff(c.Chat.UseSimpleQuery) },
			toggle: func(c *config.Config) { c.Chat.UseSimpleQuery = !c.Chat.UseSimpleQuery },
		},
		{
			label:  "API 모델 설정 사용",
			value:  func(c *config.Config) string { return onOff(c.Chat.UseAPIModel) },
			toggle: func(c *config.Config) { c.Chat.UseAPIModel = !c.Chat.UseAPIModel },
		},
		{
			label:  "사용자 프롬프트 사용",
			value:  func(c *config.Config) string { return onOff(c.Chat.UseCustomPrompt) },
			toggle: func(c *config.Config) { c.Chat.UseCustomPrompt = !c.Chat.UseCustomPrompt },
		},
		{
			label: "모의 응답 지연 (ms)",
			value: func(c *config.Config) string { return fmt.Sprintf("%d", c.Chat.MockDelayMs) },
			dec:   func(c *config.Config) { c.Chat.MockDelayMs = maxInt(0, c.Chat.MockDelayMs-100) },
			inc:   func(c *config.Config) { c.Chat.MockDelayMs += 100 },
		},
		{
			section: "모델",
			label:   "모델 이름",
			value:   func(c *config.Config) string { return c.Model.Name },
			toggle:  func(c *config.Config) { c.Model.Name = nextPreset(c.Model.Name, 1) },
			dec:     func(c *config.Config) { c.Model.Name = nextPreset(c.Model.Name, -1) },
			inc:     func(c *config.Config) { c.Model.Name = nextPreset(c.Model.Name, 1) },
		},
		{
			label: "temperature",
			value: func(c *config.Config) string { return fmt.Sprintf("%.1f", c.Model.Temperature) },
			dec:   func(c *config.Config) { c.Model.Temperature = clampF(round1(c.Model.Temperature-0.1), 0, 1) },
			inc:   func(c *config.Config) { c.Model.Temperature = clampF(round1(c.Model.Temperature+0.1), 0, 1) },
		},
		{
			label: "max_tokens",
			value: func(c *config.Config) string { return fmt.Sprintf("%d", c.Model.MaxTokens) },
			dec:   func(c *config.Config) { c.Model.MaxTokens = maxInt(50, c.Model.MaxTokens-50) },
			inc:   func(c *config.Config) { c.Model.MaxTokens += 50 },
		},
		{
			label: "top_k",
			value: func(c *config.Config) string { return fmt.Sprintf("%d", c.Model.TopK) },
			dec:   func(c *config.Config) { c.Model.TopK = maxInt(1, c.Model.TopK-1) },
			inc:   func(c *config.Config) { c.Model.TopK++ },
		},
		{
			section: "검색",
			label:   "filter_threshold",
			value:   func(c *config.Config) string { return fmt.Sprintf("%.2f", c.Retrieval.FilterThreshold) },
			dec: func(c *config.Config) {
				c.Retrieval.FilterThreshold = clampF(round2(c.Retrieval.FilterThreshold-0.05), 0, 1)
			},
			inc: func(c *config.Config) {
				c.Retrieval.FilterThreshold = clampF(round2(c.Retrieval.FilterThreshold+0.05), 0, 1)
			},
		},
		{
			label:  "MMR 사용",
			value:  func(c *config.Config) string { return onOff(c.Retrieval.UseMMR) },
			toggle: func(c *config.Config) { c.Retrieval.UseMMR = !c.Retrieval.UseMMR },
		},
		{
			label: "lambda_mult",
			value: func(c *config.Config) string { return fmt.Sprintf("%.2f", c.Retrieval.LambdaMult) },
			dec: func(c *config.Config) {
				c.Retrieval.LambdaMult = clampF(round2(c.Retrieval.LambdaMult-0.05), 0, 1)
			},
			inc: func(c *config.Config) {
				c.Retrieval.LambdaMult = clampF(round2(c.Retrieval.LambdaMult+0.05), 0, 1)
			},
		},
		{
			// Display only. Collections are provisioned server-side; editing
			// the name goes through "regnav config set".
			label: "collection",
			value: func(c *config.Config) string { return c.Retrieval.CollectionName },
		},
		{
			section: "처리 단계",
			label:   "질문 분류",
			value:   func(c *config.Config) string { return onOff(c.Stages.EnableClassification) },
			toggle:  func(c *config.Config) { c.Stages.EnableClassification = !c.Stages.EnableClassification },
		},
		{
			label:  "질문 확장",
			value:  func(c *config.Config) string { return onOff(c.Stages.EnableAmplification) },
			toggle: func(c *config.Config) { c.Stages.EnableAmplification = !c.Stages.EnableAmplification },
		},
		{
			label:  "답변 검증",
			value:  func(c *config.Config) string { return onOff(c.Stages.EnableValidation) },
			toggle: func(c *config.Config) { c.Stages.EnableValidation = !c.Stages.EnableValidation },
		},
		{
			section: "화면",
			label:   "시간 표시",
			value:   func(c *config.Config) string { return onOff(c.UI.ShowTimestamps) },
			toggle:  func(c *config.Config) { c.UI.ShowTimestamps = !c.UI.ShowTimestamps },
		},
		{
			label:  "간결 모드",
			value:  func(c *config.Config) string { return onOff(c.UI.CompactMode) },
			toggle: func(c *config.Config) { c.UI.CompactMode = !c.UI.CompactMode },
		},
		{
			section: "",
			label:   "기본값으로 재설정",
			value:   func(c *config.Config) string { return "" },
			toggle:  func(c *config.Config) { c.ResetAPIOptions() },
		},
	}
}

// Show makes the panel visible with the cursor on the first row.
func (s *Settings) Show() {
	s.visible = true
	s.cursor = 0
}

// Hide closes the panel.
func (s *Settings) Hide() {
	s.visible = false
}

// IsVisible reports whether the panel is open.
func (s *Settings) IsVisible() bool {
	return s.visible
}

// SetSize sets the overlay dimensions.
func (s *Settings) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// MoveUp moves the cursor up one row.
func (s *Settings) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves the cursor down one row.
func (s *Settings) MoveDown() {
	if s.cursor < len(s.items)-1 {
		s.cursor++
	}
}

// Toggle activates the selected row (toggles a boolean or runs an action).
func (s *Settings) Toggle() {
	item := s.items[s.cursor]
	if item.toggle != nil {
		item.toggle(s.cfg)
	}
}

// Decrease lowers the selected numeric value.
func (s *Settings) Decrease() {
	item := s.items[s.cursor]
	if item.dec != nil {
		item.dec(s.cfg)
	}
}

// Increase raises the selected numeric value.
func (s *Settings) Increase() {
	item := s.items[s.cursor]
	if item.inc != nil {
		item.inc(s.cfg)
	}
}

// Reset restores the request defaults regardless of cursor position.
func (s *Settings) Reset() {
	s.cfg.ResetAPIOptions()
}

// View renders the settings overlay.
func (s *Settings) View() string {
	var sb strings.Builder

	sb.WriteString(s.theme.SettingsTitle.Render("설정"))
	sb.WriteString("\n")

	for i, item := range s.items {
		if item.section != "" {
			sb.WriteString("\n")
			sb.WriteString(s.theme.SettingsSection.Render(item.section))
			sb.WriteString("\n")
		}

		label := item.label
		value := item.value(s.cfg)

		var line string
		if i == s.cursor {
			line = s.theme.SettingsSelected.Render("> "+fmt.Sprintf("%-22s", label)) +
				" " + s.theme.SettingsValue.Render(value)
		} else {
			line = "  " + s.theme.SettingsLabel.Render(fmt.Sprintf("%-22s", label)) +
				" " + s.theme.SettingsValue.Render(value)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.theme.SettingsHint.Render("↑/↓ 이동 | Space 전환 | ←/→ 값 조정 | r 재설정 | Esc 닫기"))

	box := s.theme.SettingsBox.Render(sb.String())

	if s.width > 0 && s.height > 0 {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// =============================================================================
// HELPERS
// =============================================================================

func nextPreset(current string, dir int) string {
	for i, p := range modelPresets {
		if p == current {
			n := (i + dir + len(modelPresets)) % len(modelPresets)
			return modelPresets[n]
		}
	}
	return modelPresets[0]
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
