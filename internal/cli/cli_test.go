// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/yabooung/regnav-tui/internal/answer"
	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/ragapi"
)

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args starts TUI", nil, CmdTUI},
		{"ask", []string{"ask", "질문"}, CmdAsk},
		{"ask alias", []string{"a", "질문"}, CmdAsk},
		{"repl", []string{"repl"}, CmdRepl},
		{"repl alias chat", []string{"chat"}, CmdRepl},
		{"config", []string{"config", "show"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
		{"bare words become ask", []string{"드론", "규제"}, CmdAsk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.argv)
			if cmd != tt.want {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.argv, cmd, tt.want)
			}
		})
	}
}

func TestParseArgsAskQuery(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "드론", "비행", "규제"})
	if args.Query != "드론 비행 규제" {
		t.Errorf("Query = %q, want joined words", args.Query)
	}

	_, args = ParseArgs([]string{"최근", "개정된", "금융", "규제"})
	if args.Query != "최근 개정된 금융 규제" {
		t.Errorf("bare-word Query = %q, want joined words", args.Query)
	}
}

func TestParseArgsFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--mock", "--json", "--model", "gpt-4o", "ask", "질문"})

	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if !args.Mock || !args.JSON {
		t.Error("flags --mock and --json should be set")
	}
	if args.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", args.Model)
	}
	if args.Query != "질문" {
		t.Errorf("Query = %q, flags must not leak into the query", args.Query)
	}
}

func TestParseArgsModelEquals(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "--model=gpt-4o-mini", "질문"})
	if args.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", args.Model)
	}
}

func TestParseArgsConfigSubcommand(t *testing.T) {
	_, args := ParseArgs([]string{"config", "set", "model.name", "gpt-4o"})
	if args.Subcommand != "set" {
		t.Errorf("Subcommand = %q, want set", args.Subcommand)
	}
	if len(args.Rest) != 3 {
		t.Errorf("Rest = %v, want [set model.name gpt-4o]", args.Rest)
	}
}

// =============================================================================
// CONFIG KEYS
// =============================================================================

func TestApplyConfigKey(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		check   func(*config.Config) bool
		wantErr bool
	}{
		{"chat.use_mock", "off", func(c *config.Config) bool { return !c.Chat.UseMock }, false},
		{"chat.use_mock", "yes", func(c *config.Config) bool { return c.Chat.UseMock }, false},
		{"model.name", "gpt-4o", func(c *config.Config) bool { return c.Model.Name == "gpt-4o" }, false},
		{"model.temperature", "0.3", func(c *config.Config) bool { return c.Model.Temperature == 0.3 }, false},
		{"model.max_tokens", "1500", func(c *config.Config) bool { return c.Model.MaxTokens == 1500 }, false},
		{"retrieval.use_mmr", "on", func(c *config.Config) bool { return c.Retrieval.UseMMR }, false},
		{"api.timeout_secs", "90", func(c *config.Config) bool { return c.API.TimeoutSecs == 90 }, false},
		{"model.temperature", "hot", nil, true},
		{"nonexistent.key", "1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := config.Default()
			err := applyConfigKey(cfg, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyConfigKey err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("config not updated for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	truthy := []string{"true", "yes", "y", "1", "on", "TRUE", "On"}
	for _, s := range truthy {
		if got, err := ParseBoolString(s); err != nil || !got {
			t.Errorf("ParseBoolString(%q) = %v, %v; want true", s, got, err)
		}
	}

	falsy := []string{"false", "no", "n", "0", "off"}
	for _, s := range falsy {
		if got, err := ParseBoolString(s); err != nil || got {
			t.Errorf("ParseBoolString(%q) = %v, %v; want false", s, got, err)
		}
	}

	if _, err := ParseBoolString("maybe"); err == nil {
		t.Error("ParseBoolString should reject unknown values")
	}
}

// =============================================================================
// SESSION OVERRIDES
// =============================================================================

func TestLoadSessionOverrides(t *testing.T) {
	cfg, client, err := loadSession(Args{Mock: true, Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if client == nil {
		t.Fatal("loadSession returned nil client")
	}
	if !cfg.Chat.UseMock {
		t.Error("--mock should force mock mode on")
	}
	if cfg.Model.Name != "gpt-4o" || !cfg.Chat.UseAPIModel {
		t.Error("--model should set the model name and enable API model settings")
	}

	cfg, _, err = loadSession(Args{Live: true})
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if cfg.Chat.UseMock {
		t.Error("--live should force mock mode off")
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func TestBuildAnswerMarkdown(t *testing.T) {
	env := ragapi.MockResponse("드론 비행 규제 알려줘")
	parsed := answer.Parse("```json\n"+env.RawJSON+"\n```", false)
	if parsed.Kind != answer.KindStructured {
		t.Fatal("mock response should parse as structured")
	}

	md := buildAnswerMarkdown(answer.Project(parsed.Data), "")

	for _, want := range []string{"## 종합 답변", "## 참조 법률", "근거:"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestDescribeError(t *testing.T) {
	if !strings.Contains(describeError(ragapi.ErrUnreachable), "연결할 수 없습니다") {
		t.Error("unreachable errors should suggest mock mode")
	}
}
