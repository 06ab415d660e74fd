// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for regnav.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/yabooung/regnav-tui/internal/answer"
	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/ragapi"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a response, rendering markdown only when stdout
// is a TTY so piped output is not corrupted.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Println(response)
	}
}

// =============================================================================
// STYLES
// =============================================================================

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	separatorStyle = lipgloss.NewStyle().
			Foreground(styles.Overlay)
)

// =============================================================================
// SESSION SETUP
// =============================================================================

// loadSession loads the configuration and builds the API client, applying
// command line overrides on top of file and environment settings.
func loadSession(args Args) (*config.Config, *ragapi.Client, error) {
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if args.Mock {
		cfg.Chat.UseMock = true
	}
	if args.Live {
		cfg.Chat.UseMock = false
	}
	if args.Model != "" {
		cfg.Model.Name = args.Model
		cfg.Chat.UseAPIModel = true
	}

	return cfg, ragapi.NewClientWithConfig(cfg.ClientConfig()), nil
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAskCommand sends a single question and prints the answer.
func HandleAskCommand(args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return fmt.Errorf("usage: regnav ask \"질문\"")
	}

	cfg, client, err := loadSession(args)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.API.TimeoutSecs+5) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if !args.Quiet && IsStdoutTTY() {
		mode := "LIVE"
		if cfg.Chat.UseMock {
			mode = "MOCK"
		}
		fmt.Println(infoStyle.Render(fmt.Sprintf("[%s] %s", mode, cfg.Model.Name)))
	}

	env, err := client.ChatWithAI(ctx, query, cfg.Options(), cfg.Chat.UseMock)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(describeError(err)))
		return err
	}

	return printEnvelope(env, args)
}

// printEnvelope writes the response in the requested format.
func printEnvelope(env *ragapi.Envelope, args Args) error {
	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	}

	if args.Raw {
		if env.RawJSON != "" {
			fmt.Println(env.RawJSON)
			return nil
		}
		fmt.Println(env.Answer)
		return nil
	}

	content := env.Answer
	if env.RawJSON != "" {
		content = "```json\n" + env.RawJSON + "\n```"
	}

	parsed := answer.Parse(content, false)
	if parsed.Kind == answer.KindStructured {
		md := buildAnswerMarkdown(answer.Project(parsed.Data), parsed.PlainText)
		displayResponse(md)
	} else {
		displayResponse(parsed.Content)
	}

	if len(env.References) > 0 && !args.Quiet {
		printReferences(env.References)
	}
	return nil
}

// buildAnswerMarkdown converts a projected answer into markdown for glamour.
func buildAnswerMarkdown(rm answer.RenderModel, preamble string) string {
	var sb strings.Builder

	if preamble != "" {
		sb.WriteString(preamble)
		sb.WriteString("\n\n")
	}

	for _, item := range rm.Breakdown {
		sb.WriteString("**" + item.Question + "**\n\n")
		sb.WriteString(item.Answer + "\n\n")
		if item.LegalBasis != "" {
			sb.WriteString("> 근거: " + item.LegalBasis + "\n\n")
		}
	}

	if rm.FinalAnswer != "" {
		sb.WriteString("## 종합 답변\n\n")
		sb.WriteString(rm.FinalAnswer + "\n\n")
	}

	if len(rm.ReferencedLaws) > 0 {
		sb.WriteString("## 참조 법률\n\n")
		for _, law := range rm.ReferencedLaws {
			sb.WriteString("- " + law + "\n")
		}
		sb.WriteString("\n")
	}

	if len(rm.Precedents) > 0 {
		sb.WriteString("## 참조 판례\n\n")
		for _, p := range rm.Precedents {
			sb.WriteString("- " + p + "\n")
		}
		sb.WriteString("\n")
	}

	if len(rm.Terms) > 0 {
		sb.WriteString("## 법률 용어 설명\n\n")
		for _, term := range rm.Terms {
			sb.WriteString("- **" + term.Name + "**: " + term.Definition + "\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// printReferences lists envelope-level citation links.
func printReferences(refs []ragapi.Reference) {
	fmt.Println(separatorStyle.Render(strings.Repeat("-", 40)))
	fmt.Println("참조:")
	for _, r := range refs {
		if r.URL != "" {
			fmt.Printf("  - %s (%s)\n", r.Title, r.URL)
		} else {
			fmt.Printf("  - %s\n", r.Title)
		}
	}
}

// describeError maps client errors to user-facing Korean messages.
func describeError(err error) string {
	switch {
	case ragapi.IsUnreachable(err):
		return "서버에 연결할 수 없습니다. REGNAV_MOCK=1 로 모의 모드를 사용할 수 있습니다."
	case ragapi.IsTimeout(err):
		return "응답 시간이 초과되었습니다. 설정의 timeout_secs 값을 확인하세요."
	default:
		return fmt.Sprintf("요청 처리 중 오류가 발생했습니다: %v", err)
	}
}
