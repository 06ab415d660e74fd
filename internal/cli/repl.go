// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-based interactive chat for regnav.
//
// The REPL is the fallback for terminals where the full-screen TUI is
// unwanted (ssh sessions, minimal terminals, scripting around a pipe of
// questions). It keeps the same conversation semantics as the TUI.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/peterh/liner"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/model"
	"github.com/yabooung/regnav-tui/internal/ragapi"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput provides input history and line editing for the REPL.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = ""
	}

	in := &replInput{line: line, historyFile: historyFile}
	in.loadHistory()
	return in
}

func (r *replInput) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line with history navigation.
func (r *replInput) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (r *replInput) Close() {
	if r.historyFile != "" {
		if err := config.EnsureConfigDir(); err == nil {
			if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
				r.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	r.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// replSession holds the state of one REPL run.
type replSession struct {
	cfg          *config.Config
	client       *ragapi.Client
	conversation *model.Conversation
	input        *replInput
	args         Args
	startTime    time.Time

	// cancelFunc aborts the in-flight request on Ctrl+C. The signal
	// goroutine invokes it, so access goes through cancelMu.
	cancelMu   sync.Mutex
	cancelFunc context.CancelFunc
}

// setCancel installs the cancel function for the in-flight request.
func (s *replSession) setCancel(cancel context.CancelFunc) {
	s.cancelMu.Lock()
	s.cancelFunc = cancel
	s.cancelMu.Unlock()
}

// cancelInFlight aborts the in-flight request, if any.
func (s *replSession) cancelInFlight() {
	s.cancelMu.Lock()
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.cancelMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// =============================================================================
// REPL HANDLER
// =============================================================================

// HandleReplCommand runs the line-based interactive chat.
func HandleReplCommand(args Args) error {
	if err := requireTTY("start the REPL"); err != nil {
		return err
	}

	cfg, client, err := loadSession(args)
	if err != nil {
		return err
	}

	session := &replSession{
		cfg:          cfg,
		client:       client,
		conversation: model.NewConversation(),
		input:        newReplInput(),
		args:         args,
		startTime:    time.Now(),
	}
	defer session.input.Close()

	if !args.Quiet {
		printReplBanner(cfg)
	}

	// Ctrl+C cancels the in-flight request instead of killing the REPL.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			session.cancelInFlight()
		}
	}()

	for {
		input, err := session.input.ReadInput("regnav> ")
		if err != nil {
			// liner.ErrPromptAborted (Ctrl+C) and EOF (Ctrl+D) both exit.
			fmt.Println()
			printReplSummary(session)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			shouldContinue := handleReplCommandInput(input, session)
			if !shouldContinue {
				printReplSummary(session)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printReplSummary(session)
			return nil
		}

		if err := session.processQuery(input); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(describeError(err)))
		}
	}
}

// processQuery runs one question/answer turn.
func (s *replSession) processQuery(query string) error {
	userMsg, ok := s.conversation.BeginSend(query)
	if !ok {
		return nil
	}

	timeout := time.Duration(s.cfg.API.TimeoutSecs+5) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	s.setCancel(cancel)
	defer func() {
		s.setCancel(nil)
		cancel()
	}()

	env, err := s.client.ChatWithAI(ctx, userMsg.Content, s.cfg.Options(), s.cfg.Chat.UseMock)
	if err != nil {
		s.conversation.FailSend()
		return err
	}

	s.conversation.CompleteSend(env)
	return printEnvelope(env, s.args)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleReplCommandInput processes a /command. Returns false to exit.
func handleReplCommandInput(input string, s *replSession) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case "/exit", "/quit", "/q":
		return false
	case "/clear":
		if s.conversation.Clear() {
			fmt.Println("대화를 초기화했습니다.")
		}
	case "/mock":
		s.cfg.Chat.UseMock = true
		fmt.Println("모의 모드로 전환했습니다.")
	case "/live":
		s.cfg.Chat.UseMock = false
		fmt.Println("실제 백엔드를 사용합니다.")
	case "/raw":
		s.args.Raw = !s.args.Raw
		if s.args.Raw {
			fmt.Println("원본 JSON 출력을 켰습니다.")
		} else {
			fmt.Println("원본 JSON 출력을 껐습니다.")
		}
	case "/config":
		printConfigSummary(s.cfg)
	case "/help":
		fmt.Println(replHelpText)
	default:
		fmt.Printf("알 수 없는 명령입니다: %s (/help 참고)\n", parts[0])
	}
	return true
}

const replHelpText = `명령:
  /clear    대화 초기화
  /mock     모의 모드로 전환
  /live     실제 백엔드 사용
  /raw      원본 JSON 출력 전환
  /config   현재 설정 요약
  /help     이 도움말
  /exit     종료 (exit, quit, Ctrl+D 동일)`

// =============================================================================
// OUTPUT
// =============================================================================

func printReplBanner(cfg *config.Config) {
	mode := "LIVE"
	if cfg.Chat.UseMock {
		mode = "MOCK"
	}
	fmt.Println(infoStyle.Render("Reg Navigator - 규제 정보 AI 어시스턴트"))
	fmt.Printf("모드: %s | 모델: %s | /help 로 명령 확인\n\n", mode, cfg.Model.Name)
}

func printReplSummary(s *replSession) {
	if s.args.Quiet {
		return
	}
	elapsed := time.Since(s.startTime).Round(time.Second)
	fmt.Printf("메시지 %d개, %s 동안 사용했습니다.\n",
		s.conversation.MessageCount(), elapsed)
}

// requireTTY returns an error when stdin is not a terminal.
func requireTTY(operation string) error {
	if !IsTTY() {
		return fmt.Errorf("stdin is not a terminal; cannot %s interactively", operation)
	}
	return nil
}
