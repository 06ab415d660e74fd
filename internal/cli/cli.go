// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for regnav.
package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdRepl
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet bool
	JSON  bool // Output in JSON format
	Mock  bool // Force mock responses regardless of config
	Live  bool // Force live backend regardless of config
	Raw   bool // Print the raw structured payload instead of rendering
	Model string

	// Command-specific
	Query      string
	Subcommand string

	// Remaining args after the command name
	Rest []string
}

const usageText = `regnav - 규제 정보 AI 어시스턴트

Reg Navigator는 규제 관련 질문에 답하는 RAG 기반 어시스턴트입니다.

Usage:
  regnav                     TUI 시작 (기본)
  regnav ask "질문"          질문 하나를 보내고 답변을 출력
  regnav repl                줄 단위 대화 모드 (입력 이력 지원)
  regnav config [show|set|path|reset]
                             설정 관리
  regnav version             버전 정보
  regnav help                이 도움말

Global flags:
  --mock                     백엔드 대신 모의 응답 사용
  --live                     설정과 무관하게 실제 백엔드 사용
  --json                     결과를 JSON으로 출력
  --raw                      구조화 답변의 원본 JSON을 출력
  --model NAME               이번 실행에서 사용할 모델 이름
  --quiet, -q                부가 출력 생략

Ask:
  regnav ask "최근 개정된 금융 규제 알려줘"
  regnav ask --mock "드론 비행 규제 알려줘"
  regnav ask --json "개인정보보호법 주요 조항 설명해줘" > answer.json

Config:
  regnav config show         현재 설정 출력
  regnav config path         설정 파일 경로 출력
  regnav config set model.temperature 0.3
  regnav config set chat.use_mock off
  regnav config reset        API 옵션을 기본값으로 재설정

Environment:
  REGNAV_MOCK=1              모의 모드 강제
  REGNAV_BASE_URL=...        백엔드 주소 재지정
  NO_COLOR=1                 색상 출력 비활성화
`

// ParseArgs parses os.Args[1:] into a command and its arguments.
func ParseArgs(argv []string) (Command, Args) {
	args := Args{}
	positional := make([]string, 0, len(argv))

	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "--quiet" || arg == "-q":
			args.Quiet = true
		case arg == "--json":
			args.JSON = true
		case arg == "--mock":
			args.Mock = true
		case arg == "--live":
			args.Live = true
		case arg == "--raw":
			args.Raw = true
		case arg == "--model":
			if i+1 < len(argv) {
				args.Model = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--model="):
			args.Model = strings.TrimPrefix(arg, "--model=")
		case arg == "--help" || arg == "-h":
			return CmdHelp, args
		default:
			positional = append(positional, arg)
		}
		i++
	}

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	args.Rest = positional[1:]
	if len(args.Rest) > 0 {
		args.Subcommand = args.Rest[0]
	}

	switch cmd {
	case "ask", "a":
		args.Query = strings.Join(args.Rest, " ")
		args.Subcommand = ""
		return CmdAsk, args
	case "repl", "chat":
		return CmdRepl, args
	case "config", "cfg":
		return CmdConfig, args
	case "version", "-v", "--version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		// Bare words are treated as a question, matching "regnav ask".
		args.Query = strings.Join(positional, " ")
		return CmdAsk, args
	}
}

// Run dispatches the parsed command.
func Run(cmd Command, args Args) error {
	switch cmd {
	case CmdTUI:
		return RunTUI(args)
	case CmdAsk:
		return HandleAskCommand(args)
	case CmdRepl:
		return HandleReplCommand(args)
	case CmdConfig:
		return HandleConfigCommand(args)
	case CmdVersion:
		return HandleVersionCommand(args)
	case CmdHelp:
		fmt.Print(usageText)
		return nil
	default:
		fmt.Print(usageText)
		return nil
	}
}
