// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen TUI launcher for regnav.
package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/ui/chat"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// RunTUI starts the full-screen chat interface.
func RunTUI(args Args) error {
	if !IsTTY() {
		return fmt.Errorf("stdin is not a terminal; use \"regnav ask\" for non-interactive queries")
	}

	cfg, client, err := loadSession(args)
	if err != nil {
		return err
	}

	theme := styles.NewTheme()
	m := chat.New(theme, cfg, client)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Hot-reload the config file while the TUI is running. Watcher setup
	// failure is not fatal; edits just require a restart.
	watcher, err := config.NewWatcher(500*time.Millisecond, func(newCfg *config.Config) {
		p.Send(chat.ConfigReloadedMsg{Config: newCfg})
	})
	if err == nil {
		go func() {
			if err := watcher.Watch(); err != nil {
				fmt.Fprintf(os.Stderr, "config watcher stopped: %v\n", err)
			}
		}()
		defer watcher.Close()
	}

	_, err = p.Run()
	return err
}
