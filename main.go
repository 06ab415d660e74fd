// regnav - A terminal client for the Reg Navigator regulatory Q&A service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yabooung/regnav-tui/internal/cli"
)

func main() {
	// A local .env is the easiest way to point a dev build at a staging
	// backend. Absence is not an error.
	_ = godotenv.Load()

	cmd, args := cli.ParseArgs(os.Args[1:])
	if err := cli.Run(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "regnav: %v\n", err)
		os.Exit(1)
	}
}
