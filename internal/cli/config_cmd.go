// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "regnav config" command handlers.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yabooung/regnav-tui/internal/config"
)

// HandleConfigCommand handles "regnav config [show|set|path|reset]".
func HandleConfigCommand(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "set":
		return configSet(args)
	case "path":
		return configPath()
	case "reset":
		return configReset()
	default:
		return fmt.Errorf("unknown config subcommand: %s (show|set|path|reset)", args.Subcommand)
	}
}

func configShow(args Args) error {
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return err
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	printConfigSummary(cfg)
	return nil
}

// printConfigSummary prints the settings that matter day to day.
func printConfigSummary(cfg *config.Config) {
	onOff := func(b bool) string {
		if b {
			return "켜짐"
		}
		return "꺼짐"
	}

	fmt.Println("[api]")
	fmt.Printf("  base_url         = %s\n", cfg.API.BaseURL)
	fmt.Printf("  endpoint         = %s\n", cfg.API.Endpoint)
	fmt.Printf("  timeout_secs     = %d\n", cfg.API.TimeoutSecs)
	fmt.Println("[chat]")
	fmt.Printf("  use_mock         = %s\n", onOff(cfg.Chat.UseMock))
	fmt.Printf("  use_simple_query = %s\n", onOff(cfg.Chat.UseSimpleQuery))
	fmt.Printf("  use_api_model    = %s\n", onOff(cfg.Chat.UseAPIModel))
	fmt.Printf("  mock_delay_ms    = %d\n", cfg.Chat.MockDelayMs)
	fmt.Println("[model]")
	fmt.Printf("  name             = %s\n", cfg.Model.Name)
	fmt.Printf("  temperature      = %.1f\n", cfg.Model.Temperature)
	fmt.Printf("  max_tokens       = %d\n", cfg.Model.MaxTokens)
	fmt.Printf("  top_k            = %d\n", cfg.Model.TopK)
	fmt.Println("[retrieval]")
	fmt.Printf("  collection_name  = %s\n", cfg.Retrieval.CollectionName)
	fmt.Printf("  filter_threshold = %.2f\n", cfg.Retrieval.FilterThreshold)
	fmt.Printf("  use_mmr          = %s\n", onOff(cfg.Retrieval.UseMMR))
	fmt.Println("[stages]")
	fmt.Printf("  classification   = %s\n", onOff(cfg.Stages.EnableClassification))
	fmt.Printf("  amplification    = %s\n", onOff(cfg.Stages.EnableAmplification))
	fmt.Printf("  validation       = %s\n", onOff(cfg.Stages.EnableValidation))
}

func configSet(args Args) error {
	// Rest is ["set", key, value].
	if len(args.Rest) < 3 {
		return fmt.Errorf("usage: regnav config set <section.key> <value>")
	}
	key := strings.ToLower(args.Rest[1])
	value := args.Rest[2]

	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return err
	}

	if err := applyConfigKey(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}

// applyConfigKey sets one dotted key on the config.
func applyConfigKey(cfg *config.Config, key, value string) error {
	boolVal := func() (bool, error) { return ParseBoolString(value) }
	intVal := func() (int, error) { return strconv.Atoi(value) }
	floatVal := func() (float64, error) { return strconv.ParseFloat(value, 64) }

	var err error
	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.endpoint":
		cfg.API.Endpoint = value
	case "api.timeout_secs":
		cfg.API.TimeoutSecs, err = intVal()
	case "chat.use_mock":
		cfg.Chat.UseMock, err = boolVal()
	case "chat.use_simple_query":
		cfg.Chat.UseSimpleQuery, err = boolVal()
	case "chat.use_api_model":
		cfg.Chat.UseAPIModel, err = boolVal()
	case "chat.use_custom_prompt":
		cfg.Chat.UseCustomPrompt, err = boolVal()
	case "chat.mock_delay_ms":
		cfg.Chat.MockDelayMs, err = intVal()
	case "model.name":
		cfg.Model.Name = value
	case "model.temperature":
		cfg.Model.Temperature, err = floatVal()
	case "model.max_tokens":
		cfg.Model.MaxTokens, err = intVal()
	case "model.top_k":
		cfg.Model.TopK, err = intVal()
	case "retrieval.collection_name":
		cfg.Retrieval.CollectionName = value
	case "retrieval.filter_threshold":
		cfg.Retrieval.FilterThreshold, err = floatVal()
	case "retrieval.use_mmr":
		cfg.Retrieval.UseMMR, err = boolVal()
	case "retrieval.lambda_mult":
		cfg.Retrieval.LambdaMult, err = floatVal()
	case "stages.enable_classification":
		cfg.Stages.EnableClassification, err = boolVal()
	case "stages.enable_amplification":
		cfg.Stages.EnableAmplification, err = boolVal()
	case "stages.enable_validation":
		cfg.Stages.EnableValidation, err = boolVal()
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.compact_mode":
		cfg.UI.CompactMode, err = boolVal()
	case "ui.show_timestamps":
		cfg.UI.ShowTimestamps, err = boolVal()
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return err
}

func configPath() error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func configReset() error {
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return err
	}

	cfg.ResetAPIOptions()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("API 옵션을 기본값으로 재설정했습니다.")
	return nil
}

// ParseBoolString parses a boolean from common string forms.
// Accepts true/false, yes/no, y/n, 1/0, on/off (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
