// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ragapi

import "context"

// ChatWithAI is the single entry point for sending a query. It routes to the
// mock engine or the live backend based on useMock.
//
// On the mock path, simple mode is re-derived from the options first (the
// same rule the builder applies: simple-query flag set, or both toggles off);
// simple mode returns the minimal canned answer without keyword dispatch.
// On the live path the options flow into BuildRequest unchanged.
func (c *Client) ChatWithAI(ctx context.Context, query string, opts *Options, useMock bool) (*Envelope, error) {
	if useMock {
		if isSimpleMode(opts) {
			return SimpleAnswer(query), nil
		}
		return SendMock(ctx, query, c.config.MockDelay)
	}
	return c.Chat(ctx, query, opts)
}

// isSimpleMode applies the simple-query rule to an options bag: the explicit
// flag, or the API-model and custom-prompt toggles both resolving false.
func isSimpleMode(opts *Options) bool {
	if opts == nil {
		return false
	}
	if opts.UseSimpleQuery {
		return true
	}
	useAPIModel := true
	if opts.UseAPIModel != nil {
		useAPIModel = *opts.UseAPIModel
	}
	useCustomPrompt := true
	if opts.UseCustomPrompt != nil {
		useCustomPrompt = *opts.UseCustomPrompt
	}
	return !useAPIModel && !useCustomPrompt
}
