// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/yabooung/regnav-tui/internal/ragapi"
	"github.com/yabooung/regnav-tui/internal/util"
)

// GenericErrorMessage is the fixed bot-visible text appended when a send
// fails. Transport detail is never shown to the user; every failure surfaces
// in this one form.
const GenericErrorMessage = "죄송합니다. 응답을 받아오는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."

// =============================================================================
// SEND STATE
// =============================================================================

// SendState tracks whether a request is in flight for the conversation.
type SendState int

const (
	// StateIdle means no request is in flight; sends and clears are allowed.
	StateIdle SendState = iota
	// StateAwaiting means a request is in flight; further sends and clears
	// are refused until CompleteSend or FailSend runs.
	StateAwaiting
)

// String returns the string representation of the state.
func (s SendState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat session: an append-only message log plus the
// send state machine that guards it.
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`

	state SendState
}

// NewConversation creates an empty conversation in the idle state.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// STATE MACHINE
// =============================================================================

// State returns the current send state.
func (c *Conversation) State() SendState {
	return c.state
}

// IsAwaiting returns true while a request is in flight.
func (c *Conversation) IsAwaiting() bool {
	return c.state == StateAwaiting
}

// BeginSend starts a send: it normalizes the query, appends the user message
// optimistically, and transitions to awaiting. It refuses (returns nil and
// false) when the trimmed query is empty or a request is already in flight,
// appending nothing in either case.
func (c *Conversation) BeginSend(query string) (*Message, bool) {
	if c.state == StateAwaiting {
		return nil, false
	}
	normalized := util.NormalizeQuery(query)
	if normalized == "" {
		return nil, false
	}

	msg := NewUserMessage(normalized)
	c.append(msg)
	c.state = StateAwaiting
	return msg, true
}

// CompleteSend finishes a successful send: it appends the bot message
// composed from the response envelope and returns to idle. A raw structured
// payload takes precedence over the flat answer; it is wrapped in a fenced
// json block so the message content carries the full payload for rendering.
func (c *Conversation) CompleteSend(env *ragapi.Envelope) *Message {
	if c.state != StateAwaiting {
		return nil
	}

	content := ""
	var refs []Reference
	if env != nil {
		if env.RawJSON != "" {
			content = "```json\n" + env.RawJSON + "\n```"
		} else {
			content = env.Answer
		}
		for _, r := range env.References {
			refs = append(refs, Reference{Title: r.Title, URL: r.URL})
		}
	}

	msg := NewBotMessage(content, refs)
	c.append(msg)
	c.state = StateIdle
	return msg
}

// FailSend finishes a failed send: it appends the fixed generic error text as
// a bot message and returns to idle. The underlying error kind does not
// change what the user sees.
func (c *Conversation) FailSend() *Message {
	if c.state != StateAwaiting {
		return nil
	}

	msg := NewBotMessage(GenericErrorMessage, nil)
	msg.IsError = true
	c.append(msg)
	c.state = StateIdle
	return msg
}

// Clear empties the message log. Permitted only from idle; returns false
// while a request is in flight.
func (c *Conversation) Clear() bool {
	if c.state != StateIdle {
		return false
	}
	c.Messages = make([]*Message, 0)
	c.UpdatedAt = time.Now()
	return true
}

// =============================================================================
// ACCESSORS
// =============================================================================

// append adds a message to the log. All mutation goes through here.
func (c *Conversation) append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastUserMessage returns the most recent user message, or nil.
func (c *Conversation) LastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// History returns the message log for display.
func (c *Conversation) History() []*Message {
	return c.Messages
}
