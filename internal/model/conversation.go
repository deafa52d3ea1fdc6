// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and risk findings.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxTurns is the maximum number of turns to keep in conversation history.
// When exceeded, old turns are pruned to prevent unbounded memory growth.
const MaxTurns = 1000

// BackendErrorContent is the fixed content of the assistant turn appended
// when a backend request fails. The conversation stays usable afterwards.
const BackendErrorContent = "Error: Could not connect to backend."

// Errors returned by conversation operations.
var (
	// ErrEmptyInput indicates the submitted text was empty after trimming.
	ErrEmptyInput = errors.New("input is empty")

	// ErrAwaitingReply indicates a request is already outstanding. At most one
	// request may be in flight; further submissions are rejected until the
	// outstanding one resolves.
	ErrAwaitingReply = errors.New("a request is already awaiting a reply")

	// ErrNotAwaiting indicates a resolve was attempted with no outstanding
	// user turn.
	ErrNotAwaiting = errors.New("no user turn is awaiting a reply")
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the complete, ordered chat session with the backend.
// The sequence of turns is the entire session state: it is created at startup
// and discarded at exit, never persisted.
//
// All mutation happens through AppendUser, ResolveSuccess, ResolveFailure, and
// the seeding helpers. Turns are immutable once appended; a failed request
// keeps the optimistic user turn and appends a fixed error turn, so every user
// turn is always eventually followed by exactly one assistant turn.
//
// Conversation is not safe for concurrent use; it is only ever mutated from
// the UI event loop.
type Conversation struct {
	// Identity (used for log correlation and the JSON export envelope)
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Turns
	Turns []ChatTurn `json:"turns"`

	// awaiting is true from a successful AppendUser until the matching
	// Resolve call. It enforces the at-most-one-outstanding-request rule.
	awaiting bool
}

// NewConversation creates a new, empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Turns:     make([]ChatTurn, 0),
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// AppendUser validates and appends a user turn.
//
// The text is trimmed; empty input is rejected with ErrEmptyInput and leaves
// the conversation unchanged. While a previous submission is still awaiting
// its reply the call is rejected with ErrAwaitingReply, again leaving the
// sequence unchanged. On success the conversation enters the awaiting state
// and the appended turn is returned.
func (c *Conversation) AppendUser(text string) (ChatTurn, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ChatTurn{}, ErrEmptyInput
	}
	if c.awaiting {
		return ChatTurn{}, ErrAwaitingReply
	}

	turn := NewUserTurn(trimmed)
	c.appendTurn(turn)
	c.awaiting = true
	return turn, nil
}

// ResolveSuccess appends the assistant turn answering the awaiting user turn.
// A nil context is recorded as an empty slice, never nil.
func (c *Conversation) ResolveSuccess(content string, context []ContextItem) (ChatTurn, error) {
	return c.resolve(NewAssistantTurn(content, context))
}

// ResolveFailure appends the fixed backend-error assistant turn for the
// awaiting user turn. The user turn is kept, so the failed exchange stays
// visible and the conversation remains usable.
func (c *Conversation) ResolveFailure() (ChatTurn, error) {
	return c.resolve(NewAssistantTurn(BackendErrorContent, nil))
}

// resolve completes the awaiting exchange with the given assistant turn.
func (c *Conversation) resolve(turn ChatTurn) (ChatTurn, error) {
	if !c.awaiting {
		return ChatTurn{}, ErrNotAwaiting
	}
	c.appendTurn(turn)
	c.awaiting = false
	return turn, nil
}

// Awaiting reports whether a submission is outstanding. The submission
// affordance is disabled while this is true.
func (c *Conversation) Awaiting() bool {
	return c.awaiting
}

// appendTurn appends a turn and updates bookkeeping.
func (c *Conversation) appendTurn(turn ChatTurn) {
	c.Turns = append(c.Turns, turn)
	c.UpdatedAt = time.Now()
	c.pruneOldTurns()
}

// =============================================================================
// SEEDING
// =============================================================================

// SeedAssistantTurn pre-populates the conversation with one synthetic
// assistant turn, used at startup when an initial findings payload or a
// static greeting is configured. Seeding an already-populated or awaiting
// conversation is a programming error and is ignored.
func (c *Conversation) SeedAssistantTurn(content string, context []ContextItem) {
	if len(c.Turns) > 0 || c.awaiting {
		return
	}
	c.appendTurn(NewAssistantTurn(content, context))
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Snapshot returns a copy of the current turn sequence for rendering.
// Renderers redraw from the latest snapshot after every mutation.
func (c *Conversation) Snapshot() []ChatTurn {
	snap := make([]ChatTurn, len(c.Turns))
	copy(snap, c.Turns)
	return snap
}

// LastTurn returns the most recent turn, or a zero turn if empty.
func (c *Conversation) LastTurn() (ChatTurn, bool) {
	if len(c.Turns) == 0 {
		return ChatTurn{}, false
	}
	return c.Turns[len(c.Turns)-1], true
}

// LastAssistantTurn returns the most recent assistant turn.
func (c *Conversation) LastAssistantTurn() (ChatTurn, bool) {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Role == RoleAssistant {
			return c.Turns[i], true
		}
	}
	return ChatTurn{}, false
}

// TurnCount returns the number of turns.
func (c *Conversation) TurnCount() int {
	return len(c.Turns)
}

// IsEmpty returns true if there are no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.Turns) == 0
}

// FindingCount returns the total number of findings across all turns.
func (c *Conversation) FindingCount() int {
	total := 0
	for _, t := range c.Turns {
		total += len(t.Context)
	}
	return total
}

// ClearHistory removes all turns. Rejected while a request is outstanding so
// the awaiting exchange cannot be orphaned.
func (c *Conversation) ClearHistory() error {
	if c.awaiting {
		return ErrAwaitingReply
	}
	c.Turns = make([]ChatTurn, 0)
	c.UpdatedAt = time.Now()
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// pruneOldTurns removes old turns when history exceeds MaxTurns. Turns are
// dropped in pairs from the front so a user turn is never separated from its
// assistant reply.
func (c *Conversation) pruneOldTurns() {
	if len(c.Turns) <= MaxTurns {
		return
	}
	drop := len(c.Turns) - MaxTurns
	if drop%2 != 0 {
		drop++
	}
	if drop >= len(c.Turns) {
		drop = len(c.Turns) - 1
	}
	c.Turns = append(c.Turns[:0:0], c.Turns[drop:]...)
}
