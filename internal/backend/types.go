// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the risk-intelligence
// retrieval service.
package backend

import (
	"fmt"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

// =============================================================================
// PROTOCOL VARIANTS
// =============================================================================

// Protocol names one of the two backend request protocols. The variants are
// never merged: a deployment runs exactly one.
type Protocol string

const (
	// ProtocolRetrieve sends {query, k} to /retrieve. Stateless retrieval,
	// no conversation history on the wire.
	ProtocolRetrieve Protocol = "retrieve"

	// ProtocolChat sends {query, history, k} to /chat. The prior turns travel
	// with the request so the backend can ground follow-up questions.
	ProtocolChat Protocol = "chat"
)

// ParseProtocol validates a protocol name from configuration.
func ParseProtocol(s string) (Protocol, error) {
	switch Protocol(s) {
	case ProtocolRetrieve:
		return ProtocolRetrieve, nil
	case ProtocolChat:
		return ProtocolChat, nil
	default:
		return "", fmt.Errorf("unknown backend protocol %q (expected %q or %q)",
			s, ProtocolRetrieve, ProtocolChat)
	}
}

// Endpoint returns the request path for the protocol.
func (p Protocol) Endpoint() string {
	switch p {
	case ProtocolRetrieve:
		return "/retrieve"
	default:
		return "/chat"
	}
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Wire role values for the chat protocol. The backend expects "model" where
// the conversation store says assistant.
const (
	wireRoleUser  = "user"
	wireRoleModel = "model"
)

// HistoryEntry is one prior turn in the chat protocol request body.
type HistoryEntry struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// retrieveRequest is the request body for the retrieve protocol.
type retrieveRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// chatRequest is the request body for the chat protocol.
type chatRequest struct {
	Query   string         `json:"query"`
	History []HistoryEntry `json:"history"`
	K       int            `json:"k"`
}

// HistoryFromTurns maps prior conversation turns to the chat protocol's wire
// shape, preserving order. The just-submitted query must not be in turns; it
// travels separately as the query field.
func HistoryFromTurns(turns []model.ChatTurn) []HistoryEntry {
	history := make([]HistoryEntry, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case model.RoleUser:
			history = append(history, HistoryEntry{Role: wireRoleUser, Text: t.Content})
		case model.RoleAssistant:
			history = append(history, HistoryEntry{Role: wireRoleModel, Text: t.Content})
		}
	}
	return history
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// queryResponse is the response body shared by both protocols. Response is a
// pointer so a body without the field can be told apart from an empty answer:
// the former is malformed, the latter is valid.
type queryResponse struct {
	Response *string             `json:"response"`
	Context  []model.ContextItem `json:"context"`
}

// Answer is the successful outcome of one request: the prose answer plus the
// retrieved findings. Context is never nil.
type Answer struct {
	Content string
	Context []model.ContextItem
}
