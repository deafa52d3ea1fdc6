// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and risk findings.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Analyst"
	default:
		return string(r)
	}
}

// =============================================================================
// RISK METADATA
// =============================================================================

// RiskMetadata holds the structured attributes describing a finding's source.
// CompanyName, RiskCategory, RiskSubcategory, and Priority are always present;
// the remaining fields are optional and omitted from the wire format when empty.
type RiskMetadata struct {
	CompanyName     string `json:"company_name"`
	RiskCategory    string `json:"risk_category"`
	RiskSubcategory string `json:"risk_subcategory"`
	Priority        int    `json:"priority"`

	DocType       string `json:"doc_type,omitempty"`
	SourceName    string `json:"source_name,omitempty"`
	DUNSID        string `json:"duns_id,omitempty"`
	FileSourceTag string `json:"file_source_tag,omitempty"`
	BusinessID    string `json:"business_id,omitempty"`
}

// OptionalFields returns label/value pairs for the optional metadata fields
// that are actually set, in a stable order. Absent fields are simply not
// returned, so rendering layers never print placeholder values.
func (m RiskMetadata) OptionalFields() [][2]string {
	var fields [][2]string
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fields = append(fields, [2]string{label, value})
		}
	}
	add("Doc Type", m.DocType)
	add("Source", m.SourceName)
	add("DUNS", m.DUNSID)
	add("File Source", m.FileSourceTag)
	add("Business ID", m.BusinessID)
	return fields
}

// =============================================================================
// CONTEXT ITEM
// =============================================================================

// ContextItem represents one retrieved risk finding attached to an assistant
// turn. Items are owned by their parent turn and never mutated after creation.
type ContextItem struct {
	Content  string       `json:"content"`
	Metadata RiskMetadata `json:"metadata"`
}

// Preview returns a truncated single-line preview of the finding content.
// Uses rune-based truncation to handle Unicode correctly.
func (c ContextItem) Preview(maxLen int) string {
	line := strings.Join(strings.Fields(c.Content), " ")
	runes := []rune(line)
	if len(runes) <= maxLen {
		return line
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// CHAT TURN
// =============================================================================

// ChatTurn represents a single turn in the conversation. Turns are immutable
// once appended; the ordering of turns equals arrival order and is the sole
// rendering order.
type ChatTurn struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	Context   []ContextItem `json:"context"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewUserTurn creates a new user turn.
func NewUserTurn(content string) ChatTurn {
	return ChatTurn{
		ID:        generateTurnID(),
		Role:      RoleUser,
		Content:   content,
		Context:   []ContextItem{},
		Timestamp: time.Now(),
	}
}

// NewAssistantTurn creates a new assistant turn carrying zero or more findings.
// A nil context is normalized to an empty slice so renderers never see nil.
func NewAssistantTurn(content string, context []ContextItem) ChatTurn {
	if context == nil {
		context = []ContextItem{}
	}
	return ChatTurn{
		ID:        generateTurnID(),
		Role:      RoleAssistant,
		Content:   content,
		Context:   context,
		Timestamp: time.Now(),
	}
}

// HasContext returns true if the turn carries at least one finding.
func (t ChatTurn) HasContext() bool {
	return len(t.Context) > 0
}

// IsError reports whether this turn is the fixed backend failure turn.
func (t ChatTurn) IsError() bool {
	return t.Role == RoleAssistant && t.Content == BackendErrorContent
}

// Preview returns a truncated preview of the turn content.
func (t ChatTurn) Preview(maxLen int) string {
	runes := []rune(t.Content)
	if len(runes) <= maxLen {
		return t.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTurnID creates a unique turn ID.
func generateTurnID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "turn_" + hex.EncodeToString(bytes)
}
