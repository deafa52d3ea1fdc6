// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package seed loads optional startup payloads that pre-populate the
// conversation with an initial set of risk findings.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

// =============================================================================
// PAYLOAD
// =============================================================================

// Payload is an externally supplied initial state. Every field is optional;
// only a non-empty Context causes the conversation to be seeded.
type Payload struct {
	Query   string              `json:"query,omitempty"`
	Status  string              `json:"status,omitempty"`
	Count   int                 `json:"count,omitempty"`
	Context []model.ContextItem `json:"context,omitempty"`
}

// HasFindings reports whether the payload carries any context items.
func (p *Payload) HasFindings() bool {
	return p != nil && len(p.Context) > 0
}

// TurnContent builds the prose for the synthetic assistant turn. The query is
// quoted when present; otherwise a generic line is used.
func (p *Payload) TurnContent() string {
	if p.Query != "" {
		return fmt.Sprintf("Here are the initial risk findings for: %q", p.Query)
	}
	return "Here are the initial risk findings."
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and parses a seed payload from a JSON file.
func Load(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed payload from raw JSON.
func Parse(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse seed payload: %w", err)
	}
	return &p, nil
}

// Apply seeds a conversation from the payload. A payload without findings is
// a no-op, as is a conversation that already has turns.
func Apply(conv *model.Conversation, p *Payload) {
	if !p.HasFindings() {
		return
	}
	conv.SeedAssistantTurn(p.TurnContent(), p.Context)
}
