// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"query": "acme supplier exposure",
		"status": "ok",
		"count": 2,
		"context": [
			{"content": "Finding one.", "metadata": {"company_name": "Acme", "risk_category": "Financial", "risk_subcategory": "Credit", "priority": 1}},
			{"content": "Finding two.", "metadata": {"company_name": "Acme", "risk_category": "Legal", "risk_subcategory": "Litigation", "priority": 2}}
		]
	}`)

	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Query != "acme supplier exposure" {
		t.Errorf("query = %q", p.Query)
	}
	if p.Count != 2 {
		t.Errorf("count = %d", p.Count)
	}
	if !p.HasFindings() {
		t.Error("expected findings")
	}
	if p.Context[1].Metadata.RiskCategory != "Legal" {
		t.Errorf("category = %q", p.Context[1].Metadata.RiskCategory)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestTurnContent(t *testing.T) {
	withQuery := &Payload{Query: "Q"}
	if got := withQuery.TurnContent(); got != `Here are the initial risk findings for: "Q"` {
		t.Errorf("content = %q", got)
	}

	noQuery := &Payload{}
	if got := noQuery.TurnContent(); got != "Here are the initial risk findings." {
		t.Errorf("fallback content = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	content := `{"query": "Q", "context": [{"content": "c", "metadata": {"company_name": "A", "risk_category": "F", "risk_subcategory": "L", "priority": 1}}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Context) != 1 {
		t.Fatalf("context length = %d", len(p.Context))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApply(t *testing.T) {
	conv := model.NewConversation()
	item := model.ContextItem{
		Content:  "Acme credit downgrade.",
		Metadata: model.RiskMetadata{CompanyName: "Acme", RiskCategory: "Financial", RiskSubcategory: "Credit", Priority: 1},
	}
	Apply(conv, &Payload{Query: "Q", Context: []model.ContextItem{item}})

	if conv.TurnCount() != 1 {
		t.Fatalf("turn count = %d, want 1", conv.TurnCount())
	}
	turn := conv.Turns[0]
	if turn.Role != model.RoleAssistant {
		t.Errorf("role = %v", turn.Role)
	}
	if turn.Content != `Here are the initial risk findings for: "Q"` {
		t.Errorf("content = %q", turn.Content)
	}
	if len(turn.Context) != 1 {
		t.Errorf("context length = %d", len(turn.Context))
	}
}

func TestApplyEmptyPayloadIsNoop(t *testing.T) {
	conv := model.NewConversation()
	Apply(conv, &Payload{Query: "Q"})
	Apply(conv, nil)

	if !conv.IsEmpty() {
		t.Error("conversation should stay empty without findings")
	}
}
