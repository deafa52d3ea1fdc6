// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

func sampleTurns() []model.ChatTurn {
	return []model.ChatTurn{
		model.NewUserTurn("What are the supply chain risks for Acme Corp?"),
		model.NewAssistantTurn("Acme Corp shows elevated supplier concentration risk.", []model.ContextItem{
			{
				Content: "Acme depends on a single semiconductor supplier in Taiwan.",
				Metadata: model.RiskMetadata{
					CompanyName:     "Acme Corp",
					RiskCategory:    "Supply Chain",
					RiskSubcategory: "Concentration",
					Priority:        1,
					SourceName:      "Quarterly Filing",
					DUNSID:          "123456789",
				},
			},
		}),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"html", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMarkdownExport(t *testing.T) {
	data, err := (&MarkdownExporter{}).Export(sampleTurns())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"# Risk Conversation",
		"### You",
		"### Assistant",
		"Supporting findings (1)",
		"**Acme Corp** - Supply Chain / Concentration (P1)",
		"Source: Quarterly Filing",
		"DUNS: 123456789",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown export missing %q", want)
		}
	}
}

func TestMarkdownExportEmpty(t *testing.T) {
	if _, err := (&MarkdownExporter{}).Export(nil); err == nil {
		t.Error("expected error for empty transcript")
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	data, err := (&JSONExporter{}).Export(sampleTurns())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc jsonTranscript
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.TurnCount != 2 || len(doc.Turns) != 2 {
		t.Errorf("expected 2 turns, got count=%d len=%d", doc.TurnCount, len(doc.Turns))
	}
	if doc.Turns[1].Context[0].Metadata.CompanyName != "Acme Corp" {
		t.Errorf("finding metadata lost in round trip")
	}
}

func TestWriteTranscript(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTranscript(sampleTurns(), FormatMarkdown, dir)
	if err != nil {
		t.Fatalf("WriteTranscript failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("transcript written outside output dir: %s", path)
	}
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("expected .md extension, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	if !strings.Contains(string(data), "Acme Corp") {
		t.Error("transcript content missing")
	}
}

func TestWriteTranscriptEmpty(t *testing.T) {
	if _, err := WriteTranscript(nil, FormatMarkdown, t.TempDir()); err == nil {
		t.Error("expected error for empty transcript")
	}
}
