// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// METADATA TESTS
// =============================================================================

// TestOptionalFieldsOmitsAbsent verifies absent optional metadata renders as
// absent rather than as placeholder values.
func TestOptionalFieldsOmitsAbsent(t *testing.T) {
	meta := RiskMetadata{
		CompanyName:     "Acme Corp",
		RiskCategory:    "Compliance",
		RiskSubcategory: "Sanctions",
		Priority:        1,
		SourceName:      "OFAC Bulletin",
	}

	fields := meta.OptionalFields()
	if len(fields) != 1 {
		t.Fatalf("OptionalFields returned %d fields, expected 1", len(fields))
	}
	if fields[0][0] != "Source" || fields[0][1] != "OFAC Bulletin" {
		t.Errorf("OptionalFields[0] = %v", fields[0])
	}

	for _, f := range fields {
		if strings.Contains(f[1], "undefined") {
			t.Errorf("field %q rendered a placeholder value %q", f[0], f[1])
		}
	}
}

// TestOptionalFieldsStableOrder verifies fully populated metadata yields all
// five optional fields in a stable order.
func TestOptionalFieldsStableOrder(t *testing.T) {
	meta := RiskMetadata{
		CompanyName:     "Acme Corp",
		RiskCategory:    "Operational",
		RiskSubcategory: "Supply Chain",
		Priority:        3,
		DocType:         "news",
		SourceName:      "Reuters",
		DUNSID:          "123456789",
		FileSourceTag:   "batch-7",
		BusinessID:      "biz-42",
	}

	fields := meta.OptionalFields()
	want := []string{"Doc Type", "Source", "DUNS", "File Source", "Business ID"}
	if len(fields) != len(want) {
		t.Fatalf("OptionalFields returned %d fields, expected %d", len(fields), len(want))
	}
	for i, label := range want {
		if fields[i][0] != label {
			t.Errorf("field %d label = %q, expected %q", i, fields[i][0], label)
		}
	}
}

// =============================================================================
// TURN TESTS
// =============================================================================

// TestNewAssistantTurnNormalizesNilContext verifies the nil-to-empty rule.
func TestNewAssistantTurnNormalizesNilContext(t *testing.T) {
	turn := NewAssistantTurn("content", nil)
	if turn.Context == nil {
		t.Error("Context is nil, expected empty slice")
	}
}

// TestTurnIDsUnique verifies turn IDs are distinct.
func TestTurnIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		turn := NewUserTurn("x")
		if seen[turn.ID] {
			t.Fatalf("duplicate turn ID %s", turn.ID)
		}
		seen[turn.ID] = true
	}
}

// TestContextItemPreview verifies rune-safe single-line previews.
func TestContextItemPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{name: "short", content: "brief finding", maxLen: 50, want: "brief finding"},
		{name: "collapses whitespace", content: "line one\nline two", maxLen: 50, want: "line one line two"},
		{name: "truncates", content: "abcdefghij", maxLen: 8, want: "abcde..."},
		{name: "unicode safe", content: "风险警报风险警报", maxLen: 7, want: "风险警报..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := ContextItem{Content: tc.content}
			if got := item.Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%d) = %q, expected %q", tc.maxLen, got, tc.want)
			}
		})
	}
}

// TestRoleDisplayName verifies role display names.
func TestRoleDisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser.DisplayName() = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Analyst" {
		t.Errorf("RoleAssistant.DisplayName() = %q", RoleAssistant.DisplayName())
	}
}
