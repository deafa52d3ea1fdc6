// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"
)

// =============================================================================
// APPEND TESTS
// =============================================================================

// TestAppendUser verifies that valid input appends exactly one user turn.
func TestAppendUser(t *testing.T) {
	conv := NewConversation()

	turn, err := conv.AppendUser("  supplier risk for Acme Corp  ")
	if err != nil {
		t.Fatalf("AppendUser returned error: %v", err)
	}

	if conv.TurnCount() != 1 {
		t.Fatalf("TurnCount = %d, expected 1", conv.TurnCount())
	}
	if turn.Role != RoleUser {
		t.Errorf("Role = %s, expected user", turn.Role)
	}
	if turn.Content != "supplier risk for Acme Corp" {
		t.Errorf("Content = %q, expected trimmed input", turn.Content)
	}
	if !conv.Awaiting() {
		t.Error("conversation should be awaiting a reply after AppendUser")
	}
}

// TestAppendUserRejectsEmptyInput verifies empty and whitespace-only input is
// a no-op: the sequence is unchanged and the conversation is not awaiting.
func TestAppendUserRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "spaces", input: "   "},
		{name: "tabs and newlines", input: "\t\n  \n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv := NewConversation()
			_, err := conv.AppendUser(tc.input)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("AppendUser(%q) error = %v, expected ErrEmptyInput", tc.input, err)
			}
			if conv.TurnCount() != 0 {
				t.Errorf("TurnCount = %d, expected 0", conv.TurnCount())
			}
			if conv.Awaiting() {
				t.Error("conversation should not be awaiting after rejected input")
			}
		})
	}
}

// TestAppendUserRejectedWhileAwaiting verifies the at-most-one-outstanding
// rule: a second submission is rejected and the sequence is unchanged until
// the first request resolves.
func TestAppendUserRejectedWhileAwaiting(t *testing.T) {
	conv := NewConversation()
	if _, err := conv.AppendUser("first"); err != nil {
		t.Fatalf("first AppendUser failed: %v", err)
	}

	_, err := conv.AppendUser("second")
	if !errors.Is(err, ErrAwaitingReply) {
		t.Fatalf("second AppendUser error = %v, expected ErrAwaitingReply", err)
	}
	if conv.TurnCount() != 1 {
		t.Errorf("TurnCount = %d, expected 1", conv.TurnCount())
	}

	// After the first request resolves, submission works again.
	if _, err := conv.ResolveSuccess("answer", nil); err != nil {
		t.Fatalf("ResolveSuccess failed: %v", err)
	}
	if _, err := conv.AppendUser("second"); err != nil {
		t.Errorf("AppendUser after resolve failed: %v", err)
	}
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

// TestResolveSuccess verifies the success path appends exactly one assistant
// turn carrying the backend's findings.
func TestResolveSuccess(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("query")

	findings := []ContextItem{
		{
			Content: "Acme flagged for sanctions exposure.",
			Metadata: RiskMetadata{
				CompanyName:     "Acme Corp",
				RiskCategory:    "Compliance",
				RiskSubcategory: "Sanctions",
				Priority:        1,
			},
		},
	}

	turn, err := conv.ResolveSuccess("Here is what I found.", findings)
	if err != nil {
		t.Fatalf("ResolveSuccess returned error: %v", err)
	}

	if conv.TurnCount() != 2 {
		t.Fatalf("TurnCount = %d, expected 2", conv.TurnCount())
	}
	if turn.Role != RoleAssistant {
		t.Errorf("Role = %s, expected assistant", turn.Role)
	}
	if len(turn.Context) != 1 {
		t.Errorf("len(Context) = %d, expected 1", len(turn.Context))
	}
	if conv.Awaiting() {
		t.Error("conversation should not be awaiting after resolve")
	}
}

// TestResolveSuccessNilContext verifies a nil backend context is recorded as
// an empty slice, never nil.
func TestResolveSuccessNilContext(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("query")

	turn, err := conv.ResolveSuccess("no findings", nil)
	if err != nil {
		t.Fatalf("ResolveSuccess returned error: %v", err)
	}
	if turn.Context == nil {
		t.Error("Context is nil, expected empty slice")
	}
	if len(turn.Context) != 0 {
		t.Errorf("len(Context) = %d, expected 0", len(turn.Context))
	}
}

// TestResolveFailure verifies the failure path: the user turn is kept and
// exactly one error assistant turn with empty context is appended.
func TestResolveFailure(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("query")

	turn, err := conv.ResolveFailure()
	if err != nil {
		t.Fatalf("ResolveFailure returned error: %v", err)
	}

	if conv.TurnCount() != 2 {
		t.Fatalf("TurnCount = %d, expected 2 (user turn kept)", conv.TurnCount())
	}
	if conv.Turns[0].Role != RoleUser {
		t.Error("user turn was not kept at position 0")
	}
	if turn.Content != BackendErrorContent {
		t.Errorf("Content = %q, expected fixed error content", turn.Content)
	}
	if len(turn.Context) != 0 {
		t.Errorf("len(Context) = %d, expected 0", len(turn.Context))
	}

	// Conversation stays usable: the user may immediately submit again.
	if _, err := conv.AppendUser("retry query"); err != nil {
		t.Errorf("AppendUser after failure returned error: %v", err)
	}
}

// TestResolveWithoutAwaiting verifies resolving with no outstanding user turn
// is rejected.
func TestResolveWithoutAwaiting(t *testing.T) {
	conv := NewConversation()

	if _, err := conv.ResolveSuccess("answer", nil); !errors.Is(err, ErrNotAwaiting) {
		t.Errorf("ResolveSuccess error = %v, expected ErrNotAwaiting", err)
	}
	if _, err := conv.ResolveFailure(); !errors.Is(err, ErrNotAwaiting) {
		t.Errorf("ResolveFailure error = %v, expected ErrNotAwaiting", err)
	}
	if conv.TurnCount() != 0 {
		t.Errorf("TurnCount = %d, expected 0", conv.TurnCount())
	}
}

// =============================================================================
// SEEDING TESTS
// =============================================================================

// TestSeedAssistantTurn verifies seeding produces a single assistant turn
// carrying the given findings.
func TestSeedAssistantTurn(t *testing.T) {
	conv := NewConversation()
	item := ContextItem{
		Content: "finding",
		Metadata: RiskMetadata{
			CompanyName:  "Acme Corp",
			RiskCategory: "Financial",
			Priority:     2,
		},
	}

	conv.SeedAssistantTurn(`Here are the initial risk findings for: "Q"`, []ContextItem{item})

	if conv.TurnCount() != 1 {
		t.Fatalf("TurnCount = %d, expected 1", conv.TurnCount())
	}
	turn := conv.Turns[0]
	if turn.Role != RoleAssistant {
		t.Errorf("Role = %s, expected assistant", turn.Role)
	}
	if turn.Content != `Here are the initial risk findings for: "Q"` {
		t.Errorf("Content = %q", turn.Content)
	}
	if len(turn.Context) != 1 || turn.Context[0].Content != "finding" {
		t.Errorf("Context = %+v, expected the seeded finding", turn.Context)
	}
	if conv.Awaiting() {
		t.Error("seeding must not mark the conversation awaiting")
	}
}

// TestSeedIgnoredWhenPopulated verifies seeding a non-empty conversation is a
// no-op.
func TestSeedIgnoredWhenPopulated(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("query")

	conv.SeedAssistantTurn("greeting", nil)

	if conv.TurnCount() != 1 {
		t.Errorf("TurnCount = %d, expected 1 (seed ignored)", conv.TurnCount())
	}
}

// =============================================================================
// SNAPSHOT AND HISTORY TESTS
// =============================================================================

// TestSnapshotIsCopy verifies mutating a snapshot does not affect the store.
func TestSnapshotIsCopy(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("query")

	snap := conv.Snapshot()
	snap[0].Content = "mutated"

	if conv.Turns[0].Content != "query" {
		t.Error("mutating a snapshot leaked into the conversation")
	}
}

// TestClearHistory verifies clearing, and that it is rejected while awaiting.
func TestClearHistory(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("query")

	if err := conv.ClearHistory(); !errors.Is(err, ErrAwaitingReply) {
		t.Errorf("ClearHistory while awaiting error = %v, expected ErrAwaitingReply", err)
	}

	conv.ResolveSuccess("answer", nil)
	if err := conv.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory returned error: %v", err)
	}
	if !conv.IsEmpty() {
		t.Error("conversation should be empty after ClearHistory")
	}
}

// TestPruneOldTurns verifies pruning drops whole exchanges from the front.
func TestPruneOldTurns(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxTurns/2+10; i++ {
		if _, err := conv.AppendUser("q"); err != nil {
			t.Fatalf("AppendUser failed at %d: %v", i, err)
		}
		if _, err := conv.ResolveSuccess("a", nil); err != nil {
			t.Fatalf("ResolveSuccess failed at %d: %v", i, err)
		}
	}

	if conv.TurnCount() > MaxTurns {
		t.Errorf("TurnCount = %d, expected <= %d", conv.TurnCount(), MaxTurns)
	}
	// The first remaining turn must be a user turn: pruning never splits an
	// exchange.
	if conv.Turns[0].Role != RoleUser {
		t.Errorf("first turn after pruning is %s, expected user", conv.Turns[0].Role)
	}
}
