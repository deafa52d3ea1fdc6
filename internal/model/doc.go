// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and risk findings.
//
// This package defines the core domain types used throughout the application
// for representing a chat session with the risk-intelligence backend.
//
// # Key Types
//
//   - Conversation: Ordered sequence of chat turns with at-most-one-outstanding
//     request tracking
//   - ChatTurn: Single turn with role, content, and attached findings
//   - ContextItem: One retrieved risk finding attached to an assistant turn
//   - RiskMetadata: Structured attributes describing a finding's source
//   - Role: Turn role enumeration (user, assistant)
//
// # Usage
//
// Create a conversation and run one request cycle:
//
//	conv := model.NewConversation()
//	if _, err := conv.AppendUser("exposure for Acme Corp"); err != nil {
//	    return err
//	}
//	// ... issue the backend request, then:
//	conv.ResolveSuccess(answer, findings)
//
// The conversation has process lifetime only; it is never persisted.
package model
