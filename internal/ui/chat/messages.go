// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/riskwatch-tui/internal/backend"
	"github.com/jeranaias/riskwatch-tui/internal/seed"
)

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// QueryResultMsg carries the outcome of a backend query. Exactly one of
// Answer or Err is set.
type QueryResultMsg struct {
	Answer *backend.Answer
	Err    error
}

// SeedReloadedMsg is delivered when the watched seed file changes on disk.
type SeedReloadedMsg struct {
	Payload *seed.Payload
}

// ExportDoneMsg reports the result of a transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// statusClearMsg clears a transient status line after a delay.
type statusClearMsg struct{}
