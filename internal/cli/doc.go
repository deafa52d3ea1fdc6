// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface.
//
// Two commands talk to the retrieval backend:
//
//	ask   - one-shot query, markdown-rendered answer on a TTY
//	chat  - line-oriented REPL with input history (for terminals where
//	        the full-screen TUI is unwanted, e.g. over ssh or in scripts)
//
// Both honor the same configuration and environment overrides as the TUI.
package cli
