// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive chat view.
//
// The view is a Bubble Tea model wiring together the conversation store,
// the backend client, and the shared UI components. It owns:
//
//   - Input handling and submission (one outstanding request at a time)
//   - Asynchronous backend queries via tea.Cmd
//   - Rendering of user/assistant bubbles and supporting findings
//   - Transcript export and history clearing
//
// State transitions are deliberately simple: Ready -> Thinking on submit,
// Thinking -> Ready when the backend answers or fails. The conversation
// store enforces the at-most-one-outstanding invariant; the view just
// surfaces it.
package chat
