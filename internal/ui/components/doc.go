// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the riskwatch TUI.
//
// Components:
//   - Header: title bar with backend protocol and connection state
//   - StatusBar: bottom bar with status, finding count, and shortcuts
//   - Spinner: loading indicator shown while a query is outstanding
//   - FindingCard: one retrieved risk finding with its metadata
//   - CodeBlock: syntax-highlighted code blocks inside finding prose
//
// Each component renders through the shared styles.Theme so light and dark
// terminals get consistent output.
package components
