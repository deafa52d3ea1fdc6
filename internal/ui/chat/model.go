// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/riskwatch-tui/internal/backend"
	"github.com/jeranaias/riskwatch-tui/internal/config"
	"github.com/jeranaias/riskwatch-tui/internal/model"
	"github.com/jeranaias/riskwatch-tui/internal/seed"
	"github.com/jeranaias/riskwatch-tui/internal/ui/components"
	"github.com/jeranaias/riskwatch-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	// StateReady means the input is active and a query can be submitted.
	StateReady State = iota
	// StateThinking means a query is in flight and input is locked.
	StateThinking
	// StateError means the last query failed; input is active again.
	StateError
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateThinking:
		return "thinking"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Core state
	conversation *model.Conversation
	client       *backend.Client
	cfg          *config.Config
	state        State

	// UI components
	theme     *styles.Theme
	keys      KeyMap
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	header    *components.Header
	statusBar *components.StatusBar

	// Layout
	width  int
	height int
	ready  bool

	// Transient status line shown above the input (export result, errors).
	statusLine string

	// Help overlay
	showHelp bool
}

// New creates a chat model wired to the given configuration.
// The seed payload, when non-nil, pre-populates the conversation with a
// synthetic assistant turn; otherwise the configured greeting (if enabled)
// is shown.
func New(cfg *config.Config, payload *seed.Payload) Model {
	theme := styles.NewTheme()

	protocol, err := backend.ParseProtocol(cfg.Backend.Protocol)
	if err != nil {
		protocol = backend.ProtocolChat
	}
	client := backend.NewClient().
		WithBaseURL(cfg.Backend.BaseURL).
		WithProtocol(protocol).
		WithK(cfg.Backend.K)
	if cfg.Backend.TimeoutSecs > 0 {
		client = client.WithTimeout(cfg.Backend.Timeout())
	}

	conv := model.NewConversation()
	if payload != nil && payload.HasFindings() {
		seed.Apply(conv, payload)
	} else if greeting := cfg.GreetingText(); greeting != "" {
		conv.SeedAssistantTurn(greeting, nil)
	}

	input := textinput.New()
	input.Placeholder = "Ask about company risk..."
	input.CharLimit = 4000
	input.Focus()

	vp := viewport.New(0, 0)

	sp := components.NewSpinner()

	header := components.NewHeader(theme)
	header.SetBackend(cfg.Backend.BaseURL, string(protocol))

	statusBar := components.NewStatusBar(theme)
	statusBar.SetCounts(conv.TurnCount(), conv.FindingCount())

	return Model{
		conversation: conv,
		client:       client,
		cfg:          cfg,
		state:        StateReady,
		theme:        theme,
		keys:         DefaultKeyMap(),
		viewport:     vp,
		input:        input,
		spinner:      sp,
		header:       header,
		statusBar:    statusBar,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Conversation exposes the underlying conversation store.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// State returns the current chat state.
func (m Model) State() State {
	return m.state
}

// syncStatus refreshes the status bar from conversation and chat state.
func (m *Model) syncStatus() {
	switch m.state {
	case StateThinking:
		m.statusBar.SetStatus(components.StatusThinking)
	case StateError:
		m.statusBar.SetStatus(components.StatusError)
	default:
		m.statusBar.SetStatus(components.StatusReady)
	}
	m.statusBar.SetCounts(m.conversation.TurnCount(), m.conversation.FindingCount())
}
