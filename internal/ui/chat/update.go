// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/riskwatch-tui/internal/backend"
	"github.com/jeranaias/riskwatch-tui/internal/export"
	"github.com/jeranaias/riskwatch-tui/internal/model"
	"github.com/jeranaias/riskwatch-tui/internal/seed"
)

// statusLineTTL is how long transient status messages stay visible.
const statusLineTTL = 4 * time.Second

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case QueryResultMsg:
		m.spinner.Stop()
		if msg.Err != nil {
			// The store records the fixed error turn; the exact failure
			// reason only goes to the debug log.
			if _, err := m.conversation.ResolveFailure(); err == nil {
				m.state = StateError
			}
		} else {
			if _, err := m.conversation.ResolveSuccess(msg.Answer.Content, msg.Answer.Context); err == nil {
				m.state = StateReady
			}
		}
		m.syncStatus()
		m.refreshViewport(true)
		return m, nil

	case SeedReloadedMsg:
		if msg.Payload != nil && msg.Payload.HasFindings() && !m.conversation.Awaiting() {
			_ = m.conversation.ClearHistory()
			seed.Apply(m.conversation, msg.Payload)
			m.statusLine = "Seed payload reloaded"
			m.syncStatus()
			m.refreshViewport(true)
			cmds = append(cmds, clearStatusCmd())
		}
		return m, tea.Batch(cmds...)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.statusLine = "Export failed: " + msg.Err.Error()
		} else {
			m.statusLine = "Transcript exported to " + msg.Path
		}
		return m, clearStatusCmd()

	case statusClearMsg:
		m.statusLine = ""
		return m, nil
	}

	// Spinner ticks and blink messages.
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey dispatches a key press.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		// Only toggle help when the input is empty, so "?" can still be
		// typed into a query.
		if m.input.Value() == "" {
			m.showHelp = !m.showHelp
			return m, nil
		}

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		if !m.conversation.Awaiting() {
			_ = m.conversation.ClearHistory()
			m.state = StateReady
			m.statusLine = "History cleared"
			m.syncStatus()
			m.refreshViewport(true)
			return m, clearStatusCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Export):
		if m.conversation.IsEmpty() {
			m.statusLine = "Nothing to export"
			return m, clearStatusCmd()
		}
		return m, exportCmd(m.conversation.Snapshot())

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the input and fires a backend query.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())

	// History snapshot is taken before the user turn is appended, so the
	// outgoing request carries prior turns only.
	history := backend.HistoryFromTurns(m.conversation.Snapshot())

	if _, err := m.conversation.AppendUser(text); err != nil {
		switch err {
		case model.ErrEmptyInput:
			// Silently ignore empty submissions.
		case model.ErrAwaitingReply:
			m.statusLine = "Still waiting on the backend..."
			return m, clearStatusCmd()
		}
		return m, nil
	}

	m.input.Reset()
	m.state = StateThinking
	m.syncStatus()
	m.refreshViewport(true)

	return m, tea.Batch(
		m.spinner.Start(),
		queryCmd(m.client, text, history),
	)
}

// resize recomputes the layout after a terminal size change.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.input.Width = width - 6

	headerHeight := 4
	footerHeight := 4
	vpHeight := height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refreshViewport(false)
}

// =============================================================================
// COMMANDS
// =============================================================================

// queryCmd sends the query to the backend off the UI goroutine.
func queryCmd(client *backend.Client, query string, history []backend.HistoryEntry) tea.Cmd {
	return func() tea.Msg {
		answer, err := client.Query(context.Background(), query, history)
		if err != nil {
			return QueryResultMsg{Err: err}
		}
		return QueryResultMsg{Answer: answer}
	}
}

// exportCmd writes the transcript to a timestamped markdown file.
func exportCmd(turns []model.ChatTurn) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteTranscript(turns, export.FormatMarkdown, "")
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// clearStatusCmd schedules removal of the transient status line.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusLineTTL, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}
