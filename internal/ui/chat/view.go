// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/riskwatch-tui/internal/model"
	"github.com/jeranaias/riskwatch-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting riskwatch..."
	}

	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
		b.WriteString("\n")
	}

	if m.statusLine != "" {
		b.WriteString(m.theme.StatusOK.Render(m.statusLine))
		b.WriteString("\n")
	}

	if m.state == StateThinking {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderInput())
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar.View())
	return b.String()
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport(gotoBottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTurns())
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// renderTurns renders the whole conversation transcript.
func (m *Model) renderTurns() string {
	turns := m.conversation.Snapshot()
	if len(turns) == 0 {
		return m.theme.Timestamp.Render("  No messages yet. Type a query below.")
	}

	rendered := make([]string, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case model.RoleUser:
			rendered = append(rendered, m.renderUserTurn(turn))
		case model.RoleAssistant:
			rendered = append(rendered, m.renderAssistantTurn(turn))
		}
	}
	return strings.Join(rendered, "\n\n")
}

// renderUserTurn renders a right-aligned user bubble.
func (m *Model) renderUserTurn(turn model.ChatTurn) string {
	maxWidth := m.width * 2 / 3
	if maxWidth < 20 {
		maxWidth = 20
	}

	content := wrapText(turn.Content, maxWidth-4)
	bubble := m.theme.UserBubble.Render(content)
	label := m.theme.RoleLabel.Render("You") + " " +
		m.theme.Timestamp.Render(formatTimestamp(turn.Timestamp))

	block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)

	marginLeft := m.width - lipgloss.Width(block) - 2
	if marginLeft < 0 {
		marginLeft = 0
	}
	return lipgloss.NewStyle().MarginLeft(marginLeft).Render(block)
}

// renderAssistantTurn renders the assistant bubble plus any supporting
// findings beneath it.
func (m *Model) renderAssistantTurn(turn model.ChatTurn) string {
	maxWidth := m.width - 8
	if maxWidth < 10 {
		maxWidth = 10
	}

	content := components.ParseCodeBlocks(turn.Content, maxWidth-4)
	content = wrapPlainSegments(content, maxWidth-4)

	bubble := m.theme.AssistantBubble.Render(content)
	if turn.IsError() {
		bubble = m.theme.ErrorBox.Render(turn.Content)
	}

	label := m.theme.RoleLabel.Render("Assistant") + " " +
		m.theme.Timestamp.Render(formatTimestamp(turn.Timestamp))

	parts := []string{label, bubble}
	if m.cfg.UI.ShowFindings && turn.HasContext() {
		findings := components.RenderFindings(m.theme, turn.Context, maxWidth, m.cfg.UI.CompactMode)
		if findings != "" {
			parts = append(parts, findings)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderInput renders the input box.
func (m *Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 4).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	)
}

// renderHelp renders the expanded key binding help.
func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.HeaderSubtitle.Render("Key bindings"))
	b.WriteString("\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("  ")
			b.WriteString(m.theme.ShortcutKey.Render(h.Key))
			b.WriteString("  ")
			b.WriteString(m.theme.ShortcutDesc.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
