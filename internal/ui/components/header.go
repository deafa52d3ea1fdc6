// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/riskwatch-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar showing the app name, backend, and protocol.
type Header struct {
	Title    string // Main title (default: "riskwatch")
	Backend  string // Backend base URL
	Protocol string // "chat" or "retrieve"
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "riskwatch",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetBackend updates the backend display.
func (h *Header) SetBackend(baseURL, protocol string) {
	h.Backend = baseURL
	h.Protocol = protocol
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	var subtitleParts []string
	if h.Backend != "" {
		backendStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, backendStyle.Render(h.Backend))
	}
	if h.Protocol != "" {
		protocolStyle := lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
		subtitleParts = append(subtitleParts, protocolStyle.Render("["+strings.ToUpper(h.Protocol)+"]"))
	}

	brandLine := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Center).
		Render(brand)

	lines := []string{brandLine}
	if len(subtitleParts) > 0 {
		subtitleLine := lipgloss.NewStyle().
			Width(width - 4).
			Align(lipgloss.Center).
			Render(strings.Join(subtitleParts, " "))
		lines = append(lines, subtitleLine)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}
