// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/riskwatch-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar showing status, turn and finding counts,
// and keyboard shortcuts.
type StatusBar struct {
	Status        Status
	TurnCount     int
	FindingCount  int
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetCounts updates the turn and finding counters.
func (s *StatusBar) SetCounts(turns, findings int) {
	s.TurnCount = turns
	s.FindingCount = findings
}

// View renders the status bar.
func (s *StatusBar) View() string {
	statusStyle := lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	if s.Status == StatusError {
		statusStyle = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	} else if s.Status == StatusThinking {
		statusStyle = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	}

	left := statusStyle.Render(s.Status.Icon()+" "+s.Status.String()) +
		lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render(fmt.Sprintf("  %d turns | %d findings", s.TurnCount, s.FindingCount))

	var right string
	if s.ShowShortcuts && s.Width >= 60 {
		keyStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
		descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		shortcuts := []string{
			keyStyle.Render("enter") + descStyle.Render(" send"),
			keyStyle.Render("ctrl+e") + descStyle.Render(" export"),
			keyStyle.Render("ctrl+l") + descStyle.Render(" clear"),
			keyStyle.Render("ctrl+c") + descStyle.Render(" quit"),
		}
		right = strings.Join(shortcuts, "  ")
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
		right = ""
	}

	bar := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Padding(0, 1).
		Render(bar)
}
