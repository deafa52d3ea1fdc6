// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/riskwatch-tui/internal/model"
	"github.com/jeranaias/riskwatch-tui/internal/ui/styles"
	"github.com/jeranaias/riskwatch-tui/internal/util"
)

// =============================================================================
// FINDING CARD COMPONENT
// =============================================================================

// FindingCard renders one retrieved risk finding beneath an assistant turn.
// The left border is colored by the finding's priority.
type FindingCard struct {
	Item    model.ContextItem
	Index   int // 1-based position among the turn's findings
	Width   int
	Compact bool
	theme   *styles.Theme
}

// NewFindingCard creates a card for one context item.
func NewFindingCard(theme *styles.Theme, item model.ContextItem, index int) *FindingCard {
	return &FindingCard{
		Item:  item,
		Index: index,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the card width.
func (f *FindingCard) SetWidth(width int) {
	f.Width = width
}

// SetCompact switches between full and one-line rendering.
func (f *FindingCard) SetCompact(compact bool) {
	f.Compact = compact
}

// View renders the finding card.
func (f *FindingCard) View() string {
	meta := f.Item.Metadata
	accent := styles.PriorityColor(meta.Priority)

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Bold(true)
	categoryStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)
	priorityStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
	metaStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	title := titleStyle.Render(fmt.Sprintf("%d. %s", f.Index, meta.CompanyName))
	category := categoryStyle.Render(meta.RiskCategory + " / " + meta.RiskSubcategory)
	priority := priorityStyle.Render(fmt.Sprintf("P%d", meta.Priority))
	headline := title + "  " + category + "  " + priority

	if f.Compact {
		summary := metaStyle.Render(util.TruncateWidth(util.FirstLine(f.Item.Content), f.Width-8))
		return f.cardStyle(accent).Render(headline + "\n" + summary)
	}

	lines := []string{headline}

	// Optional metadata renders only when present, never as placeholders.
	for _, field := range meta.OptionalFields() {
		lines = append(lines, metaStyle.Render(field[0]+": "+field[1]))
	}

	contentStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(f.Width - 8)
	lines = append(lines, contentStyle.Render(strings.TrimSpace(f.Item.Content)))

	return f.cardStyle(accent).Render(strings.Join(lines, "\n"))
}

func (f *FindingCard) cardStyle(accent lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(accent).
		PaddingLeft(2).
		MarginLeft(2).
		MaxWidth(f.Width - 4)
}

// RenderFindings renders all findings of a turn, separated by blank lines.
// Returns "" for a turn without context.
func RenderFindings(theme *styles.Theme, items []model.ContextItem, width int, compact bool) string {
	if len(items) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true).
		MarginLeft(2)

	parts := []string{headerStyle.Render(fmt.Sprintf("Supporting findings (%d)", len(items)))}
	for i, item := range items {
		card := NewFindingCard(theme, item, i+1)
		card.SetWidth(width)
		card.SetCompact(compact)
		parts = append(parts, card.View())
	}

	return strings.Join(parts, "\n")
}
