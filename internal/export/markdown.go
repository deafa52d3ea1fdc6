// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a transcript as a Markdown document.
type MarkdownExporter struct{}

// FileExtension implements Exporter.
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// Export implements Exporter.
func (e *MarkdownExporter) Export(turns []model.ChatTurn) ([]byte, error) {
	if len(turns) == 0 {
		return nil, fmt.Errorf("transcript has no turns")
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString("title: riskwatch transcript\n")
	sb.WriteString(fmt.Sprintf("turns: %d\n", len(turns)))
	sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("generator: riskwatch-tui\n")
	sb.WriteString("---\n\n")

	sb.WriteString("# Risk Conversation\n\n")

	for i, turn := range turns {
		sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
			roleLabel(turn.Role),
			turn.Timestamp.Format("15:04:05")))

		sb.WriteString(turn.Content)
		sb.WriteString("\n\n")

		if turn.HasContext() {
			sb.WriteString(fmt.Sprintf("#### Supporting findings (%d)\n\n", len(turn.Context)))
			for j, item := range turn.Context {
				e.writeFinding(&sb, j+1, item)
			}
		}

		if i < len(turns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// writeFinding renders a single finding as a list block.
func (e *MarkdownExporter) writeFinding(sb *strings.Builder, index int, item model.ContextItem) {
	sb.WriteString(fmt.Sprintf("%d. **%s** - %s", index, item.Metadata.CompanyName, item.Metadata.RiskCategory))
	if item.Metadata.RiskSubcategory != "" {
		sb.WriteString(" / " + item.Metadata.RiskSubcategory)
	}
	if item.Metadata.Priority > 0 {
		sb.WriteString(fmt.Sprintf(" (P%d)", item.Metadata.Priority))
	}
	sb.WriteString("\n")

	for _, field := range item.Metadata.OptionalFields() {
		sb.WriteString(fmt.Sprintf("   - %s: %s\n", field[0], field[1]))
	}
	if item.Content != "" {
		sb.WriteString("\n   > " + strings.ReplaceAll(item.Content, "\n", "\n   > "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// roleLabel maps a turn role to its transcript heading.
func roleLabel(r model.Role) string {
	switch r {
	case model.RoleUser:
		return "You"
	case model.RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}
