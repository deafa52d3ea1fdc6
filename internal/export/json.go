// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders a transcript as a JSON document carrying the raw turn
// structure plus a small metadata envelope.
type JSONExporter struct{}

// jsonTranscript is the on-disk envelope.
type jsonTranscript struct {
	Generator  string           `json:"generator"`
	ExportedAt time.Time        `json:"exported_at"`
	TurnCount  int              `json:"turn_count"`
	Turns      []model.ChatTurn `json:"turns"`
}

// FileExtension implements Exporter.
func (e *JSONExporter) FileExtension() string { return ".json" }

// Export implements Exporter.
func (e *JSONExporter) Export(turns []model.ChatTurn) ([]byte, error) {
	if len(turns) == 0 {
		return nil, fmt.Errorf("transcript has no turns")
	}

	doc := jsonTranscript{
		Generator:  "riskwatch-tui",
		ExportedAt: time.Now().UTC(),
		TurnCount:  len(turns),
		Turns:      turns,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return append(data, '\n'), nil
}
