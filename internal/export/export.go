// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk.
//
// Two formats are supported: Markdown (human-readable, findings rendered as
// sections) and JSON (the raw turn structure for downstream tooling). Files
// are written atomically with timestamped names.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/riskwatch-tui/internal/model"
	"github.com/jeranaias/riskwatch-tui/internal/util"
)

// =============================================================================
// EXPORT FORMATS
// =============================================================================

// Format identifies a transcript export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatJSON:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want markdown or json)", s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".md"
}

// Exporter renders a transcript to bytes in one format.
type Exporter interface {
	Export(turns []model.ChatTurn) ([]byte, error)
	FileExtension() string
}

// exporterFor returns the exporter for a format.
func exporterFor(format Format) Exporter {
	if format == FormatJSON {
		return &JSONExporter{}
	}
	return &MarkdownExporter{}
}

// =============================================================================
// TRANSCRIPT WRITING
// =============================================================================

// WriteTranscript renders the turns and writes them to a timestamped file in
// outputDir (current directory when empty). Returns the output path.
func WriteTranscript(turns []model.ChatTurn, format Format, outputDir string) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("nothing to export: transcript is empty")
	}

	content, err := exporterFor(format).Export(turns)
	if err != nil {
		return "", fmt.Errorf("render transcript: %w", err)
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filename := fmt.Sprintf("riskwatch_%s%s",
		time.Now().Format("20060102_150405"), format.Extension())
	outputPath := filepath.Join(outputDir, filename)

	if err := util.AtomicWriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return outputPath, nil
}
