// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

// =============================================================================
// JSON OUTPUT
// =============================================================================

// JSONResponse is the envelope for --json output. Keeping a stable shape
// lets downstream tooling consume ask results without scraping text.
type JSONResponse struct {
	Command   string      `json:"command"`
	Success   bool        `json:"success"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// AskData is the payload for a successful ask command.
type AskData struct {
	Query      string              `json:"query"`
	Response   string              `json:"response"`
	Context    []model.ContextItem `json:"context"`
	Protocol   string              `json:"protocol"`
	DurationMs int64               `json:"duration_ms"`
}

// NewJSONResponse creates a success response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Command:   command,
		Success:   true,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// NewJSONErrorResponse creates an error response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	return &JSONResponse{
		Command:   command,
		Success:   false,
		Timestamp: time.Now().UTC(),
		Error:     err.Error(),
	}
}

// Print writes the response to stdout as indented JSON.
func (r *JSONResponse) Print() error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
