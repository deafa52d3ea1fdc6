// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the riskwatch CLI.
//
// Handles "riskwatch ask" which sends one question to the retrieval backend
// and prints the answer plus its supporting findings.
//
// Examples:
//
//	riskwatch ask "What are the supply chain risks for Acme Corp?"
//	riskwatch ask --json "cyber incidents at Globex" | jq .data.context
//	echo "sanctions exposure" | riskwatch ask
//	riskwatch ask --protocol retrieve --k 3 "labor disputes"
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/riskwatch-tui/internal/backend"
	"github.com/jeranaias/riskwatch-tui/internal/config"
	"github.com/jeranaias/riskwatch-tui/internal/model"
	"github.com/jeranaias/riskwatch-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the shared glamour renderer for answer output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text when the renderer cannot initialize.
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display. Returns the
// original content if rendering fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// STYLES
// =============================================================================

var (
	infoStyle      = lipgloss.NewStyle().Foreground(styles.Cyan)
	errorStyle     = lipgloss.NewStyle().Foreground(styles.Rose)
	separatorStyle = lipgloss.NewStyle().Foreground(styles.Overlay)
	labelStyle     = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	companyStyle   = lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(styles.TextMuted)
)

// =============================================================================
// CLIENT CONSTRUCTION
// =============================================================================

// clientFromConfig builds a backend client from config plus CLI overrides.
func clientFromConfig(cfg *config.Config, args Args) (*backend.Client, error) {
	baseURL := cfg.Backend.BaseURL
	if args.BaseURL != "" {
		baseURL = args.BaseURL
	}

	protoName := cfg.Backend.Protocol
	if args.Protocol != "" {
		protoName = args.Protocol
	}
	protocol, err := backend.ParseProtocol(protoName)
	if err != nil {
		return nil, err
	}

	k := cfg.Backend.K
	if args.K > 0 {
		k = args.K
	}

	client := backend.NewClient().
		WithBaseURL(baseURL).
		WithProtocol(protocol).
		WithK(k)
	if cfg.Backend.TimeoutSecs > 0 {
		client = client.WithTimeout(cfg.Backend.Timeout())
	}
	return client, nil
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAskCommand handles the "ask" command.
func HandleAskCommand(args Args) error {
	cfg := config.Global()

	question := args.Query

	// Piped input: read the question from stdin when none was given.
	if question == "" && !IsStdinTTY() {
		reader := bufio.NewReader(os.Stdin)
		data, err := io.ReadAll(reader)
		if err == nil && len(data) > 0 {
			question = strings.TrimSpace(string(data))
			if !args.Quiet && !args.JSON {
				fmt.Fprintf(os.Stderr, "%s Read question from stdin (%d bytes)\n",
					infoStyle.Render("[+]"), len(data))
			}
		}
	}

	if question == "" {
		err := fmt.Errorf("no question provided. Usage: riskwatch ask \"your question\"")
		if args.JSON {
			return NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	client, err := clientFromConfig(cfg, args)
	if err != nil {
		if args.JSON {
			return NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	start := time.Now()
	answer, err := client.Query(context.Background(), question, nil)
	duration := time.Since(start)

	if err != nil {
		if args.JSON {
			return NewJSONErrorResponse("ask", err).Print()
		}
		fmt.Fprintf(os.Stderr, "%s %s\n",
			errorStyle.Render("[Error]"), model.BackendErrorContent)
		return err
	}

	if args.JSON {
		return NewJSONResponse("ask", AskData{
			Query:      question,
			Response:   answer.Content,
			Context:    answer.Context,
			Protocol:   string(client.Protocol()),
			DurationMs: duration.Milliseconds(),
		}).Print()
	}

	// Markdown the answer on a TTY, plain text otherwise.
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer.Content))
	} else {
		fmt.Println(answer.Content)
	}

	if !args.NoFindings && len(answer.Context) > 0 {
		printFindings(answer.Context)
	}

	if !args.Quiet {
		fmt.Fprintln(os.Stderr, separatorStyle.Render(strings.Repeat("─", 45)))
		fmt.Fprintf(os.Stderr, "%s %d | %s %v\n",
			labelStyle.Render("Findings:"), len(answer.Context),
			labelStyle.Render("Time:"), duration.Round(time.Millisecond))
	}

	return nil
}

// printFindings writes the supporting findings as a compact list.
func printFindings(items []model.ContextItem) {
	fmt.Println()
	fmt.Println(labelStyle.Render(fmt.Sprintf("Supporting findings (%d):", len(items))))

	for i, item := range items {
		headline := fmt.Sprintf("%d. %s", i+1, companyStyle.Render(item.Metadata.CompanyName))
		category := item.Metadata.RiskCategory
		if item.Metadata.RiskSubcategory != "" {
			category += " / " + item.Metadata.RiskSubcategory
		}
		if category != "" {
			headline += "  " + metaStyle.Render(category)
		}
		if item.Metadata.Priority > 0 {
			headline += "  " + metaStyle.Render(fmt.Sprintf("P%d", item.Metadata.Priority))
		}
		fmt.Println(headline)

		for _, field := range item.Metadata.OptionalFields() {
			fmt.Printf("   %s %s\n", metaStyle.Render(field[0]+":"), field[1])
		}
		if item.Content != "" {
			fmt.Printf("   %s\n", item.Preview(200))
		}
	}
}
