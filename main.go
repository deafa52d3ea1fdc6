// riskwatch TUI - A terminal chat client for risk-intelligence retrieval.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/riskwatch-tui/internal/cli"
	"github.com/jeranaias/riskwatch-tui/internal/config"
	"github.com/jeranaias/riskwatch-tui/internal/seed"
	"github.com/jeranaias/riskwatch-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)
	setupLogging(cfg)

	raw := os.Args[1:]
	command := ""
	if len(raw) > 0 {
		command = raw[0]
	}

	switch command {
	case "ask":
		args, err := cli.ParseArgs(raw[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cli.HandleAskCommand(args); err != nil {
			os.Exit(1)
		}

	case "chat":
		args, err := cli.ParseArgs(raw[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cli.HandleChatCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version", "--version", "-v":
		fmt.Printf("riskwatch %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)

	case "help", "--help", "-h":
		printUsage()

	case "", "tui":
		args := raw
		if command == "tui" {
			args = raw[1:]
		}
		parsed, err := cli.ParseArgs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		runTUI(cfg, parsed)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runTUI starts the full-screen chat interface.
func runTUI(cfg *config.Config, args cli.Args) {
	applyOverrides(cfg, args)

	seedFile := cfg.Seed.File
	if args.SeedFile != "" {
		seedFile = args.SeedFile
	}

	var payload *seed.Payload
	if seedFile != "" {
		loaded, err := seed.Load(seedFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load seed file: %v\n", err)
		} else {
			payload = loaded
		}
	}

	program := tea.NewProgram(
		chat.New(cfg, payload),
		tea.WithAltScreen(),
	)

	// Watch the seed file and push reloads into the running program.
	if seedFile != "" && cfg.Seed.Watch {
		watcher, err := seed.NewWatcher(seedFile, 500*time.Millisecond, func(p *seed.Payload) {
			program.Send(chat.SeedReloadedMsg{Payload: p})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: seed watcher unavailable: %v\n", err)
		} else if err := watcher.Watch(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: seed watcher unavailable: %v\n", err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyOverrides copies CLI flags into the loaded config.
func applyOverrides(cfg *config.Config, args cli.Args) {
	if args.BaseURL != "" {
		cfg.Backend.BaseURL = args.BaseURL
	}
	if args.Protocol != "" {
		cfg.Backend.Protocol = args.Protocol
	}
	if args.K > 0 {
		cfg.Backend.K = args.K
	}
	if args.NoFindings {
		cfg.UI.ShowFindings = false
	}
}

// setupLogging routes the standard logger to the configured file, or
// discards it. The TUI owns the terminal, so logs never go to stderr.
func setupLogging(cfg *config.Config) {
	if !cfg.Logging.Enabled {
		log.SetOutput(io.Discard)
		return
	}

	path, err := cfg.LogFilePath()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// printUsage prints the top-level help.
func printUsage() {
	fmt.Println(`riskwatch - chat client for risk-intelligence retrieval

Usage:
  riskwatch [flags]            Start the full-screen TUI
  riskwatch ask "question"     One-shot query, answer on stdout
  riskwatch chat               Line-oriented REPL
  riskwatch version            Show version

Flags:
  --backend URL      Backend base URL (default http://localhost:8000)
  --protocol NAME    Request protocol: chat or retrieve
  --k N              Number of findings to request per query
  --seed FILE        JSON seed payload for the initial conversation
  --no-findings      Hide supporting findings
  --json             JSON output (ask only)
  --quiet            Minimal output

Environment:
  RISKWATCH_BACKEND_URL, RISKWATCH_PROTOCOL, RISKWATCH_K,
  RISKWATCH_TIMEOUT_SECS, RISKWATCH_SEED_FILE, RISKWATCH_THEME,
  RISKWATCH_DEBUG`)
}
