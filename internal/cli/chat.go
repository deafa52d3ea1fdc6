// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-oriented interactive chat for the riskwatch CLI.
//
// A readline-style REPL for terminals where the full-screen TUI is not
// wanted. Input history persists across sessions in the config directory.
//
// Slash commands:
//
//	/help              Show available commands
//	/clear             Clear conversation history
//	/export [format]   Export transcript (markdown or json)
//	/findings          Show findings from the last answer
//	/quit              Exit
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/riskwatch-tui/internal/backend"
	"github.com/jeranaias/riskwatch-tui/internal/config"
	"github.com/jeranaias/riskwatch-tui/internal/export"
	"github.com/jeranaias/riskwatch-tui/internal/model"
	"github.com/jeranaias/riskwatch-tui/internal/seed"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with persistent input history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for an interactive chat session.
type ChatSession struct {
	Conversation *model.Conversation
	Client       *backend.Client
	Config       *config.Config
	Input        *ChatCLI
	Quiet        bool
	StartTime    time.Time
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command.
func HandleChatCommand(args Args) error {
	cfg := config.Global()

	client, err := clientFromConfig(cfg, args)
	if err != nil {
		return err
	}

	conv := model.NewConversation()

	// Seed payload: CLI flag wins over config.
	seedFile := cfg.Seed.File
	if args.SeedFile != "" {
		seedFile = args.SeedFile
	}
	if seedFile != "" {
		payload, err := seed.Load(seedFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s Could not load seed file: %v\n",
				errorStyle.Render("[!]"), err)
		} else {
			seed.Apply(conv, payload)
		}
	}
	if conv.IsEmpty() {
		if greeting := cfg.GreetingText(); greeting != "" {
			conv.SeedAssistantTurn(greeting, nil)
		}
	}

	session := &ChatSession{
		Conversation: conv,
		Client:       client,
		Config:       cfg,
		Input:        NewChatCLI(),
		Quiet:        args.Quiet,
		StartTime:    time.Now(),
	}
	defer session.Input.Close()

	if !args.Quiet {
		fmt.Printf("riskwatch chat - %s (%s)\n",
			cfg.Backend.BaseURL, client.Protocol())
		fmt.Println(metaStyle.Render("Type /help for commands, /quit to exit."))
		if turn, ok := conv.LastAssistantTurn(); ok {
			fmt.Println()
			fmt.Println(turn.Content)
		}
		fmt.Println()
	}

	for {
		input, err := session.Input.ReadInput("riskwatch> ")
		if err != nil {
			// Ctrl+C or EOF exits cleanly.
			fmt.Println()
			printExitSummary(session)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			keepGoing, err := handleSlashCommand(input, session)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !keepGoing {
				printExitSummary(session)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(session)
			return nil
		}

		if err := processMessage(session, input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage submits one query and prints the resolved turn.
func processMessage(session *ChatSession, input string) error {
	history := backend.HistoryFromTurns(session.Conversation.Snapshot())

	if _, err := session.Conversation.AppendUser(input); err != nil {
		return err
	}

	answer, err := session.Client.Query(context.Background(), input, history)
	if err != nil {
		turn, rerr := session.Conversation.ResolveFailure()
		if rerr != nil {
			return rerr
		}
		fmt.Println(errorStyle.Render(turn.Content))
		return nil
	}

	turn, err := session.Conversation.ResolveSuccess(answer.Content, answer.Context)
	if err != nil {
		return err
	}

	fmt.Println()
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(turn.Content))
	} else {
		fmt.Println(turn.Content)
	}
	if len(turn.Context) > 0 && session.Config.UI.ShowFindings {
		printFindings(turn.Context)
	}
	fmt.Println()
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand executes a slash command. Returns false to exit.
func handleSlashCommand(input string, session *ChatSession) (bool, error) {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])

	switch command {
	case "/help", "/?":
		printChatHelp()
		return true, nil

	case "/clear":
		if err := session.Conversation.ClearHistory(); err != nil {
			return true, err
		}
		fmt.Println(metaStyle.Render("History cleared."))
		return true, nil

	case "/export":
		format := export.FormatMarkdown
		if len(parts) > 1 {
			parsed, err := export.ParseFormat(parts[1])
			if err != nil {
				return true, err
			}
			format = parsed
		}
		path, err := export.WriteTranscript(session.Conversation.Snapshot(), format, "")
		if err != nil {
			return true, err
		}
		fmt.Printf("%s %s\n", infoStyle.Render("Exported:"), path)
		return true, nil

	case "/findings":
		turn, ok := session.Conversation.LastAssistantTurn()
		if !ok || !turn.HasContext() {
			fmt.Println(metaStyle.Render("No findings in the last answer."))
			return true, nil
		}
		printFindings(turn.Context)
		return true, nil

	case "/quit", "/exit", "/q":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command %s (try /help)", command)
	}
}

// printChatHelp lists the slash commands.
func printChatHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /clear             Clear conversation history")
	fmt.Println("  /export [format]   Export transcript (markdown or json)")
	fmt.Println("  /findings          Show findings from the last answer")
	fmt.Println("  /help              Show this help")
	fmt.Println("  /quit              Exit")
}

// printExitSummary prints a short session summary on exit.
func printExitSummary(session *ChatSession) {
	if session.Quiet {
		return
	}
	duration := time.Since(session.StartTime).Round(time.Second)
	fmt.Fprintf(os.Stderr, "%s %d turns | %d findings | %v\n",
		labelStyle.Render("Session:"),
		session.Conversation.TurnCount(),
		session.Conversation.FindingCount(),
		duration)
}
