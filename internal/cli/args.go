// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Unified argument parsing for the riskwatch CLI commands.
//
// Both commands share one parser so flag handling stays consistent:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: everything else, joined into the query

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser provides unified argument parsing for CLI commands.
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	raw        []string
}

// NewArgParser creates a new argument parser from raw arguments.
//
// Example:
//
//	args := NewArgParser([]string{"supply chain risk", "--k", "3", "--json"})
//	args.Query()          // "supply chain risk"
//	args.Flag("k")        // "3"
//	args.BoolFlag("json") // true
func NewArgParser(raw []string) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
		raw:        raw,
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if strings.HasPrefix(arg, "-") && arg != "-" {
			// --flag=value form
			if strings.Contains(arg, "=") {
				parts := strings.SplitN(arg, "=", 2)
				name := strings.TrimLeft(parts[0], "-")
				value := parts[1]

				if value == "true" || value == "false" {
					parser.boolFlags[name] = value == "true"
				} else {
					parser.flags[name] = value
				}
				i++
				continue
			}

			name := strings.TrimLeft(arg, "-")
			if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") && !isBoolFlag(name) {
				parser.flags[name] = raw[i+1]
				i += 2
			} else {
				parser.boolFlags[name] = true
				i++
			}
		} else {
			parser.positional = append(parser.positional, arg)
			i++
		}
	}

	return parser
}

// isBoolFlag marks flags that never take a value, so a following positional
// argument is not swallowed ("--json what are the risks" keeps the query).
func isBoolFlag(name string) bool {
	switch name {
	case "json", "quiet", "q", "no-findings", "compact", "help", "h", "version", "v":
		return true
	}
	return false
}

// Query joins all positional arguments into the query string.
func (p *ArgParser) Query() string {
	return strings.TrimSpace(strings.Join(p.positional, " "))
}

// Positional returns all positional arguments.
func (p *ArgParser) Positional() []string {
	return p.positional
}

// Flag returns the value of a string flag, or empty when absent.
func (p *ArgParser) Flag(names ...string) string {
	for _, name := range names {
		if val, ok := p.flags[strings.TrimLeft(name, "-")]; ok {
			return val
		}
	}
	return ""
}

// FlagInt returns the flag value as an integer.
func (p *ArgParser) FlagInt(name string) (int, error) {
	val := p.Flag(name)
	if val == "" {
		return 0, fmt.Errorf("flag %s not found", name)
	}
	return strconv.Atoi(val)
}

// BoolFlag returns true if the boolean flag is set.
func (p *ArgParser) BoolFlag(names ...string) bool {
	for _, name := range names {
		if val, ok := p.boolFlags[strings.TrimLeft(name, "-")]; ok && val {
			return true
		}
	}
	return false
}

// =============================================================================
// PARSED COMMAND ARGUMENTS
// =============================================================================

// Args carries the parsed arguments for the ask and chat commands.
type Args struct {
	// Query is the question text (ask only; built from positional args).
	Query string

	// Backend overrides. Empty / zero means "use config".
	BaseURL  string
	Protocol string
	K        int

	// SeedFile points to a JSON seed payload (chat only).
	SeedFile string

	// Output control.
	JSON       bool
	Quiet      bool
	NoFindings bool
}

// ParseArgs builds Args from raw command arguments.
func ParseArgs(raw []string) (Args, error) {
	p := NewArgParser(raw)

	args := Args{
		Query:      p.Query(),
		BaseURL:    p.Flag("backend", "b"),
		Protocol:   p.Flag("protocol", "p"),
		SeedFile:   p.Flag("seed", "s"),
		JSON:       p.BoolFlag("json"),
		Quiet:      p.BoolFlag("quiet", "q"),
		NoFindings: p.BoolFlag("no-findings"),
	}

	if p.Flag("k") != "" {
		k, err := p.FlagInt("k")
		if err != nil {
			return args, fmt.Errorf("invalid --k value: %w", err)
		}
		args.K = k
	}

	return args, nil
}
