// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestArgParserFlags(t *testing.T) {
	p := NewArgParser([]string{"supply", "chain", "--k", "3", "--protocol=retrieve", "--json"})

	if got := p.Query(); got != "supply chain" {
		t.Errorf("Query() = %q, want %q", got, "supply chain")
	}
	if got := p.Flag("k"); got != "3" {
		t.Errorf("Flag(k) = %q, want 3", got)
	}
	if got := p.Flag("protocol"); got != "retrieve" {
		t.Errorf("Flag(protocol) = %q, want retrieve", got)
	}
	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) = false, want true")
	}
	if p.BoolFlag("quiet") {
		t.Error("BoolFlag(quiet) = true, want false")
	}
}

func TestArgParserBoolFlagDoesNotSwallowQuery(t *testing.T) {
	p := NewArgParser([]string{"--json", "what", "are", "the", "risks"})

	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) should be true")
	}
	if got := p.Query(); got != "what are the risks" {
		t.Errorf("Query() = %q, want the full question", got)
	}
}

func TestArgParserEqualsBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--quiet=true"})

	if p.BoolFlag("json") {
		t.Error("json=false should yield false")
	}
	if !p.BoolFlag("quiet") {
		t.Error("quiet=true should yield true")
	}
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]string{"labor", "disputes", "--backend", "http://risk.internal:9000", "--k", "7", "--seed", "seed.json"})
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}

	if args.Query != "labor disputes" {
		t.Errorf("Query = %q", args.Query)
	}
	if args.BaseURL != "http://risk.internal:9000" {
		t.Errorf("BaseURL = %q", args.BaseURL)
	}
	if args.K != 7 {
		t.Errorf("K = %d, want 7", args.K)
	}
	if args.SeedFile != "seed.json" {
		t.Errorf("SeedFile = %q", args.SeedFile)
	}
}

func TestParseArgsInvalidK(t *testing.T) {
	if _, err := ParseArgs([]string{"query", "--k", "many"}); err == nil {
		t.Error("expected error for non-numeric --k")
	}
}

func TestClientFromConfigOverrides(t *testing.T) {
	cfg := testDefaultConfig()

	client, err := clientFromConfig(cfg, Args{Protocol: "retrieve", K: 3})
	if err != nil {
		t.Fatalf("clientFromConfig failed: %v", err)
	}
	if client.Protocol() != "retrieve" {
		t.Errorf("protocol = %q, want retrieve", client.Protocol())
	}
}

func TestClientFromConfigBadProtocol(t *testing.T) {
	cfg := testDefaultConfig()

	if _, err := clientFromConfig(cfg, Args{Protocol: "grpc"}); err == nil {
		t.Error("expected error for unknown protocol")
	}
}
