// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/jeranaias/riskwatch-tui/internal/config"
)

// testDefaultConfig returns a fresh default config for tests.
func testDefaultConfig() *config.Config {
	return config.Default()
}
