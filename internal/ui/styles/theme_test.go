// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// Styles must render without panicking even on a dumb terminal.
	_ = theme.Header.Render("riskwatch")
	_ = theme.UserBubble.Render("hello")
	_ = theme.FindingCard.Render("finding")
	_ = theme.ErrorBox.Render("error")
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}
	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: mode = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestPriorityColor(t *testing.T) {
	if PriorityColor(1) != PriorityCritical {
		t.Error("priority 1 should be critical")
	}
	if PriorityColor(0) != PriorityCritical {
		t.Error("priority 0 should be critical")
	}
	if PriorityColor(2) != PriorityHigh {
		t.Error("priority 2 should be high")
	}
	if PriorityColor(3) != PriorityMedium {
		t.Error("priority 3 should be medium")
	}
	if PriorityColor(7) != PriorityLow {
		t.Error("priority 7 should be low")
	}
}

func TestRenderStatusIndicators(t *testing.T) {
	ok := RenderSuccess("connected")
	if ok == "" {
		t.Error("RenderSuccess returned empty string")
	}
	bad := RenderError("backend down")
	if bad == "" {
		t.Error("RenderError returned empty string")
	}
}
