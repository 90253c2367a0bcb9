// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewNamedTheme(t *testing.T) {
	tests := []struct {
		name     string
		wantDark bool
	}{
		{"dark", true},
		{"DARK", true},
		{"light", false},
		{" light ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := NewNamedTheme(tt.name)
			if theme == nil {
				t.Fatal("NewNamedTheme() returned nil")
			}
			if theme.IsDark != tt.wantDark {
				t.Errorf("IsDark = %v, want %v", theme.IsDark, tt.wantDark)
			}
		})
	}
}

func TestThemeStylesInitialized(t *testing.T) {
	theme := NewNamedTheme(ThemeDark)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"Composer", theme.Composer},
		{"MenuBox", theme.MenuBox},
		{"MenuSelected", theme.MenuSelected},
	}
	for _, s := range styles {
		if s.style.Render("test") == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

func TestComposerBoxGeometry(t *testing.T) {
	theme := NewNamedTheme(ThemeDark)

	if got := theme.Composer.GetBorderLeftSize(); got != 1 {
		t.Errorf("Composer left border = %d, want 1", got)
	}
	if got := theme.Composer.GetPaddingLeft(); got != 1 {
		t.Errorf("Composer left padding = %d, want 1", got)
	}
	if got := theme.MenuBox.GetHorizontalFrameSize(); got != 4 {
		t.Errorf("MenuBox horizontal frame = %d, want 4", got)
	}
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
	}

	theme := NewNamedTheme(ThemeLight)
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}
