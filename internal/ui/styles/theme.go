// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewNamedTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// SCREEN STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Help        lipgloss.Style
	HelpKey     lipgloss.Style
	Status      lipgloss.Style
	StatusWarn  lipgloss.Style

	// ==========================================================================
	// COMPOSER STYLES
	// ==========================================================================

	// Composer is the box around the editable surface. Its border and
	// padding feed caret placement, so keep them in sync with what is drawn.
	Composer          lipgloss.Style
	ComposerPrompt    lipgloss.Style
	ComposerText      lipgloss.Style
	ComposerHint      lipgloss.Style
	ComposerLineNum   lipgloss.Style
	ComposerCursorRow lipgloss.Style

	// ==========================================================================
	// MENU STYLES
	// ==========================================================================

	MenuBox       lipgloss.Style
	MenuItem      lipgloss.Style
	MenuSelected  lipgloss.Style
	MenuIndicator lipgloss.Style
	MenuDetail    lipgloss.Style
	MenuDivider   lipgloss.Style
}

// NewTheme creates a theme for the detected terminal background.
func NewTheme() *Theme {
	return NewNamedTheme(ThemeAuto)
}

// NewNamedTheme creates a theme for the given name. "dark" and "light" force
// the background; anything else detects it.
func NewNamedTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ThemeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Status = lipgloss.NewStyle().
		Foreground(Emerald).
		Padding(0, 1)

	t.StatusWarn = lipgloss.NewStyle().
		Foreground(Amber).
		Padding(0, 1)

	// Composer
	t.Composer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.ComposerPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ComposerText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ComposerHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ComposerLineNum = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ComposerCursorRow = lipgloss.NewStyle().
		Background(SurfaceDim)

	// Menu
	t.MenuBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.MenuSelected = lipgloss.NewStyle().
		Background(Cyan).
		Foreground(Surface).
		Bold(true)

	t.MenuIndicator = lipgloss.NewStyle().
		Width(2).
		Foreground(Cyan)

	t.MenuDetail = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.MenuDivider = lipgloss.NewStyle().
		Foreground(Overlay)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
