// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package caret computes the screen cell of a character offset inside an
// editable surface.
//
// Text widgets expose no caret-position API, so the locator measures
// instead of asking: it builds a mirror style that copies every property of
// the surface style that moves text around (width, padding, alignment,
// transform, tab width), renders the text up to the offset followed by a
// marker rune through the mirror, and finds the marker in the output. The
// mirror is never drawn. Accuracy depends on the mirror matching the real
// surface; properties that only change colour or weight are irrelevant on a
// cell grid and are not copied.
package caret

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/util"
)

// marker is a private-use rune that never appears in user text.
const marker = '\uE000'

var (
	// ErrZeroSize means the surface has not been laid out yet.
	ErrZeroSize = errors.New("surface has no size")
	// ErrMarkerLost means the marker did not survive rendering.
	ErrMarkerLost = errors.New("caret marker not found in mirror output")
)

// =============================================================================
// LOCATE
// =============================================================================

// Locate returns the screen cell of the character at offset (in runes).
// Offsets outside the content are clamped.
func Locate(s surface.Surface, offset int) (surface.Point, error) {
	bounds := s.Bounds()
	if bounds.Empty() {
		return surface.Point{}, ErrZeroSize
	}
	layout := s.Layout()
	style := layout.Style

	runes := []rune(s.Content())
	offset = util.Clamp(offset, 0, len(runes))

	rendered := mirror(layout).Render(string(runes[:offset]) + string(marker))
	row, col, ok := findMarker(rendered)
	if !ok {
		return surface.Point{}, ErrMarkerLost
	}

	padTop, _, _, padLeft := style.GetPadding()
	row -= padTop
	col -= padLeft

	// The widget keeps the caret visible; translate by the implied scroll.
	if layout.VisibleRows > 0 && row >= layout.VisibleRows {
		row = layout.VisibleRows - 1
	}
	if !layout.Wrap && layout.ContentWidth > 0 && col > layout.ContentWidth {
		col = layout.ContentWidth
	}

	return surface.Point{
		X: bounds.X + style.GetBorderLeftSize() + padLeft + layout.Indent + col,
		Y: bounds.Y + style.GetBorderTopSize() + padTop + row,
	}, nil
}

// Anchor returns where a menu for s should open: one line below the caret.
// On any geometry error it falls back to the surface's top-left cell and
// returns the error for diagnostics.
func Anchor(s surface.Surface) (surface.Point, error) {
	p, err := Locate(s, s.CaretOffset())
	if err != nil {
		return s.Bounds().Origin(), err
	}
	lineHeight := s.Layout().LineHeight
	if lineHeight <= 0 {
		lineHeight = 1
	}
	p.Y += lineHeight
	return p, nil
}

// =============================================================================
// MIRROR
// =============================================================================

// mirror builds the off-screen measuring style. Borders are left out and
// added back explicitly by Locate.
func mirror(layout surface.Layout) lipgloss.Style {
	src := layout.Style
	top, right, bottom, left := src.GetPadding()

	m := lipgloss.NewStyle().
		Padding(top, right, bottom, left).
		Align(src.GetAlignHorizontal())
	// An unset tab width reads as 0; keep lipgloss' default in that case.
	if tw := src.GetTabWidth(); tw != 0 {
		m = m.TabWidth(tw)
	}
	if fn := src.GetTransform(); fn != nil {
		m = m.Transform(fn)
	}
	if layout.Wrap && layout.ContentWidth > 0 {
		m = m.Width(layout.ContentWidth + left + right)
	}
	return m
}

// findMarker returns the row and cell column of the marker in rendered.
func findMarker(rendered string) (row, col int, ok bool) {
	for i, line := range strings.Split(rendered, "\n") {
		plain := ansi.Strip(line)
		idx := strings.IndexRune(plain, marker)
		if idx < 0 {
			continue
		}
		return i, ansi.StringWidth(plain[:idx]), true
	}
	return 0, 0, false
}
