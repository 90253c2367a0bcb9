// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package caret

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashdrop/internal/surface"
)

// fakeSurface is a minimal surface with a fixed layout.
type fakeSurface struct {
	content string
	caret   int
	bounds  surface.Rect
	layout  surface.Layout
	attrs   map[string]string
}

func (f *fakeSurface) ID() string                   { return "fake" }
func (f *fakeSurface) Shape() surface.Shape         { return surface.ShapeRich }
func (f *fakeSurface) Content() string              { return f.content }
func (f *fakeSurface) SetContent(s string)          { f.content = s }
func (f *fakeSurface) CaretOffset() int             { return f.caret }
func (f *fakeSurface) SetCaretToEnd()               { f.caret = len([]rune(f.content)) }
func (f *fakeSurface) Focus()                       {}
func (f *fakeSurface) Bounds() surface.Rect         { return f.bounds }
func (f *fakeSurface) SetBounds(r surface.Rect)     { f.bounds = r }
func (f *fakeSurface) Layout() surface.Layout       { return f.layout }
func (f *fakeSurface) Attr(n string) (string, bool) { v, ok := f.attrs[n]; return v, ok }
func (f *fakeSurface) SetAttr(n, v string)          { f.attrs[n] = v }
func (f *fakeSurface) RemoveAttr(n string)          { delete(f.attrs, n) }

func newFake(content string, layout surface.Layout) *fakeSurface {
	return &fakeSurface{
		content: content,
		caret:   len([]rune(content)),
		bounds:  surface.Rect{X: 3, Y: 5, Width: 40, Height: 6},
		layout:  layout,
		attrs:   map[string]string{},
	}
}

// =============================================================================
// LOCATE TESTS
// =============================================================================

func TestLocateSingleLine(t *testing.T) {
	s := newFake("Dear team, /snippet", surface.Layout{
		Style:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
		Indent: 2,
	})

	p, err := Locate(s, s.caret)
	require.NoError(t, err)
	// bounds.X + border + prompt + text width
	assert.Equal(t, surface.Point{X: 3 + 1 + 2 + 19, Y: 5 + 1}, p)

	p, err = Locate(s, 0)
	require.NoError(t, err)
	assert.Equal(t, surface.Point{X: 3 + 1 + 2, Y: 6}, p)
}

func TestLocatePadding(t *testing.T) {
	s := newFake("abc", surface.Layout{
		Style: lipgloss.NewStyle().Padding(1, 2),
	})
	p, err := Locate(s, 3)
	require.NoError(t, err)
	assert.Equal(t, surface.Point{X: 3 + 2 + 3, Y: 5 + 1}, p)
}

func TestLocateExplicitNewlines(t *testing.T) {
	s := newFake("ab\ncdef", surface.Layout{Style: lipgloss.NewStyle(), Wrap: true, ContentWidth: 20})

	p, err := Locate(s, 2)
	require.NoError(t, err)
	assert.Equal(t, surface.Point{X: 3 + 2, Y: 5}, p)

	p, err = Locate(s, 7)
	require.NoError(t, err)
	assert.Equal(t, surface.Point{X: 3 + 4, Y: 5 + 1}, p)
}

func TestLocateSoftWrap(t *testing.T) {
	s := newFake("aaaaaaaaaaaa", surface.Layout{Style: lipgloss.NewStyle(), Wrap: true, ContentWidth: 10})
	p, err := Locate(s, 12)
	require.NoError(t, err)
	assert.Equal(t, 5+1, p.Y, "caret should be on the wrapped row")
	assert.Equal(t, 3+2, p.X)
}

func TestLocateWideRunes(t *testing.T) {
	s := newFake("日本/x", surface.Layout{Style: lipgloss.NewStyle()})
	p, err := Locate(s, 2)
	require.NoError(t, err)
	assert.Equal(t, 3+4, p.X)
}

func TestLocateScrollClamp(t *testing.T) {
	s := newFake("a very long line that scrolls", surface.Layout{
		Style:        lipgloss.NewStyle(),
		ContentWidth: 10,
		VisibleRows:  1,
	})
	p, err := Locate(s, s.caret)
	require.NoError(t, err)
	assert.Equal(t, 3+10, p.X)

	rich := newFake("1\n2\n3\n4\n5", surface.Layout{Style: lipgloss.NewStyle(), Wrap: true, ContentWidth: 10, VisibleRows: 3})
	p, err = Locate(rich, rich.caret)
	require.NoError(t, err)
	assert.Equal(t, 5+2, p.Y, "caret row clamps to the last visible row")
}

func TestLocateClampsOffset(t *testing.T) {
	s := newFake("abc", surface.Layout{Style: lipgloss.NewStyle()})
	p, err := Locate(s, 99)
	require.NoError(t, err)
	assert.Equal(t, 3+3, p.X)

	p, err = Locate(s, -4)
	require.NoError(t, err)
	assert.Equal(t, 3, p.X)
}

func TestLocateZeroSize(t *testing.T) {
	s := newFake("abc", surface.Layout{Style: lipgloss.NewStyle()})
	s.bounds = surface.Rect{X: 1, Y: 1}
	_, err := Locate(s, 1)
	assert.ErrorIs(t, err, ErrZeroSize)
}

// =============================================================================
// ANCHOR TESTS
// =============================================================================

func TestAnchorOneLineBelowCaret(t *testing.T) {
	s := newFake("hi /snippet", surface.Layout{
		Style:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		Indent: 2,
	})
	p, err := Anchor(s)
	require.NoError(t, err)
	assert.Equal(t, surface.Point{X: 3 + 1 + 2 + 11, Y: 5 + 1 + 1}, p)

	s.layout.LineHeight = 2
	p, err = Anchor(s)
	require.NoError(t, err)
	assert.Equal(t, 5+1+2, p.Y)
}

func TestAnchorFallsBackToOrigin(t *testing.T) {
	s := newFake("hi /snippet", surface.Layout{Style: lipgloss.NewStyle()})
	s.bounds = surface.Rect{X: 7, Y: 9, Width: 0, Height: 0}

	p, err := Anchor(s)
	assert.ErrorIs(t, err, ErrZeroSize)
	assert.Equal(t, surface.Point{X: 7, Y: 9}, p)
}

func TestFindMarker(t *testing.T) {
	row, col, ok := findMarker("abc\n\x1b[1mde\x1b[0m" + string(marker))
	require.True(t, ok)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	_, _, ok = findMarker("no marker")
	assert.False(t, ok)
}
