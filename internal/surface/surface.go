// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package surface abstracts the editable element the user types into.
//
// Two shapes exist: Plain wraps a single-line bubbles textinput, Rich wraps
// a multi-line bubbles textarea. Matching, menu and caret logic are written
// once against the Surface interface.
package surface

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Shape identifies the kind of editable surface.
type Shape int

const (
	// ShapePlain is a value-bearing single-line input.
	ShapePlain Shape = iota
	// ShapeRich is a multi-line editable region with nested rows.
	ShapeRich
)

func (s Shape) String() string {
	switch s {
	case ShapePlain:
		return "plain"
	case ShapeRich:
		return "rich"
	default:
		return "unknown"
	}
}

// Holds reports whether text survives SetContent unchanged on a surface of
// this shape. Plain inputs collapse line breaks to spaces; both shapes expand
// tabs and drop other control runes.
func (s Shape) Holds(text string) bool {
	for _, r := range text {
		switch {
		case r == '\n':
			if s != ShapeRich {
				return false
			}
		case r == utf8.RuneError, unicode.IsControl(r):
			return false
		}
	}
	return true
}

// Point is a terminal cell coordinate. X is the column, Y the row.
type Point struct {
	X int
	Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is a rectangle of terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Origin returns the top-left cell.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Layout is the computed style of a surface: everything that affects where
// text lands inside its box.
type Layout struct {
	// Style is the box drawn around the text (border, padding, width,
	// alignment, transform, tab width).
	Style lipgloss.Style
	// Indent is the prompt or gutter width preceding text on every row.
	Indent int
	// Wrap reports whether long rows soft-wrap at ContentWidth.
	Wrap bool
	// ContentWidth is the number of text columns; 0 means unbounded.
	ContentWidth int
	// VisibleRows is the number of text rows shown; 0 means unbounded.
	VisibleRows int
	// LineHeight is the number of rows per line of text; 0 means 1.
	LineHeight int
}

// =============================================================================
// SURFACE INTERFACE
// =============================================================================

// Surface is the capability set the dropdown needs from an editable element.
type Surface interface {
	// ID uniquely identifies this surface instance.
	ID() string
	Shape() Shape

	Content() string
	SetContent(s string)
	// CaretOffset is the caret position in runes from the start of Content.
	CaretOffset() int
	SetCaretToEnd()
	Focus()

	// Bounds is the surface box on screen, border included.
	Bounds() Rect
	SetBounds(r Rect)
	Layout() Layout

	// Attr, SetAttr and RemoveAttr carry marker attributes that live as
	// long as the surface does.
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// base carries the state shared by every surface shape.
type base struct {
	id string

	mu     sync.RWMutex
	bounds Rect
	attrs  map[string]string
}

func newBase() base {
	return base{id: uuid.NewString(), attrs: make(map[string]string)}
}

// ID returns the surface identifier.
func (b *base) ID() string {
	return b.id
}

// Bounds returns the last bounds set by the host.
func (b *base) Bounds() Rect {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bounds
}

// SetBounds records where the host drew the surface.
func (b *base) SetBounds(r Rect) {
	b.mu.Lock()
	b.bounds = r
	b.mu.Unlock()
}

// Attr returns a marker attribute.
func (b *base) Attr(name string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.attrs[name]
	return v, ok
}

// SetAttr sets a marker attribute.
func (b *base) SetAttr(name, value string) {
	b.mu.Lock()
	b.attrs[name] = value
	b.mu.Unlock()
}

// RemoveAttr deletes a marker attribute.
func (b *base) RemoveAttr(name string) {
	b.mu.Lock()
	delete(b.attrs, name)
	b.mu.Unlock()
}
