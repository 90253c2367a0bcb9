// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package surface

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// lineNumberGutter approximates the width textarea reserves for line
// numbers.
const lineNumberGutter = 4

// Rich is a multi-line surface backed by a bubbles textarea.
type Rich struct {
	base
	area  *textarea.Model
	style lipgloss.Style
}

// NewRich wraps area. See NewPlain for the ownership rules. The textarea's
// character and row limits are lifted so SetContent stores templates whole.
func NewRich(area *textarea.Model, style lipgloss.Style) *Rich {
	area.CharLimit = 0
	area.MaxHeight = 0
	return &Rich{base: newBase(), area: area, style: style}
}

// Model returns the wrapped textarea.
func (r *Rich) Model() *textarea.Model { return r.area }

// Shape implements Surface.
func (r *Rich) Shape() Shape { return ShapeRich }

// Content implements Surface.
func (r *Rich) Content() string { return r.area.Value() }

// SetContent implements Surface.
func (r *Rich) SetContent(s string) { r.area.SetValue(s) }

// CaretOffset counts the runes preceding the cursor: every row above the
// cursor row (plus its newline) and the cursor column on its own row.
func (r *Rich) CaretOffset() int {
	return RichOffset(r.area.Value(), r.area.Line(), r.column())
}

func (r *Rich) column() int {
	info := r.area.LineInfo()
	return info.StartColumn + info.ColumnOffset
}

// SetCaretToEnd implements Surface. Reassigning the value leaves the
// textarea cursor after the last inserted rune.
func (r *Rich) SetCaretToEnd() {
	r.area.SetValue(r.area.Value())
}

// Focus implements Surface.
func (r *Rich) Focus() { r.area.Focus() }

// Layout implements Surface.
func (r *Rich) Layout() Layout {
	indent := runewidth.StringWidth(r.area.Prompt)
	if r.area.ShowLineNumbers {
		indent += lineNumberGutter
	}
	return Layout{
		Style:        r.style,
		Indent:       indent,
		Wrap:         true,
		ContentWidth: r.area.Width(),
		VisibleRows:  r.area.Height(),
		LineHeight:   1,
	}
}

// RichOffset converts a (row, column) cursor position into a rune offset
// within content. Out-of-range positions are clamped.
func RichOffset(content string, row, col int) int {
	lines := strings.Split(content, "\n")
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}

	offset := 0
	for i := 0; i < row; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	lineLen := len([]rune(lines[row]))
	if col < 0 {
		col = 0
	}
	if col > lineLen {
		col = lineLen
	}
	return offset + col
}
