// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package surface

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Plain is a single-line surface backed by a bubbles textinput.
type Plain struct {
	base
	input *textinput.Model
	style lipgloss.Style
}

// NewPlain wraps input. The host keeps driving input.Update; Plain only
// reads and writes through the pointer. style is the box the host renders
// around the input. Any character limit on input is lifted.
func NewPlain(input *textinput.Model, style lipgloss.Style) *Plain {
	input.CharLimit = 0
	return &Plain{base: newBase(), input: input, style: style}
}

// Model returns the wrapped textinput.
func (p *Plain) Model() *textinput.Model { return p.input }

// Shape implements Surface.
func (p *Plain) Shape() Shape { return ShapePlain }

// Content implements Surface.
func (p *Plain) Content() string { return p.input.Value() }

// SetContent implements Surface. Like assigning an input's value, the caret
// ends up after the last rune.
func (p *Plain) SetContent(s string) {
	p.input.SetValue(s)
	p.input.CursorEnd()
}

// CaretOffset implements Surface.
func (p *Plain) CaretOffset() int { return p.input.Position() }

// SetCaretToEnd implements Surface.
func (p *Plain) SetCaretToEnd() { p.input.CursorEnd() }

// Focus implements Surface.
func (p *Plain) Focus() { p.input.Focus() }

// Layout implements Surface.
func (p *Plain) Layout() Layout {
	return Layout{
		Style:        p.style,
		Indent:       runewidth.StringWidth(p.input.Prompt),
		Wrap:         false,
		ContentWidth: p.input.Width,
		VisibleRows:  1,
		LineHeight:   1,
	}
}
