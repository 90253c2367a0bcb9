// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/util"
)

// State is what an open menu shows.
type State struct {
	Items    []snippet.Template
	Selected int
	// Anchor is the top-left cell of the menu box.
	Anchor surface.Point
	// Trigger is the trigger that opened the menu; it is stripped from the
	// surface on commit.
	Trigger string
}

// MoveSelection moves the selection by delta, stopping at either end.
func (s *State) MoveSelection(delta int) {
	s.Selected = util.Clamp(s.Selected+delta, 0, len(s.Items)-1)
}

// Current returns the selected template.
func (s State) Current() (snippet.Template, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return snippet.Template{}, false
	}
	return s.Items[s.Selected], true
}
