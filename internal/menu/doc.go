// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package menu implements the floating template menu: opening it below the
// caret, moving the selection, committing a template into the surface and
// dismissing it.
//
// # Key Types
//
//   - State: items, selected index, anchor and matched trigger
//   - Controller: owns the single open Instance and every transition
//   - Renderer: draws the menu box with lipgloss and an optional glamour
//     preview of the selected template
//   - KeyMap: the four keys the menu reacts to
//
// # Usage
//
//	ctrl := menu.NewController(bus, layer, menu.NewRenderer(theme, menu.DefaultOptions()))
//	ctrl.OnCommit(func(s surface.Surface, t snippet.Template) { log.Printf("MENU: inserted %q", t.Label) })
//	if err := ctrl.Open(s, cmd.Templates, anchor, cmd.Trigger); err != nil {
//		// no items
//	}
//
// At most one menu is open at a time. Opening a menu always closes the
// previous one first and releases its key and click subscriptions. If the
// host removes the menu element from the overlay layer behind the
// controller's back, the next event that reaches the menu closes it quietly.
package menu
