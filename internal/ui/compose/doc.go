// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose is the Bubble Tea host for the template dropdown: a
// single composer box whose surface can be a one-line input or a
// multi-line text area, with the template menu drawn on top of it.
//
// # Event Routing
//
// Every key is dispatched in three steps, so the menu sees keys before the
// composer and the binder sees the composer's new content:
//
//  1. Bus.KeyDown, where an open menu consumes up/down/enter/esc
//  2. the focused bubbles component, unless the key was consumed
//  3. Bus.KeyUp, where the binder re-runs trigger matching
//
// Left clicks go to Bus.Click. A resize re-lays out the screen and clears
// the overlay layer; an open menu notices and closes itself.
//
// # Usage
//
//	m := compose.New(compose.Options{Templates: src, Theme: theme})
//	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
//	_, err := p.Run()
package compose
