// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keys an open menu consumes. Every other key passes
// through to the surface.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Commit  key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the menu bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous template"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next template"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "insert"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// IsNavigation reports whether name is one of the menu keys. Such keys
// never re-run trigger matching.
func (k KeyMap) IsNavigation(name string) bool {
	return matches(name, k.Up, k.Down, k.Commit, k.Dismiss)
}

// matches is key.Matches for a key name. Bus events carry the name rather
// than the tea.KeyMsg it came from.
func matches(name string, bindings ...key.Binding) bool {
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		for _, k := range b.Keys() {
			if k == name {
				return true
			}
		}
	}
	return false
}

// ShortHelp returns bindings for the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Commit, k.Dismiss}
}
