// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the host-level bindings. They are handled before any
// other routing.
type KeyMap struct {
	Quit       key.Binding
	ToggleMode key.Binding
	Clear      key.Binding
}

// DefaultKeyMap returns the host bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "single/multi-line"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
	}
}

// ShortHelp returns bindings for the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleMode, k.Clear, k.Quit}
}
