// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"github.com/jeranaias/slashdrop/internal/security/access"
)

// DefaultTrigger is used when the setting is a bare list of templates.
const DefaultTrigger = "/template"

// =============================================================================
// DATA MODEL
// =============================================================================

// Template is one selectable snippet.
type Template struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Command pairs a trigger with its templates and an optional allow-list.
// A nil AllowedGroups means the command declared no restriction.
type Command struct {
	Trigger       string
	Templates     []Template
	AllowedGroups access.GroupSet
}

// AllowList implements access.Restricted.
func (c Command) AllowList() (access.GroupSet, bool) {
	return c.AllowedGroups, c.AllowedGroups != nil
}

// Snapshot is the configuration read for a single matching attempt.
type Snapshot struct {
	AllowedGroups access.GroupSet
	Commands      []Command
}

// Triggers returns the command triggers in configuration order.
func (s Snapshot) Triggers() []string {
	triggers := make([]string, len(s.Commands))
	for i, cmd := range s.Commands {
		triggers[i] = cmd.Trigger
	}
	return triggers
}

// Command returns the first command bound to trigger.
func (s Snapshot) Command(trigger string) (Command, bool) {
	for _, cmd := range s.Commands {
		if cmd.Trigger == trigger {
			return cmd, true
		}
	}
	return Command{}, false
}

// LoadSnapshot reads and decodes the setting fresh. Nothing is cached
// between calls.
func LoadSnapshot(src Source, allowedGroups string) Snapshot {
	snap, _ := LoadSnapshotStrict(src, allowedGroups)
	return snap
}

// LoadSnapshotStrict is LoadSnapshot with the decode report. The snapshot
// is usable even when err is non-nil.
func LoadSnapshotStrict(src Source, allowedGroups string) (Snapshot, error) {
	var raw string
	if src != nil {
		raw = src.Raw()
	}
	cmds, err := DecodeStrict(raw)
	return Snapshot{
		AllowedGroups: access.ParseGroupIDs(allowedGroups),
		Commands:      cmds,
	}, err
}
