// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snippet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/slashdrop/internal/security/access"
)

var (
	// ErrEmpty means the setting contained nothing to decode.
	ErrEmpty = errors.New("templates setting is empty")
	// ErrNotArray means the top-level JSON value is not an array.
	ErrNotArray = errors.New("templates setting must be a JSON array")
	// ErrNoCommands means decoding succeeded but nothing usable remained.
	ErrNoCommands = errors.New("templates setting has no usable commands")
)

// DecodeError describes a single rejected entry.
type DecodeError struct {
	Index   int
	Message string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("entry %d: %s", e.Index, e.Message)
}

// DecodeErrors collects the entries that were dropped.
type DecodeErrors []DecodeError

func (e DecodeErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// rawCommand mirrors one JSON entry. Fields are loosely typed so that a
// wrong type in one entry drops only that entry.
type rawCommand struct {
	Trigger       any `json:"trigger"`
	Templates     any `json:"templates"`
	AllowedGroups any `json:"allowed_groups"`
	Label         any `json:"label"`
	Text          any `json:"text"`
}

// =============================================================================
// DECODE
// =============================================================================

// Decode parses the raw setting and returns the usable commands. It never
// fails; any problem yields fewer (or no) commands.
func Decode(raw string) []Command {
	cmds, _ := DecodeStrict(raw)
	return cmds
}

// DecodeStrict is Decode with a report of what was dropped. The returned
// commands are valid even when err is non-nil.
func DecodeStrict(raw string) ([]Command, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmpty
	}

	var entries []json.RawMessage
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	if err := dec.Decode(&entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: trailing data after array")
	}

	var (
		cmds    []Command
		bare    []Template
		dropped DecodeErrors
	)
	for i, entry := range entries {
		var rc rawCommand
		if err := json.Unmarshal(entry, &rc); err != nil {
			dropped = append(dropped, DecodeError{Index: i, Message: "not an object"})
			continue
		}

		// Bare template entry, the original settings shape.
		if rc.Trigger == nil && rc.Templates == nil {
			tpl, msg := templateFrom(rc.Label, rc.Text)
			if msg != "" {
				dropped = append(dropped, DecodeError{Index: i, Message: msg})
				continue
			}
			bare = append(bare, tpl)
			continue
		}

		cmd, msg := commandFrom(rc)
		if msg != "" {
			dropped = append(dropped, DecodeError{Index: i, Message: msg})
			continue
		}
		cmds = append(cmds, cmd)
	}

	if len(bare) > 0 {
		cmds = append(cmds, Command{Trigger: DefaultTrigger, Templates: bare})
	}

	switch {
	case len(dropped) > 0:
		return cmds, dropped
	case len(cmds) == 0:
		return nil, ErrNoCommands
	}
	return cmds, nil
}

func commandFrom(rc rawCommand) (Command, string) {
	trigger, ok := rc.Trigger.(string)
	if !ok || strings.TrimSpace(trigger) == "" {
		return Command{}, "trigger must be a non-empty string"
	}

	list, ok := rc.Templates.([]any)
	if !ok {
		return Command{}, "templates must be an array"
	}
	var templates []Template
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if tpl, msg := templateFrom(obj["label"], obj["text"]); msg == "" {
			templates = append(templates, tpl)
		}
	}
	if len(templates) == 0 {
		return Command{}, fmt.Sprintf("trigger %q has no usable templates", trigger)
	}

	cmd := Command{Trigger: trigger, Templates: templates}
	switch groups := rc.AllowedGroups.(type) {
	case nil:
	case []any:
		cmd.AllowedGroups = access.GroupsFromValues(groups)
	case string:
		cmd.AllowedGroups = access.ParseGroupIDs(groups)
	default:
		return Command{}, "allowed_groups must be an array or a delimited string"
	}
	return cmd, ""
}

func templateFrom(label, text any) (Template, string) {
	t, ok := text.(string)
	if !ok || t == "" {
		return Template{}, "template text must be a non-empty string"
	}
	t = strings.ReplaceAll(t, "\r\n", "\n")
	l, _ := label.(string)
	if strings.TrimSpace(l) == "" {
		l = firstLine(t)
	}
	return Template{Label: l, Text: t}, ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
