// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

// =============================================================================
// PERMISSION GATE
// =============================================================================

// Restricted is implemented by anything that may carry its own allow-list.
// ok is false when no allow-list was declared.
type Restricted interface {
	AllowList() (groups GroupSet, ok bool)
}

// IsGloballyAllowed reports whether a user with the given groups may use the
// feature at all. An empty allow-list means unrestricted.
func IsGloballyAllowed(user, allowed GroupSet) bool {
	if len(allowed) == 0 {
		return true
	}
	return user.Intersects(allowed)
}

// IsCommandAllowed reports whether the user may use a specific command.
// Commands without an allow-list, or with one that filtered down to nothing,
// are available to everyone who passed the global gate.
func IsCommandAllowed(user GroupSet, cmd Restricted) bool {
	if cmd == nil {
		return false
	}
	groups, ok := cmd.AllowList()
	if !ok || len(groups) == 0 {
		return true
	}
	return user.Intersects(groups)
}
