// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package access decides whether the current user may use the template
// dropdown at all, and whether a specific trigger is available to them.
//
// Access is expressed as group membership. The user's groups are resolved
// once per session and intersected with allow-lists from configuration:
//
//   - Global allow-list: gates the whole feature.
//   - Command allow-list: gates a single trigger.
//
// An empty or absent allow-list means unrestricted. Group identifiers that
// are not integers are dropped while parsing and never cause an error.
//
// Usage:
//
//	membership := access.NewMembership(access.StaticResolver(cfg.Access.UserGroups))
//	user := membership.Groups()
//
//	if !access.IsGloballyAllowed(user, access.ParseGroupIDs(cfg.Access.AllowedGroups)) {
//	    return // silently do nothing
//	}
//	if !access.IsCommandAllowed(user, cmd) {
//	    return
//	}
package access
