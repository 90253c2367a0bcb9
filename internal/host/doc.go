// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package host models the parts of the host screen the dropdown depends on,
// so the dropdown logic can be exercised without a terminal.
//
// # Key Types
//
//   - Bus: key and click dispatch with per-subscription release
//   - Layer: overlay elements drawn above the screen, keyed by id
//   - Watcher: "tell me when an editable surface appears"
//
// Dispatch is synchronous. Handlers run on the caller's goroutine and may
// subscribe or unsubscribe while a dispatch is in progress; new handlers
// only see later events and released handlers are not called again.
package host
