// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across slashdrop packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: cell-width safe truncation of menu labels
//   - Clamp: bounds selection, scroll and caret offsets
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	label := util.TruncateWidth(tpl.Label, 20)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
