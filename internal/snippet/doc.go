// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package snippet holds the template data model and decodes it from the raw
// host setting.
//
// # Key Types
//
//   - Template: one insertable snippet (display label + text)
//   - Command: a trigger with its templates and optional allow-list
//   - Snapshot: everything read for one matching attempt
//   - Source: where the raw setting text comes from
//
// # Decoding
//
// The setting is a JSON array of commands:
//
//	[
//	  {
//	    "trigger": "/snippet",
//	    "templates": [{"label": "Greeting", "text": "Hello there!"}],
//	    "allowed_groups": [10, "11"]
//	  }
//	]
//
// A bare array of templates is also accepted and becomes one command bound to
// DefaultTrigger. Decode never fails: malformed input yields no commands, so
// a broken setting only disables the feature for that keystroke.
package snippet
