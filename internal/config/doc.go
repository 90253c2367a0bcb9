// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for slashdrop.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - TemplatesConfig: where trigger/template definitions come from
//   - AccessConfig: group allow-list and the user's groups
//   - UIConfig: theme, composer mode and menu geometry
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SLASHDROP_*)
//   - $SLASHDROP_HOME/config.toml or ~/.slashdrop/config.toml
//   - ~/.slashdrop/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	width := cfg.UI.MenuWidth
package config
