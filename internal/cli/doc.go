// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the slashdrop commands.
//
// The composer (tui) is the main host. The other commands drive the same
// binder pipeline without a screen, for scripting and for checking a
// templates setting before rolling it out.
//
// # Key Types
//
//   - Command: the subcommand to run
//   - Args: global flags plus the raw arguments after the command name
//   - ArgParser: flag and positional parsing shared by the commands
//   - Runtime: template, allow-list and membership sources built from config
//   - JSONResponse: the --json envelope
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	cfg, err := cli.LoadConfig(args)
//	switch cmd {
//	case cli.CmdMatch:
//	    err = cli.HandleMatch(args, cfg, os.Stdout)
//	case cli.CmdTUI:
//	    err = cli.HandleTUI(args, cfg)
//	}
//
// # Commands Overview
//
//   - tui: full-screen composer with the dropdown
//   - match: evaluate text as if typed; --pick n prints the inserted result
//   - check: strict decode of the templates setting
//   - repl: line editor where Tab after a trigger cycles templates
//   - config: show, path, get and set
//   - version, help
package cli
