// slashdrop - a slash-trigger template dropdown for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/slashdrop/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	cmd, args := cli.Parse(argv)

	switch cmd {
	case cli.CmdVersion:
		return cli.HandleVersion(args, os.Stdout)
	case cli.CmdHelp:
		return cli.HandleHelp(args, os.Stdout)
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}

	closeLog, err := cli.SetupLogging(cfg, cmd, args.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer closeLog()

	switch cmd {
	case cli.CmdMatch:
		return cli.HandleMatch(args, cfg, os.Stdout)
	case cli.CmdCheck:
		return cli.HandleCheck(args, cfg, os.Stdout)
	case cli.CmdRepl:
		return cli.HandleRepl(args, cfg, os.Stdout)
	case cli.CmdConfig:
		return cli.HandleConfig(args, cfg, os.Stdout)
	default:
		return cli.HandleTUI(args, cfg)
	}
}
