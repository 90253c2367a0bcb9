// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and the small commands (version, help).
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdMatch
	CmdCheck
	CmdRepl
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON envelopes.
func (c Command) String() string {
	switch c {
	case CmdMatch:
		return "match"
	case CmdCheck:
		return "check"
	case CmdRepl:
		return "repl"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "tui"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	// ConfigPath loads this file instead of ~/.slashdrop/config.toml.
	ConfigPath string

	// Raw is everything after the command name, flags included.
	Raw []string
}

const usageText = `slashdrop - slash-trigger template dropdown

Usage:
  slashdrop [flags] [command]

Commands:
  tui                     Run the composer (default)
  match <text>            Run trigger matching and permissions against text
      --pick <n>          Also print the text with template n inserted
  check                   Decode the configured templates and report problems
  repl                    Line-editing prompt; Tab after a trigger cycles templates
  config show             Print the effective configuration
  config path             Print the configuration file path
  config get <key>        Print one value (dot notation, e.g. ui.theme)
  config set <key> <val>  Change one value and save
  version                 Print version information
  help                    Show this help

Flags:
  --json                  Machine-readable output
  --config <path>         Use a specific config file (.toml or .json)
  -q, --quiet             Less output
  -v, --verbose           More output (verbose logging)

Examples:
  slashdrop match "Dear team, /snippet"
  slashdrop match "Dear team, /snippet" --pick 1
  SLASHDROP_TEMPLATES_FILE=./templates.json slashdrop check --json
  slashdrop config set ui.mode rich

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// Parse parses argv (without the program name) into a command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	parsed.Raw = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, parsed
	case "match", "m":
		return CmdMatch, parsed
	case "check":
		return CmdCheck, parsed
	case "repl":
		return CmdRepl, parsed
	case "config":
		return CmdConfig, parsed
	case "version", "--version":
		return CmdVersion, parsed
	case "help", "-h", "--help":
		parsed.Raw = nil
		return CmdHelp, parsed
	default:
		parsed.Raw = remaining
		return CmdHelp, parsed
	}
}

// parseGlobalFlags extracts global flags and returns the remaining args.
// Global flags are only recognised before the command name; after it they
// belong to the command.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-q" || arg == "--quiet":
			parsed.Quiet = true
		case arg == "-v" || arg == "--verbose":
			parsed.Verbose = true
		case arg == "--json":
			parsed.JSON = true
		case arg == "--config":
			if i+1 < len(args) {
				i++
				parsed.ConfigPath = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			parsed.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			return args[i:], parsed
		}
	}
	return nil, parsed
}

// commandFlags parses the arguments after the command name. A --json given
// there counts the same as one before it.
func commandFlags(args *Args) *ArgParser {
	p := NewArgParser(args.Raw, "json", "quiet", "q")
	if p.BoolFlag("json") {
		args.JSON = true
	}
	if p.BoolFlag("quiet") || p.BoolFlag("q") {
		args.Quiet = true
	}
	if path := p.Flag("config"); path != "" {
		args.ConfigPath = path
	}
	return p
}

// HandleVersion prints version information.
func HandleVersion(args Args, w io.Writer) error {
	commandFlags(&args)
	if args.JSON {
		return NewJSONResponse(CmdVersion.String(), VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Fprint(w)
	}
	fmt.Fprintf(w, "slashdrop version %s\n", Version)
	if !args.Quiet {
		fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
		fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	}
	return nil
}

// HandleHelp prints usage. An unknown command is reported first.
func HandleHelp(args Args, w io.Writer) error {
	if len(args.Raw) > 0 {
		fmt.Fprintf(w, "unknown command %q\n\n", args.Raw[0])
		PrintUsage(w)
		return fmt.Errorf("unknown command %q", args.Raw[0])
	}
	PrintUsage(w)
	return nil
}
