// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// check.go - "slashdrop check": strict decode of the templates setting.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/slashdrop/internal/config"
	"github.com/jeranaias/slashdrop/internal/security/access"
	"github.com/jeranaias/slashdrop/internal/snippet"
)

// ErrCheckFailed is returned when the setting has problems. The composer
// still runs with whatever decoded; this only makes scripts notice.
var ErrCheckFailed = errors.New("templates setting has problems")

// HandleCheck decodes the configured templates and lists the commands that
// survive along with every entry that was dropped.
func HandleCheck(args Args, cfg *config.Config, w io.Writer) error {
	commandFlags(&args)

	return OutputJSON(w, args.JSON, CmdCheck.String(), func() (interface{}, error) {
		data, err := runCheck(cfg)
		if data != nil && !args.JSON {
			printCheck(w, data, args.Quiet)
		}
		return data, err
	})
}

func runCheck(cfg *config.Config) (*CheckData, error) {
	rt, err := NewRuntime(cfg, false)
	if err != nil {
		return nil, err
	}
	defer rt.Close()

	cmds, decodeErr := snippet.DecodeStrict(rt.Templates.Raw())
	data := &CheckData{
		Source:        rt.SourceName(),
		Commands:      make([]CommandData, 0, len(cmds)),
		AllowedGroups: access.ParseGroupIDs(cfg.Access.AllowedGroups).Sorted(),
	}
	for _, cmd := range cmds {
		groups, restricted := cmd.AllowList()
		data.Commands = append(data.Commands, CommandData{
			Trigger:       cmd.Trigger,
			Templates:     len(cmd.Templates),
			AllowedGroups: groups.Sorted(),
			Restricted:    restricted && groups.Len() > 0,
		})
	}
	data.Problems = problems(decodeErr)

	if len(data.Problems) > 0 {
		return data, fmt.Errorf("%w: %d found", ErrCheckFailed, len(data.Problems))
	}
	return data, nil
}

// problems flattens a decode error into one message per dropped entry.
func problems(err error) []string {
	if err == nil {
		return nil
	}
	var entries snippet.DecodeErrors
	if errors.As(err, &entries) {
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Error()
		}
		return out
	}
	return []string{err.Error()}
}

func printCheck(w io.Writer, data *CheckData, quiet bool) {
	fmt.Fprintln(w, TitleStyle.Render("Templates: "+data.Source))
	for _, cmd := range data.Commands {
		who := DimStyle.Render("everyone")
		if cmd.Restricted {
			who = fmt.Sprintf("groups %v", cmd.AllowedGroups)
		}
		fmt.Fprintf(w, "  %s %s %d templates, %s\n",
			RenderStatus("ok"), TriggerStyle.Render(cmd.Trigger), cmd.Templates, who)
	}
	if !quiet && len(data.AllowedGroups) > 0 {
		fmt.Fprintf(w, "  %s %v\n", RenderLabel("allowed groups"), data.AllowedGroups)
	}
	for _, p := range data.Problems {
		fmt.Fprintf(w, "  %s %s\n", RenderStatus("fail"), p)
	}
	if len(data.Problems) == 0 {
		fmt.Fprintln(w, SuccessStyle.Render("No problems found."))
	}
}
