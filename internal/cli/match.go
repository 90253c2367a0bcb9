// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// match.go - "slashdrop match": the trigger pipeline without a UI.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/slashdrop/internal/binder"
	"github.com/jeranaias/slashdrop/internal/config"
	"github.com/jeranaias/slashdrop/internal/trigger"
)

// ErrNoText is returned when match is given nothing to evaluate.
var ErrNoText = errors.New("match needs the text to evaluate")

// HandleMatch evaluates the text argument as if it had just been typed
// into the composer, and reports what the composer would do.
func HandleMatch(args Args, cfg *config.Config, w io.Writer) error {
	p := commandFlags(&args)
	text := JoinPositionalArgs(p, 0)

	return OutputJSON(w, args.JSON, CmdMatch.String(), func() (interface{}, error) {
		if text == "" {
			return nil, ErrNoText
		}

		pick := 0
		if p.HasFlag("pick") {
			n, err := ParseIntWithValidation(p.Flag("pick"), "--pick")
			if err != nil {
				return nil, err
			}
			pick = n
		}

		data, err := runMatch(cfg, text, pick)
		if err != nil {
			return data, err
		}
		if !args.JSON {
			printMatch(w, data, args.Quiet)
		}
		return data, nil
	})
}

// runMatch evaluates text. pick, when positive, selects the 1-based
// template whose insertion is reported as Result.
func runMatch(cfg *config.Config, text string, pick int) (*MatchData, error) {
	rt, err := NewRuntime(cfg, false)
	if err != nil {
		return nil, err
	}
	defer rt.Close()

	ev := newEvaluator(rt)
	defer ev.Close()
	out := ev.Evaluate(text)

	data := &MatchData{
		Text:     text,
		Decision: out.Decision.String(),
		Trigger:  out.Trigger,
	}
	if out.ConfigErr != nil {
		data.ConfigError = out.ConfigErr.Error()
	}
	if out.Decision != binder.DecisionOpen {
		if pick > 0 {
			return data, fmt.Errorf("cannot pick a template: %s", out.Decision)
		}
		return data, nil
	}

	for _, tpl := range out.Templates {
		data.Templates = append(data.Templates, TemplateData{Label: tpl.Label, Text: tpl.Text})
	}
	data.Anchor = &PointData{X: out.Anchor.X, Y: out.Anchor.Y}

	if pick > 0 {
		if pick > len(out.Templates) {
			return data, fmt.Errorf("--pick %d out of range: %s has %d templates",
				pick, out.Trigger, len(out.Templates))
		}
		result := trigger.Replace(text, out.Trigger, out.Templates[pick-1].Text)
		data.Result = &result
	}
	return data, nil
}

func printMatch(w io.Writer, data *MatchData, quiet bool) {
	if data.Result != nil {
		fmt.Fprintln(w, *data.Result)
		return
	}

	switch data.Decision {
	case binder.DecisionNoMatch.String():
		fmt.Fprintf(w, "%s no trigger at the end of the text\n", RenderStatus(data.Decision))
	case binder.DecisionOpen.String():
		fmt.Fprintf(w, "%s %s opens %d templates\n",
			RenderStatus(data.Decision), TriggerStyle.Render(data.Trigger), len(data.Templates))
	default:
		fmt.Fprintf(w, "%s %s %s\n",
			RenderStatus(data.Decision), TriggerStyle.Render(data.Trigger), WarningStyle.Render(data.Decision))
	}

	if !quiet {
		for i, tpl := range data.Templates {
			fmt.Fprintf(w, "  %d. %s %s\n", i+1, RenderLabel(tpl.Label), DimStyle.Render(firstLine(tpl.Text)))
		}
		if data.Anchor != nil {
			fmt.Fprintf(w, "  %s %d,%d\n", RenderLabel("anchor"), data.Anchor.X, data.Anchor.Y)
		}
	}
	if data.ConfigError != "" {
		fmt.Fprintf(w, "  %s %s\n", RenderLabel("config"), WarningStyle.Render(data.ConfigError))
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
