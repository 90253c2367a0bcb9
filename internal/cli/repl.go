// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - "slashdrop repl": a line-editing host for terminals where the
// full-screen composer is not wanted.
//
// A line editor has no floating menu, so the dropdown becomes Tab
// completion: Tab after a trigger cycles through the allowed templates,
// each shown already inserted in place of the trigger.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/slashdrop/internal/binder"
	"github.com/jeranaias/slashdrop/internal/config"
	"github.com/jeranaias/slashdrop/internal/trigger"
)

// lineBreak stands in for a newline while a template sits in the single
// line editor. It is expanded back when the line is submitted.
const lineBreak = "↵"

const historyFileName = "repl_history"

// HandleRepl runs the prompt loop until Ctrl+C, Ctrl+D or "exit".
func HandleRepl(args Args, cfg *config.Config, w io.Writer) error {
	commandFlags(&args)
	if err := RequiresTTY("run the repl"); err != nil {
		return err
	}

	rt, err := NewRuntime(cfg, cfg.Templates.Watch)
	if err != nil {
		return err
	}
	defer rt.Close()

	ev := newEvaluator(rt)
	defer ev.Close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabCircular)
	line.SetCompleter(ev.Complete)

	history := historyPath()
	loadHistory(line, history)
	defer saveHistory(line, history)

	if !args.Quiet {
		fmt.Fprintln(w, DimStyle.Render("Type a trigger and press Tab to pick a template. Ctrl+D to quit."))
	}

	for {
		input, err := line.Prompt("slashdrop> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(w)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			return nil
		}
		line.AppendHistory(input)
		fmt.Fprintln(w, ev.Submit(input))
	}
}

// Complete returns the line with each allowed template in place of the
// trailing trigger. Nothing is offered when the user may not use it.
func (e *evaluator) Complete(line string) []string {
	out := e.Evaluate(line)
	if out.Decision != binder.DecisionOpen {
		return nil
	}
	candidates := make([]string, len(out.Templates))
	for i, tpl := range out.Templates {
		text := strings.ReplaceAll(tpl.Text, "\n", lineBreak)
		candidates[i] = trigger.Replace(line, out.Trigger, text)
	}
	return candidates
}

// Submit expands the line and, when it still ends in a trigger, says why
// Tab did or did not offer anything.
func (e *evaluator) Submit(line string) string {
	text := strings.ReplaceAll(line, lineBreak, "\n")

	out := e.Evaluate(line)
	switch out.Decision {
	case binder.DecisionOpen:
		return text + "\n" + DimStyle.Render(fmt.Sprintf("(%s has %d templates, press Tab to insert one)",
			out.Trigger, len(out.Templates)))
	case binder.DecisionDeniedGlobal, binder.DecisionDeniedCommand:
		return text + "\n" + WarningStyle.Render(fmt.Sprintf("(%s is not available to you)", out.Trigger))
	case binder.DecisionEmpty:
		return text + "\n" + WarningStyle.Render(fmt.Sprintf("(%s has no templates that can be inserted as written)", out.Trigger))
	}
	return text
}

// =============================================================================
// HISTORY
// =============================================================================

func historyPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, historyFileName)
}

func loadHistory(line *liner.State, path string) {
	if f, err := os.Open(path); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
}

// saveHistory writes the history owner-readable only; it may hold
// inserted template text.
func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
