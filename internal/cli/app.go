// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Wiring shared by every command: config, logging, and the
// template and permission sources.

package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/slashdrop/internal/binder"
	"github.com/jeranaias/slashdrop/internal/config"
	"github.com/jeranaias/slashdrop/internal/host"
	"github.com/jeranaias/slashdrop/internal/menu"
	"github.com/jeranaias/slashdrop/internal/security/access"
	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/ui/styles"
)

// LoadConfig returns the configuration named by --config, which then
// becomes the global one, or the global one from ~/.slashdrop.
func LoadConfig(args Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		cfg, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.SetGlobal(cfg)
		return cfg, nil
	}
	return config.Global(), nil
}

// SetupLogging points the standard logger at the log file. The TUI owns
// the terminal, so nothing is ever logged to it; the one-shot commands log
// to stderr with --verbose. The returned func closes the file.
func SetupLogging(cfg *config.Config, cmd Command, verbose bool) (func(), error) {
	noop := func() {}
	if verbose && cmd != CmdTUI {
		log.SetOutput(os.Stderr)
		return noop, nil
	}
	if !cfg.Log.Enabled {
		log.SetOutput(io.Discard)
		return noop, nil
	}

	path, err := cfg.LogPath()
	if err != nil {
		log.SetOutput(io.Discard)
		return noop, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		log.SetOutput(io.Discard)
		return noop, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "slashdrop")
	if err != nil {
		log.SetOutput(io.Discard)
		return noop, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() { f.Close() }, nil
}

// =============================================================================
// RUNTIME
// =============================================================================

// Runtime holds the sources the binder reads on every keystroke.
type Runtime struct {
	Config        *config.Config
	Templates     snippet.Source
	AllowedGroups snippet.Source
	Membership    *access.Membership

	file *snippet.FileSource
}

// NewRuntime builds the sources described by cfg. When the templates live
// in a file and watch is set, edits to the file apply without a restart.
func NewRuntime(cfg *config.Config, watch bool) (*Runtime, error) {
	rt := &Runtime{
		Config:        cfg,
		AllowedGroups: snippet.StaticSource(cfg.Access.AllowedGroups),
		Membership: access.NewMembership(access.Chain(
			access.EnvResolver{},
			access.StaticResolver(cfg.Access.UserGroups),
		)),
	}

	if cfg.Templates.File == "" {
		rt.Templates = snippet.StaticSource(cfg.Templates.Raw)
		return rt, nil
	}

	fs, err := snippet.NewFileSource(cfg.Templates.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open templates file: %w", err)
	}
	if watch {
		if err := fs.Watch(); err != nil {
			log.Printf("TEMPLATES: live reload disabled: %v", err)
		}
	}
	rt.file = fs
	rt.Templates = fs
	return rt, nil
}

// SourceName describes where the templates come from.
func (rt *Runtime) SourceName() string {
	if rt.file != nil {
		return rt.file.Path()
	}
	return "config"
}

// MenuOptions converts the [ui] section for the menu renderer.
func (rt *Runtime) MenuOptions() menu.Options {
	return menu.Options{
		Width:      rt.Config.UI.MenuWidth,
		MaxVisible: rt.Config.UI.MaxVisible,
		Preview:    rt.Config.UI.Preview,
	}
}

// Close stops watching the templates file.
func (rt *Runtime) Close() error {
	if rt.file != nil {
		return rt.file.Close()
	}
	return nil
}

// =============================================================================
// HEADLESS EVALUATION
// =============================================================================

// evaluator runs the binder pipeline against a multi-line surface that is
// never drawn. match and repl use it in place of the composer, so every
// template a command carries is offered.
type evaluator struct {
	binder *binder.Binder
	surf   *surface.Rich
}

func newEvaluator(rt *Runtime) *evaluator {
	bus := host.NewBus()
	layer := host.NewLayer()
	ctl := menu.NewController(bus, layer, menu.NewRenderer(styles.NewTheme(), rt.MenuOptions()))

	area := textarea.New()
	area.Prompt = ""
	area.ShowLineNumbers = false
	area.SetWidth(GetTerminalWidth())
	area.SetHeight(1)
	surf := surface.NewRich(&area, lipgloss.NewStyle())
	surf.SetBounds(surface.Rect{Width: GetTerminalWidth(), Height: 1})

	return &evaluator{
		binder: binder.New(binder.Deps{
			Bus:           bus,
			Menu:          ctl,
			Templates:     rt.Templates,
			AllowedGroups: rt.AllowedGroups,
			Membership:    rt.Membership,
		}),
		surf: surf,
	}
}

// Evaluate places text in the surface with the caret at the end and runs
// the pipeline.
func (e *evaluator) Evaluate(text string) binder.Outcome {
	e.surf.SetContent(text)
	e.surf.SetCaretToEnd()
	return e.binder.Evaluate(e.surf)
}

func (e *evaluator) Close() {
	e.binder.Close()
}
