// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - "slashdrop tui": the full-screen composer.

package cli

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/slashdrop/internal/config"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/ui/compose"
	"github.com/jeranaias/slashdrop/internal/ui/styles"
)

// HandleTUI runs the composer until the user quits.
func HandleTUI(args Args, cfg *config.Config) error {
	if err := RequiresTTY("run the composer"); err != nil {
		return fmt.Errorf("%w (use 'slashdrop match' for scripts)", err)
	}

	rt, err := NewRuntime(cfg, cfg.Templates.Watch)
	if err != nil {
		return err
	}
	defer rt.Close()

	m := compose.New(ComposeOptions(rt))
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	log.Printf("COMPOSE: starting (mode=%s, templates=%s)", cfg.UI.Mode, rt.SourceName())
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("composer failed: %w", err)
	}
	return nil
}

// ComposeOptions converts the runtime into composer options.
func ComposeOptions(rt *Runtime) compose.Options {
	mode := surface.ShapePlain
	if strings.EqualFold(rt.Config.UI.Mode, config.ModeRich) {
		mode = surface.ShapeRich
	}
	return compose.Options{
		Theme:         styles.NewNamedTheme(rt.Config.UI.Theme),
		Mode:          mode,
		Menu:          rt.MenuOptions(),
		Templates:     rt.Templates,
		AllowedGroups: rt.AllowedGroups,
		Membership:    rt.Membership,
	}
}
