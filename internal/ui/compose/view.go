// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/slashdrop/internal/host"
	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/ui/styles"
)

// View renders the screen with every overlay element composited on top.
func (m *Model) View() string {
	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderComposer(),
		m.renderStatus(),
		m.renderHelp(),
	)

	lines := strings.Split(base, "\n")
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	for _, el := range m.layer.Elements() {
		overlay(lines, el, m.width)
	}
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader() string {
	snap, err := snippet.LoadSnapshotStrict(m.opts.Templates, "")
	triggers := "none"
	if len(snap.Commands) > 0 {
		triggers = strings.Join(snap.Triggers(), " ")
	}
	text := fmt.Sprintf("%s  %s composer  triggers: %s",
		m.theme.HeaderTitle.Render("slashdrop"), m.surf.Shape(), triggers)
	if err != nil && len(snap.Commands) == 0 {
		text += "  (template setting unusable)"
	}
	return m.theme.Header.MaxWidth(m.width).Render(text)
}

func (m *Model) renderComposer() string {
	var body string
	switch m.surf.Shape() {
	case surface.ShapeRich:
		body = m.area.View()
	default:
		body = m.input.View()
	}
	inner := m.width - m.theme.Composer.GetHorizontalBorderSize()
	return m.theme.Composer.Width(inner).Render(body)
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.warn {
		return m.theme.StatusWarn.Render(m.status)
	}
	return m.theme.Status.Render(m.status)
}

func (m *Model) renderHelp() string {
	var parts []string
	for _, b := range append(m.menu.KeyMap().ShortHelp(), m.keys.ShortHelp()...) {
		h := b.Help()
		if m.theme.GetLayoutMode() == styles.LayoutNarrow {
			parts = append(parts, m.theme.HelpKey.Render(h.Key))
			continue
		}
		parts = append(parts, m.theme.HelpKey.Render(h.Key)+" "+h.Desc)
	}
	return m.theme.Help.MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

// overlay draws el over lines, cutting the covered cells out of each
// background line.
func overlay(lines []string, el host.Element, width int) {
	fg := strings.Split(el.View, "\n")
	x, y := el.Rect.X, el.Rect.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	fgW := el.Rect.Width
	if fgW <= 0 {
		return
	}

	for i := 0; i < len(fg) && y+i < len(lines); i++ {
		bg := lines[y+i]
		left := ansi.Cut(bg, 0, x)
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if bgW := ansi.StringWidth(bg); bgW > x+fgW {
			right = ansi.Cut(bg, x+fgW, bgW)
		}

		line := fg[i]
		if n := ansi.StringWidth(line); n < fgW {
			line += strings.Repeat(" ", fgW-n)
		} else if n > fgW {
			line = ansi.Cut(line, 0, fgW)
		}
		out := left + line + right
		if width > 0 && ansi.StringWidth(out) > width {
			out = ansi.Cut(out, 0, width)
		}
		lines[y+i] = out
	}
}
