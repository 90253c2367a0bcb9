// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/ui/styles"
	"github.com/jeranaias/slashdrop/internal/util"
)

const (
	minWidth     = 16
	previewLines = 4
	labelShare   = 2 // label column gets 1/labelShare of the inner width
)

// Options controls menu rendering.
type Options struct {
	// Width is the outer width of the menu box, border included.
	Width int
	// MaxVisible is the number of item rows shown before scrolling.
	MaxVisible int
	// Preview renders the selected template's text below the items.
	Preview bool
}

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{Width: 44, MaxVisible: 8, Preview: true}
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer draws a State as a bordered box.
type Renderer struct {
	theme    *styles.Theme
	opts     Options
	markdown *glamour.TermRenderer
}

// NewRenderer creates a renderer. A nil theme uses the detected theme.
func NewRenderer(theme *styles.Theme, opts Options) *Renderer {
	if theme == nil {
		theme = styles.NewTheme()
	}
	if opts.Width < minWidth {
		opts.Width = minWidth
	}
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = DefaultOptions().MaxVisible
	}

	r := &Renderer{theme: theme, opts: opts}
	if opts.Preview {
		style := styles.ThemeLight
		if theme.IsDark {
			style = styles.ThemeDark
		}
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(r.innerWidth()),
		)
		if err != nil {
			log.Printf("MENU: markdown preview disabled: %v", err)
		} else {
			r.markdown = md
		}
	}
	return r
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render draws st. The result is at most Options.Width cells wide.
func (r *Renderer) Render(st State) string {
	if len(st.Items) == 0 {
		return ""
	}

	start, end := r.window(st)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, r.renderItem(st.Items[i], i == st.Selected))
	}
	content := strings.Join(rows, "\n")

	if r.opts.Preview {
		if tpl, ok := st.Current(); ok {
			if preview := r.renderPreview(tpl.Text); preview != "" {
				content += "\n" + r.renderDivider() + "\n" + preview
			}
		}
	}

	return r.theme.MenuBox.
		Width(r.opts.Width - r.theme.MenuBox.GetHorizontalBorderSize()).
		MaxWidth(r.opts.Width).
		Render(content)
}

// Rect returns the screen rectangle a rendered view occupies at st.Anchor.
func (r *Renderer) Rect(st State, view string) surface.Rect {
	return surface.Rect{
		X:      st.Anchor.X,
		Y:      st.Anchor.Y,
		Width:  lipgloss.Width(view),
		Height: lipgloss.Height(view),
	}
}

// ItemAt maps a point inside the menu box (relative to its top-left cell)
// to an item index.
func (r *Renderer) ItemAt(st State, p surface.Point) (int, bool) {
	box := r.theme.MenuBox
	row := p.Y - box.GetBorderTopSize() - box.GetPaddingTop()
	start, end := r.window(st)
	if row < 0 || row >= end-start {
		return 0, false
	}
	return start + row, true
}

// window returns the visible item range, keeping the selection centred once
// there are more items than fit.
func (r *Renderer) window(st State) (start, end int) {
	n := len(st.Items)
	if n <= r.opts.MaxVisible {
		return 0, n
	}
	start = util.Clamp(st.Selected-r.opts.MaxVisible/2, 0, n-r.opts.MaxVisible)
	return start, start + r.opts.MaxVisible
}

func (r *Renderer) innerWidth() int {
	return r.opts.Width - r.theme.MenuBox.GetHorizontalFrameSize()
}

// renderItem renders one row: indicator, label, then the first line of the
// template text in a muted colour.
func (r *Renderer) renderItem(tpl snippet.Template, selected bool) string {
	inner := r.innerWidth()
	indicatorWidth := r.theme.MenuIndicator.GetWidth()
	labelWidth := (inner - indicatorWidth) / labelShare
	detailWidth := inner - indicatorWidth - labelWidth

	labelStyle := r.theme.MenuItem.Width(labelWidth)
	detailStyle := r.theme.MenuDetail.Width(detailWidth)
	indicator := " "
	if selected {
		labelStyle = r.theme.MenuSelected.Width(labelWidth)
		indicator = ">"
	}

	label := util.TruncateWidth(tpl.Label, labelWidth-1)
	detail := util.TruncateWidth(firstLine(tpl.Text), detailWidth)

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		r.theme.MenuIndicator.Render(indicator),
		labelStyle.Render(label),
		detailStyle.Render(detail),
	)
}

// renderPreview renders the template text as markdown, trimmed to a few
// lines. Rendering failures fall back to the plain text.
func (r *Renderer) renderPreview(text string) string {
	rendered := text
	if r.markdown != nil {
		if out, err := r.markdown.Render(text); err == nil {
			rendered = out
		}
	}

	var lines []string
	for _, line := range strings.Split(rendered, "\n") {
		if strings.TrimSpace(ansi.Strip(line)) == "" {
			if len(lines) == 0 {
				continue
			}
		}
		lines = append(lines, ansi.Truncate(line, r.innerWidth(), ""))
		if len(lines) == previewLines {
			break
		}
	}
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderDivider() string {
	return r.theme.MenuDivider.Render(strings.Repeat("-", r.innerWidth()))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
