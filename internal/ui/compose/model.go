// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/slashdrop/internal/binder"
	"github.com/jeranaias/slashdrop/internal/host"
	"github.com/jeranaias/slashdrop/internal/menu"
	"github.com/jeranaias/slashdrop/internal/security/access"
	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	richRows      = 6
	headerHeight  = 1
)

// Options configures the composer.
type Options struct {
	Theme *styles.Theme
	// Mode is the surface shape shown first.
	Mode surface.Shape
	Menu menu.Options

	Templates     snippet.Source
	AllowedGroups snippet.Source
	Membership    *access.Membership
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the composer screen.
type Model struct {
	theme *styles.Theme
	keys  KeyMap
	opts  Options

	bus     *host.Bus
	layer   *host.Layer
	watcher *host.Watcher
	menu    *menu.Controller
	binder  *binder.Binder

	input *textinput.Model
	area  *textarea.Model
	surf  surface.Surface

	width  int
	height int
	status string
	warn   bool
}

// New creates the composer with its host, menu and binder wired together.
func New(opts Options) *Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Menu.Width == 0 {
		opts.Menu = menu.DefaultOptions()
	}

	m := &Model{
		theme:   opts.Theme,
		keys:    DefaultKeyMap(),
		opts:    opts,
		bus:     host.NewBus(),
		layer:   host.NewLayer(),
		watcher: host.NewWatcher(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.menu = menu.NewController(m.bus, m.layer, menu.NewRenderer(opts.Theme, opts.Menu))
	m.menu.OnCommit(func(_ surface.Surface, tpl snippet.Template) {
		m.setStatus(fmt.Sprintf("Inserted %q", tpl.Label), false)
	})
	m.binder = binder.New(binder.Deps{
		Bus:           m.bus,
		Menu:          m.menu,
		Watcher:       m.watcher,
		Templates:     opts.Templates,
		AllowedGroups: opts.AllowedGroups,
		Membership:    opts.Membership,
	})

	m.mountSurface(opts.Mode, "")
	return m
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Surface returns the focused surface.
func (m *Model) Surface() surface.Surface {
	return m.surf
}

// Menu returns the menu controller.
func (m *Model) Menu() *menu.Controller {
	return m.menu
}

// Close releases the binder's subscriptions.
func (m *Model) Close() {
	m.binder.Close()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Type == tea.MouseLeft {
			m.bus.Click(host.ClickEvent{At: surface.Point{X: msg.X, Y: msg.Y}})
		}

	default:
		cmd = m.updateSurface(msg)
	}

	m.layout()
	// The host re-announces its surface after every update, the way a
	// structural-change observer would; hooking is idempotent.
	m.watcher.Announce(m.surf)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	// Overlays are positioned for the old geometry; drop them.
	m.layer.Clear()
	m.sizeSurface()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ToggleMode):
		next := surface.ShapeRich
		if m.surf.Shape() == surface.ShapeRich {
			next = surface.ShapePlain
		}
		m.mountSurface(next, m.surf.Content())
		return nil
	case key.Matches(msg, m.keys.Clear):
		m.menu.Close()
		m.surf.SetContent("")
		m.setStatus("", false)
		return nil
	}

	ev := host.NewKeyEvent(m.surf.ID(), msg)
	if m.bus.KeyDown(ev) {
		return nil
	}
	cmd := m.updateSurface(msg)
	m.bus.KeyUp(ev)
	return cmd
}

func (m *Model) updateSurface(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.surf.Shape() {
	case surface.ShapeRich:
		*m.area, cmd = m.area.Update(msg)
	default:
		*m.input, cmd = m.input.Update(msg)
	}
	return cmd
}

// mountSurface destroys the current surface, if any, and creates a fresh
// one of the given shape holding content.
func (m *Model) mountSurface(shape surface.Shape, content string) {
	if m.surf != nil {
		m.binder.Detach(m.surf)
	}

	switch shape {
	case surface.ShapeRich:
		area := textarea.New()
		area.ShowLineNumbers = false
		area.Placeholder = "Write a message. Type a trigger such as /snippet..."
		area.SetHeight(richRows)
		area.Focus()
		m.area, m.input = &area, nil
		m.surf = surface.NewRich(m.area, m.theme.Composer)
	default:
		input := textinput.New()
		input.Prompt = "> "
		input.PromptStyle = m.theme.ComposerPrompt
		input.TextStyle = m.theme.ComposerText
		input.Placeholder = "Type a trigger such as /snippet..."
		input.Focus()
		m.input, m.area = &input, nil
		m.surf = surface.NewPlain(m.input, m.theme.Composer)
	}

	m.sizeSurface()
	m.surf.SetContent(content)
	m.surf.SetCaretToEnd()
	m.layout()
	m.watcher.Announce(m.surf)
	log.Printf("COMPOSE: mounted %s surface", shape)
}

// sizeSurface fits the bubbles component inside the composer box.
func (m *Model) sizeSurface() {
	inner := m.width - m.theme.Composer.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	switch m.surf.Shape() {
	case surface.ShapeRich:
		m.area.SetWidth(inner)
	default:
		m.input.Width = inner - len([]rune(m.input.Prompt)) - 1
	}
}

// layout records where the composer box is drawn so caret placement can
// use it.
func (m *Model) layout() {
	box := m.renderComposer()
	m.surf.SetBounds(surface.Rect{
		X:      0,
		Y:      headerHeight,
		Width:  lipgloss.Width(box),
		Height: lipgloss.Height(box),
	})
}

func (m *Model) setStatus(text string, warn bool) {
	m.status = text
	m.warn = warn
}
