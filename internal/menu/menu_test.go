// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashdrop/internal/host"
	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fixture struct {
	bus   *host.Bus
	layer *host.Layer
	ctrl  *Controller
	input *textinput.Model
	s     surface.Surface
}

func newFixture(t *testing.T, content string) *fixture {
	t.Helper()
	input := textinput.New()
	input.SetValue(content)
	s := surface.NewPlain(&input, lipgloss.NewStyle())
	s.SetBounds(surface.Rect{X: 0, Y: 2, Width: 60, Height: 3})

	bus := host.NewBus()
	layer := host.NewLayer()
	renderer := NewRenderer(styles.NewNamedTheme(styles.ThemeDark), Options{Width: 40, MaxVisible: 3})
	return &fixture{
		bus:   bus,
		layer: layer,
		ctrl:  NewController(bus, layer, renderer),
		input: &input,
		s:     s,
	}
}

func (f *fixture) key(k string) bool {
	return f.bus.KeyDown(host.KeyEvent{Target: f.s.ID(), Key: k})
}

func templates(labels ...string) []snippet.Template {
	out := make([]snippet.Template, len(labels))
	for i, l := range labels {
		out[i] = snippet.Template{Label: l, Text: l + " text"}
	}
	return out
}

// =============================================================================
// STATE TESTS
// =============================================================================

func TestStateMoveSelectionClamped(t *testing.T) {
	st := State{Items: templates("a", "b", "c")}

	for i := 0; i < 5; i++ {
		st.MoveSelection(-1)
	}
	assert.Equal(t, 0, st.Selected)

	for i := 0; i < 10; i++ {
		st.MoveSelection(1)
	}
	assert.Equal(t, 2, st.Selected)

	tpl, ok := st.Current()
	require.True(t, ok)
	assert.Equal(t, "c", tpl.Label)
}

func TestStateCurrentEmpty(t *testing.T) {
	st := State{}
	st.MoveSelection(1)
	assert.Equal(t, 0, st.Selected)
	_, ok := st.Current()
	assert.False(t, ok)
}

// =============================================================================
// CONTROLLER TESTS
// =============================================================================

func TestOpenRequiresItems(t *testing.T) {
	f := newFixture(t, "/snippet")
	err := f.ctrl.Open(f.s, nil, surface.Point{}, "/snippet")
	assert.ErrorIs(t, err, ErrNoItems)
	assert.False(t, f.ctrl.IsOpen())
	assert.Equal(t, 0, f.layer.Len())
	assert.Equal(t, 0, f.bus.Listeners())
}

func TestGreetingScenario(t *testing.T) {
	f := newFixture(t, "Dear team, /snippet")
	items := []snippet.Template{{Label: "Greeting", Text: "Hello there!"}}

	require.NoError(t, f.ctrl.Open(f.s, items, surface.Point{X: 2, Y: 4}, "/snippet"))
	require.True(t, f.ctrl.IsOpen())
	assert.Equal(t, 0, f.ctrl.Current().Selected)

	el, ok := f.layer.Get(f.ctrl.Current().ElementID())
	require.True(t, ok)
	assert.Contains(t, ansi.Strip(el.View), "> Greeting")

	assert.True(t, f.key("enter"), "enter is consumed by the menu")
	assert.Equal(t, "Dear team, Hello there!", f.s.Content())
	assert.False(t, f.ctrl.IsOpen())
	assert.Equal(t, 0, f.layer.Len())
	assert.Equal(t, 0, f.bus.Listeners())
}

func TestKeyNavigationAndCommit(t *testing.T) {
	f := newFixture(t, "x /t ")
	require.NoError(t, f.ctrl.Open(f.s, templates("a", "b", "c"), surface.Point{}, "/t"))

	assert.True(t, f.key("down"))
	assert.True(t, f.key("down"))
	assert.True(t, f.key("down"))
	assert.Equal(t, 2, f.ctrl.Current().Selected)
	assert.True(t, f.key("up"))
	assert.Equal(t, 1, f.ctrl.Current().Selected)

	assert.False(t, f.key("a"), "other keys pass through")
	assert.True(t, f.ctrl.IsOpen())

	assert.True(t, f.key("enter"))
	assert.Equal(t, "x b text", f.s.Content())
}

func TestKeysFromTeaMessages(t *testing.T) {
	f := newFixture(t, "x /t")
	require.NoError(t, f.ctrl.Open(f.s, templates("a", "b"), surface.Point{}, "/t"))

	send := func(msg tea.KeyMsg) bool {
		return f.bus.KeyDown(host.NewKeyEvent(f.s.ID(), msg))
	}
	assert.True(t, send(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, 1, f.ctrl.Current().Selected)
	assert.False(t, send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}))
	assert.True(t, send(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "x b text", f.s.Content())

	require.NoError(t, f.ctrl.Open(f.s, templates("c"), surface.Point{}, "/t"))
	assert.True(t, send(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, f.ctrl.IsOpen())
}

func TestPlainCommitLeavesCaretAfterTemplate(t *testing.T) {
	f := newFixture(t, "Dear team, /snippet")
	f.input.CursorEnd()
	items := []snippet.Template{{Label: "Greeting", Text: "Hello there!"}}
	require.NoError(t, f.ctrl.Open(f.s, items, surface.Point{}, "/snippet"))

	require.True(t, f.ctrl.Commit(0))
	assert.Equal(t, "Dear team, Hello there!", f.s.Content())
	assert.Equal(t, len([]rune(f.s.Content())), f.s.CaretOffset())

	*f.input, _ = f.input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}})
	assert.Equal(t, "Dear team, Hello there!X", f.s.Content())
}

func TestEscapeDismisses(t *testing.T) {
	f := newFixture(t, "hi /t")
	closed := []Reason{}
	f.ctrl.OnClose(func(r Reason) { closed = append(closed, r) })
	require.NoError(t, f.ctrl.Open(f.s, templates("a"), surface.Point{}, "/t"))

	assert.True(t, f.key("esc"))
	assert.Equal(t, "hi /t", f.s.Content(), "dismiss never mutates content")
	assert.False(t, f.ctrl.IsOpen())
	assert.Equal(t, []Reason{ReasonDismiss}, closed)
	assert.Equal(t, 0, f.bus.Listeners())
}

func TestSingleInstance(t *testing.T) {
	f := newFixture(t, "/t")
	commits := 0
	f.ctrl.OnCommit(func(surface.Surface, snippet.Template) { commits++ })

	require.NoError(t, f.ctrl.Open(f.s, templates("first"), surface.Point{}, "/t"))
	first := f.ctrl.Current()
	require.NoError(t, f.ctrl.Open(f.s, templates("second"), surface.Point{Y: 1}, "/t"))

	assert.Equal(t, 1, f.layer.Len())
	assert.False(t, f.layer.Contains(first.ElementID()))
	assert.Equal(t, 2, f.bus.Listeners(), "one key and one click subscription")

	f.key("enter")
	assert.Equal(t, 1, commits, "a later keystroke is handled once")
	assert.Equal(t, "second text", f.s.Content())
}

func TestStaleElementIsImplicitDismiss(t *testing.T) {
	f := newFixture(t, "/t")
	closed := []Reason{}
	f.ctrl.OnClose(func(r Reason) { closed = append(closed, r) })
	require.NoError(t, f.ctrl.Open(f.s, templates("a", "b"), surface.Point{}, "/t"))

	f.layer.Clear()

	assert.False(t, f.key("down"), "a vanished menu consumes nothing")
	assert.False(t, f.ctrl.IsOpen())
	assert.Equal(t, []Reason{ReasonStale}, closed)
	assert.Equal(t, 0, f.bus.Listeners())
	assert.False(t, f.ctrl.Commit(0))
	f.ctrl.MoveSelection(1)
	f.ctrl.Dismiss()
	assert.Equal(t, "/t", f.s.Content())
}

func TestCloseIdempotent(t *testing.T) {
	f := newFixture(t, "/t")
	calls := 0
	f.ctrl.OnClose(func(Reason) { calls++ })
	require.NoError(t, f.ctrl.Open(f.s, templates("a"), surface.Point{}, "/t"))

	f.ctrl.Close()
	f.ctrl.Close()
	f.ctrl.Dismiss()

	assert.Equal(t, 1, calls)
	assert.Nil(t, f.ctrl.Current())
}

func TestCommitOutOfRange(t *testing.T) {
	f := newFixture(t, "/t")
	require.NoError(t, f.ctrl.Open(f.s, templates("a"), surface.Point{}, "/t"))
	assert.False(t, f.ctrl.Commit(5))
	assert.True(t, f.ctrl.IsOpen())
}

func TestClickOutsideDismisses(t *testing.T) {
	f := newFixture(t, "/t")
	require.NoError(t, f.ctrl.Open(f.s, templates("a"), surface.Point{X: 5, Y: 5}, "/t"))

	f.bus.Click(host.ClickEvent{At: surface.Point{X: 0, Y: 0}})
	assert.False(t, f.ctrl.IsOpen())
	assert.Equal(t, "/t", f.s.Content())
}

func TestClickInsideCommitsRow(t *testing.T) {
	f := newFixture(t, "note /t")
	require.NoError(t, f.ctrl.Open(f.s, templates("a", "b", "c"), surface.Point{X: 5, Y: 5}, "/t"))

	// Border row is 5, items start at row 6.
	f.bus.Click(host.ClickEvent{At: surface.Point{X: 8, Y: 7}})
	assert.False(t, f.ctrl.IsOpen())
	assert.Equal(t, "note b text", f.s.Content())
}

func TestClickOnBorderKeepsMenu(t *testing.T) {
	f := newFixture(t, "/t")
	require.NoError(t, f.ctrl.Open(f.s, templates("a"), surface.Point{X: 5, Y: 5}, "/t"))

	f.bus.Click(host.ClickEvent{At: surface.Point{X: 6, Y: 5}})
	assert.True(t, f.ctrl.IsOpen())
}

func TestRichCommitMovesCaretToEnd(t *testing.T) {
	area := textarea.New()
	area.SetWidth(40)
	area.SetHeight(4)
	area.SetValue("line one\n/t")
	s := surface.NewRich(&area, lipgloss.NewStyle())
	s.SetBounds(surface.Rect{Width: 44, Height: 6})

	bus := host.NewBus()
	ctrl := NewController(bus, host.NewLayer(), NewRenderer(styles.NewNamedTheme(styles.ThemeDark), Options{Width: 30}))
	require.NoError(t, ctrl.Open(s, []snippet.Template{{Label: "sig", Text: "Regards,\nSam"}}, surface.Point{}, "/t"))

	require.True(t, ctrl.Commit(0))
	assert.Equal(t, "line one\nRegards,\nSam", s.Content())
	assert.Equal(t, len([]rune(s.Content())), s.CaretOffset())
}

func TestRichCommitKeepsLongTemplate(t *testing.T) {
	area := textarea.New()
	area.SetWidth(40)
	area.SetHeight(4)
	area.SetValue("Dear team, /snippet")
	s := surface.NewRich(&area, lipgloss.NewStyle())
	s.SetBounds(surface.Rect{Width: 44, Height: 6})

	long := strings.Repeat("lorem ipsum ", 42)
	require.Greater(t, len([]rune(long)), 500)

	ctrl := NewController(host.NewBus(), host.NewLayer(), nil)
	require.NoError(t, ctrl.Open(s, []snippet.Template{{Label: "long", Text: long}}, surface.Point{}, "/snippet"))
	require.True(t, ctrl.Commit(0))
	assert.Equal(t, "Dear team, "+long, s.Content())
}

// =============================================================================
// RENDERER TESTS
// =============================================================================

func TestRendererWindow(t *testing.T) {
	r := NewRenderer(styles.NewNamedTheme(styles.ThemeDark), Options{Width: 30, MaxVisible: 3})
	st := State{Items: templates("a", "b", "c", "d", "e", "f")}

	tests := []struct {
		selected   int
		start, end int
	}{
		{0, 0, 3},
		{1, 0, 3},
		{3, 2, 5},
		{5, 3, 6},
	}
	for _, tt := range tests {
		st.Selected = tt.selected
		start, end := r.window(st)
		assert.Equal(t, tt.start, start, "start for selected %d", tt.selected)
		assert.Equal(t, tt.end, end, "end for selected %d", tt.selected)
	}

	st.Selected = 5
	idx, ok := r.ItemAt(st, surface.Point{X: 2, Y: 1})
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	_, ok = r.ItemAt(st, surface.Point{X: 2, Y: 4})
	assert.False(t, ok)
}

func TestRendererWidth(t *testing.T) {
	r := NewRenderer(styles.NewNamedTheme(styles.ThemeDark), Options{Width: 30, MaxVisible: 5})
	st := State{Items: []snippet.Template{{
		Label: "a label far too long to fit in the column",
		Text:  strings.Repeat("wide text ", 10),
	}}}

	view := r.Render(st)
	assert.Equal(t, 30, lipgloss.Width(view))
	assert.Equal(t, 3, lipgloss.Height(view))
	assert.Equal(t, "", r.Render(State{}))
}

func TestRendererPreview(t *testing.T) {
	r := NewRenderer(styles.NewNamedTheme(styles.ThemeDark), Options{Width: 40, Preview: true})
	st := State{Items: []snippet.Template{{Label: "sig", Text: "Regards\n\nsecond paragraph"}}}

	plain := ansi.Strip(r.Render(st))
	assert.Contains(t, plain, "second paragraph")
	assert.Contains(t, plain, strings.Repeat("-", 10))
}

func TestKeyMapIsNavigation(t *testing.T) {
	km := DefaultKeyMap()
	for _, k := range []string{"up", "down", "enter", "esc"} {
		assert.True(t, km.IsNavigation(k), k)
	}
	for _, k := range []string{"a", "/", "backspace", "tab"} {
		assert.False(t, km.IsNavigation(k), k)
	}
}

func TestKeyMapDisabledBinding(t *testing.T) {
	km := DefaultKeyMap()
	km.Commit.SetEnabled(false)
	assert.False(t, km.IsNavigation("enter"))
}
