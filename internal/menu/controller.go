// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"errors"
	"log"

	"github.com/jeranaias/slashdrop/internal/host"
	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/trigger"
)

// ErrNoItems is returned by Open when there is nothing to show.
var ErrNoItems = errors.New("menu has no items")

// Reason says why a menu closed.
type Reason int

const (
	// ReasonClosed is an explicit Close by the owner.
	ReasonClosed Reason = iota
	// ReasonCommit follows inserting a template.
	ReasonCommit
	// ReasonDismiss follows escape or a click outside the menu.
	ReasonDismiss
	// ReasonReplaced means a newer menu took this one's place.
	ReasonReplaced
	// ReasonStale means the menu element vanished from the overlay layer.
	ReasonStale
)

// String returns the reason name for logs.
func (r Reason) String() string {
	switch r {
	case ReasonCommit:
		return "commit"
	case ReasonDismiss:
		return "dismiss"
	case ReasonReplaced:
		return "replaced"
	case ReasonStale:
		return "stale"
	default:
		return "closed"
	}
}

// Instance is one open menu and the subscriptions it holds.
type Instance struct {
	State

	elementID string
	surface   surface.Surface
	offKey    host.Unsubscribe
	offClick  host.Unsubscribe
}

// ElementID returns the overlay element backing this menu.
func (i *Instance) ElementID() string {
	return i.elementID
}

// Surface returns the surface the menu inserts into.
func (i *Instance) Surface() surface.Surface {
	return i.surface
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the menu. Every transition goes through it and Close is
// the single teardown path.
type Controller struct {
	bus      *host.Bus
	layer    *host.Layer
	renderer *Renderer
	keys     KeyMap

	current  *Instance
	onCommit func(surface.Surface, snippet.Template)
	onClose  func(Reason)
}

// NewController creates a controller drawing into layer and listening on bus.
func NewController(bus *host.Bus, layer *host.Layer, renderer *Renderer) *Controller {
	if renderer == nil {
		renderer = NewRenderer(nil, DefaultOptions())
	}
	return &Controller{
		bus:      bus,
		layer:    layer,
		renderer: renderer,
		keys:     DefaultKeyMap(),
	}
}

// KeyMap returns the keys the menu consumes while open.
func (c *Controller) KeyMap() KeyMap {
	return c.keys
}

// OnCommit registers a hook called after a template is inserted.
func (c *Controller) OnCommit(fn func(surface.Surface, snippet.Template)) {
	c.onCommit = fn
}

// OnClose registers a hook called whenever a menu closes.
func (c *Controller) OnClose(fn func(Reason)) {
	c.onClose = fn
}

// Open shows items below anchor for s. Any open menu is closed first.
func (c *Controller) Open(s surface.Surface, items []snippet.Template, anchor surface.Point, trig string) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	c.close(ReasonReplaced)

	inst := &Instance{
		State: State{
			Items:   append([]snippet.Template(nil), items...),
			Anchor:  anchor,
			Trigger: trig,
		},
		surface: s,
	}
	view := c.renderer.Render(inst.State)
	inst.elementID = c.layer.Add(view, c.renderer.Rect(inst.State, view))
	inst.offKey = c.bus.OnKeyDown(s.ID(), func(ev host.KeyEvent) bool {
		return c.handleKey(inst, ev)
	})
	inst.offClick = c.bus.OnClick(func(ev host.ClickEvent) {
		c.handleClick(inst, ev)
	})
	c.current = inst

	log.Printf("MENU: opened %d item(s) for %q at %d,%d", len(items), trig, anchor.X, anchor.Y)
	return nil
}

// Current returns the open menu, or nil.
func (c *Controller) Current() *Instance {
	return c.current
}

// IsOpen reports whether a menu is open. A menu whose element was removed
// externally is closed as a side effect.
func (c *Controller) IsOpen() bool {
	return c.live() != nil
}

// MoveSelection moves the selection by delta, clamped to the item range.
func (c *Controller) MoveSelection(delta int) {
	inst := c.live()
	if inst == nil {
		return
	}
	inst.MoveSelection(delta)
	view := c.renderer.Render(inst.State)
	c.layer.Update(inst.elementID, view, c.renderer.Rect(inst.State, view))
}

// Commit inserts the template at index in place of the trigger and closes
// the menu. It reports whether anything was inserted.
func (c *Controller) Commit(index int) bool {
	inst := c.live()
	if inst == nil {
		return false
	}
	if index < 0 || index >= len(inst.Items) {
		return false
	}
	tpl := inst.Items[index]
	s := inst.surface

	s.SetContent(trigger.Replace(s.Content(), inst.Trigger, tpl.Text))
	s.Focus()
	s.SetCaretToEnd()

	c.close(ReasonCommit)
	log.Printf("MENU: inserted %q", tpl.Label)
	if c.onCommit != nil {
		c.onCommit(s, tpl)
	}
	return true
}

// Dismiss closes the menu without touching the surface.
func (c *Controller) Dismiss() {
	c.close(ReasonDismiss)
}

// Close tears down the open menu, if any. It is safe to call repeatedly.
func (c *Controller) Close() {
	c.close(ReasonClosed)
}

func (c *Controller) close(reason Reason) {
	inst := c.current
	if inst == nil {
		return
	}
	c.current = nil
	inst.offKey()
	inst.offClick()
	c.layer.Remove(inst.elementID)

	if reason != ReasonReplaced && reason != ReasonCommit {
		log.Printf("MENU: closed (%s)", reason)
	}
	if c.onClose != nil {
		c.onClose(reason)
	}
}

// live returns the open instance, closing it first if its element is gone.
func (c *Controller) live() *Instance {
	inst := c.current
	if inst == nil {
		return nil
	}
	if !c.layer.Contains(inst.elementID) {
		c.close(ReasonStale)
		return nil
	}
	return inst
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

func (c *Controller) handleKey(inst *Instance, ev host.KeyEvent) bool {
	if c.live() != inst {
		return false
	}
	switch {
	case matches(ev.Key, c.keys.Down):
		c.MoveSelection(1)
	case matches(ev.Key, c.keys.Up):
		c.MoveSelection(-1)
	case matches(ev.Key, c.keys.Commit):
		c.Commit(inst.Selected)
	case matches(ev.Key, c.keys.Dismiss):
		c.Dismiss()
	default:
		return false
	}
	return true
}

func (c *Controller) handleClick(inst *Instance, ev host.ClickEvent) {
	if c.live() != inst {
		return
	}
	el, ok := c.layer.Get(inst.elementID)
	if !ok {
		return
	}
	if !el.Rect.Contains(ev.At) {
		c.Dismiss()
		return
	}
	rel := surface.Point{X: ev.At.X - el.Rect.X, Y: ev.At.Y - el.Rect.Y}
	if index, ok := c.renderer.ItemAt(inst.State, rel); ok {
		c.Commit(index)
	}
}
