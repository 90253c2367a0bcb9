// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/slashdrop/internal/surface"
)

// AnyTarget subscribes to key events from every surface.
const AnyTarget = ""

// KeyEvent is a key press aimed at a surface.
type KeyEvent struct {
	// Target is the ID of the focused surface.
	Target string
	// Key is the bubbletea key name ("down", "enter", "a", "ctrl+k", ...).
	Key string
}

// NewKeyEvent converts a bubbletea key message aimed at target.
func NewKeyEvent(target string, msg tea.KeyMsg) KeyEvent {
	return KeyEvent{Target: target, Key: msg.String()}
}

// ClickEvent is a pointer press anywhere on the screen.
type ClickEvent struct {
	At surface.Point
}

// KeyHandler handles a key event. Returning true consumes the event so the
// surface never sees it.
type KeyHandler func(KeyEvent) bool

// ClickHandler handles a click.
type ClickHandler func(ClickEvent)

// Unsubscribe releases a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

type subscription struct {
	id     uint64
	target string
	key    KeyHandler
	click  ClickHandler
}

type phase int

const (
	phaseKeyDown phase = iota
	phaseKeyUp
	phaseClick
)

// =============================================================================
// BUS
// =============================================================================

// Bus dispatches key and click events to subscribers in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[phase]map[uint64]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: map[phase]map[uint64]subscription{
		phaseKeyDown: {},
		phaseKeyUp:   {},
		phaseClick:   {},
	}}
}

// OnKeyDown subscribes to key presses before the surface handles them.
func (b *Bus) OnKeyDown(target string, fn KeyHandler) Unsubscribe {
	return b.add(phaseKeyDown, subscription{target: target, key: fn})
}

// OnKeyUp subscribes to key presses after the surface has handled them.
func (b *Bus) OnKeyUp(target string, fn KeyHandler) Unsubscribe {
	return b.add(phaseKeyUp, subscription{target: target, key: fn})
}

// OnClick subscribes to clicks anywhere on the screen.
func (b *Bus) OnClick(fn ClickHandler) Unsubscribe {
	return b.add(phaseClick, subscription{click: fn})
}

// KeyDown dispatches ev and reports whether any handler consumed it.
func (b *Bus) KeyDown(ev KeyEvent) bool {
	consumed := false
	for _, sub := range b.snapshot(phaseKeyDown) {
		if !b.matches(phaseKeyDown, sub, ev.Target) {
			continue
		}
		if sub.key(ev) {
			consumed = true
		}
	}
	return consumed
}

// KeyUp dispatches ev to key-up subscribers.
func (b *Bus) KeyUp(ev KeyEvent) {
	for _, sub := range b.snapshot(phaseKeyUp) {
		if !b.matches(phaseKeyUp, sub, ev.Target) {
			continue
		}
		sub.key(ev)
	}
}

// Click dispatches ev to click subscribers.
func (b *Bus) Click(ev ClickEvent) {
	for _, sub := range b.snapshot(phaseClick) {
		if !b.matches(phaseClick, sub, AnyTarget) {
			continue
		}
		sub.click(ev)
	}
}

// Listeners returns the number of live subscriptions.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}

func (b *Bus) add(p phase, sub subscription) Unsubscribe {
	b.mu.Lock()
	b.nextID++
	sub.id = b.nextID
	b.subs[p][sub.id] = sub
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[p], sub.id)
			b.mu.Unlock()
		})
	}
}

// snapshot copies the subscriptions for p in subscription order so handlers
// can (un)subscribe during dispatch.
func (b *Bus) snapshot(p phase) []subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]subscription, 0, len(b.subs[p]))
	for _, sub := range b.subs[p] {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// matches reports whether sub is still live and wants events for target.
func (b *Bus) matches(p phase, sub subscription, target string) bool {
	b.mu.Lock()
	_, live := b.subs[p][sub.id]
	b.mu.Unlock()
	if !live {
		return false
	}
	return sub.target == AnyTarget || sub.target == target
}
