// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/slashdrop/internal/surface"
)

// Element is an overlay drawn above the host screen.
type Element struct {
	ID   string
	View string
	Rect surface.Rect
}

// =============================================================================
// LAYER
// =============================================================================

// Layer holds the overlay elements. The host may clear it at any time (for
// example when it re-lays out the screen); element owners must check
// Contains before touching their element.
type Layer struct {
	mu    sync.RWMutex
	elems map[string]Element
	order []string
}

// NewLayer creates an empty layer.
func NewLayer() *Layer {
	return &Layer{elems: make(map[string]Element)}
}

// Add inserts an element on top and returns its id.
func (l *Layer) Add(view string, rect surface.Rect) string {
	id := uuid.NewString()
	l.mu.Lock()
	l.elems[id] = Element{ID: id, View: view, Rect: rect}
	l.order = append(l.order, id)
	l.mu.Unlock()
	return id
}

// Update replaces an element's view and rect. It returns false if the
// element no longer exists.
func (l *Layer) Update(id, view string, rect surface.Rect) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.elems[id]; !ok {
		return false
	}
	l.elems[id] = Element{ID: id, View: view, Rect: rect}
	return true
}

// Remove deletes an element. It returns false if it was already gone.
func (l *Layer) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.elems[id]; !ok {
		return false
	}
	delete(l.elems, id)
	for i, other := range l.order {
		if other == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether the element is still present.
func (l *Layer) Contains(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.elems[id]
	return ok
}

// Get returns a copy of the element.
func (l *Layer) Get(id string) (Element, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.elems[id]
	return e, ok
}

// Elements returns the elements bottom to top.
func (l *Layer) Elements() []Element {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Element, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.elems[id])
	}
	return out
}

// Len returns the number of elements.
func (l *Layer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.elems)
}

// Clear removes every element.
func (l *Layer) Clear() {
	l.mu.Lock()
	l.elems = make(map[string]Element)
	l.order = nil
	l.mu.Unlock()
}
