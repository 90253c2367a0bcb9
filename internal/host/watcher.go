// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"sort"
	"sync"

	"github.com/jeranaias/slashdrop/internal/surface"
)

// SurfaceFunc receives surfaces as they appear.
type SurfaceFunc func(surface.Surface)

// Watcher notifies subscribers whenever the host reports an editable
// surface. The host calls Announce after every structural change; it may do
// so as often as it likes, including repeatedly for the same surface.
// Subscribers are responsible for their own idempotence.
type Watcher struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]SurfaceFunc
}

// NewWatcher creates a watcher with no subscribers.
func NewWatcher() *Watcher {
	return &Watcher{subs: make(map[uint64]SurfaceFunc)}
}

// Subscribe registers fn for future announcements.
func (w *Watcher) Subscribe(fn SurfaceFunc) Unsubscribe {
	w.mu.Lock()
	w.nextID++
	id := w.nextID
	w.subs[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

// Announce reports that s is present on screen. A nil surface is ignored.
func (w *Watcher) Announce(s surface.Surface) {
	if s == nil {
		return
	}
	w.mu.Lock()
	ids := make([]uint64, 0, len(w.subs))
	for id := range w.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]SurfaceFunc, len(ids))
	for i, id := range ids {
		fns[i] = w.subs[id]
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
