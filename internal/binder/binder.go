// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package binder

import (
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/slashdrop/internal/caret"
	"github.com/jeranaias/slashdrop/internal/host"
	"github.com/jeranaias/slashdrop/internal/menu"
	"github.com/jeranaias/slashdrop/internal/security/access"
	"github.com/jeranaias/slashdrop/internal/snippet"
	"github.com/jeranaias/slashdrop/internal/surface"
	"github.com/jeranaias/slashdrop/internal/trigger"
)

// HookedAttr marks a surface that already carries the binder's listener.
const HookedAttr = "data-slashdrop-hooked"

// diagnosticEvery bounds how often configuration problems are logged.
const diagnosticEvery = time.Minute

// =============================================================================
// OUTCOME
// =============================================================================

// Decision is the result of one pipeline run.
type Decision int

const (
	// DecisionNoMatch means no configured trigger ends the content.
	DecisionNoMatch Decision = iota
	// DecisionDeniedGlobal means the user is outside the feature allow-list.
	DecisionDeniedGlobal
	// DecisionDeniedCommand means the matched command's allow-list excludes the user.
	DecisionDeniedCommand
	// DecisionEmpty means none of the matched command's templates can be
	// inserted into the surface unchanged.
	DecisionEmpty
	// DecisionOpen means the menu should open.
	DecisionOpen
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionDeniedGlobal:
		return "denied-global"
	case DecisionDeniedCommand:
		return "denied-command"
	case DecisionEmpty:
		return "empty"
	case DecisionOpen:
		return "open"
	default:
		return "no-match"
	}
}

// Outcome explains a pipeline run.
type Outcome struct {
	Decision Decision
	Trigger  string
	Command  snippet.Command
	// Templates are the command's templates the surface can hold, in
	// configuration order. Only set for DecisionOpen.
	Templates []snippet.Template
	// Skipped counts templates left out because the surface would alter them.
	Skipped int
	// Anchor is where the menu opens. Only set for DecisionOpen.
	Anchor surface.Point
	// ConfigErr reports what was wrong with the template setting, if anything.
	ConfigErr error
	// GeometryErr is set when the caret could not be located and Anchor fell
	// back to the surface origin.
	GeometryErr error
}

// =============================================================================
// BINDER
// =============================================================================

// Deps are the collaborators a Binder drives.
type Deps struct {
	Bus  *host.Bus
	Menu *menu.Controller
	// Watcher, when set, hooks every surface it announces.
	Watcher *host.Watcher
	// Templates supplies the raw template setting; read on every key.
	Templates snippet.Source
	// AllowedGroups supplies the raw global allow-list; read on every key.
	AllowedGroups snippet.Source
	// Membership yields the user's groups. Nil means no groups.
	Membership *access.Membership
}

// Binder attaches to surfaces and opens the menu when a trigger is typed.
type Binder struct {
	deps Deps
	keys menu.KeyMap
	diag *rate.Limiter

	mu       sync.Mutex
	hooks    map[string]host.Unsubscribe
	offWatch host.Unsubscribe
}

// New creates a binder. If d.Watcher is set, announced surfaces are
// attached automatically.
func New(d Deps) *Binder {
	if d.Membership == nil {
		d.Membership = access.NewMembership(nil)
	}
	b := &Binder{
		deps:  d,
		keys:  menu.DefaultKeyMap(),
		diag:  rate.NewLimiter(rate.Every(diagnosticEvery), 1),
		hooks: make(map[string]host.Unsubscribe),
	}
	if d.Watcher != nil {
		b.offWatch = d.Watcher.Subscribe(func(s surface.Surface) { b.Attach(s) })
	}
	return b
}

// Attach hooks s. It returns false when s was already hooked.
func (b *Binder) Attach(s surface.Surface) bool {
	if _, hooked := s.Attr(HookedAttr); hooked {
		return false
	}
	s.SetAttr(HookedAttr, "true")

	off := b.deps.Bus.OnKeyUp(s.ID(), func(ev host.KeyEvent) bool {
		b.handleKey(s, ev)
		return false
	})

	b.mu.Lock()
	b.hooks[s.ID()] = off
	b.mu.Unlock()

	log.Printf("BINDER: hooked %s surface %s", s.Shape(), s.ID())
	return true
}

// Detach releases the listener for a surface, closing its menu if one is
// open. The surface can be attached again afterwards.
func (b *Binder) Detach(s surface.Surface) {
	b.mu.Lock()
	off, ok := b.hooks[s.ID()]
	delete(b.hooks, s.ID())
	b.mu.Unlock()
	if !ok {
		return
	}
	off()
	s.RemoveAttr(HookedAttr)

	if inst := b.deps.Menu.Current(); inst != nil && inst.Surface() == s {
		b.deps.Menu.Close()
	}
	log.Printf("BINDER: released surface %s", s.ID())
}

// Hooked returns the number of attached surfaces.
func (b *Binder) Hooked() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.hooks)
}

// Close releases every subscription the binder holds and closes the menu.
func (b *Binder) Close() {
	b.mu.Lock()
	hooks := b.hooks
	b.hooks = make(map[string]host.Unsubscribe)
	offWatch := b.offWatch
	b.offWatch = nil
	b.mu.Unlock()

	for _, off := range hooks {
		off()
	}
	if offWatch != nil {
		offWatch()
	}
	b.deps.Menu.Close()
}

// Evaluate runs the pipeline against s without opening anything.
func (b *Binder) Evaluate(s surface.Surface) Outcome {
	snap, err := snippet.LoadSnapshotStrict(b.deps.Templates, raw(b.deps.AllowedGroups))
	out := Outcome{}
	if err != nil && !errors.Is(err, snippet.ErrEmpty) {
		out.ConfigErr = err
	}

	res, ok := trigger.Match(s.Content(), snap.Triggers())
	if !ok {
		return out
	}
	cmd, _ := snap.Command(res.Trigger)
	out.Trigger = res.Trigger
	out.Command = cmd

	user := b.deps.Membership.Groups()
	if !access.IsGloballyAllowed(user, snap.AllowedGroups) {
		out.Decision = DecisionDeniedGlobal
		return out
	}
	if !access.IsCommandAllowed(user, cmd) {
		out.Decision = DecisionDeniedCommand
		return out
	}
	items := holdable(s.Shape(), cmd.Templates)
	out.Skipped = len(cmd.Templates) - len(items)
	if len(items) == 0 {
		out.Decision = DecisionEmpty
		return out
	}
	out.Templates = items

	out.Anchor, out.GeometryErr = caret.Anchor(s)
	out.Decision = DecisionOpen
	return out
}

func (b *Binder) handleKey(s surface.Surface, ev host.KeyEvent) {
	if b.keys.IsNavigation(ev.Key) {
		return
	}

	out := b.Evaluate(s)
	if out.ConfigErr != nil {
		b.diagnose("template configuration: %v", out.ConfigErr)
	}
	if out.GeometryErr != nil {
		b.diagnose("caret geometry, using surface origin: %v", out.GeometryErr)
	}
	if out.Skipped > 0 {
		b.diagnose("%d template(s) for %q would be altered by a %s surface, not offered",
			out.Skipped, out.Trigger, s.Shape())
	}

	switch out.Decision {
	case DecisionOpen:
		if err := b.deps.Menu.Open(s, out.Templates, out.Anchor, out.Trigger); err != nil {
			log.Printf("BINDER: open menu for %q: %v", out.Trigger, err)
		}
	case DecisionDeniedGlobal, DecisionDeniedCommand:
		log.Printf("BINDER: %q not available to this user (%s)", out.Trigger, out.Decision)
	}
}

// diagnose logs at most once per diagnosticEvery so a broken setting cannot
// flood the log on every keystroke.
func (b *Binder) diagnose(format string, args ...any) {
	if b.diag.Allow() {
		log.Printf("BINDER: "+format, args...)
	}
}

// holdable returns the templates a surface of shape sh stores verbatim.
func holdable(sh surface.Shape, templates []snippet.Template) []snippet.Template {
	out := make([]snippet.Template, 0, len(templates))
	for _, tpl := range templates {
		if sh.Holds(tpl.Text) {
			out = append(out, tpl)
		}
	}
	return out
}

func raw(src snippet.Source) string {
	if src == nil {
		return ""
	}
	return src.Raw()
}
