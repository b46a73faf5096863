package season

import "sync"

// Transition describes a detected change of the effective season.
type Transition struct {
	Previous Season `json:"previous"`
	Current  Season `json:"current"`
	// OverrideDriven is set when the override changed since the previous update. Such a change
	// does not imply a calendar boundary was crossed.
	OverrideDriven bool `json:"override_driven"`
}

// Notifier receives transitions. Implementations must not block.
type Notifier interface {
	SeasonChanged(Transition)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Transition)

func (f NotifierFunc) SeasonChanged(t Transition) { f(t) }

// State is a point-in-time copy of the tracker.
type State struct {
	Type           Type   `json:"type"`
	Current        Season `json:"current"`
	Last           Season `json:"last"`
	Override       Season `json:"override"`
	Exterior       bool   `json:"exterior"`
	LoadedFromSave bool   `json:"loaded_from_save"`
}

// Tracker memoizes the current and previous season and reports transitions.
type Tracker struct {
	mu       sync.Mutex
	resolver *Resolver
	notifier Notifier

	current      Season
	last         Season
	override     Season
	lastOverride Season
	preLoad      Season

	loadedFromSave bool
	computed       bool
	exterior       bool
}

// NewTracker builds a tracker and its resolver. notifier may be nil.
func NewTracker(t Type, months CalendarMap, calendar Clock, notifier Notifier) *Tracker {
	tr := &Tracker{notifier: notifier}
	// Resolve is only ever called with mu held, so the override is read directly.
	tr.resolver = NewResolver(t, months, calendar, func() Season { return tr.override })
	return tr
}

// Type returns the configured season type.
func (t *Tracker) Type() Type {
	return t.resolver.Type()
}

// Resolve runs the resolver without touching memoized state.
func (t *Tracker) Resolve(ignoreOverride bool) Season {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolver.Resolve(ignoreOverride)
}

// Update recomputes the season and reports whether a transition occurred. On a transition the
// notifier is called once, after the lock is released.
func (t *Tracker) Update() bool {
	t.mu.Lock()
	tr, changed := t.updateLocked()
	n := t.notifier
	t.mu.Unlock()

	if changed && n != nil {
		n.SeasonChanged(tr)
	}
	return changed
}

func (t *Tracker) updateLocked() (Transition, bool) {
	t.last = t.current
	overrideChanged := t.override != t.lastOverride
	t.lastOverride = t.override

	if t.loadedFromSave {
		t.loadedFromSave = false
		t.computed = true
		if t.override != None {
			t.current = t.override
		}
		if t.current == None {
			t.current = t.resolver.Resolve(false)
		}
		return Transition{Previous: t.preLoad, Current: t.current, OverrideDriven: overrideChanged}, true
	}

	// The first computation establishes a baseline; nothing was cached under an earlier season.
	baseline := !t.computed
	t.computed = true
	t.current = t.resolver.Resolve(false)

	if baseline {
		return Transition{}, false
	}

	tr := Transition{Previous: t.last, Current: t.current, OverrideDriven: overrideChanged}
	return tr, t.current != t.last || overrideChanged
}

// CurrentForGameplay returns the season that visible swaps should use. Interiors never swap.
func (t *Tracker) CurrentForGameplay() Season {
	s, _ := t.Gameplay()
	return s
}

// Gameplay is CurrentForGameplay that also reports whether the lazy computation it may run
// detected a transition.
func (t *Tracker) Gameplay() (Season, bool) {
	t.mu.Lock()
	if !t.exterior {
		t.mu.Unlock()
		return None, false
	}

	var (
		tr      Transition
		changed bool
	)
	if t.current == None {
		tr, changed = t.updateLocked()
	}
	s := t.current
	n := t.notifier
	t.mu.Unlock()

	if changed && n != nil {
		n.SeasonChanged(tr)
	}
	return s, changed
}

// SetExterior records whether the observer is outdoors.
func (t *Tracker) SetExterior(exterior bool) {
	t.mu.Lock()
	t.exterior = exterior
	t.mu.Unlock()
}

// Exterior reports the last value given to SetExterior.
func (t *Tracker) Exterior() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exterior
}

// SetOverride pins the season. Passing None clears the override. The change is picked up by
// the next Update.
func (t *Tracker) SetOverride(s Season) {
	if s != None && !s.Valid() {
		s = None
	}
	t.mu.Lock()
	t.override = s
	t.mu.Unlock()
}

// ClearOverride removes any override.
func (t *Tracker) ClearOverride() {
	t.SetOverride(None)
}

// Override returns the current override, None when unset.
func (t *Tracker) Override() Season {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.override
}

// Restore applies season state read from a save. A restored override takes effect at once.
// The next Update reports a transition even if the season is unchanged so downstream caches
// are invalidated.
func (t *Tracker) Restore(current, override Season) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.preLoad = t.current
	if override != None && !override.Valid() {
		override = None
	}
	t.override = override
	t.current = current
	if override != None {
		t.current = override
	}
	t.loadedFromSave = true
}

// Snapshot copies the tracker state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{
		Type:           t.resolver.Type(),
		Current:        t.current,
		Last:           t.last,
		Override:       t.override,
		Exterior:       t.exterior,
		LoadedFromSave: t.loadedFromSave,
	}
}
