package season

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu          sync.Mutex
	transitions []Transition
}

func (r *recorder) SeasonChanged(t Transition) {
	r.mu.Lock()
	r.transitions = append(r.transitions, t)
	r.mu.Unlock()
}

func (r *recorder) all() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Transition(nil), r.transitions...)
}

func calendarFor(seasons ...Season) (*FixedCalendar, []Month) {
	first := map[Season]Month{Winter: MorningStar, Spring: FirstSeed, Summer: Midyear, Autumn: Hearthfire}
	months := make([]Month, len(seasons))
	for i, s := range seasons {
		months[i] = first[s]
	}
	return NewFixedCalendar(months[0]), months
}

func TestTrackerTransitionSequence(t *testing.T) {
	seq := []Season{Winter, Winter, Spring, Spring, Autumn}
	cal, months := calendarFor(seq...)
	rec := &recorder{}
	tr := NewTracker(Calendar, DefaultCalendarMap(), cal, rec)

	var changedAt []int
	for i, m := range months {
		cal.Set(m)
		if tr.Update() {
			changedAt = append(changedAt, i)
		}
	}

	assert.Equal(t, []int{2, 4}, changedAt)
	require.Len(t, rec.all(), 2)
	assert.Equal(t, Transition{Previous: Winter, Current: Spring}, rec.all()[0])
	assert.Equal(t, Transition{Previous: Spring, Current: Autumn}, rec.all()[1])
}

func TestTrackerLoadedFromSaveReportsOnce(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(PinnedWinter, DefaultCalendarMap(), nil, rec)

	assert.False(t, tr.Update(), "baseline")
	tr.Restore(Winter, None)
	assert.True(t, tr.Snapshot().LoadedFromSave)

	assert.True(t, tr.Update(), "first update after load must report")
	assert.False(t, tr.Update(), "flag is one-shot")

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, Winter, got[0].Previous)
	assert.Equal(t, Winter, got[0].Current)
	assert.False(t, got[0].OverrideDriven)
}

func TestTrackerRestoreAppliesOverride(t *testing.T) {
	rec := &recorder{}
	cal := NewFixedCalendar(MorningStar)
	tr := NewTracker(Calendar, DefaultCalendarMap(), cal, rec)
	tr.SetExterior(true)
	require.False(t, tr.Update())

	tr.Restore(Winter, Summer)
	assert.Equal(t, Summer, tr.CurrentForGameplay(), "a restored override wins before the next update")

	assert.True(t, tr.Update())
	assert.Equal(t, Summer, tr.CurrentForGameplay())
	assert.False(t, tr.Update(), "override stays in force without another transition")

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, Transition{Previous: Winter, Current: Summer, OverrideDriven: true}, got[0])
}

func TestTrackerGameplayReportsLazyTransition(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(PinnedAutumn, DefaultCalendarMap(), nil, rec)
	tr.SetExterior(true)

	s, changed := tr.Gameplay()
	assert.Equal(t, Autumn, s)
	assert.False(t, changed, "baseline")

	tr.Restore(None, None)
	s, changed = tr.Gameplay()
	assert.Equal(t, Autumn, s, "an empty restored season is resolved again")
	assert.True(t, changed, "the load is consumed by the lazy computation")
	assert.Len(t, rec.all(), 1)

	_, changed = tr.Gameplay()
	assert.False(t, changed)
}

func TestTrackerOverrideDriven(t *testing.T) {
	rec := &recorder{}
	cal := NewFixedCalendar(Midyear)
	tr := NewTracker(Calendar, DefaultCalendarMap(), cal, rec)
	require.False(t, tr.Update())

	tr.SetOverride(Winter)
	assert.True(t, tr.Update())

	// Calendar moves while the override holds: the effective season does not change.
	cal.Set(Hearthfire)
	assert.False(t, tr.Update())

	tr.ClearOverride()
	assert.True(t, tr.Update())

	got := rec.all()
	require.Len(t, got, 2)
	assert.Equal(t, Transition{Previous: Summer, Current: Winter, OverrideDriven: true}, got[0])
	assert.Equal(t, Transition{Previous: Winter, Current: Autumn, OverrideDriven: true}, got[1])
}

func TestTrackerOverrideChangeToSameSeason(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(PinnedWinter, DefaultCalendarMap(), nil, rec)
	require.False(t, tr.Update())

	tr.SetOverride(Winter)
	assert.True(t, tr.Update(), "override change is reported even when the effective season matches")
	require.Len(t, rec.all(), 1)
	assert.True(t, rec.all()[0].OverrideDriven)
}

func TestTrackerCurrentForGameplay(t *testing.T) {
	tr := NewTracker(PinnedAutumn, DefaultCalendarMap(), nil, nil)

	assert.Equal(t, None, tr.CurrentForGameplay(), "interiors never swap")

	tr.SetExterior(true)
	assert.Equal(t, Autumn, tr.CurrentForGameplay(), "lazily computed")

	tr.SetOverride(Spring)
	tr.SetExterior(false)
	assert.Equal(t, None, tr.CurrentForGameplay())
	assert.Equal(t, Spring, tr.Resolve(false), "override still resolves in interiors")

	tr.SetExterior(true)
	tr.Update()
	assert.Equal(t, Spring, tr.CurrentForGameplay())
}

func TestTrackerDisabled(t *testing.T) {
	tr := NewTracker(Disabled, DefaultCalendarMap(), nil, nil)
	tr.SetExterior(true)
	assert.Equal(t, None, tr.CurrentForGameplay())
	assert.False(t, tr.Update())
}

func TestTrackerConcurrentAccess(t *testing.T) {
	cal := NewFixedCalendar(MorningStar)
	tr := NewTracker(Calendar, DefaultCalendarMap(), cal, &recorder{})
	tr.SetExterior(true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if i%2 == 0 {
					tr.Update()
				} else {
					s := tr.CurrentForGameplay()
					assert.True(t, s == Winter || s == Summer)
				}
			}
		}(i)
	}
	cal.Set(Midyear)
	wg.Wait()
}

func TestRecordParse(t *testing.T) {
	tests := []struct {
		in       string
		expected Record
		ok       bool
	}{
		{in: "1", expected: Record{Current: Winter}, ok: true},
		{in: "2|4", expected: Record{Current: Spring, Override: Autumn}, ok: true},
		{in: " 4 | 1 ", expected: Record{Current: Autumn, Override: Winter}, ok: true},
		{in: "", expected: Record{Current: Summer}, ok: false},
		{in: "banana", expected: Record{Current: Summer}, ok: false},
		{in: "9", expected: Record{Current: Summer}, ok: false},
		{in: "1|x", expected: Record{Current: Winter}, ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseRecord(tt.in)
		assert.Equal(t, tt.expected, got, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}

	assert.Equal(t, "3", Record{Current: Summer}.String())
	assert.Equal(t, "1|2", Record{Current: Winter, Override: Spring}.String())
}
