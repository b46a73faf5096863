package season

// Resolver computes the season from configuration, the override and the calendar. It holds no
// mutable state of its own; the override is read through a function so the owner decides how it
// is stored and locked.
type Resolver struct {
	seasonType Type
	months     CalendarMap
	calendar   Clock
	override   func() Season
}

// NewResolver builds a resolver. calendar may be nil, which behaves like an unavailable clock.
func NewResolver(t Type, months CalendarMap, calendar Clock, override func() Season) *Resolver {
	if override == nil {
		override = func() Season { return None }
	}
	return &Resolver{
		seasonType: t,
		months:     months,
		calendar:   calendar,
		override:   override,
	}
}

// Type returns the configured season type.
func (r *Resolver) Type() Type {
	return r.seasonType
}

// Months returns the calendar mapping in use.
func (r *Resolver) Months() CalendarMap {
	return r.months
}

// Resolve returns the season that applies right now. A set override wins unless ignoreOverride
// is true; exterior context is not considered here.
func (r *Resolver) Resolve(ignoreOverride bool) Season {
	if !ignoreOverride {
		if o := r.override(); o.Valid() {
			return o
		}
	}

	if s, ok := r.seasonType.Pinned(); ok {
		return s
	}
	if r.seasonType != Calendar {
		return None
	}

	return r.months.Season(r.currentMonth())
}

func (r *Resolver) currentMonth() Month {
	if r.calendar == nil {
		return FallbackMonth
	}
	m, ok := r.calendar.Month()
	if !ok {
		return FallbackMonth
	}
	return m
}
