package season

import (
	"fmt"
	"sync/atomic"

	"github.com/soniakeys/meeus/v3/julian"
)

// Clock is the host's in-game clock. ok is false when the clock is not available yet
// (main menu, early load), in which case resolution falls back to FallbackMonth.
type Clock interface {
	Month() (m Month, ok bool)
}

// CalendarMap maps each month to the season it belongs to.
type CalendarMap [MonthCount]Season

// DefaultCalendarMap groups three consecutive months per season.
func DefaultCalendarMap() CalendarMap {
	return CalendarMap{
		MorningStar: Winter,
		SunsDawn:    Winter,
		FirstSeed:   Spring,
		RainsHand:   Spring,
		SecondSeed:  Spring,
		Midyear:     Summer,
		SunsHeight:  Summer,
		LastSeed:    Summer,
		Hearthfire:  Autumn,
		Frostfall:   Autumn,
		SunsDusk:    Autumn,
		EveningStar: Winter,
	}
}

// Season returns the season for m, or None when m is not a month or is unmapped.
func (c CalendarMap) Season(m Month) Season {
	if !m.Valid() {
		return None
	}
	return c[m]
}

// Set assigns a month. Used by the config loader.
func (c *CalendarMap) Set(m Month, s Season) error {
	if !m.Valid() {
		return fmt.Errorf("invalid month %d", int(m))
	}
	if s != None && !s.Valid() {
		return fmt.Errorf("invalid season %d for %s", int(s), m)
	}
	c[m] = s
	return nil
}

// Validate checks the one hard requirement of calendar mode: the first month must map to a
// concrete season.
func (c CalendarMap) Validate(t Type) error {
	if t != Calendar {
		return nil
	}
	if !c[MorningStar].Valid() {
		return fmt.Errorf("calendar mapping for %s must be a season when season type is %s", MorningStar, t)
	}
	return nil
}

// FixedCalendar always reports the same month. A negative month reports the clock as unavailable.
type FixedCalendar struct {
	month atomic.Int64
}

// NewFixedCalendar returns a calendar stuck on m.
func NewFixedCalendar(m Month) *FixedCalendar {
	c := &FixedCalendar{}
	c.Set(m)
	return c
}

// Set moves the calendar to m.
func (c *FixedCalendar) Set(m Month) {
	c.month.Store(int64(m))
}

func (c *FixedCalendar) Month() (Month, bool) {
	m := Month(c.month.Load())
	if m < 0 {
		return 0, false
	}
	return m, true
}

// GameCalendar converts the host's "days passed" counter into a month. The in-game
// calendar has the same month lengths as the Gregorian one, so the count is projected onto a
// Gregorian date and the month read back through Julian day arithmetic.
type GameCalendar struct {
	startJD    float64
	daysPassed func() (float64, bool)
}

// NewGameCalendar starts the clock at day/month of a non-leap reference year. daysPassed
// returns false until the host has a running clock.
func NewGameCalendar(start Month, day int, daysPassed func() (float64, bool)) (*GameCalendar, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("invalid start month %d", int(start))
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("invalid start day %d", day)
	}
	return &GameCalendar{
		startJD:    julian.CalendarGregorianToJD(referenceYear, int(start)+1, float64(day)),
		daysPassed: daysPassed,
	}, nil
}

// referenceYear is a Gregorian year with no leap day.
const referenceYear = 2001

func (g *GameCalendar) Month() (Month, bool) {
	if g == nil || g.daysPassed == nil {
		return 0, false
	}
	days, ok := g.daysPassed()
	if !ok || days < 0 {
		return 0, false
	}
	_, m, _ := julian.JDToCalendar(g.startJD + days)
	return Month(m - 1), true
}
