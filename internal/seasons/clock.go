package seasons

import (
	"math"
	"sync/atomic"

	"github.com/chrissnell/seasonswap/internal/season"
)

// HostClock is the calendar as last reported by the host. The host either reports the month
// directly or the number of in-game days passed; the latter needs a configured start date.
type HostClock struct {
	month *season.FixedCalendar
	game  *season.GameCalendar

	days    atomic.Uint64
	hasDays atomic.Bool
}

// NewHostClock returns a clock with no reading. A zero startDay disables the days-passed form.
func NewHostClock(start season.Month, startDay int) (*HostClock, error) {
	c := &HostClock{month: season.NewFixedCalendar(-1)}
	if startDay == 0 {
		return c, nil
	}
	game, err := season.NewGameCalendar(start, startDay, c.daysPassed)
	if err != nil {
		return nil, err
	}
	c.game = game
	return c, nil
}

// SetMonth records the host's current month.
func (c *HostClock) SetMonth(m season.Month) {
	c.month.Set(m)
}

// SetDaysPassed records the host's days-passed counter. It is ignored when no start date is
// configured.
func (c *HostClock) SetDaysPassed(days float64) bool {
	if c.game == nil || days < 0 || math.IsNaN(days) || math.IsInf(days, 0) {
		return false
	}
	c.days.Store(math.Float64bits(days))
	c.hasDays.Store(true)
	return true
}

func (c *HostClock) daysPassed() (float64, bool) {
	if !c.hasDays.Load() {
		return 0, false
	}
	return math.Float64frombits(c.days.Load()), true
}

// Month prefers the days-passed reading and falls back to the reported month.
func (c *HostClock) Month() (season.Month, bool) {
	if c.game != nil {
		if m, ok := c.game.Month(); ok {
			return m, true
		}
	}
	return c.month.Month()
}
