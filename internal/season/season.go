// Package season decides which season is current and tracks transitions between seasons.
//
// A Resolver answers "what season should it be" from the configured season type, an optional
// override and the in-game calendar. A Tracker memoizes the answer, detects transitions and
// reports them to a Notifier.
package season

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Season is one of the four recurring world phases, or None when no swap should occur.
// The numeric values are the ordinals written to per-save records.
type Season uint8

const (
	None Season = iota
	Winter
	Spring
	Summer
	Autumn
)

// Count is the number of Season values including None. Arrays indexed by Season use it.
const Count = int(Autumn) + 1

// All lists the concrete seasons in ordinal order.
var All = [...]Season{Winter, Spring, Summer, Autumn}

var seasonNames = [Count]string{"none", "winter", "spring", "summer", "autumn"}

var seasonSuffixes = [Count]string{"", "WIN", "SPR", "SUM", "AUT"}

// Valid reports whether s is a concrete season.
func (s Season) Valid() bool {
	return s >= Winter && s <= Autumn
}

func (s Season) String() string {
	if int(s) < Count {
		return seasonNames[s]
	}
	return "season(" + strconv.Itoa(int(s)) + ")"
}

// Suffix is the three-letter token used in seasonal file names, e.g. "WIN".
func (s Season) Suffix() string {
	if int(s) < Count {
		return seasonSuffixes[s]
	}
	return ""
}

// ParseSeason accepts a season name ("winter"), its suffix ("WIN") or its ordinal ("1").
func ParseSeason(v string) (Season, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n >= Count {
			return None, fmt.Errorf("season ordinal %d out of range", n)
		}
		return Season(n), nil
	}

	lower := strings.ToLower(v)
	for i := 0; i < Count; i++ {
		if lower == seasonNames[i] || (seasonSuffixes[i] != "" && strings.EqualFold(v, seasonSuffixes[i])) {
			return Season(i), nil
		}
	}
	if lower == "fall" {
		return Autumn, nil
	}

	return None, unknownName("season", v, seasonNames[:])
}

// SeasonForSuffix maps "WIN"/"SPR"/"SUM"/"AUT" back to a season.
func SeasonForSuffix(suffix string) (Season, bool) {
	for _, s := range All {
		if strings.EqualFold(suffix, s.Suffix()) {
			return s, true
		}
	}
	return None, false
}

// Type selects the strategy used when no override is set.
type Type uint8

const (
	Disabled Type = iota
	PinnedWinter
	PinnedSpring
	PinnedSummer
	PinnedAutumn
	Calendar
)

var typeNames = [...]string{"disabled", "winter", "spring", "summer", "autumn", "seasonal"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Pinned returns the fixed season for the Pinned* types.
func (t Type) Pinned() (Season, bool) {
	switch t {
	case PinnedWinter:
		return Winter, true
	case PinnedSpring:
		return Spring, true
	case PinnedSummer:
		return Summer, true
	case PinnedAutumn:
		return Autumn, true
	}
	return None, false
}

// ParseType accepts the ordinal used by the legacy settings file (0-5) or a name.
func ParseType(v string) (Type, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > int(Calendar) {
			return Disabled, fmt.Errorf("season type %d out of range", n)
		}
		return Type(n), nil
	}

	lower := strings.ToLower(v)
	switch lower {
	case "calendar":
		return Calendar, nil
	case "permanent winter", "pinned winter":
		return PinnedWinter, nil
	case "permanent spring", "pinned spring":
		return PinnedSpring, nil
	case "permanent summer", "pinned summer":
		return PinnedSummer, nil
	case "permanent autumn", "pinned autumn":
		return PinnedAutumn, nil
	}
	for i, name := range typeNames {
		if lower == name {
			return Type(i), nil
		}
	}

	return Disabled, unknownName("season type", v, typeNames[:])
}

// Month is an in-game calendar month. MorningStar is the first month of the year.
type Month int

const (
	MorningStar Month = iota
	SunsDawn
	FirstSeed
	RainsHand
	SecondSeed
	Midyear
	SunsHeight
	LastSeed
	Hearthfire
	Frostfall
	SunsDusk
	EveningStar
)

// MonthCount is the number of months in a year.
const MonthCount = 12

// FallbackMonth is used when the host calendar is unavailable.
const FallbackMonth = LastSeed

var monthNames = [MonthCount]string{
	"Morning Star", "Sun's Dawn", "First Seed", "Rain's Hand", "Second Seed", "Midyear",
	"Sun's Height", "Last Seed", "Hearthfire", "Frostfall", "Sun's Dusk", "Evening Star",
}

// Valid reports whether m is one of the twelve months.
func (m Month) Valid() bool {
	return m >= MorningStar && m <= EveningStar
}

func (m Month) String() string {
	if m.Valid() {
		return monthNames[m]
	}
	return "month(" + strconv.Itoa(int(m)) + ")"
}

// ParseMonth accepts "Morning Star", "morningstar", "MorningStar" or a 0-based index.
func ParseMonth(v string) (Month, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		m := Month(n)
		if !m.Valid() {
			return 0, fmt.Errorf("month index %d out of range", n)
		}
		return m, nil
	}

	key := normalizeMonth(v)
	keys := make([]string, MonthCount)
	for i, name := range monthNames {
		keys[i] = normalizeMonth(name)
		if key == keys[i] {
			return Month(i), nil
		}
	}

	return 0, unknownName("month", key, keys)
}

func normalizeMonth(v string) string {
	v = strings.ToLower(v)
	return strings.NewReplacer(" ", "", "'", "", "_", "", "-", "").Replace(v)
}

// unknownName builds an error naming the closest known value.
func unknownName(kind, got string, known []string) error {
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(strings.ToLower(got), k)
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist >= 0 && bestDist <= 3 {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", kind, got, best)
	}
	return fmt.Errorf("unknown %s %q", kind, got)
}
