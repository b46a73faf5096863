package season

import (
	"strconv"
	"strings"
)

// DefaultRecordSeason is used when a save has no record or the record cannot be read.
const DefaultRecordSeason = Summer

// Record is the season state stored per save: "<current>" or "<current>|<override>".
type Record struct {
	Current  Season
	Override Season
}

// String encodes the record. The override part is omitted when no override is set, which keeps
// records readable by older versions.
func (r Record) String() string {
	cur := strconv.Itoa(int(r.Current))
	if !r.Override.Valid() {
		return cur
	}
	return cur + "|" + strconv.Itoa(int(r.Override))
}

// ParseRecord decodes a stored value. It never fails: an unreadable current season falls back to
// DefaultRecordSeason and an unreadable override is dropped. ok reports whether the value was
// well formed.
func ParseRecord(v string) (r Record, ok bool) {
	r = Record{Current: DefaultRecordSeason}

	cur, ovr, hasOverride := strings.Cut(strings.TrimSpace(v), "|")
	s, good := parseOrdinal(cur)
	if !good {
		return r, false
	}
	r.Current = s

	if !hasOverride {
		return r, true
	}
	o, good := parseOrdinal(ovr)
	if !good {
		return r, false
	}
	r.Override = o
	return r, true
}

func parseOrdinal(v string) (Season, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 || n >= Count {
		return None, false
	}
	return Season(n), true
}
