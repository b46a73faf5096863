// Package swap holds the per-season replacement tables: which object, land texture or texture set
// replaces an original one while a season is active.
package swap

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrSealed is returned when a table is modified after its load phase ended.
var ErrSealed = errors.New("swap table is sealed")

// ResourceID identifies a host resource (a form). Zero means "none".
type ResourceID uint32

// ParseResourceID accepts hex ("0x0001A2B3"), bare hex with a plugin suffix
// ("0x1A2B3~Skyrim.esm", the plugin part is dropped) or decimal.
func ParseResourceID(v string) (ResourceID, error) {
	v = strings.TrimSpace(v)
	if i := strings.IndexAny(v, "~|"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if v == "" {
		return 0, fmt.Errorf("empty resource id")
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid resource id %q: %w", v, err)
	}
	return ResourceID(n), nil
}

func (id ResourceID) String() string {
	return fmt.Sprintf("0x%08X", uint32(id))
}

// Entry is one original → replacement pair.
type Entry struct {
	Original    ResourceID `json:"original" msgpack:"o"`
	Replacement ResourceID `json:"replacement" msgpack:"r"`
}

// Table maps original resources to their seasonal replacement. It is filled during the load phase,
// sealed, and then read concurrently without locking.
type Table struct {
	entries map[ResourceID]ResourceID
	sealed  bool
}

// NewTable returns an empty, unsealed table.
func NewTable() *Table {
	return &Table{entries: make(map[ResourceID]ResourceID)}
}

// Lookup returns the replacement for original. A miss is not an error.
func (t *Table) Lookup(original ResourceID) (ResourceID, bool) {
	if t == nil {
		return 0, false
	}
	r, ok := t.entries[original]
	return r, ok
}

// Put sets one mapping, replacing any earlier one for the same original.
func (t *Table) Put(original, replacement ResourceID) error {
	if t.sealed {
		return ErrSealed
	}
	if original == 0 || replacement == 0 {
		return fmt.Errorf("swap %s -> %s: zero resource id", original, replacement)
	}
	t.entries[original] = replacement
	return nil
}

// Merge applies entries in order; later values win.
func (t *Table) Merge(entries map[ResourceID]ResourceID) error {
	if t.sealed {
		return ErrSealed
	}
	for o, r := range entries {
		if err := t.Put(o, r); err != nil {
			return err
		}
	}
	return nil
}

// Seal ends the load phase.
func (t *Table) Seal() {
	t.sealed = true
}

// Sealed reports whether Seal was called.
func (t *Table) Sealed() bool {
	return t.sealed
}

// Len returns the number of mappings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns the mappings sorted by original id.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for o, r := range t.entries {
		out = append(out, Entry{Original: o, Replacement: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Original < out[j].Original })
	return out
}
