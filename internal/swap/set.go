package swap

import (
	"fmt"
	"strings"
)

// Kind selects one of the tables in a Set.
type Kind int

const (
	// Forms replaces placed objects (statics, trees, flora, ...).
	Forms Kind = iota
	// LandTextures replaces landscape textures.
	LandTextures
	// TextureSets maps a texture set to the land texture that should replace it.
	TextureSets

	kindCount
)

var kindNames = [kindCount]string{"forms", "land_textures", "texture_sets"}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts "forms", "land_textures"/"landtextures", "texture_sets"/"texturesets".
func ParseKind(v string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_")
	for i, name := range kindNames {
		if norm == name || norm == strings.ReplaceAll(name, "_", "") {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown swap kind %q", v)
}

// Source is the parsed content of one swap file.
type Source struct {
	Name    string
	Entries [kindCount]map[ResourceID]ResourceID
}

// Len returns the total number of mappings in the source.
func (s Source) Len() int {
	n := 0
	for _, m := range s.Entries {
		n += len(m)
	}
	return n
}

// Set is the collection of tables belonging to one season.
type Set struct {
	tables [kindCount]*Table
}

// NewSet returns a Set with empty tables.
func NewSet() *Set {
	s := &Set{}
	for i := range s.tables {
		s.tables[i] = NewTable()
	}
	return s
}

// Table returns the table for kind k, or nil for an unknown kind.
func (s *Set) Table(k Kind) *Table {
	if s == nil || k < 0 || k >= kindCount {
		return nil
	}
	return s.tables[k]
}

// Lookup is a total lookup across the set: unknown kinds and misses report false.
func (s *Set) Lookup(k Kind, original ResourceID) (ResourceID, bool) {
	return s.Table(k).Lookup(original)
}

// Merge applies a source on top of what is already loaded.
func (s *Set) Merge(src Source) error {
	for k, entries := range src.Entries {
		if err := s.tables[k].Merge(entries); err != nil {
			return fmt.Errorf("merging %s from %s: %w", Kind(k), src.Name, err)
		}
	}
	return nil
}

// Seal seals every table in the set.
func (s *Set) Seal() {
	for _, t := range s.tables {
		t.Seal()
	}
}

// Counts returns the number of mappings per kind, keyed by kind name.
func (s *Set) Counts() map[string]int {
	out := make(map[string]int, kindCount)
	for k, t := range s.tables {
		out[Kind(k).String()] = t.Len()
	}
	return out
}
