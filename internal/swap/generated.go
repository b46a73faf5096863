package swap

// Candidate is a potential generated mapping. A zero Replacement means the original has no
// seasonal variant and is skipped.
type Candidate struct {
	Original    ResourceID
	Replacement ResourceID
}

// Generated is a swap table that is computed from a candidate set once and then persisted, so
// later runs reuse the stored result instead of rebuilding it.
type Generated struct {
	table     *Table
	persisted bool
}

// NewGenerated returns an empty generated table with nothing persisted.
func NewGenerated() *Generated {
	return &Generated{table: NewTable()}
}

// Restore loads a previously persisted form.
func (g *Generated) Restore(entries []Entry) error {
	t := NewTable()
	for _, e := range entries {
		if err := t.Put(e.Original, e.Replacement); err != nil {
			return err
		}
	}
	g.table = t
	g.persisted = true
	return nil
}

// Persisted reports whether the table has a persisted form.
func (g *Generated) Persisted() bool {
	return g.persisted
}

// Generate builds the table from candidates when force is set or nothing is persisted yet. It
// returns true when the persisted form changed and has to be written back by the caller.
// Calling it again without force is a no-op.
func (g *Generated) Generate(candidates []Candidate, force bool) bool {
	if g.persisted && !force {
		return false
	}

	next := make(map[ResourceID]ResourceID, len(candidates))
	for _, c := range candidates {
		if c.Original == 0 || c.Replacement == 0 || c.Original == c.Replacement {
			continue
		}
		next[c.Original] = c.Replacement
	}

	changed := !g.persisted || !sameEntries(g.table.entries, next)
	g.table = &Table{entries: next}
	g.persisted = true
	return changed
}

// Table exposes the generated mappings for lookup and merging.
func (g *Generated) Table() *Table {
	return g.table
}

// Entries returns the persisted form.
func (g *Generated) Entries() []Entry {
	return g.table.Entries()
}

func sameEntries(a, b map[ResourceID]ResourceID) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
