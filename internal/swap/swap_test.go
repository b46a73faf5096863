package swap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTableLookupIsTotal(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Put(0x10, 0x20))

	r, ok := tbl.Lookup(0x10)
	assert.True(t, ok)
	assert.Equal(t, ResourceID(0x20), r)

	_, ok = tbl.Lookup(0x11)
	assert.False(t, ok)

	var missing *Table
	_, ok = missing.Lookup(0x10)
	assert.False(t, ok)
}

func TestTableSealed(t *testing.T) {
	tbl := NewTable()
	tbl.Seal()
	assert.ErrorIs(t, tbl.Put(1, 2), ErrSealed)
	assert.ErrorIs(t, tbl.Merge(map[ResourceID]ResourceID{1: 2}), ErrSealed)
}

func TestParseResourceID(t *testing.T) {
	tests := []struct {
		in       string
		expected ResourceID
		wantErr  bool
	}{
		{in: "0x0001A2B3", expected: 0x1A2B3},
		{in: "0x1A2B3~Skyrim.esm", expected: 0x1A2B3},
		{in: " 4096 ", expected: 4096},
		{in: "", wantErr: true},
		{in: "0xZZ", wantErr: true},
		{in: "0x1FFFFFFFF", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseResourceID(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.expected, got)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadSourcesLaterOverridesEarlier(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A_Trees_WIN.yaml", `
forms:
  "0x100": "0x200"
  "0x101": "0x201"
`)
	writeFile(t, dir, "B_Patch_WIN.yaml", `
forms:
  "0x100": "0x300"
land_textures:
  "0x500": "0x501"
`)
	writeFile(t, dir, "C_Other_SUM.yaml", `
forms:
  "0x100": "0x999"
`)
	writeFile(t, dir, "MainFormSwap_WIN.yaml", `
candidates:
  "0x100": "0x777"
`)
	writeFile(t, dir, "notes_WIN.txt", "ignored")

	sources, err := LoadSources(dir, "WIN", zap.NewNop().Sugar())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "A_Trees_WIN.yaml", sources[0].Name)
	assert.Equal(t, "B_Patch_WIN.yaml", sources[1].Name)

	set := NewSet()
	for _, src := range sources {
		require.NoError(t, set.Merge(src))
	}

	r, ok := set.Lookup(Forms, 0x100)
	require.True(t, ok)
	assert.Equal(t, ResourceID(0x300), r, "B is later and wins")

	r, ok = set.Lookup(Forms, 0x101)
	require.True(t, ok)
	assert.Equal(t, ResourceID(0x201), r)

	r, ok = set.Lookup(LandTextures, 0x500)
	require.True(t, ok)
	assert.Equal(t, ResourceID(0x501), r)

	_, ok = set.Lookup(TextureSets, 0x500)
	assert.False(t, ok)
	_, ok = set.Lookup(Kind(99), 0x100)
	assert.False(t, ok)
}

func TestLoadSourcesMissingDir(t *testing.T) {
	sources, err := LoadSources(filepath.Join(t.TempDir(), "nope"), "SPR", zap.NewNop().Sugar())
	assert.NoError(t, err)
	assert.Empty(t, sources)
}

func TestParseSourceKeepsValidEntries(t *testing.T) {
	src, err := ParseSource("bad_WIN.yaml", []byte(`
forms:
  "0x10": "0x20"
  "garbage": "0x30"
`))
	assert.Error(t, err)
	assert.Equal(t, 1, src.Len())
}

func TestGenerateIdempotent(t *testing.T) {
	candidates := []Candidate{
		{Original: 0x10, Replacement: 0x20},
		{Original: 0x11},
		{Original: 0x12, Replacement: 0x12},
	}

	g := NewGenerated()
	assert.True(t, g.Generate(candidates, false), "nothing persisted yet")
	assert.False(t, g.Generate(candidates, false))
	assert.False(t, g.Generate(append(candidates, Candidate{Original: 0x13, Replacement: 0x23}), false),
		"without force the persisted table is reused")

	assert.Equal(t, []Entry{{Original: 0x10, Replacement: 0x20}}, g.Entries())

	assert.False(t, g.Generate(candidates, true), "forced rebuild with identical result")
	assert.True(t, g.Generate(append(candidates, Candidate{Original: 0x13, Replacement: 0x23}), true))
	assert.Equal(t, 2, g.Table().Len())
}

func TestGeneratedRestore(t *testing.T) {
	g := NewGenerated()
	require.NoError(t, g.Restore([]Entry{{Original: 1, Replacement: 2}}))
	assert.True(t, g.Persisted())
	assert.False(t, g.Generate([]Candidate{{Original: 5, Replacement: 6}}, false))

	r, ok := g.Table().Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, ResourceID(2), r)
}

func TestEntriesCodec(t *testing.T) {
	entries := []Entry{{Original: 0x10, Replacement: 0x20}, {Original: 0xFF000801, Replacement: 0x1}}
	blob, err := EncodeEntries(entries)
	require.NoError(t, err)

	got, err := DecodeEntries(blob)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	_, err = DecodeEntries([]byte("not zstd"))
	assert.Error(t, err)
}

func TestLoadCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "MainFormSwap_WIN.yaml", `
packages: [Skyrim.esm, Update.esm, Dawnguard.esm]
candidates:
  "0x20": "0x30"
  "0x10": ""
`)

	cands, packages, err := LoadCandidates(filepath.Join(dir, "MainFormSwap_WIN.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, packages)
	assert.Equal(t, []Candidate{{Original: 0x10}, {Original: 0x20, Replacement: 0x30}}, cands)
}
