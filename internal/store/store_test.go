package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "seasons.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMeta(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Meta(ctx, MetaContentPackageCount)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SetMeta(ctx, MetaContentPackageCount, "12"))
	require.NoError(t, s.SetMeta(ctx, MetaContentPackageCount, "13"))

	v, err := s.Meta(ctx, MetaContentPackageCount)
	require.NoError(t, err)
	assert.Equal(t, "13", v)
}

func TestSaves(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.PutSave(ctx, "Save2_Lydia", "1|2"))
	require.NoError(t, s.PutSave(ctx, "Save1_Lydia", "3"))
	require.NoError(t, s.PutSave(ctx, "Save2_Lydia", "4"))

	v, err := s.Save(ctx, "Save2_Lydia")
	require.NoError(t, err)
	assert.Equal(t, "4", v)

	names, err := s.Saves(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Save1_Lydia", "Save2_Lydia"}, names)

	require.NoError(t, s.DeleteSave(ctx, "Save1_Lydia"))
	require.NoError(t, s.DeleteSave(ctx, "Save1_Lydia"))
	_, err = s.Save(ctx, "Save1_Lydia")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGeneratedSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seasons.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Generated(ctx, "MainFormSwap_WIN")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.PutGenerated(ctx, "MainFormSwap_WIN", []byte{0x28, 0xb5, 0x2f, 0xfd}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	b, err := s.Generated(ctx, "MainFormSwap_WIN")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, b)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestSchemaMigrated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seasons.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.PutSave(ctx, "Save1", "1"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Save(ctx, "Save1")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	var version int
	require.NoError(t, s.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version))
	assert.Equal(t, 1, version)
}
