package migrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var testMigrations = fstest.MapFS{
	"m/001_records.up.sql":   {Data: []byte(`CREATE TABLE records (name TEXT PRIMARY KEY);`)},
	"m/001_records.down.sql": {Data: []byte(`DROP TABLE records;`)},
	"m/002_tables.up.sql":    {Data: []byte(`CREATE TABLE tables (name TEXT PRIMARY KEY); CREATE INDEX tables_name ON tables (name);`)},
	"m/002_tables.down.sql":  {Data: []byte(`DROP TABLE tables;`)},
	"m/README.md":            {Data: []byte(`ignored`)},
	"m/003_no_down.up.sql":   {Data: []byte(`CREATE TABLE extra (id INTEGER);`)},
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n))
	return n == 1
}

func TestGetMigrations(t *testing.T) {
	migrations, err := NewFSProvider(testMigrations, "m", "").GetMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	byVersion := map[int]Migration{}
	for _, m := range migrations {
		byVersion[m.Version] = m
	}
	assert.Equal(t, "records", byVersion[1].Name)
	assert.Contains(t, byVersion[2].Down, "DROP TABLE tables")
	assert.Equal(t, "no down", byVersion[3].Name)
	assert.Empty(t, byVersion[3].Down)
}

func TestMigrateUpAndDown(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	m := NewMigrator(db, NewFSProvider(testMigrations, "m", ""), nil)

	pending, err := m.PendingMigrations(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	require.NoError(t, m.MigrateTo(ctx, 2))
	v, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.True(t, tableExists(t, db, "tables"))
	assert.False(t, tableExists(t, db, "extra"))

	require.NoError(t, m.MigrateUp(ctx))
	require.NoError(t, m.MigrateUp(ctx), "migrating twice is a no-op")
	v, _ = m.CurrentVersion(ctx)
	assert.Equal(t, 3, v)

	assert.Error(t, m.MigrateDown(ctx, 2), "003 has no down migration")
	assert.Error(t, m.MigrateDown(ctx, 5))
}

func TestMigrateDown(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	m := NewMigrator(db, NewFSProvider(testMigrations, "m", "versions"), nil)

	require.NoError(t, m.MigrateTo(ctx, 2))
	require.NoError(t, m.MigrateDown(ctx, 1))

	v, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.False(t, tableExists(t, db, "tables"))
	assert.True(t, tableExists(t, db, "records"))

	require.NoError(t, m.MigrateTo(ctx, 0))
	v, _ = m.CurrentVersion(ctx)
	assert.Zero(t, v)
	assert.False(t, tableExists(t, db, "records"))
}
