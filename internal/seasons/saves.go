package seasons

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/store"
)

// ErrNoStore is returned by save operations when the manager has no store.
var ErrNoStore = errors.New("no season store configured")

// SaveEnumerator reports whether a host save still exists.
type SaveEnumerator interface {
	Exists(name string) (bool, error)
}

// DirSaves finds saves as <Dir>/<name><Extension>.
type DirSaves struct {
	Dir       string
	Extension string
}

func (d DirSaves) Exists(name string) (bool, error) {
	_, err := os.Stat(filepath.Join(d.Dir, name+d.Extension))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// SaveSeason records the season state for a save. Nothing is recorded while the observer is in
// an interior; saved reports whether a record was written.
func (m *Manager) SaveSeason(ctx context.Context, name string) (saved bool, err error) {
	if m.store == nil {
		return false, ErrNoStore
	}
	if !m.tracker.Exterior() {
		m.logger.Debugf("not saving season for %s: observer is in an interior", name)
		return false, nil
	}

	rec := season.Record{Current: m.tracker.Resolve(true), Override: m.tracker.Override()}
	if err := m.store.PutSave(ctx, name, rec.String()); err != nil {
		return false, err
	}
	m.logger.Debugf("saved season %s for %s", rec, name)
	return true, nil
}

// LoadSeason restores the season state recorded for a save. A missing or unreadable record
// restores the default season. The next update reports a transition.
func (m *Manager) LoadSeason(ctx context.Context, name string) (season.Record, error) {
	if m.store == nil {
		return season.Record{}, ErrNoStore
	}

	v, err := m.store.Save(ctx, name)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return season.Record{}, err
	}

	rec, ok := season.ParseRecord(v)
	if !ok && v != "" {
		m.logger.Warnf("season record %q for %s is malformed, using %s", v, name, rec.Current)
	}
	m.tracker.Restore(rec.Current, rec.Override)
	m.logger.Infof("loaded season %s for %s", rec.Current, name)
	return rec, nil
}

// ClearSeason forgets the record of a deleted save.
func (m *Manager) ClearSeason(ctx context.Context, name string) error {
	if m.store == nil {
		return ErrNoStore
	}
	return m.store.DeleteSave(ctx, name)
}

// CleanupSaves removes records whose save no longer exists and returns their names.
func (m *Manager) CleanupSaves(ctx context.Context) ([]string, error) {
	if m.store == nil {
		return nil, ErrNoStore
	}
	return CleanupSaves(ctx, m.store, m.saves)
}

// CleanupSaves removes every record in st whose save is gone according to saves.
func CleanupSaves(ctx context.Context, st *store.Store, saves SaveEnumerator) ([]string, error) {
	if saves == nil {
		return nil, fmt.Errorf("no save enumerator configured")
	}

	names, err := st.Saves(ctx)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range names {
		ok, err := saves.Exists(name)
		if err != nil {
			return removed, fmt.Errorf("checking save %s: %w", name, err)
		}
		if ok {
			continue
		}
		if err := st.DeleteSave(ctx, name); err != nil {
			return removed, err
		}
		removed = append(removed, name)
	}
	return removed, nil
}
