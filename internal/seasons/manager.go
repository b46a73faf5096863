// Package seasons owns the per-session season state: the tracker, the swap tables of every
// season, the LOD path resolver and the snow shader swapper. One Manager is built per session and
// shared by everything that asks seasonal questions.
package seasons

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chrissnell/seasonswap/internal/lodpath"
	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/snow"
	"github.com/chrissnell/seasonswap/internal/store"
	"github.com/chrissnell/seasonswap/internal/swap"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager answers seasonal questions for one session.
type Manager struct {
	id       string
	logger   *zap.SugaredLogger
	tracker  *season.Tracker
	notifier *asyncNotifier
	settings SeasonSettings
	sets     [season.Count]*swap.Set
	main     *swap.Generated
	lod      *lodpath.Resolver
	swapper  *snow.Swapper
	store    *store.Store
	saves    SaveEnumerator
	purger   CellPurger

	closeOnce sync.Once
}

// New builds a Manager: it loads the swap files of every season, generates or restores the main
// winter table and seals all tables.
func New(ctx context.Context, opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if err := opts.Months.Validate(opts.Type); err != nil {
		return nil, err
	}

	m := &Manager{
		id:       uuid.NewString(),
		logger:   logger,
		settings: opts.Settings,
		store:    opts.Store,
		saves:    opts.Saves,
		purger:   opts.Purger,
	}

	m.notifier = newAsyncNotifier(opts.Notifier, opts.NotifyQueue, logger)
	m.tracker = season.NewTracker(opts.Type, opts.Months, opts.Calendar, m.notifier)
	logger.Infof("season type is %s", opts.Type)

	if err := m.loadSwaps(ctx, opts); err != nil {
		m.notifier.close()
		return nil, err
	}

	m.lod = lodpath.NewResolver(m, opts.MaxPathLength, opts.PathLimits)

	blacklist := opts.Blacklist
	if blacklist == nil {
		blacklist = snow.NewBlacklist(nil, snow.DefaultModelBlacklist)
	}
	gate := &snow.Gate{Permit: m.canApplySnowShader, Blacklist: blacklist}
	m.swapper = snow.NewSwapper(gate, snow.NewCache(), opts.Shaders)

	return m, nil
}

func (m *Manager) loadSwaps(ctx context.Context, opts Options) error {
	main, _, err := GenerateMainSwaps(ctx, opts.Store, opts.CandidatesPath, m.logger)
	if err != nil {
		return err
	}
	m.main = main

	for _, s := range season.All {
		set := swap.NewSet()

		// The generated table goes in first so hand-written winter files override it.
		if s == season.Winter {
			forms := set.Table(swap.Forms)
			for _, e := range main.Entries() {
				if err := forms.Put(e.Original, e.Replacement); err != nil {
					return fmt.Errorf("merging %s: %w", MainTableName, err)
				}
			}
		}

		if opts.SwapsDir != "" {
			sources, err := swap.LoadSources(opts.SwapsDir, s.Suffix(), m.logger)
			if err != nil {
				return err
			}
			for _, src := range sources {
				if err := set.Merge(src); err != nil {
					return fmt.Errorf("merging %s: %w", src.Name, err)
				}
			}
		}

		set.Seal()
		m.sets[s] = set
		m.logger.Infof("%s swaps: %v", s, set.Counts())
	}
	return nil
}

// ID identifies this session.
func (m *Manager) ID() string {
	return m.id
}

// SeasonType returns the configured season type.
func (m *Manager) SeasonType() season.Type {
	return m.tracker.Type()
}

// CurrentSeason returns the season visible swaps use; None in interiors. A transition found
// while computing it purges the host's buffered cells like Update does.
func (m *Manager) CurrentSeason() season.Season {
	s, changed := m.tracker.Gameplay()
	if changed {
		m.purge()
	}
	return s
}

// Snapshot copies the tracker state.
func (m *Manager) Snapshot() season.State {
	return m.tracker.Snapshot()
}

// LastTransition returns the most recent transition of this session.
func (m *Manager) LastTransition() (season.Transition, bool) {
	return m.notifier.lastTransition()
}

// Settings returns the switches of season s.
func (m *Manager) Settings(s season.Season) Settings {
	return m.settings.For(s)
}

// SetExterior records whether the observer is outdoors.
func (m *Manager) SetExterior(exterior bool) {
	m.tracker.SetExterior(exterior)
}

// Update recomputes the season. On a transition the host's buffered cells are purged.
func (m *Manager) Update() bool {
	changed := m.tracker.Update()
	if changed {
		m.purge()
	}
	return changed
}

func (m *Manager) purge() {
	if m.purger != nil {
		m.purger.PurgeBufferedCells()
	}
}

// SetOverride pins the season and applies it immediately.
func (m *Manager) SetOverride(s season.Season) bool {
	m.tracker.SetOverride(s)
	return m.Update()
}

// ClearOverride returns to the configured season type and applies it immediately.
func (m *Manager) ClearOverride() bool {
	m.tracker.ClearOverride()
	return m.Update()
}

// ActivateEvent is the host's report of an object activation.
type ActivateEvent struct {
	ByPlayer bool `json:"by_player"`
	// Teleport is set when the activated object is a load door.
	Teleport bool `json:"teleport"`
}

// OnActivate reacts to the player using a load door from an interior, the moment the next
// exterior season has to be known. It reports whether the season changed.
func (m *Manager) OnActivate(ev ActivateEvent) bool {
	if m.tracker.Exterior() || !ev.ByPlayer || !ev.Teleport {
		return false
	}
	return m.Update()
}

// CanSwapLOD reports whether LOD of type t uses seasonal names, and the suffix to use.
func (m *Manager) CanSwapLOD(t lodpath.LODType) (bool, string) {
	s := m.CurrentSeason()
	if !s.Valid() || !m.settings.For(s).LOD(t) {
		return false, ""
	}
	return true, s.Suffix()
}

// CanSwapGrass reports whether grass is swapped in the current season.
func (m *Manager) CanSwapGrass() bool {
	return m.settings.For(m.CurrentSeason()).SwapGrass
}

// IsLandscapeSwapAllowed reports whether land textures are swapped in the current season.
func (m *Manager) IsLandscapeSwapAllowed() bool {
	return m.settings.For(m.CurrentSeason()).SwapLandscape
}

// IsSwapAllowed reports whether placed objects are swapped in the current season.
func (m *Manager) IsSwapAllowed() bool {
	return m.settings.For(m.CurrentSeason()).SwapObjects
}

// SwapForm returns the seasonal replacement of an object.
func (m *Manager) SwapForm(id swap.ResourceID) (swap.ResourceID, bool) {
	s := m.CurrentSeason()
	if !s.Valid() || !m.settings.For(s).SwapObjects {
		return 0, false
	}
	return m.sets[s].Lookup(swap.Forms, id)
}

// SwapLandTexture returns the seasonal replacement of a land texture.
func (m *Manager) SwapLandTexture(id swap.ResourceID) (swap.ResourceID, bool) {
	s := m.CurrentSeason()
	if !s.Valid() || !m.settings.For(s).SwapLandscape {
		return 0, false
	}
	return m.sets[s].Lookup(swap.LandTextures, id)
}

// SwapLandTextureFromTextureSet returns the land texture that replaces a texture set.
func (m *Manager) SwapLandTextureFromTextureSet(id swap.ResourceID) (swap.ResourceID, bool) {
	s := m.CurrentSeason()
	if !s.Valid() || !m.settings.For(s).SwapLandscape {
		return 0, false
	}
	return m.sets[s].Lookup(swap.TextureSets, id)
}

// Lookup reads a table of season s regardless of the current season and its switches.
func (m *Manager) Lookup(s season.Season, k swap.Kind, id swap.ResourceID) (swap.ResourceID, bool) {
	if !s.Valid() {
		return 0, false
	}
	return m.sets[s].Lookup(k, id)
}

// SwapCounts returns the table sizes of season s.
func (m *Manager) SwapCounts(s season.Season) map[string]int {
	if !s.Valid() {
		return nil
	}
	return m.sets[s].Counts()
}

// MainSwaps returns the generated winter table.
func (m *Manager) MainSwaps() []swap.Entry {
	return m.main.Entries()
}

// ResolvePath builds a LOD file name for the current season. A seasonal name that does not fit
// falls back to the default name.
func (m *Manager) ResolvePath(cat lodpath.Category, args ...any) (string, error) {
	p, err := m.lod.BuildPath(cat, args...)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, lodpath.ErrPathTooLong) {
		return "", err
	}

	m.logger.Warnf("seasonal LOD name rejected, using default: %v", err)
	return m.lod.DefaultPath(cat, args...)
}

func (m *Manager) canApplySnowShader() bool {
	return m.settings.For(m.CurrentSeason()).SnowShader
}

// ShouldSwap decides the snow shader of a static placed by ref. load supplies the object's scene
// graph the first time it is seen.
func (m *Manager) ShouldSwap(st snow.Static, ref snow.Reference, load func() snow.SceneGraph) snow.Decision {
	return m.swapper.Decide(st, ref, load)
}

// ShouldSwapOther decides the snow shader of a movable static or container.
func (m *Manager) ShouldSwapOther(ref snow.Reference, base snow.Form) snow.Decision {
	return m.swapper.DecideOther(ref, base)
}

// SnowInfo returns what is known about a classified object.
func (m *Manager) SnowInfo(id swap.ResourceID) (snow.Info, bool) {
	return m.swapper.Cache().Get(id)
}

// Close flushes pending notifications. The store is owned by the caller.
func (m *Manager) Close() {
	m.closeOnce.Do(m.notifier.close)
}
