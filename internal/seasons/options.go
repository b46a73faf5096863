package seasons

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chrissnell/seasonswap/internal/lodpath"
	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/snow"
	"github.com/chrissnell/seasonswap/internal/store"
	"github.com/chrissnell/seasonswap/internal/swap"
	"github.com/chrissnell/seasonswap/pkg/config"
	"go.uber.org/zap"
)

// CellPurger drops the host's buffered cells so they reload with the new season.
type CellPurger interface {
	PurgeBufferedCells()
}

// CellPurgerFunc adapts a function to CellPurger.
type CellPurgerFunc func()

func (f CellPurgerFunc) PurgeBufferedCells() { f() }

// Options configures a Manager.
type Options struct {
	Type     season.Type
	Months   season.CalendarMap
	Calendar season.Clock
	Settings SeasonSettings

	// SwapsDir holds the per-season swap files and the *_NOSNOW blacklist files.
	SwapsDir string
	// CandidatesPath is the input of the generated winter table. Empty disables generation.
	CandidatesPath string

	MaxPathLength int
	PathLimits    map[lodpath.Category]int
	Blacklist     *snow.Blacklist
	Shaders       snow.Shaders

	// Store persists save records and the generated table. Without it saves are not recorded
	// and the winter table is regenerated on every start.
	Store  *store.Store
	Saves  SaveEnumerator
	Purger CellPurger

	Notifier    season.Notifier
	NotifyQueue int

	Logger *zap.SugaredLogger
}

// OptionsFromConfig builds Options from loaded configuration. The store, the save enumerator and
// the purger are left for the caller to attach.
func OptionsFromConfig(cfg *config.ConfigData, calendar season.Clock, logger *zap.SugaredLogger) (Options, error) {
	var errs []error

	t, err := season.ParseType(cfg.Settings.SeasonType)
	if err != nil {
		errs = append(errs, fmt.Errorf("settings.season_type: %w", err))
	}

	months := season.DefaultCalendarMap()
	for name, value := range cfg.Settings.Calendar {
		m, err := season.ParseMonth(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("settings.calendar: %w", err))
			continue
		}
		s, err := season.ParseSeason(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("settings.calendar.%s: %w", name, err))
			continue
		}
		if err := months.Set(m, s); err != nil {
			errs = append(errs, fmt.Errorf("settings.calendar.%s: %w", name, err))
		}
	}

	settings, err := SettingsFromConfig(cfg.Seasons)
	if err != nil {
		errs = append(errs, err)
	}

	var limits map[lodpath.Category]int
	for name, n := range cfg.LOD.Limits {
		cat, err := lodpath.ParseCategory(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("lod.limits: %w", err))
			continue
		}
		if n <= 0 {
			errs = append(errs, fmt.Errorf("lod.limits.%s: must be positive, got %d", name, n))
			continue
		}
		if limits == nil {
			limits = make(map[lodpath.Category]int)
		}
		limits[cat] = n
	}

	var shaders snow.Shaders
	if v := cfg.Snow.MultiPassShader; v != "" {
		if shaders.MultiPass, err = swap.ParseResourceID(v); err != nil {
			errs = append(errs, fmt.Errorf("snow.multipass_shader: %w", err))
		}
	}
	if v := cfg.Snow.SinglePassShader; v != "" {
		if shaders.SinglePass, err = swap.ParseResourceID(v); err != nil {
			errs = append(errs, fmt.Errorf("snow.singlepass_shader: %w", err))
		}
	}

	var ids []swap.ResourceID
	for _, v := range cfg.Snow.BlacklistIDs {
		id, err := swap.ParseResourceID(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("snow.blacklist_ids: %w", err))
			continue
		}
		ids = append(ids, id)
	}
	fileIDs, fileModels, err := snow.LoadBlacklistFiles(cfg.Swaps.Dir, logger)
	if err != nil {
		errs = append(errs, err)
	}
	models := make([]string, 0, len(snow.DefaultModelBlacklist)+len(cfg.Snow.BlacklistModels)+len(fileModels))
	models = append(models, snow.DefaultModelBlacklist...)
	models = append(models, cfg.Snow.BlacklistModels...)
	models = append(models, fileModels...)

	candidates := cfg.Swaps.Candidates
	if candidates == "" && cfg.Swaps.Dir != "" {
		candidates = filepath.Join(cfg.Swaps.Dir, MainTableName+".yaml")
	}

	var saves SaveEnumerator
	if cfg.Saves.Dir != "" {
		saves = DirSaves{Dir: cfg.Saves.Dir, Extension: cfg.Saves.Extension}
	}

	if err := errors.Join(errs...); err != nil {
		return Options{}, err
	}

	return Options{
		Type:           t,
		Months:         months,
		Calendar:       calendar,
		Settings:       settings,
		SwapsDir:       cfg.Swaps.Dir,
		CandidatesPath: candidates,
		MaxPathLength:  cfg.LOD.MaxPathLength,
		PathLimits:     limits,
		Blacklist:      snow.NewBlacklist(append(ids, fileIDs...), models),
		Shaders:        shaders,
		Saves:          saves,
		Logger:         logger,
	}, nil
}
