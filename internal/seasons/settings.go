package seasons

import (
	"errors"
	"fmt"

	"github.com/chrissnell/seasonswap/internal/lodpath"
	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/pkg/config"
)

// Settings are the switches of one season. The zero value swaps nothing.
type Settings struct {
	SwapGrass     bool `json:"swap_grass"`
	SwapLandscape bool `json:"swap_landscape"`
	SwapObjects   bool `json:"swap_objects"`
	LODTerrain    bool `json:"lod_terrain"`
	LODObject     bool `json:"lod_object"`
	LODTree       bool `json:"lod_tree"`
	SnowShader    bool `json:"snow_shader"`
}

// LOD reports whether seasonal LOD is enabled for t.
func (s Settings) LOD(t lodpath.LODType) bool {
	switch t {
	case lodpath.Terrain:
		return s.LODTerrain
	case lodpath.Object:
		return s.LODObject
	case lodpath.Tree:
		return s.LODTree
	}
	return false
}

// SeasonSettings holds Settings indexed by season ordinal. The None slot is never consulted.
type SeasonSettings [season.Count]Settings

// For returns the settings of s. None gets the zero value.
func (ss SeasonSettings) For(s season.Season) Settings {
	if !s.Valid() {
		return Settings{}
	}
	return ss[s]
}

// SettingsFromConfig converts the per-season config sections. Keys may be season names or
// suffixes.
func SettingsFromConfig(sections map[string]config.SeasonData) (SeasonSettings, error) {
	var (
		out  SeasonSettings
		errs []error
	)
	for key, sd := range sections {
		s, err := season.ParseSeason(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("seasons.%s: %w", key, err))
			continue
		}
		if !s.Valid() {
			errs = append(errs, fmt.Errorf("seasons.%s: not a season", key))
			continue
		}
		out[s] = Settings{
			SwapGrass:     sd.SwapGrass,
			SwapLandscape: sd.SwapLandscape,
			SwapObjects:   sd.SwapObjects,
			LODTerrain:    sd.LOD.Terrain,
			LODObject:     sd.LOD.Object,
			LODTree:       sd.LOD.Tree,
			SnowShader:    sd.SnowShader,
		}
	}
	return out, errors.Join(errs...)
}
