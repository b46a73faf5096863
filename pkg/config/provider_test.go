package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
debug: true
settings:
  season_type: calendar
  calendar:
    Frostfall: winter
    "Sun's Dusk": WIN
  start_month: Last Seed
  start_day: 17
seasons:
  winter:
    swap_grass: true
    swap_landscape: true
    swap_objects: true
    lod:
      terrain: true
      object: true
      tree: true
    snow_shader: true
  AUT:
    swap_objects: true
    lod:
      tree: true
swaps:
  dir: /games/skyrim/Data/Seasons
snow:
  blacklist_ids: ["0x0001A2B3"]
  blacklist_models: ["Clutter\\"]
  multipass_shader: "0x00000801"
  singlepass_shader: "0x00000802"
lod:
  limits:
    terrain_mesh: 57
store:
  path: /var/lib/seasonswap/state.db
management:
  port: 9090
`

func TestYAMLProviderLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	p := NewYAMLProvider(path)
	cfg, err := p.LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "calendar", cfg.Settings.SeasonType)
	assert.Equal(t, map[string]string{"Frostfall": "winter", "Sun's Dusk": "WIN"}, cfg.Settings.Calendar)
	assert.Equal(t, "Last Seed", cfg.Settings.StartMonth)
	assert.Equal(t, 17, cfg.Settings.StartDay)

	require.Contains(t, cfg.Seasons, "winter")
	assert.Equal(t, SeasonData{
		SwapGrass: true, SwapLandscape: true, SwapObjects: true,
		LOD:        SeasonLODData{Terrain: true, Object: true, Tree: true},
		SnowShader: true,
	}, cfg.Seasons["winter"])
	assert.Equal(t, SeasonData{SwapObjects: true, LOD: SeasonLODData{Tree: true}}, cfg.Seasons["AUT"])

	assert.Equal(t, "/games/skyrim/Data/Seasons", cfg.Swaps.Dir)
	assert.Equal(t, []string{"0x0001A2B3"}, cfg.Snow.BlacklistIDs)
	assert.Equal(t, []string{`Clutter\`}, cfg.Snow.BlacklistModels)
	assert.Equal(t, "/var/lib/seasonswap/state.db", cfg.Store.Path)

	require.NotNil(t, cfg.Management)
	assert.Equal(t, 9090, cfg.Management.Port)
	assert.Equal(t, DefaultListenAddr, cfg.Management.ListenAddr)
	assert.Equal(t, DefaultMaxPathLength, cfg.LOD.MaxPathLength)
	assert.Equal(t, map[string]int{"terrain_mesh": 57}, cfg.LOD.Limits)
	assert.Equal(t, DefaultSaveExtension, cfg.Saves.Extension)

	seasons, err := p.GetSeasons()
	require.NoError(t, err)
	assert.Len(t, seasons, 2)
	assert.True(t, p.IsReadOnly())
}

func TestYAMLProviderMissingFile(t *testing.T) {
	p := NewYAMLProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := p.LoadConfig()
	assert.Error(t, err)

	_, err = p.GetSettings()
	assert.Error(t, err)
}

func TestParseYAMLDefaults(t *testing.T) {
	cfg, err := ParseYAML([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, DefaultSeasonType, cfg.Settings.SeasonType)
	assert.Equal(t, DefaultSwapsDir, cfg.Swaps.Dir)
	assert.Equal(t, DefaultStorePath, cfg.Store.Path)
	assert.Nil(t, cfg.Management)
	assert.Empty(t, cfg.Seasons)

	_, err = ParseYAML([]byte("settings: [unterminated"))
	assert.Error(t, err)
}

func TestApplyEnvFrom(t *testing.T) {
	cfg, err := ParseYAML([]byte("{}"))
	require.NoError(t, err)

	require.NoError(t, ApplyEnvFrom(cfg, map[string]string{
		"SEASONSWAP_SEASON_TYPE": "permanent winter",
		"SEASONSWAP_STORE_PATH":  "/tmp/state.db",
		"SEASONSWAP_PORT":        "9191",
		"SEASONSWAP_DEBUG":       "true",
		"UNRELATED":              "x",
	}))

	assert.Equal(t, "permanent winter", cfg.Settings.SeasonType)
	assert.Equal(t, "/tmp/state.db", cfg.Store.Path)
	require.NotNil(t, cfg.Management)
	assert.Equal(t, 9191, cfg.Management.Port)
	assert.True(t, cfg.Debug)

	err = ApplyEnvFrom(cfg, map[string]string{"SEASONSWAP_PORT": "not-a-port"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ConfigData
		wantErr bool
	}{
		{"empty", ConfigData{}, false},
		{"bad port", ConfigData{Management: &ManagementAPIData{Port: 70000}}, true},
		{"cert without key", ConfigData{Management: &ManagementAPIData{Cert: "c.pem"}}, true},
		{"cert and key", ConfigData{Management: &ManagementAPIData{Cert: "c.pem", Key: "k.pem"}}, false},
		{"bad start day", ConfigData{Settings: SettingsData{StartDay: 40}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
