package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseYAML(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// ParseYAML decodes a YAML document and fills in defaults.
func ParseYAML(raw []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML
	if err := yaml.Unmarshal(raw, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Debug: yamlConfig.Debug,
		Settings: SettingsData{
			SeasonType: yamlConfig.Settings.SeasonType,
			Calendar:   yamlConfig.Settings.Calendar,
			StartMonth: yamlConfig.Settings.StartMonth,
			StartDay:   yamlConfig.Settings.StartDay,
		},
		Swaps: SwapsData{
			Dir:        yamlConfig.Swaps.Dir,
			Candidates: yamlConfig.Swaps.Candidates,
		},
		Snow: SnowData{
			BlacklistIDs:     yamlConfig.Snow.BlacklistIDs,
			BlacklistModels:  yamlConfig.Snow.BlacklistModels,
			MultiPassShader:  yamlConfig.Snow.MultiPassShader,
			SinglePassShader: yamlConfig.Snow.SinglePassShader,
		},
		LOD: LODData{
			MaxPathLength: yamlConfig.LOD.MaxPathLength,
			Limits:        yamlConfig.LOD.Limits,
		},
		Store: StoreData{Path: yamlConfig.Store.Path},
		Saves: SavesData{
			Dir:       yamlConfig.Saves.Dir,
			Extension: yamlConfig.Saves.Extension,
		},
	}

	if len(yamlConfig.Seasons) > 0 {
		config.Seasons = make(map[string]SeasonData, len(yamlConfig.Seasons))
		for name, s := range yamlConfig.Seasons {
			config.Seasons[name] = SeasonData{
				SwapGrass:     s.SwapGrass,
				SwapLandscape: s.SwapLandscape,
				SwapObjects:   s.SwapObjects,
				LOD: SeasonLODData{
					Terrain: s.LOD.Terrain,
					Object:  s.LOD.Object,
					Tree:    s.LOD.Tree,
				},
				SnowShader: s.SnowShader,
			}
		}
	}

	if yamlConfig.Management != nil {
		config.Management = &ManagementAPIData{
			Cert:       yamlConfig.Management.Cert,
			Key:        yamlConfig.Management.Key,
			Port:       yamlConfig.Management.Port,
			ListenAddr: yamlConfig.Management.ListenAddr,
			AuthToken:  yamlConfig.Management.AuthToken,
			EnableCORS: yamlConfig.Management.EnableCORS,
		}
	}

	config.ApplyDefaults()
	return config, nil
}

// GetSettings returns the season selection settings
func (y *YAMLProvider) GetSettings() (*SettingsData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Settings, nil
}

// GetSeasons returns the per-season switches
func (y *YAMLProvider) GetSeasons() (map[string]SeasonData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Seasons, nil
}

// GetManagement returns the management API configuration, nil when it is not configured
func (y *YAMLProvider) GetManagement() (*ManagementAPIData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Management, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags
type ConfigYAML struct {
	Debug      bool                  `yaml:"debug,omitempty"`
	Settings   SettingsYAML          `yaml:"settings"`
	Seasons    map[string]SeasonYAML `yaml:"seasons,omitempty"`
	Swaps      SwapsYAML             `yaml:"swaps,omitempty"`
	Snow       SnowYAML              `yaml:"snow,omitempty"`
	LOD        LODYAML               `yaml:"lod,omitempty"`
	Store      StoreYAML             `yaml:"store,omitempty"`
	Saves      SavesYAML             `yaml:"saves,omitempty"`
	Management *ManagementAPIYAML    `yaml:"management,omitempty"`
}

type SettingsYAML struct {
	SeasonType string            `yaml:"season_type"`
	Calendar   map[string]string `yaml:"calendar,omitempty"`
	StartMonth string            `yaml:"start_month,omitempty"`
	StartDay   int               `yaml:"start_day,omitempty"`
}

type SeasonYAML struct {
	SwapGrass     bool          `yaml:"swap_grass"`
	SwapLandscape bool          `yaml:"swap_landscape"`
	SwapObjects   bool          `yaml:"swap_objects"`
	LOD           SeasonLODYAML `yaml:"lod"`
	SnowShader    bool          `yaml:"snow_shader"`
}

type SeasonLODYAML struct {
	Terrain bool `yaml:"terrain"`
	Object  bool `yaml:"object"`
	Tree    bool `yaml:"tree"`
}

type SwapsYAML struct {
	Dir        string `yaml:"dir"`
	Candidates string `yaml:"candidates,omitempty"`
}

type SnowYAML struct {
	BlacklistIDs     []string `yaml:"blacklist_ids,omitempty"`
	BlacklistModels  []string `yaml:"blacklist_models,omitempty"`
	MultiPassShader  string   `yaml:"multipass_shader,omitempty"`
	SinglePassShader string   `yaml:"singlepass_shader,omitempty"`
}

type LODYAML struct {
	MaxPathLength int            `yaml:"max_path_length,omitempty"`
	Limits        map[string]int `yaml:"limits,omitempty"`
}

type StoreYAML struct {
	Path string `yaml:"path"`
}

type SavesYAML struct {
	Dir       string `yaml:"dir,omitempty"`
	Extension string `yaml:"extension,omitempty"`
}

type ManagementAPIYAML struct {
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	ListenAddr string `yaml:"listen_addr,omitempty"`
	AuthToken  string `yaml:"auth_token,omitempty"`
	EnableCORS bool   `yaml:"enable_cors,omitempty"`
}
