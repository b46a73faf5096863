package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSettings() (*SettingsData, error)
	GetSeasons() (map[string]SeasonData, error)
	GetManagement() (*ManagementAPIData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Debug      bool                  `json:"debug,omitempty"`
	Settings   SettingsData          `json:"settings"`
	Seasons    map[string]SeasonData `json:"seasons,omitempty"`
	Swaps      SwapsData             `json:"swaps"`
	Snow       SnowData              `json:"snow"`
	LOD        LODData               `json:"lod"`
	Store      StoreData             `json:"store"`
	Saves      SavesData             `json:"saves"`
	Management *ManagementAPIData    `json:"management,omitempty"`
}

// SettingsData selects how the season is decided.
type SettingsData struct {
	// SeasonType is "disabled", "calendar" or a season name for a permanent season.
	SeasonType string `json:"season_type"`
	// Calendar maps month names to season names. Months not listed keep their default season.
	Calendar map[string]string `json:"calendar,omitempty"`
	// StartMonth and StartDay anchor the in-game date used by the calendar.
	StartMonth string `json:"start_month,omitempty"`
	StartDay   int    `json:"start_day,omitempty"`
}

// SeasonData holds the per-season switches. Seasons are keyed by name or suffix.
type SeasonData struct {
	SwapGrass     bool          `json:"swap_grass"`
	SwapLandscape bool          `json:"swap_landscape"`
	SwapObjects   bool          `json:"swap_objects"`
	LOD           SeasonLODData `json:"lod"`
	SnowShader    bool          `json:"snow_shader"`
}

// SeasonLODData enables seasonal LOD per LOD type.
type SeasonLODData struct {
	Terrain bool `json:"terrain"`
	Object  bool `json:"object"`
	Tree    bool `json:"tree"`
}

// SwapsData locates the swap source files.
type SwapsData struct {
	Dir        string `json:"dir"`
	Candidates string `json:"candidates,omitempty"`
}

// SnowData configures the snow shader.
type SnowData struct {
	BlacklistIDs     []string `json:"blacklist_ids,omitempty"`
	BlacklistModels  []string `json:"blacklist_models,omitempty"`
	MultiPassShader  string   `json:"multipass_shader,omitempty"`
	SinglePassShader string   `json:"singlepass_shader,omitempty"`
}

// LODData bounds generated LOD file names.
type LODData struct {
	MaxPathLength int `json:"max_path_length,omitempty"`
	// Limits bounds single categories by name, e.g. terrain_mesh.
	Limits map[string]int `json:"limits,omitempty"`
}

// StoreData locates the persisted state database.
type StoreData struct {
	Path string `json:"path"`
}

// SavesData locates the host's save files for record cleanup.
type SavesData struct {
	Dir       string `json:"dir,omitempty"`
	Extension string `json:"extension,omitempty"`
}

type ManagementAPIData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	AuthToken  string `json:"auth_token,omitempty"`
	EnableCORS bool   `json:"enable_cors,omitempty"`
}
