package config

import "fmt"

const (
	DefaultSeasonType     = "calendar"
	DefaultSwapsDir       = "Data/Seasons"
	DefaultStorePath      = "seasonswap.db"
	DefaultSaveExtension  = ".ess"
	DefaultManagementPort = 8081
	DefaultListenAddr     = "127.0.0.1"
	DefaultMaxPathLength  = 260
)

// ApplyDefaults fills unset values. Seasons without an entry keep every switch off.
func (c *ConfigData) ApplyDefaults() {
	if c.Settings.SeasonType == "" {
		c.Settings.SeasonType = DefaultSeasonType
	}
	if c.Swaps.Dir == "" {
		c.Swaps.Dir = DefaultSwapsDir
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Saves.Extension == "" {
		c.Saves.Extension = DefaultSaveExtension
	}
	if c.LOD.MaxPathLength <= 0 {
		c.LOD.MaxPathLength = DefaultMaxPathLength
	}
	if c.Management != nil {
		if c.Management.Port == 0 {
			c.Management.Port = DefaultManagementPort
		}
		if c.Management.ListenAddr == "" {
			c.Management.ListenAddr = DefaultListenAddr
		}
	}
}

// Validate reports settings that cannot work together.
func (c *ConfigData) Validate() error {
	if c.Management != nil {
		if c.Management.Port < 0 || c.Management.Port > 65535 {
			return fmt.Errorf("management port %d out of range", c.Management.Port)
		}
		if (c.Management.Cert == "") != (c.Management.Key == "") {
			return fmt.Errorf("management cert and key must be set together")
		}
	}
	if c.Settings.StartDay < 0 || c.Settings.StartDay > 31 {
		return fmt.Errorf("start_day %d out of range", c.Settings.StartDay)
	}
	return nil
}
