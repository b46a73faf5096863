package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SEASONSWAP_"

type envOverrides struct {
	SeasonType string `env:"SEASON_TYPE"`
	StorePath  string `env:"STORE_PATH"`
	SwapsDir   string `env:"SWAPS_DIR"`
	ListenAddr string `env:"LISTEN_ADDR"`
	Port       int    `env:"PORT"`
	AuthToken  string `env:"AUTH_TOKEN"`
	Debug      bool   `env:"DEBUG"`
}

// ApplyEnv overrides configuration values from SEASONSWAP_* environment variables.
func ApplyEnv(cfg *ConfigData) error {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix})
}

// ApplyEnvFrom is ApplyEnv reading from the given environment instead of the process's.
func ApplyEnvFrom(cfg *ConfigData, environ map[string]string) error {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func applyEnv(cfg *ConfigData, opts env.Options) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parsing environment overrides: %w", err)
	}

	if o.SeasonType != "" {
		cfg.Settings.SeasonType = o.SeasonType
	}
	if o.StorePath != "" {
		cfg.Store.Path = o.StorePath
	}
	if o.SwapsDir != "" {
		cfg.Swaps.Dir = o.SwapsDir
	}
	if o.ListenAddr != "" || o.Port != 0 || o.AuthToken != "" {
		if cfg.Management == nil {
			cfg.Management = &ManagementAPIData{}
		}
		if o.ListenAddr != "" {
			cfg.Management.ListenAddr = o.ListenAddr
		}
		if o.Port != 0 {
			cfg.Management.Port = o.Port
		}
		if o.AuthToken != "" {
			cfg.Management.AuthToken = o.AuthToken
		}
	}
	cfg.Debug = cfg.Debug || o.Debug

	return nil
}
