package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// envOverrides lists the settings that may be overridden from the
// environment. Zero values mean "not set".
type envOverrides struct {
	Host     string `env:"LAUNCHDASH_HOST"`
	Port     int    `env:"LAUNCHDASH_PORT"`
	DataPath string `env:"LAUNCHDASH_DATA_PATH"`
	LogLevel string `env:"LAUNCHDASH_LOG_LEVEL"`
}

func applyEnv(ctx context.Context, cfg *Config) error {
	var o envOverrides
	if err := envconfig.Process(ctx, &o); err != nil {
		return err
	}
	if o.Host != "" {
		cfg.Server.Host = o.Host
	}
	if o.Port != 0 {
		cfg.Server.HTTPPort = o.Port
	}
	if o.DataPath != "" {
		cfg.Data.Path = o.DataPath
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	return nil
}
