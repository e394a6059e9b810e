// Package config loads the YAML configuration for the innopage tools.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sushant-115/innopage/core/tablespace"
	"github.com/sushant-115/innopage/pkg/logger"
	"github.com/sushant-115/innopage/pkg/telemetry"
	"gopkg.in/yaml.v3"
)

var ErrNoTablespace = errors.New("no tablespace path configured")

// TablespaceConfig selects the file to inspect.
type TablespaceConfig struct {
	Path       string `yaml:"path"`
	CachePages int    `yaml:"cache_pages"`
}

// Config is the root of the YAML file.
type Config struct {
	Logger     logger.Config    `yaml:"logger"`
	Telemetry  telemetry.Config `yaml:"telemetry"`
	Tablespace TablespaceConfig `yaml:"tablespace"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logger: logger.Config{
			Level:      "info",
			Format:     "console",
			OutputFile: "stderr",
		},
		Telemetry: telemetry.Config{
			ServiceName:      logger.ServiceName,
			TraceSampleRatio: 1.0,
		},
		Tablespace: TablespaceConfig{
			CachePages: tablespace.DefaultCachePages,
		},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings a command needs before it starts.
func (c Config) Validate() error {
	if c.Tablespace.Path == "" {
		return ErrNoTablespace
	}
	if c.Tablespace.CachePages < 0 {
		return fmt.Errorf("tablespace.cache_pages must not be negative, got %d", c.Tablespace.CachePages)
	}
	return nil
}
