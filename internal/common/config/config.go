package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ============================================================
// Configuration
// ============================================================

// EnvPrefix prefixes every environment override, e.g. FORMWORK_PORT.
const EnvPrefix = "FORMWORK_"

// DefaultFile is read when Load is given no explicit path and it exists.
const DefaultFile = "formwork.yaml"

type Config struct {
	Port         string `koanf:"port"`
	Environment  string `koanf:"env"`
	ReadTimeout  int    `koanf:"read_timeout"`
	WriteTimeout int    `koanf:"write_timeout"`

	DBPath     string `koanf:"db_path"`
	StorageDir string `koanf:"storage_dir"`
	LogLevel   string `koanf:"log_level"`
	// SessionTTL is how long, in minutes, an analysed plan stays available.
	SessionTTL int `koanf:"session_ttl"`
	// SnapTolerance is the distance in millimetres under which side ends
	// are joined when plan loops are assembled.
	SnapTolerance float64 `koanf:"snap_tolerance"`
}

func defaults() map[string]any {
	return map[string]any{
		"port":           "3000",
		"env":            "development",
		"read_timeout":   10,
		"write_timeout":  10,
		"db_path":        "data/db/formwork.db",
		"storage_dir":    "data/plans",
		"log_level":      "info",
		"session_ttl":    30,
		"snap_tolerance": 1.0,
	}
}

// Load reads configuration with precedence env > file > defaults. An empty
// path falls back to DefaultFile when present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// FORMWORK_READ_TIMEOUT -> read_timeout
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session_ttl must be positive, got %d", cfg.SessionTTL)
	}
	if cfg.SnapTolerance < 0 {
		return nil, fmt.Errorf("snap_tolerance must not be negative, got %g", cfg.SnapTolerance)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
