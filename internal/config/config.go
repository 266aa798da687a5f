// Package config loads tracker configuration.
// Configuration is resolved from (highest to lowest priority):
// 1. QLOG_DATA_DIR environment variable (data dir only)
// 2. config.yaml inside the data dir
// 3. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDirName is the data directory created under the user's home.
const DefaultDirName = ".gamified-checklist"

// EnvDataDir overrides the data directory when set.
const EnvDataDir = "QLOG_DATA_DIR"

// Config holds all tracker configuration.
type Config struct {
	// DataDir is where the snapshot, backup and config files live.
	DataDir string `yaml:"data_dir"`

	// Curve holds the level threshold curve constants.
	Curve CurveConfig `yaml:"curve"`

	// XPOverrides replaces individual XP table entries, keyed
	// "kind/difficulty" (e.g. "quest/hard": 80).
	XPOverrides map[string]int `yaml:"xp_overrides"`
}

// CurveConfig parameterizes threshold(L) = ceil(coef * (L-1)^exp).
// Balancing changes happen here, never at call sites.
type CurveConfig struct {
	Coef float64 `yaml:"coef"`
	Exp  float64 `yaml:"exp"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Curve: CurveConfig{Coef: 50, Exp: 2},
	}
}

// DefaultDataDir returns the default profile location under the home dir.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Load resolves the data dir, then merges config.yaml from it if present.
// A missing config file is not an error.
func Load() (Config, error) {
	cfg := Default()

	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		var err error
		dir, err = DefaultDataDir()
		if err != nil {
			return cfg, err
		}
	}
	cfg.DataDir = dir

	return loadFile(cfg, filepath.Join(dir, "config.yaml"))
}

// LoadFrom is Load with an explicit data dir, used by tests and flags.
func LoadFrom(dir string) (Config, error) {
	cfg := Default()
	cfg.DataDir = dir
	return loadFile(cfg, filepath.Join(dir, "config.yaml"))
}

func loadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.DataDir != "" {
		cfg.DataDir = file.DataDir
	}
	if file.Curve.Coef > 0 {
		cfg.Curve.Coef = file.Curve.Coef
	}
	if file.Curve.Exp > 0 {
		cfg.Curve.Exp = file.Curve.Exp
	}
	if len(file.XPOverrides) > 0 {
		cfg.XPOverrides = file.XPOverrides
	}
	return cfg, nil
}
