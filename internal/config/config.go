// Package config loads qaflow orchestrator settings. Priority: environment
// variables > local config > global config > defaults. Workspace semantics
// (names, commands) are fixed in code; config only carries operational knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the orchestrator's operational knobs.
type Configuration struct {
	// NpmCmd and NpxCmd point at the package manager toolchain.
	NpmCmd string `koanf:"npm_cmd" validate:"required"`
	NpxCmd string `koanf:"npx_cmd" validate:"required"`
	// BootstrapArgs are the npm arguments for the dependency bootstrap task.
	BootstrapArgs []string `koanf:"bootstrap_args"`
	// MaxRetries bounds orchestrator-level retries. The retry policy
	// allows at most one, so 0 disables and 1 enables it.
	MaxRetries int `koanf:"max_retries" validate:"min=0,max=1"`
	// StateDir holds run history.
	StateDir string `koanf:"state_dir" validate:"required"`
	// HistoryMax caps retained history entries.
	HistoryMax int `koanf:"history_max" validate:"min=0"`
	// ShowProgress enables spinners during installs.
	ShowProgress bool `koanf:"show_progress"`
	// Timeout in seconds for a test invocation; 0 disables it and leaves
	// timeouts to CI supervision and the frameworks' per-test limits.
	Timeout int `koanf:"timeout" validate:"omitempty,min=1,max=604800"`
}

// Load reads configuration from defaults, the global config, an optional
// local config, and QAFLOW_* environment variables, in ascending priority.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(homeDir, ".qaflow", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	k.Load(env.Provider("QAFLOW_", ".", envTransform), nil)

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: QAFLOW_MAX_RETRIES -> max_retries
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "QAFLOW_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
