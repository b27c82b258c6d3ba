// Package config loads this server's JSON configuration file, generalized
// from the teacher's apps/rtcmlogger/config.Config (same
// open-file/read/json.Unmarshal shape, extended from one log directory to
// the full set of settings this server needs).
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Config is the complete set of settings loaded from the JSON config file,
// each overridable by an environment variable of the same name in upper
// case with a HAMCLOCKD_ prefix (spec.md §7: "environment overrides take
// precedence over the file").
type Config struct {
	ListenAddress      string `json:"listen_address"`
	ArtifactDirectory  string `json:"artifact_directory"`
	BackgroundMapPath  string `json:"background_map_path"`
	EventLogDirectory  string `json:"event_log_directory"`
	PathPrefix         string `json:"path_prefix"`
}

// Default returns the settings this server runs with when no config file
// is supplied, matching the teacher's own default-to-"." directory
// convention.
func Default() Config {
	return Config{
		ListenAddress:     ":9086", // spec.md §6 default listening port
		ArtifactDirectory: ".",
		PathPrefix:        "/ham/HamClock",
	}
}

// Load reads configFile (if non-empty) over Default(), then applies any
// HAMCLOCKD_-prefixed environment overrides.
func Load(configFile string) (Config, error) {
	cfg := Default()

	if configFile != "" {
		file, err := os.Open(configFile)
		if err != nil {
			return cfg, fmt.Errorf("opening config file %s: %w", configFile, err)
		}
		defer file.Close()

		if err := readInto(&cfg, file); err != nil {
			return cfg, err
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func readInto(cfg *Config, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HAMCLOCKD_LISTEN_ADDRESS"); v != "" {
		cfg.ListenAddress = v
	}
	if v := os.Getenv("HAMCLOCKD_ARTIFACT_DIRECTORY"); v != "" {
		cfg.ArtifactDirectory = v
	}
	if v := os.Getenv("HAMCLOCKD_BACKGROUND_MAP_PATH"); v != "" {
		cfg.BackgroundMapPath = v
	}
	if v := os.Getenv("HAMCLOCKD_EVENT_LOG_DIRECTORY"); v != "" {
		cfg.EventLogDirectory = v
	}
	if v := os.Getenv("HAMCLOCKD_PATH_PREFIX"); v != "" {
		cfg.PathPrefix = v
	}
}
