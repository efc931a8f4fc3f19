// Package config loads the bridge server configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config holds the bridge server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// EventBuffer is the per-subscriber snapshot queue capacity.
	EventBuffer int `yaml:"event_buffer"`
	// Durations maps media URIs to known durations, fed to the static
	// engine so load can resolve them.
	Durations map[string]time.Duration `yaml:"durations"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:        ":8790",
		EventBuffer: 64,
	}
}

// Load reads the YAML file at path, filling unset fields from Default.
// An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Addr == "" {
		cfg.Addr = Default().Addr
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = Default().EventBuffer
	}
	return cfg, nil
}
