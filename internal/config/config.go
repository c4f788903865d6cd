// Package config loads tool configuration from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server and storage settings.
type Config struct {
	// Addr is the listen address for --serve.
	Addr string `yaml:"addr"`
	// MappingsDir is where per-account mapping files live.
	MappingsDir string `yaml:"mappings_dir"`
	// StaticDir optionally serves a web UI from disk.
	StaticDir string `yaml:"static_dir"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:        ":8080",
		MappingsDir: ".",
		LogLevel:    "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path, or a
// missing file at the default location, yields the defaults; an explicit
// path that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
