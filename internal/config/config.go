// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads default settings for the treeconv command.
//
// Settings are read from an optional TOML file:
//
//	format = "JSON"
//	verbose = true
//	allow_comments = false
//
// and then overridden by the environment variables TREECONV_FORMAT,
// TREECONV_VERBOSE, and TREECONV_ALLOW_COMMENTS.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings for a conversion.
type Config struct {
	// The name of the target format (XML, JSON, or PROPERTY).
	Format string `toml:"format"`

	// Enable debug logging.
	Verbose bool `toml:"verbose"`

	// Accept comments and trailing commas in JSON sources.
	AllowComments bool `toml:"allow_comments"`
}

// Load reads the configuration file at path, if path != "", and applies
// overrides from the environment.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %q: %w", path, err)
		}
	}
	cfg.Format = envOr("TREECONV_FORMAT", cfg.Format)
	cfg.Verbose = envBool("TREECONV_VERBOSE", cfg.Verbose)
	cfg.AllowComments = envBool("TREECONV_ALLOW_COMMENTS", cfg.AllowComments)
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
