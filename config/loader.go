// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"

	"github.com/stacklok/remap/env"
	"github.com/stacklok/remap/logging"
)

// Environment variables consulted by Loader.
const (
	EnvConfigPath  = "REMAP_CONFIG"
	EnvLogLevel    = "REMAP_LOG_LEVEL"
	EnvLogFormat   = "REMAP_LOG_FORMAT"
	EnvErrorPolicy = "REMAP_ERROR_POLICY"
)

// XDGConfigFile is the path searched for below each XDG configuration
// directory.
const XDGConfigFile = "remap/config.yaml"

// Loader discovers, reads and overrides configuration.
type Loader struct {
	env    env.Reader
	search func(relPath string) (string, error)
}

// NewLoader creates a Loader reading the environment through reader.
func NewLoader(reader env.Reader) *Loader {
	return &Loader{env: reader, search: xdg.SearchConfigFile}
}

// Load reads configuration using the process environment.
func Load() (*Config, error) {
	return NewLoader(&env.OSReader{}).Load()
}

// LoadFile reads and parses the configuration file at path.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 - the path comes from the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the configuration file Load would read, or "" when none
// exists and defaults apply.
func (l *Loader) Path() string {
	if p, ok := l.env.LookupEnv(EnvConfigPath); ok && p != "" {
		return p
	}
	p, err := l.search(XDGConfigFile)
	if err != nil {
		return ""
	}
	return p
}

// Load discovers the configuration file, parses it and applies
// environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	if p := l.Path(); p != "" {
		var err error
		if cfg, err = LoadFile(p); err != nil {
			return nil, err
		}
	}
	if err := l.applyOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) applyOverrides(cfg *Config) error {
	if v, ok := l.env.LookupEnv(EnvLogLevel); ok {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.Logging.Level = strings.ToLower(level.String())
	}
	if v, ok := l.env.LookupEnv(EnvLogFormat); ok {
		format, err := logging.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogFormat, err)
		}
		cfg.Logging.Format = format.String()
	}
	if v, ok := l.env.LookupEnv(EnvErrorPolicy); ok {
		policy, err := ParseErrorPolicy(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvErrorPolicy, err)
		}
		cfg.Errors.Policy = policy
	}
	return nil
}
