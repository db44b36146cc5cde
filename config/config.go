// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/remap/cel"
	"github.com/stacklok/remap/logging"
)

// ErrUnknownPolicy is returned by ParseErrorPolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown error policy")

// ErrorPolicy decides what happens to a record whose program fails.
type ErrorPolicy string

const (
	// PolicyDrop discards the record.
	PolicyDrop ErrorPolicy = "drop"
	// PolicyForward passes the record on exactly as it arrived.
	PolicyForward ErrorPolicy = "forward"
	// PolicyAnnotate keeps the partially transformed record and writes the
	// error message to the configured field.
	PolicyAnnotate ErrorPolicy = "annotate"
)

// ParseErrorPolicy maps a configuration string to an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyDrop, PolicyForward, PolicyAnnotate:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Defaults.
const (
	DefaultErrorField  = "remap_error"
	DefaultConcurrency = 4
)

// Config is the runner configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Errors    ErrorsConfig    `yaml:"errors" json:"errors"`
	Functions FunctionsConfig `yaml:"functions" json:"functions"`
	CEL       CELConfig       `yaml:"cel" json:"cel"`
	Batch     BatchConfig     `yaml:"batch" json:"batch"`
}

// LoggingConfig selects the log format and minimum level.
type LoggingConfig struct {
	Format string `yaml:"format" json:"format"`
	Level  string `yaml:"level" json:"level"`
}

// ErrorsConfig selects how failed records are handled.
type ErrorsConfig struct {
	Policy ErrorPolicy `yaml:"policy" json:"policy"`
	// Field is where PolicyAnnotate writes the error message.
	Field string `yaml:"field" json:"field"`
}

// FunctionsConfig controls which built-in functions are available.
type FunctionsConfig struct {
	Disabled []string `yaml:"disabled" json:"disabled,omitempty"`
}

// CELConfig bounds CEL expressions compiled by the cel function.
type CELConfig struct {
	MaxExpressionLength int    `yaml:"max_expression_length" json:"max_expression_length"`
	CostLimit           uint64 `yaml:"cost_limit" json:"cost_limit"`
}

// BatchConfig controls batch processing.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Format: logging.FormatJSON.String(), Level: "info"},
		Errors:  ErrorsConfig{Policy: PolicyAnnotate, Field: DefaultErrorField},
		Functions: FunctionsConfig{
			Disabled: []string{},
		},
		CEL: CELConfig{
			MaxExpressionLength: cel.DefaultMaxExpressionLength,
			CostLimit:           cel.DefaultCostLimit,
		},
		Batch: BatchConfig{Concurrency: DefaultConcurrency},
	}
}

// Parse decodes a YAML configuration document. Settings the document omits
// keep their default values. An empty document yields Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if raw == nil {
		return cfg, nil
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against the configuration schema.
func (c *Config) Validate() error {
	return validateStruct(c)
}

// LoggingOptions converts the logging section into logger options.
func (c *Config) LoggingOptions() ([]logging.Option, error) {
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	return []logging.Option{logging.WithFormat(format), logging.WithLevel(level)}, nil
}

// FunctionEnabled reports whether the function ident is not disabled.
func (c *Config) FunctionEnabled(ident string) bool {
	return !slices.Contains(c.Functions.Disabled, ident)
}

// CELEngine returns an event engine bounded by the cel section.
func (c *Config) CELEngine() *cel.Engine {
	return cel.NewEventEngine().
		WithMaxExpressionLength(c.CEL.MaxExpressionLength).
		WithCostLimit(c.CEL.CostLimit)
}
