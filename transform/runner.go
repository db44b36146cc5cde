// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/stacklok/remap/config"
	"github.com/stacklok/remap/functions"
	"github.com/stacklok/remap/logging"
	"github.com/stacklok/remap/manifest"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
)

// Runner compiles and executes programs. It is safe for concurrent use.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	registry   *remap.Registry
	decoder    *manifest.Decoder
	errorField path.Path
}

// Option configures a Runner.
type Option func(*Runner)

// WithConfig sets the runner configuration. The default is config.Default.
func WithConfig(cfg *config.Config) Option {
	return func(r *Runner) {
		r.cfg = cfg
	}
}

// WithLogger sets the logger. The default is built from the logging
// section of the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRegistry sets the function registry used to compile calls. The
// default is DefaultRegistry for the configuration.
func WithRegistry(registry *remap.Registry) Option {
	return func(r *Runner) {
		r.registry = registry
	}
}

// New creates a Runner.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}

	if r.cfg == nil {
		r.cfg = config.Default()
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	if r.logger == nil {
		logOpts, err := r.cfg.LoggingOptions()
		if err != nil {
			return nil, fmt.Errorf("invalid logging configuration: %w", err)
		}
		r.logger = logging.New(logOpts...)
	}

	if r.registry == nil {
		registry, err := DefaultRegistry(r.cfg)
		if err != nil {
			return nil, err
		}
		r.registry = registry
	}

	field, err := path.Parse(r.cfg.Errors.Field)
	if err != nil {
		return nil, fmt.Errorf("invalid error field: %w", err)
	}
	if field.IsRoot() {
		return nil, fmt.Errorf("invalid error field: %w: root is not a field", path.ErrInvalidPath)
	}
	r.errorField = field
	r.decoder = manifest.NewDecoder(r.registry)

	return r, nil
}

// DefaultRegistry returns the built-in function library minus the
// functions disabled in cfg. The cel function uses an engine bounded by
// the cel section of cfg.
func DefaultRegistry(cfg *config.Config) (*remap.Registry, error) {
	all := functions.All(functions.WithCELEngine(cfg.CELEngine()))

	known := make([]string, 0, len(all))
	enabled := make([]remap.Function, 0, len(all))
	for _, fn := range all {
		known = append(known, fn.Identifier())
		if cfg.FunctionEnabled(fn.Identifier()) {
			enabled = append(enabled, fn)
		}
	}
	for _, ident := range cfg.Functions.Disabled {
		if !slices.Contains(known, ident) {
			return nil, fmt.Errorf("cannot disable function: %w: %q", remap.ErrUnknownFunction, ident)
		}
	}

	return remap.NewRegistry(enabled...)
}

// Config returns the runner configuration.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// Registry returns the function registry.
func (r *Runner) Registry() *remap.Registry {
	return r.registry
}

// Program is a compiled manifest.
type Program struct {
	name    string
	program *remap.Program
}

// Name returns the manifest name, which may be empty.
func (p *Program) Name() string {
	return p.name
}

// TypeDef returns the type the program resolves to.
func (p *Program) TypeDef() remap.TypeDef {
	return p.program.TypeDef()
}

// Compile decodes and compiles a YAML manifest.
func (r *Runner) Compile(data []byte, opts ...remap.CompileOption) (*Program, error) {
	m, err := r.decoder.Decode(data)
	if err != nil {
		return nil, err
	}
	program, err := m.Compile(opts...)
	if err != nil {
		return nil, err
	}

	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "compiled program",
		slog.String("program", m.Name),
		slog.Int("expressions", program.Len()),
		slog.String("type", program.TypeDef().String()),
	)
	return &Program{name: m.Name, program: program}, nil
}
