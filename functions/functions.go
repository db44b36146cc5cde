// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"strconv"

	"github.com/stacklok/remap/cel"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
)

// maxPathArguments is the arity of the variadic path functions.
const maxPathArguments = 16

type options struct {
	celEngine *cel.Engine
}

// Option configures the library returned by All.
type Option func(*options)

// WithCELEngine sets the engine the cel function compiles with. The
// engine must declare the event variable, see cel.NewEventEngine.
func WithCELEngine(engine *cel.Engine) Option {
	return func(o *options) {
		o.celEngine = engine
	}
}

// All returns every built-in function.
func All(opts ...Option) []remap.Function {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.celEngine == nil {
		o.celEngine = cel.NewEventEngine()
	}

	return []remap.Function{
		IPSubnet{},
		OnlyFields{},
		Del{},
		Exists{},
		ToString{},
		Upcase(),
		Downcase(),
		ParseTimestamp{},
		NewCEL(o.celEngine),
	}
}

// pathParameters declares the keywords "1" through "16", the first one
// required.
func pathParameters() []remap.Parameter {
	params := make([]remap.Parameter, maxPathArguments)
	for i := range params {
		params[i] = remap.Parameter{
			Keyword:  strconv.Itoa(i + 1),
			Accepts:  remap.AnyValue,
			Required: i == 0,
		}
	}
	return params
}

// pathArguments resolves the arguments declared by pathParameters.
func pathArguments(args *remap.ArgumentList) ([]path.Path, error) {
	first, err := args.RequiredPath("1")
	if err != nil {
		return nil, err
	}
	paths := []path.Path{first}
	for i := 2; i <= maxPathArguments; i++ {
		p, ok, err := args.OptionalPath(strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		if ok {
			paths = append(paths, p)
		}
	}
	return paths, nil
}
