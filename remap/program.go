// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"errors"
	"fmt"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/value"
)

// TypeConstraint restricts the type a program may resolve to.
type TypeConstraint struct {
	// AllowAny disables the check entirely.
	AllowAny bool
	// TypeDef is the widest type the program may resolve to.
	TypeDef TypeDef
}

// AnyType is the default constraint: any program is accepted.
var AnyType = TypeConstraint{AllowAny: true}

type compileConfig struct {
	constraint TypeConstraint
	state      *CompilerState
}

// CompileOption configures Compile.
type CompileOption func(*compileConfig)

// WithConstraint sets the type the program must resolve to.
func WithConstraint(c TypeConstraint) CompileOption {
	return func(cfg *compileConfig) {
		cfg.constraint = c
	}
}

// WithCompilerState seeds compilation with existing type facts, for
// example the known shape of incoming events.
func WithCompilerState(state *CompilerState) CompileOption {
	return func(cfg *compileConfig) {
		cfg.state = state
	}
}

// Program is a compiled, immutable sequence of expressions. It is safe for
// concurrent use provided every execution supplies its own ProgramState
// and record.
type Program struct {
	expressions []Expression
	typeDef     TypeDef
}

// Compile type-checks exprs in order and returns a program. The program
// type is that of the last expression, made fallible if any expression is
// fallible. An empty program resolves to null.
func Compile(exprs []Expression, opts ...CompileOption) (*Program, error) {
	cfg := &compileConfig{constraint: AnyType}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.state == nil {
		cfg.state = NewCompilerState()
	}

	td := TypeDef{Kind: value.KindNull}
	fallible := false
	for _, expr := range exprs {
		td = expr.TypeDef(cfg.state)
		UpdateState(expr, cfg.state)
		fallible = fallible || td.Fallible
	}
	td.Fallible = fallible

	if !cfg.constraint.AllowAny {
		want := cfg.constraint.TypeDef
		if td.Fallible && !want.Fallible {
			return nil, NewCompileError("", "", fmt.Errorf("%w: expected %s, got %s", ErrFallibleProgram, want, td))
		}
		if !want.Contains(td.IntoFallible(want.Fallible)) {
			return nil, NewCompileError("", "", fmt.Errorf("%w: expected %s, got %s", ErrResolvesTo, want, td))
		}
	}

	return &Program{
		expressions: append([]Expression(nil), exprs...),
		typeDef:     td,
	}, nil
}

// TypeDef returns the aggregate type of the program.
func (p *Program) TypeDef() TypeDef {
	return p.typeDef
}

// Len returns the number of top-level expressions.
func (p *Program) Len() int {
	return len(p.expressions)
}

// Execute runs the program against obj and returns the value of the last
// expression. Mutations committed before a failing expression are kept.
func (p *Program) Execute(state *ProgramState, obj object.Object) (value.Value, error) {
	result := value.Null()
	for _, expr := range p.expressions {
		v, err := expr.Execute(state, obj)
		if err != nil {
			return value.Value{}, asRuntimeError(err)
		}
		result = v
	}
	return result, nil
}

func asRuntimeError(err error) error {
	if rtErr, ok := err.(*RuntimeError); ok {
		return rtErr
	}
	var inner *RuntimeError
	if errors.As(err, &inner) {
		return &RuntimeError{Function: inner.Function, err: err}
	}
	return &RuntimeError{err: err}
}
