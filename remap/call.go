// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/value"
)

// FunctionCall wraps the node compiled by a Function and tags its runtime
// errors with the function identifier.
type FunctionCall struct {
	ident string
	args  []Expression
	expr  Expression
}

// Identifier returns the name of the called function.
func (c *FunctionCall) Identifier() string {
	return c.ident
}

// Inner returns the node produced by the function's Compile.
func (c *FunctionCall) Inner() Expression {
	return c.expr
}

// Execute implements Expression.
func (c *FunctionCall) Execute(state *ProgramState, obj object.Object) (value.Value, error) {
	v, err := c.expr.Execute(state, obj)
	if err != nil {
		if rtErr, ok := err.(*RuntimeError); ok {
			return value.Value{}, rtErr
		}
		return value.Value{}, &RuntimeError{Function: c.ident, err: err}
	}
	return v, nil
}

// TypeDef implements Expression. When an argument changes the compiler
// state, the function is typed against the facts that hold before, between
// and after its arguments.
func (c *FunctionCall) TypeDef(state *CompilerState) TypeDef {
	return c.expr.TypeDef(c.argumentState(state))
}

// UpdateState implements StateUpdater. Arguments apply first, then the
// function itself.
func (c *FunctionCall) UpdateState(state *CompilerState) {
	for _, arg := range c.args {
		UpdateState(arg, state)
	}
	UpdateState(c.expr, state)
}

func (c *FunctionCall) argumentState(state *CompilerState) *CompilerState {
	var joined, current *CompilerState
	for _, arg := range c.args {
		u, ok := arg.(StateUpdater)
		if !ok {
			continue
		}
		if current == nil {
			joined, current = state.Clone(), state.Clone()
		}
		u.UpdateState(current)
		joined.Join(current)
	}
	if joined == nil {
		return state
	}
	return joined
}
