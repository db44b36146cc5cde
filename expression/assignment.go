// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// Assignment writes the result of an expression to a record path or a
// variable and yields the written value.
type Assignment struct {
	path     path.Path
	variable string
	isPath   bool
	value    remap.Expression
}

// NewPathAssignment returns a node writing expr to the record at p.
func NewPathAssignment(p path.Path, expr remap.Expression) *Assignment {
	return &Assignment{path: p, isPath: true, value: expr}
}

// NewVariableAssignment returns a node binding expr to the variable name.
func NewVariableAssignment(name string, expr remap.Expression) *Assignment {
	return &Assignment{variable: name, value: expr}
}

// Execute implements remap.Expression.
func (a *Assignment) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	v, err := a.value.Execute(state, obj)
	if err != nil {
		return value.Value{}, err
	}
	if !a.isPath {
		state.SetVariable(a.variable, v)
		return v, nil
	}
	if err := obj.Set(a.path, v); err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// TypeDef implements remap.Expression.
func (a *Assignment) TypeDef(state *remap.CompilerState) remap.TypeDef {
	td := a.value.TypeDef(state)
	if !a.isPath {
		return td
	}
	return td.IntoFallible(td.Fallible || !a.infallibleTarget(td))
}

// UpdateState implements remap.StateUpdater and records the written type
// so later reads of the target see it.
func (a *Assignment) UpdateState(state *remap.CompilerState) {
	stored := a.value.TypeDef(state).IntoFallible(false)
	remap.UpdateState(a.value, state)
	if !a.isPath {
		state.SetVariableType(a.variable, stored)
		return
	}
	state.SetPathType(a.path, stored)
}

// infallibleTarget reports whether writing a value of type td to the
// target can never fail. Only top-level fields always exist as a slot in
// the record; the root accepts maps only.
func (a *Assignment) infallibleTarget(td remap.TypeDef) bool {
	switch {
	case a.path.IsRoot():
		return value.KindMap.Contains(td.Kind) && !td.Kind.IsEmpty()
	case a.path.Len() == 1:
		return !a.path.Segment(0).IsIndex()
	default:
		return false
	}
}
