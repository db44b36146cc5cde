// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// Literal is a constant value.
type Literal struct {
	value value.Value
}

var _ remap.LiteralExpression = (*Literal)(nil)

// NewLiteral returns a literal node for v.
func NewLiteral(v value.Value) *Literal {
	return &Literal{value: v}
}

// Literal implements remap.LiteralExpression.
func (l *Literal) Literal() value.Value { return l.value }

// Execute implements remap.Expression.
func (l *Literal) Execute(*remap.ProgramState, object.Object) (value.Value, error) {
	return l.value, nil
}

// TypeDef implements remap.Expression.
func (l *Literal) TypeDef(*remap.CompilerState) remap.TypeDef {
	return remap.TypeDef{Kind: l.value.Kind()}
}

// Path reads a field of the record. A missing field reads as null.
type Path struct {
	path path.Path
}

var _ remap.PathExpression = (*Path)(nil)

// NewPath returns a node reading p.
func NewPath(p path.Path) *Path {
	return &Path{path: p}
}

// Path implements remap.PathExpression.
func (p *Path) Path() path.Path { return p.path }

// Execute implements remap.Expression.
func (p *Path) Execute(_ *remap.ProgramState, obj object.Object) (value.Value, error) {
	v, ok := obj.Get(p.path)
	if !ok {
		return value.Null(), nil
	}
	return v, nil
}

// TypeDef implements remap.Expression.
func (p *Path) TypeDef(state *remap.CompilerState) remap.TypeDef {
	if td, ok := state.PathType(p.path); ok {
		return td
	}
	return remap.TypeDef{Optional: true, Kind: value.KindAny}
}

// Variable reads a program variable. An unbound variable reads as null.
type Variable struct {
	name string
}

// NewVariable returns a node reading the variable name.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Execute implements remap.Expression.
func (v *Variable) Execute(state *remap.ProgramState, _ object.Object) (value.Value, error) {
	val, ok := state.Variable(v.name)
	if !ok {
		return value.Null(), nil
	}
	return val, nil
}

// TypeDef implements remap.Expression.
func (v *Variable) TypeDef(state *remap.CompilerState) remap.TypeDef {
	if td, ok := state.VariableType(v.name); ok {
		return td
	}
	return remap.TypeDef{Optional: true, Kind: value.KindAny}
}

// Noop does nothing and returns null.
type Noop struct{}

// Execute implements remap.Expression.
func (Noop) Execute(*remap.ProgramState, object.Object) (value.Value, error) {
	return value.Null(), nil
}

// TypeDef implements remap.Expression.
func (Noop) TypeDef(*remap.CompilerState) remap.TypeDef {
	return remap.TypeDef{Optional: true, Kind: value.KindAny}
}
