// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// Del implements del(1, ..., 16). Parents left empty are kept.
type Del struct{}

// Identifier implements remap.Function.
func (Del) Identifier() string { return "del" }

// Parameters implements remap.Function.
func (Del) Parameters() []remap.Parameter { return pathParameters() }

// Compile implements remap.Function.
func (Del) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	paths, err := pathArguments(args)
	if err != nil {
		return nil, err
	}
	return &delFn{paths: paths}, nil
}

type delFn struct {
	paths []path.Path
}

func (f *delFn) Execute(_ *remap.ProgramState, obj object.Object) (value.Value, error) {
	removeAll(obj, f.paths, false)
	return value.Null(), nil
}

func (*delFn) TypeDef(*remap.CompilerState) remap.TypeDef {
	return nullType
}

// UpdateState forgets every fact the removals may invalidate.
func (f *delFn) UpdateState(state *remap.CompilerState) {
	for _, p := range f.paths {
		state.ForgetPath(p)
	}
}

// Exists implements exists(path).
type Exists struct{}

// Identifier implements remap.Function.
func (Exists) Identifier() string { return "exists" }

// Parameters implements remap.Function.
func (Exists) Parameters() []remap.Parameter {
	return []remap.Parameter{{Keyword: "path", Accepts: remap.AnyValue, Required: true}}
}

// Compile implements remap.Function.
func (Exists) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	p, err := args.RequiredPath("path")
	if err != nil {
		return nil, err
	}
	return &existsFn{path: p}, nil
}

type existsFn struct {
	path path.Path
}

func (f *existsFn) Execute(_ *remap.ProgramState, obj object.Object) (value.Value, error) {
	_, ok := obj.Get(f.path)
	return value.Boolean(ok), nil
}

func (*existsFn) TypeDef(*remap.CompilerState) remap.TypeDef {
	return remap.TypeDef{Kind: value.KindBoolean}
}
