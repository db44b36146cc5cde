// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"slices"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// OnlyFields implements only_fields(1, ..., 16).
type OnlyFields struct{}

// Identifier implements remap.Function.
func (OnlyFields) Identifier() string { return "only_fields" }

// Parameters implements remap.Function.
func (OnlyFields) Parameters() []remap.Parameter { return pathParameters() }

// Compile implements remap.Function. Every argument must be a path.
func (OnlyFields) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	paths, err := pathArguments(args)
	if err != nil {
		return nil, err
	}
	return &onlyFieldsFn{paths: paths}, nil
}

type onlyFieldsFn struct {
	paths []path.Path
}

func (f *onlyFieldsFn) retained(p path.Path) bool {
	return slices.ContainsFunc(f.paths, p.StartsWith)
}

// Execute drops every leaf outside the retained paths. An array element
// in front of a retained element is replaced by null rather than removed,
// so the retained element keeps its index and a second call is a no-op.
func (f *onlyFieldsFn) Execute(_ *remap.ProgramState, obj object.Object) (value.Value, error) {
	var kept, dropped []path.Path
	for _, p := range obj.Paths() {
		if f.retained(p) {
			kept = append(kept, p)
		} else {
			dropped = append(dropped, p)
		}
	}

	pinned := pinnedIndices(kept)
	var remove []path.Path
	for _, p := range dropped {
		if slot, ok := pinnedSlot(p, pinned, kept); ok {
			_ = obj.Set(slot, value.Null())
			continue
		}
		remove = append(remove, p)
	}
	removeAll(obj, remove, true)
	return value.Null(), nil
}

func (*onlyFieldsFn) TypeDef(*remap.CompilerState) remap.TypeDef {
	return nullType
}

// UpdateState keeps only the facts recorded at or below a retained path.
func (f *onlyFieldsFn) UpdateState(state *remap.CompilerState) {
	state.RetainPaths(f.retained)
}

// pinnedIndices maps each array holding a kept leaf to the highest index
// of such an element.
func pinnedIndices(kept []path.Path) map[string]int {
	pinned := make(map[string]int)
	for _, p := range kept {
		segs := p.Segments()
		for i, seg := range segs {
			if !seg.IsIndex() {
				continue
			}
			key := path.New(segs[:i]...).String()
			if highest, ok := pinned[key]; !ok || seg.IndexValue() > highest {
				pinned[key] = seg.IndexValue()
			}
		}
	}
	return pinned
}

// pinnedSlot returns the array element of p that must be nulled to drop p
// without moving a kept element, if there is one.
func pinnedSlot(p path.Path, pinned map[string]int, kept []path.Path) (path.Path, bool) {
	segs := p.Segments()
	for i, seg := range segs {
		if !seg.IsIndex() {
			continue
		}
		highest, ok := pinned[path.New(segs[:i]...).String()]
		if !ok || seg.IndexValue() > highest {
			return path.Path{}, false
		}
		slot := path.New(segs[:i+1]...)
		holdsKept := slices.ContainsFunc(kept, func(k path.Path) bool { return k.StartsWith(slot) })
		if !holdsKept {
			return slot, true
		}
	}
	return path.Path{}, false
}
