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

func executeString(expr remap.Expression, state *remap.ProgramState, obj object.Object) (string, error) {
	v, err := expr.Execute(state, obj)
	if err != nil {
		return "", err
	}
	return v.TryString()
}

// removeAll removes paths deepest and highest-indexed first, so removing
// an array element never shifts an index that is still to be removed.
func removeAll(obj object.Object, paths []path.Path, recursive bool) {
	sorted := slices.Clone(paths)
	slices.SortFunc(sorted, func(a, b path.Path) int { return b.Compare(a) })
	for _, p := range sorted {
		obj.Remove(p, recursive)
	}
}

var nullType = remap.TypeDef{Kind: value.KindNull}
