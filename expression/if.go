// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// If evaluates one of two branches depending on a boolean condition.
// Without an else branch a false condition yields null, so the node is
// optional.
type If struct {
	condition remap.Expression
	then      remap.Expression
	otherwise remap.Expression
}

// NewIf returns a conditional node. otherwise may be nil.
func NewIf(condition, then, otherwise remap.Expression) *If {
	return &If{condition: condition, then: then, otherwise: otherwise}
}

// Execute implements remap.Expression.
func (i *If) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	c, err := i.condition.Execute(state, obj)
	if err != nil {
		return value.Value{}, err
	}
	ok, err := c.TryBoolean()
	if err != nil {
		return value.Value{}, fmt.Errorf("if condition: %w", err)
	}
	switch {
	case ok:
		return i.then.Execute(state, obj)
	case i.otherwise != nil:
		return i.otherwise.Execute(state, obj)
	default:
		return value.Null(), nil
	}
}

// TypeDef implements remap.Expression. Both branches are typed against
// the facts left by the condition.
func (i *If) TypeDef(state *remap.CompilerState) remap.TypeDef {
	cond := i.condition.TypeDef(state).FallibleUnless(value.KindBoolean)
	branch := remap.After(state, i.condition)
	td := i.then.TypeDef(branch)
	if i.otherwise != nil {
		td = td.Merge(i.otherwise.TypeDef(branch))
	} else {
		td = td.Merge(remap.TypeDef{Optional: true, Kind: value.KindNull})
	}
	return td.IntoFallible(td.Fallible || cond.Fallible)
}

// UpdateState implements remap.StateUpdater. Only the facts that hold
// whichever branch ran survive the node.
func (i *If) UpdateState(state *remap.CompilerState) {
	remap.UpdateState(i.condition, state)
	then := state.Clone()
	remap.UpdateState(i.then, then)
	if i.otherwise != nil {
		remap.UpdateState(i.otherwise, state)
	}
	state.Join(then)
}
