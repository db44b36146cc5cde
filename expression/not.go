// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// Not negates a boolean operand.
type Not struct {
	expr remap.Expression
}

// NewNot returns a node negating expr.
func NewNot(expr remap.Expression) *Not {
	return &Not{expr: expr}
}

// Execute implements remap.Expression. A non-boolean operand is a value error.
func (n *Not) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	v, err := n.expr.Execute(state, obj)
	if err != nil {
		return value.Value{}, err
	}
	b, err := v.TryBoolean()
	if err != nil {
		return value.Value{}, fmt.Errorf("invalid value kind: %w", err)
	}
	return value.Boolean(!b), nil
}

// TypeDef implements remap.Expression. The type is fixed regardless of the
// operand: the boolean coercion can always fail and an absent operand
// propagates.
func (*Not) TypeDef(*remap.CompilerState) remap.TypeDef {
	return remap.TypeDef{
		Fallible: true,
		Optional: true,
		Kind:     value.KindBoolean,
	}
}

// UpdateState implements remap.StateUpdater.
func (n *Not) UpdateState(state *remap.CompilerState) {
	remap.UpdateState(n.expr, state)
}
