// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// Block evaluates expressions in order and yields the last value. An
// empty block yields null.
type Block struct {
	exprs []remap.Expression
}

// NewBlock returns a block of exprs.
func NewBlock(exprs ...remap.Expression) *Block {
	return &Block{exprs: exprs}
}

// Execute implements remap.Expression.
func (b *Block) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	last := value.Null()
	for _, expr := range b.exprs {
		v, err := expr.Execute(state, obj)
		if err != nil {
			return value.Value{}, err
		}
		last = v
	}
	return last, nil
}

// TypeDef implements remap.Expression. The block is fallible when any
// member is. Each member is typed against the facts left by the ones
// before it.
func (b *Block) TypeDef(state *remap.CompilerState) remap.TypeDef {
	td := remap.TypeDef{Kind: value.KindNull}
	fallible := false
	current := state
	for _, expr := range b.exprs {
		td = expr.TypeDef(current)
		fallible = fallible || td.Fallible
		current = remap.After(current, expr)
	}
	return td.IntoFallible(fallible)
}

// UpdateState implements remap.StateUpdater.
func (b *Block) UpdateState(state *remap.CompilerState) {
	for _, expr := range b.exprs {
		remap.UpdateState(expr, state)
	}
}
