// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/value"
)

// Expression is a node of a compiled program.
//
// TypeDef must be a sound over-approximation of Execute: a node that
// reports Fallible=false must never return an error from Execute for any
// input consistent with the compile-time facts.
type Expression interface {
	// Execute evaluates the node against obj. Side effects are applied to
	// obj and state only.
	Execute(state *ProgramState, obj object.Object) (value.Value, error)
	// TypeDef returns the static type of the node. It must be stable for
	// a given compiler state and must not modify it.
	TypeDef(state *CompilerState) TypeDef
}

// StateUpdater is implemented by nodes that change the type facts seen by
// the nodes executed after them, such as assignments and deletions.
type StateUpdater interface {
	// UpdateState applies the facts that hold once the node has executed
	// successfully.
	UpdateState(state *CompilerState)
}

// UpdateState applies the facts established by expr to state. Nodes that
// do not implement StateUpdater leave state untouched.
func UpdateState(expr Expression, state *CompilerState) {
	if u, ok := expr.(StateUpdater); ok {
		u.UpdateState(state)
	}
}

// After returns the compiler state seen once exprs have executed in order.
// state itself is never modified; it is returned as is when no expression
// updates it.
func After(state *CompilerState, exprs ...Expression) *CompilerState {
	out := state
	for _, expr := range exprs {
		u, ok := expr.(StateUpdater)
		if !ok {
			continue
		}
		if out == state {
			out = state.Clone()
		}
		u.UpdateState(out)
	}
	return out
}

// LiteralExpression is an expression whose value is known at compile time.
type LiteralExpression interface {
	Expression
	Literal() value.Value
}

// PathExpression is an expression that reads a fixed record path.
type PathExpression interface {
	Expression
	Path() path.Path
}
