// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import "github.com/stacklok/remap/value"

// Parameter describes one argument slot of a function.
type Parameter struct {
	// Keyword is the name used to pass the argument by keyword.
	Keyword string
	// Accepts reports whether a literal argument value is acceptable.
	// A nil Accepts accepts every value.
	Accepts func(value.Value) bool
	// Required marks the argument as mandatory.
	Required bool
}

// accepts applies the parameter predicate.
func (p Parameter) accepts(v value.Value) bool {
	return p.Accepts == nil || p.Accepts(v)
}

// AnyValue accepts every value.
func AnyValue(value.Value) bool { return true }

// IsKind returns a predicate accepting values whose kind is within kind.
func IsKind(kind value.Kind) func(value.Value) bool {
	return func(v value.Value) bool {
		return kind.Contains(v.Kind())
	}
}

// Function is a built-in that compiles a call into an Expression.
type Function interface {
	// Identifier is the name the function is called by.
	Identifier() string
	// Parameters declares the accepted arguments in positional order. The
	// length of the list is the function's maximum arity.
	Parameters() []Parameter
	// Compile builds the call node from resolved arguments.
	Compile(args *ArgumentList) (Expression, error)
}

// Argument is one argument of a call as written by the caller. An empty
// Keyword means the argument was passed positionally.
type Argument struct {
	Keyword string
	Expr    Expression
}
