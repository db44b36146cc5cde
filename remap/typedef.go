// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"fmt"

	"github.com/stacklok/remap/value"
)

// TypeDef is the static type descriptor of an expression.
//
// Fallible=false guarantees Execute never fails, Optional=false guarantees
// the result is never absent, and Kind is an upper bound on the runtime
// kinds Execute may produce.
type TypeDef struct {
	Fallible bool
	Optional bool
	Kind     value.Kind
}

// Merge combines the descriptors of two sub-expressions. Each field is
// merged independently, so Merge is associative and commutative.
func (t TypeDef) Merge(other TypeDef) TypeDef {
	return TypeDef{
		Fallible: t.Fallible || other.Fallible,
		Optional: t.Optional || other.Optional,
		Kind:     t.Kind | other.Kind,
	}
}

// FallibleUnless marks t fallible unless its kind set is non-empty and
// already within kind. An already fallible descriptor stays fallible.
func (t TypeDef) FallibleUnless(kind value.Kind) TypeDef {
	if t.Kind.IsEmpty() || !kind.Contains(t.Kind) {
		t.Fallible = true
	}
	return t
}

// WithConstraint replaces the kind set.
func (t TypeDef) WithConstraint(kind value.Kind) TypeDef {
	t.Kind = kind
	return t
}

// IntoFallible sets fallibility.
func (t TypeDef) IntoFallible(fallible bool) TypeDef {
	t.Fallible = fallible
	return t
}

// IntoOptional sets optionality.
func (t TypeDef) IntoOptional(optional bool) TypeDef {
	t.Optional = optional
	return t
}

// Contains reports whether other satisfies t when t is used as a
// constraint: other's kinds are a subset, and other is only fallible or
// optional when t permits it.
func (t TypeDef) Contains(other TypeDef) bool {
	if other.Fallible && !t.Fallible {
		return false
	}
	if other.Optional && !t.Optional {
		return false
	}
	return t.Kind.Contains(other.Kind)
}

// String renders the descriptor for error messages.
func (t TypeDef) String() string {
	s := t.Kind.String()
	if t.Optional {
		s = "optional " + s
	}
	if t.Fallible {
		s = "fallible " + s
	}
	return fmt.Sprintf("<%s>", s)
}
