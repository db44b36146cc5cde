// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"bytes"
	"fmt"
	"math"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// Operator is a binary operator.
type Operator int

// Supported operators.
const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpRemainder
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterOrEqual
	OpLess
	OpLessOrEqual
	OpAnd
	OpOr
)

var operatorSymbols = map[Operator]string{
	OpAdd:            "+",
	OpSubtract:       "-",
	OpMultiply:       "*",
	OpDivide:         "/",
	OpRemainder:      "%",
	OpEqual:          "==",
	OpNotEqual:       "!=",
	OpGreater:        ">",
	OpGreaterOrEqual: ">=",
	OpLess:           "<",
	OpLessOrEqual:    "<=",
	OpAnd:            "&&",
	OpOr:             "||",
}

// String returns the operator symbol.
func (o Operator) String() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ParseOperator returns the operator with the given symbol.
func ParseOperator(symbol string) (Operator, error) {
	for op, s := range operatorSymbols {
		if s == symbol {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", symbol)
}

// Arithmetic applies a binary operator to two operands.
type Arithmetic struct {
	op  Operator
	lhs remap.Expression
	rhs remap.Expression
}

// NewArithmetic returns a node computing lhs op rhs.
func NewArithmetic(op Operator, lhs, rhs remap.Expression) *Arithmetic {
	return &Arithmetic{op: op, lhs: lhs, rhs: rhs}
}

// Execute implements remap.Expression. && and || short-circuit.
func (a *Arithmetic) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	lhs, err := a.lhs.Execute(state, obj)
	if err != nil {
		return value.Value{}, err
	}

	if a.op == OpAnd || a.op == OpOr {
		l, err := lhs.TryBoolean()
		if err != nil {
			return value.Value{}, fmt.Errorf("left operand of %s: %w", a.op, err)
		}
		if (a.op == OpAnd && !l) || (a.op == OpOr && l) {
			return value.Boolean(l), nil
		}
		rhs, err := a.rhs.Execute(state, obj)
		if err != nil {
			return value.Value{}, err
		}
		r, err := rhs.TryBoolean()
		if err != nil {
			return value.Value{}, fmt.Errorf("right operand of %s: %w", a.op, err)
		}
		return value.Boolean(r), nil
	}

	rhs, err := a.rhs.Execute(state, obj)
	if err != nil {
		return value.Value{}, err
	}

	switch a.op {
	case OpEqual:
		return value.Boolean(equal(lhs, rhs)), nil
	case OpNotEqual:
		return value.Boolean(!equal(lhs, rhs)), nil
	case OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual:
		return a.compare(lhs, rhs)
	default:
		return a.arithmetic(lhs, rhs)
	}
}

func (a *Arithmetic) invalid(lhs, rhs value.Value) error {
	return fmt.Errorf("%w: cannot apply %s to %s and %s", ErrInvalidOperands, a.op, lhs.Kind(), rhs.Kind())
}

// equal compares numbers by value across integer and float.
func equal(lhs, rhs value.Value) bool {
	if isNumeric(lhs) && isNumeric(rhs) && lhs.Kind() != rhs.Kind() {
		return asFloat(lhs) == asFloat(rhs)
	}
	return value.Equal(lhs, rhs)
}

func isNumeric(v value.Value) bool {
	return value.KindNumeric.Contains(v.Kind())
}

func asFloat(v value.Value) float64 {
	if i, err := v.TryInteger(); err == nil {
		return float64(i)
	}
	f, _ := v.TryFloat()
	return f
}

func (a *Arithmetic) compare(lhs, rhs value.Value) (value.Value, error) {
	var c int
	switch {
	case lhs.Kind() == value.KindInteger && rhs.Kind() == value.KindInteger:
		l, _ := lhs.TryInteger()
		r, _ := rhs.TryInteger()
		c = cmpOrdered(l, r)
	case isNumeric(lhs) && isNumeric(rhs):
		c = cmpOrdered(asFloat(lhs), asFloat(rhs))
	case lhs.Kind() == value.KindString && rhs.Kind() == value.KindString:
		l, _ := lhs.TryBytes()
		r, _ := rhs.TryBytes()
		c = bytes.Compare(l, r)
	case lhs.Kind() == value.KindTimestamp && rhs.Kind() == value.KindTimestamp:
		l, _ := lhs.TryTimestamp()
		r, _ := rhs.TryTimestamp()
		c = l.Compare(r)
	default:
		return value.Value{}, a.invalid(lhs, rhs)
	}

	switch a.op {
	case OpGreater:
		return value.Boolean(c > 0), nil
	case OpGreaterOrEqual:
		return value.Boolean(c >= 0), nil
	case OpLess:
		return value.Boolean(c < 0), nil
	default:
		return value.Boolean(c <= 0), nil
	}
}

func cmpOrdered[T int64 | float64](l, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func (a *Arithmetic) arithmetic(lhs, rhs value.Value) (value.Value, error) {
	if a.op == OpAdd && lhs.Kind() == value.KindString && rhs.Kind() == value.KindString {
		l, _ := lhs.TryBytes()
		r, _ := rhs.TryBytes()
		return value.String(string(l) + string(r)), nil
	}
	if !isNumeric(lhs) || !isNumeric(rhs) {
		return value.Value{}, a.invalid(lhs, rhs)
	}

	if a.op == OpDivide {
		r := asFloat(rhs)
		if r == 0 {
			return value.Value{}, ErrDivideByZero
		}
		return value.Float(asFloat(lhs) / r), nil
	}

	if lhs.Kind() == value.KindInteger && rhs.Kind() == value.KindInteger {
		l, _ := lhs.TryInteger()
		r, _ := rhs.TryInteger()
		switch a.op {
		case OpAdd:
			return value.Integer(l + r), nil
		case OpSubtract:
			return value.Integer(l - r), nil
		case OpMultiply:
			return value.Integer(l * r), nil
		case OpRemainder:
			if r == 0 {
				return value.Value{}, ErrDivideByZero
			}
			return value.Integer(l % r), nil
		}
	}

	l, r := asFloat(lhs), asFloat(rhs)
	switch a.op {
	case OpAdd:
		return value.Float(l + r), nil
	case OpSubtract:
		return value.Float(l - r), nil
	case OpMultiply:
		return value.Float(l * r), nil
	case OpRemainder:
		if r == 0 {
			return value.Value{}, ErrDivideByZero
		}
		return value.Float(math.Mod(l, r)), nil
	default:
		return value.Value{}, a.invalid(lhs, rhs)
	}
}

// TypeDef implements remap.Expression. Equality never fails on its own.
// Every other operator depends on operand kinds or values and is fallible.
func (a *Arithmetic) TypeDef(state *remap.CompilerState) remap.TypeDef {
	lhs := a.lhs.TypeDef(state)
	rhs := a.rhs.TypeDef(remap.After(state, a.lhs))
	merged := lhs.Merge(rhs).IntoOptional(false)

	switch a.op {
	case OpEqual, OpNotEqual:
		return merged.WithConstraint(value.KindBoolean)
	case OpAnd, OpOr:
		return lhs.FallibleUnless(value.KindBoolean).
			Merge(rhs.FallibleUnless(value.KindBoolean)).
			IntoOptional(false).
			WithConstraint(value.KindBoolean)
	case OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual:
		return merged.IntoFallible(true).WithConstraint(value.KindBoolean)
	case OpDivide:
		return merged.IntoFallible(true).WithConstraint(value.KindFloat)
	}

	kind := value.KindNumeric
	switch {
	case lhs.Kind.IsExactly(value.KindInteger) && rhs.Kind.IsExactly(value.KindInteger):
		kind = value.KindInteger
	case lhs.Kind.IsExactly(value.KindFloat) || rhs.Kind.IsExactly(value.KindFloat):
		if value.KindNumeric.Contains(merged.Kind) {
			kind = value.KindFloat
		}
	}
	if a.op == OpAdd && merged.Kind.Intersects(value.KindString) {
		if lhs.Kind.IsExactly(value.KindString) && rhs.Kind.IsExactly(value.KindString) {
			kind = value.KindString
		} else {
			kind = kind.Union(value.KindString)
		}
	}
	return merged.IntoFallible(true).WithConstraint(kind)
}

// UpdateState implements remap.StateUpdater. A short-circuiting operator
// may skip its right operand, so only the facts that hold either way
// survive it.
func (a *Arithmetic) UpdateState(state *remap.CompilerState) {
	remap.UpdateState(a.lhs, state)
	if a.op != OpAnd && a.op != OpOr {
		remap.UpdateState(a.rhs, state)
		return
	}
	rhs := state.Clone()
	remap.UpdateState(a.rhs, rhs)
	state.Join(rhs)
}
