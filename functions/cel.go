// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/stacklok/remap/cel"
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// CEL implements cel(source). The source is compiled once against the
// variable event, which holds the whole record at execution time.
type CEL struct {
	engine *cel.Engine
}

// NewCEL returns the cel function backed by engine.
func NewCEL(engine *cel.Engine) *CEL {
	return &CEL{engine: engine}
}

// Identifier implements remap.Function.
func (*CEL) Identifier() string { return "cel" }

// Parameters implements remap.Function.
func (*CEL) Parameters() []remap.Parameter {
	return []remap.Parameter{{Keyword: "source", Accepts: remap.IsKind(value.KindString), Required: true}}
}

// Compile implements remap.Function. The source must be a literal.
func (c *CEL) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	src, err := args.RequiredLiteral("source")
	if err != nil {
		return nil, err
	}
	s, _ := src.TryString()
	compiled, err := c.engine.Compile(s)
	if err != nil {
		return nil, args.InvalidArgument("source", err)
	}
	return &celFn{expr: compiled, kind: kindOf(compiled.OutputType())}, nil
}

type celFn struct {
	expr *cel.CompiledExpression
	kind value.Kind
}

func (f *celFn) Execute(_ *remap.ProgramState, obj object.Object) (value.Value, error) {
	event, _ := obj.Get(path.Root())
	out, err := f.expr.Evaluate(map[string]any{cel.EventVariable: event.Native()})
	if err != nil {
		return value.Value{}, err
	}
	v, err := value.FromNative(out)
	if err != nil {
		return value.Value{}, fmt.Errorf("converting CEL result: %w", err)
	}
	return v, nil
}

func (f *celFn) TypeDef(*remap.CompilerState) remap.TypeDef {
	return remap.TypeDef{Fallible: true, Kind: f.kind}
}

// kindOf maps a checked CEL type to the value kinds it can produce.
func kindOf(t *celgo.Type) value.Kind {
	if t == nil {
		return value.KindAny
	}
	switch t.Kind() {
	case types.BoolKind:
		return value.KindBoolean
	case types.IntKind, types.UintKind:
		return value.KindInteger
	case types.DoubleKind:
		return value.KindFloat
	case types.StringKind, types.BytesKind:
		return value.KindString
	case types.TimestampKind:
		return value.KindTimestamp
	case types.ListKind:
		return value.KindArray
	case types.MapKind:
		return value.KindMap
	case types.NullTypeKind:
		return value.KindNull
	default:
		return value.KindAny
	}
}
