// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// ParseTimestamp implements parse_timestamp(value, timezone, day_first).
// Strings without a zone are read in timezone, UTC by default. day_first
// resolves ambiguous dates such as 02/03/2026 as 2 March.
type ParseTimestamp struct{}

// Identifier implements remap.Function.
func (ParseTimestamp) Identifier() string { return "parse_timestamp" }

// Parameters implements remap.Function.
func (ParseTimestamp) Parameters() []remap.Parameter {
	return []remap.Parameter{
		{Keyword: "value", Accepts: remap.IsKind(value.KindString | value.KindTimestamp), Required: true},
		{Keyword: "timezone", Accepts: remap.IsKind(value.KindString)},
		{Keyword: "day_first", Accepts: remap.IsKind(value.KindBoolean)},
	}
}

// Compile implements remap.Function.
func (ParseTimestamp) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	v, err := args.Required("value")
	if err != nil {
		return nil, err
	}
	fn := &parseTimestampFn{value: v, loc: time.UTC}

	tz, ok, err := args.OptionalLiteral("timezone")
	if err != nil {
		return nil, err
	}
	if ok {
		name, _ := tz.TryString()
		if fn.loc, err = time.LoadLocation(name); err != nil {
			return nil, args.InvalidArgument("timezone", err)
		}
	}

	dayFirst, ok, err := args.OptionalLiteral("day_first")
	if err != nil {
		return nil, err
	}
	if ok {
		fn.dayFirst, _ = dayFirst.TryBoolean()
	}
	return fn, nil
}

type parseTimestampFn struct {
	value    remap.Expression
	loc      *time.Location
	dayFirst bool
}

func (f *parseTimestampFn) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	v, err := f.value.Execute(state, obj)
	if err != nil {
		return value.Value{}, err
	}
	if ts, err := v.TryTimestamp(); err == nil {
		return value.Timestamp(ts), nil
	}
	s, err := v.TryString()
	if err != nil {
		return value.Value{}, err
	}
	ts, err := dateparse.ParseIn(s, f.loc, dateparse.PreferMonthFirst(!f.dayFirst))
	if err != nil {
		return value.Value{}, fmt.Errorf("unable to parse timestamp %q: %w", s, err)
	}
	return value.Timestamp(ts), nil
}

func (f *parseTimestampFn) TypeDef(state *remap.CompilerState) remap.TypeDef {
	return f.value.TypeDef(state).
		FallibleUnless(value.KindTimestamp).
		WithConstraint(value.KindTimestamp).
		IntoOptional(false)
}
