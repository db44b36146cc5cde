// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// ToString implements to_string(value).
type ToString struct{}

// Identifier implements remap.Function.
func (ToString) Identifier() string { return "to_string" }

// Parameters implements remap.Function.
func (ToString) Parameters() []remap.Parameter {
	return []remap.Parameter{{Keyword: "value", Accepts: remap.IsKind(value.KindScalar), Required: true}}
}

// Compile implements remap.Function.
func (ToString) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	v, err := args.Required("value")
	if err != nil {
		return nil, err
	}
	return &toStringFn{value: v}, nil
}

type toStringFn struct {
	value remap.Expression
}

func (f *toStringFn) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	v, err := f.value.Execute(state, obj)
	if err != nil {
		return value.Value{}, err
	}
	switch {
	case v.IsNull():
		return value.String(""), nil
	case v.Kind() == value.KindString:
		return v, nil
	case !value.KindScalar.Contains(v.Kind()):
		return value.Value{}, &value.Error{Expected: value.KindScalar, Got: v.Kind()}
	default:
		return value.String(v.String()), nil
	}
}

func (f *toStringFn) TypeDef(state *remap.CompilerState) remap.TypeDef {
	return f.value.TypeDef(state).
		FallibleUnless(value.KindScalar).
		WithConstraint(value.KindString).
		IntoOptional(false)
}

// caseFn maps the case of a string. The optional locale selects
// language-specific rules such as the Turkish dotted i.
type caseFn struct {
	ident  string
	mapper func(language.Tag) cases.Caser
}

// Upcase returns the upcase function.
func Upcase() remap.Function {
	return caseFn{ident: "upcase", mapper: func(t language.Tag) cases.Caser { return cases.Upper(t) }}
}

// Downcase returns the downcase function.
func Downcase() remap.Function {
	return caseFn{ident: "downcase", mapper: func(t language.Tag) cases.Caser { return cases.Lower(t) }}
}

func (f caseFn) Identifier() string { return f.ident }

func (caseFn) Parameters() []remap.Parameter {
	return []remap.Parameter{
		{Keyword: "value", Accepts: remap.IsKind(value.KindString), Required: true},
		{Keyword: "locale", Accepts: remap.IsKind(value.KindString)},
	}
}

func (f caseFn) Compile(args *remap.ArgumentList) (remap.Expression, error) {
	v, err := args.Required("value")
	if err != nil {
		return nil, err
	}
	tag := language.Und
	locale, ok, err := args.OptionalLiteral("locale")
	if err != nil {
		return nil, err
	}
	if ok {
		s, _ := locale.TryString()
		if tag, err = language.Parse(s); err != nil {
			return nil, args.InvalidArgument("locale", err)
		}
	}
	return &caseExpr{value: v, tag: tag, mapper: f.mapper}, nil
}

type caseExpr struct {
	value  remap.Expression
	tag    language.Tag
	mapper func(language.Tag) cases.Caser
}

func (e *caseExpr) Execute(state *remap.ProgramState, obj object.Object) (value.Value, error) {
	s, err := executeString(e.value, state, obj)
	if err != nil {
		return value.Value{}, err
	}
	// A Caser keeps state between calls and cannot be shared across
	// concurrent executions.
	return value.String(e.mapper(e.tag).String(s)), nil
}

func (e *caseExpr) TypeDef(state *remap.CompilerState) remap.TypeDef {
	return e.value.TypeDef(state).
		FallibleUnless(value.KindString).
		WithConstraint(value.KindString).
		IntoOptional(false)
}
