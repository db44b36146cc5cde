// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"fmt"

	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/value"
)

// ArgumentList maps the parameter keywords of a call to the expressions
// supplied for them. It is built by Registry.Call after positional
// arguments have been resolved to keywords, and its accessors consume
// entries so a function compiles each argument at most once.
type ArgumentList struct {
	function string
	order    []string
	args     map[string]Expression
}

// NewArgumentList creates an empty list for the named function.
func NewArgumentList(function string) *ArgumentList {
	return &ArgumentList{
		function: function,
		args:     make(map[string]Expression),
	}
}

// Insert binds keyword to expr, replacing any earlier binding.
func (l *ArgumentList) Insert(keyword string, expr Expression) {
	if _, ok := l.args[keyword]; !ok {
		l.order = append(l.order, keyword)
	}
	l.args[keyword] = expr
}

// Len returns the number of bound arguments.
func (l *ArgumentList) Len() int {
	return len(l.args)
}

// Keywords returns the bound keywords in insertion order.
func (l *ArgumentList) Keywords() []string {
	out := make([]string, 0, len(l.args))
	for _, k := range l.order {
		if _, ok := l.args[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func (l *ArgumentList) has(keyword string) bool {
	_, ok := l.args[keyword]
	return ok
}

func (l *ArgumentList) take(keyword string) (Expression, bool) {
	expr, ok := l.args[keyword]
	if ok {
		delete(l.args, keyword)
	}
	return expr, ok
}

func (l *ArgumentList) errorf(keyword string, err error, format string, args ...any) error {
	if format == "" {
		return NewCompileError(l.function, keyword, err)
	}
	return NewCompileError(l.function, keyword, fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}

// Optional returns the expression bound to keyword, or nil.
func (l *ArgumentList) Optional(keyword string) Expression {
	expr, _ := l.take(keyword)
	return expr
}

// Required returns the expression bound to keyword or a compile error.
func (l *ArgumentList) Required(keyword string) (Expression, error) {
	expr, ok := l.take(keyword)
	if !ok {
		return nil, l.errorf(keyword, ErrMissingArgument, "")
	}
	return expr, nil
}

// OptionalPath returns the path of the argument bound to keyword. The
// second result is false when the argument was not supplied.
func (l *ArgumentList) OptionalPath(keyword string) (path.Path, bool, error) {
	expr, ok := l.take(keyword)
	if !ok {
		return path.Path{}, false, nil
	}
	pe, ok := expr.(PathExpression)
	if !ok {
		return path.Path{}, false, l.errorf(keyword, ErrExpectedPath, "got %T", expr)
	}
	return pe.Path(), true, nil
}

// RequiredPath returns the path of the argument bound to keyword. The
// argument must be a path expression, not a computed value.
func (l *ArgumentList) RequiredPath(keyword string) (path.Path, error) {
	p, ok, err := l.OptionalPath(keyword)
	if err != nil {
		return path.Path{}, err
	}
	if !ok {
		return path.Path{}, l.errorf(keyword, ErrMissingArgument, "")
	}
	return p, nil
}

// OptionalLiteral returns the literal value bound to keyword. The second
// result is false when the argument was not supplied.
func (l *ArgumentList) OptionalLiteral(keyword string) (value.Value, bool, error) {
	expr, ok := l.take(keyword)
	if !ok {
		return value.Value{}, false, nil
	}
	lit, ok := expr.(LiteralExpression)
	if !ok {
		return value.Value{}, false, l.errorf(keyword, ErrExpectedLiteral, "got %T", expr)
	}
	return lit.Literal(), true, nil
}

// RequiredLiteral returns the literal value bound to keyword.
func (l *ArgumentList) RequiredLiteral(keyword string) (value.Value, error) {
	v, ok, err := l.OptionalLiteral(keyword)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, l.errorf(keyword, ErrMissingArgument, "")
	}
	return v, nil
}

// InvalidArgument builds a compile error for a literal argument whose
// value is unusable, for functions that validate literals while compiling.
func (l *ArgumentList) InvalidArgument(keyword string, cause error) error {
	return l.errorf(keyword, ErrInvalidArgument, "%s", cause)
}
