// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
)

var validIdentifierRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Registry resolves function identifiers at compile time. It is safe for
// concurrent lookups once populated; Register must not race with Call.
type Registry struct {
	functions map[string]Function
}

// NewRegistry creates a registry holding fns.
func NewRegistry(fns ...Function) (*Registry, error) {
	r := &Registry{functions: make(map[string]Function, len(fns))}
	for _, fn := range fns {
		if err := r.Register(fn); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds fn. Identifiers must be lowercase snake case and unique.
func (r *Registry) Register(fn Function) error {
	ident := fn.Identifier()
	if !validIdentifierRegex.MatchString(ident) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, ident)
	}
	if _, exists := r.functions[ident]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFunction, ident)
	}
	seen := make(map[string]struct{}, len(fn.Parameters()))
	for _, p := range fn.Parameters() {
		if p.Keyword == "" {
			return fmt.Errorf("%w: %q declares a parameter without a keyword", ErrInvalidIdentifier, ident)
		}
		if _, dup := seen[p.Keyword]; dup {
			return fmt.Errorf("%w: %q declares parameter %q twice", ErrInvalidIdentifier, ident, p.Keyword)
		}
		seen[p.Keyword] = struct{}{}
	}
	r.functions[ident] = fn
	return nil
}

// Lookup returns the function registered under ident.
func (r *Registry) Lookup(ident string) (Function, bool) {
	fn, ok := r.functions[ident]
	return fn, ok
}

// Identifiers returns the registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	return slices.Sorted(maps.Keys(r.functions))
}

// Call resolves args against the parameters of the function named ident
// and compiles the call. Positional arguments bind to parameters in
// declaration order; keyword arguments bind by name.
func (r *Registry) Call(ident string, args ...Argument) (Expression, error) {
	fn, ok := r.Lookup(ident)
	if !ok {
		return nil, NewCompileError(ident, "", ErrUnknownFunction)
	}

	params := fn.Parameters()
	list := NewArgumentList(ident)
	exprs := make([]Expression, 0, len(args))
	next := 0

	for _, arg := range args {
		keyword := arg.Keyword
		idx := -1
		if keyword == "" {
			for next < len(params) && list.has(params[next].Keyword) {
				next++
			}
			if next >= len(params) {
				return nil, NewCompileError(ident, "", fmt.Errorf("%w: accepts at most %d", ErrTooManyArguments, len(params)))
			}
			idx = next
			keyword = params[idx].Keyword
		} else {
			idx = slices.IndexFunc(params, func(p Parameter) bool { return p.Keyword == keyword })
			if idx < 0 {
				return nil, NewCompileError(ident, keyword, ErrUnknownKeyword)
			}
			if list.has(keyword) {
				return nil, NewCompileError(ident, keyword, ErrDuplicateArgument)
			}
		}

		if lit, ok := arg.Expr.(LiteralExpression); ok && !params[idx].accepts(lit.Literal()) {
			return nil, NewCompileError(ident, keyword,
				fmt.Errorf("%w: %s is not accepted", ErrArgumentType, lit.Literal().Kind()))
		}
		list.Insert(keyword, arg.Expr)
		exprs = append(exprs, arg.Expr)
	}

	for _, p := range params {
		if p.Required && !list.has(p.Keyword) {
			return nil, NewCompileError(ident, p.Keyword, ErrMissingArgument)
		}
	}

	expr, err := fn.Compile(list)
	if err != nil {
		return nil, err
	}
	return &FunctionCall{ident: ident, args: exprs, expr: expr}, nil
}
