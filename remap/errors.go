// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"errors"
	"fmt"
)

// Sentinel errors for compilation.
var (
	// ErrUnknownFunction is returned when a call names an unregistered function.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrUnknownKeyword is returned when a call passes a keyword the function does not declare.
	ErrUnknownKeyword = errors.New("unknown argument keyword")

	// ErrDuplicateArgument is returned when a parameter is supplied more than once.
	ErrDuplicateArgument = errors.New("duplicate argument")

	// ErrTooManyArguments is returned when a call passes more positional arguments than declared parameters.
	ErrTooManyArguments = errors.New("too many arguments")

	// ErrMissingArgument is returned when a required parameter is not supplied.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrArgumentType is returned when a literal argument is rejected by its parameter.
	ErrArgumentType = errors.New("invalid argument type")

	// ErrExpectedPath is returned when an argument must be a path but is not.
	ErrExpectedPath = errors.New("argument must be a path")

	// ErrExpectedLiteral is returned when an argument must be a literal but is not.
	ErrExpectedLiteral = errors.New("argument must be a literal")

	// ErrInvalidArgument is returned when a literal argument has the right kind but an invalid value.
	ErrInvalidArgument = errors.New("invalid argument value")

	// ErrResolvesTo is returned when a program's result type violates the requested constraint.
	ErrResolvesTo = errors.New("program resolves to an unexpected type")

	// ErrFallibleProgram is returned when a program can fail but the constraint forbids it.
	ErrFallibleProgram = errors.New("program is fallible")

	// ErrInvalidIdentifier is returned when a function identifier is malformed.
	ErrInvalidIdentifier = errors.New("invalid function identifier")

	// ErrDuplicateFunction is returned when a function identifier is registered twice.
	ErrDuplicateFunction = errors.New("duplicate function")
)

// ErrRuntime is wrapped by every error returned from Program.Execute.
var ErrRuntime = errors.New("remap runtime error")

// CompileError reports a failure to compile a program or a function call.
type CompileError struct {
	// Function is the identifier of the function being compiled, if any.
	Function string
	// Keyword is the parameter the error relates to, if any.
	Keyword string
	err     error
}

// NewCompileError creates a CompileError for the given function and
// parameter keyword. Either may be empty.
func NewCompileError(function, keyword string, err error) *CompileError {
	return &CompileError{Function: function, Keyword: keyword, err: err}
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	switch {
	case e.Function != "" && e.Keyword != "":
		return fmt.Sprintf("remap compile error in function %q argument %q: %s", e.Function, e.Keyword, e.err)
	case e.Function != "":
		return fmt.Sprintf("remap compile error in function %q: %s", e.Function, e.err)
	default:
		return fmt.Sprintf("remap compile error: %s", e.err)
	}
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.err
}

// RuntimeError reports a failure raised while executing a program.
type RuntimeError struct {
	// Function is the innermost function call that failed, if any.
	Function string
	err      error
}

// NewRuntimeError creates a RuntimeError raised by function, which may be
// empty when the failure is not attributable to a function call.
func NewRuntimeError(function string, err error) *RuntimeError {
	return &RuntimeError{Function: function, err: err}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("function call error for %q: %s", e.Function, e.err)
	}
	return e.err.Error()
}

// Unwrap returns the underlying error chain, which always includes ErrRuntime.
func (e *RuntimeError) Unwrap() []error {
	return []error{ErrRuntime, e.err}
}

// Cause returns the error raised by the failing expression.
func (e *RuntimeError) Cause() error {
	return e.err
}
