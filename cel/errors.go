// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

var (
	// ErrExpressionCheck is wrapped by every compilation failure.
	ErrExpressionCheck = errors.New("CEL expression check failed")

	// ErrEvaluation is returned when evaluating a compiled condition fails.
	ErrEvaluation = errors.New("CEL expression evaluation failed")

	// ErrInvalidResult is returned when a result has no record value form.
	ErrInvalidResult = errors.New("CEL expression returned invalid result type")
)

// Phase is the compilation step that rejected a condition.
type Phase string

const (
	// PhaseParse rejects malformed source.
	PhaseParse Phase = "parse"
	// PhaseCheck rejects well-formed source that does not type-check
	// against the event variable.
	PhaseCheck Phase = "check"
)

// Issue is one problem reported by CEL, positioned in the condition
// source. Line and Column are 1-based; zero means unknown.
type Issue struct {
	Line    int
	Column  int
	Message string
}

func (i Issue) String() string {
	if i.Line <= 0 {
		return i.Message
	}
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
}

// CompileError reports why a condition could not be compiled.
type CompileError struct {
	Phase  Phase
	Source string
	Issues []Issue
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("%s: %s error in %q: %s", ErrExpressionCheck, e.Phase, e.Source, strings.Join(msgs, "; "))
}

// Unwrap returns ErrExpressionCheck.
func (*CompileError) Unwrap() error { return ErrExpressionCheck }

func newCompileError(phase Phase, source string, issues *cel.Issues) *CompileError {
	e := &CompileError{Phase: phase, Source: source}
	for _, err := range issues.Errors() {
		issue := Issue{Message: err.Message}
		// CEL columns are 0-based and unknown locations have line -1.
		if line := err.Location.Line(); line > 0 {
			issue.Line, issue.Column = line, err.Location.Column()+1
		}
		e.Issues = append(e.Issues, issue)
	}
	return e
}
