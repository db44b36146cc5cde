// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/stacklok/remap/config"
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// ErrPanic is wrapped by the runtime error reported when a program panics.
var ErrPanic = errors.New("program panicked")

// ErrNotRestorable is reported when the forward policy needs to restore a
// record that does not implement object.Snapshotter.
var ErrNotRestorable = errors.New("record cannot be restored")

// Outcome is the result of processing one record.
type Outcome struct {
	// Value is the value the program resolved to. It is Null when the
	// program failed.
	Value value.Value
	// Err is the runtime error, or nil when the program succeeded.
	Err error
	// Policy is the error policy applied. It is empty on success.
	Policy config.ErrorPolicy
	// Dropped reports that the record must not be emitted.
	Dropped bool
}

// Failed reports whether the program failed for this record.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Process executes program against obj with a fresh ProgramState and
// applies the configured error policy on failure. It never panics on
// behalf of the program.
func (r *Runner) Process(ctx context.Context, program *Program, obj object.Object) Outcome {
	policy := r.cfg.Errors.Policy

	var snapshot value.Value
	snapshotter, canRestore := obj.(object.Snapshotter)
	if policy == config.PolicyForward && canRestore {
		snapshot = snapshotter.Snapshot()
	}

	result, err := r.execute(ctx, program, obj)
	if err == nil {
		return Outcome{Value: result}
	}

	out := Outcome{Value: value.Null(), Err: err, Policy: policy}
	r.logFailure(ctx, program, err, policy)

	switch policy {
	case config.PolicyDrop:
		out.Dropped = true
		r.logger.LogAttrs(ctx, slog.LevelInfo, "dropped record",
			slog.String("program", program.name),
			slog.String("reason", err.Error()),
		)
	case config.PolicyForward:
		if !canRestore {
			out.Err = errors.Join(err, ErrNotRestorable)
			break
		}
		if restoreErr := snapshotter.Restore(snapshot); restoreErr != nil {
			out.Err = errors.Join(err, fmt.Errorf("%w: %w", ErrNotRestorable, restoreErr))
		}
	case config.PolicyAnnotate:
		if setErr := obj.Set(r.errorField, value.String(err.Error())); setErr != nil {
			out.Err = errors.Join(err, fmt.Errorf("failed to annotate record at %s: %w", r.errorField, setErr))
		}
	}
	return out
}

// execute runs the program, converting a panic into a runtime error.
func (r *Runner) execute(ctx context.Context, program *Program, obj object.Object) (result value.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "recovered panic during program execution",
				slog.String("program", program.name),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			result = value.Value{}
			err = remap.NewRuntimeError("", fmt.Errorf("%w: %v", ErrPanic, rec))
		}
	}()
	return program.program.Execute(remap.NewProgramState(), obj)
}

func (r *Runner) logFailure(ctx context.Context, program *Program, err error, policy config.ErrorPolicy) {
	attrs := []slog.Attr{
		slog.String("program", program.name),
		slog.String("policy", string(policy)),
		slog.String("error", err.Error()),
	}
	var rtErr *remap.RuntimeError
	if errors.As(err, &rtErr) && rtErr.Function != "" {
		attrs = append(attrs, slog.String("function", rtErr.Function))
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "program execution failed", attrs...)
}
