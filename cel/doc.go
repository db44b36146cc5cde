// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package cel wraps cel-go for embedding CEL expressions in remap programs.

An Engine owns a lazily built CEL environment and enforces an expression
length limit at compile time and a cost limit at evaluation time.
NewEventEngine declares the single variable "event", the record being
transformed, as map(string, dyn):

	engine := cel.NewEventEngine()

	expr, err := engine.Compile(`event.status >= 500 && "trace_id" in event`)
	if err != nil {
	    // handle compilation error
	}

	ok, err := expr.EvaluateBool(map[string]any{
	    "event": map[string]any{"status": int64(503), "trace_id": "abc"},
	})

Evaluate converts CEL lists and maps into []any and map[string]any so
results can be turned back into record values.

# Error Handling

Compilation errors are a *CompileError naming the failed phase and the
positioned issues CEL reported:

	_, err := engine.Compile(`event.status >`)
	var compileErr *cel.CompileError
	if errors.As(err, &compileErr) {
	    fmt.Println(compileErr.Phase, compileErr.Issues[0])
	}

Every compilation error wraps ErrExpressionCheck.

# Concurrency

Engine and CompiledExpression are safe for concurrent use.
*/
package cel
