// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	celgo "github.com/google/cel-go/cel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/remap/cel"
)

func event(fields map[string]any) map[string]any {
	return map[string]any{cel.EventVariable: fields}
}

func TestNewEventEngine(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()
	require.NotNil(t, engine)

	expr, err := engine.Compile(`event.status == 200`)
	require.NoError(t, err)
	assert.Equal(t, `event.status == 200`, expr.Source())
	assert.True(t, celgo.BoolType.IsExactType(expr.OutputType()))
}

func TestNewEngine_CustomDeclarations(t *testing.T) {
	t.Parallel()

	engine := cel.NewEngine(celgo.Variable("labels", celgo.MapType(celgo.StringType, celgo.StringType)))

	expr, err := engine.Compile(`labels["env"]`)
	require.NoError(t, err)
	assert.True(t, celgo.StringType.IsExactType(expr.OutputType()))

	got, err := expr.Evaluate(map[string]any{"labels": map[string]string{"env": "prod"}})
	require.NoError(t, err)
	assert.Equal(t, "prod", got)
}

func TestEngine_Compile_OutputType(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()

	tests := []struct {
		name string
		expr string
		want *celgo.Type
	}{
		{"int literal", `1 + 2`, celgo.IntType},
		{"double literal", `1.5`, celgo.DoubleType},
		{"string", `"a" + "b"`, celgo.StringType},
		{"dyn field", `event.host`, celgo.DynType},
		{"size", `size(event)`, celgo.IntType},
		{"timestamp", `timestamp("2026-01-02T03:04:05Z")`, celgo.TimestampType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr, err := engine.Compile(tt.expr)
			require.NoError(t, err)
			assert.True(t, tt.want.IsExactType(expr.OutputType()), "got %s", expr.OutputType())
		})
	}
}

func TestEngine_Compile_ParseErrors(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()

	tests := []struct {
		name string
		expr string
	}{
		{"unclosed bracket", `event["status"`},
		{"invalid operator", `event.status === 200`},
		{"unclosed string", `event["status] == 200`},
		{"missing operand", `event.status ==`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr, err := engine.Compile(tt.expr)
			require.Error(t, err)
			require.Nil(t, expr)

			var compileErr *cel.CompileError
			require.True(t, errors.As(err, &compileErr), "expected CompileError, got %T", err)
			assert.Equal(t, cel.PhaseParse, compileErr.Phase)
			assert.ErrorIs(t, err, cel.ErrExpressionCheck)
		})
	}
}

func TestEngine_Compile_CheckErrors(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()

	tests := []struct {
		name string
		expr string
	}{
		{"undefined variable", `record.status == 200`},
		{"undefined function", `undefined_func(event)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr, err := engine.Compile(tt.expr)
			require.Error(t, err)
			require.Nil(t, expr)

			var compileErr *cel.CompileError
			require.True(t, errors.As(err, &compileErr), "expected CompileError, got %T", err)
			assert.Equal(t, cel.PhaseCheck, compileErr.Phase)
		})
	}
}

func TestEngine_MaxExpressionLength(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine().WithMaxExpressionLength(10)

	_, err := engine.Compile(`event.status == ` + strings.Repeat("1", 20))
	require.ErrorIs(t, err, cel.ErrExpressionCheck)

	require.ErrorIs(t, engine.Check(strings.Repeat("x", 11)), cel.ErrExpressionCheck)
}

func TestEngine_CostLimit(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine().WithCostLimit(1)

	expr, err := engine.Compile(`event.items.map(x, x * 2).size() > 0`)
	require.NoError(t, err)

	_, err = expr.Evaluate(event(map[string]any{"items": []any{int64(1), int64(2), int64(3)}}))
	require.ErrorIs(t, err, cel.ErrEvaluation)
}

func TestEngine_Check(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()

	require.NoError(t, engine.Check(`"trace_id" in event`))

	err := engine.Check(`event[`)
	var compileErr *cel.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, cel.PhaseParse, compileErr.Phase)
}

func TestCompiledExpression_Evaluate(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		expr     string
		fields   map[string]any
		expected any
	}{
		{
			name:     "field equality",
			expr:     `event.host == "web-1"`,
			fields:   map[string]any{"host": "web-1"},
			expected: true,
		},
		{
			name:     "membership",
			expr:     `"admin" in event.tags`,
			fields:   map[string]any{"tags": []any{"user", "admin"}},
			expected: true,
		},
		{
			name:     "key presence",
			expr:     `"trace_id" in event`,
			fields:   map[string]any{"host": "web-1"},
			expected: false,
		},
		{
			name:     "ternary",
			expr:     `event.status >= 500 ? "error" : "ok"`,
			fields:   map[string]any{"status": int64(503)},
			expected: "error",
		},
		{
			name:     "arithmetic",
			expr:     `event.bytes / 1024`,
			fields:   map[string]any{"bytes": int64(4096)},
			expected: int64(4),
		},
		{
			name:     "list result",
			expr:     `event.tags.map(t, t + "!")`,
			fields:   map[string]any{"tags": []any{"a", "b"}},
			expected: []any{"a!", "b!"},
		},
		{
			name:   "nested map result",
			expr:   `{"host": event.host, "meta": {"count": size(event.tags)}}`,
			fields: map[string]any{"host": "h", "tags": []any{"x"}},
			expected: map[string]any{
				"host": "h",
				"meta": map[string]any{"count": int64(1)},
			},
		},
		{
			name:     "null field",
			expr:     `event.missing_value`,
			fields:   map[string]any{"missing_value": nil},
			expected: nil,
		},
		{
			name:     "timestamp passthrough",
			expr:     `event.at`,
			fields:   map[string]any{"at": ts},
			expected: ts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := engine.Compile(tt.expr)
			require.NoError(t, err)

			result, err := expr.Evaluate(event(tt.fields))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCompiledExpression_EvaluateBool(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()

	t.Run("returns true", func(t *testing.T) {
		t.Parallel()

		expr, err := engine.Compile(`event.level == "error"`)
		require.NoError(t, err)

		result, err := expr.EvaluateBool(event(map[string]any{"level": "error"}))
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("error on non-bool result", func(t *testing.T) {
		t.Parallel()

		expr, err := engine.Compile(`event.level`)
		require.NoError(t, err)

		_, err = expr.EvaluateBool(event(map[string]any{"level": "error"}))
		assert.ErrorIs(t, err, cel.ErrInvalidResult)
	})

	t.Run("missing key wraps ErrEvaluation", func(t *testing.T) {
		t.Parallel()

		expr, err := engine.Compile(`event.missing.nested == 1`)
		require.NoError(t, err)

		_, err = expr.EvaluateBool(event(map[string]any{}))
		assert.ErrorIs(t, err, cel.ErrEvaluation)
	})
}

func TestCompileError(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()

	tests := []struct {
		name      string
		expr      string
		wantPhase cel.Phase
	}{
		{"syntax", `event["status"`, cel.PhaseParse},
		{"unknown variable", `nope == 1`, cel.PhaseCheck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := engine.Compile(tt.expr)
			var compileErr *cel.CompileError
			require.True(t, errors.As(err, &compileErr))
			assert.Equal(t, tt.wantPhase, compileErr.Phase)
			assert.Equal(t, tt.expr, compileErr.Source)
			require.NotEmpty(t, compileErr.Issues)
			assert.Equal(t, 1, compileErr.Issues[0].Line)
			assert.Positive(t, compileErr.Issues[0].Column)
			assert.Contains(t, err.Error(), string(tt.wantPhase))
			assert.Contains(t, err.Error(), "1:")
		})
	}
}

func TestIssue_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2:5: bad", cel.Issue{Line: 2, Column: 5, Message: "bad"}.String())
	assert.Equal(t, "bad", cel.Issue{Message: "bad"}.String())
}

func TestEngine_Concurrency(t *testing.T) {
	t.Parallel()

	engine := cel.NewEventEngine()
	expr, err := engine.Compile(`"admin" in event.tags`)
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	results := make([]bool, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tags := []any{"user"}
			if i%2 == 0 {
				tags = append(tags, "admin")
			}
			results[i], errs[i] = expr.EvaluateBool(event(map[string]any{"tags": tags}))
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, i%2 == 0, results[i])
	}
}
