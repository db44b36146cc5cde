// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

const (
	// DefaultMaxExpressionLength is the maximum allowed length for a CEL expression.
	DefaultMaxExpressionLength = 10000

	// DefaultCostLimit is the default runtime cost limit for CEL program evaluation.
	DefaultCostLimit = 1000000

	// EventVariable is the name under which NewEventEngine exposes the record.
	EventVariable = "event"
)

// Engine compiles CEL expressions against a fixed set of declarations.
// It is safe for concurrent use from multiple goroutines.
type Engine struct {
	envCache            *envCache
	factory             envFactory
	maxExpressionLength int
	costLimit           uint64
}

type envFactory func() (*cel.Env, error)

// envCache holds a lazily-initialized CEL environment.
type envCache struct {
	once sync.Once
	env  *cel.Env
	err  error
}

// CompiledExpression is a checked CEL program ready for evaluation.
type CompiledExpression struct {
	source     string
	outputType *cel.Type
	program    cel.Program
}

// Source returns the original expression source string.
func (ce *CompiledExpression) Source() string {
	return ce.source
}

// OutputType returns the type the checker inferred for the expression.
// Expressions over dyn values report cel.DynType.
func (ce *CompiledExpression) OutputType() *cel.Type {
	return ce.outputType
}

// NewEngine creates a CEL engine. The options are passed to cel.NewEnv the
// first time the engine compiles an expression.
//
//	engine := cel.NewEngine(
//	    cel.Variable("labels", cel.MapType(cel.StringType, cel.StringType)),
//	)
func NewEngine(options ...cel.EnvOption) *Engine {
	return &Engine{
		envCache:            &envCache{},
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
		factory: func() (*cel.Env, error) {
			return cel.NewEnv(options...)
		},
	}
}

// NewEventEngine creates an engine whose expressions see the record being
// transformed as the variable "event" of type map(string, dyn).
func NewEventEngine(options ...cel.EnvOption) *Engine {
	opts := append([]cel.EnvOption{
		cel.Variable(EventVariable, cel.MapType(cel.StringType, cel.DynType)),
	}, options...)
	return NewEngine(opts...)
}

// WithMaxExpressionLength sets the maximum allowed length for CEL expressions.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit for CEL program evaluation.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

func (e *Engine) getEnv() (*cel.Env, error) {
	e.envCache.once.Do(func() {
		e.envCache.env, e.envCache.err = e.factory()
	})
	return e.envCache.env, e.envCache.err
}

// check parses and type-checks expr.
func (e *Engine) check(expr string) (*cel.Env, *cel.Ast, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}

	parsedAst, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, nil, newCompileError(PhaseParse, expr, issues)
	}

	checkedAst, issues := env.Check(parsedAst)
	if issues.Err() != nil {
		return nil, nil, newCompileError(PhaseCheck, expr, issues)
	}
	return env, checkedAst, nil
}

// Compile parses, checks and plans expr.
//
// Every failure wraps ErrExpressionCheck. Parse and type errors are a
// *CompileError naming the phase that failed.
func (e *Engine) Compile(expr string) (*CompiledExpression, error) {
	env, checkedAst, err := e.check(expr)
	if err != nil {
		return nil, err
	}

	program, err := env.Program(checkedAst, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expr, err)
	}

	return &CompiledExpression{
		source:     expr,
		outputType: checkedAst.OutputType(),
		program:    program,
	}, nil
}

// Check verifies that expr is syntactically and semantically valid without
// planning a program.
func (e *Engine) Check(expr string) error {
	_, _, err := e.check(expr)
	return err
}

// Evaluate executes the compiled expression against vars. CEL lists and
// maps in the result are converted to []any and map[string]any.
func (ce *CompiledExpression) Evaluate(vars map[string]any) (any, error) {
	out, _, err := ce.program.Eval(vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}
	return toNative(out)
}

// EvaluateBool executes the compiled expression and returns the result as a bool.
func (ce *CompiledExpression) EvaluateBool(vars map[string]any) (bool, error) {
	result, err := ce.Evaluate(vars)
	if err != nil {
		return false, err
	}

	boolResult, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrInvalidResult, result)
	}

	return boolResult, nil
}

func toNative(v ref.Val) (any, error) {
	switch val := v.(type) {
	case types.Null:
		return nil, nil
	case traits.Mapper:
		out := make(map[string]any)
		it := val.Iterator()
		for it.HasNext() == types.True {
			key := it.Next()
			name, ok := key.Value().(string)
			if !ok {
				return nil, fmt.Errorf("%w: map key of type %s", ErrInvalidResult, key.Type())
			}
			elem, err := toNative(val.Get(key))
			if err != nil {
				return nil, err
			}
			out[name] = elem
		}
		return out, nil
	case traits.Lister:
		size, ok := val.Size().(types.Int)
		if !ok {
			return nil, fmt.Errorf("%w: list without size", ErrInvalidResult)
		}
		out := make([]any, 0, int(size))
		for i := types.Int(0); i < size; i++ {
			elem, err := toNative(val.Get(i))
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	default:
		return v.Value(), nil
	}
}
