// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package transform_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/remap/config"
	"github.com/stacklok/remap/functions"
	"github.com/stacklok/remap/internal/schema"
	"github.com/stacklok/remap/logging"
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/object/mocks"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/transform"
	"github.com/stacklok/remap/value"
)

const maskManifest = `name: mask
program:
  - assign: {path: .touched, value: {literal: true}}
  - assign:
      path: .net
      value:
        call:
          function: ip_subnet
          args:
            - value: {path: .ip}
            - value: {literal: /16}
`

// funcExpr is an expression backed by a function, used to inject
// behaviour into programs under test.
type funcExpr func() (value.Value, error)

func (f funcExpr) Execute(*remap.ProgramState, object.Object) (value.Value, error) {
	return f()
}

func (funcExpr) TypeDef(*remap.CompilerState) remap.TypeDef {
	return remap.TypeDef{Fallible: true, Kind: value.KindAny}
}

type testFunction struct {
	ident string
	expr  remap.Expression
}

func (f testFunction) Identifier() string { return f.ident }

func (testFunction) Parameters() []remap.Parameter { return nil }

func (f testFunction) Compile(*remap.ArgumentList) (remap.Expression, error) { return f.expr, nil }

func registryWith(t *testing.T, extra ...remap.Function) *remap.Registry {
	t.Helper()
	reg, err := remap.NewRegistry(append(functions.All(), extra...)...)
	require.NoError(t, err)
	return reg
}

func configWith(policy config.ErrorPolicy) *config.Config {
	cfg := config.Default()
	cfg.Errors.Policy = policy
	return cfg
}

func newRunner(t *testing.T, opts ...transform.Option) *transform.Runner {
	t.Helper()
	r, err := transform.New(append([]transform.Option{transform.WithLogger(logging.Discard())}, opts...)...)
	require.NoError(t, err)
	return r
}

func record(t *testing.T, fields map[string]any) *object.Record {
	t.Helper()
	rec, err := object.RecordFromNative(fields)
	require.NoError(t, err)
	return rec
}

func TestNew(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	assert.Equal(t, config.Default(), r.Config())
	_, ok := r.Registry().Lookup("cel")
	assert.True(t, ok)
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr error
	}{
		{
			name:    "invalid config",
			mutate:  func(cfg *config.Config) { cfg.Batch.Concurrency = 0 },
			wantErr: schema.ErrInvalidDocument,
		},
		{
			name:    "unknown disabled function",
			mutate:  func(cfg *config.Config) { cfg.Functions.Disabled = []string{"nope"} },
			wantErr: remap.ErrUnknownFunction,
		},
		{
			name:    "root error field",
			mutate:  func(cfg *config.Config) { cfg.Errors.Field = "." },
			wantErr: path.ErrInvalidPath,
		},
		{
			name:    "malformed error field",
			mutate:  func(cfg *config.Config) { cfg.Errors.Field = "a..b" },
			wantErr: path.ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(cfg)
			_, err := transform.New(transform.WithConfig(cfg), transform.WithLogger(logging.Discard()))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultRegistry_Disabled(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Functions.Disabled = []string{"cel", "del"}
	reg, err := transform.DefaultRegistry(cfg)
	require.NoError(t, err)
	assert.NotContains(t, reg.Identifiers(), "cel")
	assert.NotContains(t, reg.Identifiers(), "del")
	assert.Contains(t, reg.Identifiers(), "ip_subnet")

	r := newRunner(t, transform.WithConfig(cfg))
	_, err = r.Compile([]byte("program:\n  - call: {function: cel, args: [{value: {literal: 'true'}}]}\n"))
	require.ErrorIs(t, err, remap.ErrUnknownFunction)
}

func TestCompile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf), logging.WithLevel(slog.LevelDebug))
	r := newRunner(t, transform.WithLogger(logger))

	program, err := r.Compile([]byte(maskManifest))
	require.NoError(t, err)
	assert.Equal(t, "mask", program.Name())
	assert.True(t, program.TypeDef().Fallible)
	assert.Contains(t, buf.String(), `"msg":"compiled program"`)
	assert.Contains(t, buf.String(), `"expressions":2`)

	_, err = r.Compile([]byte(maskManifest), remap.WithConstraint(remap.TypeConstraint{
		TypeDef: remap.TypeDef{Kind: value.KindString},
	}))
	require.ErrorIs(t, err, remap.ErrFallibleProgram)

	_, err = r.Compile([]byte("program: 1\n"))
	require.ErrorIs(t, err, schema.ErrInvalidDocument)
}

func TestProcess_Success(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	program, err := r.Compile([]byte(maskManifest))
	require.NoError(t, err)

	rec := record(t, map[string]any{"ip": "192.168.10.23"})
	out := r.Process(context.Background(), program, rec)
	require.NoError(t, out.Err)
	assert.False(t, out.Failed())
	assert.False(t, out.Dropped)
	assert.Empty(t, out.Policy)
	assert.True(t, value.Equal(value.String("192.168.0.0"), out.Value))
	assert.Equal(t, map[string]any{
		"ip":      "192.168.10.23",
		"touched": true,
		"net":     "192.168.0.0",
	}, rec.Value().Native())
}

func TestProcess_Policies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy      config.ErrorPolicy
		wantDropped bool
		wantRecord  func(t *testing.T, got map[string]any)
		wantLog     string
	}{
		{
			policy:      config.PolicyDrop,
			wantDropped: true,
			wantRecord: func(t *testing.T, got map[string]any) {
				t.Helper()
				assert.Equal(t, map[string]any{"ip": "bad", "touched": true}, got)
			},
			wantLog: `"msg":"dropped record"`,
		},
		{
			policy: config.PolicyForward,
			wantRecord: func(t *testing.T, got map[string]any) {
				t.Helper()
				assert.Equal(t, map[string]any{"ip": "bad"}, got)
			},
		},
		{
			policy: config.PolicyAnnotate,
			wantRecord: func(t *testing.T, got map[string]any) {
				t.Helper()
				assert.Equal(t, true, got["touched"])
				msg, ok := got[config.DefaultErrorField].(string)
				require.True(t, ok)
				assert.Contains(t, msg, `function call error for "ip_subnet"`)
				assert.Contains(t, msg, "unable to parse IP address")
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.New(logging.WithOutput(&buf))
			r := newRunner(t, transform.WithConfig(configWith(tt.policy)), transform.WithLogger(logger))
			program, err := r.Compile([]byte(maskManifest))
			require.NoError(t, err)

			rec := record(t, map[string]any{"ip": "bad"})
			out := r.Process(context.Background(), program, rec)

			require.ErrorIs(t, out.Err, remap.ErrRuntime)
			var rtErr *remap.RuntimeError
			require.ErrorAs(t, out.Err, &rtErr)
			assert.Equal(t, "ip_subnet", rtErr.Function)
			assert.True(t, out.Failed())
			assert.Equal(t, tt.policy, out.Policy)
			assert.Equal(t, tt.wantDropped, out.Dropped)
			assert.True(t, out.Value.IsNull())

			native, ok := rec.Value().Native().(map[string]any)
			require.True(t, ok)
			tt.wantRecord(t, native)

			logs := buf.String()
			assert.Contains(t, logs, `"level":"WARN"`)
			assert.Contains(t, logs, `"function":"ip_subnet"`)
			assert.Contains(t, logs, fmt.Sprintf(`"policy":%q`, tt.policy))
			if tt.wantLog != "" {
				assert.Contains(t, logs, tt.wantLog)
			}
		})
	}
}

func TestProcess_ForwardWithoutSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	obj := mocks.NewMockObject(ctrl)
	obj.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	obj.EXPECT().Get(path.MustParse("ip")).Return(value.String("bad"), true)

	r := newRunner(t, transform.WithConfig(configWith(config.PolicyForward)))
	program, err := r.Compile([]byte(maskManifest))
	require.NoError(t, err)

	out := r.Process(context.Background(), program, obj)
	require.ErrorIs(t, out.Err, remap.ErrRuntime)
	require.ErrorIs(t, out.Err, transform.ErrNotRestorable)
	assert.False(t, out.Dropped)
}

func TestProcess_AnnotateFailure(t *testing.T) {
	t.Parallel()

	cfg := configWith(config.PolicyAnnotate)
	cfg.Errors.Field = "ip.detail"
	r := newRunner(t, transform.WithConfig(cfg))
	program, err := r.Compile([]byte(maskManifest))
	require.NoError(t, err)

	out := r.Process(context.Background(), program, record(t, map[string]any{"ip": "bad"}))
	require.ErrorIs(t, out.Err, remap.ErrRuntime)
	require.ErrorIs(t, out.Err, object.ErrInvalidTarget)
	assert.Contains(t, out.Err.Error(), "failed to annotate record at ip.detail")
}

func TestProcess_RecoversPanics(t *testing.T) {
	t.Parallel()

	explode := testFunction{ident: "explode", expr: funcExpr(func() (value.Value, error) {
		panic("kaboom")
	})}

	var buf bytes.Buffer
	r := newRunner(t,
		transform.WithConfig(configWith(config.PolicyAnnotate)),
		transform.WithRegistry(registryWith(t, explode)),
		transform.WithLogger(logging.New(logging.WithOutput(&buf))),
	)
	program, err := r.Compile([]byte("program:\n  - call: {function: explode}\n"))
	require.NoError(t, err)

	rec := record(t, map[string]any{})
	out := r.Process(context.Background(), program, rec)
	require.ErrorIs(t, out.Err, transform.ErrPanic)
	require.ErrorIs(t, out.Err, remap.ErrRuntime)
	assert.Contains(t, out.Err.Error(), "kaboom")

	msg, ok := rec.Get(path.MustParse(config.DefaultErrorField))
	require.True(t, ok)
	assert.Contains(t, msg.String(), "kaboom")
	assert.Contains(t, buf.String(), "recovered panic during program execution")
}

func TestProcessBatch(t *testing.T) {
	t.Parallel()

	r := newRunner(t, transform.WithConfig(configWith(config.PolicyDrop)))
	program, err := r.Compile([]byte(maskManifest))
	require.NoError(t, err)

	records := make([]object.Object, 40)
	for i := range records {
		ip := fmt.Sprintf("10.0.%d.1", i)
		if i%3 == 0 {
			ip = "bad"
		}
		records[i] = record(t, map[string]any{"ip": ip})
	}

	outcomes, err := r.ProcessBatch(context.Background(), program, records)
	require.NoError(t, err)
	require.Len(t, outcomes, len(records))
	for i, out := range outcomes {
		assert.Equal(t, i%3 == 0, out.Dropped, "record %d", i)
		if !out.Dropped {
			assert.True(t, value.Equal(value.String("10.0.0.0"), out.Value), "record %d", i)
		}
	}
}

func TestProcessBatch_ConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	track := testFunction{ident: "track", expr: funcExpr(func() (value.Value, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return value.Null(), nil
	})}

	cfg := config.Default()
	cfg.Batch.Concurrency = 2
	r := newRunner(t, transform.WithConfig(cfg), transform.WithRegistry(registryWith(t, track)))
	program, err := r.Compile([]byte("program:\n  - call: {function: track}\n"))
	require.NoError(t, err)

	records := make([]object.Object, 10)
	for i := range records {
		records[i] = record(t, map[string]any{})
	}
	_, err = r.ProcessBatch(context.Background(), program, records)
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Positive(t, peak.Load())
}

func TestProcessBatch_Cancelled(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	program, err := r.Compile([]byte(maskManifest))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []object.Object{record(t, map[string]any{"ip": "10.0.0.1"})}
	outcomes, err := r.ProcessBatch(ctx, program, records)
	require.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, outcomes, 1)
}
