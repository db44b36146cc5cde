// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/remap/expression"
	"github.com/stacklok/remap/functions"
	"github.com/stacklok/remap/internal/schema"
	"github.com/stacklok/remap/manifest"
	"github.com/stacklok/remap/object"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

func newDecoder(t *testing.T) *manifest.Decoder {
	t.Helper()
	reg, err := remap.NewRegistry(functions.All()...)
	require.NoError(t, err)
	return manifest.NewDecoder(reg)
}

const maskClient = `name: mask-client
program:
  - assign:
      path: .client.subnet
      value:
        call:
          function: ip_subnet
          args:
            - value: {path: .client.ip}
            - keyword: subnet
              value: {literal: /16}
  - call:
      function: only_fields
      args:
        - value: {path: .client}
        - value: {path: .message}
  - assign:
      variable: total
      value:
        op: {operator: "+", lhs: {literal: 1}, rhs: {literal: 2}}
  - if:
      condition:
        op: {operator: "==", lhs: {variable: total}, rhs: {literal: 3}}
      then:
        block:
          - assign: {path: .ok, value: {literal: true}}
          - assign: {path: .negated, value: {not: {literal: true}}}
      else:
        assign: {path: .ok, value: {literal: false}}
  - noop: ~
`

func TestDecode_Program(t *testing.T) {
	t.Parallel()

	m, err := newDecoder(t).Decode([]byte(maskClient))
	require.NoError(t, err)
	assert.Equal(t, "mask-client", m.Name)
	require.Len(t, m.Expressions, 5)

	program, err := m.Compile()
	require.NoError(t, err)
	assert.True(t, program.TypeDef().Fallible)

	rec, err := object.RecordFromNative(map[string]any{
		"client":  map[string]any{"ip": "192.168.10.23", "port": 8080},
		"message": "hello",
		"extra":   true,
	})
	require.NoError(t, err)

	result, err := program.Execute(remap.NewProgramState(), rec)
	require.NoError(t, err)
	assert.True(t, result.IsNull())

	assert.Equal(t, map[string]any{
		"client": map[string]any{
			"ip":     "192.168.10.23",
			"port":   int64(8080),
			"subnet": "192.168.0.0",
		},
		"message": "hello",
		"ok":      true,
		"negated": false,
	}, rec.Value().Native())
}

func TestDecode_Literals(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		yaml string
		want value.Value
	}{
		{yaml: `1`, want: value.Integer(1)},
		{yaml: `-7`, want: value.Integer(-7)},
		{yaml: `1.5`, want: value.Float(1.5)},
		{yaml: `true`, want: value.Boolean(true)},
		{yaml: `~`, want: value.Null()},
		{yaml: `hi`, want: value.String("hi")},
		{yaml: `"1"`, want: value.String("1")},
		{yaml: `2024-01-02T03:04:05Z`, want: value.Timestamp(ts)},
		{yaml: `!!binary aGk=`, want: value.String("hi")},
		{yaml: `[1, a]`, want: value.Array([]value.Value{value.Integer(1), value.String("a")})},
		{yaml: `{a: {b: false}}`, want: value.Map(map[string]value.Value{
			"a": value.Map(map[string]value.Value{"b": value.Boolean(false)}),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.yaml, func(t *testing.T) {
			t.Parallel()
			doc := fmt.Sprintf("program:\n  - literal: %s\n", tt.yaml)
			m, err := newDecoder(t).Decode([]byte(doc))
			require.NoError(t, err)
			require.Len(t, m.Expressions, 1)

			lit, ok := m.Expressions[0].(*expression.Literal)
			require.True(t, ok)
			assert.True(t, value.Equal(tt.want, lit.Literal()), "got %s", lit.Literal())
		})
	}
}

func TestDecode_Aliases(t *testing.T) {
	t.Parallel()

	doc := `program:
  - assign:
      path: .a
      value: &source {path: .b}
  - assign:
      path: .c
      value: *source
`
	m, err := newDecoder(t).Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, m.Expressions, 2)

	program, err := m.Compile()
	require.NoError(t, err)

	rec := object.NewRecord(map[string]value.Value{"b": value.Integer(1)})
	_, err = program.Execute(remap.NewProgramState(), rec)
	require.NoError(t, err)

	got, ok := rec.Get(path.MustParse("c"))
	require.True(t, ok)
	assert.True(t, value.Equal(value.Integer(1), got))
}

func TestDecode_EmptyProgram(t *testing.T) {
	t.Parallel()

	m, err := newDecoder(t).Decode([]byte("program: []\n"))
	require.NoError(t, err)
	assert.Empty(t, m.Expressions)
	assert.Empty(t, m.Name)
}

func TestDecode_SchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "missing program", yaml: "name: x\n"},
		{name: "unknown top-level key", yaml: "program: []\nversion: 2\n"},
		{name: "unknown node", yaml: "program:\n  - lambda: x\n"},
		{name: "node with two keys", yaml: "program:\n  - {literal: 1, path: .a}\n"},
		{name: "bad operator", yaml: "program:\n  - op: {operator: '**', lhs: {literal: 1}, rhs: {literal: 2}}\n"},
		{name: "assign without target", yaml: "program:\n  - assign: {value: {literal: 1}}\n"},
		{name: "assign with both targets", yaml: "program:\n  - assign: {path: .a, variable: a, value: {literal: 1}}\n"},
		{name: "if without then", yaml: "program:\n  - if: {condition: {literal: true}}\n"},
		{name: "call argument without value", yaml: "program:\n  - call: {function: del, args: [{keyword: '1'}]}\n"},
		{name: "program is not a list", yaml: "program: {literal: 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newDecoder(t).Decode([]byte(tt.yaml))
			require.ErrorIs(t, err, schema.ErrInvalidDocument)
			assert.Contains(t, err.Error(), "manifest schema validation failed")
			require.ErrorIs(t, manifest.Validate([]byte(tt.yaml)), schema.ErrInvalidDocument)
		})
	}
}

func TestDecode_ParseErrors(t *testing.T) {
	t.Parallel()

	_, err := newDecoder(t).Decode([]byte(" \n"))
	require.ErrorIs(t, err, manifest.ErrEmptyManifest)

	_, err = newDecoder(t).Decode([]byte("# only a comment\n"))
	require.ErrorIs(t, err, manifest.ErrEmptyManifest)

	_, err = newDecoder(t).Decode([]byte("program: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")
}

func TestDecode_LocatedErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr error
		line    int
		column  int
	}{
		{
			name: "invalid literal argument",
			yaml: `program:
  - call:
      function: ip_subnet
      args:
        - value: {path: .ip}
        - keyword: subnet
          value: {literal: /200}
`,
			wantErr: remap.ErrInvalidArgument,
			line:    3,
			column:  7,
		},
		{
			name: "unknown function",
			yaml: `program:
  - block:
      - call: {function: nope}
`,
			wantErr: remap.ErrUnknownFunction,
			line:    3,
			column:  15,
		},
		{
			name:    "invalid path",
			yaml:    "program:\n  - path: foo..bar\n",
			wantErr: path.ErrInvalidPath,
			line:    2,
			column:  11,
		},
		{
			name:    "invalid assignment target",
			yaml:    "program:\n  - assign: {path: '[x]', value: {literal: 1}}\n",
			wantErr: path.ErrInvalidPath,
			line:    2,
			column:  20,
		},
		{
			name:    "path argument required",
			yaml:    "program:\n  - call: {function: del, args: [{value: {literal: a}}]}\n",
			wantErr: remap.ErrExpectedPath,
			line:    2,
			column:  11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newDecoder(t).Decode([]byte(tt.yaml))
			require.ErrorIs(t, err, tt.wantErr)

			var located *manifest.Error
			require.True(t, errors.As(err, &located))
			assert.Equal(t, tt.line, located.Line)
			assert.Equal(t, tt.column, located.Column)
			assert.Contains(t, err.Error(), fmt.Sprintf("manifest line %d column %d", tt.line, tt.column))
		})
	}
}

func TestManifest_CompileConstraint(t *testing.T) {
	t.Parallel()

	m, err := newDecoder(t).Decode([]byte("program:\n  - path: .a\n"))
	require.NoError(t, err)

	_, err = m.Compile(remap.WithConstraint(remap.TypeConstraint{
		TypeDef: remap.TypeDef{Kind: value.KindBoolean},
	}))
	require.ErrorIs(t, err, remap.ErrResolvesTo)
}
