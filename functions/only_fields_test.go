// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/remap/object/mocks"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

func TestOnlyFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keep []string
		in   map[string]any
		want map[string]any
	}{
		{
			name: "keeps one nested field",
			keep: []string{"bar.baz"},
			in:   map[string]any{"foo": "x", "bar": map[string]any{"baz": int64(1), "qux": int64(2)}},
			want: map[string]any{"bar": map[string]any{"baz": int64(1)}},
		},
		{
			name: "keeps descendants of a retained path",
			keep: []string{"bar"},
			in:   map[string]any{"foo": "x", "bar": map[string]any{"baz": int64(1), "qux": int64(2)}},
			want: map[string]any{"bar": map[string]any{"baz": int64(1), "qux": int64(2)}},
		},
		{
			name: "segment boundaries",
			keep: []string{"bar.baz"},
			in:   map[string]any{"bar": map[string]any{"baz": int64(1), "bazinga": int64(2)}},
			want: map[string]any{"bar": map[string]any{"baz": int64(1)}},
		},
		{
			name: "several paths",
			keep: []string{"foo", "bar.qux"},
			in:   map[string]any{"foo": "x", "bar": map[string]any{"baz": int64(1), "qux": int64(2)}, "z": true},
			want: map[string]any{"foo": "x", "bar": map[string]any{"qux": int64(2)}},
		},
		{
			name: "prunes emptied parents",
			keep: []string{"foo"},
			in:   map[string]any{"foo": "x", "bar": map[string]any{"baz": int64(1)}},
			want: map[string]any{"foo": "x"},
		},
		{
			name: "array elements",
			keep: []string{"list"},
			in:   map[string]any{"list": []any{"a", "b"}, "other": []any{"c", "d", "e"}},
			want: map[string]any{"list": []any{"a", "b"}},
		},
		{
			name: "array element keeps its index",
			keep: []string{"list[1]"},
			in:   map[string]any{"list": []any{"a", "b", "c"}, "foo": "x"},
			want: map[string]any{"list": []any{nil, "b"}},
		},
		{
			name: "field of an array element",
			keep: []string{"items[1].id"},
			in: map[string]any{"items": []any{
				map[string]any{"id": int64(1), "x": int64(2)},
				map[string]any{"id": int64(3), "x": int64(4)},
			}},
			want: map[string]any{"items": []any{nil, map[string]any{"id": int64(3)}}},
		},
		{
			name: "nothing retained",
			keep: []string{"missing"},
			in:   map[string]any{"foo": "x"},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := make([]remap.Argument, 0, len(tt.keep))
			for _, k := range tt.keep {
				args = append(args, pathArg(k))
			}
			expr := call(t, "only_fields", args...)
			assert.Equal(t, remap.TypeDef{Kind: value.KindNull}, expr.TypeDef(remap.NewCompilerState()))

			rec := record(t, tt.in)
			got, err := execute(t, expr, rec)
			require.NoError(t, err)
			assert.True(t, got.IsNull())
			assert.Equal(t, tt.want, rec.Value().Native())

			// Running again on the output changes nothing.
			_, err = execute(t, expr, rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Value().Native())
		})
	}
}

func TestOnlyFields_Keywords(t *testing.T) {
	t.Parallel()

	expr := call(t, "only_fields", remap.Argument{Keyword: "3", Expr: pathArg("c").Expr}, pathArg("a"))
	rec := record(t, map[string]any{"a": int64(1), "b": int64(2), "c": int64(3)})

	_, err := execute(t, expr, rec)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1), "c": int64(3)}, rec.Value().Native())
}

func TestOnlyFields_TooManyPaths(t *testing.T) {
	t.Parallel()

	args := make([]remap.Argument, 17)
	for i := range args {
		args[i] = pathArg("a")
	}
	_, err := newRegistry(t).Call("only_fields", args...)
	require.ErrorIs(t, err, remap.ErrTooManyArguments)
}

func TestOnlyFields_RemovesInDescendingOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	obj := mocks.NewMockObject(ctrl)

	obj.EXPECT().Paths().Return([]path.Path{
		path.MustParse("foo"),
		path.MustParse("keep.x"),
		path.MustParse("list[0]"),
		path.MustParse("list[1]"),
	})
	gomock.InOrder(
		obj.EXPECT().Remove(path.MustParse("list[1]"), true),
		obj.EXPECT().Remove(path.MustParse("list[0]"), true),
		obj.EXPECT().Remove(path.MustParse("foo"), true),
	)

	_, err := execute(t, call(t, "only_fields", pathArg("keep")), obj)
	require.NoError(t, err)
}

func TestOnlyFields_NullsElementsBeforeRetainedIndex(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	obj := mocks.NewMockObject(ctrl)

	obj.EXPECT().Paths().Return([]path.Path{
		path.MustParse("foo"),
		path.MustParse("list[0]"),
		path.MustParse("list[1]"),
		path.MustParse("list[2]"),
	})
	obj.EXPECT().Set(path.MustParse("list[0]"), value.Null()).Return(nil)
	gomock.InOrder(
		obj.EXPECT().Remove(path.MustParse("list[2]"), true),
		obj.EXPECT().Remove(path.MustParse("foo"), true),
	)

	_, err := execute(t, call(t, "only_fields", pathArg("list[1]")), obj)
	require.NoError(t, err)
}

func TestOnlyFields_UpdateState(t *testing.T) {
	t.Parallel()

	state := remap.NewCompilerState()
	for _, p := range []string{"keep.a", "keepsake", "drop"} {
		state.SetPathType(path.MustParse(p), remap.TypeDef{Kind: value.KindString})
	}
	state.SetVariableType("v", remap.TypeDef{Kind: value.KindString})

	remap.UpdateState(call(t, "only_fields", pathArg("keep")), state)

	_, ok := state.PathType(path.MustParse("keep.a"))
	assert.True(t, ok)
	_, ok = state.PathType(path.MustParse("keepsake"))
	assert.False(t, ok)
	_, ok = state.PathType(path.MustParse("drop"))
	assert.False(t, ok)
	_, ok = state.VariableType("v")
	assert.True(t, ok, "variables live outside the record")
}
