// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package object defines the record accessor contract that remap expressions
execute against, plus a map-backed implementation.

The [Object] interface is the only view the engine has of an event: it
reads, writes, removes and enumerates path-addressed values and never
assumes a backing representation.

# Basic Usage

	rec, err := object.RecordFromNative(map[string]any{
	    "foo": "x",
	    "bar": map[string]any{"baz": 1, "qux": 2},
	})
	v, ok := rec.Get(path.MustParse("bar.baz"))
	rec.Remove(path.MustParse("bar.qux"), true)

# Testing

A gomock mock is available in the mocks sub-package:

	ctrl := gomock.NewController(t)
	obj := mocks.NewMockObject(ctrl)
	obj.EXPECT().Paths().Return(nil)

# Concurrency

A [Record] is not safe for concurrent use. Each execution of a compiled
program must be given its own record.
*/
package object
