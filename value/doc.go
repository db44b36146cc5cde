// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package value provides the runtime value model shared by every remap
expression.

A [Value] is an immutable tagged union over the kinds an event field can
hold: null, boolean, integer, float, string (a byte sequence), timestamp,
array and map. A [Kind] is a bit set over those tags. Compile-time type
descriptors use a Kind union to describe every tag an expression may
produce, while a runtime Value always carries exactly one.

# Conversions

The Try accessors return the typed payload or a [*Error] naming the
expected and actual kinds:

	b, err := v.TryBoolean()
	var kindErr *value.Error
	if errors.As(err, &kindErr) {
	    fmt.Println(kindErr.Expected, kindErr.Got)
	}

[FromNative] and [Value.Native] convert between Values and plain Go data
(the shapes produced by encoding/json and gopkg.in/yaml.v3).
*/
package value
