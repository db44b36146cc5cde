// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package path provides immutable field paths into an event record.

A [Path] is an ordered list of segments, each either a field name or an
array index. Paths are used both as expression operands and as keys into
the record accessor:

	p := path.MustParse(`.bar.baz[0]."odd key"`)
	p.String()                             // bar.baz[0]."odd key"
	p.StartsWith(path.MustParse("bar"))    // true
	p.StartsWith(path.MustParse("bar.ba")) // false

The empty path is the root of the record and renders as ".".
*/
package path
