// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package path

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a field name or an array index.
type Segment struct {
	field   string
	index   int
	isIndex bool
}

// Field returns a field-name segment.
func Field(name string) Segment {
	return Segment{field: name}
}

// Index returns an array-index segment.
func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether s addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// FieldName returns the field name of a field segment.
func (s Segment) FieldName() string { return s.field }

// IndexValue returns the index of an index segment.
func (s Segment) IndexValue() int { return s.index }

// String renders the segment the way it appears inside a path.
func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	if isBareField(s.field) {
		return s.field
	}
	return strconv.Quote(s.field)
}

func compareSegments(a, b Segment) int {
	switch {
	case a.isIndex && b.isIndex:
		return cmp.Compare(a.index, b.index)
	case a.isIndex:
		return 1
	case b.isIndex:
		return -1
	default:
		return strings.Compare(a.field, b.field)
	}
}

// Path is an immutable sequence of segments.
type Path struct {
	segments []Segment
}

// Root returns the empty path addressing the whole record.
func Root() Path { return Path{} }

// New builds a path from segments.
func New(segments ...Segment) Path {
	return Path{segments: slices.Clone(segments)}
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []Segment {
	return slices.Clone(p.segments)
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// Segment returns the i-th segment.
func (p Path) Segment(i int) Segment { return p.segments[i] }

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool { return len(p.segments) == 0 }

// Append returns a new path with segs appended.
func (p Path) Append(segs ...Segment) Path {
	out := make([]Segment, 0, len(p.segments)+len(segs))
	out = append(out, p.segments...)
	out = append(out, segs...)
	return Path{segments: out}
}

// Parent returns p without its last segment. The parent of the root is the root.
func (p Path) Parent() Path {
	if p.IsRoot() {
		return p
	}
	return Path{segments: p.segments[:len(p.segments)-1]}
}

// Last returns the final segment and false for the root path.
func (p Path) Last() (Segment, bool) {
	if p.IsRoot() {
		return Segment{}, false
	}
	return p.segments[len(p.segments)-1], true
}

// Equal reports whether p and other address the same location.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// StartsWith reports whether p is prefix itself or one of its descendants.
// The comparison is segment-wise, so "bar.bazinga" does not start with
// "bar.baz".
func (p Path) StartsWith(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	return slices.Equal(p.segments[:len(prefix.segments)], prefix.segments)
}

// Compare orders paths segment by segment; a path sorts before its descendants.
func (p Path) Compare(other Path) int {
	return slices.CompareFunc(p.segments, other.segments, compareSegments)
}

// String renders the path without a leading dot; the root renders as ".".
func (p Path) String() string {
	if p.IsRoot() {
		return "."
	}
	var b strings.Builder
	for i, s := range p.segments {
		if i > 0 && !s.isIndex {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}
