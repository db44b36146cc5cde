// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"fmt"
	"maps"
	"slices"

	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/value"
)

// Record is an Object backed by a map value. Writes copy the containers
// along the written path, so values handed out by Get and Snapshot are
// never mutated afterwards.
type Record struct {
	root value.Value
}

var (
	_ Object      = (*Record)(nil)
	_ Snapshotter = (*Record)(nil)
)

// NewRecord creates a record holding fields. A nil map creates an empty record.
func NewRecord(fields map[string]value.Value) *Record {
	return &Record{root: value.Map(fields)}
}

// RecordFromNative creates a record from plain Go data such as decoded JSON.
func RecordFromNative(fields map[string]any) (*Record, error) {
	v, err := value.FromNative(fields)
	if err != nil {
		return nil, fmt.Errorf("converting record: %w", err)
	}
	return &Record{root: v}, nil
}

// Value returns the whole record as a map value.
func (r *Record) Value() value.Value {
	return r.root
}

// Snapshot implements Snapshotter.
func (r *Record) Snapshot() value.Value {
	return r.root
}

// Restore implements Snapshotter. The value must be a map.
func (r *Record) Restore(v value.Value) error {
	if v.Kind() != value.KindMap {
		return fmt.Errorf("%w: record root must be a map, got %s", ErrInvalidTarget, v.Kind())
	}
	r.root = v
	return nil
}

// Get implements Object.
func (r *Record) Get(p path.Path) (value.Value, bool) {
	cur := r.root
	for _, seg := range p.Segments() {
		next, ok := child(cur, seg)
		if !ok {
			return value.Value{}, false
		}
		cur = next
	}
	return cur, true
}

func child(v value.Value, seg path.Segment) (value.Value, bool) {
	if seg.IsIndex() {
		arr, err := v.TryArray()
		if err != nil || seg.IndexValue() >= len(arr) {
			return value.Value{}, false
		}
		return arr[seg.IndexValue()], true
	}
	m, err := v.TryMap()
	if err != nil {
		return value.Value{}, false
	}
	c, ok := m[seg.FieldName()]
	return c, ok
}

// Set implements Object.
func (r *Record) Set(p path.Path, v value.Value) error {
	if p.IsRoot() {
		return r.Restore(v)
	}
	root, err := setIn(r.root, p.Segments(), v)
	if err != nil {
		return fmt.Errorf("setting %s: %w", p, err)
	}
	r.root = root
	return nil
}

func setIn(cur value.Value, segs []path.Segment, v value.Value) (value.Value, error) {
	if len(segs) == 0 {
		return v, nil
	}
	seg := segs[0]

	if seg.IsIndex() {
		var arr []value.Value
		switch cur.Kind() {
		case value.KindNull:
		case value.KindArray:
			arr, _ = cur.TryArray()
		default:
			return value.Value{}, fmt.Errorf("%w: cannot index into %s", ErrInvalidTarget, cur.Kind())
		}
		for len(arr) <= seg.IndexValue() {
			arr = append(arr, value.Null())
		}
		next, err := setIn(arr[seg.IndexValue()], segs[1:], v)
		if err != nil {
			return value.Value{}, err
		}
		arr[seg.IndexValue()] = next
		return value.Array(arr), nil
	}

	var m map[string]value.Value
	switch cur.Kind() {
	case value.KindNull:
		m = make(map[string]value.Value, 1)
	case value.KindMap:
		m, _ = cur.TryMap()
	default:
		return value.Value{}, fmt.Errorf("%w: cannot set field %q on %s", ErrInvalidTarget, seg.FieldName(), cur.Kind())
	}
	next, err := setIn(m[seg.FieldName()], segs[1:], v)
	if err != nil {
		return value.Value{}, err
	}
	m[seg.FieldName()] = next
	return value.Map(m), nil
}

// Remove implements Object. Removing the root clears the record and
// removing a missing path does nothing.
func (r *Record) Remove(p path.Path, recursive bool) {
	if p.IsRoot() {
		r.root = value.Map(nil)
		return
	}
	if root, removed := removeIn(r.root, p.Segments(), recursive); removed {
		r.root = root
	}
}

func removeIn(cur value.Value, segs []path.Segment, recursive bool) (value.Value, bool) {
	seg := segs[0]
	c, ok := child(cur, seg)
	if !ok {
		return cur, false
	}

	prune := len(segs) == 1
	if !prune {
		next, removed := removeIn(c, segs[1:], recursive)
		if !removed {
			return cur, false
		}
		if !recursive || !isEmptyContainer(next) {
			return replaceChild(cur, seg, next), true
		}
		prune = true
	}

	if seg.IsIndex() {
		arr, _ := cur.TryArray()
		return value.Array(slices.Delete(arr, seg.IndexValue(), seg.IndexValue()+1)), true
	}
	m, _ := cur.TryMap()
	delete(m, seg.FieldName())
	return value.Map(m), true
}

func replaceChild(cur value.Value, seg path.Segment, next value.Value) value.Value {
	if seg.IsIndex() {
		arr, _ := cur.TryArray()
		arr[seg.IndexValue()] = next
		return value.Array(arr)
	}
	m, _ := cur.TryMap()
	m[seg.FieldName()] = next
	return value.Map(m)
}

func isEmptyContainer(v value.Value) bool {
	switch v.Kind() {
	case value.KindArray:
		arr, _ := v.TryArray()
		return len(arr) == 0
	case value.KindMap:
		m, _ := v.TryMap()
		return len(m) == 0
	default:
		return false
	}
}

// Paths implements Object. Leaves are scalars and empty containers; the
// result is sorted by path.Compare.
func (r *Record) Paths() []path.Path {
	var out []path.Path
	fields, _ := r.root.TryMap()
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		collectLeaves(fields[k], path.New(path.Field(k)), &out)
	}
	return out
}

func collectLeaves(v value.Value, at path.Path, out *[]path.Path) {
	switch v.Kind() {
	case value.KindMap:
		fields, _ := v.TryMap()
		if len(fields) == 0 {
			*out = append(*out, at)
			return
		}
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			collectLeaves(fields[k], at.Append(path.Field(k)), out)
		}
	case value.KindArray:
		elems, _ := v.TryArray()
		if len(elems) == 0 {
			*out = append(*out, at)
			return
		}
		for i, elem := range elems {
			collectLeaves(elem, at.Append(path.Index(i)), out)
		}
	default:
		*out = append(*out, at)
	}
}
