// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Value is an immutable runtime value. The zero Value is null.
//
// Array and map payloads are shared, not copied, by the accessors; callers
// must treat them as read-only and build new Values to change them.
type Value struct {
	kind Kind
	data any
}

// Null returns the null value.
func Null() Value { return Value{} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{kind: KindBoolean, data: b} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, data: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, data: f} }

// String returns a string value holding the bytes of s.
func String(s string) Value { return Value{kind: KindString, data: []byte(s)} }

// Bytes returns a string value holding a copy of b.
func Bytes(b []byte) Value { return Value{kind: KindString, data: bytes.Clone(b)} }

// Timestamp returns a timestamp value.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, data: t} }

// Array returns an array value. The slice is owned by the Value afterwards.
func Array(vs []Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: KindArray, data: vs}
}

// Map returns a map value. The map is owned by the Value afterwards.
func Map(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindMap, data: m}
}

// Kind returns the single kind of v.
func (v Value) Kind() Kind {
	if v.kind == 0 {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// TryBoolean returns the boolean payload of v.
func (v Value) TryBoolean() (bool, error) {
	if v.kind != KindBoolean {
		return false, mismatch(KindBoolean, v.Kind())
	}
	return v.data.(bool), nil
}

// TryInteger returns the integer payload of v.
func (v Value) TryInteger() (int64, error) {
	if v.kind != KindInteger {
		return 0, mismatch(KindInteger, v.Kind())
	}
	return v.data.(int64), nil
}

// TryFloat returns the float payload of v.
func (v Value) TryFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, mismatch(KindFloat, v.Kind())
	}
	return v.data.(float64), nil
}

// TryBytes returns a copy of the raw bytes of a string value.
func (v Value) TryBytes() ([]byte, error) {
	if v.kind != KindString {
		return nil, mismatch(KindString, v.Kind())
	}
	return bytes.Clone(v.data.([]byte)), nil
}

// TryString returns the payload of a string value as a Go string.
func (v Value) TryString() (string, error) {
	if v.kind != KindString {
		return "", mismatch(KindString, v.Kind())
	}
	return string(v.data.([]byte)), nil
}

// TryTimestamp returns the timestamp payload of v.
func (v Value) TryTimestamp() (time.Time, error) {
	if v.kind != KindTimestamp {
		return time.Time{}, mismatch(KindTimestamp, v.Kind())
	}
	return v.data.(time.Time), nil
}

// TryArray returns a shallow copy of the elements of an array value.
func (v Value) TryArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, mismatch(KindArray, v.Kind())
	}
	return slices.Clone(v.data.([]Value)), nil
}

// TryMap returns a shallow copy of the entries of a map value.
func (v Value) TryMap() (map[string]Value, error) {
	if v.kind != KindMap {
		return nil, mismatch(KindMap, v.Kind())
	}
	return maps.Clone(v.data.(map[string]Value)), nil
}

// Equal reports whether a and b hold the same kind and deeply equal payloads.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindString:
		return bytes.Equal(a.data.([]byte), b.data.([]byte))
	case KindTimestamp:
		return a.data.(time.Time).Equal(b.data.(time.Time))
	case KindArray:
		return slices.EqualFunc(a.data.([]Value), b.data.([]Value), Equal)
	case KindMap:
		am, bm := a.data.(map[string]Value), b.data.(map[string]Value)
		if len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return a.data == b.data
	}
}

// String renders v for display. Strings render unquoted at the top level
// and quoted inside containers.
func (v Value) String() string {
	if v.kind == KindString {
		return string(v.data.([]byte))
	}
	var b strings.Builder
	v.render(&b)
	return b.String()
}

func (v Value) render(b *strings.Builder) {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBoolean:
		b.WriteString(strconv.FormatBool(v.data.(bool)))
	case KindInteger:
		b.WriteString(strconv.FormatInt(v.data.(int64), 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.data.(float64), 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(string(v.data.([]byte))))
	case KindTimestamp:
		b.WriteString(v.data.(time.Time).Format(time.RFC3339Nano))
	case KindArray:
		b.WriteByte('[')
		for i, elem := range v.data.([]Value) {
			if i > 0 {
				b.WriteString(", ")
			}
			elem.render(b)
		}
		b.WriteByte(']')
	case KindMap:
		m := v.data.(map[string]Value)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", k)
			m[k].render(b)
		}
		b.WriteByte('}')
	}
}
