// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"math"
	"time"
)

// FromNative converts plain Go data into a Value. Supported inputs are nil,
// bool, signed and unsigned integers, floats, string, []byte, time.Time,
// []any, map[string]any, map[any]any with string keys, and Value itself.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return fromUnsigned(uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		return fromUnsigned(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case time.Time:
		return Timestamp(x), nil
	case []any:
		elems := make([]Value, 0, len(x))
		for i, elem := range x {
			ev, err := FromNative(elem)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return Array(elems), nil
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, elem := range x {
			ev, err := FromNative(elem)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = ev
		}
		return Map(m), nil
	case map[any]any:
		m := make(map[string]Value, len(x))
		for k, elem := range x {
			key, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: map key of type %T", ErrUnsupportedNative, k)
			}
			ev, err := FromNative(elem)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			m[key] = ev
		}
		return Map(m), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedNative, v)
	}
}

func fromUnsigned(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("%w: unsigned integer %d overflows int64", ErrUnsupportedNative, u)
	}
	return Integer(int64(u)), nil
}

// Native converts v into plain Go data: nil, bool, int64, float64, string,
// time.Time, []any or map[string]any.
func (v Value) Native() any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindString:
		return string(v.data.([]byte))
	case KindArray:
		elems := v.data.([]Value)
		out := make([]any, len(elems))
		for i, elem := range elems {
			out[i] = elem.Native()
		}
		return out
	case KindMap:
		m := v.data.(map[string]Value)
		out := make(map[string]any, len(m))
		for k, elem := range m {
			out[k] = elem.Native()
		}
		return out
	default:
		return v.data
	}
}
