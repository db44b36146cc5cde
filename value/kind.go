// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package value

import "strings"

// Kind is a set of value tags. A single-bit Kind classifies a runtime
// Value; a multi-bit Kind is a union used by static type descriptors.
type Kind uint16

// Individual kinds. The declaration order is the rendering order of unions.
const (
	KindNull Kind = 1 << iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindTimestamp
	KindArray
	KindMap
)

const (
	// KindNumeric is the union of integer and float.
	KindNumeric = KindInteger | KindFloat

	// KindScalar is every kind that is not a container.
	KindScalar = KindNull | KindBoolean | KindNumeric | KindString | KindTimestamp

	// KindAny is the union of every kind.
	KindAny = KindScalar | KindArray | KindMap
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindNull, "null"},
	{KindBoolean, "boolean"},
	{KindInteger, "integer"},
	{KindFloat, "float"},
	{KindString, "string"},
	{KindTimestamp, "timestamp"},
	{KindArray, "array"},
	{KindMap, "map"},
}

// Contains reports whether every kind in other is also in k.
func (k Kind) Contains(other Kind) bool {
	return k&other == other
}

// Intersects reports whether k and other share at least one kind.
func (k Kind) Intersects(other Kind) bool {
	return k&other != 0
}

// IsExactly reports whether k is exactly the set other.
func (k Kind) IsExactly(other Kind) bool {
	return k == other
}

// IsEmpty reports whether k holds no kinds at all.
func (k Kind) IsEmpty() bool {
	return k == 0
}

// Union returns the set of kinds in either k or other.
func (k Kind) Union(other Kind) Kind {
	return k | other
}

// Kinds returns the individual kinds of k in declaration order.
func (k Kind) Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for _, kn := range kindNames {
		if k.Contains(kn.kind) {
			kinds = append(kinds, kn.kind)
		}
	}
	return kinds
}

// String renders single kinds by name and unions as "a or b".
func (k Kind) String() string {
	if k == KindAny {
		return "any"
	}
	if k.IsEmpty() {
		return "never"
	}
	names := make([]string, 0, len(kindNames))
	for _, kn := range kindNames {
		if k.Contains(kn.kind) {
			names = append(names, kn.name)
		}
	}
	return strings.Join(names, " or ")
}
