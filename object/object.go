// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package object

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=object.go -destination=mocks/mock_object.go -package=mocks Object

import (
	"errors"

	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/value"
)

// ErrInvalidTarget is returned by Set when a path segment cannot be applied
// to the value already stored at that location.
var ErrInvalidTarget = errors.New("invalid assignment target")

// Object is the path-addressed view of an event.
type Object interface {
	// Get returns the value at p and whether it exists.
	Get(p path.Path) (value.Value, bool)
	// Set stores v at p, creating intermediate containers as needed.
	Set(p path.Path, v value.Value) error
	// Remove deletes the value at p and everything beneath it. With
	// recursive set, ancestors left empty by the removal are pruned too.
	Remove(p path.Path, recursive bool)
	// Paths returns every populated leaf path in no particular order.
	Paths() []path.Path
}

// Snapshotter is implemented by objects that can capture and restore
// their full contents.
type Snapshotter interface {
	Snapshot() value.Value
	Restore(v value.Value) error
}
