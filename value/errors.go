// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"errors"
	"fmt"
)

// Sentinel errors for value conversions.
var (
	// ErrKindMismatch is returned when a Value does not hold the requested kind.
	ErrKindMismatch = errors.New("value kind mismatch")

	// ErrUnsupportedNative is returned when a Go value has no Value equivalent.
	ErrUnsupportedNative = errors.New("unsupported native value")
)

// Error describes a failed conversion between value kinds.
type Error struct {
	Expected Kind
	Got      Kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// Unwrap returns ErrKindMismatch so callers can match with errors.Is.
func (*Error) Unwrap() error {
	return ErrKindMismatch
}

func mismatch(expected, got Kind) error {
	return &Error{Expected: expected, Got: got}
}
