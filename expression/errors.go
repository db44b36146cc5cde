// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import "errors"

// Sentinel errors raised while executing expressions.
var (
	// ErrDivideByZero is returned by division and remainder with a zero divisor.
	ErrDivideByZero = errors.New("divide by zero")

	// ErrInvalidOperands is returned when an operator cannot be applied to its operand kinds.
	ErrInvalidOperands = errors.New("invalid operands")
)
