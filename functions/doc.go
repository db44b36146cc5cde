// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package functions is the built-in function library of remap.

[All] returns every built-in, ready to be handed to [remap.NewRegistry]:

	reg, err := remap.NewRegistry(functions.All()...)
	call, err := reg.Call("ip_subnet",
	    remap.Argument{Expr: expression.NewPath(path.MustParse("client.ip"))},
	    remap.Argument{Expr: expression.NewLiteral(value.String("/24"))},
	)

# Built-ins

  - ip_subnet(value, subnet): masks an IPv4 or IPv6 address with a /N
    prefix or an address-shaped mask.
  - only_fields(1, ..., 16): removes every field that is not one of the
    given paths or below one.
  - del(1, ..., 16): removes the given paths.
  - exists(path): reports whether a path is present.
  - to_string(value): renders a scalar as a string.
  - upcase(value), downcase(value): Unicode case mapping.
  - parse_timestamp(value): parses a date string in any common layout.
  - cel(source): evaluates a CEL expression with the record bound to event.
*/
package functions
