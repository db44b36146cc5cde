// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package expression provides the built-in node types of a remap program:
literals, record paths, variables, boolean negation, blocks, assignments,
conditionals and binary operators.

Every node implements [remap.Expression]. Nodes are immutable once built
and own their children exclusively, so a compiled tree can be shared by
concurrent executions.

	// .host = ip_subnet(.ip, "/24"); !.internal
	prog, err := remap.Compile([]remap.Expression{
	    expression.NewPathAssignment(path.MustParse("host"), call),
	    expression.NewNot(expression.NewPath(path.MustParse("internal"))),
	})
*/
package expression
