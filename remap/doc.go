// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package remap is the compilation and execution core of the remap event
transformation language.

Every node of a program implements [Expression]: Execute produces a value
(or a runtime error) against an event, and TypeDef describes statically
whether that can fail, whether the result may be absent, and which value
kinds it may produce. [Compile] walks a program once, computing type
descriptors bottom-up and enforcing the caller's [TypeConstraint]; the
resulting [Program] is immutable and may be executed concurrently, as long
as every execution brings its own [ProgramState] and record.

# Functions

Built-in functions implement [Function]. A [Registry] resolves a call's
positional and keyword arguments against the declared [Parameter] list and
hands the function an [ArgumentList] to compile into an Expression:

	reg, err := remap.NewRegistry(functions.All()...)
	call, err := reg.Call("ip_subnet",
	    remap.Argument{Expr: expression.NewPath(path.MustParse("ip"))},
	    remap.Argument{Keyword: "subnet", Expr: expression.NewLiteral(value.String("/16"))},
	)

# Compiling and Executing

	prog, err := remap.Compile([]remap.Expression{call},
	    remap.WithConstraint(remap.TypeConstraint{
	        TypeDef: remap.TypeDef{Fallible: true, Kind: value.KindString},
	    }),
	)
	result, err := prog.Execute(remap.NewProgramState(), record)

# Error Handling

Compile-time failures are [*CompileError] values and runtime failures are
[*RuntimeError] values. Both wrap sentinel errors for use with errors.Is:

	var compileErr *remap.CompileError
	if errors.As(err, &compileErr) && errors.Is(err, remap.ErrMissingArgument) {
	    fmt.Println(compileErr.Function, compileErr.Keyword)
	}
*/
package remap
