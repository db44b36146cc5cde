// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package transform runs compiled remap programs against records on behalf of
an event pipeline.

A Runner compiles manifests with the configured function library, executes
programs with a fresh ProgramState per record and applies the configured
error policy when execution fails:

	runner, err := transform.New(transform.WithConfig(cfg))
	if err != nil {
		return err
	}
	program, err := runner.Compile(manifestYAML)
	if err != nil {
		return err
	}
	outcome := runner.Process(ctx, program, record)
	if outcome.Dropped {
		return nil
	}

Failed records are dropped, forwarded exactly as they arrived, or
annotated with the error message, depending on errors.policy. Panics
raised by function nodes are recovered and handled as runtime errors.

ProcessBatch executes a slice of records with bounded concurrency. A
Program may be shared across goroutines; records may not.
*/
package transform
