// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/remap/object"
)

// ProcessBatch processes records concurrently, bounded by the configured
// batch concurrency. Outcomes are returned in record order. Program
// failures are reported per record; the returned error is only set when
// ctx is cancelled before every record was processed.
func (r *Runner) ProcessBatch(ctx context.Context, program *Program, records []object.Object) ([]Outcome, error) {
	outcomes := make([]Outcome, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Batch.Concurrency)

	for i, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.Process(gctx, program, rec)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
