package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/murker/pkg/sequence"
)

// ForEachLimit runs action for every element of the iterator with at most limit
// goroutines in flight. The first error cancels ctx for the remaining actions
// and is returned once all started actions finish. A limit below one means no limit.
// Cancelling ctx stops scheduling new actions and ForEachLimit returns ctx.Err().
func ForEachLimit[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	group, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	for value := range i.Seq() {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return action(gctx, value)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// ParallelMap applies mapFn to each element with at most workers goroutines,
// preserving order. It stops at the first error.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))
	err := ForEachLimit(ctx, sequence.From(indices(len(in))), workers, func(ctx context.Context, idx int) error {
		r, err := mapFn(ctx, in[idx])
		if err != nil {
			return err
		}
		out[idx] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
