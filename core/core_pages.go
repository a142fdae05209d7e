// core_pages.go
// Ordered fan‑out of independent per‑page work.

package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapPages calls fn for every page index in [0, n) with at most workers calls
// in flight, and returns the per‑page results concatenated in page order.
// The first error cancels ctx for the remaining pages and is returned alone.
func MapPages[T any](ctx context.Context, n, workers int, fn func(ctx context.Context, page int) ([]T, error)) ([]T, error) {
	if workers < 1 {
		workers = 1
	}
	slots := make([][]T, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := fn(gctx, i)
			if err != nil {
				return err
			}
			slots[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	all := make([]T, 0, total)
	for _, s := range slots {
		all = append(all, s...)
	}
	return all, nil
}
