package overlap

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// bestMatchParallel scores every row of the working set in its own goroutine
// and combines the row winners in ascending row order, which yields the same
// match as bestMatch. parts must not be mutated until it returns.
//
// The first failure (a canceled ctx) cancels the derived context so rows not
// yet started return early.
func bestMatchParallel(ctx context.Context, parts []string, workers int) (Match, error) {
	if len(parts) < 2 {
		return NoMatch, nil
	}

	rows := make([]Match, len(parts)-1)
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = bestInRow(parts, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return NoMatch, err
	}

	best := NoMatch
	for _, m := range rows {
		if m.Score > best.Score {
			best = m
		}
	}
	return best, nil
}
