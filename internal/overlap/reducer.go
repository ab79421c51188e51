package overlap

import (
	"context"
	"fmt"
	"slices"
)

// Options configures a Reducer.
type Options struct {
	// Parallel scores the rows of each round concurrently.
	Parallel bool

	// Workers caps the number of concurrent row scorers when Parallel is set.
	// Zero or negative means no cap.
	Workers int

	// OnStep is called synchronously after every round. It may be nil.
	OnStep func(Step)
}

// Result holds the outcome of a reduction.
type Result struct {
	Combined string
	Steps    []Step
}

// Fallback reports whether the reduction ended in a fallback concatenation.
func (r *Result) Fallback() bool {
	return len(r.Steps) > 0 && r.Steps[len(r.Steps)-1].Outcome == OutcomeFallback
}

// Reducer merges a fragment set into a single string by repeatedly applying
// the best scoring pairwise merge. A Reducer holds no per-call state and may
// be shared between goroutines.
type Reducer struct {
	opts Options
}

// NewReducer creates a Reducer with the given options.
func NewReducer(opts Options) *Reducer {
	return &Reducer{opts: opts}
}

// Merge reduces fragments sequentially and returns the reassembled string.
// An empty input yields the empty string; a single fragment is returned as is.
func Merge(fragments []string) string {
	// Reduce only fails on cancellation, and a background context is never canceled.
	res, _ := NewReducer(Options{}).Reduce(context.Background(), fragments)
	return res.Combined
}

// Reduce runs the reduction loop over a private copy of fragments.
//
// Each round scores every ordered pair of the working set. When the best
// score is positive the first fragment is overwritten with the merge result
// and the second is removed. When nothing overlaps, the whole working set is
// concatenated in order and the loop ends. Every round shrinks the working set
// by at least one, so at most len(fragments)-1 rounds run.
//
// The only error is cancellation of ctx, checked between rounds.
func (r *Reducer) Reduce(ctx context.Context, fragments []string) (*Result, error) {
	res := &Result{}
	if len(fragments) == 0 {
		return res, nil
	}

	parts := slices.Clone(fragments)
	for round := 1; len(parts) > 1; round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reduce: round %d: %w", round, err)
		}

		best, err := r.findBest(ctx, parts)
		if err != nil {
			return nil, fmt.Errorf("reduce: round %d: %w", round, err)
		}

		step := Step{Round: round, Before: len(parts)}
		if best.Score > 0 {
			step.Outcome = OutcomePaired
			step.First = parts[best.FirstIndex]
			step.Second = parts[best.SecondIndex]

			// Both indices refer to the pre-mutation working set: overwrite
			// first, then remove.
			parts[best.FirstIndex] = best.Combined
			parts = slices.Delete(parts, best.SecondIndex, best.SecondIndex+1)
		} else {
			best = fallback(parts)
			step.Outcome = OutcomeFallback
			parts = []string{best.Combined}
		}
		step.Match = best
		step.After = len(parts)

		res.Steps = append(res.Steps, step)
		r.emit(step)
	}

	res.Combined = parts[0]
	return res, nil
}

func (r *Reducer) findBest(ctx context.Context, parts []string) (Match, error) {
	if r.opts.Parallel {
		return bestMatchParallel(ctx, parts, r.opts.Workers)
	}
	return bestMatch(parts), nil
}

// emit reports a step if a callback is registered.
func (r *Reducer) emit(step Step) {
	if r.opts.OnStep != nil {
		r.opts.OnStep(step)
	}
}
