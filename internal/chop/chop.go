// Package chop splits a known string into shuffled, overlapping fragments.
// It produces test input for the overlap reducer.
package chop

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var (
	// ErrInvalidOptions is returned for option values that cannot produce fragments.
	ErrInvalidOptions = errors.New("chop: invalid options")

	// ErrTooShort is returned when the longest remaining piece is too short to
	// cut while keeping MinOverlap bytes on both sides of the cut.
	ErrTooShort = errors.New("chop: input too short for requested cuts")
)

// Default option values.
const (
	DefaultCuts       = 20
	DefaultMinOverlap = 2
	DefaultMaxOverlap = 4
)

// Options controls how an input is split.
type Options struct {
	// Seed makes the split reproducible.
	Seed int64

	// Cuts is the number of cuts; the result holds Cuts+1 fragments.
	Cuts int

	// MinOverlap and MaxOverlap bound how far each new piece reaches across
	// a cut on either side. The upper bound is exclusive unless it equals
	// the lower bound.
	MinOverlap int
	MaxOverlap int
}

// DefaultOptions returns the stock split settings with the given seed.
func DefaultOptions(seed int64) Options {
	return Options{
		Seed:       seed,
		Cuts:       DefaultCuts,
		MinOverlap: DefaultMinOverlap,
		MaxOverlap: DefaultMaxOverlap,
	}
}

func (o Options) validate() error {
	switch {
	case o.Cuts < 0:
		return fmt.Errorf("%w: cuts must be >= 0, got %d", ErrInvalidOptions, o.Cuts)
	case o.MinOverlap < 1:
		return fmt.Errorf("%w: minOverlap must be >= 1, got %d", ErrInvalidOptions, o.MinOverlap)
	case o.MaxOverlap < o.MinOverlap:
		return fmt.Errorf("%w: maxOverlap %d is below minOverlap %d", ErrInvalidOptions, o.MaxOverlap, o.MinOverlap)
	}
	return nil
}

// Piece is a fragment together with its byte offset in the source string.
type Piece struct {
	Offset int
	Text   string
}

// End returns the offset one past the last byte of the piece.
func (p Piece) End() int {
	return p.Offset + len(p.Text)
}

// Result holds the outcome of a split.
type Result struct {
	// Pieces are in cut order, with their true offsets.
	Pieces []Piece

	// Fragments are the piece texts in shuffled order.
	Fragments []string
}

// Chop splits input into opts.Cuts+1 overlapping fragments.
//
// Each cut takes the longest piece (the earliest one on ties), picks a cut
// point at least MinOverlap bytes inside it, and replaces it with two pieces
// that both reach across the cut: one from the piece start to just past the
// cut, one from just before the cut to the piece end. Pieces may extend past
// the piece being cut but never past the input. The union of all pieces always
// covers the input, and the two pieces made by a cut share at least
// 2*MinOverlap bytes.
func Chop(input string, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	pieces := []Piece{{Offset: 0, Text: input}}

	for i := 0; i < opts.Cuts; i++ {
		index := longest(pieces)
		target := pieces[index]
		if len(target.Text) <= 2*opts.MinOverlap {
			return nil, fmt.Errorf("%w: cut %d of %d needs a piece longer than %d bytes, longest is %d",
				ErrTooShort, i+1, opts.Cuts, 2*opts.MinOverlap, len(target.Text))
		}

		cut := between(rng, opts.MinOverlap, len(target.Text)-opts.MinOverlap) + target.Offset
		start := max(0, cut-between(rng, opts.MinOverlap, opts.MaxOverlap))
		end := min(len(input), cut+between(rng, opts.MinOverlap, opts.MaxOverlap))

		pieces[index] = Piece{Offset: target.Offset, Text: input[target.Offset:end]}
		pieces = append(pieces, Piece{Offset: start, Text: input[start:target.End()]})
	}

	fragments := make([]string, len(pieces))
	for i, p := range pieces {
		fragments[i] = p.Text
	}
	rng.Shuffle(len(fragments), func(i, j int) {
		fragments[i], fragments[j] = fragments[j], fragments[i]
	})

	return &Result{Pieces: pieces, Fragments: fragments}, nil
}

// Layout renders each piece on its own line, indented by its offset, so that
// the overlaps line up under one another.
func Layout(pieces []Piece) string {
	var sb strings.Builder
	for _, p := range pieces {
		sb.WriteString(strings.Repeat(" ", p.Offset))
		sb.WriteString(p.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// longest returns the index of the first longest piece.
func longest(pieces []Piece) int {
	best := 0
	for i, p := range pieces {
		if len(p.Text) > len(pieces[best].Text) {
			best = i
		}
	}
	return best
}

// between returns a value in [lo, hi), or lo when the range is empty.
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}
