// Package overlap reassembles a string from unordered, overlapping fragments.
//
// Score compares two fragments and reports how the second one attaches to the
// first. A Reducer repeatedly merges the best scoring pair of a working set
// until a single fragment remains. All offsets and lengths are byte counts.
package overlap

import (
	"fmt"
	"math"
)

const (
	// PerfectScore marks a containment match. It outranks every positional overlap.
	PerfectScore = math.MaxInt

	// FallbackScore marks the match produced when no pair overlaps and the
	// whole working set is concatenated in order.
	FallbackScore = -1
)

// Match is the result of comparing the fragment at FirstIndex with the
// fragment at SecondIndex of a working set. Indices are positional and only
// valid for the working set snapshot that was scored.
type Match struct {
	FirstIndex  int
	SecondIndex int

	// SecondOffset is the byte offset into the first fragment where the
	// second fragment's overlap begins. Zero for containment and fallback.
	SecondOffset int

	Score    int
	Combined string
}

// NoMatch is the result for two fragments with no detected relationship.
var NoMatch = Match{Score: 0}

// Contained reports whether the match is a containment match.
func (m Match) Contained() bool {
	return m.Score == PerfectScore
}

func (m Match) String() string {
	switch {
	case m.Score == FallbackScore:
		return fmt.Sprintf("FALLBACK='%s'", m.Combined)
	case m.Score > 0:
		return fmt.Sprintf("Match[%d:%d]@%d+%d='%s'", m.FirstIndex, m.SecondIndex, m.SecondOffset, m.Score, m.Combined)
	default:
		return "NO_MATCH"
	}
}
