package overlap

import (
	"fmt"
	"strings"
)

// Outcome tags how a reduction round shrank the working set.
type Outcome string

const (
	// OutcomePaired merged two fragments into one.
	OutcomePaired Outcome = "paired"

	// OutcomeFallback concatenated the entire working set because no pair
	// overlapped.
	OutcomeFallback Outcome = "fallback"
)

// Step records one round of a reduction.
type Step struct {
	Round   int
	Outcome Outcome
	Match   Match

	// First and Second are the merged fragments. Both are empty for a
	// fallback round.
	First  string
	Second string

	// Before and After are the working set sizes around the round.
	Before int
	After  int
}

// FormatStep renders a step as the first fragment, the second fragment
// indented to where it attaches, the merge result, and the match summary.
func FormatStep(step Step) string {
	if step.Outcome == OutcomeFallback {
		return fmt.Sprintf("round %d: %s\n", step.Round, step.Match)
	}

	offset := step.Match.SecondOffset
	if step.Match.Contained() {
		offset = max(strings.Index(step.First, step.Second), 0)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "round %d:\n", step.Round)
	fmt.Fprintf(&sb, "  %s\n", step.First)
	fmt.Fprintf(&sb, "  %s%s\n", strings.Repeat(" ", offset), step.Second)
	fmt.Fprintf(&sb, "  %s\n", step.Match.Combined)
	fmt.Fprintf(&sb, "  %s\n", step.Match)
	return sb.String()
}
