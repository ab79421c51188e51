// Package selfcheck runs a merge function against fixed fragment sets with
// known reassembled outputs.
package selfcheck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMismatch is wrapped by the error Run returns when any case fails.
var ErrMismatch = errors.New("selfcheck: merge result mismatch")

// MergeFunc reassembles fragments into one string.
type MergeFunc func(fragments []string) string

// Case is a fragment set and the string it must merge into.
type Case struct {
	Name      string
	Fragments []string
	Want      string
}

// Failure records a case whose merge result differed from Want.
type Failure struct {
	Case Case
	Got  string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s merged to %q, want %q", f.Case.Name, FormatFragments(f.Case.Fragments), f.Got, f.Case.Want)
}

// Report summarizes a run.
type Report struct {
	Passed   int
	Failures []Failure
}

// DefaultCases returns the built-in regression cases.
func DefaultCases() []Case {
	return []Case{
		{Name: "empty", Fragments: []string{}, Want: ""},
		{Name: "two-byte-overlap", Fragments: []string{"abc", "bcd"}, Want: "abcd"},
		{Name: "one-byte-overlap", Fragments: []string{"ab", "bc"}, Want: "abc"},
		{Name: "no-overlap", Fragments: []string{"ab", "cd"}, Want: "abcd"},
		{Name: "tied-overlap", Fragments: []string{"aba", "aca"}, Want: "abaca"},
		{Name: "containment", Fragments: []string{"abcdef", "cd"}, Want: "abcdef"},
	}
}

// Run merges every case and compares the result. All cases run even after a
// failure; the returned error wraps ErrMismatch and names each failed case.
func Run(merge MergeFunc, cases []Case) (*Report, error) {
	report := &Report{}
	for _, c := range cases {
		got := merge(c.Fragments)
		if got != c.Want {
			report.Failures = append(report.Failures, Failure{Case: c, Got: got})
			continue
		}
		report.Passed++
	}

	if len(report.Failures) == 0 {
		return report, nil
	}

	lines := make([]string, len(report.Failures))
	for i, f := range report.Failures {
		lines[i] = f.String()
	}
	return report, fmt.Errorf("%w: %d of %d cases failed:\n%s",
		ErrMismatch, len(report.Failures), len(cases), strings.Join(lines, "\n"))
}

// FormatFragments renders fragments as ['a', 'b'].
func FormatFragments(fragments []string) string {
	return "['" + strings.Join(fragments, "', '") + "']"
}
