package overlap

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_FixedCases(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{"empty input", nil, ""},
		{"single fragment", []string{"only"}, "only"},
		{"two byte overlap", []string{"abc", "bcd"}, "abcd"},
		{"one byte overlap", []string{"ab", "bc"}, "abc"},
		{"no overlap falls back", []string{"ab", "cd"}, "abcd"},
		{"tie keeps first pair", []string{"aba", "aca"}, "abaca"},
		{"containment absorbs", []string{"abcdef", "cd"}, "abcdef"},
		{"reverse order input", []string{"bcd", "abc"}, "abcd"},
		{"empty fragment absorbed", []string{"", "abc"}, "abc"},
		{"all empty fragments", []string{"", ""}, ""},
		{"three way chain", []string{"cde", "abc", "efg"}, "abcdefg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.fragments))
		})
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	in := []string{"cde", "abc", "efg"}
	Merge(in)
	assert.Equal(t, []string{"cde", "abc", "efg"}, in)
}

func TestReduce_Steps(t *testing.T) {
	res, err := NewReducer(Options{}).Reduce(context.Background(), []string{"cde", "abc", "efg"})
	require.NoError(t, err)

	assert.Equal(t, "abcdefg", res.Combined)
	require.Len(t, res.Steps, 2)
	assert.False(t, res.Fallback())

	first := res.Steps[0]
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, OutcomePaired, first.Outcome)
	assert.Equal(t, "abc", first.First)
	assert.Equal(t, "cde", first.Second)
	assert.Equal(t, 1, first.Match.FirstIndex)
	assert.Equal(t, 0, first.Match.SecondIndex)
	assert.Equal(t, "abcde", first.Match.Combined)
	assert.Equal(t, 3, first.Before)
	assert.Equal(t, 2, first.After)

	second := res.Steps[1]
	assert.Equal(t, "abcde", second.First)
	assert.Equal(t, "efg", second.Second)
	assert.Equal(t, 1, second.After)
}

func TestReduce_FallbackCollapsesInOneStep(t *testing.T) {
	res, err := NewReducer(Options{}).Reduce(context.Background(), []string{"ab", "cd", "ef"})
	require.NoError(t, err)

	assert.Equal(t, "abcdef", res.Combined)
	require.Len(t, res.Steps, 1)
	assert.True(t, res.Fallback())
	assert.Equal(t, OutcomeFallback, res.Steps[0].Outcome)
	assert.Equal(t, FallbackScore, res.Steps[0].Match.Score)
	assert.Equal(t, 3, res.Steps[0].Before)
	assert.Equal(t, 1, res.Steps[0].After)
}

func TestReduce_TrivialInputsHaveNoSteps(t *testing.T) {
	r := NewReducer(Options{})

	res, err := r.Reduce(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", res.Combined)
	assert.Empty(t, res.Steps)
	assert.False(t, res.Fallback())

	res, err = r.Reduce(context.Background(), []string{"solo"})
	require.NoError(t, err)
	assert.Equal(t, "solo", res.Combined)
	assert.Empty(t, res.Steps)
}

func TestReduce_MonotonicShrinkage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		fragments := randomFragments(rng)
		res, err := NewReducer(Options{}).Reduce(context.Background(), fragments)
		require.NoError(t, err)

		if len(fragments) > 0 {
			assert.LessOrEqual(t, len(res.Steps), len(fragments)-1, "fragments %q", fragments)
		}
		size := len(fragments)
		for _, step := range res.Steps {
			assert.Equal(t, size, step.Before)
			assert.Less(t, step.After, step.Before)
			size = step.After
		}
		if len(fragments) > 1 {
			assert.Equal(t, 1, size)
		}
	}
}

func TestReduce_OnStepMatchesResult(t *testing.T) {
	var seen []Step
	r := NewReducer(Options{OnStep: func(s Step) { seen = append(seen, s) }})

	res, err := r.Reduce(context.Background(), []string{"cde", "abc", "efg", "xyz"})
	require.NoError(t, err)
	assert.Equal(t, res.Steps, seen)
}

func TestReduce_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seq := NewReducer(Options{})
	par := NewReducer(Options{Parallel: true, Workers: 3})
	unbounded := NewReducer(Options{Parallel: true})

	for n := 0; n < 200; n++ {
		fragments := randomFragments(rng)

		want, err := seq.Reduce(context.Background(), fragments)
		require.NoError(t, err)

		got, err := par.Reduce(context.Background(), fragments)
		require.NoError(t, err)
		assert.Equal(t, want, got, "fragments %q", fragments)

		got, err = unbounded.Reduce(context.Background(), fragments)
		require.NoError(t, err)
		assert.Equal(t, want, got, "fragments %q", fragments)
	}
}

func TestReduce_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, opts := range []Options{{}, {Parallel: true, Workers: 2}} {
		_, err := NewReducer(opts).Reduce(ctx, []string{"abc", "bcd"})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	}

	// Trivial inputs never enter the loop, so cancellation is not observed.
	res, err := NewReducer(Options{}).Reduce(ctx, []string{"abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Combined)
}

func TestFormatStep(t *testing.T) {
	res, err := NewReducer(Options{}).Reduce(context.Background(), []string{"abc", "bcd"})
	require.NoError(t, err)
	require.Len(t, res.Steps, 1)

	want := "round 1:\n" +
		"  abc\n" +
		"   bcd\n" +
		"  abcd\n" +
		"  Match[0:1]@1+2='abcd'\n"
	assert.Equal(t, want, FormatStep(res.Steps[0]))
}

func TestFormatStep_ContainmentAndFallback(t *testing.T) {
	res, err := NewReducer(Options{}).Reduce(context.Background(), []string{"abcdef", "cd"})
	require.NoError(t, err)
	require.Len(t, res.Steps, 1)
	assert.Contains(t, FormatStep(res.Steps[0]), "\n    cd\n")

	res, err = NewReducer(Options{}).Reduce(context.Background(), []string{"ab", "cd"})
	require.NoError(t, err)
	assert.Equal(t, "round 1: FALLBACK='abcd'\n", FormatStep(res.Steps[0]))
}

// randomFragments builds up to eight short fragments over a tiny alphabet so
// that overlaps, ties, containment and empty fragments all occur.
func randomFragments(rng *rand.Rand) []string {
	const alphabet = "abc"
	out := make([]string, rng.Intn(9))
	for i := range out {
		b := make([]byte, rng.Intn(6))
		for k := range b {
			b[k] = alphabet[rng.Intn(len(alphabet))]
		}
		out[i] = string(b)
	}
	return out
}
