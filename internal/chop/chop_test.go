package chop

import (
	"strings"
	"testing"

	"github.com/dusk-indust/reassemble/internal/overlap"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// distinct has no repeated byte, so every overlap between its substrings is
// unambiguous.
const distinct = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func TestChop_FragmentCountAndSubstrings(t *testing.T) {
	input := "This is some sort of long string message that gets chopped."
	res, err := Chop(input, DefaultOptions(3))
	require.NoError(t, err)

	require.Len(t, res.Fragments, DefaultCuts+1)
	require.Len(t, res.Pieces, DefaultCuts+1)
	for _, f := range res.Fragments {
		assert.True(t, strings.Contains(input, f), "fragment %q not in input", f)
	}
	for _, p := range res.Pieces {
		assert.Equal(t, input[p.Offset:p.End()], p.Text)
	}
}

func TestChop_PiecesCoverInput(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		res, err := Chop(distinct, Options{Seed: seed, Cuts: 10, MinOverlap: 2, MaxOverlap: 4})
		require.NoError(t, err)

		covered := make([]bool, len(distinct))
		for _, p := range res.Pieces {
			for i := p.Offset; i < p.End(); i++ {
				covered[i] = true
			}
		}
		for i, ok := range covered {
			assert.True(t, ok, "seed %d: byte %d not covered", seed, i)
		}
	}
}

func TestChop_FragmentsArePiecesShuffled(t *testing.T) {
	res, err := Chop(distinct, Options{Seed: 11, Cuts: 8, MinOverlap: 1, MaxOverlap: 3})
	require.NoError(t, err)

	texts := make([]string, len(res.Pieces))
	for i, p := range res.Pieces {
		texts[i] = p.Text
	}
	assert.ElementsMatch(t, texts, res.Fragments)
}

func TestChop_SameSeedSameResult(t *testing.T) {
	opts := Options{Seed: 99, Cuts: 6, MinOverlap: 2, MaxOverlap: 5}
	a, err := Chop(distinct, opts)
	require.NoError(t, err)
	b, err := Chop(distinct, opts)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Chop not deterministic (-first +second):\n%s", diff)
	}
}

func TestChop_ZeroCuts(t *testing.T) {
	res, err := Chop("abc", Options{Cuts: 0, MinOverlap: 1, MaxOverlap: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, res.Fragments)
	assert.Equal(t, []Piece{{Offset: 0, Text: "abc"}}, res.Pieces)
}

func TestChop_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  error
	}{
		{"negative cuts", distinct, Options{Cuts: -1, MinOverlap: 1, MaxOverlap: 2}, ErrInvalidOptions},
		{"zero min overlap", distinct, Options{Cuts: 1, MinOverlap: 0, MaxOverlap: 2}, ErrInvalidOptions},
		{"max below min", distinct, Options{Cuts: 1, MinOverlap: 3, MaxOverlap: 2}, ErrInvalidOptions},
		{"input too short", "abcd", Options{Cuts: 1, MinOverlap: 2, MaxOverlap: 3}, ErrTooShort},
		{"empty input", "", Options{Cuts: 1, MinOverlap: 1, MaxOverlap: 1}, ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Chop(tt.input, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestChop_MergeReconstructsUnambiguousInput(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		res, err := Chop(distinct, Options{Seed: seed, Cuts: 10, MinOverlap: 2, MaxOverlap: 4})
		require.NoError(t, err)
		assert.Equal(t, distinct, overlap.Merge(res.Fragments), "seed %d fragments %q", seed, res.Fragments)
	}
}

func TestLayout(t *testing.T) {
	got := Layout([]Piece{{Offset: 0, Text: "abcd"}, {Offset: 2, Text: "cdef"}})
	assert.Equal(t, "abcd\n  cdef\n", got)
}
