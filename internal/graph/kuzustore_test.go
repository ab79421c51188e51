//go:build cgo

package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a fresh in-memory KuzuStore with an initialized schema.
// It registers a cleanup function to close the store when the test finishes.
func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.InitSchema(ctx), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchema(t *testing.T) {
	s, err := NewKuzuStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()

	// First call creates the tables.
	require.NoError(t, s.InitSchema(ctx))

	// Second call should be idempotent (IF NOT EXISTS).
	require.NoError(t, s.InitSchema(ctx))
}

func TestKuzuStore_FragmentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	node := FragmentNode{ID: FragmentID("abc"), Position: 2, Text: "abc", Length: 3}
	require.NoError(t, s.AddFragment(ctx, node))

	got, err := s.GetFragment(ctx, node.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, node, *got)

	missing, err := s.GetFragment(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestKuzuStore_Build(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := Build(ctx, s, []string{"cde", "abc", "efg", "xyz", "abcdef"})
	require.NoError(t, err)

	// abcdef contains abc and cde and overlaps efg, which joins everything
	// except xyz into one contig.
	assert.Equal(t, 5, stats.FragmentCount)
	assert.Equal(t, 2, stats.ContigCount)

	fragments, err := s.ListFragments(ctx)
	require.NoError(t, err)
	require.Len(t, fragments, 5)
	assert.Equal(t, "cde", fragments[0].Text)
	assert.Equal(t, "abcdef", fragments[4].Text)

	down, err := s.GetOverlaps(ctx, FragmentID("abcdef"), DirectionDownstream)
	require.NoError(t, err)
	kinds := map[EdgeKind]int{}
	for _, e := range down {
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds[EdgeKindOverlaps], "abcdef -> efg")
	assert.Equal(t, 2, kinds[EdgeKindContains], "abcdef contains abc and cde")

	contigs, err := s.GetContigs(ctx)
	require.NoError(t, err)
	require.Len(t, contigs, 2)
	assert.Equal(t, "contig-1", contigs[0].Name)
	assert.Equal(t, "abcdefg", contigs[0].Sequence)
	assert.Len(t, contigs[0].Members, 4)
	assert.Equal(t, []string{FragmentID("xyz")}, contigs[1].Members)
}

func TestKuzuStore_UnsupportedEdgeKind(t *testing.T) {
	s := newTestStore(t)
	err := s.AddEdge(context.Background(), Edge{SourceID: "a", TargetID: "b", Kind: "BOGUS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported edge kind")
}

func TestKuzuStore_FilePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graph", "db")
	ctx := context.Background()

	s, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.InitSchema(ctx))
	_, err = Build(ctx, s, []string{"abc", "bcd"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	stats, err := reopened.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FragmentCount)
	assert.Equal(t, 1, stats.ContigCount)
}

func TestKuzuStore_ContigOrderMatchesMemStore(t *testing.T) {
	ctx := context.Background()

	// Eleven single letters share nothing, so each is its own contig and
	// the names run past contig-9.
	fragments := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}

	kuzu := newTestStore(t)
	_, err := Build(ctx, kuzu, fragments)
	require.NoError(t, err)

	mem := NewMemStore()
	t.Cleanup(func() { _ = mem.Close() })
	_, err = Build(ctx, mem, fragments)
	require.NoError(t, err)

	fromKuzu, err := kuzu.GetContigs(ctx)
	require.NoError(t, err)
	fromMem, err := mem.GetContigs(ctx)
	require.NoError(t, err)

	require.Len(t, fromKuzu, len(fragments))
	require.Len(t, fromMem, len(fragments))
	for i := range fromMem {
		assert.Equal(t, fromMem[i].Name, fromKuzu[i].Name, "contig %d", i)
		assert.Equal(t, fromMem[i].Sequence, fromKuzu[i].Sequence, "contig %d", i)
	}
	assert.Equal(t, "contig-2", fromKuzu[1].Name)
	assert.Equal(t, "contig-11", fromKuzu[10].Name)
}
