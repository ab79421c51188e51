//go:build cgo

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/reassemble/internal/graph"
)

func TestGraph_DBRebuildsSameDirectory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "graph")

	first, _, err := execute(t, "graph", "--db", db, "abc", "bcd")
	require.NoError(t, err)
	assert.Contains(t, first, `subgraph C0["contig-1: abcd"]`)

	second, _, err := execute(t, "graph", "--db", db, "abc", "bcd", "xyz")
	require.NoError(t, err, "a second run into the same directory must succeed")
	assert.Contains(t, second, `subgraph C0["contig-1: abcd"]`)
	assert.Contains(t, second, `subgraph C1["contig-2: xyz"]`)

	store, err := graph.NewKuzuFileStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.FragmentCount, "only the latest run's fragments are stored")
	assert.Equal(t, 2, stats.ContigCount)
}
