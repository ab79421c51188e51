//go:build cgo

package main

import (
	"fmt"
	"os"

	"github.com/dusk-indust/reassemble/internal/graph"
)

// openStore opens a KuzuDB store at path, or an in-memory store when path is
// empty. An existing database at path is removed first; every run rebuilds the
// graph from its own fragments.
func openStore(path string) (graph.Store, error) {
	if path == "" {
		return graph.NewMemStore(), nil
	}
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clear graph at %s: %w", path, err)
	}
	store, err := graph.NewKuzuFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	return store, nil
}
