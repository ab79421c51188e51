//go:build !cgo

package main

import (
	"errors"

	"github.com/dusk-indust/reassemble/internal/graph"
)

// openStore returns an in-memory store. Persistent graphs need KuzuDB, which
// is only linked into cgo builds.
func openStore(path string) (graph.Store, error) {
	if path != "" {
		return nil, errors.New("open graph: --db requires a build with CGO_ENABLED=1")
	}
	return graph.NewMemStore(), nil
}
