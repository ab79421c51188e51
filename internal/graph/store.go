package graph

import (
	"context"
	"io"
)

// Store is the interface for the overlap graph backend.
// Implementations: KuzuStore (persistent, cgo), MemStore (default and tests).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddFragment(ctx context.Context, node FragmentNode) error
	AddContig(ctx context.Context, node ContigNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations.
	GetFragment(ctx context.Context, id string) (*FragmentNode, error)
	ListFragments(ctx context.Context) ([]FragmentNode, error) // ordered by Position
	GetContigs(ctx context.Context) ([]ContigNode, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	// GetOverlaps returns the OVERLAPS and CONTAINS edges touching id in the
	// given direction.
	GetOverlaps(ctx context.Context, id string, direction Direction) ([]Edge, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}

// Direction controls which side of a fragment GetOverlaps follows.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"   // fragments this one attaches to
	DirectionDownstream Direction = "downstream" // fragments that attach to this one
)
