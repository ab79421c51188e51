package graph

import (
	"context"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu        sync.RWMutex
	fragments map[string]FragmentNode
	edges     []Edge
	contigs   []ContigNode
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		fragments: make(map[string]FragmentNode),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddFragment stores a fragment node keyed by its ID.
func (m *MemStore) AddFragment(_ context.Context, node FragmentNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragments[node.ID] = node
	return nil
}

// AddContig appends a contig to the internal slice.
func (m *MemStore) AddContig(_ context.Context, node ContigNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	node.Members = append([]string(nil), node.Members...)
	m.contigs = append(m.contigs, node)
	return nil
}

// AddEdge appends an edge to the internal slice.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetFragment returns the fragment node for the given ID, or nil if not found.
func (m *MemStore) GetFragment(_ context.Context, id string) (*FragmentNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.fragments[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// ListFragments returns all fragments ordered by Position.
func (m *MemStore) ListFragments(_ context.Context) ([]FragmentNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FragmentNode, 0, len(m.fragments))
	for _, f := range m.fragments {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// GetOverlaps returns OVERLAPS and CONTAINS edges leaving id (downstream) or
// arriving at id (upstream), in insertion order.
func (m *MemStore) GetOverlaps(_ context.Context, id string, direction Direction) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Edge
	for _, e := range m.edges {
		if e.Kind != EdgeKindOverlaps && e.Kind != EdgeKindContains {
			continue
		}
		switch direction {
		case DirectionDownstream:
			if e.SourceID == id {
				out = append(out, e)
			}
		case DirectionUpstream:
			if e.TargetID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// GetContigs returns all stored contigs.
func (m *MemStore) GetContigs(_ context.Context) ([]ContigNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ContigNode, len(m.contigs))
	copy(out, m.contigs)
	return out, nil
}

// GetAllEdges returns a copy of all edges in the store.
func (m *MemStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// Stats returns counts of all node and edge types in the graph.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &GraphStats{
		FragmentCount: len(m.fragments),
		ContigCount:   len(m.contigs),
		EdgeCount:     len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
