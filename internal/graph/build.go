package graph

import (
	"context"
	"fmt"

	"github.com/dusk-indust/reassemble/internal/overlap"
)

// Build indexes fragments into store and returns the resulting stats.
//
// Identical fragments collapse into one node. Every ordered pair of distinct
// nodes is scored with overlap.Score and each positive match becomes an
// OVERLAPS or CONTAINS edge from the first fragment to the second. Contigs
// are computed last. The store schema must already be initialized.
func Build(ctx context.Context, store Store, fragments []string) (*GraphStats, error) {
	nodes := make([]FragmentNode, 0, len(fragments))
	seen := make(map[string]bool, len(fragments))
	for i, text := range fragments {
		id := FragmentID(text)
		if seen[id] {
			continue
		}
		seen[id] = true
		node := FragmentNode{ID: id, Position: i, Text: text, Length: len(text)}
		if err := store.AddFragment(ctx, node); err != nil {
			return nil, fmt.Errorf("graph: add fragment %d: %w", i, err)
		}
		nodes = append(nodes, node)
	}

	for _, a := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("graph: build: %w", err)
		}
		for _, b := range nodes {
			if a.ID == b.ID {
				continue
			}
			edge, ok := overlapEdge(a, b)
			if !ok {
				continue
			}
			if err := store.AddEdge(ctx, edge); err != nil {
				return nil, fmt.Errorf("graph: add edge %s->%s: %w", a.ID, b.ID, err)
			}
		}
	}

	if _, err := ComputeContigs(ctx, store, nodes); err != nil {
		return nil, err
	}
	return store.Stats(ctx)
}

// overlapEdge scores a against b and converts a positive match into an edge.
func overlapEdge(a, b FragmentNode) (Edge, bool) {
	m := overlap.Score(a.Text, b.Text)
	if m.Score <= 0 {
		return Edge{}, false
	}
	kind := EdgeKindOverlaps
	if m.Contained() {
		kind = EdgeKindContains
	}
	return Edge{
		SourceID: a.ID,
		TargetID: b.ID,
		Kind:     kind,
		Score:    m.Score,
		Offset:   m.SecondOffset,
	}, true
}
