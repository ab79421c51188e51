package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/dusk-indust/reassemble/internal/overlap"
)

// ComputeContigs finds connected components of the overlap graph and stores
// them as ContigNodes, each with BELONGS edges from its members.
//
// Algorithm:
//  1. Build an undirected adjacency list from OVERLAPS and CONTAINS edges.
//  2. Find connected components via BFS, visiting nodes in input order.
//  3. Reduce each component's fragments with overlap.Merge.
//
// Singleton components are kept: a fragment that overlaps nothing is its own
// contig. A fragment set drawn from a single source yields exactly one contig.
func ComputeContigs(ctx context.Context, store Store, nodes []FragmentNode) ([]ContigNode, error) {
	adj, err := buildAdjacency(ctx, store, nodes)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]FragmentNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	visited := make(map[string]bool, len(nodes))
	var contigs []ContigNode

	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		component := bfsComponent(n.ID, adj, visited)
		sort.Slice(component, func(i, j int) bool {
			return byID[component[i]].Position < byID[component[j]].Position
		})

		texts := make([]string, len(component))
		for i, id := range component {
			texts[i] = byID[id].Text
		}

		contig := ContigNode{
			Name:     fmt.Sprintf("contig-%d", len(contigs)+1),
			Density:  computeDensity(component, adj),
			Sequence: overlap.Merge(texts),
			Members:  component,
		}
		if err := store.AddContig(ctx, contig); err != nil {
			return nil, fmt.Errorf("graph: add contig %s: %w", contig.Name, err)
		}
		for _, member := range component {
			edge := Edge{
				SourceID: member,
				TargetID: contig.Name,
				Kind:     EdgeKindBelongs,
			}
			if err := store.AddEdge(ctx, edge); err != nil {
				return nil, fmt.Errorf("graph: add contig membership: %w", err)
			}
		}
		contigs = append(contigs, contig)
	}

	return contigs, nil
}

// buildAdjacency constructs a bidirectional adjacency list from OVERLAPS and
// CONTAINS edges between known fragments using a single pass over all edges.
func buildAdjacency(ctx context.Context, store Store, nodes []FragmentNode) (map[string]map[string]bool, error) {
	adj := make(map[string]map[string]bool, len(nodes))
	for _, n := range nodes {
		adj[n.ID] = make(map[string]bool)
	}

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: list edges: %w", err)
	}
	for _, e := range edges {
		if e.Kind != EdgeKindOverlaps && e.Kind != EdgeKindContains {
			continue
		}
		if adj[e.SourceID] != nil && adj[e.TargetID] != nil {
			adj[e.SourceID][e.TargetID] = true
			adj[e.TargetID][e.SourceID] = true
		}
	}
	return adj, nil
}

// bfsComponent performs BFS from start on the adjacency list and returns
// all reachable nodes. It marks visited nodes as it goes.
func bfsComponent(start string, adj map[string]map[string]bool, visited map[string]bool) []string {
	var component []string
	queue := []string{start}
	visited[start] = true

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		component = append(component, node)
		for neighbor := range adj[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return component
}

// computeDensity returns linked pairs / possible pairs for a component.
// A singleton has density 1.
func computeDensity(component []string, adj map[string]map[string]bool) float64 {
	n := len(component)
	if n < 2 {
		return 1
	}
	links := 0
	for _, a := range component {
		for b := range adj[a] {
			// Count each undirected pair once.
			if a < b {
				links++
			}
		}
	}
	return float64(links) / float64(n*(n-1)/2)
}
