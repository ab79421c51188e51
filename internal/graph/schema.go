package graph

// --- Enums ---

// NodeKind classifies nodes in the overlap graph.
type NodeKind string

const (
	NodeKindFragment NodeKind = "fragment"
	NodeKindContig   NodeKind = "contig"
)

// EdgeKind classifies relationships between nodes.
type EdgeKind string

const (
	// EdgeKindOverlaps links a fragment to one whose head continues its tail.
	EdgeKindOverlaps EdgeKind = "OVERLAPS"
	// EdgeKindContains links a fragment to a shorter one found inside it.
	EdgeKindContains EdgeKind = "CONTAINS"
	// EdgeKindBelongs links a fragment to its contig.
	EdgeKindBelongs EdgeKind = "BELONGS"
)

// --- Models ---

// FragmentNode is one distinct fragment of the input set.
type FragmentNode struct {
	ID       string `json:"id"`       // hex HighwayHash of Text
	Position int    `json:"position"` // index of the first occurrence in the input
	Text     string `json:"text"`
	Length   int    `json:"length"`
}

// ContigNode is a connected component of the overlap graph together with the
// string its members reduce to.
type ContigNode struct {
	Name     string   `json:"name"`
	Density  float64  `json:"density"` // linked pairs / possible pairs
	Sequence string   `json:"sequence"`
	Members  []string `json:"members"` // fragment IDs in input order
}

// Edge is a directed relationship between two nodes. For OVERLAPS and
// CONTAINS edges, Score and Offset come from the overlap scorer.
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`
	Score    int      `json:"score,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

// GraphStats summarizes an overlap graph.
type GraphStats struct {
	FragmentCount int `json:"fragmentCount"`
	ContigCount   int `json:"contigCount"`
	EdgeCount     int `json:"edgeCount"`
}
