package mcptools

import (
	"github.com/dusk-indust/reassemble/internal/export"
	"github.com/dusk-indust/reassemble/internal/graph"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// MergeFragmentsInput is the input for the merge_fragments MCP tool.
type MergeFragmentsInput struct {
	Fragments    []string `json:"fragments" jsonschema:"the overlapping fragments to reassemble, in any order"`
	IncludeSteps bool     `json:"includeSteps,omitempty" jsonschema:"return the merge performed in every round"`
}

// MergeFragmentsOutput is the result of the merge_fragments MCP tool.
type MergeFragmentsOutput struct {
	Result   string              `json:"result"`
	Rounds   int                 `json:"rounds"`
	Fallback bool                `json:"fallback"`
	Steps    []export.StepExport `json:"steps,omitempty"`
}

// ScorePairInput is the input for the score_pair MCP tool.
type ScorePairInput struct {
	First  string `json:"first" jsonschema:"the fragment whose tail is matched"`
	Second string `json:"second" jsonschema:"the fragment whose head is matched"`
}

// ScorePairOutput is the result of the score_pair MCP tool.
type ScorePairOutput struct {
	Score        int    `json:"score"`
	Contained    bool   `json:"contained"`
	SecondOffset int    `json:"secondOffset"`
	Combined     string `json:"combined,omitempty"`
	Match        string `json:"match"`
}

// ChopStringInput is the input for the chop_string MCP tool.
type ChopStringInput struct {
	Input      string `json:"input" jsonschema:"the string to split"`
	Seed       int64  `json:"seed,omitempty" jsonschema:"random seed (default: 0)"`
	Cuts       int    `json:"cuts,omitempty" jsonschema:"number of cuts; the result has cuts+1 fragments (default: 20)"`
	MinOverlap int    `json:"minOverlap,omitempty" jsonschema:"minimum reach across each cut in bytes (default: 2)"`
	MaxOverlap int    `json:"maxOverlap,omitempty" jsonschema:"exclusive upper bound on the reach across each cut (default: 4)"`
}

// ChopStringOutput is the result of the chop_string MCP tool.
type ChopStringOutput struct {
	Fragments []string      `json:"fragments"`
	Pieces    []PieceOutput `json:"pieces"`
	Layout    string        `json:"layout"`
}

// PieceOutput is one fragment with its offset in the source string.
type PieceOutput struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// RunSelfcheckInput is the input for the run_selfcheck MCP tool.
type RunSelfcheckInput struct{}

// RunSelfcheckOutput is the result of the run_selfcheck MCP tool.
type RunSelfcheckOutput struct {
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
}

// OverlapGraphInput is the input for the overlap_graph MCP tool.
type OverlapGraphInput struct {
	Fragments []string `json:"fragments" jsonschema:"the fragments to index"`
}

// OverlapGraphOutput is the result of the overlap_graph MCP tool.
type OverlapGraphOutput struct {
	Stats   graph.GraphStats   `json:"stats"`
	Contigs []graph.ContigNode `json:"contigs"`
	Mermaid string             `json:"mermaid"`
}
