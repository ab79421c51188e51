package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/dusk-indust/reassemble/internal/chop"
	"github.com/dusk-indust/reassemble/internal/export"
	"github.com/dusk-indust/reassemble/internal/graph"
	"github.com/dusk-indust/reassemble/internal/overlap"
	"github.com/dusk-indust/reassemble/internal/selfcheck"
)

// ReassembleService handles MCP tool calls. It is safe for concurrent use.
type ReassembleService struct {
	reducer *overlap.Reducer
	logger  *zap.Logger
}

// NewReassembleService creates a ReassembleService. A nil logger disables logging.
func NewReassembleService(reducer *overlap.Reducer, logger *zap.Logger) *ReassembleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReassembleService{reducer: reducer, logger: logger}
}

// MergeFragments reassembles the given fragments.
func (s *ReassembleService) MergeFragments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeFragmentsInput,
) (*mcp.CallToolResult, MergeFragmentsOutput, error) {
	res, err := s.reducer.Reduce(ctx, input.Fragments)
	if err != nil {
		return nil, MergeFragmentsOutput{}, fmt.Errorf("merge fragments: %w", err)
	}

	s.logger.Debug("merged fragments",
		zap.Int("fragments", len(input.Fragments)),
		zap.Int("rounds", len(res.Steps)),
		zap.Bool("fallback", res.Fallback()))

	out := MergeFragmentsOutput{
		Result:   res.Combined,
		Rounds:   len(res.Steps),
		Fallback: res.Fallback(),
	}
	if input.IncludeSteps {
		out.Steps = export.ExportRun(input.Fragments, res).Steps
	}
	return nil, out, nil
}

// ScorePair scores a single ordered fragment pair.
func (s *ReassembleService) ScorePair(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ScorePairInput,
) (*mcp.CallToolResult, ScorePairOutput, error) {
	m := overlap.Score(input.First, input.Second)
	out := ScorePairOutput{
		Score:        m.Score,
		Contained:    m.Contained(),
		SecondOffset: m.SecondOffset,
		Match:        m.String(),
	}
	if m.Score > 0 {
		out.Combined = m.Combined
	}
	return nil, out, nil
}

// ChopString splits a string into shuffled overlapping fragments.
func (s *ReassembleService) ChopString(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ChopStringInput,
) (*mcp.CallToolResult, ChopStringOutput, error) {
	opts := chop.DefaultOptions(input.Seed)
	if input.Cuts > 0 {
		opts.Cuts = input.Cuts
	}
	if input.MinOverlap > 0 {
		opts.MinOverlap = input.MinOverlap
		opts.MaxOverlap = max(opts.MaxOverlap, opts.MinOverlap)
	}
	if input.MaxOverlap > 0 {
		opts.MaxOverlap = input.MaxOverlap
	}

	res, err := chop.Chop(input.Input, opts)
	if err != nil {
		return nil, ChopStringOutput{}, err
	}

	pieces := make([]PieceOutput, len(res.Pieces))
	for i, p := range res.Pieces {
		pieces[i] = PieceOutput{Offset: p.Offset, Text: p.Text}
	}
	return nil, ChopStringOutput{
		Fragments: res.Fragments,
		Pieces:    pieces,
		Layout:    chop.Layout(res.Pieces),
	}, nil
}

// RunSelfcheck runs the built-in regression cases against the service reducer.
func (s *ReassembleService) RunSelfcheck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RunSelfcheckInput,
) (*mcp.CallToolResult, RunSelfcheckOutput, error) {
	merge := func(fragments []string) string {
		res, err := s.reducer.Reduce(ctx, fragments)
		if err != nil {
			return ""
		}
		return res.Combined
	}

	report, err := selfcheck.Run(merge, selfcheck.DefaultCases())
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, RunSelfcheckOutput{}, fmt.Errorf("run selfcheck: %w", ctxErr)
	}
	out := RunSelfcheckOutput{Passed: report.Passed, Failed: len(report.Failures)}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, f.String())
	}
	if err != nil {
		s.logger.Warn("selfcheck failed", zap.Int("failed", out.Failed))
	}
	return nil, out, nil
}

// OverlapGraph indexes fragments into a fresh in-memory overlap graph and
// returns its contigs and a Mermaid rendering.
func (s *ReassembleService) OverlapGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OverlapGraphInput,
) (*mcp.CallToolResult, OverlapGraphOutput, error) {
	store := graph.NewMemStore()
	defer store.Close()

	stats, err := graph.Build(ctx, store, input.Fragments)
	if err != nil {
		return nil, OverlapGraphOutput{}, fmt.Errorf("build overlap graph: %w", err)
	}
	contigs, err := store.GetContigs(ctx)
	if err != nil {
		return nil, OverlapGraphOutput{}, fmt.Errorf("get contigs: %w", err)
	}
	diagram, err := export.GenerateMermaid(ctx, store)
	if err != nil {
		return nil, OverlapGraphOutput{}, fmt.Errorf("render overlap graph: %w", err)
	}

	return nil, OverlapGraphOutput{
		Stats:   *stats,
		Contigs: contigs,
		Mermaid: diagram,
	}, nil
}
