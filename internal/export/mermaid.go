package export

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dusk-indust/reassemble/internal/graph"
)

// GenerateMermaid produces a Mermaid graph LR diagram from a graph store.
// Fragments are grouped by contig; OVERLAPS edges become arrows labelled with
// the overlap length and CONTAINS edges become dotted arrows.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	fragments, err := store.ListFragments(ctx)
	if err != nil {
		return "", fmt.Errorf("list fragments: %w", err)
	}

	contigs, err := store.GetContigs(ctx)
	if err != nil {
		return "", fmt.Errorf("get contigs: %w", err)
	}

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Mermaid node IDs follow input order.
	nodeIDs := make(map[string]string, len(fragments))
	labels := make(map[string]string, len(fragments))
	for i, f := range fragments {
		nodeIDs[f.ID] = fmt.Sprintf("F%d", i)
		labels[f.ID] = mermaidLabel(f.Text)
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	grouped := make(map[string]bool, len(fragments))
	for i, c := range contigs {
		if len(c.Members) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  subgraph C%d[\"%s: %s\"]\n", i, c.Name, mermaidLabel(c.Sequence)))
		for _, member := range c.Members {
			id, ok := nodeIDs[member]
			if !ok {
				continue
			}
			grouped[member] = true
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, labels[member]))
		}
		sb.WriteString("  end\n")
	}

	// Fragments outside any contig (contigs not computed yet).
	for _, f := range fragments {
		if !grouped[f.ID] {
			sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", nodeIDs[f.ID], labels[f.ID]))
		}
	}

	for _, e := range edges {
		src, okSrc := nodeIDs[e.SourceID]
		dst, okDst := nodeIDs[e.TargetID]
		if !okSrc || !okDst {
			continue
		}
		switch e.Kind {
		case graph.EdgeKindOverlaps:
			sb.WriteString(fmt.Sprintf("  %s -->|%d| %s\n", src, e.Score, dst))
		case graph.EdgeKindContains:
			sb.WriteString(fmt.Sprintf("  %s -.->|contains| %s\n", src, dst))
		}
	}

	return sb.String(), nil
}

// labelEscaper rewrites characters that would end a quoted Mermaid label or
// break the line-oriented syntax.
var labelEscaper = strings.NewReplacer(`"`, "#quot;", "\r\n", "<br/>", "\n", "<br/>", "\r", "<br/>")

// mermaidLabel truncates text to 40 runes and escapes it for use inside a
// quoted Mermaid label.
func mermaidLabel(text string) string {
	if utf8.RuneCountInString(text) > 40 {
		text = string([]rune(text)[:37]) + "..."
	}
	return labelEscaper.Replace(text)
}
