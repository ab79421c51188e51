package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewReassembleMCPServer creates an MCP server with all 5 reassembly tools registered.
func NewReassembleMCPServer(svc *ReassembleService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "reassemble",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_fragments",
		Description: "Reassemble one string from unordered overlapping fragments by repeatedly merging the best overlapping pair. Falls back to concatenation in input order when nothing overlaps.",
	}, svc.MergeFragments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "score_pair",
		Description: "Score how the second fragment attaches to the first: containment, suffix-prefix overlap, or no match.",
	}, svc.ScorePair)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chop_string",
		Description: "Split a string into shuffled overlapping fragments with a reproducible seed. Useful for producing merge_fragments test input.",
	}, svc.ChopString)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_selfcheck",
		Description: "Run the built-in regression cases against the merge algorithm and report failures.",
	}, svc.RunSelfcheck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "overlap_graph",
		Description: "Build the overlap graph of a fragment set. Returns contigs (connected groups of overlapping fragments with their reassembled sequence) and a Mermaid diagram.",
	}, svc.OverlapGraph)

	return server
}

// RunMCPServer starts an HTTP server exposing the reassembly MCP tools.
func RunMCPServer(ctx context.Context, svc *ReassembleService, addr string) error {
	server := NewReassembleMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when ctx is cancelled. The derived context also
	// ends the watcher when ListenAndServe fails on its own.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking
// until stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
