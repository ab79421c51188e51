package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/reassemble/internal/mcptools"
)

func newServeMCPCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve the reassembly tools over MCP (stdio, or HTTP with --http)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Step output would corrupt the stdio transport.
			a.cfg.Verbose = false
			svc := mcptools.NewReassembleService(a.reducer(cmd), a.logger)

			if addr != "" {
				a.logger.Info("serving MCP over HTTP", zap.String("addr", addr))
				return mcptools.RunMCPServer(ctx, svc, addr)
			}
			return mcptools.RunMCPServerStdio(ctx, mcptools.NewReassembleMCPServer(svc))
		},
	}

	cmd.Flags().StringVar(&addr, "http", "", "listen address for the streamable HTTP transport, e.g. :8080")
	return cmd
}
