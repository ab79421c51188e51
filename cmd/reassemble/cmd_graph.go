package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/reassemble/internal/export"
	"github.com/dusk-indust/reassemble/internal/graph"
	"github.com/dusk-indust/reassemble/internal/source"
)

func newGraphCmd(a *app) *cobra.Command {
	var (
		from   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "graph [fragment...]",
		Short: "Print the overlap graph of the fragments as a Mermaid diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			fragments := args
			if from != "" {
				if len(args) > 0 {
					return fmt.Errorf("graph: --from cannot be combined with fragment arguments")
				}
				loaded, err := source.NewLoader().Load(ctx, from)
				if err != nil {
					return err
				}
				fragments = loaded
			}

			path := dbPath
			if path == "" {
				path = a.cfg.GraphPath
			}
			store, err := openStore(path)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.InitSchema(ctx); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
			stats, err := graph.Build(ctx, store, fragments)
			if err != nil {
				return err
			}
			a.logger.Info("overlap graph built",
				zap.Int("fragments", stats.FragmentCount),
				zap.Int("contigs", stats.ContigCount),
				zap.Int("edges", stats.EdgeCount))

			diagram, err := export.GenerateMermaid(ctx, store)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), diagram)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "file path or URL with one fragment per line or a JSON array")
	cmd.Flags().StringVar(&dbPath, "db", "", "rebuild the graph in a KuzuDB directory, replacing any earlier graph there (cgo builds only)")
	return cmd
}
