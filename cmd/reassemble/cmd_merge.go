package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/reassemble/internal/export"
	"github.com/dusk-indust/reassemble/internal/source"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		from   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "merge [fragment...]",
		Short: "Merge fragments given as arguments or read from a file or URL",
		Example: `  reassemble merge "all is " " is well" "ell that en" "hat end" "t ends well"
  reassemble merge --from fragments.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fragments := args
			if from != "" {
				if len(args) > 0 {
					return fmt.Errorf("merge: --from cannot be combined with fragment arguments")
				}
				loaded, err := source.NewLoader().Load(cmd.Context(), from)
				if err != nil {
					return err
				}
				fragments = loaded
			}

			a.logger.Debug("merging fragments", zap.Int("fragments", len(fragments)), zap.Bool("parallel", a.cfg.Parallel))
			res, err := a.reducer(cmd).Reduce(cmd.Context(), fragments)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprintln(out, res.Combined)
				return nil
			}

			data, err := json.MarshalIndent(export.ExportRun(fragments, res), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal run: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "file path or URL with one fragment per line or a JSON array")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run with every merge round as JSON")
	return cmd
}
