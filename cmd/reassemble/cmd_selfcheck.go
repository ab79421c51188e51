package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/reassemble/internal/selfcheck"
)

func newSelfcheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Run the built-in merge regression cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reducer := a.reducer(cmd)
			merge := func(fragments []string) string {
				res, err := reducer.Reduce(cmd.Context(), fragments)
				if err != nil {
					return ""
				}
				return res.Combined
			}

			report, err := selfcheck.Run(merge, selfcheck.DefaultCases())
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return fmt.Errorf("selfcheck: %w", ctxErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d Passed\n", report.Passed)
			return err
		},
	}
}
