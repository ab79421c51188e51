package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/reassemble/internal/chop"
)

// demoFlags are shared by the root command and the demo subcommand.
type demoFlags struct {
	input string
	seed  int64
}

func (d *demoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.input, "input", "", "string to chop and reassemble (default: demoInput from config)")
	cmd.Flags().Int64Var(&d.seed, "seed", 0, "random seed for the split (default: chop.seed from config, else time based)")
}

func newDemoCmd(a *app) *cobra.Command {
	d := &demoFlags{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Chop a string into shuffled fragments and reassemble it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd, d)
		},
	}
	d.register(cmd)
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command, d *demoFlags) error {
	input := a.cfg.DemoInput
	if d.input != "" {
		input = d.input
	}

	opts := a.chopOptions(cmd, d.seed)
	a.logger.Debug("chopping demo input", zap.Int64("seed", opts.Seed), zap.Int("cuts", opts.Cuts))

	split, err := chop.Chop(input, opts)
	if err != nil {
		return err
	}

	res, err := a.reducer(cmd).Reduce(cmd.Context(), split.Fragments)
	if err != nil {
		return err
	}

	verdict := "SUCCESS"
	if res.Combined != input {
		verdict = "FAIL!!!"
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, chop.Layout(split.Pieces))
	fmt.Fprintf(out, "Was: '%s'\n", input)
	fmt.Fprintf(out, "Got: '%s'\n", res.Combined)
	fmt.Fprintf(out, "Match = %s\n", verdict)
	return nil
}

// chopOptions resolves the split settings. The --seed flag wins over the
// config seed; with neither set the seed comes from the clock.
func (a *app) chopOptions(cmd *cobra.Command, seed int64) chop.Options {
	opts := a.cfg.Chop.Options()
	switch {
	case cmd.Flags().Changed("seed"):
		opts.Seed = seed
	case opts.Seed == 0:
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}

func newChopCmd(a *app) *cobra.Command {
	var (
		seed   int64
		cuts   int
		layout bool
	)

	cmd := &cobra.Command{
		Use:   "chop <input>",
		Short: "Split a string into shuffled overlapping fragments, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.chopOptions(cmd, seed)
			if cmd.Flags().Changed("cuts") {
				opts.Cuts = cuts
			}

			split, err := chop.Chop(args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if layout {
				fmt.Fprint(out, chop.Layout(split.Pieces))
				return nil
			}
			for _, f := range split.Fragments {
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the split")
	cmd.Flags().IntVar(&cuts, "cuts", chop.DefaultCuts, "number of cuts")
	cmd.Flags().BoolVar(&layout, "layout", false, "print pieces at their offsets instead of shuffled")
	return cmd
}
