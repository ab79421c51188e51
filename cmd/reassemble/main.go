package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dusk-indust/reassemble/internal/config"
	"github.com/dusk-indust/reassemble/internal/overlap"
)

// version is set with -ldflags "-X main.version=..." at build time.
var version = "dev"

// app holds state shared by every subcommand.
type app struct {
	// Global flags
	dir      string
	verbose  bool
	parallel bool
	workers  int

	cfg    config.ProjectConfig
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running it without a subcommand runs
// the demo.
func newRootCmd() *cobra.Command {
	a := &app{}
	demo := &demoFlags{}

	root := &cobra.Command{
		Use:   "reassemble",
		Short: "Reassemble a string from unordered overlapping fragments",
		Long: `reassemble rebuilds a string from fragments that overlap at their ends.

Each round merges the pair of fragments with the longest overlap until one
fragment is left. Fragments that share nothing are concatenated in order.

Run without arguments to chop a sample sentence and put it back together.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd, demo)
		},
	}

	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "directory holding reassemble.yml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "print every merge round")
	root.PersistentFlags().BoolVar(&a.parallel, "parallel", false, "score pairs concurrently")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "max concurrent row scorers (default: GOMAXPROCS)")
	demo.register(root)

	root.AddCommand(
		newMergeCmd(a),
		newDemoCmd(a),
		newChopCmd(a),
		newSelfcheckCmd(a),
		newGraphCmd(a),
		newServeMCPCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads reassemble.yml, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("parallel") {
		cfg.Parallel = a.parallel
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	a.cfg = cfg.WithDefaults()

	zcfg := zap.NewProductionConfig()
	if a.cfg.Verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// reducer returns a Reducer configured from the merged settings. In verbose
// mode every round is printed to the command's stderr and logged.
func (a *app) reducer(cmd *cobra.Command) *overlap.Reducer {
	opts := overlap.Options{
		Parallel: a.cfg.Parallel,
		Workers:  a.cfg.Workers,
	}
	if a.cfg.Verbose {
		errOut := cmd.ErrOrStderr()
		opts.OnStep = func(step overlap.Step) {
			a.logger.Debug("merge round",
				zap.Int("round", step.Round),
				zap.String("outcome", string(step.Outcome)),
				zap.Int("score", step.Match.Score),
				zap.Int("remaining", step.After))
			fmt.Fprint(errOut, overlap.FormatStep(step))
		}
	}
	return overlap.NewReducer(opts)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
