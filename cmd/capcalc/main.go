package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/underwriting/capacity-calculator/internal/calculation"
)

// app carries state shared by subcommands.
type app struct {
	verbose bool
	workers int
	logger  *zap.Logger
}

func (a *app) engine() *calculation.CalculationEngine {
	eng := calculation.NewCalculationEngine()
	if a.workers > 0 {
		eng.Workers = a.workers
	}
	eng.SetLogger(calculation.NewZapLogger(a.logger))
	return eng
}

// replaceLogger flushes the current logger before swapping in l, so
// PersistentPostRun only has the new one left to sync.
func (a *app) replaceLogger(l *zap.Logger) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	a.logger = l
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "capcalc",
		Short: "Reinsurance capacity calculator",
		Long: `capcalc places a total insured value across the three reinsurance
groups of a Standard or Surplus treaty.

Group 1 fills first, then Group 2 (a multiple of Group 1 capacity), then
Group 3. A TIV above the combined capacity is reported as over line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "maximum concurrent calculations (default GOMAXPROCS)")

	root.AddCommand(
		newCalcCmd(a),
		newBatchCmd(a),
		newTableCmd(),
		newInitCmd(),
		newServeCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
