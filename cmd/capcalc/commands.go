package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/underwriting/capacity-calculator/internal/config"
	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/internal/output"
	"github.com/underwriting/capacity-calculator/internal/server"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

func newCalcCmd(a *app) *cobra.Command {
	var hazard, treaty string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "calc [tiv]",
		Short: "Layer a single total insured value",
		Long: `Layer a single total insured value across the treaty groups.

The TIV accepts separators and a currency sign ("$1,500,000"). An
unreadable TIV is treated as zero.

Example:
  capcalc calc 10,000,000 --hazard low --treaty standard`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := domain.ParseHazardLevel(hazard)
			if err != nil {
				return err
			}
			t, err := domain.ParseTreatyType(treaty)
			if err != nil {
				return err
			}
			in := domain.LayeringInput{
				TotalInsuredValue: decimal.ParseMoneyOrZero(args[0]),
				HazardLevel:       h,
				TreatyType:        t,
			}
			res := a.engine().Calculate(in)
			if asJSON {
				b, err := json.MarshalIndent(struct {
					Input  domain.LayeringInput  `json:"input"`
					Result domain.LayeringResult `json:"result"`
				}{in, res}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			output.WriteLayeringTable(cmd.OutOrStdout(), in, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&hazard, "hazard", "average", "hazard level (low, below-average, average, above-average, high)")
	cmd.Flags().StringVar(&treaty, "treaty", "standard", "treaty type (standard, surplus)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var format, outDir string
	var watch bool
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Layer every submission in a YAML batch file",
		Long: `Layer every submission in a YAML batch file and render a report.

With --watch the report is rendered again each time the file is saved,
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			render := func(cfg *domain.Configuration) error {
				res, err := a.engine().RunBatch(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				if outDir != "" {
					name, err := output.GenerateReportFile(res, format, outDir)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
					return nil
				}
				return output.GenerateReport(cmd.OutOrStdout(), res, format)
			}

			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if err := render(cfg); err != nil || !watch {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", args[0])
			return parser.WatchBatchFile(ctx, args[0], config.DefaultDebounce, func(cfg *domain.Configuration, err error) {
				if err == nil {
					err = render(cfg)
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the file changes")
	return cmd
}

func newTableCmd() *cobra.Command {
	var treaty string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the capacity reference tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			views := output.BuildCapacityTables()
			if treaty != "" {
				t, err := domain.ParseTreatyType(treaty)
				if err != nil {
					return err
				}
				views = []output.CapacityTableView{output.BuildCapacityTable(t)}
			}
			if asJSON {
				b, err := json.MarshalIndent(views, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			for i, v := range views {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if _, err := cmd.OutOrStdout().Write(output.FormatCapacityTable(v)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&treaty, "treaty", "", "only print this treaty type")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tables as JSON")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.SaveConfiguration(config.ExampleConfiguration(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example batch written to %s\n", args[0])
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				a.logger.Sugar().Warnf("server config: %v", err)
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			if a.workers == 0 {
				a.workers = cfg.Workers
			}
			if !cfg.Production() && !a.verbose {
				if dev, err := zap.NewDevelopment(); err == nil {
					a.replaceLogger(dev)
				}
			}
			a.logger.Info("starting server", zap.String("env", cfg.Env), zap.String("addr", cfg.ListenAddr))
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.engine(), a.logger).ListenAndServe(ctx, cfg.ListenAddr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}
