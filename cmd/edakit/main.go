package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"edakit/adapters/stats/backend"
	"edakit/app"
	"edakit/internal"
	"edakit/internal/analysis"
	"edakit/internal/api"
	"edakit/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "edakit",
		Short:         "Adaptive two-sample and association tests for tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newAssociateCmd(),
		newVarianceCmd(),
		newWelchCmd(),
		newSweepCmd(),
		newServeCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env bundles what every command needs.
type env struct {
	cfg    *config.Config
	logger *internal.Logger
	engine *analysis.Engine
}

func setup() (*env, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	engine := analysis.NewEngine(backend.New(), analysis.Options{
		Alpha:                cfg.Engine.SignificanceLevel,
		LargeSampleThreshold: cfg.Engine.LargeSampleThreshold,
		MinExpected:          cfg.Engine.MinExpectedCount,
	})
	return &env{cfg: cfg, logger: internal.DefaultLogger, engine: engine}, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			sweeps := app.NewSweepService(rt.engine, rt.cfg.Sweep.Concurrency, rt.logger)
			server := api.NewServer(rt.engine, sweeps, rt.cfg.Server.GinMode, rt.logger)
			return server.Run(cmd.Context(), ":"+rt.cfg.Server.Port)
		},
	}
}
