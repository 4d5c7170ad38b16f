package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/rescuebot/internal/config"
	"github.com/couchcryptid/rescuebot/internal/domain"
	"github.com/couchcryptid/rescuebot/internal/observability"
	"github.com/couchcryptid/rescuebot/internal/pipeline"
	"github.com/couchcryptid/rescuebot/internal/random"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rescuebot",
	Short: "RescueBot decides which disaster location to rescue",
	Long: `RescueBot reads disaster scenarios, picks one location per scenario to rescue,
and reports how often residents with each attribute were saved.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("scenarios", "s", "", "scenario file (random scenarios when empty)")
	rootCmd.PersistentFlags().StringP("log", "l", "", "log file for both user and simulation decisions")
}

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	loader  *pipeline.Loader
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if path, _ := cmd.Flags().GetString("scenarios"); path != "" {
		cfg.ScenariosFile = path
	}
	if path, _ := cmd.Flags().GetString("log"); path != "" {
		cfg.SetLogPath(path)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		loader:  pipeline.NewLoader(logger, metrics),
	}, nil
}

// scenarios loads the configured file, or generates random scenarios when
// no file is configured.
func (a *app) scenarios() ([]*domain.Scenario, error) {
	if a.cfg.ScenariosFile == "" {
		scenarios := random.New(a.cfg.Seed).Scenarios(0)
		a.logger.Info("generated random scenarios", "scenarios", len(scenarios))
		return scenarios, nil
	}
	scenarios, err := a.loader.LoadScenarios(a.cfg.ScenariosFile)
	if err != nil {
		if errors.Is(err, pipeline.ErrScenariosNotFound) {
			return nil, pipeline.ErrScenariosNotFound
		}
		return nil, err
	}
	a.logger.Info("loaded scenarios", "path", a.cfg.ScenariosFile, "scenarios", len(scenarios))
	return scenarios, nil
}

// flush writes metrics to the configured textfile, if any.
func (a *app) flush() {
	if a.cfg.MetricsFile == "" {
		return
	}
	if err := observability.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.logger.Error("metrics export failed", "path", a.cfg.MetricsFile, "error", err)
	}
}
