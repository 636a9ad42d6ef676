// Command launchdash serves the SpaceX launch records dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"launchdash/internal/config"
	"launchdash/internal/dashboard"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
	"launchdash/internal/trace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what the dashboard commands need. It is built only for commands
// registered through usesRouter, so help and completion run without a dataset.
type app struct {
	configPath string
	dataPath   string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
	tracer *trace.Provider
	router *dashboard.Router
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "launchdash",
		Short: "SpaceX launch records dashboard",
		Long: `launchdash loads a CSV of SpaceX launch records and serves an interactive
dashboard: a success pie chart filtered by launch site and a payload versus
outcome scatter chart filtered by site and payload range.

Run without a subcommand to start the web server.`,
		SilenceUsage: true,
		RunE:         a.runServe,
	}
	a.usesRouter(root)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./launchdash.{yaml,json,toml} if present)")
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "launch records CSV (overrides data_path)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd(a), newTUICmd(a), newExportCmd(a))
	return root
}

// usesRouter builds the dashboard before cmd runs and releases it after.
func (a *app) usesRouter(cmd *cobra.Command) *cobra.Command {
	cmd.PreRunE = a.setup
	cmd.PostRunE = func(cmd *cobra.Command, args []string) error {
		return a.teardown(cmd.Context())
	}
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.DataPath = a.dataPath
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	if src := cfg.Source(); src != "" {
		logger.Debug("config loaded", zap.String("file", src))
	}

	ds, err := launch.Load(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.DataPath, err)
	}
	logger.Info("dataset loaded",
		zap.String("path", cfg.DataPath),
		zap.Int("records", ds.Len()),
		zap.Strings("sites", ds.Sites()),
		zap.Float64("min_payload_kg", ds.MinPayload()),
		zap.Float64("max_payload_kg", ds.MaxPayload()),
	)

	tp, err := trace.NewProvider(cmd.Context(), trace.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return err
	}
	a.tracer = tp
	logger.Info("tracing", zap.Bool("enabled", tp.Enabled()), zap.String("endpoint", cfg.OTLPEndpoint))

	a.router = dashboard.NewRouter(ds, dashboard.WithTracing(tp), dashboard.WithLogger(logger))
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("trace shutdown", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}
