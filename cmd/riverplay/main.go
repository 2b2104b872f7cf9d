// Package main is the entry point for the playground. It loads the layered
// configuration, wires all dependencies using samber/do v2, runs the sync
// controller behind the terminal UI, and shuts down on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/riverplay/internal/adapters/diagnostics"
	"github.com/jsamuelsen11/riverplay/internal/adapters/engine"
	"github.com/jsamuelsen11/riverplay/internal/adapters/graphview"
	"github.com/jsamuelsen11/riverplay/internal/adapters/tui"
	"github.com/jsamuelsen11/riverplay/internal/app"
	"github.com/jsamuelsen11/riverplay/internal/app/stateref"
	"github.com/jsamuelsen11/riverplay/internal/document"
	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/platform/config"
	"github.com/jsamuelsen11/riverplay/internal/platform/logging"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

const otelShutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// globalFlags are the flags that pick where configuration comes from. They
// are not configuration themselves.
type globalFlags struct {
	profile    string
	configFile string
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "riverplay",
		Short: "Live playground for River type expressions",
		Long: `riverplay is an interactive terminal playground for River type expressions.

Type an expression in the input panel. Every edit is normalized by the River
engine; the canonical form appears in the output panel and the structure of
the type is drawn in the graph panel. Rejected input never clears what was
last rendered unless the hardened profile is selected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateTerminal(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return runPlayground(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.profile, "profile", "", `configuration profile: "minimal" or "hardened" (env RIVERPLAY_PROFILE)`)
	pf.StringVar(&g.configFile, "config", "", "YAML config file layered over the profile")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-file", logging.OutputDiscard, `log destination: a file path, "stderr" or "discard"`)
	pf.Bool("telemetry", false, "write traces and metrics to telemetry.output")

	f := root.Flags()
	f.String("seed", config.DefaultSeed, "expression the input panel starts with")
	f.String("on-error", string(domain.PolicyPreserveOutput), `policy for rejected input: "preserve-output" or "clear-graph-and-report"`)
	f.Duration("debounce", 0, "collapse edits closer together than this into one sync")
	f.Bool("async", false, "run syncs off the input goroutine")
	f.Int("zoom", 1, "initial graph zoom level")
	f.Bool("no-zoom", false, "disable interactive graph zoom")

	root.AddCommand(newFmtCmd(&g))
	return root
}

// load resolves the configuration for cmd from all layers.
func (g *globalFlags) load(cmd *cobra.Command) (*config.Config, error) {
	profile := g.profile
	if profile == "" {
		profile = os.Getenv("RIVERPLAY_PROFILE")
	}

	opts := []config.Option{config.WithFlags(cmd.Flags())}
	if g.configFile != "" {
		opts = append(opts, config.WithConfigFile(g.configFile))
	}

	cfg, err := config.Load(profile, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// bootstrap builds the logger, telemetry and the DI container shared by all
// commands. The returned cleanup flushes telemetry and closes log outputs.
func bootstrap(ctx context.Context, cfg *config.Config) (*do.RootScope, *slog.Logger, func(), error) {
	w, closeLog, err := logging.OpenOutput(cfg.Log.Output)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, w)

	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		_ = closeLog()
		return nil, nil, nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)
	registerDependencies(injector, cfg, logger)

	cleanup := func() {
		otelCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()

		if err := otel.Shutdown(otelCtx); err != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", err))
		}
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log output: %v\n", err)
		}
	}
	return injector, logger, cleanup, nil
}

func runPlayground(ctx context.Context, cfg *config.Config) error {
	injector, logger, cleanup, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx = logging.WithLogger(ctx, logger)
	logger.Info("starting playground",
		slog.String("profile", cfg.Profile),
		slog.String("on_error", cfg.Pipeline.OnError),
		slog.Duration("debounce", cfg.Pipeline.Debounce),
		slog.Bool("async", cfg.Pipeline.Async),
	)

	// Resolve the controller (eagerly wires the pipeline).
	ctrl, err := do.Invoke[*app.SyncController](injector)
	if err != nil {
		return fmt.Errorf("resolving sync controller: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*engine.Adapter](injector))

	outcome := ctrl.Start(ctx)
	logger.Info("seed synced", slog.String("outcome", outcome.String()))

	deps := tui.Deps{
		Source:      do.MustInvoke[*document.Source](injector),
		Output:      do.MustInvoke[*document.Output](injector),
		Graph:       do.MustInvoke[*graphview.View](injector),
		Diagnostics: do.MustInvoke[*diagnostics.Log](injector),
		State:       do.MustInvoke[*stateref.Pipeline](injector),
		Health:      registry,
		Controller:  ctrl,
	}

	runErr := tui.Run(ctx, deps)

	// Stop the controller before the views it writes to go away.
	ctrl.Stop()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	logger.Info("shutdown complete")
	return nil
}
