package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen11/riverplay/internal/adapters/diagnostics"
	"github.com/jsamuelsen11/riverplay/internal/adapters/engine"
	"github.com/jsamuelsen11/riverplay/internal/adapters/graphview"
	"github.com/jsamuelsen11/riverplay/internal/app"
	"github.com/jsamuelsen11/riverplay/internal/app/stateref"
	"github.com/jsamuelsen11/riverplay/internal/document"
	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/platform/config"
	"github.com/jsamuelsen11/riverplay/internal/platform/health"
	"github.com/jsamuelsen11/riverplay/internal/platform/logging"
	"github.com/jsamuelsen11/riverplay/internal/platform/telemetry"
	"github.com/jsamuelsen11/riverplay/internal/ports"
	"github.com/jsamuelsen11/riverplay/internal/river"
)

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer   *sdktrace.TracerProvider
	meter    *sdkmetric.MeterProvider
	metrics  *telemetry.Metrics
	closeOut func() error
}

// Shutdown flushes both providers and closes the telemetry output. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	if o.closeOut != nil {
		if err := o.closeOut(); err != nil {
			errs = append(errs, fmt.Errorf("closing telemetry output: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	// The terminal is taken, so exporters write wherever log outputs can go.
	w, closeOut, err := logging.OpenOutput(cfg.Telemetry.Output)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry output: %w", err)
	}

	tp, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, telemetry.ExporterStdout, w)
	if err != nil {
		_ = closeOut()
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx, cfg.Telemetry.ServiceName, telemetry.ExporterStdout, w)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = closeOut()
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		_ = closeOut()
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:   tp,
		meter:    mp,
		metrics:  metrics,
		closeOut: closeOut,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (ports.Engine, error) {
		return river.Engine{}, nil
	})

	do.Provide(injector, func(i do.Injector) (*engine.Adapter, error) {
		eng := do.MustInvoke[ports.Engine](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return engine.New(eng, &cfg.Engine, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TransformService, error) {
		return do.MustInvoke[*engine.Adapter](i), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(_ do.Injector) (*stateref.Pipeline, error) {
		return stateref.NewPipeline(), nil
	})

	do.Provide(injector, func(_ do.Injector) (*document.Source, error) {
		return document.NewSource(cfg.Pipeline.Seed), nil
	})

	do.Provide(injector, func(_ do.Injector) (*document.Output, error) {
		return document.NewOutput(), nil
	})

	do.Provide(injector, func(_ do.Injector) (*graphview.View, error) {
		return graphview.New(&cfg.Graph, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*diagnostics.Log, error) {
		return diagnostics.New(diagnostics.DefaultCapacity, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.SyncController, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewSyncController(app.Collaborators{
			Source:      do.MustInvoke[*document.Source](i),
			Transform:   do.MustInvoke[ports.TransformService](i),
			Output:      do.MustInvoke[*document.Output](i),
			Graph:       do.MustInvoke[*graphview.View](i),
			Diagnostics: do.MustInvoke[*diagnostics.Log](i),
		}, do.MustInvoke[*stateref.Pipeline](i), app.Options{
			Policy:   domain.ErrorPolicy(cfg.Pipeline.OnError),
			Debounce: cfg.Pipeline.Debounce,
			Async:    cfg.Pipeline.Async,
		}, metrics, logger), nil
	})
}
