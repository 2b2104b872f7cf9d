// Package engine adapts the raw string-in, string-out engine to the
// classified [ports.TransformService] the sync controller consumes.
//
// The engine reports rejected input in-band: a result starting with the
// configured error marker (default "Error") is a diagnostic, anything else is
// normalized text. This package is the only place that convention is known.
//
// Every call is reported to a circuit breaker. A panicking engine counts as a
// failure and the panic is re-raised for the controller to recover; rejected
// input is a successful call. The breaker only feeds health and metrics: the
// engine is still called while it is open, so a valid edit after a run of
// panics is applied as soon as the engine accepts it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/platform/config"
	"github.com/jsamuelsen11/riverplay/internal/platform/telemetry"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TransformService = (*Adapter)(nil)
	_ ports.HealthChecker    = (*Adapter)(nil)
)

// Name is the identifier the adapter registers under for health checks,
// breaker logs and spans.
const Name = "river-engine"

// errEnginePanicked is the outcome reported to the breaker for a panicking
// call.
var errEnginePanicked = errors.New("engine panicked")

// Operation names used in spans and metrics.
const (
	opTransform = "transform"
	opToGraph   = "to_graph"
)

// Adapter classifies engine results and guards engine calls with a circuit
// breaker. Safe for concurrent use.
type Adapter struct {
	engine  ports.Engine
	marker  string
	breaker *gobreaker.TwoStepCircuitBreaker[string]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates an Adapter around eng. If metrics is nil, metric recording is
// skipped.
func New(eng ports.Engine, cfg *config.EngineConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Adapter {
	cb := gobreaker.NewTwoStepCircuitBreaker[string](gobreaker.Settings{
		Name:        Name,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Adapter{
		engine:  eng,
		marker:  cfg.ErrorMarker,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// Transform runs the engine on text and classifies the answer. Rejected text
// yields an Invalid result and a nil error.
func (a *Adapter) Transform(ctx context.Context, text string) (domain.TransformResult, error) {
	raw, err := a.call(ctx, opTransform, text, a.engine.Transform)
	if err != nil {
		return domain.TransformResult{}, err
	}
	if msg, rejected := a.classify(raw); rejected {
		return domain.Invalid(msg), nil
	}
	return domain.Transformed(raw), nil
}

// ToGraphSpec runs the engine's graph conversion on text. The caller has
// already seen text accepted, so a marker-prefixed answer here is a fault.
func (a *Adapter) ToGraphSpec(ctx context.Context, text string) (domain.GraphDescriptor, error) {
	raw, err := a.call(ctx, opToGraph, text, a.engine.ToGraph)
	if err != nil {
		return "", err
	}
	if msg, rejected := a.classify(raw); rejected {
		return "", fmt.Errorf("%s: graph conversion rejected accepted text: %s: %w",
			Name, msg, domain.ErrCollaboratorFault)
	}
	return domain.GraphDescriptor(raw), nil
}

// classify reports whether raw carries the error marker and, if so, returns
// the diagnostic with the marker and an optional ":" separator removed.
func (a *Adapter) classify(raw string) (string, bool) {
	if !strings.HasPrefix(raw, a.marker) {
		return "", false
	}
	msg := strings.TrimPrefix(raw, a.marker)
	msg = strings.TrimPrefix(msg, ":")
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = raw
	}
	return msg, true
}

// call runs fn inside a span, records the call duration and reports the
// outcome to the breaker. A panic in fn is recorded and re-raised. An open
// breaker is noted on the span but never stops the call.
func (a *Adapter) call(ctx context.Context, op, text string, fn func(string) string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	ctx, span := otel.Tracer(telemetry.InstrumentationName).Start(ctx, "engine."+op,
		trace.WithAttributes(
			telemetry.AttrOperation.String(op),
			telemetry.AttrSourceLength.Int(len(text)),
		),
	)

	done, allowErr := a.breaker.Allow()
	if allowErr != nil {
		span.AddEvent("circuit breaker rejected call",
			trace.WithAttributes(telemetry.AttrBreakerState.String(a.breaker.State().String())))
	}

	result := "panic"
	defer func() {
		if result == "panic" {
			if done != nil {
				done(errEnginePanicked)
			}
			span.SetStatus(codes.Error, errEnginePanicked.Error())
		}
		span.End()
		a.metrics.RecordEngineCall(ctx, op, result, time.Since(start))
	}()

	raw := fn(text)
	if done != nil {
		done(nil)
	}

	if _, rejected := a.classify(raw); rejected {
		result = "invalid"
	} else {
		result = "ok"
	}
	return raw, nil
}

// toUint32 clamps a non-negative int to uint32. Negative values become zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
