// Package app holds the sync controller: the state machine that keeps the
// derived output document and the graph view in step with the source
// document.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/riverplay/internal/app/stateref"
	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/platform/telemetry"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Collaborators are the ports the controller reads from and writes to.
type Collaborators struct {
	Source      ports.SourceDocument
	Transform   ports.TransformService
	Output      ports.OutputSink
	Graph       ports.GraphSink
	Diagnostics ports.Diagnostics
}

// Options tune how changes are scheduled and how rejected text is handled.
type Options struct {
	// Policy decides what happens to the derived views on rejected text.
	Policy domain.ErrorPolicy
	// Debounce collapses changes closer together than this into one cycle
	// on the final text. Zero syncs on every change.
	Debounce time.Duration
	// Async runs each cycle on its own goroutine instead of inside the
	// change notification.
	Async bool
}

// SyncController subscribes to the source document and, for every content
// change, transforms the full current text and pushes the results to the
// output document and the graph view. Results computed for text that is no
// longer current are discarded. Engine panics and errors are contained: they
// are logged, reported as diagnostics and never reach the editing surface.
type SyncController struct {
	source    ports.SourceDocument
	transform ports.TransformService
	output    ports.OutputSink
	graph     ports.GraphSink
	diag      ports.Diagnostics
	state     *stateref.Pipeline
	opts      Options
	metrics   *telemetry.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	mu          sync.Mutex
	baseCtx     context.Context
	unsubscribe func()
	gen         uint64
	timer       *time.Timer
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	// applyMu serializes writes to the derived views and the state.
	applyMu  sync.Mutex
	inFlight atomic.Int32
}

// NewSyncController creates a controller. It does nothing until Start. If
// metrics is nil, metric recording is skipped.
func NewSyncController(c Collaborators, state *stateref.Pipeline, opts Options,
	metrics *telemetry.Metrics, logger *slog.Logger,
) *SyncController {
	if !opts.Policy.IsValid() {
		opts.Policy = domain.PolicyPreserveOutput
	}
	return &SyncController{
		source:    c.Source,
		transform: c.Transform,
		output:    c.Output,
		graph:     c.Graph,
		diag:      c.Diagnostics,
		state:     state,
		opts:      opts,
		metrics:   metrics,
		logger:    logger,
		tracer:    otel.Tracer(telemetry.InstrumentationName),
	}
}

// Start subscribes to the source document and runs the first cycle on its
// current text. Cycles started by later changes derive their context from
// ctx. Calling Start on a running controller only repeats the first cycle.
func (c *SyncController) Start(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.unsubscribe == nil {
		c.baseCtx = ctx
		c.unsubscribe = c.source.Subscribe(c.onChange)
	}
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "sync controller started",
		slog.String("policy", c.opts.Policy.String()),
		slog.Duration("debounce", c.opts.Debounce),
		slog.Bool("async", c.opts.Async),
	)
	return c.Sync(ctx, c.source.Snapshot())
}

// Stop unsubscribes from the source document, drops any pending debounced
// change, cancels the in-flight cycle and waits for running cycles to return.
func (c *SyncController) Stop() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.baseCtx = nil
	c.gen++
	if c.timer != nil && c.timer.Stop() {
		c.wg.Done()
	}
	c.timer = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	c.wg.Wait()
}

// Wait blocks until every scheduled cycle has finished, including a pending
// debounced one.
func (c *SyncController) Wait() {
	c.wg.Wait()
}

// Status reports whether a cycle is in flight.
func (c *SyncController) Status() Status {
	if c.inFlight.Load() > 0 {
		return StatusSyncing
	}
	return StatusIdle
}

// onChange is the source document subscription. It supersedes whatever cycle
// is in flight and schedules a new one according to Options.
func (c *SyncController) onChange(_ domain.ChangeEvent) {
	c.mu.Lock()
	if c.baseCtx == nil {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancel = cancel
	c.gen++
	gen := c.gen

	switch {
	case c.opts.Debounce > 0:
		if c.timer != nil && c.timer.Stop() {
			c.wg.Done()
		}
		c.wg.Add(1)
		c.timer = time.AfterFunc(c.opts.Debounce, func() {
			defer c.wg.Done()
			c.run(ctx, gen)
		})
		c.mu.Unlock()
	case c.opts.Async:
		c.wg.Add(1)
		c.mu.Unlock()
		go func() {
			defer c.wg.Done()
			c.run(ctx, gen)
		}()
	default:
		c.mu.Unlock()
		c.run(ctx, gen)
	}
}

// run starts a scheduled cycle unless a newer change was scheduled since.
func (c *SyncController) run(ctx context.Context, gen uint64) {
	c.mu.Lock()
	current := gen == c.gen
	c.mu.Unlock()
	if !current {
		c.metrics.RecordSync(ctx, OutcomeSuperseded.String(), 0)
		return
	}
	c.Sync(ctx, c.source.Snapshot())
}

// Sync runs one cycle for doc and reports how it ended. Results are applied
// only while doc is still the source document's current version and ctx has
// not been canceled.
func (c *SyncController) Sync(ctx context.Context, doc domain.Document) Outcome {
	start := time.Now()
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	ctx, span := c.tracer.Start(ctx, "pipeline.sync", trace.WithAttributes(
		telemetry.AttrSourceVersion.Int64(int64(doc.Version)),
		telemetry.AttrSourceLength.Int(doc.Len()),
	))
	defer span.End()

	outcome := c.cycle(ctx, doc)

	span.SetAttributes(telemetry.AttrResult.String(outcome.String()))
	if outcome == OutcomeFault || outcome == OutcomeRenderFault {
		span.SetStatus(codes.Error, outcome.String())
	}
	c.metrics.RecordSync(ctx, outcome.String(), time.Since(start))
	return outcome
}

func (c *SyncController) cycle(ctx context.Context, doc domain.Document) Outcome {
	res, err := guard("transform", func() (domain.TransformResult, error) {
		return c.transform.Transform(ctx, doc.Text)
	})
	if err != nil {
		return c.fault(ctx, doc, "transform", err)
	}

	if !res.IsOk() {
		return c.applyInvalid(ctx, doc, res)
	}

	if !c.applyOutput(ctx, doc, res) {
		return OutcomeSuperseded
	}

	descriptor, err := guard("to_graph", func() (domain.GraphDescriptor, error) {
		return c.transform.ToGraphSpec(ctx, doc.Text)
	})
	if err != nil {
		return c.fault(ctx, doc, "to_graph", err)
	}

	return c.applyGraph(ctx, doc, descriptor)
}

// stale reports whether results computed for doc must be discarded. Caller
// holds applyMu.
func (c *SyncController) stale(ctx context.Context, doc domain.Document) bool {
	return ctx.Err() != nil || c.source.Snapshot().Version != doc.Version
}

func (c *SyncController) applyInvalid(ctx context.Context, doc domain.Document, res domain.TransformResult) Outcome {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	if c.stale(ctx, doc) {
		return OutcomeSuperseded
	}

	if c.opts.Policy == domain.PolicyClearGraphAndReport {
		c.graph.Clear(ctx)
	}
	c.diag.Report(ctx, domain.Diagnostic{
		Kind:          domain.KindInvalidInput,
		Message:       res.Message(),
		SourceVersion: doc.Version,
	})
	return OutcomeInvalid
}

func (c *SyncController) applyOutput(ctx context.Context, doc domain.Document, res domain.TransformResult) bool {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	if c.stale(ctx, doc) {
		return false
	}

	prev := c.state.Get().LastGoodOutput
	if prev == nil || prev.Text != res.Text() {
		c.output.ReplaceAll(res.Text())
	}

	source := doc
	output := domain.Document{Text: res.Text(), Version: doc.Version}
	c.state.Update(func(s *domain.PipelineState) {
		s.LastGoodSource = &source
		s.LastGoodOutput = &output
	})
	return true
}

func (c *SyncController) applyGraph(ctx context.Context, doc domain.Document, descriptor domain.GraphDescriptor) Outcome {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	if c.stale(ctx, doc) {
		return OutcomeSuperseded
	}

	if err := c.graph.Render(ctx, descriptor); err != nil {
		c.diag.Report(ctx, domain.Diagnostic{
			Kind:          domain.KindRenderFault,
			Message:       err.Error(),
			SourceVersion: doc.Version,
		})
		return OutcomeRenderFault
	}

	c.state.Update(func(s *domain.PipelineState) {
		s.LastGoodGraph = &descriptor
	})
	return OutcomeApplied
}

// fault contains a failed engine call. A cycle canceled by a newer change is
// superseded, not failed. Faults are always logged but only reported while
// doc is current.
func (c *SyncController) fault(ctx context.Context, doc domain.Document, op string, err error) Outcome {
	if errors.Is(err, context.Canceled) {
		return OutcomeSuperseded
	}

	attrs := []any{
		slog.String("operation", op),
		slog.Uint64("source_version", doc.Version),
		slog.String("error", err.Error()),
	}
	var fe *domain.FaultError
	if errors.As(err, &fe) {
		attrs = append(attrs, slog.String("stack", string(fe.Stack)))
	}
	c.logger.ErrorContext(ctx, "engine call failed", attrs...)

	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	if c.stale(ctx, doc) {
		return OutcomeSuperseded
	}

	c.diag.Report(ctx, domain.Diagnostic{
		Kind:          domain.KindCollaboratorFault,
		Message:       fmt.Sprintf("%s: %v", op, err),
		SourceVersion: doc.Version,
	})
	return OutcomeFault
}

// guard calls fn and turns a panic into a *domain.FaultError.
func guard[T any](op string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.FaultError{Operation: op, Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
