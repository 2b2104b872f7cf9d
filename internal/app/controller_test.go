package app_test

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/riverplay/internal/adapters/diagnostics"
	"github.com/jsamuelsen11/riverplay/internal/adapters/engine"
	"github.com/jsamuelsen11/riverplay/internal/adapters/graphview"
	"github.com/jsamuelsen11/riverplay/internal/app"
	"github.com/jsamuelsen11/riverplay/internal/app/stateref"
	"github.com/jsamuelsen11/riverplay/internal/document"
	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/platform/config"
	"github.com/jsamuelsen11/riverplay/internal/ports"
	"github.com/jsamuelsen11/riverplay/internal/river"
	"github.com/jsamuelsen11/riverplay/mocks"
)

const seed = "Bits<1>"

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fixture struct {
	source *document.Source
	output *document.Output
	view   *graphview.View
	diag   *diagnostics.Log
	state  *stateref.Pipeline
	ctrl   *app.SyncController
}

func newFixture(t *testing.T, text string, svc ports.TransformService, opts app.Options) *fixture {
	t.Helper()

	f := &fixture{
		source: document.NewSource(text),
		output: document.NewOutput(),
		view: graphview.New(&config.GraphConfig{
			ZoomEnabled: true,
			Zoom:        1,
			Fallback:    "last-good",
		}, testLogger()),
		diag:  diagnostics.New(0, testLogger()),
		state: stateref.NewPipeline(),
	}
	f.ctrl = app.NewSyncController(app.Collaborators{
		Source:      f.source,
		Transform:   svc,
		Output:      f.output,
		Graph:       f.view,
		Diagnostics: f.diag,
	}, f.state, opts, nil, testLogger())
	t.Cleanup(f.ctrl.Stop)
	return f
}

// riverService is the real engine behind the real adapter.
func riverService() *engine.Adapter {
	return engine.New(river.Engine{}, &config.EngineConfig{
		ErrorMarker: "Error",
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	}, nil, testLogger())
}

// countingService counts calls on its way to the wrapped service.
type countingService struct {
	ports.TransformService
	transforms atomic.Int32
	graphs     atomic.Int32
}

func (s *countingService) Transform(ctx context.Context, text string) (domain.TransformResult, error) {
	s.transforms.Add(1)
	return s.TransformService.Transform(ctx, text)
}

func (s *countingService) ToGraphSpec(ctx context.Context, text string) (domain.GraphDescriptor, error) {
	s.graphs.Add(1)
	return s.TransformService.ToGraphSpec(ctx, text)
}

func dotFor(label string) domain.GraphDescriptor {
	return domain.GraphDescriptor(fmt.Sprintf("digraph {\n\tn0 [label=%q];\n}\n", label))
}

func expectValid(svc *mocks.MockTransformService, text string) {
	svc.EXPECT().Transform(mock.Anything, text).Return(domain.Transformed(text), nil).Once()
	svc.EXPECT().ToGraphSpec(mock.Anything, text).Return(dotFor(text), nil).Once()
}

func TestScenario_SeedRendersGraph(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seed, riverService(), app.Options{Policy: domain.PolicyPreserveOutput})

	if got := f.ctrl.Start(context.Background()); got != app.OutcomeApplied {
		t.Fatalf("Start() = %v, want applied", got)
	}

	if got := f.output.Snapshot().Text; got != "Bits<1>" {
		t.Errorf("output = %q, want %q", got, "Bits<1>")
	}
	d := f.view.Descriptor()
	if d.IsEmpty() {
		t.Fatal("graph descriptor is empty, want a diagram")
	}
	if !strings.Contains(d.String(), "Bits<1>") {
		t.Errorf("graph descriptor %q does not mention Bits<1>", d)
	}

	st := f.state.Get()
	if st.LastGoodSource == nil || st.LastGoodSource.Text != seed {
		t.Errorf("LastGoodSource = %+v, want seed", st.LastGoodSource)
	}
	if st.LastGoodGraph == nil || *st.LastGoodGraph != d {
		t.Errorf("LastGoodGraph = %v, want displayed descriptor", st.LastGoodGraph)
	}
	if f.ctrl.Status() != app.StatusIdle {
		t.Errorf("Status() = %v, want idle", f.ctrl.Status())
	}
}

func TestScenario_InvalidEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy    domain.ErrorPolicy
		wantEmpty bool
		wantDiag  bool
	}{
		{policy: domain.PolicyPreserveOutput, wantEmpty: false, wantDiag: true},
		{policy: domain.PolicyClearGraphAndReport, wantEmpty: true, wantDiag: true},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			t.Parallel()

			svc := &countingService{TransformService: riverService()}
			f := newFixture(t, seed, svc, app.Options{Policy: tt.policy})
			f.ctrl.Start(context.Background())

			outBefore := f.output.Snapshot()
			graphBefore := f.view.Descriptor()
			graphsBefore := svc.graphs.Load()

			f.source.ReplaceAll("Bits<")

			if got := f.output.Snapshot(); got != outBefore {
				t.Errorf("output = %+v, want unchanged %+v", got, outBefore)
			}
			if got := svc.graphs.Load(); got != graphsBefore {
				t.Errorf("ToGraphSpec calls = %d, want %d (never on invalid text)", got, graphsBefore)
			}

			gotGraph := f.view.Descriptor()
			if tt.wantEmpty && gotGraph != domain.EmptyGraph {
				t.Errorf("graph = %q, want EmptyGraph", gotGraph)
			}
			if !tt.wantEmpty && gotGraph != graphBefore {
				t.Errorf("graph = %q, want unchanged", gotGraph)
			}

			latest, ok := f.diag.Latest()
			if ok != tt.wantDiag {
				t.Fatalf("diagnostic reported = %v, want %v", ok, tt.wantDiag)
			}
			if ok {
				if latest.Kind != domain.KindInvalidInput {
					t.Errorf("diagnostic kind = %v, want invalid_input", latest.Kind)
				}
				if latest.SourceVersion != f.source.Snapshot().Version {
					t.Errorf("diagnostic version = %d, want %d", latest.SourceVersion, f.source.Snapshot().Version)
				}
			}

			st := f.state.Get()
			if st.LastGoodSource.Text != seed {
				t.Errorf("LastGoodSource = %q, want seed", st.LastGoodSource.Text)
			}
		})
	}
}

func TestScenario_RecoverAfterError(t *testing.T) {
	t.Parallel()

	for _, policy := range []domain.ErrorPolicy{domain.PolicyPreserveOutput, domain.PolicyClearGraphAndReport} {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, seed, riverService(), app.Options{Policy: policy})
			f.ctrl.Start(context.Background())

			f.source.ReplaceAll("Group<Bits<4>,")
			outVersion := f.output.Snapshot().Version
			renders := f.view.Renders()

			f.source.ReplaceAll("Group<Bits<4>,Bits<8>>")

			out := f.output.Snapshot()
			if out.Text != "Group<Bits<4>, Bits<8>>" {
				t.Errorf("output = %q, want canonical group", out.Text)
			}
			if out.Version != outVersion+1 {
				t.Errorf("output version = %d, want %d (exactly one update)", out.Version, outVersion+1)
			}
			if got := f.view.Renders(); got != renders+1 {
				t.Errorf("graph renders = %d, want %d (exactly one update)", got, renders+1)
			}
			if !strings.Contains(f.view.Descriptor().String(), "Bits<8>") {
				t.Errorf("graph %q does not reflect the new expression", f.view.Descriptor())
			}
		})
	}
}

func TestScenario_DebounceCollapsesBurst(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockTransformService(t)
	expectValid(svc, seed)
	expectValid(svc, "Bits<123>")

	f := newFixture(t, seed, svc, app.Options{
		Policy:   domain.PolicyPreserveOutput,
		Debounce: 150 * time.Millisecond,
	})
	f.ctrl.Start(context.Background())

	f.source.ReplaceAll("Bits<12")
	f.source.ReplaceAll("Bits<123")
	f.source.ReplaceAll("Bits<123>")

	f.ctrl.Wait()

	if got := f.output.Snapshot().Text; got != "Bits<123>" {
		t.Errorf("output = %q, want %q", got, "Bits<123>")
	}
}

func TestSync_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Root<Group<Bits<3>,Dim<Bits<4>,1,2,3>>,1,2,3>", riverService(),
		app.Options{Policy: domain.PolicyPreserveOutput})
	doc := f.source.Snapshot()

	if got := f.ctrl.Sync(context.Background(), doc); got != app.OutcomeApplied {
		t.Fatalf("first Sync() = %v, want applied", got)
	}
	out1, graph1, renders1 := f.output.Snapshot(), f.view.Descriptor(), f.view.Renders()

	if got := f.ctrl.Sync(context.Background(), doc); got != app.OutcomeApplied {
		t.Fatalf("second Sync() = %v, want applied", got)
	}
	out2, graph2, renders2 := f.output.Snapshot(), f.view.Descriptor(), f.view.Renders()

	if out1 != out2 {
		t.Errorf("output changed between identical syncs: %+v vs %+v", out1, out2)
	}
	if graph1 != graph2 {
		t.Errorf("graph changed between identical syncs")
	}
	if renders1 != renders2 {
		t.Errorf("renders = %d then %d, want no redraw", renders1, renders2)
	}
}

func TestSync_ContainsEveryInvalidInput(t *testing.T) {
	t.Parallel()

	const valid = "Root<Group<Bits<3>, Dim<Bits<4>, 1, 2, 3>>, 1, 2, 3>"

	var inputs []string
	for i := range len(valid) {
		inputs = append(inputs, valid[:i])
	}
	rng := rand.New(rand.NewPCG(1, 2))
	const alphabet = "BitsRootGroupDimNewFlatRevUnion<>, 0123456789\t\n"
	for range 300 {
		n := rng.IntN(24)
		var b strings.Builder
		for range n {
			b.WriteByte(alphabet[rng.IntN(len(alphabet))])
		}
		inputs = append(inputs, b.String())
	}

	var eng river.Engine
	f := newFixture(t, seed, riverService(), app.Options{Policy: domain.PolicyPreserveOutput})
	f.ctrl.Start(context.Background())

	for _, in := range inputs {
		if !strings.HasPrefix(eng.Transform(in), river.ErrorPrefix) {
			continue
		}

		outBefore := f.output.Snapshot()
		graphBefore := f.view.Descriptor()

		f.source.ReplaceAll(in)

		if got := f.output.Snapshot(); got != outBefore {
			t.Fatalf("input %q changed output from %+v to %+v", in, outBefore, got)
		}
		if got := f.view.Descriptor(); got != graphBefore {
			t.Fatalf("input %q changed graph", in)
		}
	}
}

func TestSync_NoFeedbackLoop(t *testing.T) {
	t.Parallel()

	svc := &countingService{TransformService: riverService()}
	f := newFixture(t, seed, svc, app.Options{Policy: domain.PolicyPreserveOutput})
	f.ctrl.Start(context.Background())

	transforms := svc.transforms.Load()
	sourceVersion := f.source.Snapshot().Version

	f.output.ReplaceAll("edited output")
	_ = f.view.Render(context.Background(), dotFor("elsewhere"))
	f.view.Clear(context.Background())
	f.view.Scroll(1, 1)
	f.ctrl.Wait()

	if got := svc.transforms.Load(); got != transforms {
		t.Errorf("Transform calls = %d, want %d", got, transforms)
	}
	if got := f.source.Snapshot().Version; got != sourceVersion {
		t.Errorf("source version = %d, want %d", got, sourceVersion)
	}
}

func TestSync_AsyncStaleResultDiscarded(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockTransformService(t)
	expectValid(svc, seed)

	entered := make(chan struct{})
	release := make(chan struct{})
	svc.EXPECT().Transform(mock.Anything, "Bits<2>").RunAndReturn(
		func(context.Context, string) (domain.TransformResult, error) {
			close(entered)
			<-release
			return domain.Transformed("Bits<2>"), nil
		}).Once()
	expectValid(svc, "Bits<3>")

	f := newFixture(t, seed, svc, app.Options{Policy: domain.PolicyPreserveOutput, Async: true})
	f.ctrl.Start(context.Background())

	f.source.ReplaceAll("Bits<2>")
	<-entered
	if f.ctrl.Status() != app.StatusSyncing {
		t.Errorf("Status() = %v while a cycle blocks, want syncing", f.ctrl.Status())
	}

	f.source.ReplaceAll("Bits<3>")
	require.Eventually(t, func() bool {
		return f.output.Snapshot().Text == "Bits<3>"
	}, 2*time.Second, 5*time.Millisecond)

	close(release)
	f.ctrl.Wait()

	if got := f.output.Snapshot().Text; got != "Bits<3>" {
		t.Errorf("output = %q, want %q (stale result applied)", got, "Bits<3>")
	}
	if got := f.view.Descriptor(); got != dotFor("Bits<3>") {
		t.Errorf("graph = %q, want diagram for Bits<3>", got)
	}
	if got := f.state.Get().LastGoodSource.Text; got != "Bits<3>" {
		t.Errorf("LastGoodSource = %q, want %q", got, "Bits<3>")
	}
	if f.ctrl.Status() != app.StatusIdle {
		t.Errorf("Status() = %v, want idle", f.ctrl.Status())
	}
}

func TestSync_StaleVersionSuperseded(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seed, riverService(), app.Options{Policy: domain.PolicyPreserveOutput})
	old := f.source.Snapshot()
	if err := f.source.Insert(old.Len(), " "); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	if got := f.ctrl.Sync(context.Background(), old); got != app.OutcomeSuperseded {
		t.Errorf("Sync(old) = %v, want superseded", got)
	}
	if got := f.output.Snapshot().Version; got != 0 {
		t.Errorf("output version = %d, want 0", got)
	}
}

func TestSync_TransformPanicIsContained(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockTransformService(t)
	expectValid(svc, seed)
	svc.EXPECT().Transform(mock.Anything, "Bits<9>").RunAndReturn(
		func(context.Context, string) (domain.TransformResult, error) {
			panic("engine bug")
		}).Once()
	expectValid(svc, "Bits<7>")

	f := newFixture(t, seed, svc, app.Options{Policy: domain.PolicyPreserveOutput})
	f.ctrl.Start(context.Background())
	stateBefore := f.state.Get()
	outBefore := f.output.Snapshot()

	f.source.ReplaceAll("Bits<9>")

	if got := f.output.Snapshot(); got != outBefore {
		t.Errorf("output changed after fault: %+v", got)
	}
	if got := f.state.Get(); got != stateBefore {
		t.Errorf("state changed after fault: %+v", got)
	}
	latest, ok := f.diag.Latest()
	if !ok || latest.Kind != domain.KindCollaboratorFault {
		t.Fatalf("latest diagnostic = %+v, want collaborator fault", latest)
	}
	if !strings.Contains(latest.Message, "engine bug") {
		t.Errorf("diagnostic message = %q, want panic value", latest.Message)
	}

	// The pipeline keeps working.
	f.source.ReplaceAll("Bits<7>")
	if got := f.output.Snapshot().Text; got != "Bits<7>" {
		t.Errorf("output = %q, want %q", got, "Bits<7>")
	}
}

// boomEngine panics on "boom" and defers to the real engine otherwise.
type boomEngine struct{ river.Engine }

func (e boomEngine) Transform(text string) string {
	if text == "boom" {
		panic("engine bug")
	}
	return e.Engine.Transform(text)
}

func TestSync_ValidEditAppliedAfterRepeatedPanics(t *testing.T) {
	t.Parallel()

	svc := engine.New(boomEngine{}, &config.EngineConfig{
		ErrorMarker: "Error",
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	}, nil, testLogger())

	f := newFixture(t, seed, svc, app.Options{Policy: domain.PolicyPreserveOutput})
	f.ctrl.Start(context.Background())

	for range 5 {
		if got := f.ctrl.Sync(context.Background(), mustReplace(t, f, "boom")); got != app.OutcomeFault {
			t.Fatalf("Sync(boom) = %v, want fault", got)
		}
	}
	if err := svc.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() = nil, want open breaker error")
	}

	got := f.ctrl.Sync(context.Background(), mustReplace(t, f, "Bits<8>"))
	if got != app.OutcomeApplied {
		t.Fatalf("Sync(Bits<8>) = %v, want applied", got)
	}
	if out := f.output.Snapshot().Text; out != "Bits<8>" {
		t.Errorf("output = %q, want %q", out, "Bits<8>")
	}
	if st := f.state.Get(); st.LastGoodSource.Text != "Bits<8>" {
		t.Errorf("LastGoodSource = %q, want %q", st.LastGoodSource.Text, "Bits<8>")
	}
}

func TestSync_GraphFaultKeepsOutputUpdate(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockTransformService(t)
	expectValid(svc, seed)
	svc.EXPECT().Transform(mock.Anything, "Bits<5>").Return(domain.Transformed("Bits<5>"), nil).Once()
	svc.EXPECT().ToGraphSpec(mock.Anything, "Bits<5>").
		Return("", fmt.Errorf("river-engine: %w", domain.ErrCollaboratorFault)).Once()

	f := newFixture(t, seed, svc, app.Options{Policy: domain.PolicyPreserveOutput})
	f.ctrl.Start(context.Background())
	graphBefore := f.view.Descriptor()

	got := f.ctrl.Sync(context.Background(), mustReplace(t, f, "Bits<5>"))
	if got != app.OutcomeFault {
		t.Errorf("Sync() = %v, want fault", got)
	}
	if out := f.output.Snapshot().Text; out != "Bits<5>" {
		t.Errorf("output = %q, want %q", out, "Bits<5>")
	}
	if d := f.view.Descriptor(); d != graphBefore {
		t.Errorf("graph changed after graph fault")
	}
	if g := f.state.Get().LastGoodGraph; g == nil || *g != graphBefore {
		t.Errorf("LastGoodGraph = %v, want previous diagram", g)
	}
}

func TestSync_RenderFault(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockTransformService(t)
	expectValid(svc, seed)
	svc.EXPECT().Transform(mock.Anything, "Bits<6>").Return(domain.Transformed("Bits<6>"), nil).Once()
	svc.EXPECT().ToGraphSpec(mock.Anything, "Bits<6>").Return("digraph { n0 -> ", nil).Once()

	f := newFixture(t, seed, svc, app.Options{Policy: domain.PolicyPreserveOutput})
	f.ctrl.Start(context.Background())
	graphBefore := f.view.Descriptor()

	got := f.ctrl.Sync(context.Background(), mustReplace(t, f, "Bits<6>"))
	if got != app.OutcomeRenderFault {
		t.Errorf("Sync() = %v, want render_fault", got)
	}
	if out := f.output.Snapshot().Text; out != "Bits<6>" {
		t.Errorf("output = %q, want %q", out, "Bits<6>")
	}
	if d := f.view.Descriptor(); d != graphBefore {
		t.Errorf("graph = %q, want fallback to last good", d)
	}
	latest, ok := f.diag.Latest()
	if !ok || latest.Kind != domain.KindRenderFault {
		t.Errorf("latest diagnostic = %+v, want render fault", latest)
	}
	if !strings.Contains(latest.Message, domain.ErrRender.Error()) {
		t.Errorf("diagnostic message = %q, want it to mention %q", latest.Message, domain.ErrRender)
	}
}

func TestSync_GraphSinkMock(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockTransformService(t)
	svc.EXPECT().Transform(mock.Anything, "bad").Return(domain.Invalid("nope"), nil).Once()

	graph := mocks.NewMockGraphSink(t)
	graph.EXPECT().Clear(mock.Anything).Return().Once()

	diag := mocks.NewMockDiagnostics(t)
	diag.EXPECT().Report(mock.Anything, mock.MatchedBy(func(d domain.Diagnostic) bool {
		return d.Kind == domain.KindInvalidInput && d.Message == "nope" && d.SourceVersion == 1
	})).Return().Once()

	out := mocks.NewMockOutputSink(t)

	source := document.NewSource("bad")
	ctrl := app.NewSyncController(app.Collaborators{
		Source:      source,
		Transform:   svc,
		Output:      out,
		Graph:       graph,
		Diagnostics: diag,
	}, stateref.NewPipeline(), app.Options{Policy: domain.PolicyClearGraphAndReport}, nil, testLogger())

	if got := ctrl.Sync(context.Background(), source.Snapshot()); got != app.OutcomeInvalid {
		t.Errorf("Sync() = %v, want invalid", got)
	}
}

func TestStop_Unsubscribes(t *testing.T) {
	t.Parallel()

	svc := &countingService{TransformService: riverService()}
	f := newFixture(t, seed, svc, app.Options{Policy: domain.PolicyPreserveOutput, Debounce: time.Hour})
	f.ctrl.Start(context.Background())

	f.source.ReplaceAll("Bits<2>")
	f.ctrl.Stop()
	f.source.ReplaceAll("Bits<3>")
	f.ctrl.Wait()

	if got := svc.transforms.Load(); got != 1 {
		t.Errorf("Transform calls = %d, want 1 (only the startup cycle)", got)
	}
	if got := f.output.Snapshot().Text; got != seed {
		t.Errorf("output = %q, want %q", got, seed)
	}
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		o    app.Outcome
		want string
	}{
		{app.OutcomeApplied, "applied"},
		{app.OutcomeInvalid, "invalid"},
		{app.OutcomeFault, "fault"},
		{app.OutcomeRenderFault, "render_fault"},
		{app.OutcomeSuperseded, "superseded"},
		{app.Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.o), got, tt.want)
		}
	}
}

// mustReplace replaces the source text while the controller is detached and
// returns the new snapshot, so the test drives the cycle through Sync.
func mustReplace(t *testing.T, f *fixture, text string) domain.Document {
	t.Helper()
	f.ctrl.Stop()
	f.source.ReplaceAll(text)
	return f.source.Snapshot()
}
