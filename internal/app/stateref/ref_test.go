package stateref_test

import (
	"sync"
	"testing"

	"github.com/jsamuelsen11/riverplay/internal/app/stateref"
	"github.com/jsamuelsen11/riverplay/internal/domain"
)

func TestRef_GetUpdate(t *testing.T) {
	t.Parallel()

	ref := stateref.New("initial")
	if got := ref.Get(); got != "initial" {
		t.Fatalf("Get() = %q, want %q", got, "initial")
	}

	ref.Update(func(v *string) { *v = "updated" })

	if got := ref.Get(); got != "updated" {
		t.Fatalf("Get() = %q, want %q", got, "updated")
	}
}

func TestNewPipeline_StartsEmpty(t *testing.T) {
	t.Parallel()

	ref := stateref.NewPipeline()
	st := ref.Get()

	if st.LastGoodSource != nil || st.LastGoodOutput != nil || st.LastGoodGraph != nil {
		t.Errorf("fresh state = %+v, want all nil", st)
	}
}

func TestRef_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	ref := stateref.NewPipeline()
	ref.Update(func(s *domain.PipelineState) {
		s.LastGoodSource = &domain.Document{Text: "Bits<1>", Version: 1}
	})

	snapshot := ref.Get()
	ref.Update(func(s *domain.PipelineState) {
		s.LastGoodSource = &domain.Document{Text: "Bits<2>", Version: 2}
	})

	if snapshot.LastGoodSource.Text != "Bits<1>" {
		t.Errorf("snapshot LastGoodSource = %q, want it unaffected by later updates", snapshot.LastGoodSource.Text)
	}
}

func TestRef_ConcurrentReadWrite(t *testing.T) {
	t.Parallel()

	ref := stateref.New(0)

	const writers = 10
	const readers = 20
	var wg sync.WaitGroup

	for range writers {
		wg.Go(func() {
			ref.Update(func(v *int) { *v++ })
		})
	}
	for range readers {
		wg.Go(func() {
			_ = ref.Get()
		})
	}

	wg.Wait()

	if got := ref.Get(); got != writers {
		t.Errorf("Get() = %d, want %d", got, writers)
	}
}
