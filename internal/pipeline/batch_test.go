package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/signboard/internal/gsheet"
	"github.com/nao1215/signboard/internal/model"
)

// mockLoader builds a Loader whose pipelines run one mock step.
func mockLoader(do func(ctx context.Context, snap *model.Snapshot) error) *Loader {
	return NewLoader(func(_ gsheet.Source) *Pipeline {
		p := New()
		p.AddStep(&mockStep{name: "mock", doFunc: do})
		return p
	})
}

func sourcesNamed(names ...string) []gsheet.Source {
	out := make([]gsheet.Source, len(names))
	for i, name := range names {
		out[i] = gsheet.Source{Name: name, SheetID: "id-" + name}
	}
	return out
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(mockLoader(nil))

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != defaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", defaultConcurrency, bp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(mockLoader(nil), WithConcurrency(2))

		if bp.concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(mockLoader(nil), WithConcurrency(0))

		if bp.concurrency != defaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", defaultConcurrency, bp.concurrency)
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(mockLoader(nil), WithBatchLogger(nil))

		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestBatchProcessorProcessBatch tests batch loading.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("loads all sources", func(t *testing.T) {
		t.Parallel()

		var processedCount atomic.Int32
		bp := NewBatchProcessor(mockLoader(func(_ context.Context, _ *model.Snapshot) error {
			processedCount.Add(1)
			return nil
		}))

		results, err := bp.ProcessBatch(context.Background(), sourcesNamed("a", "b", "c"))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 results, got %d", len(results))
		}
		if processedCount.Load() != 3 {
			t.Errorf("expected 3 processed, got %d", processedCount.Load())
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var maxConcurrent atomic.Int32
		var currentConcurrent atomic.Int32
		var mu sync.Mutex

		bp := NewBatchProcessor(
			mockLoader(func(_ context.Context, _ *model.Snapshot) error {
				current := currentConcurrent.Add(1)

				mu.Lock()
				if current > maxConcurrent.Load() {
					maxConcurrent.Store(current)
				}
				mu.Unlock()

				time.Sleep(20 * time.Millisecond)

				currentConcurrent.Add(-1)
				return nil
			}),
			WithConcurrency(2),
		)

		names := make([]string, 8)
		for i := range names {
			names[i] = fmt.Sprintf("source-%d", i)
		}

		_, err := bp.ProcessBatch(context.Background(), sourcesNamed(names...))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if maxConcurrent.Load() > 2 {
			t.Errorf("max concurrent was %d, expected <= 2", maxConcurrent.Load())
		}
	})

	t.Run("maintains result order", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(mockLoader(nil))
		sources := sourcesNamed("first", "second", "third")

		results, err := bp.ProcessBatch(context.Background(), sources)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, result := range results {
			if result.Source != sources[i].Name {
				t.Errorf("result[%d]: got %q, expected %q", i, result.Source, sources[i].Name)
			}
		}
	})

	t.Run("continues after individual load failure", func(t *testing.T) {
		t.Parallel()

		var processedCount atomic.Int32
		bp := NewBatchProcessor(mockLoader(func(_ context.Context, snap *model.Snapshot) error {
			processedCount.Add(1)
			if snap.Source == "fail" {
				snap.SetError(model.StatusTransportError, gsheet.ErrTransport)
				return gsheet.ErrTransport
			}
			return nil
		}))

		results, err := bp.ProcessBatch(context.Background(), sourcesNamed("first", "fail", "third"))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if processedCount.Load() != 3 {
			t.Errorf("expected 3 processed, got %d", processedCount.Load())
		}
		if results[1].Error == nil {
			t.Error("expected error in second result")
		}
		if results[1].Status != model.StatusTransportError {
			t.Errorf("expected transport_error, got %v", results[1].Status)
		}
	})

	t.Run("handles context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var startedCount atomic.Int32

		bp := NewBatchProcessor(
			mockLoader(func(_ context.Context, _ *model.Snapshot) error {
				startedCount.Add(1)
				time.Sleep(100 * time.Millisecond)
				return nil
			}),
			WithConcurrency(2),
		)

		names := make([]string, 10)
		for i := range names {
			names[i] = fmt.Sprintf("source-%d", i)
		}

		go func() {
			time.Sleep(30 * time.Millisecond)
			cancel()
		}()

		_, err := bp.ProcessBatch(ctx, sourcesNamed(names...))

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		//nolint:gosec // len(names) is small, no overflow risk
		if startedCount.Load() >= int32(len(names)) {
			t.Error("expected some sources to not start due to cancellation")
		}
		// Let in-flight shared loads finish before leak checks.
		time.Sleep(150 * time.Millisecond)
	})

	t.Run("concurrent batches keep separate results", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(mockLoader(func(_ context.Context, _ *model.Snapshot) error {
			time.Sleep(5 * time.Millisecond)
			return nil
		}))

		batches := [][]gsheet.Source{
			sourcesNamed("a1", "a2", "a3"),
			sourcesNamed("b1", "b2"),
			sourcesNamed("c1", "c2", "c3", "c4"),
		}
		got := make([][]*model.Snapshot, len(batches))
		errs := make([]error, len(batches))

		var wg sync.WaitGroup
		for i, sources := range batches {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got[i], errs[i] = bp.ProcessBatch(context.Background(), sources)
			}()
		}
		wg.Wait()

		for i, sources := range batches {
			if errs[i] != nil {
				t.Fatalf("batch %d: unexpected error: %v", i, errs[i])
			}
			if len(got[i]) != len(sources) {
				t.Fatalf("batch %d: expected %d results, got %d", i, len(sources), len(got[i]))
			}
			for j, snap := range got[i] {
				if snap == nil || snap.Source != sources[j].Name {
					t.Errorf("batch %d result[%d]: expected %q, got %+v", i, j, sources[j].Name, snap)
				}
			}
		}
	})
}

// TestBatchProcessorProcessBatchWithCallback tests callback-based loading.
func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	var callbackCount atomic.Int32
	var mu sync.Mutex
	received := make(map[string]int)

	bp := NewBatchProcessor(mockLoader(nil))
	sources := sourcesNamed("x", "y", "z")

	err := bp.ProcessBatchWithCallback(context.Background(), sources, func(snap *model.Snapshot, index int) {
		callbackCount.Add(1)
		mu.Lock()
		received[snap.Source] = index
		mu.Unlock()
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if callbackCount.Load() != 3 {
		t.Errorf("expected 3 callbacks, got %d", callbackCount.Load())
	}
	for i, src := range sources {
		if received[src.Name] != i {
			t.Errorf("source %q: got index %d, expected %d", src.Name, received[src.Name], i)
		}
	}
}
