package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nao1215/signboard/internal/gsheet"
	"github.com/nao1215/signboard/internal/model"
)

// Loader runs load pipelines with one in-flight load per source.
//
// Concurrent Load calls for the same source share a single fetch and
// receive the same snapshot. A call made after that load completes starts
// a new one. Snapshots are read-only once returned.
type Loader struct {
	// pipelineFactory builds a fresh pipeline per load.
	pipelineFactory func(src gsheet.Source) *Pipeline

	logger *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	latest map[string]*model.Snapshot
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets a custom logger for the loader.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader using pipelineFactory for each load.
func NewLoader(pipelineFactory func(src gsheet.Source) *Pipeline, opts ...LoaderOption) *Loader {
	l := &Loader{
		pipelineFactory: pipelineFactory,
		latest:          make(map[string]*model.Snapshot),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = slog.Default()
	}

	return l
}

// loadResult carries both values through singleflight, which drops Val on error.
type loadResult struct {
	snap *model.Snapshot
	err  error
}

// Load loads src, joining an in-flight load of the same source if there is one.
//
// The returned snapshot is never nil; on failure it carries the status and
// error. If ctx ends first, Load returns ctx.Err() and a nil snapshot while
// the shared load keeps running for other callers.
func (l *Loader) Load(ctx context.Context, src gsheet.Source) (*model.Snapshot, error) {
	key := sourceKey(src)

	// Shared loads ignore caller cancellation; the HTTP client timeout bounds them.
	shared := context.WithoutCancel(ctx)

	ch := l.group.DoChan(key, func() (any, error) {
		snap := newSnapshot(src)
		err := l.pipelineFactory(src).Execute(shared, snap)

		l.mu.Lock()
		l.latest[src.Name] = snap
		l.mu.Unlock()

		return loadResult{snap: snap, err: err}, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			l.logger.Debug("joined in-flight load", "source", src.Name)
		}
		lr, _ := res.Val.(loadResult)
		return lr.snap, lr.err
	}
}

// Latest returns the most recent completed snapshot of a source by name.
func (l *Loader) Latest(name string) (*model.Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap, ok := l.latest[name]
	return snap, ok
}

func sourceKey(src gsheet.Source) string {
	return src.Name + "\x00" + src.SheetID + "\x00" + src.GID + "\x00" + src.Range
}

func newSnapshot(src gsheet.Source) *model.Snapshot {
	snap := model.NewSnapshot(src.Name, src.SheetID, "")
	snap.GID = src.GID
	snap.Range = src.Range
	return snap
}
