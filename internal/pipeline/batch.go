package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/signboard/internal/gsheet"
	"github.com/nao1215/signboard/internal/model"
)

// defaultConcurrency is the number of sources loaded at once.
const defaultConcurrency = 4

// BatchProcessor loads multiple sources concurrently through a Loader.
type BatchProcessor struct {
	// loader performs each load.
	loader *Loader

	// concurrency is the maximum number of concurrent loads.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent loads.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor that loads through loader.
func NewBatchProcessor(loader *Loader, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		loader:      loader,
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch loads every source with bounded concurrency.
//
// A failed source does not stop the others; its snapshot carries the error.
// The returned slice is in input order. The error is non-nil only when ctx
// ends, in which case sources that never started have nil entries.
// It is safe to call concurrently.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []gsheet.Source) ([]*model.Snapshot, error) {
	bp.logger.Debug("starting batch load",
		"total_sources", len(sources),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index.
	results := make([]*model.Snapshot, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("loading source",
				"source", src.Name,
				"index", i+1,
				"total", len(sources),
			)

			snap, err := bp.loader.Load(ctx, src)
			if snap == nil {
				// Only a cancelled wait returns no snapshot.
				return err
			}

			results[i] = snap

			if err != nil {
				bp.logger.Warn("load failed",
					"source", src.Name,
					"status", snap.Status.String(),
					"error", err,
				)
				return nil
			}

			bp.logger.Debug("load completed",
				"source", src.Name,
				"status", snap.Status.String(),
			)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch load complete",
		"total_sources", len(sources),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ProcessBatchWithCallback loads sources and calls callback as each one
// finishes. The callback may run concurrently and receives the source index.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	sources []gsheet.Source,
	callback func(snap *model.Snapshot, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			snap, err := bp.loader.Load(ctx, src)
			if snap == nil {
				return err
			}
			callback(snap, i)
			return nil
		})
	}

	return g.Wait()
}
