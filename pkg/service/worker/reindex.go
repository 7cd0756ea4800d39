package worker

import (
	"context"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Backfiller re-indexes every entry of the record store
type Backfiller interface {
	BackfillAll(ctx context.Context) (*model.BackfillResult, error)
}

// ReindexWorker periodically runs a full backfill so that entries whose index
// write failed become searchable again.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Backfill is idempotent, overlapping runs only cost embedding calls
type ReindexWorker struct {
	backfiller Backfiller
	interval   time.Duration
	initialRun bool
	stopCh     chan struct{}
	doneCh     chan struct{}
}

type Option func(*ReindexWorker)

// WithInitialRun makes the worker backfill once right after Start.
// Needed when the vector index does not persist across restarts.
func WithInitialRun() Option {
	return func(w *ReindexWorker) {
		w.initialRun = true
	}
}

func NewReindexWorker(backfiller Backfiller, interval time.Duration, opts ...Option) *ReindexWorker {
	w := &ReindexWorker{
		backfiller: backfiller,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background loop without blocking the caller
func (w *ReindexWorker) Start(ctx context.Context) error {
	if w.interval <= 0 && !w.initialRun {
		return goerr.New("reindex worker has nothing to do", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Reindex worker starting",
		"interval", w.interval.String(),
		"initial_run", w.initialRun)

	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for the running cycle to finish
func (w *ReindexWorker) Stop() {
	logging.Default().Info("Reindex worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Reindex worker stopped")
}

func (w *ReindexWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if w.initialRun {
		w.reindex(ctx)
	}
	if w.interval <= 0 {
		<-w.stopCh
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reindex(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Reindex worker context cancelled")
			<-w.stopCh
			return
		}
	}
}

func (w *ReindexWorker) reindex(ctx context.Context) {
	result, err := w.backfiller.BackfillAll(ctx)
	if err != nil {
		// Keep the worker alive, the next tick retries
		logging.Default().Error("Reindex failed (will retry next interval)", "error", err.Error())
		return
	}

	logging.Default().Info("Reindex completed",
		"total", result.Total,
		"indexed", result.Indexed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", result.Duration.String())
}
