package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/utils/async"
	"github.com/Hsinha11/AI-Journal/pkg/utils/errutil"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// IndexerConfig tunes the indexing coordinator
type IndexerConfig struct {
	// SearchLimit is K, the number of nearest neighbors requested per search
	SearchLimit int
	// PreviewLength is the number of content characters stored as vector metadata
	PreviewLength int
	// IndexTimeout bounds a single embed and upsert on the write path
	IndexTimeout time.Duration
	// Async dispatches write path indexing instead of awaiting it
	Async bool
	// BackfillConcurrency is the number of entries indexed in parallel by BackfillAll
	BackfillConcurrency int
	// WatermarkSize is the number of entry ids whose last indexed version is remembered
	WatermarkSize int
}

func DefaultIndexerConfig() IndexerConfig {
	return IndexerConfig{
		SearchLimit:         model.DefaultSearchLimit,
		PreviewLength:       model.PreviewMaxLength,
		IndexTimeout:        10 * time.Second,
		BackfillConcurrency: 4,
		WatermarkSize:       10000,
	}
}

// watermark is the last applied index write of one entry
type watermark struct {
	updatedAt time.Time
	deleted   bool
}

// Indexer keeps the vector index in sync with the entry store and serves searches.
//
// Store writes happen before the hooks are called and are never rolled back:
// indexing failures on the write path are logged only and leave the entry
// unsearchable until the next backfill. Search failures are returned.
type Indexer struct {
	entries  interfaces.EntryRepository
	embedder interfaces.Embedder
	index    interfaces.VectorIndex
	cfg      IndexerConfig

	locks       *keyedMutex
	marks       *lru.Cache[model.EntryID, watermark]
	backfilling atomic.Bool
	pending     sync.WaitGroup
}

func NewIndexer(entries interfaces.EntryRepository, embedder interfaces.Embedder, index interfaces.VectorIndex, cfg IndexerConfig) (*Indexer, error) {
	def := DefaultIndexerConfig()
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = def.SearchLimit
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = def.PreviewLength
	}
	if cfg.IndexTimeout <= 0 {
		cfg.IndexTimeout = def.IndexTimeout
	}
	if cfg.BackfillConcurrency <= 0 {
		cfg.BackfillConcurrency = def.BackfillConcurrency
	}
	if cfg.WatermarkSize <= 0 {
		cfg.WatermarkSize = def.WatermarkSize
	}

	marks, err := lru.New[model.EntryID, watermark](cfg.WatermarkSize)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create watermark cache", goerr.V("size", cfg.WatermarkSize))
	}

	return &Indexer{
		entries:  entries,
		embedder: embedder,
		index:    index,
		cfg:      cfg,
		locks:    newKeyedMutex(),
		marks:    marks,
	}, nil
}

// OnEntryCreated indexes a freshly stored entry. Failures are logged, never returned.
func (x *Indexer) OnEntryCreated(ctx context.Context, entry *model.Entry) {
	x.dispatch(ctx, "index_created_entry", entry.ID, func(ctx context.Context) error {
		_, err := x.indexEntry(ctx, entry)
		return err
	})
}

// OnEntryUpdated re-indexes an updated entry. Failures are logged, never returned.
func (x *Indexer) OnEntryUpdated(ctx context.Context, entry *model.Entry) {
	x.dispatch(ctx, "index_updated_entry", entry.ID, func(ctx context.Context) error {
		_, err := x.indexEntry(ctx, entry)
		return err
	})
}

// OnEntryDeleted removes the vector of a deleted entry. Failures are logged, never returned.
func (x *Indexer) OnEntryDeleted(ctx context.Context, id model.EntryID) {
	x.dispatch(ctx, "delete_entry_vector", id, func(ctx context.Context) error {
		return x.deleteVector(ctx, id)
	})
}

// Wait blocks until dispatched index writes and a backfill started by StartBackfill have finished
func (x *Indexer) Wait() {
	x.pending.Wait()
}

// dispatch runs fn detached from request cancellation and bounded by IndexTimeout
func (x *Indexer) dispatch(ctx context.Context, name string, id model.EntryID, fn func(ctx context.Context) error) {
	run := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), x.cfg.IndexTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			_ = errutil.Handle(ctx, goerr.Wrap(err, "index write failed",
				goerr.V("task", name), goerr.V(model.EntryIDKey, id)), "entry is not searchable until next backfill")
		}
		return nil
	}

	if !x.cfg.Async {
		_ = run(ctx)
		return
	}

	x.pending.Add(1)
	async.Dispatch(ctx, name, func(ctx context.Context) error {
		defer x.pending.Done()
		return run(ctx)
	})
}

// indexEntry embeds and upserts entry unless a newer version was already applied.
// It reports whether the index was written.
func (x *Indexer) indexEntry(ctx context.Context, entry *model.Entry) (bool, error) {
	if x.embedder == nil {
		return false, goerr.Wrap(model.ErrModelUnavailable, "embedder is not configured")
	}
	if x.index == nil {
		return false, goerr.Wrap(model.ErrIndexUnavailable, "vector index is not configured")
	}

	unlock := x.locks.Lock(entry.ID)
	defer unlock()

	if mark, ok := x.marks.Get(entry.ID); ok && (mark.deleted || mark.updatedAt.After(entry.UpdatedAt)) {
		logging.From(ctx).Debug("skip stale index write",
			"entry_id", entry.ID,
			"updated_at", entry.UpdatedAt,
			"deleted", mark.deleted)
		return false, nil
	}

	values, err := x.embedder.Embed(ctx, entry.Content)
	if err != nil {
		return false, goerr.Wrap(model.Classify(model.ErrModelUnavailable, err), "failed to embed entry",
			goerr.V(model.EntryIDKey, entry.ID))
	}

	vector := model.NewEntryVector(entry, values, x.cfg.PreviewLength)
	if err := x.index.Upsert(ctx, vector); err != nil {
		return false, goerr.Wrap(model.Classify(model.ErrIndexUnavailable, err), "failed to upsert vector",
			goerr.V(model.EntryIDKey, entry.ID))
	}

	x.marks.Add(entry.ID, watermark{updatedAt: entry.UpdatedAt})
	return true, nil
}

func (x *Indexer) deleteVector(ctx context.Context, id model.EntryID) error {
	unlock := x.locks.Lock(id)
	defer unlock()

	// Tombstone first so that a late upsert of the same entry is dropped even if the delete below fails
	x.marks.Add(id, watermark{deleted: true})

	if x.index == nil {
		return goerr.Wrap(model.ErrIndexUnavailable, "vector index is not configured")
	}
	if err := x.index.Delete(ctx, id); err != nil {
		return goerr.Wrap(model.Classify(model.ErrIndexUnavailable, err), "failed to delete vector",
			goerr.V(model.EntryIDKey, id))
	}
	return nil
}

// Search returns the caller's entries most similar to query, best match first.
//
// A blank query returns a nil slice without touching the model or the index,
// meaning "not searched". A search without hits returns an empty, non-nil slice.
// Ids surfaced by the index that are missing or owned by someone else are dropped.
func (x *Indexer) Search(ctx context.Context, ownerID model.UserID, query string) ([]*model.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if x.embedder == nil {
		return nil, goerr.Wrap(model.ErrModelUnavailable, "embedder is not configured")
	}
	if x.index == nil {
		return nil, goerr.Wrap(model.ErrIndexUnavailable, "vector index is not configured")
	}

	values, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(model.ClassifyDependency(model.ErrModelUnavailable, err), "failed to embed query")
	}

	matches, err := x.index.QueryTopK(ctx, values, x.cfg.SearchLimit)
	if err != nil {
		return nil, goerr.Wrap(model.ClassifyDependency(model.ErrIndexUnavailable, err), "failed to query vector index",
			goerr.V("limit", x.cfg.SearchLimit))
	}

	ranked := make([]model.EntryID, 0, len(matches))
	seen := make(map[model.EntryID]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		ranked = append(ranked, m.ID)
	}

	results := make([]*model.Entry, 0, len(ranked))
	if len(ranked) == 0 {
		return results, nil
	}

	found, err := x.entries.FindByIDs(ctx, ownerID, ranked)
	if err != nil {
		return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to fetch matched entries",
			goerr.V(model.OwnerIDKey, ownerID))
	}

	byID := make(map[model.EntryID]*model.Entry, len(found))
	for _, e := range found {
		// The store is trusted to filter by owner; check again since leaking is worse than dropping
		if e.OwnerID == ownerID {
			byID[e.ID] = e
		}
	}

	for _, id := range ranked {
		if e, ok := byID[id]; ok {
			results = append(results, e)
		}
	}
	return results, nil
}

// IsBackfilling reports whether a BackfillAll run is in progress
func (x *Indexer) IsBackfilling() bool {
	return x.backfilling.Load()
}

// BackfillAll indexes every entry of every owner. Entries with blank content are skipped.
// Per-entry failures are counted and logged; only a failure to read the store aborts the run.
func (x *Indexer) BackfillAll(ctx context.Context) (*model.BackfillResult, error) {
	if !x.backfilling.CompareAndSwap(false, true) {
		return nil, goerr.Wrap(model.ErrConflict, "backfill is already running")
	}
	defer x.backfilling.Store(false)

	return x.backfill(ctx)
}

// StartBackfill claims the backfill slot and runs it in the background.
// ErrConflict is returned synchronously while another run holds the slot.
// The started run is covered by Wait.
func (x *Indexer) StartBackfill(ctx context.Context) error {
	if !x.backfilling.CompareAndSwap(false, true) {
		return goerr.Wrap(model.ErrConflict, "backfill is already running")
	}

	x.pending.Add(1)
	async.Dispatch(ctx, "backfill", func(ctx context.Context) error {
		defer x.pending.Done()
		defer x.backfilling.Store(false)

		_, err := x.backfill(ctx)
		return err
	})
	return nil
}

func (x *Indexer) backfill(ctx context.Context) (*model.BackfillResult, error) {
	start := time.Now()
	logger := logging.From(ctx)
	logger.Info("Backfill started", "concurrency", x.cfg.BackfillConcurrency)

	var total int
	var indexed, skipped, failed atomic.Int64

	var eg errgroup.Group
	eg.SetLimit(x.cfg.BackfillConcurrency)

	iterErr := x.entries.ForEach(ctx, func(entry *model.Entry) error {
		if err := ctx.Err(); err != nil {
			return goerr.Wrap(err, "backfill canceled")
		}

		total++
		if strings.TrimSpace(entry.Content) == "" {
			skipped.Add(1)
			return nil
		}

		eg.Go(func() error {
			ctx, cancel := context.WithTimeout(ctx, x.cfg.IndexTimeout)
			defer cancel()

			written, err := x.indexEntry(ctx, entry)
			switch {
			case err != nil:
				failed.Add(1)
				logger.Warn("Backfill failed to index entry",
					"entry_id", entry.ID,
					"error", err.Error())
			case written:
				indexed.Add(1)
			default:
				skipped.Add(1)
			}
			return nil
		})
		return nil
	})
	_ = eg.Wait()

	result := &model.BackfillResult{
		Total:    total,
		Indexed:  int(indexed.Load()),
		Skipped:  int(skipped.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(start),
	}

	if iterErr != nil {
		return result, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, iterErr), "failed to iterate entries for backfill",
			goerr.V("processed", total))
	}

	logger.Info("Backfill finished",
		"total", result.Total,
		"indexed", result.Indexed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", result.Duration.String())
	return result, nil
}

// keyedMutex serializes work per entry id
type keyedMutex struct {
	mu    sync.Mutex
	locks map[model.EntryID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[model.EntryID]*refMutex)}
}

// Lock acquires the lock of id and returns its release function
func (k *keyedMutex) Lock(id model.EntryID) func() {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
