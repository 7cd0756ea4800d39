package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type entryRepository struct {
	mu      sync.RWMutex
	entries map[model.EntryID]*model.Entry

	// lastCreated keeps creation times distinct so newest-first order is stable
	lastCreated time.Time
}

func newEntryRepository() *entryRepository {
	return &entryRepository{
		entries: make(map[model.EntryID]*model.Entry),
	}
}

func copyEntry(e *model.Entry) *model.Entry {
	copied := *e
	return &copied
}

func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyEntry(entry)
	if created.ID == "" {
		created.ID = model.NewEntryID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = nextTimestamp(r.lastCreated)
		r.lastCreated = created.CreatedAt
	}
	if created.UpdatedAt.IsZero() {
		created.UpdatedAt = created.CreatedAt
	}

	r.entries[created.ID] = created
	return copyEntry(created), nil
}

// owned returns the entry if it exists and belongs to ownerID. Caller holds the lock.
func (r *entryRepository) owned(ownerID model.UserID, id model.EntryID) (*model.Entry, error) {
	e, ok := r.entries[id]
	if !ok || e.OwnerID != ownerID {
		return nil, goerr.Wrap(model.ErrNotFound, "entry not found",
			goerr.V(model.EntryIDKey, id), goerr.V(model.OwnerIDKey, ownerID))
	}
	return e, nil
}

func (r *entryRepository) Get(ctx context.Context, ownerID model.UserID, id model.EntryID) (*model.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	return copyEntry(e), nil
}

func (r *entryRepository) Update(ctx context.Context, ownerID model.UserID, id model.EntryID, content string) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.owned(ownerID, id)
	if err != nil {
		return nil, err
	}

	updated := copyEntry(e)
	updated.Content = content
	updated.UpdatedAt = nextTimestamp(e.UpdatedAt)
	r.entries[id] = updated

	return copyEntry(updated), nil
}

// nextTimestamp returns now, or a nanosecond past prev when the clock has not advanced.
// UpdatedAt is used to order index writes, so consecutive updates must differ.
func nextTimestamp(prev time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}

func (r *entryRepository) Delete(ctx context.Context, ownerID model.UserID, id model.EntryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.owned(ownerID, id); err != nil {
		return err
	}
	delete(r.entries, id)
	return nil
}

func (r *entryRepository) FindByIDs(ctx context.Context, ownerID model.UserID, ids []model.EntryID) ([]*model.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.entries[id]; ok && e.OwnerID == ownerID {
			result = append(result, copyEntry(e))
		}
	}
	return result, nil
}

func (r *entryRepository) ListByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Entry, 0)
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			result = append(result, copyEntry(e))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *entryRepository) ForEach(ctx context.Context, fn func(entry *model.Entry) error) error {
	// Snapshot first so fn may call back into the repository
	r.mu.RLock()
	snapshot := make([]*model.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		snapshot = append(snapshot, copyEntry(e))
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
	})

	for _, e := range snapshot {
		if err := ctx.Err(); err != nil {
			return goerr.Wrap(err, "entry iteration canceled")
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
