package usecase

import (
	"context"
	"strings"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// EntryUseCase runs the entry lifecycle. The store is written first, then the indexer is notified.
type EntryUseCase struct {
	entries interfaces.EntryRepository
	indexer *Indexer
}

func NewEntryUseCase(entries interfaces.EntryRepository, indexer *Indexer) *EntryUseCase {
	return &EntryUseCase{
		entries: entries,
		indexer: indexer,
	}
}

func (uc *EntryUseCase) CreateEntry(ctx context.Context, ownerID model.UserID, content string) (*model.Entry, error) {
	entry := &model.Entry{
		OwnerID: ownerID,
		Content: content,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.entries.Create(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create entry", goerr.V(model.OwnerIDKey, ownerID))
	}
	logging.From(ctx).Info("Entry created", "entry_id", created.ID, "owner_id", ownerID)

	uc.indexer.OnEntryCreated(ctx, created)
	return created, nil
}

func (uc *EntryUseCase) UpdateEntry(ctx context.Context, ownerID model.UserID, id model.EntryID, content string) (*model.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, goerr.Wrap(model.ErrValidation, "content is required", goerr.V(model.EntryIDKey, id))
	}

	updated, err := uc.entries.Update(ctx, ownerID, id, content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update entry",
			goerr.V(model.EntryIDKey, id),
			goerr.V(model.OwnerIDKey, ownerID))
	}

	uc.indexer.OnEntryUpdated(ctx, updated)
	return updated, nil
}

func (uc *EntryUseCase) DeleteEntry(ctx context.Context, ownerID model.UserID, id model.EntryID) error {
	if err := uc.entries.Delete(ctx, ownerID, id); err != nil {
		return goerr.Wrap(err, "failed to delete entry",
			goerr.V(model.EntryIDKey, id),
			goerr.V(model.OwnerIDKey, ownerID))
	}
	logging.From(ctx).Info("Entry deleted", "entry_id", id, "owner_id", ownerID)

	uc.indexer.OnEntryDeleted(ctx, id)
	return nil
}

func (uc *EntryUseCase) GetEntry(ctx context.Context, ownerID model.UserID, id model.EntryID) (*model.Entry, error) {
	entry, err := uc.entries.Get(ctx, ownerID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get entry", goerr.V(model.EntryIDKey, id))
	}
	return entry, nil
}

// ListEntries returns the caller's entries, newest first
func (uc *EntryUseCase) ListEntries(ctx context.Context, ownerID model.UserID) ([]*model.Entry, error) {
	entries, err := uc.entries.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list entries", goerr.V(model.OwnerIDKey, ownerID))
	}
	return entries, nil
}

// SearchEntries is Indexer.Search on behalf of ownerID
func (uc *EntryUseCase) SearchEntries(ctx context.Context, ownerID model.UserID, query string) ([]*model.Entry, error) {
	return uc.indexer.Search(ctx, ownerID, query)
}
