package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type entryDoc struct {
	ID        model.EntryID `firestore:"ID"`
	OwnerID   model.UserID  `firestore:"OwnerID"`
	Content   string        `firestore:"Content"`
	CreatedAt time.Time     `firestore:"CreatedAt"`
	UpdatedAt time.Time     `firestore:"UpdatedAt"`
}

func toEntryDoc(e *model.Entry) *entryDoc {
	return &entryDoc{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func docToEntry(doc *firestore.DocumentSnapshot) (*model.Entry, error) {
	var d entryDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal entry", goerr.V(model.EntryIDKey, doc.Ref.ID))
	}
	return &model.Entry{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

type entryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEntryRepository(client *firestore.Client) *entryRepository {
	return &entryRepository{client: client}
}

func (r *entryRepository) entries() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, EntryCollection))
}

func notFound(ownerID model.UserID, id model.EntryID) error {
	return goerr.Wrap(model.ErrNotFound, "entry not found",
		goerr.V(model.EntryIDKey, id), goerr.V(model.OwnerIDKey, ownerID))
}

func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	created := *entry
	if created.ID == "" {
		created.ID = model.NewEntryID()
	}
	// Firestore keeps microsecond precision
	now := time.Now().UTC().Truncate(time.Microsecond)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	if created.UpdatedAt.IsZero() {
		created.UpdatedAt = created.CreatedAt
	}

	if _, err := r.entries().Doc(created.ID.String()).Create(ctx, toEntryDoc(&created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(model.ErrConflict, "entry already exists", goerr.V(model.EntryIDKey, created.ID))
		}
		return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to create entry",
			goerr.V(model.EntryIDKey, created.ID))
	}

	return &created, nil
}

func (r *entryRepository) Get(ctx context.Context, ownerID model.UserID, id model.EntryID) (*model.Entry, error) {
	doc, err := r.entries().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, notFound(ownerID, id)
		}
		return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to get entry",
			goerr.V(model.EntryIDKey, id))
	}

	e, err := docToEntry(doc)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != ownerID {
		return nil, notFound(ownerID, id)
	}
	return e, nil
}

func (r *entryRepository) Update(ctx context.Context, ownerID model.UserID, id model.EntryID, content string) (*model.Entry, error) {
	ref := r.entries().Doc(id.String())

	var updated *model.Entry
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return notFound(ownerID, id)
			}
			return goerr.Wrap(err, "failed to get entry in transaction")
		}

		e, err := docToEntry(doc)
		if err != nil {
			return err
		}
		if e.OwnerID != ownerID {
			return notFound(ownerID, id)
		}

		now := time.Now().UTC().Truncate(time.Microsecond)
		if !now.After(e.UpdatedAt) {
			now = e.UpdatedAt.Add(time.Microsecond)
		}
		e.Content = content
		e.UpdatedAt = now
		updated = e

		return tx.Set(ref, toEntryDoc(e))
	})
	if err != nil {
		return nil, wrapStoreErr(err, "failed to update entry", id)
	}

	return updated, nil
}

func (r *entryRepository) Delete(ctx context.Context, ownerID model.UserID, id model.EntryID) error {
	ref := r.entries().Doc(id.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return notFound(ownerID, id)
			}
			return goerr.Wrap(err, "failed to get entry in transaction")
		}

		e, err := docToEntry(doc)
		if err != nil {
			return err
		}
		if e.OwnerID != ownerID {
			return notFound(ownerID, id)
		}

		return tx.Delete(ref)
	})
	if err != nil {
		return wrapStoreErr(err, "failed to delete entry", id)
	}

	return nil
}

// wrapStoreErr keeps ErrNotFound as is and classifies everything else as a store outage
func wrapStoreErr(err error, msg string, id model.EntryID) error {
	if errors.Is(err, model.ErrNotFound) {
		return err
	}
	return goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), msg, goerr.V(model.EntryIDKey, id))
}

func (r *entryRepository) FindByIDs(ctx context.Context, ownerID model.UserID, ids []model.EntryID) ([]*model.Entry, error) {
	if len(ids) == 0 {
		return []*model.Entry{}, nil
	}

	seen := make(map[model.EntryID]struct{}, len(ids))
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		refs = append(refs, r.entries().Doc(id.String()))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to get entries",
			goerr.V("ids", ids))
	}

	entries := make([]*model.Entry, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		e, err := docToEntry(doc)
		if err != nil {
			return nil, err
		}
		if e.OwnerID != ownerID {
			continue
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *entryRepository) ListByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Entry, error) {
	iter := r.entries().
		Where("OwnerID", "==", ownerID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.Entry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to iterate entries",
				goerr.V(model.OwnerIDKey, ownerID))
		}

		e, err := docToEntry(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *entryRepository) ForEach(ctx context.Context, fn func(entry *model.Entry) error) error {
	iter := r.entries().Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to iterate entries")
		}

		e, err := docToEntry(doc)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}
