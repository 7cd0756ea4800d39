package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Collection names
const (
	EntryCollection = "entries"
	UserCollection  = "users"
)

type Firestore struct {
	client *firestore.Client
	entry  *entryRepository
	user   *userRepository
	vector *VectorIndex
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix isolates collections, e.g. per test run
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.entry.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
		f.vector.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		entry:  newEntryRepository(client),
		user:   newUserRepository(client),
		vector: newVectorIndex(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Entry() interfaces.EntryRepository {
	return f.entry
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

// VectorIndex returns the index stored next to the entries and sharing the same client
func (f *Firestore) VectorIndex() *VectorIndex {
	return f.vector
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
