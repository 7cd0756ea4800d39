package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userDoc struct {
	ID           model.UserID `firestore:"ID"`
	Username     string       `firestore:"Username"`
	Email        string       `firestore:"Email"`
	EmailLower   string       `firestore:"EmailLower"`
	PasswordHash string       `firestore:"PasswordHash"`
	CreatedAt    time.Time    `firestore:"CreatedAt"`
}

func (d *userDoc) toModel() *model.User {
	return &model.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) users() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, UserCollection))
}

// Create checks username and email uniqueness and writes the user in one transaction
func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	doc := &userDoc{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		EmailLower:   strings.ToLower(user.Email),
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	if doc.ID == "" {
		doc.ID = model.NewUserID()
	}
	ref := r.users().Doc(doc.ID.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		checks := []struct {
			field, value, msg string
		}{
			{"Username", doc.Username, "username already taken"},
			{"EmailLower", doc.EmailLower, "email already registered"},
		}
		for _, c := range checks {
			iter := tx.Documents(r.users().Where(c.field, "==", c.value).Limit(1))
			_, err := iter.Next()
			iter.Stop()
			if err == nil {
				return goerr.Wrap(model.ErrConflict, c.msg, goerr.V(c.field, c.value))
			}
			if err != iterator.Done {
				return goerr.Wrap(err, "failed to check user uniqueness", goerr.V("field", c.field))
			}
		}

		return tx.Create(ref, doc)
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, err
		}
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(model.ErrConflict, "user already exists", goerr.V(model.UserIDKey, doc.ID))
		}
		return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to create user")
	}

	return doc.toModel(), nil
}

func (r *userRepository) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	snap, err := r.users().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V(model.UserIDKey, id))
		}
		return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to get user",
			goerr.V(model.UserIDKey, id))
	}

	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V(model.UserIDKey, id))
	}
	return d.toModel(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.users().Where("EmailLower", "==", strings.ToLower(email)).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(model.Classify(model.ErrStoreUnavailable, err), "failed to query user")
	}

	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user")
	}
	return d.toModel(), nil
}
