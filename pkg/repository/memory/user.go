package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[model.UserID]*model.User
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[model.UserID]*model.User),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, goerr.Wrap(model.ErrConflict, "username already taken", goerr.V("username", user.Username))
		}
		if strings.EqualFold(u.Email, user.Email) {
			return nil, goerr.Wrap(model.ErrConflict, "email already registered", goerr.V("email", user.Email))
		}
	}

	created := copyUser(user)
	if created.ID == "" {
		created.ID = model.NewUserID()
	}
	created.CreatedAt = time.Now().UTC()

	r.users[created.ID] = created
	return copyUser(created), nil
}

func (r *userRepository) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V(model.UserIDKey, id))
	}
	return copyUser(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("email", email))
}
