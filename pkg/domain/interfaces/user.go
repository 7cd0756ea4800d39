package interfaces

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
)

// UserRepository stores accounts
type UserRepository interface {
	// Create stores a new user. Duplicate username or email yields model.ErrConflict.
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Get(ctx context.Context, id model.UserID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
