package usecase

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model/auth"
	"github.com/m-mizutani/goerr/v2"
)

// NoAuthnUseCase authenticates every request as one fixed user (for development/testing)
type NoAuthnUseCase struct {
	userID   model.UserID
	username string
}

var _ AuthUseCaseInterface = &NoAuthnUseCase{}

func NewNoAuthnUseCase(userID model.UserID, username string) *NoAuthnUseCase {
	if username == "" {
		username = userID.String()
	}
	return &NoAuthnUseCase{
		userID:   userID,
		username: username,
	}
}

// Register is not available without authentication
func (uc *NoAuthnUseCase) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return nil, goerr.Wrap(model.ErrForbidden, "registration is disabled in no-auth mode")
}

// Login is not available without authentication
func (uc *NoAuthnUseCase) Login(ctx context.Context, email, password string) (string, error) {
	return "", goerr.Wrap(model.ErrForbidden, "login is disabled in no-auth mode")
}

// ValidateToken ignores token and returns the configured user with admin rights
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, token string) (*auth.Principal, error) {
	return &auth.Principal{
		UserID:   uc.userID,
		Username: uc.username,
		IsAdmin:  true,
	}, nil
}

func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
