package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/repository/memory"
	"github.com/Hsinha11/AI-Journal/pkg/usecase"
	"github.com/m-mizutani/gt"
)

var testSecret = []byte("test-secret-for-signing-tokens")

func TestAuthUseCaseRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed password", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo.User(), testSecret)

		user, err := uc.Register(ctx, "  alice ", "alice@example.com", "password123")
		gt.NoError(t, err).Required()
		gt.Value(t, user.Username).Equal("alice")
		gt.Value(t, user.PasswordHash).NotEqual("password123")
		gt.Bool(t, strings.HasPrefix(user.PasswordHash, "$2")).True()
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(memory.New().User(), testSecret)

		cases := []struct {
			name     string
			username string
			email    string
			password string
		}{
			{"missing username", "", "a@example.com", "password123"},
			{"missing email", "bob", "", "password123"},
			{"missing password", "bob", "b@example.com", ""},
			{"bad email", "bob", "not-an-email", "password123"},
			{"email without domain dot", "bob", "bob@example", "password123"},
			{"short password", "bob", "b@example.com", "short"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := uc.Register(ctx, tc.username, tc.email, tc.password)
				gt.Error(t, err).Is(model.ErrValidation)
			})
		}
	})

	t.Run("duplicates conflict", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(memory.New().User(), testSecret)

		_, err := uc.Register(ctx, "carol", "carol@example.com", "password123")
		gt.NoError(t, err).Required()

		_, err = uc.Register(ctx, "carol", "other@example.com", "password123")
		gt.Error(t, err).Is(model.ErrConflict)
		_, err = uc.Register(ctx, "carol2", "CAROL@example.com", "password123")
		gt.Error(t, err).Is(model.ErrConflict)
	})
}

func TestAuthUseCaseLogin(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.NewAuthUseCase(repo.User(), testSecret, usecase.WithAdminUsernames("root"))

	user, err := uc.Register(ctx, "dave", "dave@example.com", "password123")
	gt.NoError(t, err).Required()
	_, err = uc.Register(ctx, "root", "root@example.com", "password123")
	gt.NoError(t, err).Required()

	t.Run("token carries identity", func(t *testing.T) {
		token, err := uc.Login(ctx, "dave@example.com", "password123")
		gt.NoError(t, err).Required()

		principal, err := uc.ValidateToken(ctx, token)
		gt.NoError(t, err).Required()
		gt.Value(t, principal.UserID).Equal(user.ID)
		gt.Value(t, principal.Username).Equal("dave")
		gt.Bool(t, principal.IsAdmin).False()
	})

	t.Run("admin claim", func(t *testing.T) {
		token, err := uc.Login(ctx, "root@example.com", "password123")
		gt.NoError(t, err).Required()

		principal, err := uc.ValidateToken(ctx, token)
		gt.NoError(t, err).Required()
		gt.Bool(t, principal.IsAdmin).True()
	})

	t.Run("wrong password and unknown email are unauthorized", func(t *testing.T) {
		_, err := uc.Login(ctx, "dave@example.com", "wrong-password")
		gt.Error(t, err).Is(model.ErrUnauthorized)

		_, err = uc.Login(ctx, "nobody@example.com", "password123")
		gt.Error(t, err).Is(model.ErrUnauthorized)
	})

	t.Run("tampered or foreign tokens are rejected", func(t *testing.T) {
		token, err := uc.Login(ctx, "dave@example.com", "password123")
		gt.NoError(t, err).Required()

		other := usecase.NewAuthUseCase(repo.User(), []byte("another-secret"))
		_, err = other.ValidateToken(ctx, token)
		gt.Error(t, err).Is(model.ErrUnauthorized)

		_, err = uc.ValidateToken(ctx, token+"x")
		gt.Error(t, err).Is(model.ErrUnauthorized)

		_, err = uc.ValidateToken(ctx, "")
		gt.Error(t, err).Is(model.ErrUnauthorized)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		issuedAt := time.Now().Add(-48 * time.Hour)
		past := usecase.NewAuthUseCase(repo.User(), testSecret,
			usecase.WithClock(func() time.Time { return issuedAt }))

		token, err := past.Login(ctx, "dave@example.com", "password123")
		gt.NoError(t, err).Required()

		_, err = uc.ValidateToken(ctx, token)
		gt.Error(t, err).Is(model.ErrUnauthorized)
	})
}

func TestNoAuthnUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewNoAuthnUseCase("dev-user", "")

	principal, err := uc.ValidateToken(ctx, "")
	gt.NoError(t, err).Required()
	gt.Value(t, principal.UserID).Equal(model.UserID("dev-user"))
	gt.Value(t, principal.Username).Equal("dev-user")
	gt.Bool(t, principal.IsAdmin).True()
	gt.Bool(t, uc.IsNoAuthn()).True()

	_, err = uc.Login(ctx, "a@example.com", "password123")
	gt.Error(t, err).Is(model.ErrForbidden)

	var _ usecase.AuthUseCaseInterface = uc
}
