package usecase

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model/auth"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL   = 24 * time.Hour
	MinPasswordLength = 8

	claimName  = "name"
	claimAdmin = "admin"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthUseCaseInterface interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(ctx context.Context, token string) (*auth.Principal, error)
	IsNoAuthn() bool
}

// AuthUseCase authenticates users by password and issues HS256 signed JWTs
type AuthUseCase struct {
	users    interfaces.UserRepository
	secret   []byte
	tokenTTL time.Duration
	admins   []string
	now      func() time.Time
}

var _ AuthUseCaseInterface = &AuthUseCase{}

type AuthOption func(*AuthUseCase)

func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(uc *AuthUseCase) {
		uc.tokenTTL = ttl
	}
}

// WithAdminUsernames sets the usernames granted the admin claim
func WithAdminUsernames(names ...string) AuthOption {
	return func(uc *AuthUseCase) {
		uc.admins = names
	}
}

func WithClock(now func() time.Time) AuthOption {
	return func(uc *AuthUseCase) {
		uc.now = now
	}
}

func NewAuthUseCase(users interfaces.UserRepository, secret []byte, options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		users:    users,
		secret:   secret,
		tokenTTL: DefaultTokenTTL,
		admins:   []string{"admin"},
		now:      time.Now,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return nil, goerr.Wrap(model.ErrValidation, "username, email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, goerr.Wrap(model.ErrValidation, "invalid email format", goerr.V("email", email))
	}
	if len(password) < MinPasswordLength {
		return nil, goerr.Wrap(model.ErrValidation, "password must be at least 8 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt rejects passwords longer than 72 bytes
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, goerr.Wrap(model.ErrValidation, "password is too long")
		}
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user, err := uc.users.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to register user", goerr.V("username", username))
	}

	logging.From(ctx).Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies the password and returns a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", goerr.Wrap(model.ErrValidation, "email and password are required")
	}

	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", goerr.Wrap(model.ErrUnauthorized, "invalid credentials")
		}
		return "", goerr.Wrap(err, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", goerr.Wrap(model.ErrUnauthorized, "invalid credentials", goerr.V(model.UserIDKey, user.ID))
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", err
	}

	logging.From(ctx).Info("User logged in", "user_id", user.ID)
	return token, nil
}

func (uc *AuthUseCase) issueToken(user *model.User) (string, error) {
	now := uc.now()
	tok, err := jwt.NewBuilder().
		Subject(user.ID.String()).
		IssuedAt(now).
		Expiration(now.Add(uc.tokenTTL)).
		Claim(claimName, user.Username).
		Claim(claimAdmin, slices.Contains(uc.admins, user.Username)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token", goerr.V(model.UserIDKey, user.ID))
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token", goerr.V(model.UserIDKey, user.ID))
	}
	return string(signed), nil
}

// ValidateToken verifies signature and expiration and returns the identity in the token
func (uc *AuthUseCase) ValidateToken(ctx context.Context, token string) (*auth.Principal, error) {
	if token == "" {
		return nil, goerr.Wrap(model.ErrUnauthorized, "token is required")
	}

	tok, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, uc.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(uc.now)),
	)
	if err != nil {
		return nil, goerr.Wrap(model.Classify(model.ErrUnauthorized, err), "invalid token")
	}

	if tok.Subject() == "" {
		return nil, goerr.Wrap(model.ErrUnauthorized, "sub claim not found in token")
	}

	principal := &auth.Principal{UserID: model.UserID(tok.Subject())}
	if v, ok := tok.Get(claimName); ok {
		if name, ok := v.(string); ok {
			principal.Username = name
		}
	}
	if v, ok := tok.Get(claimAdmin); ok {
		if admin, ok := v.(bool); ok {
			principal.IsAdmin = admin
		}
	}

	return principal, nil
}
