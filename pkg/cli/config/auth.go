package config

import (
	"log/slog"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/usecase"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const minJWTSecretLength = 32

// Auth holds CLI flags for token authentication
type Auth struct {
	jwtSecret string
	tokenTTL  time.Duration
	admins    []string
	noAuthUID string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Category:    "Auth",
			Usage:       "HMAC secret for signing access tokens (at least 32 bytes)",
			Sources:     cli.EnvVars("AI_JOURNAL_JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
		&cli.DurationFlag{
			Name:        "token-ttl",
			Category:    "Auth",
			Usage:       "Lifetime of issued access tokens",
			Value:       usecase.DefaultTokenTTL,
			Sources:     cli.EnvVars("AI_JOURNAL_TOKEN_TTL"),
			Destination: &x.tokenTTL,
		},
		&cli.StringSliceFlag{
			Name:        "admin-username",
			Category:    "Auth",
			Usage:       "Username granted the admin role (repeatable)",
			Value:       []string{"admin"},
			Sources:     cli.EnvVars("AI_JOURNAL_ADMIN_USERNAMES"),
			Destination: &x.admins,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Category:    "Auth",
			Usage:       "Development only. Skip authentication and act as the given user ID",
			Sources:     cli.EnvVars("AI_JOURNAL_NO_AUTH"),
			Destination: &x.noAuthUID,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("jwt_secret_set", x.jwtSecret != ""),
		slog.Duration("token_ttl", x.tokenTTL),
		slog.Any("admins", x.admins),
		slog.String("no_auth", x.noAuthUID),
	)
}

// Configure returns the authentication use case. --no-auth takes precedence over the JWT secret.
func (x *Auth) Configure(users interfaces.UserRepository) (usecase.AuthUseCaseInterface, error) {
	if x.noAuthUID != "" {
		logging.Default().Warn("Authentication is disabled", "user_id", x.noAuthUID)
		return usecase.NewNoAuthnUseCase(model.UserID(x.noAuthUID), ""), nil
	}

	if len(x.jwtSecret) < minJWTSecretLength {
		return nil, goerr.Wrap(ErrInvalidConfig, "jwt-secret must be at least 32 bytes",
			goerr.V("length", len(x.jwtSecret)))
	}
	if x.tokenTTL <= 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "token-ttl must be positive", goerr.V("ttl", x.tokenTTL))
	}

	return usecase.NewAuthUseCase(users, []byte(x.jwtSecret),
		usecase.WithTokenTTL(x.tokenTTL),
		usecase.WithAdminUsernames(x.admins...),
	), nil
}
