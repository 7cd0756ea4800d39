package auth

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
)

// Principal is the verified identity attached to a request
type Principal struct {
	UserID   model.UserID `json:"id"`
	Username string       `json:"name"`
	IsAdmin  bool         `json:"isAdmin"`
}

type ctxPrincipalKey struct{}

// ContextWithPrincipal returns a copy of ctx carrying p
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey{}, p)
}

// PrincipalFromContext returns the principal set by the auth middleware, if any
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxPrincipalKey{}).(*Principal)
	return p, ok && p != nil
}
