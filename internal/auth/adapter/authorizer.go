// Package adapter exposes the auth service to the HTTP platform layer.
package adapter

import (
	"context"

	"github.com/fxavier/prime-properties-api/internal/auth/repository"
	"github.com/fxavier/prime-properties-api/platform/httpkit"
)

// TokenAuthorizer is the part of the auth service that resolves bearer tokens.
type TokenAuthorizer interface {
	Authorize(ctx context.Context, rawToken string) (repository.User, error)
}

// AuthorizerAdapter implements httpkit.Authorizer on top of the auth service.
type AuthorizerAdapter struct {
	svc TokenAuthorizer
}

// NewAuthorizerAdapter wraps svc for AuthRequired.
func NewAuthorizerAdapter(svc TokenAuthorizer) *AuthorizerAdapter {
	return &AuthorizerAdapter{svc: svc}
}

// Authorize implements httpkit.Authorizer.
func (a *AuthorizerAdapter) Authorize(ctx context.Context, rawToken string) (httpkit.Principal, error) {
	user, err := a.svc.Authorize(ctx, rawToken)
	if err != nil {
		return httpkit.Principal{}, err
	}
	return httpkit.Principal{UserID: user.ID, Username: user.Username}, nil
}

var _ httpkit.Authorizer = (*AuthorizerAdapter)(nil)
