package adapter

import (
	"context"
	"testing"

	"github.com/fxavier/prime-properties-api/internal/auth/repository"
	"github.com/fxavier/prime-properties-api/platform/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthorizer struct {
	user repository.User
	err  error
}

func (s stubAuthorizer) Authorize(context.Context, string) (repository.User, error) {
	return s.user, s.err
}

func TestAuthorizeMapsUser(t *testing.T) {
	id := uuid.New()
	a := NewAuthorizerAdapter(stubAuthorizer{user: repository.User{ID: id, Username: "alice"}})

	p, err := a.Authorize(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, id, p.UserID)
	assert.Equal(t, "alice", p.Username)
}

func TestAuthorizePassesErrorThrough(t *testing.T) {
	a := NewAuthorizerAdapter(stubAuthorizer{err: apperr.Unauthorized("could not validate credentials")})

	_, err := a.Authorize(context.Background(), "tok")
	assert.Equal(t, apperr.KindUnauthorized, apperr.GetKind(err))
}
