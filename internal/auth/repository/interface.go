package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a persisted account. PasswordHash never leaves the auth context.
type User struct {
	ID                 uuid.UUID
	Username           string
	Email              string
	Name               string
	Phone              string
	PasswordHash       string
	IsSubscribed       bool
	SubscriptionExpiry *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateUserParams carries an already-hashed password.
type CreateUserParams struct {
	Username     string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
}

// UserReader is the read side of the credential store.
type UserReader interface {
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
}

// AuthRepository defines the interface for credential store operations.
// This allows services to depend on an abstraction rather than concrete implementation,
// improving testability and modularity.
type AuthRepository interface {
	UserReader
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)
