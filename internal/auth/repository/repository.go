package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	msgUserNotFound  = "user not found"
	msgUsernameTaken = "username already registered"
	msgEmailTaken    = "email already registered"

	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

const userColumns = `id, username, email, name, phone, password_hash, is_subscribed, subscription_expiry, created_at, updated_at`

const createUserQuery = `
	INSERT INTO users (username, email, name, phone, password_hash)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + userColumns

const getUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

const getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

const getUserByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	row := r.pool.QueryRow(ctx, createUserQuery,
		params.Username, params.Email, params.Name, params.Phone, params.PasswordHash,
	)
	user, err := scanUser(row)
	if err != nil {
		if constraint, ok := db.IsUniqueViolation(err); ok {
			return User{}, conflictFor(constraint).WithOp("auth.CreateUser")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return r.getOne(ctx, "get user by username", getUserByUsernameQuery, username)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, "get user by email", getUserByEmailQuery, email)
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	return r.getOne(ctx, "get user by id", getUserByIDQuery, userID)
}

func (r *Repository) getOne(ctx context.Context, op, query string, arg interface{}) (User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound(msgUserNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.PasswordHash,
		&user.IsSubscribed,
		&user.SubscriptionExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// conflictFor names the duplicated field from the violated unique constraint.
func conflictFor(constraint string) *apperr.Error {
	switch constraint {
	case constraintEmail:
		return apperr.Conflict(msgEmailTaken).WithDetails(map[string]string{"email": "taken"})
	case constraintUsername:
		return apperr.Conflict(msgUsernameTaken).WithDetails(map[string]string{"username": "taken"})
	default:
		return apperr.Conflict("user already exists")
	}
}
