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
	subscriptionTypeNotFoundMessage = "subscription type not found"
	subscriptionTypeExistsMessage   = "subscription type already exists"
)

// Repo implements the property repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new property repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateLookup inserts a property type, country or business type.
func (r *Repo) CreateLookup(ctx context.Context, kind LookupKind, value string) (Lookup, error) {
	t := lookupTables[kind]
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1)
		RETURNING id, %s, created_at`, t.table, t.column, t.column)

	lookup := Lookup{Kind: kind}
	if err := r.pool.QueryRow(ctx, query, value).Scan(&lookup.ID, &lookup.Value, &lookup.CreatedAt); err != nil {
		if _, ok := db.IsUniqueViolation(err); ok {
			return Lookup{}, apperr.Conflict(t.label + " already exists").WithDetails(map[string]string{t.column: "taken"})
		}
		return Lookup{}, fmt.Errorf("create %s: %w", t.label, err)
	}
	return lookup, nil
}

// GetLookup retrieves a lookup row by ID.
func (r *Repo) GetLookup(ctx context.Context, kind LookupKind, id uuid.UUID) (Lookup, error) {
	t := lookupTables[kind]
	query := fmt.Sprintf(`SELECT id, %s, created_at FROM %s WHERE id = $1`, t.column, t.table)

	lookup := Lookup{Kind: kind}
	if err := r.pool.QueryRow(ctx, query, id).Scan(&lookup.ID, &lookup.Value, &lookup.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lookup{}, apperr.NotFound(t.label + " not found")
		}
		return Lookup{}, fmt.Errorf("get %s: %w", t.label, err)
	}
	return lookup, nil
}

// ListLookups lists every row of the lookup table ordered by value.
func (r *Repo) ListLookups(ctx context.Context, kind LookupKind) ([]Lookup, error) {
	t := lookupTables[kind]
	query := fmt.Sprintf(`SELECT id, %s, created_at FROM %s ORDER BY %s`, t.column, t.table, t.column)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	items := make([]Lookup, 0)
	for rows.Next() {
		lookup := Lookup{Kind: kind}
		if err := rows.Scan(&lookup.ID, &lookup.Value, &lookup.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.label, err)
		}
		items = append(items, lookup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.table, err)
	}
	return items, nil
}

// DeleteLookup deletes a lookup row. Rows still referenced by a property are
// rejected with a conflict.
func (r *Repo) DeleteLookup(ctx context.Context, kind LookupKind, id uuid.UUID) error {
	t := lookupTables[kind]
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if _, ok := db.IsForeignKeyViolation(err); ok {
			return apperr.Conflict(t.label + " is in use")
		}
		return fmt.Errorf("delete %s: %w", t.label, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(t.label + " not found")
	}
	return nil
}

const subscriptionTypeColumns = `id, type, price, duration, is_active, created_at`

// CreateSubscriptionType creates a subscription type.
func (r *Repo) CreateSubscriptionType(ctx context.Context, params CreateSubscriptionTypeParams) (SubscriptionType, error) {
	query := `
		INSERT INTO subscription_types (type, price, duration, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + subscriptionTypeColumns

	st, err := scanSubscriptionType(r.pool.QueryRow(ctx, query, params.Type, params.Price, params.DurationDays, params.IsActive))
	if err != nil {
		if translated := translateSubscriptionTypeWriteError(err); translated != nil {
			return SubscriptionType{}, translated
		}
		return SubscriptionType{}, fmt.Errorf("create subscription type: %w", err)
	}
	return st, nil
}

func translateSubscriptionTypeWriteError(err error) error {
	if _, ok := db.IsUniqueViolation(err); ok {
		return apperr.Conflict(subscriptionTypeExistsMessage).WithDetails(map[string]string{"type": "taken"})
	}
	if db.IsCheckViolation(err) {
		return apperr.Validation("price must be non-negative and duration positive")
	}
	if db.IsNumericOutOfRange(err) {
		return apperr.Validation("price is out of range").
			WithDetails(map[string]string{"price": "out_of_range"})
	}
	return nil
}

// GetSubscriptionType retrieves a subscription type by ID.
func (r *Repo) GetSubscriptionType(ctx context.Context, id uuid.UUID) (SubscriptionType, error) {
	query := `SELECT ` + subscriptionTypeColumns + ` FROM subscription_types WHERE id = $1`

	st, err := scanSubscriptionType(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SubscriptionType{}, apperr.NotFound(subscriptionTypeNotFoundMessage)
		}
		return SubscriptionType{}, fmt.Errorf("get subscription type: %w", err)
	}
	return st, nil
}

// ListSubscriptionTypes lists subscription types ordered by price.
func (r *Repo) ListSubscriptionTypes(ctx context.Context) ([]SubscriptionType, error) {
	query := `SELECT ` + subscriptionTypeColumns + ` FROM subscription_types ORDER BY price, type`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscription types: %w", err)
	}
	defer rows.Close()

	items := make([]SubscriptionType, 0)
	for rows.Next() {
		st, err := scanSubscriptionType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription type: %w", err)
		}
		items = append(items, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscription types: %w", err)
	}
	return items, nil
}

func scanSubscriptionType(row pgx.Row) (SubscriptionType, error) {
	var st SubscriptionType
	err := row.Scan(&st.ID, &st.Type, &st.Price, &st.DurationDays, &st.IsActive, &st.CreatedAt)
	return st, err
}
