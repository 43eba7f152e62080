package repository

import (
	"context"
	"fmt"

	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/db"

	"github.com/google/uuid"
)

const deactivateSubscriptionsQuery = `
	UPDATE subscriptions
	SET is_active = false
	WHERE property_id = $1 AND is_active`

const insertSubscriptionQuery = `
	INSERT INTO subscriptions (user_id, property_id, subscription_type_id, start_date, end_date, is_active)
	VALUES ($1, $2, $3, $4, $5, true)
	RETURNING id, user_id, property_id, subscription_type_id, start_date, end_date, is_active, created_at`

const markSubscriberQuery = `
	UPDATE users
	SET is_subscribed = true,
		subscription_expiry = GREATEST(COALESCE(subscription_expiry, $2), $2),
		updated_at = now()
	WHERE id = $1`

const latestSubscriptionsQuery = `
	SELECT DISTINCT ON (property_id)
		id, user_id, property_id, subscription_type_id, start_date, end_date, is_active, created_at
	FROM subscriptions
	WHERE property_id = ANY($1::uuid[])
	ORDER BY property_id, start_date DESC, created_at DESC`

// CreateSubscription records a subscription in a single transaction.
func (r *Repo) CreateSubscription(ctx context.Context, params CreateSubscriptionParams) (Subscription, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deactivateSubscriptionsQuery, params.PropertyID); err != nil {
		return Subscription{}, fmt.Errorf("deactivate subscriptions: %w", err)
	}

	var sub Subscription
	if err := tx.QueryRow(ctx, insertSubscriptionQuery,
		params.UserID, params.PropertyID, params.SubscriptionTypeID, params.StartDate, params.EndDate,
	).Scan(
		&sub.ID, &sub.UserID, &sub.PropertyID, &sub.SubscriptionTypeID,
		&sub.StartDate, &sub.EndDate, &sub.IsActive, &sub.CreatedAt,
	); err != nil {
		if _, ok := db.IsForeignKeyViolation(err); ok {
			return Subscription{}, apperr.ForeignKey("subscription references a record that does not exist")
		}
		return Subscription{}, fmt.Errorf("insert subscription: %w", err)
	}

	if _, err := tx.Exec(ctx, markSubscriberQuery, params.UserID, params.EndDate); err != nil {
		return Subscription{}, fmt.Errorf("mark subscriber: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Subscription{}, fmt.Errorf("commit subscription: %w", err)
	}
	return sub, nil
}

// LatestSubscriptions returns the newest subscription of each property that
// has one. Properties without subscriptions are absent from the map.
func (r *Repo) LatestSubscriptions(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]Subscription, error) {
	result := make(map[uuid.UUID]Subscription, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, latestSubscriptionsQuery, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("list latest subscriptions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.PropertyID, &sub.SubscriptionTypeID,
			&sub.StartDate, &sub.EndDate, &sub.IsActive, &sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		result[sub.PropertyID] = sub
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return result, nil
}
