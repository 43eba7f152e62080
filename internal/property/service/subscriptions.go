package service

import (
	"context"

	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/transport"
	"github.com/fxavier/prime-properties-api/platform/apperr"

	"github.com/google/uuid"
)

// Subscribe starts a subscription of the given type for the caller's
// property. The period starts now and lasts the type's duration in days.
func (s *Service) Subscribe(ctx context.Context, callerID, propertyID uuid.UUID, req transport.SubscribeRequest) (transport.SubscriptionResponse, error) {
	typeID, err := parseID("subscription_type_id", req.SubscriptionTypeID)
	if err != nil {
		return transport.SubscriptionResponse{}, err
	}
	if _, err := s.ownedProperty(ctx, callerID, propertyID); err != nil {
		return transport.SubscriptionResponse{}, err
	}

	st, err := s.repo.GetSubscriptionType(ctx, typeID)
	if err != nil {
		return transport.SubscriptionResponse{}, err
	}
	if !st.IsActive {
		return transport.SubscriptionResponse{}, apperr.Validation("subscription type is not active")
	}

	start := s.now().UTC()
	sub, err := s.repo.CreateSubscription(ctx, repository.CreateSubscriptionParams{
		UserID:             callerID,
		PropertyID:         propertyID,
		SubscriptionTypeID: st.ID,
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, st.DurationDays),
	})
	if err != nil {
		return transport.SubscriptionResponse{}, err
	}

	s.log.Info("property subscribed", "id", sub.ID, "property_id", propertyID, "subscription_type", st.Type)
	return toSubscriptionResponse(sub), nil
}
