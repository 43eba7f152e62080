// Package service composes the property store into the API's read views and
// write operations.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/fxavier/prime-properties-api/internal/adapters/storage"
	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/transport"
	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/logger"
	"github.com/fxavier/prime-properties-api/platform/sanitize"

	"github.com/google/uuid"
)

// Service provides business logic for properties and their lookups.
type Service struct {
	repo          repository.Repository
	uploader      storage.Uploader
	uploadTimeout time.Duration
	log           *logger.Logger
	now           func() time.Time
}

// New creates a new property service.
func New(repo repository.Repository, uploader storage.Uploader, uploadTimeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		repo:          repo,
		uploader:      uploader,
		uploadTimeout: timeoutOrDefault(uploadTimeout),
		log:           log,
		now:           time.Now,
	}
}

// CreateLookup creates a property type, country or business type.
func (s *Service) CreateLookup(ctx context.Context, kind repository.LookupKind, req transport.LookupRequest) (transport.LookupResponse, error) {
	raw, stray := req.Field(kind.Field())
	if stray != "" {
		return transport.LookupResponse{}, apperr.Validation(kind.Label() + " takes " + kind.Field() + ", not " + stray).
			WithDetails(map[string]string{stray: "not_allowed"})
	}
	value := sanitize.Line(raw)
	if value == "" {
		return transport.LookupResponse{}, apperr.Validation(kind.Field() + " is required").
			WithDetails(map[string]string{kind.Field(): "required"})
	}

	lookup, err := s.repo.CreateLookup(ctx, kind, value)
	if err != nil {
		return transport.LookupResponse{}, err
	}

	s.log.Info(kind.Label()+" created", "id", lookup.ID, kind.Field(), lookup.Value)
	return toLookupResponse(lookup), nil
}

// GetLookup retrieves a lookup row by ID.
func (s *Service) GetLookup(ctx context.Context, kind repository.LookupKind, id uuid.UUID) (transport.LookupResponse, error) {
	lookup, err := s.repo.GetLookup(ctx, kind, id)
	if err != nil {
		return transport.LookupResponse{}, err
	}
	return toLookupResponse(lookup), nil
}

// ListLookups lists every row of a lookup table.
func (s *Service) ListLookups(ctx context.Context, kind repository.LookupKind) ([]transport.LookupResponse, error) {
	lookups, err := s.repo.ListLookups(ctx, kind)
	if err != nil {
		return nil, err
	}

	result := make([]transport.LookupResponse, 0, len(lookups))
	for _, lookup := range lookups {
		result = append(result, toLookupResponse(lookup))
	}
	return result, nil
}

// DeleteLookup deletes a lookup row that no property references.
func (s *Service) DeleteLookup(ctx context.Context, kind repository.LookupKind, id uuid.UUID) error {
	if err := s.repo.DeleteLookup(ctx, kind, id); err != nil {
		return err
	}

	s.log.Info(kind.Label()+" deleted", "id", id)
	return nil
}

// CreateSubscriptionType creates a subscription tier. Types are active unless
// the request says otherwise.
func (s *Service) CreateSubscriptionType(ctx context.Context, req transport.CreateSubscriptionTypeRequest) (transport.SubscriptionTypeResponse, error) {
	name := sanitize.Line(req.Type)
	if name == "" {
		return transport.SubscriptionTypeResponse{}, apperr.Validation("type is required")
	}
	if err := checkPrice(req.Price); err != nil {
		return transport.SubscriptionTypeResponse{}, err
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	st, err := s.repo.CreateSubscriptionType(ctx, repository.CreateSubscriptionTypeParams{
		Type:         name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsActive:     isActive,
	})
	if err != nil {
		return transport.SubscriptionTypeResponse{}, err
	}

	s.log.Info("subscription type created", "id", st.ID, "type", st.Type)
	return toSubscriptionTypeResponse(st), nil
}

// GetSubscriptionType retrieves a subscription type by ID.
func (s *Service) GetSubscriptionType(ctx context.Context, id uuid.UUID) (transport.SubscriptionTypeResponse, error) {
	st, err := s.repo.GetSubscriptionType(ctx, id)
	if err != nil {
		return transport.SubscriptionTypeResponse{}, err
	}
	return toSubscriptionTypeResponse(st), nil
}

// ListSubscriptionTypes lists subscription types.
func (s *Service) ListSubscriptionTypes(ctx context.Context) ([]transport.SubscriptionTypeResponse, error) {
	types, err := s.repo.ListSubscriptionTypes(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]transport.SubscriptionTypeResponse, 0, len(types))
	for _, st := range types {
		result = append(result, toSubscriptionTypeResponse(st))
	}
	return result, nil
}

func parseOptionalID(field string, value *string) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := parseID(field, *value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, apperr.Validation(field + " must be a valid id").
			WithDetails(map[string]string{field: "uuid"})
	}
	return id, nil
}
