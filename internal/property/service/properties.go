package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/transport"
	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/geo"
	"github.com/fxavier/prime-properties-api/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgNotOwner          = "only the owner can modify this property"
	msgInvalidCoordinate = "latitude/longitude are outside the valid range"
)

// maxPrice is the largest value a NUMERIC(14,2) price column holds.
const maxPrice = 999999999999.99

// checkPrice rejects prices the database would overflow on or round.
func checkPrice(price float64) error {
	if price < 0 || price > maxPrice {
		return apperr.Validation("price is out of range").
			WithDetails(map[string]string{"price": "out_of_range"})
	}
	formatted := strconv.FormatFloat(price, 'f', -1, 64)
	if dot := strings.IndexByte(formatted, '.'); dot >= 0 && len(formatted)-dot-1 > 2 {
		return apperr.Validation("price has more than two decimal places").
			WithDetails(map[string]string{"price": "max_two_decimals"})
	}
	return nil
}

// CreateProperty creates a property owned by callerID.
func (s *Service) CreateProperty(ctx context.Context, callerID uuid.UUID, req transport.CreatePropertyRequest) (transport.PropertyResponse, error) {
	propertyTypeID, err := parseID("property_type_id", req.PropertyTypeID)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	countryID, err := parseID("country_id", req.CountryID)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	businessTypeID, err := parseID("business_type_id", req.BusinessTypeID)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	if !geo.Valid(req.Latitude, req.Longitude) {
		return transport.PropertyResponse{}, apperr.Validation(msgInvalidCoordinate)
	}
	if err := checkPrice(req.Price); err != nil {
		return transport.PropertyResponse{}, err
	}

	title := sanitize.Line(req.Title)
	city := sanitize.Line(req.City)
	if title == "" || city == "" {
		return transport.PropertyResponse{}, apperr.Validation("title and city are required")
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := s.repo.CreateProperty(ctx, repository.CreatePropertyParams{
		Title:          title,
		Description:    sanitize.Text(req.Description),
		Price:          req.Price,
		PropertyTypeID: propertyTypeID,
		CountryID:      countryID,
		BusinessTypeID: businessTypeID,
		City:           city,
		ZipCode:        strings.TrimSpace(req.ZipCode),
		Address:        sanitize.Line(req.Address),
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Facilities:     req.Facilities,
		CreatedBy:      callerID,
		IsActive:       isActive,
		IsFeatured:     req.IsFeatured,
		IsPrioritized:  req.IsPrioritized,
	})
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.log.Info("property created", "id", p.ID, "created_by", callerID)
	return toPropertyResponse(p), nil
}

// GetProperty retrieves a property by ID without its images or names.
func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	return toPropertyResponse(p), nil
}

// UpdateProperty applies a partial update. Only the creator may update.
func (s *Service) UpdateProperty(ctx context.Context, callerID, id uuid.UUID, req transport.UpdatePropertyRequest) (transport.PropertyResponse, error) {
	current, err := s.ownedProperty(ctx, callerID, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	params := repository.UpdatePropertyParams{
		ID:            id,
		Title:         sanitize.LinePtr(req.Title),
		Description:   sanitize.TextPtr(req.Description),
		Price:         req.Price,
		City:          sanitize.LinePtr(req.City),
		ZipCode:       trimPtr(req.ZipCode),
		Address:       sanitize.LinePtr(req.Address),
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Facilities:    req.Facilities,
		IsActive:      req.IsActive,
		IsFeatured:    req.IsFeatured,
		IsPrioritized: req.IsPrioritized,
	}
	if (params.Title != nil && *params.Title == "") || (params.City != nil && *params.City == "") {
		return transport.PropertyResponse{}, apperr.Validation("title and city cannot be empty")
	}
	if req.Price != nil {
		if err := checkPrice(*req.Price); err != nil {
			return transport.PropertyResponse{}, err
		}
	}
	if params.PropertyTypeID, err = parseOptionalID("property_type_id", req.PropertyTypeID); err != nil {
		return transport.PropertyResponse{}, err
	}
	if params.CountryID, err = parseOptionalID("country_id", req.CountryID); err != nil {
		return transport.PropertyResponse{}, err
	}
	if params.BusinessTypeID, err = parseOptionalID("business_type_id", req.BusinessTypeID); err != nil {
		return transport.PropertyResponse{}, err
	}

	lat, lon := current.Latitude, current.Longitude
	if req.Latitude != nil {
		lat = *req.Latitude
	}
	if req.Longitude != nil {
		lon = *req.Longitude
	}
	if !geo.Valid(lat, lon) {
		return transport.PropertyResponse{}, apperr.Validation(msgInvalidCoordinate)
	}

	p, err := s.repo.UpdateProperty(ctx, params)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.log.Info("property updated", "id", p.ID)
	return toPropertyResponse(p), nil
}

// ListProperties lists every property.
func (s *Service) ListProperties(ctx context.Context) ([]transport.PropertyResponse, error) {
	return s.listProperties(ctx, repository.PropertyFilter{})
}

// ListByPropertyType lists properties of one property type. An unused type
// yields an empty list.
func (s *Service) ListByPropertyType(ctx context.Context, typeID uuid.UUID) ([]transport.PropertyResponse, error) {
	return s.listProperties(ctx, repository.PropertyFilter{PropertyTypeID: &typeID})
}

// ListByBusinessType lists properties of one business type.
func (s *Service) ListByBusinessType(ctx context.Context, businessTypeID uuid.UUID) ([]transport.PropertyResponse, error) {
	return s.listProperties(ctx, repository.PropertyFilter{BusinessTypeID: &businessTypeID})
}

// ListByCity lists properties whose city matches exactly.
func (s *Service) ListByCity(ctx context.Context, city string) ([]transport.PropertyResponse, error) {
	city = strings.TrimSpace(city)
	return s.listProperties(ctx, repository.PropertyFilter{City: &city})
}

// ListByCreator lists properties created by userID.
func (s *Service) ListByCreator(ctx context.Context, userID uuid.UUID) ([]transport.PropertyResponse, error) {
	return s.listProperties(ctx, repository.PropertyFilter{CreatedBy: &userID})
}

func (s *Service) listProperties(ctx context.Context, filter repository.PropertyFilter) ([]transport.PropertyResponse, error) {
	props, err := s.repo.ListProperties(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]transport.PropertyResponse, 0, len(props))
	for _, p := range props {
		result = append(result, toPropertyResponse(p))
	}
	return result, nil
}

// ownedProperty loads a property and checks callerID created it.
func (s *Service) ownedProperty(ctx context.Context, callerID, id uuid.UUID) (repository.Property, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return repository.Property{}, err
	}
	if p.CreatedBy != callerID {
		return repository.Property{}, apperr.Forbidden(msgNotOwner)
	}
	return p, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
