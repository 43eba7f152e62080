package transport

import "time"

// LookupRequest creates a property type or business type ("type") or a
// country ("name").
type LookupRequest struct {
	Type string `json:"type" validate:"max=100"`
	Name string `json:"name" validate:"max=100"`
}

// Field returns the value sent under key, which is "type" or "name". stray
// names the other key when the client sent it instead of, or as well as, key.
func (r LookupRequest) Field(key string) (value, stray string) {
	if key == "name" {
		if r.Type != "" {
			stray = "type"
		}
		return r.Name, stray
	}
	if r.Name != "" {
		stray = "name"
	}
	return r.Type, stray
}

// LookupResponse carries "type" or "name" depending on the table.
type LookupResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSubscriptionTypeRequest struct {
	Type         string  `json:"type" validate:"required,max=100"`
	Price        float64 `json:"price" validate:"gte=0,lte=999999999999.99"`
	DurationDays int     `json:"duration" validate:"required,gt=0,lte=3650"`
	IsActive     *bool   `json:"is_active"`
}

type SubscriptionTypeResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"duration"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreatePropertyRequest struct {
	Title          string                 `json:"title" validate:"required,max=200"`
	Description    string                 `json:"description" validate:"max=10000"`
	Price          float64                `json:"price" validate:"gte=0,lte=999999999999.99"`
	PropertyTypeID string                 `json:"property_type_id" validate:"required,uuid"`
	CountryID      string                 `json:"country_id" validate:"required,uuid"`
	BusinessTypeID string                 `json:"business_type_id" validate:"required,uuid"`
	City           string                 `json:"city" validate:"required,max=120"`
	ZipCode        string                 `json:"zip_code" validate:"max=20"`
	Address        string                 `json:"address" validate:"max=300"`
	Latitude       float64                `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64                `json:"longitude" validate:"gte=-180,lte=180"`
	Facilities     map[string]interface{} `json:"facilities"`
	IsActive       *bool                  `json:"is_active"`
	IsFeatured     bool                   `json:"is_featured"`
	IsPrioritized  bool                   `json:"is_prioritized"`
}

type UpdatePropertyRequest struct {
	Title          *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string                `json:"description" validate:"omitempty,max=10000"`
	Price          *float64               `json:"price" validate:"omitempty,gte=0,lte=999999999999.99"`
	PropertyTypeID *string                `json:"property_type_id" validate:"omitempty,uuid"`
	CountryID      *string                `json:"country_id" validate:"omitempty,uuid"`
	BusinessTypeID *string                `json:"business_type_id" validate:"omitempty,uuid"`
	City           *string                `json:"city" validate:"omitempty,min=1,max=120"`
	ZipCode        *string                `json:"zip_code" validate:"omitempty,max=20"`
	Address        *string                `json:"address" validate:"omitempty,max=300"`
	Latitude       *float64               `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64               `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Facilities     map[string]interface{} `json:"facilities"`
	IsActive       *bool                  `json:"is_active"`
	IsFeatured     *bool                  `json:"is_featured"`
	IsPrioritized  *bool                  `json:"is_prioritized"`
}

type PropertyResponse struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Price          float64                `json:"price"`
	PropertyTypeID string                 `json:"property_type_id"`
	CountryID      string                 `json:"country_id"`
	BusinessTypeID string                 `json:"business_type_id"`
	City           string                 `json:"city"`
	ZipCode        string                 `json:"zip_code"`
	Address        string                 `json:"address"`
	Latitude       float64                `json:"latitude"`
	Longitude      float64                `json:"longitude"`
	Facilities     map[string]interface{} `json:"facilities"`
	CreatedBy      string                 `json:"created_by"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	IsActive       bool                   `json:"is_active"`
	IsFeatured     bool                   `json:"is_featured"`
	IsPrioritized  bool                   `json:"is_prioritized"`
}

type ImageResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	ImageURL   string    `json:"image_url"`
	IsCover    bool      `json:"is_cover"`
	CreatedAt  time.Time `json:"created_at"`
}

// PropertySummary is the list-view projection shared by the aggregated views.
type PropertySummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	City           string    `json:"city"`
	Address        string    `json:"address"`
	PropertyTypeID string    `json:"property_type_id"`
	CountryID      string    `json:"country_id"`
	BusinessTypeID string    `json:"business_type_id"`
	IsFeatured     bool      `json:"is_featured"`
	IsPrioritized  bool      `json:"is_prioritized"`
	CreatedAt      time.Time `json:"created_at"`
}

type PropertyWithCoverResponse struct {
	PropertySummary
	CoverImageURL string `json:"cover_image_url"`
}

type PropertyDetailResponse struct {
	PropertyResponse
	PropertyType string          `json:"property_type"`
	Country      string          `json:"country"`
	BusinessType string          `json:"business_type"`
	Images       []ImageResponse `json:"images"`
}

type PropertyWithSubscriptionResponse struct {
	PropertySummary
	CoverImageURL      *string    `json:"cover_image_url"`
	SubscriptionTypeID *string    `json:"subscription_type_id"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
}

type SubscribeRequest struct {
	SubscriptionTypeID string `json:"subscription_type_id" validate:"required,uuid"`
}

type SubscriptionResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	PropertyID         string    `json:"property_id"`
	SubscriptionTypeID string    `json:"subscription_type_id"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	IsActive           bool      `json:"is_active"`
}
