package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LookupKind selects one of the name-only reference tables.
type LookupKind int

const (
	LookupPropertyType LookupKind = iota
	LookupCountry
	LookupBusinessType
)

type lookupTable struct {
	table  string
	column string
	label  string
	unique string
	fkey   string
}

var lookupTables = map[LookupKind]lookupTable{
	LookupPropertyType: {table: "property_types", column: "type", label: "property type", unique: "property_types_type_key", fkey: "properties_property_type_id_fkey"},
	LookupCountry:      {table: "countries", column: "name", label: "country", unique: "countries_name_key", fkey: "properties_country_id_fkey"},
	LookupBusinessType: {table: "business_types", column: "type", label: "business type", unique: "business_types_type_key", fkey: "properties_business_type_id_fkey"},
}

// Label is the human-readable name of the kind, used in error messages.
func (k LookupKind) Label() string {
	return lookupTables[k].label
}

// Field is the JSON and column name that holds the lookup value.
func (k LookupKind) Field() string {
	return lookupTables[k].column
}

// Lookup is a row of property_types, countries or business_types.
type Lookup struct {
	ID        uuid.UUID
	Kind      LookupKind
	Value     string
	CreatedAt time.Time
}

// SubscriptionType is a paid promotion tier.
type SubscriptionType struct {
	ID           uuid.UUID
	Type         string
	Price        float64
	DurationDays int
	IsActive     bool
	CreatedAt    time.Time
}

// Property is a listing owned by its creator.
type Property struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Price          float64
	PropertyTypeID uuid.UUID
	CountryID      uuid.UUID
	BusinessTypeID uuid.UUID
	City           string
	ZipCode        string
	Address        string
	Latitude       float64
	Longitude      float64
	Facilities     map[string]interface{}
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	IsActive       bool
	IsFeatured     bool
	IsPrioritized  bool
}

// PropertyImage is an uploaded image attached to a property.
type PropertyImage struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	ImageURL   string
	IsCover    bool
	CreatedAt  time.Time
}

// Subscription links a property to a subscription type for a period.
type Subscription struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	PropertyID         uuid.UUID
	SubscriptionTypeID uuid.UUID
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool
	CreatedAt          time.Time
}

// CreateSubscriptionTypeParams contains data for creating a subscription type.
type CreateSubscriptionTypeParams struct {
	Type         string
	Price        float64
	DurationDays int
	IsActive     bool
}

// CreatePropertyParams contains data for creating a property.
type CreatePropertyParams struct {
	Title          string
	Description    string
	Price          float64
	PropertyTypeID uuid.UUID
	CountryID      uuid.UUID
	BusinessTypeID uuid.UUID
	City           string
	ZipCode        string
	Address        string
	Latitude       float64
	Longitude      float64
	Facilities     map[string]interface{}
	CreatedBy      uuid.UUID
	IsActive       bool
	IsFeatured     bool
	IsPrioritized  bool
}

// UpdatePropertyParams contains data for updating a property. Nil fields are
// left unchanged.
type UpdatePropertyParams struct {
	ID             uuid.UUID
	Title          *string
	Description    *string
	Price          *float64
	PropertyTypeID *uuid.UUID
	CountryID      *uuid.UUID
	BusinessTypeID *uuid.UUID
	City           *string
	ZipCode        *string
	Address        *string
	Latitude       *float64
	Longitude      *float64
	Facilities     map[string]interface{}
	IsActive       *bool
	IsFeatured     *bool
	IsPrioritized  *bool
}

// PropertyFilter narrows ListProperties. Zero-valued fields are ignored.
type PropertyFilter struct {
	PropertyTypeID *uuid.UUID
	BusinessTypeID *uuid.UUID
	CreatedBy      *uuid.UUID
	City           *string
}

// CreateImageParams contains data for attaching an uploaded image.
type CreateImageParams struct {
	PropertyID uuid.UUID
	ImageURL   string
	IsCover    bool
}

// CreateSubscriptionParams contains data for subscribing a property.
type CreateSubscriptionParams struct {
	UserID             uuid.UUID
	PropertyID         uuid.UUID
	SubscriptionTypeID uuid.UUID
	StartDate          time.Time
	EndDate            time.Time
}

// LookupRepository manages the name-only reference tables.
type LookupRepository interface {
	CreateLookup(ctx context.Context, kind LookupKind, value string) (Lookup, error)
	GetLookup(ctx context.Context, kind LookupKind, id uuid.UUID) (Lookup, error)
	ListLookups(ctx context.Context, kind LookupKind) ([]Lookup, error)
	DeleteLookup(ctx context.Context, kind LookupKind, id uuid.UUID) error

	CreateSubscriptionType(ctx context.Context, params CreateSubscriptionTypeParams) (SubscriptionType, error)
	GetSubscriptionType(ctx context.Context, id uuid.UUID) (SubscriptionType, error)
	ListSubscriptionTypes(ctx context.Context) ([]SubscriptionType, error)
}

// PropertyRepository manages properties.
type PropertyRepository interface {
	CreateProperty(ctx context.Context, params CreatePropertyParams) (Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (Property, error)
	UpdateProperty(ctx context.Context, params UpdatePropertyParams) (Property, error)
	ListProperties(ctx context.Context, filter PropertyFilter) ([]Property, error)
}

// ImageRepository manages property images.
type ImageRepository interface {
	// AddImage inserts an image. A cover image demotes the previous cover in
	// the same transaction.
	AddImage(ctx context.Context, params CreateImageParams) (PropertyImage, error)
	// ListImages returns images for the given properties, cover first and
	// then in insertion order.
	ListImages(ctx context.Context, propertyIDs []uuid.UUID, coverOnly bool) ([]PropertyImage, error)
}

// SubscriptionRepository manages property subscriptions.
type SubscriptionRepository interface {
	// CreateSubscription deactivates the property's active subscriptions,
	// inserts the new one and marks the subscriber as subscribed.
	CreateSubscription(ctx context.Context, params CreateSubscriptionParams) (Subscription, error)
	// LatestSubscriptions returns the most recent subscription per property.
	LatestSubscriptions(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]Subscription, error)
}

// Repository is the full property store.
type Repository interface {
	LookupRepository
	PropertyRepository
	ImageRepository
	SubscriptionRepository
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)
