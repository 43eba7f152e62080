package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const propertyNotFoundMessage = "property not found"

const propertyColumns = `id, title, description, price, property_type_id, country_id, business_type_id,
	city, zip_code, address, latitude, longitude, facilities, created_by, created_at, updated_at,
	is_active, is_featured, is_prioritized`

// foreignKeyFields maps property foreign key constraints to request fields.
var foreignKeyFields = map[string]string{
	"properties_property_type_id_fkey": "property_type_id",
	"properties_country_id_fkey":       "country_id",
	"properties_business_type_id_fkey": "business_type_id",
	"properties_created_by_fkey":       "created_by",
}

// CreateProperty creates a property. created_at and updated_at are assigned by
// the database.
func (r *Repo) CreateProperty(ctx context.Context, params CreatePropertyParams) (Property, error) {
	query := `
		INSERT INTO properties (
			title, description, price, property_type_id, country_id, business_type_id,
			city, zip_code, address, latitude, longitude, facilities, created_by,
			is_active, is_featured, is_prioritized
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + propertyColumns

	facilities := params.Facilities
	if facilities == nil {
		facilities = map[string]interface{}{}
	}

	p, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.Title,
		params.Description,
		params.Price,
		params.PropertyTypeID,
		params.CountryID,
		params.BusinessTypeID,
		params.City,
		params.ZipCode,
		params.Address,
		params.Latitude,
		params.Longitude,
		facilities,
		params.CreatedBy,
		params.IsActive,
		params.IsFeatured,
		params.IsPrioritized,
	))
	if err != nil {
		if mapped := translatePropertyWriteError(err); mapped != nil {
			return Property{}, mapped
		}
		return Property{}, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

// GetProperty retrieves a property by ID.
func (r *Repo) GetProperty(ctx context.Context, id uuid.UUID) (Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

// UpdateProperty updates a property and refreshes updated_at.
func (r *Repo) UpdateProperty(ctx context.Context, params UpdatePropertyParams) (Property, error) {
	query := `
		UPDATE properties
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			property_type_id = COALESCE($5, property_type_id),
			country_id = COALESCE($6, country_id),
			business_type_id = COALESCE($7, business_type_id),
			city = COALESCE($8, city),
			zip_code = COALESCE($9, zip_code),
			address = COALESCE($10, address),
			latitude = COALESCE($11, latitude),
			longitude = COALESCE($12, longitude),
			facilities = COALESCE($13::jsonb, facilities),
			is_active = COALESCE($14, is_active),
			is_featured = COALESCE($15, is_featured),
			is_prioritized = COALESCE($16, is_prioritized),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + propertyColumns

	var facilities interface{}
	if params.Facilities != nil {
		facilities = params.Facilities
	}

	p, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.ID,
		params.Title,
		params.Description,
		params.Price,
		params.PropertyTypeID,
		params.CountryID,
		params.BusinessTypeID,
		params.City,
		params.ZipCode,
		params.Address,
		params.Latitude,
		params.Longitude,
		facilities,
		params.IsActive,
		params.IsFeatured,
		params.IsPrioritized,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		if mapped := translatePropertyWriteError(err); mapped != nil {
			return Property{}, mapped
		}
		return Property{}, fmt.Errorf("update property: %w", err)
	}
	return p, nil
}

// ListProperties lists properties matching filter, newest first.
func (r *Repo) ListProperties(ctx context.Context, filter PropertyFilter) ([]Property, error) {
	query, args := buildListPropertiesQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return items, nil
}

func buildListPropertiesQuery(filter PropertyFilter) (string, []interface{}) {
	whereClauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		whereClauses = append(whereClauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.PropertyTypeID != nil {
		add("property_type_id = $%d", *filter.PropertyTypeID)
	}
	if filter.BusinessTypeID != nil {
		add("business_type_id = $%d", *filter.BusinessTypeID)
	}
	if filter.CreatedBy != nil {
		add("created_by = $%d", *filter.CreatedBy)
	}
	if filter.City != nil {
		add("city = $%d", *filter.City)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(whereClauses) > 0 {
		query += ` WHERE ` + strings.Join(whereClauses, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`
	return query, args
}

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.PropertyTypeID,
		&p.CountryID,
		&p.BusinessTypeID,
		&p.City,
		&p.ZipCode,
		&p.Address,
		&p.Latitude,
		&p.Longitude,
		&p.Facilities,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.IsActive,
		&p.IsFeatured,
		&p.IsPrioritized,
	)
	if err == nil && p.Facilities == nil {
		p.Facilities = map[string]interface{}{}
	}
	return p, err
}

// translatePropertyWriteError maps constraint violations on properties to
// typed errors. It returns nil for anything else.
func translatePropertyWriteError(err error) error {
	if constraint, ok := db.IsForeignKeyViolation(err); ok {
		field, known := foreignKeyFields[constraint]
		if !known {
			return apperr.ForeignKey("referenced record does not exist")
		}
		return apperr.ForeignKey(field + " references a record that does not exist").
			WithDetails(map[string]string{field: "not_found"})
	}
	if db.IsCheckViolation(err) {
		return apperr.Validation("property violates a value constraint")
	}
	if db.IsNumericOutOfRange(err) {
		return apperr.Validation("price is out of range").
			WithDetails(map[string]string{"price": "out_of_range"})
	}
	return nil
}
