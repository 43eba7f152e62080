package repository

import (
	"context"
	"fmt"

	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/db"

	"github.com/google/uuid"
)

const demoteCoverQuery = `
	UPDATE property_images
	SET is_cover = false
	WHERE property_id = $1 AND is_cover`

const insertImageQuery = `
	INSERT INTO property_images (property_id, image_url, is_cover)
	VALUES ($1, $2, $3)
	RETURNING id, property_id, image_url, is_cover, created_at`

const listImagesQuery = `
	SELECT id, property_id, image_url, is_cover, created_at
	FROM property_images
	WHERE property_id = ANY($1::uuid[]) AND (is_cover OR NOT $2)
	ORDER BY property_id, is_cover DESC, created_at, id`

// AddImage inserts an image row for an already uploaded file.
func (r *Repo) AddImage(ctx context.Context, params CreateImageParams) (PropertyImage, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return PropertyImage{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if params.IsCover {
		if _, err := tx.Exec(ctx, demoteCoverQuery, params.PropertyID); err != nil {
			return PropertyImage{}, fmt.Errorf("demote cover image: %w", err)
		}
	}

	var img PropertyImage
	if err := tx.QueryRow(ctx, insertImageQuery, params.PropertyID, params.ImageURL, params.IsCover).Scan(
		&img.ID, &img.PropertyID, &img.ImageURL, &img.IsCover, &img.CreatedAt,
	); err != nil {
		if _, ok := db.IsForeignKeyViolation(err); ok {
			return PropertyImage{}, apperr.NotFound(propertyNotFoundMessage)
		}
		if _, ok := db.IsUniqueViolation(err); ok {
			return PropertyImage{}, apperr.Conflict("property already has a cover image")
		}
		return PropertyImage{}, fmt.Errorf("insert property image: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return PropertyImage{}, fmt.Errorf("commit property image: %w", err)
	}
	return img, nil
}

// ListImages returns images of the given properties.
func (r *Repo) ListImages(ctx context.Context, propertyIDs []uuid.UUID, coverOnly bool) ([]PropertyImage, error) {
	items := make([]PropertyImage, 0)
	if len(propertyIDs) == 0 {
		return items, nil
	}

	rows, err := r.pool.Query(ctx, listImagesQuery, propertyIDs, coverOnly)
	if err != nil {
		return nil, fmt.Errorf("list property images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.ImageURL, &img.IsCover, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan property image: %w", err)
		}
		items = append(items, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate property images: %w", err)
	}
	return items, nil
}
