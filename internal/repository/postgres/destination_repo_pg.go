package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

const destinationColumns = `
	id, name, slug, tagline, description, card_image_url, hero_image_url,
	hero_subtitle, is_featured, featured_position, created_at, updated_at
`

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	const query = `
		INSERT INTO destination (
			name, slug, tagline, description, card_image_url, hero_image_url,
			hero_subtitle, is_featured, featured_position
		) VALUES (
			:name, :slug, :tagline, :description, :card_image_url, :hero_image_url,
			:hero_subtitle, :is_featured, :featured_position
		)
		RETURNING ` + destinationColumns

	args := map[string]any{
		"name":              dest.Name,
		"slug":              dest.Slug,
		"tagline":           nullString(dest.Tagline),
		"description":       nullString(dest.Description),
		"card_image_url":    nullString(dest.CardImageURL),
		"hero_image_url":    nullString(dest.HeroImageURL),
		"hero_subtitle":     nullString(dest.HeroSubtitle),
		"is_featured":       dest.IsFeatured,
		"featured_position": dest.FeaturedPosition,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var created domain.Destination
		if err = rows.StructScan(&created); err != nil {
			return nil, err
		}
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) Update(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	const query = `
		UPDATE destination
		SET name = :name,
		    slug = :slug,
		    tagline = :tagline,
		    description = :description,
		    card_image_url = :card_image_url,
		    hero_image_url = :hero_image_url,
		    hero_subtitle = :hero_subtitle,
		    is_featured = :is_featured,
		    featured_position = :featured_position,
		    updated_at = NOW()
		WHERE id = :id
		RETURNING ` + destinationColumns

	args := map[string]any{
		"id":                dest.ID,
		"name":              dest.Name,
		"slug":              dest.Slug,
		"tagline":           nullString(dest.Tagline),
		"description":       nullString(dest.Description),
		"card_image_url":    nullString(dest.CardImageURL),
		"hero_image_url":    nullString(dest.HeroImageURL),
		"hero_subtitle":     nullString(dest.HeroSubtitle),
		"is_featured":       dest.IsFeatured,
		"featured_position": dest.FeaturedPosition,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var updated domain.Destination
		if err = rows.StructScan(&updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination WHERE id = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination WHERE slug = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, slug); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindByName(ctx context.Context, name string) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination WHERE name = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, name); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination ORDER BY name ASC`
	destinations := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &destinations, query); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *DestinationRepository) ListFeatured(ctx context.Context) ([]domain.Destination, error) {
	const query = `
		SELECT ` + destinationColumns + `
		FROM destination
		WHERE is_featured = TRUE
		ORDER BY featured_position ASC, name ASC
	`
	destinations := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &destinations, query); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *DestinationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM destination WHERE slug = $1)`, slug); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *DestinationRepository) AddGalleryImage(ctx context.Context, image *domain.DestinationGalleryImage) (*domain.DestinationGalleryImage, error) {
	const query = `
		INSERT INTO destination_gallery_image (destination_id, image_url, caption, position, width, height)
		VALUES (:destination_id, :image_url, :caption, :position, :width, :height)
		RETURNING id, destination_id, image_url, caption, position, width, height, created_at
	`

	args := map[string]any{
		"destination_id": image.DestinationID,
		"image_url":      image.ImageURL,
		"caption":        nullString(image.Caption),
		"position":       image.Position,
		"width":          nullInt(image.Width),
		"height":         nullInt(image.Height),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var created domain.DestinationGalleryImage
		if err = rows.StructScan(&created); err != nil {
			return nil, err
		}
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) ListGalleryImages(ctx context.Context, destinationID uuid.UUID) ([]domain.DestinationGalleryImage, error) {
	const query = `
		SELECT id, destination_id, image_url, caption, position, width, height, created_at
		FROM destination_gallery_image
		WHERE destination_id = $1
		ORDER BY position ASC, created_at ASC
	`
	images := make([]domain.DestinationGalleryImage, 0)
	if err := r.db.SelectContext(ctx, &images, query, destinationID); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *DestinationRepository) ListGalleryImagesMissingDimensions(ctx context.Context) ([]domain.DestinationGalleryImage, error) {
	const query = `
		SELECT id, destination_id, image_url, caption, position, width, height, created_at
		FROM destination_gallery_image
		WHERE width IS NULL OR height IS NULL
		ORDER BY created_at ASC
	`
	images := make([]domain.DestinationGalleryImage, 0)
	if err := r.db.SelectContext(ctx, &images, query); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *DestinationRepository) SetGalleryImageDimensions(ctx context.Context, imageID uuid.UUID, width, height int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE destination_gallery_image
		SET width = $2, height = $3
		WHERE id = $1
	`, imageID, width, height)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)
