package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
	Update(ctx context.Context, dest *domain.Destination) (*domain.Destination, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Destination, error)
	FindByName(ctx context.Context, name string) (*domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
	ListFeatured(ctx context.Context) ([]domain.Destination, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	AddGalleryImage(ctx context.Context, image *domain.DestinationGalleryImage) (*domain.DestinationGalleryImage, error)
	ListGalleryImages(ctx context.Context, destinationID uuid.UUID) ([]domain.DestinationGalleryImage, error)
	ListGalleryImagesMissingDimensions(ctx context.Context) ([]domain.DestinationGalleryImage, error)
	SetGalleryImageDimensions(ctx context.Context, imageID uuid.UUID, width, height int) error
}
