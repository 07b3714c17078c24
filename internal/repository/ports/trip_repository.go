package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Trip, error)
	FindByTitle(ctx context.Context, title string) (*domain.Trip, error)
	List(ctx context.Context, filter domain.TripListFilter) ([]domain.Trip, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Trip, error)
	ListOthers(ctx context.Context, excludeID uuid.UUID, limit int) ([]domain.Trip, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	AdjustBasePrices(ctx context.Context, tripIDs []uuid.UUID, deltaCents int64) (int, error)

	Content(ctx context.Context, tripID uuid.UUID) (*domain.TripContent, error)
	ReplaceHighlights(ctx context.Context, tripID uuid.UUID, items []domain.TripHighlight) error
	UpsertAbout(ctx context.Context, tripID uuid.UUID, body string) error
	ReplaceItinerary(ctx context.Context, tripID uuid.UUID, days []domain.TripItineraryDay) error
	ReplaceInclusions(ctx context.Context, tripID uuid.UUID, items []domain.TripInclusion) error
	ReplaceExclusions(ctx context.Context, tripID uuid.UUID, items []domain.TripExclusion) error
	ReplaceFAQs(ctx context.Context, tripID uuid.UUID, items []domain.TripFAQ) error
	ReplaceExtras(ctx context.Context, tripID uuid.UUID, items []domain.TripExtra) error
	SetAdditionalDestinations(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error

	ListRelations(ctx context.Context, fromTripID uuid.UUID) ([]domain.TripRelation, error)
	ListExtras(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) ([]domain.TripExtra, error)
}
