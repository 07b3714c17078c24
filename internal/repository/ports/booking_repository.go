package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type BookingRepository interface {
	// Create persists the booking with its extras and reward snapshots in one
	// transaction and assigns the group reference.
	Create(ctx context.Context, booking *domain.Booking, extras []domain.BookingExtra, rewards []domain.BookingReward) (*domain.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByReference(ctx context.Context, reference, email string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingListFilter) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, note *string) (*domain.Booking, error)
	Counts(ctx context.Context) (*domain.BookingCounts, error)
	ListExtras(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingExtra, error)
	ListRewards(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingReward, error)
}
