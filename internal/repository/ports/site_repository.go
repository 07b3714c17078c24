package ports

import (
	"context"

	"github.com/sandsky/travel-backend/internal/domain"
)

type SiteRepository interface {
	// GetConfiguration returns the singleton row, creating it on first use.
	GetConfiguration(ctx context.Context) (*domain.SiteConfiguration, error)
	GetBookingEmailSettings(ctx context.Context) (*domain.BookingEmailSettings, error)
}
