package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type StaffRepository interface {
	Create(ctx context.Context, user *domain.StaffUser) (*domain.StaffUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StaffUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}
