package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type RewardRepository interface {
	ListPhases(ctx context.Context, activeOnly bool) ([]domain.RewardPhase, error)
	FindPhaseByID(ctx context.Context, id uuid.UUID) (*domain.RewardPhase, error)
	CreatePhase(ctx context.Context, phase *domain.RewardPhase) (*domain.RewardPhase, error)
	SetPhaseTrips(ctx context.Context, phaseID uuid.UUID, tripIDs []uuid.UUID) error
	CountActive(ctx context.Context) (int, error)
	PhaseSlugExists(ctx context.Context, slug string) (bool, error)
}
