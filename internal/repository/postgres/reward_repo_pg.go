package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

const rewardPhaseColumns = `
	id, name, slug, position, status, threshold_cents, discount_percent_bp,
	currency, headline, description, created_at, updated_at
`

type RewardRepository struct {
	db *sqlx.DB
}

func NewRewardRepo(db *sqlx.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) ListPhases(ctx context.Context, activeOnly bool) ([]domain.RewardPhase, error) {
	query := `SELECT ` + rewardPhaseColumns + ` FROM reward_phase`
	if activeOnly {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY position ASC, threshold_cents ASC`

	phases := make([]domain.RewardPhase, 0)
	if err := r.db.SelectContext(ctx, &phases, query); err != nil {
		return nil, err
	}
	for i := range phases {
		trips, err := r.listPhaseTrips(ctx, phases[i].ID)
		if err != nil {
			return nil, err
		}
		phases[i].Trips = trips
	}
	return phases, nil
}

func (r *RewardRepository) FindPhaseByID(ctx context.Context, id uuid.UUID) (*domain.RewardPhase, error) {
	const query = `SELECT ` + rewardPhaseColumns + ` FROM reward_phase WHERE id = $1`
	var phase domain.RewardPhase
	if err := r.db.GetContext(ctx, &phase, query, id); err != nil {
		return nil, err
	}
	trips, err := r.listPhaseTrips(ctx, phase.ID)
	if err != nil {
		return nil, err
	}
	phase.Trips = trips
	return &phase, nil
}

func (r *RewardRepository) CreatePhase(ctx context.Context, phase *domain.RewardPhase) (*domain.RewardPhase, error) {
	const query = `
		INSERT INTO reward_phase (
			name, slug, position, status, threshold_cents, discount_percent_bp,
			currency, headline, description
		) VALUES (
			:name, :slug, :position, :status, :threshold_cents, :discount_percent_bp,
			:currency, :headline, :description
		)
		RETURNING ` + rewardPhaseColumns

	args := map[string]any{
		"name":                phase.Name,
		"slug":                phase.Slug,
		"position":            phase.Position,
		"status":              phase.Status,
		"threshold_cents":     phase.ThresholdCents,
		"discount_percent_bp": phase.DiscountPercentBP,
		"currency":            phase.Currency,
		"headline":            nullString(phase.Headline),
		"description":         nullString(phase.Description),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var created domain.RewardPhase
		if err = rows.StructScan(&created); err != nil {
			return nil, err
		}
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *RewardRepository) SetPhaseTrips(ctx context.Context, phaseID uuid.UUID, tripIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM reward_phase_trip WHERE phase_id = $1`, phaseID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for i, tripID := range tripIDs {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO reward_phase_trip (phase_id, trip_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (phase_id, trip_id) DO UPDATE SET position = EXCLUDED.position
		`, phaseID, tripID, i); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *RewardRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)::int FROM reward_phase WHERE status = 'active'
	`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RewardRepository) PhaseSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM reward_phase WHERE slug = $1)`, slug); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *RewardRepository) listPhaseTrips(ctx context.Context, phaseID uuid.UUID) ([]domain.RewardPhaseTrip, error) {
	const query = `
		SELECT rpt.id, rpt.phase_id, rpt.trip_id, rpt.position,
		       t.slug AS trip_slug, t.title AS trip_title, t.card_image_url
		FROM reward_phase_trip rpt
		JOIN trip t ON t.id = rpt.trip_id
		WHERE rpt.phase_id = $1
		ORDER BY rpt.position ASC
	`
	trips := make([]domain.RewardPhaseTrip, 0)
	if err := r.db.SelectContext(ctx, &trips, query, phaseID); err != nil {
		return nil, err
	}
	return trips, nil
}

var _ ports.RewardRepository = (*RewardRepository)(nil)
