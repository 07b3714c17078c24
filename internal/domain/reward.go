package domain

import (
	"time"

	"github.com/google/uuid"
)

type RewardPhaseStatus string

const (
	RewardPhaseStatusActive   RewardPhaseStatus = "active"
	RewardPhaseStatusInactive RewardPhaseStatus = "inactive"
)

// RewardPhase is a configurable discount bracket unlocked by reaching a cart
// threshold. Discount percentages are stored in basis points so all reward
// arithmetic stays in integers (12.5% == 1250).
type RewardPhase struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	Name              string            `db:"name" json:"name"`
	Slug              string            `db:"slug" json:"slug"`
	Position          int               `db:"position" json:"position"`
	Status            RewardPhaseStatus `db:"status" json:"status"`
	ThresholdCents    int64             `db:"threshold_cents" json:"threshold_cents"`
	DiscountPercentBP int               `db:"discount_percent_bp" json:"discount_percent_bp"`
	Currency          string            `db:"currency" json:"currency"`
	Headline          *string           `db:"headline" json:"headline,omitempty"`
	Description       *string           `db:"description" json:"description,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`

	Trips []RewardPhaseTrip `json:"trips,omitempty"`
}

func (p RewardPhase) IsActive() bool {
	return p.Status == RewardPhaseStatusActive
}

func (p RewardPhase) EligibleTripIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Trips))
	for _, t := range p.Trips {
		ids = append(ids, t.TripID)
	}
	return ids
}

// RewardPhaseTrip maps a trip into a phase with a display position.
type RewardPhaseTrip struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PhaseID      uuid.UUID `db:"phase_id" json:"phase_id"`
	TripID       uuid.UUID `db:"trip_id" json:"trip_id"`
	Position     int       `db:"position" json:"position"`
	TripSlug     *string   `db:"trip_slug" json:"trip_slug,omitempty"`
	TripTitle    *string   `db:"trip_title" json:"trip_title,omitempty"`
	CardImageURL *string   `db:"card_image_url" json:"card_image_url,omitempty"`
}
