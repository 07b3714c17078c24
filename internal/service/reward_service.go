package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
	"github.com/sandsky/travel-backend/internal/util"
)

var (
	ErrRewardPhaseInactive    = errors.New("reward phase is not active")
	ErrRewardCurrencyMismatch = errors.New("reward currency does not match booking currency")
	ErrRewardTripNotEligible  = errors.New("trip is not eligible for this reward phase")
	ErrRewardPhaseNotFound    = errors.New("reward phase not found")
)

const rewardCacheTTL = 60 * time.Second

type RewardService struct {
	rewards ports.RewardRepository

	mu       sync.Mutex
	cached   []domain.RewardPhase
	cachedAt time.Time
	now      func() time.Time
}

func NewRewardService(rewardRepo ports.RewardRepository) *RewardService {
	return &RewardService{
		rewards: rewardRepo,
		now:     time.Now,
	}
}

// LoadActivePhases serves from a short-lived in-process cache. Invalidate
// clears it after admin edits.
func (s *RewardService) LoadActivePhases(ctx context.Context) ([]domain.RewardPhase, error) {
	s.mu.Lock()
	if s.cached != nil && s.now().Sub(s.cachedAt) < rewardCacheTTL {
		phases := s.cached
		s.mu.Unlock()
		return phases, nil
	}
	s.mu.Unlock()

	phases, err := s.rewards.ListPhases(ctx, true)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = phases
	s.cachedAt = s.now()
	s.mu.Unlock()
	return phases, nil
}

func (s *RewardService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *RewardService) CountActive(ctx context.Context) (int, error) {
	return s.rewards.CountActive(ctx)
}

// UnlockProgress reports which phases a cart total has unlocked, the next
// phase to reach, and how far away it is. Phases priced in another currency
// are skipped rather than compared.
type UnlockProgress struct {
	UnlockedPhaseIDs []uuid.UUID         `json:"unlocked_phase_ids"`
	NextPhase        *domain.RewardPhase `json:"next_phase,omitempty"`
	RemainingCents   int64               `json:"remaining_cents"`
}

func (s *RewardService) Progress(totalCents int64, currency string, phases []domain.RewardPhase) UnlockProgress {
	progress := UnlockProgress{UnlockedPhaseIDs: make([]uuid.UUID, 0, len(phases))}
	for i := range phases {
		phase := phases[i]
		if !phase.IsActive() || phase.Currency != currency {
			continue
		}
		if totalCents >= phase.ThresholdCents {
			progress.UnlockedPhaseIDs = append(progress.UnlockedPhaseIDs, phase.ID)
			continue
		}
		if progress.NextPhase == nil || phase.ThresholdCents < progress.NextPhase.ThresholdCents {
			progress.NextPhase = &phases[i]
		}
	}
	if progress.NextPhase != nil {
		remaining := progress.NextPhase.ThresholdCents - totalCents
		if remaining < 0 {
			remaining = 0
		}
		progress.RemainingCents = remaining
	}
	return progress
}

// EntrySnapshot is the pricing state a reward is applied against.
type EntrySnapshot struct {
	TripID         uuid.UUID
	TravelerCount  int
	BaseTotalCents int64
	Currency       string
}

// EntryReward is the outcome of applying a phase to a snapshot.
type EntryReward struct {
	PhaseID         uuid.UUID
	TripID          uuid.UUID
	TravelerCount   int
	DiscountPercent int
	DiscountCents   int64
	BaseTotalCents  int64
	GrandTotalCents int64
	Currency        string
}

// CalculateEntryReward applies a phase discount to one cart entry. The
// discount rounds half-up at cent boundaries and never exceeds the base total.
func (s *RewardService) CalculateEntryReward(snapshot EntrySnapshot, phase domain.RewardPhase) (*EntryReward, error) {
	if !phase.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrRewardPhaseInactive, phase.Slug)
	}
	if phase.Currency != snapshot.Currency {
		return nil, fmt.Errorf("%w: phase %s is %s, booking is %s",
			ErrRewardCurrencyMismatch, phase.Slug, phase.Currency, snapshot.Currency)
	}
	eligible := false
	for _, tripID := range phase.EligibleTripIDs() {
		if tripID == snapshot.TripID {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, fmt.Errorf("%w: phase %s", ErrRewardTripNotEligible, phase.Slug)
	}

	discount := util.PercentOfCents(snapshot.BaseTotalCents, phase.DiscountPercentBP)
	if discount > snapshot.BaseTotalCents {
		discount = snapshot.BaseTotalCents
	}

	return &EntryReward{
		PhaseID:         phase.ID,
		TripID:          snapshot.TripID,
		TravelerCount:   snapshot.TravelerCount,
		DiscountPercent: phase.DiscountPercentBP,
		DiscountCents:   discount,
		BaseTotalCents:  snapshot.BaseTotalCents,
		GrandTotalCents: snapshot.BaseTotalCents - discount,
		Currency:        snapshot.Currency,
	}, nil
}

func (s *RewardService) FindPhase(ctx context.Context, id uuid.UUID) (*domain.RewardPhase, error) {
	phase, err := s.rewards.FindPhaseByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRewardPhaseNotFound
		}
		return nil, err
	}
	return phase, nil
}
