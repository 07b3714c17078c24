package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type memoryRewardRepo struct {
	phases    []domain.RewardPhase
	listCalls int
}

func (m *memoryRewardRepo) ListPhases(_ context.Context, activeOnly bool) ([]domain.RewardPhase, error) {
	m.listCalls++
	if !activeOnly {
		return m.phases, nil
	}
	active := make([]domain.RewardPhase, 0, len(m.phases))
	for _, p := range m.phases {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, nil
}

func (m *memoryRewardRepo) FindPhaseByID(_ context.Context, id uuid.UUID) (*domain.RewardPhase, error) {
	for i := range m.phases {
		if m.phases[i].ID == id {
			return &m.phases[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryRewardRepo) CreatePhase(_ context.Context, phase *domain.RewardPhase) (*domain.RewardPhase, error) {
	m.phases = append(m.phases, *phase)
	return phase, nil
}

func (m *memoryRewardRepo) SetPhaseTrips(_ context.Context, phaseID uuid.UUID, tripIDs []uuid.UUID) error {
	return nil
}

func (m *memoryRewardRepo) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, p := range m.phases {
		if p.IsActive() {
			count++
		}
	}
	return count, nil
}

func (m *memoryRewardRepo) PhaseSlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range m.phases {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func activePhase(threshold int64, discountBP int, tripIDs ...uuid.UUID) domain.RewardPhase {
	phase := domain.RewardPhase{
		ID:                uuid.New(),
		Status:            domain.RewardPhaseStatusActive,
		ThresholdCents:    threshold,
		DiscountPercentBP: discountBP,
		Currency:          "USD",
	}
	for _, id := range tripIDs {
		phase.Trips = append(phase.Trips, domain.RewardPhaseTrip{TripID: id})
	}
	return phase
}

func TestRewardProgressUnlocksReachedPhases(t *testing.T) {
	svc := NewRewardService(&memoryRewardRepo{})
	low := activePhase(50000, 500)
	high := activePhase(200000, 1000)

	progress := svc.Progress(60000, "USD", []domain.RewardPhase{low, high})

	if len(progress.UnlockedPhaseIDs) != 1 || progress.UnlockedPhaseIDs[0] != low.ID {
		t.Fatalf("expected only the low phase unlocked, got %v", progress.UnlockedPhaseIDs)
	}
	if progress.NextPhase == nil || progress.NextPhase.ID != high.ID {
		t.Fatal("expected the high phase to be next")
	}
	if progress.RemainingCents != 140000 {
		t.Fatalf("expected 140000 cents remaining, got %d", progress.RemainingCents)
	}
}

func TestRewardProgressSkipsInactiveAndForeignCurrency(t *testing.T) {
	svc := NewRewardService(&memoryRewardRepo{})
	inactive := activePhase(10000, 500)
	inactive.Status = domain.RewardPhaseStatusInactive
	egp := activePhase(10000, 500)
	egp.Currency = "EGP"

	progress := svc.Progress(500000, "USD", []domain.RewardPhase{inactive, egp})

	if len(progress.UnlockedPhaseIDs) != 0 {
		t.Fatalf("expected no unlocked phases, got %v", progress.UnlockedPhaseIDs)
	}
	if progress.NextPhase != nil {
		t.Fatalf("expected no next phase, got %v", progress.NextPhase.ID)
	}
}

func TestRewardProgressPicksLowestUnreachedThreshold(t *testing.T) {
	svc := NewRewardService(&memoryRewardRepo{})
	far := activePhase(300000, 1500)
	near := activePhase(100000, 1000)

	progress := svc.Progress(0, "USD", []domain.RewardPhase{far, near})

	if progress.NextPhase == nil || progress.NextPhase.ID != near.ID {
		t.Fatal("expected the nearest threshold to be next")
	}
	if progress.RemainingCents != 100000 {
		t.Fatalf("expected 100000 cents remaining, got %d", progress.RemainingCents)
	}
}

func TestCalculateEntryRewardRoundsHalfUp(t *testing.T) {
	svc := NewRewardService(&memoryRewardRepo{})
	tripID := uuid.New()
	phase := activePhase(0, 1250, tripID) // 12.5%

	reward, err := svc.CalculateEntryReward(EntrySnapshot{
		TripID:         tripID,
		TravelerCount:  2,
		BaseTotalCents: 9999,
		Currency:       "USD",
	}, phase)
	if err != nil {
		t.Fatalf("CalculateEntryReward returned error: %v", err)
	}
	if reward.DiscountCents != 1250 {
		t.Fatalf("expected 1250 cents discount, got %d", reward.DiscountCents)
	}
	if reward.GrandTotalCents != 8749 {
		t.Fatalf("expected grand total 8749, got %d", reward.GrandTotalCents)
	}
}

func TestCalculateEntryRewardCapsAtBaseTotal(t *testing.T) {
	svc := NewRewardService(&memoryRewardRepo{})
	tripID := uuid.New()
	phase := activePhase(0, 15000, tripID) // 150%

	reward, err := svc.CalculateEntryReward(EntrySnapshot{
		TripID:         tripID,
		TravelerCount:  1,
		BaseTotalCents: 10000,
		Currency:       "USD",
	}, phase)
	if err != nil {
		t.Fatalf("CalculateEntryReward returned error: %v", err)
	}
	if reward.DiscountCents != 10000 || reward.GrandTotalCents != 0 {
		t.Fatalf("expected full discount and zero total, got %d / %d", reward.DiscountCents, reward.GrandTotalCents)
	}
}

func TestCalculateEntryRewardErrors(t *testing.T) {
	svc := NewRewardService(&memoryRewardRepo{})
	tripID := uuid.New()
	snapshot := EntrySnapshot{TripID: tripID, TravelerCount: 1, BaseTotalCents: 10000, Currency: "USD"}

	inactive := activePhase(0, 500, tripID)
	inactive.Status = domain.RewardPhaseStatusInactive
	if _, err := svc.CalculateEntryReward(snapshot, inactive); !errors.Is(err, ErrRewardPhaseInactive) {
		t.Fatalf("expected ErrRewardPhaseInactive, got %v", err)
	}

	egp := activePhase(0, 500, tripID)
	egp.Currency = "EGP"
	if _, err := svc.CalculateEntryReward(snapshot, egp); !errors.Is(err, ErrRewardCurrencyMismatch) {
		t.Fatalf("expected ErrRewardCurrencyMismatch, got %v", err)
	}

	otherTrip := activePhase(0, 500, uuid.New())
	if _, err := svc.CalculateEntryReward(snapshot, otherTrip); !errors.Is(err, ErrRewardTripNotEligible) {
		t.Fatalf("expected ErrRewardTripNotEligible, got %v", err)
	}
}

func TestLoadActivePhasesCachesUntilInvalidated(t *testing.T) {
	repo := &memoryRewardRepo{phases: []domain.RewardPhase{activePhase(10000, 500)}}
	svc := NewRewardService(repo)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.LoadActivePhases(ctx); err != nil {
			t.Fatalf("LoadActivePhases returned error: %v", err)
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.listCalls)
	}

	svc.Invalidate()
	if _, err := svc.LoadActivePhases(ctx); err != nil {
		t.Fatalf("LoadActivePhases returned error: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected a refetch after Invalidate, got %d calls", repo.listCalls)
	}
}

func TestFindPhaseNotFound(t *testing.T) {
	svc := NewRewardService(&memoryRewardRepo{})
	if _, err := svc.FindPhase(context.Background(), uuid.New()); !errors.Is(err, ErrRewardPhaseNotFound) {
		t.Fatalf("expected ErrRewardPhaseNotFound, got %v", err)
	}
}
