package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/util"
)

type memoryTripRepo struct {
	trips  map[uuid.UUID]*domain.Trip
	extras map[uuid.UUID][]domain.TripExtra
}

func newMemoryTripRepo() *memoryTripRepo {
	return &memoryTripRepo{
		trips:  make(map[uuid.UUID]*domain.Trip),
		extras: make(map[uuid.UUID][]domain.TripExtra),
	}
}

func (m *memoryTripRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Trip, error) {
	trip, ok := m.trips[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return trip, nil
}

func (m *memoryTripRepo) ListExtras(_ context.Context, tripID uuid.UUID, ids []uuid.UUID) ([]domain.TripExtra, error) {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []domain.TripExtra
	for _, extra := range m.extras[tripID] {
		if _, ok := wanted[extra.ID]; ok {
			out = append(out, extra)
		}
	}
	return out, nil
}

func (m *memoryTripRepo) Create(_ context.Context, trip *domain.Trip) (*domain.Trip, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryTripRepo) Update(_ context.Context, trip *domain.Trip) (*domain.Trip, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryTripRepo) FindBySlug(_ context.Context, slug string) (*domain.Trip, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryTripRepo) FindByTitle(_ context.Context, title string) (*domain.Trip, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryTripRepo) List(_ context.Context, filter domain.TripListFilter) ([]domain.Trip, error) {
	return nil, nil
}
func (m *memoryTripRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Trip, error) {
	return nil, nil
}
func (m *memoryTripRepo) ListOthers(_ context.Context, excludeID uuid.UUID, limit int) ([]domain.Trip, error) {
	return nil, nil
}
func (m *memoryTripRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return false, nil
}
func (m *memoryTripRepo) AdjustBasePrices(_ context.Context, tripIDs []uuid.UUID, deltaCents int64) (int, error) {
	return 0, nil
}
func (m *memoryTripRepo) Content(_ context.Context, tripID uuid.UUID) (*domain.TripContent, error) {
	return &domain.TripContent{}, nil
}
func (m *memoryTripRepo) ReplaceHighlights(_ context.Context, tripID uuid.UUID, items []domain.TripHighlight) error {
	return nil
}
func (m *memoryTripRepo) UpsertAbout(_ context.Context, tripID uuid.UUID, body string) error {
	return nil
}
func (m *memoryTripRepo) ReplaceItinerary(_ context.Context, tripID uuid.UUID, days []domain.TripItineraryDay) error {
	return nil
}
func (m *memoryTripRepo) ReplaceInclusions(_ context.Context, tripID uuid.UUID, items []domain.TripInclusion) error {
	return nil
}
func (m *memoryTripRepo) ReplaceExclusions(_ context.Context, tripID uuid.UUID, items []domain.TripExclusion) error {
	return nil
}
func (m *memoryTripRepo) ReplaceFAQs(_ context.Context, tripID uuid.UUID, items []domain.TripFAQ) error {
	return nil
}
func (m *memoryTripRepo) ReplaceExtras(_ context.Context, tripID uuid.UUID, items []domain.TripExtra) error {
	return nil
}
func (m *memoryTripRepo) SetAdditionalDestinations(_ context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	return nil
}
func (m *memoryTripRepo) ListRelations(_ context.Context, fromTripID uuid.UUID) ([]domain.TripRelation, error) {
	return nil, nil
}

type memoryBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
	extras   map[uuid.UUID][]domain.BookingExtra
	rewards  map[uuid.UUID][]domain.BookingReward
	sequence int64
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{
		bookings: make(map[uuid.UUID]*domain.Booking),
		extras:   make(map[uuid.UUID][]domain.BookingExtra),
		rewards:  make(map[uuid.UUID][]domain.BookingReward),
	}
}

func (m *memoryBookingRepo) Create(_ context.Context, booking *domain.Booking, extras []domain.BookingExtra, rewards []domain.BookingReward) (*domain.Booking, error) {
	m.sequence++
	stored := *booking
	stored.ID = uuid.New()
	stored.Sequence = m.sequence
	stored.CreatedAt = time.Now()
	stored.GroupReference = stored.ReferenceCode()
	m.bookings[stored.ID] = &stored
	m.extras[stored.ID] = extras
	m.rewards[stored.ID] = rewards
	return &stored, nil
}

func (m *memoryBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (m *memoryBookingRepo) FindByReference(_ context.Context, reference, email string) (*domain.Booking, error) {
	for _, booking := range m.bookings {
		if booking.GroupReference == reference && booking.Email == email {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryBookingRepo) List(_ context.Context, filter domain.BookingListFilter) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, booking := range m.bookings {
		out = append(out, *booking)
	}
	return out, nil
}

func (m *memoryBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus, note *string) (*domain.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if booking.Status != status {
		booking.Status = status
		booking.StatusUpdatedAt = time.Now()
	}
	copied := *booking
	return &copied, nil
}

func (m *memoryBookingRepo) Counts(_ context.Context) (*domain.BookingCounts, error) {
	counts := domain.BookingCounts{}
	for _, booking := range m.bookings {
		switch booking.Status {
		case domain.BookingStatusReceived:
			counts.Received++
		case domain.BookingStatusConfirmed:
			counts.Confirmed++
		}
	}
	return &counts, nil
}

func (m *memoryBookingRepo) ListExtras(_ context.Context, bookingID uuid.UUID) ([]domain.BookingExtra, error) {
	return m.extras[bookingID], nil
}

func (m *memoryBookingRepo) ListRewards(_ context.Context, bookingID uuid.UUID) ([]domain.BookingReward, error) {
	return m.rewards[bookingID], nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendConfirmation(_ context.Context, booking *domain.Booking) error {
	m.sent = append(m.sent, booking.GroupReference)
	return m.err
}

func bookingFixture(t *testing.T) (*BookingService, *memoryTripRepo, *memoryBookingRepo, *memoryRewardRepo, *recordingMailer) {
	t.Helper()
	tripRepo := newMemoryTripRepo()
	bookingRepo := newMemoryBookingRepo()
	rewardRepo := &memoryRewardRepo{}
	mailer := &recordingMailer{}
	svc := NewBookingService(
		bookingRepo,
		tripRepo,
		NewRewardService(rewardRepo),
		util.NewQuickActionSigner("quick-secret"),
		mailer,
	)
	return svc, tripRepo, bookingRepo, rewardRepo, mailer
}

func validCreateInput(tripID uuid.UUID) BookingCreateInput {
	return BookingCreateInput{
		TripID:     tripID,
		TravelDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Adults:     2,
		Children:   1,
		FullName:   "Jane Traveler",
		Email:      "jane@example.com",
		Phone:      "+201000000000",
	}
}

func TestBookingCreateComputesTotals(t *testing.T) {
	svc, tripRepo, _, _, mailer := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}
	extra := domain.TripExtra{ID: uuid.New(), TripID: tripID, PriceCents: 7500}
	tripRepo.extras[tripID] = []domain.TripExtra{extra}

	input := validCreateInput(tripID)
	input.ExtraIDs = []uuid.UUID{extra.ID}

	booking, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	// 3 paying travelers at 50000 plus one extra.
	if booking.BaseSubtotalCents != 150000 {
		t.Fatalf("expected base subtotal 150000, got %d", booking.BaseSubtotalCents)
	}
	if booking.ExtrasSubtotalCents != 7500 {
		t.Fatalf("expected extras subtotal 7500, got %d", booking.ExtrasSubtotalCents)
	}
	if booking.GrandTotalCents != 157500 {
		t.Fatalf("expected grand total 157500, got %d", booking.GrandTotalCents)
	}
	if booking.Status != domain.BookingStatusReceived {
		t.Fatalf("expected status received, got %q", booking.Status)
	}
	if booking.GroupReference == "" {
		t.Fatal("expected a group reference to be assigned")
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != booking.GroupReference {
		t.Fatalf("expected one confirmation email for %s, got %v", booking.GroupReference, mailer.sent)
	}
}

func TestBookingCreateAppliesRewardDiscount(t *testing.T) {
	svc, tripRepo, bookingRepo, rewardRepo, _ := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 100000, Currency: "USD"}

	phase := activePhase(0, 1000, tripID) // 10%
	rewardRepo.phases = []domain.RewardPhase{phase}

	input := validCreateInput(tripID)
	input.RewardPhaseID = &phase.ID

	booking, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if booking.DiscountCents != 30000 {
		t.Fatalf("expected 30000 cents discount, got %d", booking.DiscountCents)
	}
	if booking.GrandTotalCents != 270000 {
		t.Fatalf("expected grand total 270000, got %d", booking.GrandTotalCents)
	}
	rewards, _ := bookingRepo.ListRewards(context.Background(), booking.ID)
	if len(rewards) != 1 || rewards[0].RewardPhaseID != phase.ID {
		t.Fatalf("expected one reward snapshot for phase %s, got %v", phase.ID, rewards)
	}
}

func TestBookingCreateRejectsForeignExtra(t *testing.T) {
	svc, tripRepo, _, _, _ := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}

	input := validCreateInput(tripID)
	input.ExtraIDs = []uuid.UUID{uuid.New()}

	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrBookingValidation) {
		t.Fatalf("expected ErrBookingValidation, got %v", err)
	}
}

func TestBookingCreateValidation(t *testing.T) {
	svc, tripRepo, _, _, _ := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}

	cases := []struct {
		name   string
		mutate func(*BookingCreateInput)
	}{
		{"missing trip", func(in *BookingCreateInput) { in.TripID = uuid.Nil }},
		{"zero travel date", func(in *BookingCreateInput) { in.TravelDate = time.Time{} }},
		{"no adults", func(in *BookingCreateInput) { in.Adults = 0 }},
		{"negative children", func(in *BookingCreateInput) { in.Children = -1 }},
		{"blank name", func(in *BookingCreateInput) { in.FullName = "  " }},
		{"bad email", func(in *BookingCreateInput) { in.Email = "not-an-email" }},
		{"blank phone", func(in *BookingCreateInput) { in.Phone = "" }},
	}
	for _, tc := range cases {
		input := validCreateInput(tripID)
		tc.mutate(&input)
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrBookingValidation) {
			t.Errorf("%s: expected ErrBookingValidation, got %v", tc.name, err)
		}
	}
}

func TestBookingCreateUnknownTrip(t *testing.T) {
	svc, _, _, _, _ := bookingFixture(t)
	if _, err := svc.Create(context.Background(), validCreateInput(uuid.New())); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestBookingCreateSurvivesMailerFailure(t *testing.T) {
	svc, tripRepo, _, _, mailer := bookingFixture(t)
	mailer.err = errors.New("smtp down")
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}

	if _, err := svc.Create(context.Background(), validCreateInput(tripID)); err != nil {
		t.Fatalf("expected creation to succeed despite mailer failure, got %v", err)
	}
}

func TestBookingDetailSignsRemainingTransitions(t *testing.T) {
	svc, tripRepo, _, _, _ := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}

	booking, err := svc.Create(context.Background(), validCreateInput(tripID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	detail, err := svc.Detail(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if len(detail.QuickActions) != 2 {
		t.Fatalf("expected two quick actions for a received booking, got %d", len(detail.QuickActions))
	}
	for _, status := range []string{"confirmed", "cancelled"} {
		if detail.QuickActions[status] == "" {
			t.Errorf("expected a signed token for %q", status)
		}
	}
}

func TestBookingQuickActionRoundTrip(t *testing.T) {
	svc, tripRepo, _, _, _ := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}

	booking, err := svc.Create(context.Background(), validCreateInput(tripID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	detail, err := svc.Detail(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}

	updated, err := svc.ApplyQuickAction(context.Background(), detail.QuickActions["confirmed"])
	if err != nil {
		t.Fatalf("ApplyQuickAction returned error: %v", err)
	}
	if updated.Status != domain.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %q", updated.Status)
	}
}

func TestBookingQuickActionRejectsTamperedToken(t *testing.T) {
	svc, _, _, _, _ := bookingFixture(t)
	foreign, err := util.NewQuickActionSigner("other-secret").Sign(uuid.New(), "confirmed")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if _, err := svc.ApplyQuickAction(context.Background(), foreign); !errors.Is(err, ErrBookingQuickToken) {
		t.Fatalf("expected ErrBookingQuickToken, got %v", err)
	}
}

func TestBookingUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := bookingFixture(t)
	if _, err := svc.UpdateStatus(context.Background(), uuid.New(), "shipped", nil); !errors.Is(err, ErrBookingValidation) {
		t.Fatalf("expected ErrBookingValidation, got %v", err)
	}
}

func TestBookingUpdateStatusSameStatusKeepsTimestamp(t *testing.T) {
	svc, tripRepo, bookingRepo, _, _ := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}

	booking, err := svc.Create(context.Background(), validCreateInput(tripID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), booking.ID, domain.BookingStatusReceived, nil)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.BookingStatusReceived {
		t.Fatalf("expected status to stay received, got %s", updated.Status)
	}
	if !bookingRepo.bookings[booking.ID].StatusUpdatedAt.IsZero() {
		t.Fatal("expected a same-status transition to leave the status timestamp alone")
	}

	if _, err := svc.UpdateStatus(context.Background(), booking.ID, domain.BookingStatusConfirmed, nil); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if bookingRepo.bookings[booking.ID].StatusUpdatedAt.IsZero() {
		t.Fatal("expected a real transition to stamp the status timestamp")
	}
}

func TestBookingLookupStatus(t *testing.T) {
	svc, tripRepo, _, _, _ := bookingFixture(t)
	tripID := uuid.New()
	tripRepo.trips[tripID] = &domain.Trip{ID: tripID, BasePriceCents: 50000, Currency: "USD"}

	booking, err := svc.Create(context.Background(), validCreateInput(tripID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	found, err := svc.LookupStatus(context.Background(), booking.GroupReference, booking.Email)
	if err != nil {
		t.Fatalf("LookupStatus returned error: %v", err)
	}
	if found.ID != booking.ID {
		t.Fatalf("expected booking %s, got %s", booking.ID, found.ID)
	}

	if _, err := svc.LookupStatus(context.Background(), booking.GroupReference, "wrong@example.com"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.LookupStatus(context.Background(), "", ""); !errors.Is(err, ErrBookingValidation) {
		t.Fatalf("expected ErrBookingValidation, got %v", err)
	}
}
