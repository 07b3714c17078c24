package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
	"github.com/sandsky/travel-backend/internal/util"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingValidation = errors.New("booking validation failed")
	ErrBookingQuickToken = util.ErrQuickActionToken
)

// BookingMailer sends the confirmation email. Failures are logged, never
// surfaced to the customer.
type BookingMailer interface {
	SendConfirmation(ctx context.Context, booking *domain.Booking) error
}

type BookingCreateInput struct {
	TripID          uuid.UUID
	TravelDate      time.Time
	Adults          int
	Children        int
	Infants         int
	FullName        string
	Email           string
	Phone           string
	SpecialRequests *string
	ExtraIDs        []uuid.UUID
	RewardPhaseID   *uuid.UUID
}

type BookingService struct {
	bookings ports.BookingRepository
	trips    ports.TripRepository
	rewards  *RewardService
	signer   *util.QuickActionSigner
	mailer   BookingMailer
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	tripRepo ports.TripRepository,
	rewardService *RewardService,
	signer *util.QuickActionSigner,
	mailer BookingMailer,
) *BookingService {
	return &BookingService{
		bookings: bookingRepo,
		trips:    tripRepo,
		rewards:  rewardService,
		signer:   signer,
		mailer:   mailer,
	}
}

// Create validates the request, recomputes all totals server-side and stores
// the booking with its extra and reward snapshots in one transaction.
func (s *BookingService) Create(ctx context.Context, input BookingCreateInput) (*domain.Booking, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	trip, err := s.trips.FindByID(ctx, input.TripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	booking := domain.Booking{
		TripID:          trip.ID,
		TravelDate:      input.TravelDate,
		Adults:          input.Adults,
		Children:        input.Children,
		Infants:         input.Infants,
		FullName:        strings.TrimSpace(input.FullName),
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		SpecialRequests: input.SpecialRequests,
		Currency:        trip.Currency,
		Status:          domain.BookingStatusReceived,
	}

	travelers := booking.TravelerCount()
	booking.BaseSubtotalCents = trip.BasePriceCents * int64(travelers)

	extras, err := s.trips.ListExtras(ctx, trip.ID, input.ExtraIDs)
	if err != nil {
		return nil, err
	}
	if len(extras) != len(dedupeIDs(input.ExtraIDs)) {
		return nil, fmt.Errorf("%w: one or more selected extras do not belong to this trip", ErrBookingValidation)
	}
	extraRows := make([]domain.BookingExtra, 0, len(extras))
	for _, extra := range extras {
		booking.ExtrasSubtotalCents += extra.PriceCents
		extraRows = append(extraRows, domain.BookingExtra{
			ExtraID:             extra.ID,
			PriceAtBookingCents: extra.PriceCents,
		})
	}

	var rewardRows []domain.BookingReward
	if input.RewardPhaseID != nil {
		phase, err := s.rewards.FindPhase(ctx, *input.RewardPhaseID)
		if err != nil {
			return nil, err
		}
		entryReward, err := s.rewards.CalculateEntryReward(EntrySnapshot{
			TripID:         trip.ID,
			TravelerCount:  travelers,
			BaseTotalCents: booking.BaseSubtotalCents,
			Currency:       booking.Currency,
		}, *phase)
		if err != nil {
			return nil, err
		}
		booking.DiscountCents = entryReward.DiscountCents
		rewardRows = append(rewardRows, domain.BookingReward{
			RewardPhaseID:   entryReward.PhaseID,
			TripID:          entryReward.TripID,
			TravelerCount:   entryReward.TravelerCount,
			DiscountPercent: entryReward.DiscountPercent,
			DiscountCents:   entryReward.DiscountCents,
			Currency:        entryReward.Currency,
		})
	}

	booking.GrandTotalCents = booking.BaseSubtotalCents + booking.ExtrasSubtotalCents - booking.DiscountCents
	if booking.GrandTotalCents < 0 {
		booking.GrandTotalCents = 0
	}

	created, err := s.bookings.Create(ctx, &booking, extraRows, rewardRows)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if mailErr := s.mailer.SendConfirmation(ctx, created); mailErr != nil {
			log.Printf("booking %s: confirmation email failed: %v", created.GroupReference, mailErr)
		}
	}
	return created, nil
}

func (s *BookingService) List(ctx context.Context, filter domain.BookingListFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, filter)
}

// Detail loads a booking with its extras, rewards, and signed quick-action
// links for the remaining transitions.
type BookingDetail struct {
	Booking      domain.Booking    `json:"booking"`
	QuickActions map[string]string `json:"quick_actions"`
}

func (s *BookingService) Detail(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.Extras, err = s.bookings.ListExtras(ctx, id); err != nil {
		return nil, err
	}
	if booking.Rewards, err = s.bookings.ListRewards(ctx, id); err != nil {
		return nil, err
	}

	actions := make(map[string]string, 2)
	for _, status := range []domain.BookingStatus{domain.BookingStatusConfirmed, domain.BookingStatusCancelled} {
		if status == booking.Status {
			continue
		}
		token, signErr := s.signer.Sign(booking.ID, string(status))
		if signErr != nil {
			return nil, signErr
		}
		actions[string(status)] = token
	}

	return &BookingDetail{Booking: *booking, QuickActions: actions}, nil
}

// UpdateStatus transitions a booking. Setting the current status again is an
// idempotent no-op that leaves status_updated_at untouched.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, note *string) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBookingValidation, status)
	}
	updated, err := s.bookings.UpdateStatus(ctx, id, status, note)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ApplyQuickAction verifies the signed token and performs its transition.
func (s *BookingService) ApplyQuickAction(ctx context.Context, token string) (*domain.Booking, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}
	status := domain.BookingStatus(claims.Status)
	if !status.Valid() {
		return nil, util.ErrQuickActionToken
	}
	return s.UpdateStatus(ctx, claims.BookingID, status, nil)
}

// LookupStatus is the public status check by reference code and email.
func (s *BookingService) LookupStatus(ctx context.Context, reference, email string) (*domain.Booking, error) {
	reference = strings.TrimSpace(reference)
	email = strings.TrimSpace(email)
	if reference == "" || email == "" {
		return nil, fmt.Errorf("%w: reference and email are required", ErrBookingValidation)
	}
	booking, err := s.bookings.FindByReference(ctx, reference, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Counts(ctx context.Context) (*domain.BookingCounts, error) {
	return s.bookings.Counts(ctx)
}

func validateBookingInput(input BookingCreateInput) error {
	if input.TripID == uuid.Nil {
		return fmt.Errorf("%w: trip_id is required", ErrBookingValidation)
	}
	if input.TravelDate.IsZero() {
		return fmt.Errorf("%w: travel_date is required", ErrBookingValidation)
	}
	if input.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrBookingValidation)
	}
	if input.Children < 0 || input.Infants < 0 {
		return fmt.Errorf("%w: traveler counts cannot be negative", ErrBookingValidation)
	}
	if strings.TrimSpace(input.FullName) == "" {
		return fmt.Errorf("%w: full_name is required", ErrBookingValidation)
	}
	if email := strings.TrimSpace(input.Email); email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrBookingValidation)
	}
	if strings.TrimSpace(input.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrBookingValidation)
	}
	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
