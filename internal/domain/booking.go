package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusReceived  BookingStatus = "received"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusReceived, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Sequence   int64     `db:"sequence" json:"-"`
	TripID     uuid.UUID `db:"trip_id" json:"trip_id"`
	TravelDate time.Time `db:"travel_date" json:"travel_date"`

	Adults   int `db:"adults" json:"adults"`
	Children int `db:"children" json:"children"`
	Infants  int `db:"infants" json:"infants"`

	FullName        string  `db:"full_name" json:"full_name"`
	Email           string  `db:"email" json:"email"`
	Phone           string  `db:"phone" json:"phone"`
	SpecialRequests *string `db:"special_requests" json:"special_requests,omitempty"`

	GroupReference string `db:"group_reference" json:"group_reference"`

	// Totals are snapshots taken at booking time, in cents.
	BaseSubtotalCents   int64  `db:"base_subtotal_cents" json:"base_subtotal_cents"`
	ExtrasSubtotalCents int64  `db:"extras_subtotal_cents" json:"extras_subtotal_cents"`
	DiscountCents       int64  `db:"discount_cents" json:"discount_cents"`
	GrandTotalCents     int64  `db:"grand_total_cents" json:"grand_total_cents"`
	Currency            string `db:"currency" json:"currency"`

	Status          BookingStatus `db:"status" json:"status"`
	StatusNote      *string       `db:"status_note" json:"status_note,omitempty"`
	StatusUpdatedAt time.Time     `db:"status_updated_at" json:"status_updated_at"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`

	TripTitle *string         `db:"trip_title" json:"trip_title,omitempty"`
	Extras    []BookingExtra  `json:"extras,omitempty"`
	Rewards   []BookingReward `json:"rewards,omitempty"`
}

// ReferenceCode builds the customer-facing reference for a booking that does
// not carry a group reference yet, e.g. SKY260831-000042.
func (b Booking) ReferenceCode() string {
	if b.GroupReference != "" {
		return b.GroupReference
	}
	if b.Sequence == 0 {
		return "PENDING"
	}
	ts := b.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return fmt.Sprintf("SKY%s-%06d", ts.Format("060102"), b.Sequence)
}

func (b Booking) TravelerCount() int {
	count := b.Adults + b.Children
	if count < 1 {
		return 1
	}
	return count
}

type BookingExtra struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	BookingID           uuid.UUID `db:"booking_id" json:"booking_id"`
	ExtraID             uuid.UUID `db:"extra_id" json:"extra_id"`
	PriceAtBookingCents int64     `db:"price_at_booking_cents" json:"price_at_booking_cents"`

	ExtraName *string `db:"extra_name" json:"extra_name,omitempty"`
}

// BookingReward snapshots a reward discount applied at checkout.
type BookingReward struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BookingID       uuid.UUID `db:"booking_id" json:"booking_id"`
	RewardPhaseID   uuid.UUID `db:"reward_phase_id" json:"reward_phase_id"`
	TripID          uuid.UUID `db:"trip_id" json:"trip_id"`
	TravelerCount   int       `db:"traveler_count" json:"traveler_count"`
	DiscountPercent int       `db:"discount_percent_bp" json:"discount_percent_bp"`
	DiscountCents   int64     `db:"discount_cents" json:"discount_cents"`
	Currency        string    `db:"currency" json:"currency"`
	AppliedAt       time.Time `db:"applied_at" json:"applied_at"`
}

type BookingCounts struct {
	Received      int `db:"received" json:"received"`
	Confirmed     int `db:"confirmed" json:"confirmed"`
	PastConfirmed int `db:"past_confirmed" json:"past_confirmed"`
}

type BookingListFilter struct {
	Status     *BookingStatus
	TripID     *uuid.UUID
	TravelFrom *time.Time
	TravelTo   *time.Time
	Limit      int
	Offset     int
}
