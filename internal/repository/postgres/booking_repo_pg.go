package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

const bookingColumns = `
	b.id, b.sequence, b.trip_id, b.travel_date, b.adults, b.children, b.infants,
	b.full_name, b.email, b.phone, b.special_requests, b.group_reference,
	b.base_subtotal_cents, b.extras_subtotal_cents, b.discount_cents,
	b.grand_total_cents, b.currency, b.status, b.status_note,
	b.status_updated_at, b.created_at, t.title AS trip_title
`

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking, extras []domain.BookingExtra, rewards []domain.BookingReward) (*domain.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	var inserted domain.Booking
	err = tx.GetContext(ctx, &inserted, `
		INSERT INTO booking (
			trip_id, travel_date, adults, children, infants,
			full_name, email, phone, special_requests,
			base_subtotal_cents, extras_subtotal_cents, discount_cents,
			grand_total_cents, currency, status, status_updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW()
		)
		RETURNING id, sequence, created_at
	`,
		booking.TripID, booking.TravelDate, booking.Adults, booking.Children, booking.Infants,
		booking.FullName, booking.Email, booking.Phone, nullString(booking.SpecialRequests),
		booking.BaseSubtotalCents, booking.ExtrasSubtotalCents, booking.DiscountCents,
		booking.GrandTotalCents, booking.Currency, booking.Status,
	)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	// The reference needs the assigned sequence, so it is stamped after insert.
	reference := domain.Booking{Sequence: inserted.Sequence, CreatedAt: inserted.CreatedAt}.ReferenceCode()
	if _, err = tx.ExecContext(ctx, `
		UPDATE booking SET group_reference = $2 WHERE id = $1
	`, inserted.ID, reference); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	for _, extra := range extras {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO booking_extra (booking_id, extra_id, price_at_booking_cents)
			VALUES ($1, $2, $3)
		`, inserted.ID, extra.ExtraID, extra.PriceAtBookingCents); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	for _, reward := range rewards {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO booking_reward (
				booking_id, reward_phase_id, trip_id, traveler_count,
				discount_percent_bp, discount_cents, currency, applied_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`, inserted.ID, reward.RewardPhaseID, reward.TripID, reward.TravelerCount,
			reward.DiscountPercent, reward.DiscountCents, reward.Currency); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, inserted.ID)
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM booking b
		JOIN trip t ON t.id = b.trip_id
		WHERE b.id = $1
	`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindByReference(ctx context.Context, reference, email string) (*domain.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM booking b
		JOIN trip t ON t.id = b.trip_id
		WHERE b.group_reference = $1 AND LOWER(b.email) = LOWER($2)
	`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, strings.TrimSpace(reference), strings.TrimSpace(email)); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingListFilter) ([]domain.Booking, error) {
	var builder strings.Builder
	builder.WriteString(`
		SELECT ` + bookingColumns + `
		FROM booking b
		JOIN trip t ON t.id = b.trip_id
		WHERE 1 = 1
	`)
	params := make([]any, 0, 6)

	if filter.Status != nil {
		params = append(params, *filter.Status)
		builder.WriteString(fmt.Sprintf("\n\tAND b.status = $%d", len(params)))
	}
	if filter.TripID != nil {
		params = append(params, *filter.TripID)
		builder.WriteString(fmt.Sprintf("\n\tAND b.trip_id = $%d", len(params)))
	}
	if filter.TravelFrom != nil {
		params = append(params, *filter.TravelFrom)
		builder.WriteString(fmt.Sprintf("\n\tAND b.travel_date >= $%d", len(params)))
	}
	if filter.TravelTo != nil {
		params = append(params, *filter.TravelTo)
		builder.WriteString(fmt.Sprintf("\n\tAND b.travel_date <= $%d", len(params)))
	}

	builder.WriteString("\n\tORDER BY b.created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	params = append(params, limit)
	builder.WriteString(fmt.Sprintf("\n\tLIMIT $%d", len(params)))
	params = append(params, filter.Offset)
	builder.WriteString(fmt.Sprintf(" OFFSET $%d", len(params)))

	bookings := make([]domain.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, builder.String(), params...); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, note *string) (*domain.Booking, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE booking
		SET status_updated_at = CASE WHEN status <> $2 THEN NOW() ELSE status_updated_at END,
		    status = $2,
		    status_note = COALESCE($3, status_note)
		WHERE id = $1
	`, id, status, nullString(note))
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, id)
}

func (r *BookingRepository) Counts(ctx context.Context) (*domain.BookingCounts, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE status = 'received')::int AS received,
			COUNT(*) FILTER (WHERE status = 'confirmed' AND travel_date >= CURRENT_DATE)::int AS confirmed,
			COUNT(*) FILTER (WHERE status = 'confirmed' AND travel_date < CURRENT_DATE)::int AS past_confirmed
		FROM booking
	`
	var counts domain.BookingCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *BookingRepository) ListExtras(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingExtra, error) {
	const query = `
		SELECT be.id, be.booking_id, be.extra_id, be.price_at_booking_cents,
		       te.name AS extra_name
		FROM booking_extra be
		JOIN trip_extra te ON te.id = be.extra_id
		WHERE be.booking_id = $1
		ORDER BY te.position ASC
	`
	extras := make([]domain.BookingExtra, 0)
	if err := r.db.SelectContext(ctx, &extras, query, bookingID); err != nil {
		return nil, err
	}
	return extras, nil
}

func (r *BookingRepository) ListRewards(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingReward, error) {
	const query = `
		SELECT id, booking_id, reward_phase_id, trip_id, traveler_count,
		       discount_percent_bp, discount_cents, currency, applied_at
		FROM booking_reward
		WHERE booking_id = $1
		ORDER BY applied_at ASC
	`
	rewards := make([]domain.BookingReward, 0)
	if err := r.db.SelectContext(ctx, &rewards, query, bookingID); err != nil {
		return nil, err
	}
	return rewards, nil
}

var _ ports.BookingRepository = (*BookingRepository)(nil)
