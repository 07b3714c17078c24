package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

const tripColumns = `
	t.id, t.title, t.slug, t.destination_id, t.teaser, t.card_image_url,
	t.hero_image_url, t.duration_days, t.group_size_max, t.base_price_cents,
	t.currency, t.tour_type_label, t.is_service, t.created_at, t.updated_at,
	d.name AS destination_name
`

type TripRepository struct {
	db *sqlx.DB
}

func NewTripRepo(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	const query = `
		INSERT INTO trip (
			title, slug, destination_id, teaser, card_image_url, hero_image_url,
			duration_days, group_size_max, base_price_cents, currency,
			tour_type_label, is_service
		) VALUES (
			:title, :slug, :destination_id, :teaser, :card_image_url, :hero_image_url,
			:duration_days, :group_size_max, :base_price_cents, :currency,
			:tour_type_label, :is_service
		)
		RETURNING id
	`

	args := map[string]any{
		"title":            trip.Title,
		"slug":             trip.Slug,
		"destination_id":   trip.DestinationID,
		"teaser":           trip.Teaser,
		"card_image_url":   nullString(trip.CardImageURL),
		"hero_image_url":   nullString(trip.HeroImageURL),
		"duration_days":    trip.DurationDays,
		"group_size_max":   trip.GroupSizeMax,
		"base_price_cents": trip.BasePriceCents,
		"currency":         trip.Currency,
		"tour_type_label":  trip.TourTypeLabel,
		"is_service":       trip.IsService,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	var id uuid.UUID
	if err = rows.Scan(&id); err != nil {
		return nil, err
	}
	rows.Close()
	return r.FindByID(ctx, id)
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	const query = `
		UPDATE trip
		SET title = :title,
		    slug = :slug,
		    destination_id = :destination_id,
		    teaser = :teaser,
		    card_image_url = :card_image_url,
		    hero_image_url = :hero_image_url,
		    duration_days = :duration_days,
		    group_size_max = :group_size_max,
		    base_price_cents = :base_price_cents,
		    currency = :currency,
		    tour_type_label = :tour_type_label,
		    is_service = :is_service,
		    updated_at = NOW()
		WHERE id = :id
	`

	args := map[string]any{
		"id":               trip.ID,
		"title":            trip.Title,
		"slug":             trip.Slug,
		"destination_id":   trip.DestinationID,
		"teaser":           trip.Teaser,
		"card_image_url":   nullString(trip.CardImageURL),
		"hero_image_url":   nullString(trip.HeroImageURL),
		"duration_days":    trip.DurationDays,
		"group_size_max":   trip.GroupSizeMax,
		"base_price_cents": trip.BasePriceCents,
		"currency":         trip.Currency,
		"tour_type_label":  trip.TourTypeLabel,
		"is_service":       trip.IsService,
	}

	result, err := r.db.NamedExecContext(ctx, query, args)
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
	return r.FindByID(ctx, trip.ID)
}

func (r *TripRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	const query = `
		SELECT ` + tripColumns + `
		FROM trip t
		JOIN destination d ON d.id = t.destination_id
		WHERE t.id = $1
	`
	var trip domain.Trip
	if err := r.db.GetContext(ctx, &trip, query, id); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) FindBySlug(ctx context.Context, slug string) (*domain.Trip, error) {
	const query = `
		SELECT ` + tripColumns + `
		FROM trip t
		JOIN destination d ON d.id = t.destination_id
		WHERE t.slug = $1
	`
	var trip domain.Trip
	if err := r.db.GetContext(ctx, &trip, query, slug); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) FindByTitle(ctx context.Context, title string) (*domain.Trip, error) {
	const query = `
		SELECT ` + tripColumns + `
		FROM trip t
		JOIN destination d ON d.id = t.destination_id
		WHERE t.title = $1
	`
	var trip domain.Trip
	if err := r.db.GetContext(ctx, &trip, query, title); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) List(ctx context.Context, filter domain.TripListFilter) ([]domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trip t
		JOIN destination d ON d.id = t.destination_id
		WHERE 1 = 1
	`
	params := make([]any, 0, 2)

	if !filter.IncludeServices {
		query += ` AND t.is_service = FALSE`
	}
	if filter.DestinationSlug != "" {
		params = append(params, filter.DestinationSlug)
		query += ` AND (d.slug = $1 OR EXISTS (
			SELECT 1 FROM trip_additional_destination tad
			JOIN destination ad ON ad.id = tad.destination_id
			WHERE tad.trip_id = t.id AND ad.slug = $1
		))`
	}
	query += ` ORDER BY t.title ASC`

	trips := make([]domain.Trip, 0)
	if err := r.db.SelectContext(ctx, &trips, query, params...); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Trip, error) {
	if len(ids) == 0 {
		return []domain.Trip{}, nil
	}
	const query = `
		SELECT ` + tripColumns + `
		FROM trip t
		JOIN destination d ON d.id = t.destination_id
		WHERE t.id = ANY($1)
		ORDER BY t.title ASC
	`
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}
	trips := make([]domain.Trip, 0, len(ids))
	if err := r.db.SelectContext(ctx, &trips, query, pq.StringArray(idStrings)); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) ListOthers(ctx context.Context, excludeID uuid.UUID, limit int) ([]domain.Trip, error) {
	const query = `
		SELECT ` + tripColumns + `
		FROM trip t
		JOIN destination d ON d.id = t.destination_id
		WHERE t.id <> $1 AND t.is_service = FALSE
		ORDER BY t.created_at DESC
		LIMIT $2
	`
	trips := make([]domain.Trip, 0, limit)
	if err := r.db.SelectContext(ctx, &trips, query, excludeID, limit); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM trip WHERE slug = $1)`, slug); err != nil {
		return false, err
	}
	return exists, nil
}

// AdjustBasePrices shifts base_price_cents for the given trips, or for every
// trip when tripIDs is empty. Prices never drop below zero.
func (r *TripRepository) AdjustBasePrices(ctx context.Context, tripIDs []uuid.UUID, deltaCents int64) (int, error) {
	var (
		result sql.Result
		err    error
	)
	if len(tripIDs) == 0 {
		result, err = r.db.ExecContext(ctx, `
			UPDATE trip
			SET base_price_cents = GREATEST(base_price_cents + $1, 0),
			    updated_at = NOW()
		`, deltaCents)
	} else {
		idStrings := make([]string, 0, len(tripIDs))
		for _, id := range tripIDs {
			idStrings = append(idStrings, id.String())
		}
		result, err = r.db.ExecContext(ctx, `
			UPDATE trip
			SET base_price_cents = GREATEST(base_price_cents + $1, 0),
			    updated_at = NOW()
			WHERE id = ANY($2)
		`, deltaCents, pq.StringArray(idStrings))
	}
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *TripRepository) Content(ctx context.Context, tripID uuid.UUID) (*domain.TripContent, error) {
	trip, err := r.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	content := domain.TripContent{Trip: *trip}

	if err = r.db.SelectContext(ctx, &content.Highlights, `
		SELECT id, trip_id, text, position
		FROM trip_highlight WHERE trip_id = $1 ORDER BY position ASC
	`, tripID); err != nil {
		return nil, err
	}

	var about domain.TripAbout
	err = r.db.GetContext(ctx, &about, `
		SELECT trip_id, body FROM trip_about WHERE trip_id = $1
	`, tripID)
	switch {
	case err == nil:
		content.About = &about
	case errors.Is(err, sql.ErrNoRows):
	default:
		return nil, err
	}

	if err = r.db.SelectContext(ctx, &content.ItineraryDays, `
		SELECT id, trip_id, day_number, title
		FROM trip_itinerary_day WHERE trip_id = $1 ORDER BY day_number ASC
	`, tripID); err != nil {
		return nil, err
	}
	for i := range content.ItineraryDays {
		if err = r.db.SelectContext(ctx, &content.ItineraryDays[i].Steps, `
			SELECT id, day_id, time_label, title, description, position
			FROM trip_itinerary_step WHERE day_id = $1 ORDER BY position ASC
		`, content.ItineraryDays[i].ID); err != nil {
			return nil, err
		}
	}

	if err = r.db.SelectContext(ctx, &content.Inclusions, `
		SELECT id, trip_id, text, position
		FROM trip_inclusion WHERE trip_id = $1 ORDER BY position ASC
	`, tripID); err != nil {
		return nil, err
	}
	if err = r.db.SelectContext(ctx, &content.Exclusions, `
		SELECT id, trip_id, text, position
		FROM trip_exclusion WHERE trip_id = $1 ORDER BY position ASC
	`, tripID); err != nil {
		return nil, err
	}
	if err = r.db.SelectContext(ctx, &content.FAQs, `
		SELECT id, trip_id, question, answer, position
		FROM trip_faq WHERE trip_id = $1 ORDER BY position ASC
	`, tripID); err != nil {
		return nil, err
	}
	if err = r.db.SelectContext(ctx, &content.Extras, `
		SELECT id, trip_id, name, price_cents, position
		FROM trip_extra WHERE trip_id = $1 ORDER BY position ASC
	`, tripID); err != nil {
		return nil, err
	}
	if err = r.db.SelectContext(ctx, &content.Reviews, `
		SELECT id, trip_id, rating, title, body, author_name, created_at
		FROM review WHERE trip_id = $1 ORDER BY created_at DESC
	`, tripID); err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *TripRepository) ReplaceHighlights(ctx context.Context, tripID uuid.UUID, items []domain.TripHighlight) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM trip_highlight WHERE trip_id = $1`, tripID); err != nil {
			return err
		}
		for i, item := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trip_highlight (trip_id, text, position) VALUES ($1, $2, $3)
			`, tripID, item.Text, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TripRepository) UpsertAbout(ctx context.Context, tripID uuid.UUID, body string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trip_about (trip_id, body) VALUES ($1, $2)
		ON CONFLICT (trip_id) DO UPDATE SET body = EXCLUDED.body
	`, tripID, body)
	return err
}

func (r *TripRepository) ReplaceItinerary(ctx context.Context, tripID uuid.UUID, days []domain.TripItineraryDay) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM trip_itinerary_step
			WHERE day_id IN (SELECT id FROM trip_itinerary_day WHERE trip_id = $1)
		`, tripID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM trip_itinerary_day WHERE trip_id = $1`, tripID); err != nil {
			return err
		}
		for _, day := range days {
			var dayID uuid.UUID
			if err := tx.GetContext(ctx, &dayID, `
				INSERT INTO trip_itinerary_day (trip_id, day_number, title)
				VALUES ($1, $2, $3)
				RETURNING id
			`, tripID, day.DayNumber, day.Title); err != nil {
				return err
			}
			for i, step := range day.Steps {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO trip_itinerary_step (day_id, time_label, title, description, position)
					VALUES ($1, $2, $3, $4, $5)
				`, dayID, nullString(step.TimeLabel), step.Title, nullString(step.Description), i); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *TripRepository) ReplaceInclusions(ctx context.Context, tripID uuid.UUID, items []domain.TripInclusion) error {
	return r.replacePositioned(ctx, tripID, "trip_inclusion", func(tx *sqlx.Tx) error {
		for i, item := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trip_inclusion (trip_id, text, position) VALUES ($1, $2, $3)
			`, tripID, item.Text, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TripRepository) ReplaceExclusions(ctx context.Context, tripID uuid.UUID, items []domain.TripExclusion) error {
	return r.replacePositioned(ctx, tripID, "trip_exclusion", func(tx *sqlx.Tx) error {
		for i, item := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trip_exclusion (trip_id, text, position) VALUES ($1, $2, $3)
			`, tripID, item.Text, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TripRepository) ReplaceFAQs(ctx context.Context, tripID uuid.UUID, items []domain.TripFAQ) error {
	return r.replacePositioned(ctx, tripID, "trip_faq", func(tx *sqlx.Tx) error {
		for i, item := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trip_faq (trip_id, question, answer, position) VALUES ($1, $2, $3, $4)
			`, tripID, item.Question, nullString(item.Answer), i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TripRepository) ReplaceExtras(ctx context.Context, tripID uuid.UUID, items []domain.TripExtra) error {
	return r.replacePositioned(ctx, tripID, "trip_extra", func(tx *sqlx.Tx) error {
		for i, item := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trip_extra (trip_id, name, price_cents, position) VALUES ($1, $2, $3, $4)
			`, tripID, item.Name, item.PriceCents, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TripRepository) SetAdditionalDestinations(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM trip_additional_destination WHERE trip_id = $1`, tripID); err != nil {
			return err
		}
		for _, destID := range destinationIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trip_additional_destination (trip_id, destination_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, tripID, destID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TripRepository) ListRelations(ctx context.Context, fromTripID uuid.UUID) ([]domain.TripRelation, error) {
	const query = `
		SELECT id, from_trip_id, to_trip_id, position
		FROM trip_relation
		WHERE from_trip_id = $1
		ORDER BY position ASC
	`
	relations := make([]domain.TripRelation, 0)
	if err := r.db.SelectContext(ctx, &relations, query, fromTripID); err != nil {
		return nil, err
	}
	return relations, nil
}

func (r *TripRepository) ListExtras(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) ([]domain.TripExtra, error) {
	if len(ids) == 0 {
		return []domain.TripExtra{}, nil
	}
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}
	const query = `
		SELECT id, trip_id, name, price_cents, position
		FROM trip_extra
		WHERE trip_id = $1 AND id = ANY($2)
		ORDER BY position ASC
	`
	extras := make([]domain.TripExtra, 0, len(ids))
	if err := r.db.SelectContext(ctx, &extras, query, tripID, pq.StringArray(idStrings)); err != nil {
		return nil, err
	}
	return extras, nil
}

func (r *TripRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *TripRepository) replacePositioned(ctx context.Context, tripID uuid.UUID, table string, insert func(tx *sqlx.Tx) error) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE trip_id = $1`, tripID); err != nil {
			return err
		}
		return insert(tx)
	})
}

var _ ports.TripRepository = (*TripRepository)(nil)
