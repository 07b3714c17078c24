package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

type SiteRepository struct {
	db *sqlx.DB
}

func NewSiteRepo(db *sqlx.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) GetConfiguration(ctx context.Context) (*domain.SiteConfiguration, error) {
	const query = `
		SELECT id, hero_title, hero_subtitle, hero_primary_cta_label,
		       hero_primary_cta_href, hero_secondary_cta_label,
		       hero_secondary_cta_href, hero_image_url, hero_video_url,
		       trips_hero_image_url, updated_at
		FROM site_configuration
		WHERE id = 1
	`
	var cfg domain.SiteConfiguration
	err := r.db.GetContext(ctx, &cfg, query)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err = r.db.ExecContext(ctx, `
			INSERT INTO site_configuration (id) VALUES (1)
			ON CONFLICT (id) DO NOTHING
		`); err != nil {
			return nil, err
		}
		err = r.db.GetContext(ctx, &cfg, query)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *SiteRepository) GetBookingEmailSettings(ctx context.Context) (*domain.BookingEmailSettings, error) {
	const query = `
		SELECT id, is_enabled, from_email, cc_addresses, bcc_addresses,
		       reply_to_email, subject_template, body_text_template,
		       body_html_template, updated_at
		FROM booking_email_settings
		WHERE id = 1
	`
	var settings domain.BookingEmailSettings
	err := r.db.GetContext(ctx, &settings, query)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err = r.db.ExecContext(ctx, `
			INSERT INTO booking_email_settings (id) VALUES (1)
			ON CONFLICT (id) DO NOTHING
		`); err != nil {
			return nil, err
		}
		err = r.db.GetContext(ctx, &settings, query)
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

var _ ports.SiteRepository = (*SiteRepository)(nil)
