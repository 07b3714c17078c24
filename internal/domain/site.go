package domain

import (
	"time"

	"github.com/google/uuid"
)

// SiteConfiguration is a singleton row holding the homepage hero content.
type SiteConfiguration struct {
	ID                    int       `db:"id" json:"id"`
	HeroTitle             string    `db:"hero_title" json:"hero_title"`
	HeroSubtitle          string    `db:"hero_subtitle" json:"hero_subtitle"`
	HeroPrimaryCTALabel   string    `db:"hero_primary_cta_label" json:"hero_primary_cta_label"`
	HeroPrimaryCTAHref    string    `db:"hero_primary_cta_href" json:"hero_primary_cta_href"`
	HeroSecondaryCTALabel string    `db:"hero_secondary_cta_label" json:"hero_secondary_cta_label"`
	HeroSecondaryCTAHref  string    `db:"hero_secondary_cta_href" json:"hero_secondary_cta_href"`
	HeroImageURL          *string   `db:"hero_image_url" json:"hero_image_url,omitempty"`
	HeroVideoURL          *string   `db:"hero_video_url" json:"hero_video_url,omitempty"`
	TripsHeroImageURL     *string   `db:"trips_hero_image_url" json:"trips_hero_image_url,omitempty"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// BookingEmailSettings is a singleton row controlling the confirmation email.
// Subject and bodies are text/template sources rendered against the booking.
type BookingEmailSettings struct {
	ID               int       `db:"id" json:"id"`
	IsEnabled        bool      `db:"is_enabled" json:"is_enabled"`
	FromEmail        string    `db:"from_email" json:"from_email"`
	CCAddresses      string    `db:"cc_addresses" json:"cc_addresses"`
	BCCAddresses     string    `db:"bcc_addresses" json:"bcc_addresses"`
	ReplyToEmail     string    `db:"reply_to_email" json:"reply_to_email"`
	SubjectTemplate  string    `db:"subject_template" json:"subject_template"`
	BodyTextTemplate string    `db:"body_text_template" json:"body_text_template"`
	BodyHTMLTemplate string    `db:"body_html_template" json:"body_html_template"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type StaffUser struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
