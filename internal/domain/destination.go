package domain

import (
	"time"

	"github.com/google/uuid"
)

// AllowedDestinationNames mirrors the fixed catalogue of locations the agency
// operates in. Seeding and validation both check against this list.
var AllowedDestinationNames = []string{
	"Siwa",
	"Fayoum",
	"White & Black Desert",
	"Farafra",
	"Dakhla",
	"Kharga",
	"Bahareya Oasis",
	"Giza",
	"Cairo",
	"Alexandria",
	"Ain El Sokhna",
	"Sinai",
	"Luxor",
	"Aswan",
}

func IsAllowedDestinationName(name string) bool {
	for _, allowed := range AllowedDestinationNames {
		if allowed == name {
			return true
		}
	}
	return false
}

type Destination struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Slug             string    `db:"slug" json:"slug"`
	Tagline          *string   `db:"tagline" json:"tagline,omitempty"`
	Description      *string   `db:"description" json:"description,omitempty"`
	CardImageURL     *string   `db:"card_image_url" json:"card_image_url,omitempty"`
	HeroImageURL     *string   `db:"hero_image_url" json:"hero_image_url,omitempty"`
	HeroSubtitle     *string   `db:"hero_subtitle" json:"hero_subtitle,omitempty"`
	IsFeatured       bool      `db:"is_featured" json:"is_featured"`
	FeaturedPosition int       `db:"featured_position" json:"featured_position"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`

	Gallery []DestinationGalleryImage `json:"gallery,omitempty"`
}

// PagePath is the public path the destination landing page is served from. The
// same string feeds both routing and SEO entry backfill so they never drift.
func (d Destination) PagePath() string {
	if d.Slug == "" {
		return ""
	}
	return "/destinations/" + d.Slug + "/page/"
}

type DestinationGalleryImage struct {
	ID            uuid.UUID `db:"id" json:"id"`
	DestinationID uuid.UUID `db:"destination_id" json:"destination_id"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	Caption       *string   `db:"caption" json:"caption,omitempty"`
	Position      int       `db:"position" json:"position"`
	Width         *int      `db:"width" json:"width,omitempty"`
	Height        *int      `db:"height" json:"height,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
