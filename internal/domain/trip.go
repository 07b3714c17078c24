package domain

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Slug           string    `db:"slug" json:"slug"`
	DestinationID  uuid.UUID `db:"destination_id" json:"destination_id"`
	Teaser         string    `db:"teaser" json:"teaser"`
	CardImageURL   *string   `db:"card_image_url" json:"card_image_url,omitempty"`
	HeroImageURL   *string   `db:"hero_image_url" json:"hero_image_url,omitempty"`
	DurationDays   int       `db:"duration_days" json:"duration_days"`
	GroupSizeMax   int       `db:"group_size_max" json:"group_size_max"`
	BasePriceCents int64     `db:"base_price_cents" json:"base_price_cents"`
	Currency       string    `db:"currency" json:"currency"`
	TourTypeLabel  string    `db:"tour_type_label" json:"tour_type_label"`
	IsService      bool      `db:"is_service" json:"is_service"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`

	// Joined columns, populated on list queries.
	DestinationName *string `db:"destination_name" json:"destination_name,omitempty"`

	AdditionalDestinationIDs []uuid.UUID `json:"additional_destination_ids,omitempty"`
	CategoryTags             []string    `json:"category_tags,omitempty"`
	Languages                []Language  `json:"languages,omitempty"`
}

func (t Trip) PagePath() string {
	if t.Slug == "" {
		return ""
	}
	return "/trips/" + t.Slug + "/"
}

type Language struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	Code string    `db:"code" json:"code"`
}

type TripCategory struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	Slug string    `db:"slug" json:"slug"`
}

type TripHighlight struct {
	ID       uuid.UUID `db:"id" json:"id"`
	TripID   uuid.UUID `db:"trip_id" json:"trip_id"`
	Text     string    `db:"text" json:"text"`
	Position int       `db:"position" json:"position"`
}

type TripAbout struct {
	TripID uuid.UUID `db:"trip_id" json:"trip_id"`
	Body   string    `db:"body" json:"body"`
}

type TripItineraryDay struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TripID    uuid.UUID `db:"trip_id" json:"trip_id"`
	DayNumber int       `db:"day_number" json:"day_number"`
	Title     string    `db:"title" json:"title"`

	Steps []TripItineraryStep `json:"steps,omitempty"`
}

type TripItineraryStep struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DayID       uuid.UUID `db:"day_id" json:"day_id"`
	TimeLabel   *string   `db:"time_label" json:"time_label,omitempty"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Position    int       `db:"position" json:"position"`
}

type TripInclusion struct {
	ID       uuid.UUID `db:"id" json:"id"`
	TripID   uuid.UUID `db:"trip_id" json:"trip_id"`
	Text     string    `db:"text" json:"text"`
	Position int       `db:"position" json:"position"`
}

type TripExclusion struct {
	ID       uuid.UUID `db:"id" json:"id"`
	TripID   uuid.UUID `db:"trip_id" json:"trip_id"`
	Text     string    `db:"text" json:"text"`
	Position int       `db:"position" json:"position"`
}

type TripFAQ struct {
	ID       uuid.UUID `db:"id" json:"id"`
	TripID   uuid.UUID `db:"trip_id" json:"trip_id"`
	Question string    `db:"question" json:"question"`
	Answer   *string   `db:"answer" json:"answer,omitempty"`
	Position int       `db:"position" json:"position"`
}

type TripExtra struct {
	ID         uuid.UUID `db:"id" json:"id"`
	TripID     uuid.UUID `db:"trip_id" json:"trip_id"`
	Name       string    `db:"name" json:"name"`
	PriceCents int64     `db:"price_cents" json:"price_cents"`
	Position   int       `db:"position" json:"position"`
}

// TripRelation is the manual curation behind "you may also like".
type TripRelation struct {
	ID       uuid.UUID `db:"id" json:"id"`
	FromTrip uuid.UUID `db:"from_trip_id" json:"from_trip_id"`
	ToTrip   uuid.UUID `db:"to_trip_id" json:"to_trip_id"`
	Position int       `db:"position" json:"position"`
}

// TripContent bundles everything the detail page renders.
type TripContent struct {
	Trip          Trip               `json:"trip"`
	Highlights    []TripHighlight    `json:"highlights"`
	About         *TripAbout         `json:"about,omitempty"`
	ItineraryDays []TripItineraryDay `json:"itinerary_days"`
	Inclusions    []TripInclusion    `json:"inclusions"`
	Exclusions    []TripExclusion    `json:"exclusions"`
	FAQs          []TripFAQ          `json:"faqs"`
	Extras        []TripExtra        `json:"extras"`
	Reviews       []Review           `json:"reviews"`
}

type TripListFilter struct {
	DestinationSlug string
	IncludeServices bool
}

type Review struct {
	ID         uuid.UUID `db:"id" json:"id"`
	TripID     uuid.UUID `db:"trip_id" json:"trip_id"`
	Rating     int       `db:"rating" json:"rating"`
	Title      *string   `db:"title" json:"title,omitempty"`
	Body       string    `db:"body" json:"body"`
	AuthorName string    `db:"author_name" json:"author_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
