package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PageType string

const (
	PageTypeTrip        PageType = "trip"
	PageTypeDestination PageType = "destination"
	PageTypeBlogPost    PageType = "blog_post"
	PageTypeStatic      PageType = "static"
)

func (t PageType) Valid() bool {
	switch t {
	case PageTypeTrip, PageTypeDestination, PageTypeBlogPost, PageTypeStatic:
		return true
	}
	return false
}

type SnippetPlacement string

const (
	SnippetPlacementHead SnippetPlacement = "head"
	SnippetPlacementBody SnippetPlacement = "body"
)

// StaticPagePaths maps non-model-backed page codes to their public paths.
var StaticPagePaths = map[string]string{
	"home":                 "/",
	"trips_list":           "/trips/",
	"blog_list":            "/blog/",
	"destinations_list":    "/destinations/",
	"sahari":               "/sahari/",
	"about":                "/about/",
	"contact":              "/contact/",
	"booking_terms":        "/booking-terms/",
	"cancellation_policy":  "/cancellation-policy/",
	"privacy_policy":       "/privacy-policy/",
	"health_safety":        "/health-safety/",
	"booking_cart_success": "/booking/cart/success/",
	"booking_success":      "/booking/success/",
	"booking_status":       "/booking/status/",
}

// StaticPageMeta carries the default title and indexability per page code.
var StaticPageMeta = map[string]struct {
	Title     string
	Indexable bool
}{
	"home":                 {"Home", true},
	"trips_list":           {"Trips", true},
	"blog_list":            {"Blog", true},
	"destinations_list":    {"Destinations", true},
	"sahari":               {"Sahari", true},
	"about":                {"About", true},
	"contact":              {"Contact", true},
	"booking_terms":        {"Booking Terms", true},
	"cancellation_policy":  {"Cancellation Policy", true},
	"privacy_policy":       {"Privacy Policy", true},
	"health_safety":        {"Health & Safety", true},
	"booking_cart_success": {"Booking Cart Success", false},
	"booking_success":      {"Booking Success", false},
	"booking_status":       {"Booking Status", false},
}

type SeoStatusFlags struct {
	Fallback           bool `json:"fallback,omitempty"`
	MissingTitle       bool `json:"missing_title,omitempty"`
	MissingDescription bool `json:"missing_description,omitempty"`
	MissingAlt         bool `json:"missing_alt,omitempty"`
	MissingCanonical   bool `json:"missing_canonical,omitempty"`
	Incomplete         bool `json:"incomplete,omitempty"`
}

// SeoEntry is a per-page metadata override row. Dynamic pages link via
// (page_type, object_id); static pages use page_code instead.
type SeoEntry struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PageType        PageType   `db:"page_type" json:"page_type"`
	ObjectID        *uuid.UUID `db:"object_id" json:"object_id,omitempty"`
	PageCode        *string    `db:"page_code" json:"page_code,omitempty"`
	Slug            *string    `db:"slug" json:"slug,omitempty"`
	Path            string     `db:"path" json:"path"`
	MetaTitle       *string    `db:"meta_title" json:"meta_title,omitempty"`
	MetaDescription *string    `db:"meta_description" json:"meta_description,omitempty"`
	MetaKeywords    *string    `db:"meta_keywords" json:"meta_keywords,omitempty"`
	AltText         *string    `db:"alt_text" json:"alt_text,omitempty"`
	MainImageURL    *string    `db:"main_image_url" json:"main_image_url,omitempty"`
	CanonicalURL    *string    `db:"canonical_url" json:"canonical_url,omitempty"`
	BodyOverride    *string    `db:"body_override" json:"body_override,omitempty"`
	IsIndexable     bool       `db:"is_indexable" json:"is_indexable"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`

	RedirectCount int `db:"redirect_count" json:"redirect_count,omitempty"`

	FAQs     []SeoFaq     `json:"faqs,omitempty"`
	Snippets []SeoSnippet `json:"snippets,omitempty"`
}

type SeoFaq struct {
	ID       uuid.UUID `db:"id" json:"id"`
	EntryID  uuid.UUID `db:"entry_id" json:"entry_id"`
	Question string    `db:"question" json:"question"`
	Answer   *string   `db:"answer" json:"answer,omitempty"`
	Position int       `db:"position" json:"position"`
	IsActive bool      `db:"is_active" json:"is_active"`
}

type SeoSnippet struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	EntryID   uuid.UUID        `db:"entry_id" json:"entry_id"`
	Name      string           `db:"name" json:"name"`
	Placement SnippetPlacement `db:"placement" json:"placement"`
	Value     string           `db:"value" json:"value"`
	Position  int              `db:"position" json:"position"`
	IsActive  bool             `db:"is_active" json:"is_active"`
}

type SeoRedirect struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	EntryID     *uuid.UUID `db:"entry_id" json:"entry_id,omitempty"`
	FromPath    string     `db:"from_path" json:"from_path"`
	ToPath      string     `db:"to_path" json:"to_path"`
	IsPermanent bool       `db:"is_permanent" json:"is_permanent"`
	Note        *string    `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ResolvedSeo is the unified payload handed to page rendering, whether it came
// from a persisted entry or a synthesized fallback.
type ResolvedSeo struct {
	Entry           *SeoEntry      `json:"entry,omitempty"`
	PageType        PageType       `json:"page_type"`
	Path            string         `json:"path"`
	MetaTitle       string         `json:"meta_title"`
	MetaDescription string         `json:"meta_description"`
	MetaKeywords    string         `json:"meta_keywords"`
	AltText         string         `json:"alt_text"`
	MainImageURL    string         `json:"main_image_url"`
	CanonicalURL    string         `json:"canonical_url"`
	BodyOverride    string         `json:"body_override"`
	IsIndexable     bool           `json:"is_indexable"`
	StatusFlags     SeoStatusFlags `json:"status_flags"`
}

type SeoEntryFilter struct {
	PageType       *PageType
	IncompleteOnly bool
	Search         string
	Limit          int
	Offset         int
}

// NormalizeSeoPath forces a leading slash and collapses interior double
// slashes so redirect and entry paths compare cleanly.
func NormalizeSeoPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path[1:], "//") {
		path = path[:1] + strings.ReplaceAll(path[1:], "//", "/")
	}
	return path
}
