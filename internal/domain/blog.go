package domain

import (
	"time"

	"github.com/google/uuid"
)

type BlogPostStatus string

const (
	BlogPostStatusDraft     BlogPostStatus = "draft"
	BlogPostStatusScheduled BlogPostStatus = "scheduled"
	BlogPostStatusPublished BlogPostStatus = "published"
)

type BlogCategory struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
}

type BlogPost struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	Title           string         `db:"title" json:"title"`
	Subtitle        *string        `db:"subtitle" json:"subtitle,omitempty"`
	Slug            string         `db:"slug" json:"slug"`
	CategoryID      uuid.UUID      `db:"category_id" json:"category_id"`
	HeroImageURL    *string        `db:"hero_image_url" json:"hero_image_url,omitempty"`
	CardImageURL    *string        `db:"card_image_url" json:"card_image_url,omitempty"`
	Excerpt         *string        `db:"excerpt" json:"excerpt,omitempty"`
	Intro           *string        `db:"intro" json:"intro,omitempty"`
	Status          BlogPostStatus `db:"status" json:"status"`
	PublishedAt     *time.Time     `db:"published_at" json:"published_at,omitempty"`
	ReadTimeMinutes *int           `db:"read_time_minutes" json:"read_time_minutes,omitempty"`
	SeoTitle        *string        `db:"seo_title" json:"seo_title,omitempty"`
	SeoDescription  *string        `db:"seo_description" json:"seo_description,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`

	CategoryName *string       `db:"category_name" json:"category_name,omitempty"`
	Sections     []BlogSection `json:"sections,omitempty"`
}

func (p BlogPost) IsPublished(now time.Time) bool {
	if p.Status != BlogPostStatusPublished {
		return false
	}
	if p.PublishedAt == nil {
		return false
	}
	return !p.PublishedAt.After(now)
}

func (p BlogPost) PagePath() string {
	if p.Slug == "" {
		return ""
	}
	return "/blog/" + p.Slug + "/"
}

type BlogSection struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PostID          uuid.UUID `db:"post_id" json:"post_id"`
	Position        int       `db:"position" json:"position"`
	Heading         string    `db:"heading" json:"heading"`
	LocationLabel   *string   `db:"location_label" json:"location_label,omitempty"`
	Body            string    `db:"body" json:"body"`
	SectionImageURL *string   `db:"section_image_url" json:"section_image_url,omitempty"`
}
