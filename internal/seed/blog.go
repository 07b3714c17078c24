package seed

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ghodss/yaml"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/util"
)

// blogFile is the YAML schema a blog seed file follows. One file per post.
type blogFile struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle"`
	Category struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"category"`
	HeroImageURL    *string `json:"hero_image_url"`
	CardImageURL    *string `json:"card_image_url"`
	Excerpt         *string `json:"excerpt"`
	Intro           *string `json:"intro"`
	Status          string  `json:"status"`
	PublishedAt     *string `json:"published_at"`
	ReadTimeMinutes *int    `json:"read_time_minutes"`
	SeoTitle        *string `json:"seo_title"`
	SeoDescription  *string `json:"seo_description"`
	Sections        []struct {
		Heading       string  `json:"heading"`
		LocationLabel *string `json:"location_label"`
		Body          string  `json:"body"`
		ImageURL      *string `json:"image_url"`
	} `json:"sections"`
}

// SeedBlog loads every YAML file under dir and upserts one post per file,
// keyed on title. Categories are get-or-create by slug.
func (s *Seeder) SeedBlog(ctx context.Context, dir string) (UpsertResult, error) {
	var result UpsertResult

	files, err := listYAMLFiles(dir)
	if err != nil {
		return result, err
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("seed blog: read %s: %v", file, err)
			result.Skipped++
			continue
		}
		var spec blogFile
		if err := yaml.Unmarshal(data, &spec); err != nil {
			log.Printf("seed blog: parse %s: %v", file, err)
			result.Skipped++
			continue
		}
		if strings.TrimSpace(spec.Title) == "" {
			log.Printf("seed blog: %s has no title, skipping", file)
			result.Skipped++
			continue
		}

		category, err := s.ensureCategory(ctx, spec.Category.Name, spec.Category.Slug)
		if err != nil {
			log.Printf("seed blog: %s: category: %v", file, err)
			result.Skipped++
			continue
		}

		post, created, err := s.upsertPost(ctx, spec, category)
		if err != nil {
			log.Printf("seed blog: %s: %v", file, err)
			result.Skipped++
			continue
		}

		sections := make([]domain.BlogSection, 0, len(spec.Sections))
		for i, section := range spec.Sections {
			sections = append(sections, domain.BlogSection{
				Position:        i,
				Heading:         section.Heading,
				LocationLabel:   section.LocationLabel,
				Body:            section.Body,
				SectionImageURL: section.ImageURL,
			})
		}
		if err := s.Blog.ReplaceSections(ctx, post.ID, sections); err != nil {
			return result, err
		}

		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func (s *Seeder) ensureCategory(ctx context.Context, name, slug string) (*domain.BlogCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Travel"
	}
	if strings.TrimSpace(slug) == "" {
		slug = util.Slugify(name)
	}
	if existing, err := s.Blog.FindCategoryBySlug(ctx, slug); err == nil {
		return existing, nil
	}
	return s.Blog.CreateCategory(ctx, &domain.BlogCategory{Name: name, Slug: slug})
}

func (s *Seeder) upsertPost(ctx context.Context, spec blogFile, category *domain.BlogCategory) (*domain.BlogPost, bool, error) {
	status := domain.BlogPostStatus(strings.ToLower(strings.TrimSpace(spec.Status)))
	switch status {
	case domain.BlogPostStatusDraft, domain.BlogPostStatusScheduled, domain.BlogPostStatusPublished:
	default:
		status = domain.BlogPostStatusPublished
	}

	var publishedAt *time.Time
	if spec.PublishedAt != nil && strings.TrimSpace(*spec.PublishedAt) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*spec.PublishedAt))
		if err != nil {
			return nil, false, err
		}
		publishedAt = &parsed
	} else if status == domain.BlogPostStatusPublished {
		now := time.Now().UTC()
		publishedAt = &now
	}

	existing, err := s.Blog.FindPostByTitle(ctx, spec.Title)
	if err == nil {
		existing.Subtitle = spec.Subtitle
		existing.CategoryID = category.ID
		existing.HeroImageURL = spec.HeroImageURL
		existing.CardImageURL = spec.CardImageURL
		existing.Excerpt = spec.Excerpt
		existing.Intro = spec.Intro
		existing.Status = status
		existing.PublishedAt = publishedAt
		existing.ReadTimeMinutes = spec.ReadTimeMinutes
		existing.SeoTitle = spec.SeoTitle
		existing.SeoDescription = spec.SeoDescription
		updated, err := s.Blog.UpdatePost(ctx, existing)
		return updated, false, err
	}

	var slugErr error
	slug := util.UniqueSlug(spec.Title, func(candidate string) bool {
		exists, existsErr := s.Blog.PostSlugExists(ctx, candidate)
		if existsErr != nil {
			slugErr = existsErr
			return false
		}
		return exists
	})
	if slugErr != nil {
		return nil, false, slugErr
	}

	created, err := s.Blog.CreatePost(ctx, &domain.BlogPost{
		Title:           spec.Title,
		Subtitle:        spec.Subtitle,
		Slug:            slug,
		CategoryID:      category.ID,
		HeroImageURL:    spec.HeroImageURL,
		CardImageURL:    spec.CardImageURL,
		Excerpt:         spec.Excerpt,
		Intro:           spec.Intro,
		Status:          status,
		PublishedAt:     publishedAt,
		ReadTimeMinutes: spec.ReadTimeMinutes,
		SeoTitle:        spec.SeoTitle,
		SeoDescription:  spec.SeoDescription,
	})
	return created, true, err
}
