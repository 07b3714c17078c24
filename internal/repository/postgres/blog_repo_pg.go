package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

const blogPostColumns = `
	p.id, p.title, p.subtitle, p.slug, p.category_id, p.hero_image_url,
	p.card_image_url, p.excerpt, p.intro, p.status, p.published_at,
	p.read_time_minutes, p.seo_title, p.seo_description, p.created_at,
	p.updated_at, c.name AS category_name
`

type BlogRepository struct {
	db *sqlx.DB
}

func NewBlogRepo(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) CreateCategory(ctx context.Context, category *domain.BlogCategory) (*domain.BlogCategory, error) {
	const query = `
		INSERT INTO blog_category (name, slug, description)
		VALUES (:name, :slug, :description)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug, description
	`
	args := map[string]any{
		"name":        category.Name,
		"slug":        category.Slug,
		"description": nullString(category.Description),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var created domain.BlogCategory
		if err = rows.StructScan(&created); err != nil {
			return nil, err
		}
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *BlogRepository) FindCategoryBySlug(ctx context.Context, slug string) (*domain.BlogCategory, error) {
	var category domain.BlogCategory
	if err := r.db.GetContext(ctx, &category, `
		SELECT id, name, slug, description FROM blog_category WHERE slug = $1
	`, slug); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *BlogRepository) CreatePost(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	const query = `
		INSERT INTO blog_post (
			title, subtitle, slug, category_id, hero_image_url, card_image_url,
			excerpt, intro, status, published_at, read_time_minutes,
			seo_title, seo_description
		) VALUES (
			:title, :subtitle, :slug, :category_id, :hero_image_url, :card_image_url,
			:excerpt, :intro, :status, :published_at, :read_time_minutes,
			:seo_title, :seo_description
		)
		RETURNING id
	`

	rows, err := r.db.NamedQueryContext(ctx, query, r.postArgs(post))
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
	return r.FindPostByID(ctx, id)
}

func (r *BlogRepository) UpdatePost(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	const query = `
		UPDATE blog_post
		SET title = :title,
		    subtitle = :subtitle,
		    slug = :slug,
		    category_id = :category_id,
		    hero_image_url = :hero_image_url,
		    card_image_url = :card_image_url,
		    excerpt = :excerpt,
		    intro = :intro,
		    status = :status,
		    published_at = :published_at,
		    read_time_minutes = :read_time_minutes,
		    seo_title = :seo_title,
		    seo_description = :seo_description,
		    updated_at = NOW()
		WHERE id = :id
	`

	args := r.postArgs(post)
	args["id"] = post.ID

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
	return r.FindPostByID(ctx, post.ID)
}

func (r *BlogRepository) postArgs(post *domain.BlogPost) map[string]any {
	return map[string]any{
		"title":             post.Title,
		"subtitle":          nullString(post.Subtitle),
		"slug":              post.Slug,
		"category_id":       post.CategoryID,
		"hero_image_url":    nullString(post.HeroImageURL),
		"card_image_url":    nullString(post.CardImageURL),
		"excerpt":           nullString(post.Excerpt),
		"intro":             nullString(post.Intro),
		"status":            post.Status,
		"published_at":      nullTime(post.PublishedAt),
		"read_time_minutes": nullInt(post.ReadTimeMinutes),
		"seo_title":         nullString(post.SeoTitle),
		"seo_description":   nullString(post.SeoDescription),
	}
}

func (r *BlogRepository) FindPostByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	const query = `
		SELECT ` + blogPostColumns + `
		FROM blog_post p
		JOIN blog_category c ON c.id = p.category_id
		WHERE p.id = $1
	`
	var post domain.BlogPost
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepository) FindPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	const query = `
		SELECT ` + blogPostColumns + `
		FROM blog_post p
		JOIN blog_category c ON c.id = p.category_id
		WHERE p.slug = $1
	`
	var post domain.BlogPost
	if err := r.db.GetContext(ctx, &post, query, slug); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepository) FindPostByTitle(ctx context.Context, title string) (*domain.BlogPost, error) {
	const query = `
		SELECT ` + blogPostColumns + `
		FROM blog_post p
		JOIN blog_category c ON c.id = p.category_id
		WHERE p.title = $1
	`
	var post domain.BlogPost
	if err := r.db.GetContext(ctx, &post, query, title); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.BlogPost, error) {
	const query = `
		SELECT ` + blogPostColumns + `
		FROM blog_post p
		JOIN blog_category c ON c.id = p.category_id
		WHERE p.status = 'published' AND p.published_at IS NOT NULL AND p.published_at <= NOW()
		ORDER BY p.published_at DESC
		LIMIT $1 OFFSET $2
	`
	posts := make([]domain.BlogPost, 0)
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *BlogRepository) ListAll(ctx context.Context) ([]domain.BlogPost, error) {
	const query = `
		SELECT ` + blogPostColumns + `
		FROM blog_post p
		JOIN blog_category c ON c.id = p.category_id
		ORDER BY p.created_at DESC
	`
	posts := make([]domain.BlogPost, 0)
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *BlogRepository) PostSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM blog_post WHERE slug = $1)`, slug); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BlogRepository) ReplaceSections(ctx context.Context, postID uuid.UUID, sections []domain.BlogSection) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM blog_section WHERE post_id = $1`, postID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for i, section := range sections {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO blog_section (post_id, position, heading, location_label, body, section_image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, postID, i, section.Heading, nullString(section.LocationLabel), section.Body, nullString(section.SectionImageURL)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *BlogRepository) ListSections(ctx context.Context, postID uuid.UUID) ([]domain.BlogSection, error) {
	const query = `
		SELECT id, post_id, position, heading, location_label, body, section_image_url
		FROM blog_section
		WHERE post_id = $1
		ORDER BY position ASC
	`
	sections := make([]domain.BlogSection, 0)
	if err := r.db.SelectContext(ctx, &sections, query, postID); err != nil {
		return nil, err
	}
	return sections, nil
}

var _ ports.BlogRepository = (*BlogRepository)(nil)
