package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type BlogRepository interface {
	CreateCategory(ctx context.Context, category *domain.BlogCategory) (*domain.BlogCategory, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*domain.BlogCategory, error)

	CreatePost(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error)
	UpdatePost(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error)
	FindPostByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	FindPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	FindPostByTitle(ctx context.Context, title string) (*domain.BlogPost, error)
	ListPublished(ctx context.Context, limit, offset int) ([]domain.BlogPost, error)
	ListAll(ctx context.Context) ([]domain.BlogPost, error)
	PostSlugExists(ctx context.Context, slug string) (bool, error)

	ReplaceSections(ctx context.Context, postID uuid.UUID, sections []domain.BlogSection) error
	ListSections(ctx context.Context, postID uuid.UUID) ([]domain.BlogSection, error)
}
