package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

var ErrBlogPostNotFound = errors.New("blog post not found")

type BlogService struct {
	blog ports.BlogRepository
	now  func() time.Time
}

func NewBlogService(blogRepo ports.BlogRepository) *BlogService {
	return &BlogService{
		blog: blogRepo,
		now:  time.Now,
	}
}

func (s *BlogService) ListPublished(ctx context.Context, limit, offset int) ([]domain.BlogPost, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.blog.ListPublished(ctx, limit, offset)
}

// GetPublishedBySlug returns a post with its sections. Drafts and posts
// scheduled in the future read as not found.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	post, err := s.blog.FindPostBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	if !post.IsPublished(s.now()) {
		return nil, ErrBlogPostNotFound
	}

	sections, err := s.blog.ListSections(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Sections = sections
	return post, nil
}
