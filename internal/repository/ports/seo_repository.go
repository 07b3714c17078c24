package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type SeoRepository interface {
	FindEntryByObject(ctx context.Context, pageType domain.PageType, objectID uuid.UUID) (*domain.SeoEntry, error)
	FindEntryByPageCode(ctx context.Context, pageType domain.PageType, pageCode string) (*domain.SeoEntry, error)
	FindEntryByPath(ctx context.Context, pageType domain.PageType, path string) (*domain.SeoEntry, error)
	FindEntryByID(ctx context.Context, id uuid.UUID) (*domain.SeoEntry, error)
	ListEntries(ctx context.Context, filter domain.SeoEntryFilter) ([]domain.SeoEntry, int, error)
	CreateEntry(ctx context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error)
	UpdateEntry(ctx context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error)

	ListActiveFAQs(ctx context.Context, entryID uuid.UUID) ([]domain.SeoFaq, error)
	ListActiveSnippets(ctx context.Context, entryID uuid.UUID, placement domain.SnippetPlacement) ([]domain.SeoSnippet, error)
	ReplaceFAQs(ctx context.Context, entryID uuid.UUID, faqs []domain.SeoFaq) error
	ReplaceSnippets(ctx context.Context, entryID uuid.UUID, snippets []domain.SeoSnippet) error

	FindRedirect(ctx context.Context, fromPath string) (*domain.SeoRedirect, error)
	UpsertRedirect(ctx context.Context, redirect *domain.SeoRedirect) (*domain.SeoRedirect, error)
	ListRedirectsForEntry(ctx context.Context, entryID uuid.UUID) ([]domain.SeoRedirect, error)
	DeleteRedirect(ctx context.Context, id uuid.UUID) error
}
