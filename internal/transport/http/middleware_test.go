package http

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
)

// redirectOnlySeoRepo backs a SeoService whose only populated table is the
// redirect map. Everything else misses.
type redirectOnlySeoRepo struct {
	redirects map[string]*domain.SeoRedirect
}

func (m *redirectOnlySeoRepo) FindEntryByObject(_ context.Context, _ domain.PageType, _ uuid.UUID) (*domain.SeoEntry, error) {
	return nil, sql.ErrNoRows
}
func (m *redirectOnlySeoRepo) FindEntryByPageCode(_ context.Context, _ domain.PageType, _ string) (*domain.SeoEntry, error) {
	return nil, sql.ErrNoRows
}
func (m *redirectOnlySeoRepo) FindEntryByPath(_ context.Context, _ domain.PageType, _ string) (*domain.SeoEntry, error) {
	return nil, sql.ErrNoRows
}
func (m *redirectOnlySeoRepo) FindEntryByID(_ context.Context, _ uuid.UUID) (*domain.SeoEntry, error) {
	return nil, sql.ErrNoRows
}
func (m *redirectOnlySeoRepo) ListEntries(_ context.Context, _ domain.SeoEntryFilter) ([]domain.SeoEntry, int, error) {
	return nil, 0, nil
}
func (m *redirectOnlySeoRepo) CreateEntry(_ context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error) {
	return entry, nil
}
func (m *redirectOnlySeoRepo) UpdateEntry(_ context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error) {
	return entry, nil
}
func (m *redirectOnlySeoRepo) ListActiveFAQs(_ context.Context, _ uuid.UUID) ([]domain.SeoFaq, error) {
	return nil, nil
}
func (m *redirectOnlySeoRepo) ListActiveSnippets(_ context.Context, _ uuid.UUID, _ domain.SnippetPlacement) ([]domain.SeoSnippet, error) {
	return nil, nil
}
func (m *redirectOnlySeoRepo) ReplaceFAQs(_ context.Context, _ uuid.UUID, _ []domain.SeoFaq) error {
	return nil
}
func (m *redirectOnlySeoRepo) ReplaceSnippets(_ context.Context, _ uuid.UUID, _ []domain.SeoSnippet) error {
	return nil
}
func (m *redirectOnlySeoRepo) FindRedirect(_ context.Context, fromPath string) (*domain.SeoRedirect, error) {
	redirect, ok := m.redirects[fromPath]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return redirect, nil
}
func (m *redirectOnlySeoRepo) UpsertRedirect(_ context.Context, redirect *domain.SeoRedirect) (*domain.SeoRedirect, error) {
	return redirect, nil
}
func (m *redirectOnlySeoRepo) ListRedirectsForEntry(_ context.Context, _ uuid.UUID) ([]domain.SeoRedirect, error) {
	return nil, nil
}
func (m *redirectOnlySeoRepo) DeleteRedirect(_ context.Context, _ uuid.UUID) error {
	return nil
}

func redirectTestServer(redirects map[string]*domain.SeoRedirect) *echo.Echo {
	seo := service.NewSeoService(&redirectOnlySeoRepo{redirects: redirects}, nil, nil, nil, "")
	e := echo.New()
	e.Use(SeoRedirect(seo))
	e.GET("/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "page")
	})
	return e
}

func TestSeoRedirectPermanent(t *testing.T) {
	e := redirectTestServer(map[string]*domain.SeoRedirect{
		"/old-trips/": {ID: uuid.New(), FromPath: "/old-trips/", ToPath: "/trips/", IsPermanent: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/old-trips/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/trips/" {
		t.Fatalf("expected Location /trips/, got %q", loc)
	}
}

func TestSeoRedirectTemporaryPreservesQuery(t *testing.T) {
	e := redirectTestServer(map[string]*domain.SeoRedirect{
		"/deals/": {ID: uuid.New(), FromPath: "/deals/", ToPath: "/trips/"},
	})

	req := httptest.NewRequest(http.MethodGet, "/deals/?utm_source=mail&ref=x", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/trips/?utm_source=mail&ref=x" {
		t.Fatalf("expected query to be carried over, got %q", loc)
	}
}

func TestSeoRedirectMissFallsThrough(t *testing.T) {
	e := redirectTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/trips/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected the handler to run, got %d", rec.Code)
	}
	if rec.Body.String() != "page" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestSeoRedirectIgnoresNonGet(t *testing.T) {
	seo := service.NewSeoService(&redirectOnlySeoRepo{redirects: map[string]*domain.SeoRedirect{
		"/old/": {ID: uuid.New(), FromPath: "/old/", ToPath: "/new/"},
	}}, nil, nil, nil, "")
	e := echo.New()
	e.Use(SeoRedirect(seo))
	e.POST("/old/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/old/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected the POST to pass through, got %d", rec.Code)
	}
}
