package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

type memorySeoRepo struct {
	entries   map[uuid.UUID]*domain.SeoEntry
	faqs      map[uuid.UUID][]domain.SeoFaq
	snippets  map[uuid.UUID][]domain.SeoSnippet
	redirects map[string]*domain.SeoRedirect
}

func newMemorySeoRepo() *memorySeoRepo {
	return &memorySeoRepo{
		entries:   make(map[uuid.UUID]*domain.SeoEntry),
		faqs:      make(map[uuid.UUID][]domain.SeoFaq),
		snippets:  make(map[uuid.UUID][]domain.SeoSnippet),
		redirects: make(map[string]*domain.SeoRedirect),
	}
}

func (m *memorySeoRepo) FindEntryByObject(_ context.Context, pageType domain.PageType, objectID uuid.UUID) (*domain.SeoEntry, error) {
	for _, entry := range m.entries {
		if entry.PageType == pageType && entry.ObjectID != nil && *entry.ObjectID == objectID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memorySeoRepo) FindEntryByPageCode(_ context.Context, pageType domain.PageType, pageCode string) (*domain.SeoEntry, error) {
	for _, entry := range m.entries {
		if entry.PageType == pageType && entry.PageCode != nil && *entry.PageCode == pageCode {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memorySeoRepo) FindEntryByPath(_ context.Context, pageType domain.PageType, path string) (*domain.SeoEntry, error) {
	for _, entry := range m.entries {
		if entry.PageType == pageType && entry.Path == path {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memorySeoRepo) FindEntryByID(_ context.Context, id uuid.UUID) (*domain.SeoEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *entry
	return &copied, nil
}

func (m *memorySeoRepo) ListEntries(_ context.Context, filter domain.SeoEntryFilter) ([]domain.SeoEntry, int, error) {
	var out []domain.SeoEntry
	for _, entry := range m.entries {
		out = append(out, *entry)
	}
	return out, len(out), nil
}

func (m *memorySeoRepo) CreateEntry(_ context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error) {
	stored := *entry
	stored.ID = uuid.New()
	m.entries[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (m *memorySeoRepo) UpdateEntry(_ context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error) {
	if _, ok := m.entries[entry.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	stored := *entry
	m.entries[entry.ID] = &stored
	copied := stored
	return &copied, nil
}

func (m *memorySeoRepo) ListActiveFAQs(_ context.Context, entryID uuid.UUID) ([]domain.SeoFaq, error) {
	return m.faqs[entryID], nil
}

func (m *memorySeoRepo) ListActiveSnippets(_ context.Context, entryID uuid.UUID, placement domain.SnippetPlacement) ([]domain.SeoSnippet, error) {
	var out []domain.SeoSnippet
	for _, snippet := range m.snippets[entryID] {
		if snippet.Placement == placement {
			out = append(out, snippet)
		}
	}
	return out, nil
}

func (m *memorySeoRepo) ReplaceFAQs(_ context.Context, entryID uuid.UUID, faqs []domain.SeoFaq) error {
	m.faqs[entryID] = faqs
	return nil
}

func (m *memorySeoRepo) ReplaceSnippets(_ context.Context, entryID uuid.UUID, snippets []domain.SeoSnippet) error {
	m.snippets[entryID] = snippets
	return nil
}

func (m *memorySeoRepo) FindRedirect(_ context.Context, fromPath string) (*domain.SeoRedirect, error) {
	redirect, ok := m.redirects[fromPath]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *redirect
	return &copied, nil
}

func (m *memorySeoRepo) UpsertRedirect(_ context.Context, redirect *domain.SeoRedirect) (*domain.SeoRedirect, error) {
	stored := *redirect
	if existing, ok := m.redirects[redirect.FromPath]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = uuid.New()
	}
	m.redirects[stored.FromPath] = &stored
	copied := stored
	return &copied, nil
}

func (m *memorySeoRepo) ListRedirectsForEntry(_ context.Context, entryID uuid.UUID) ([]domain.SeoRedirect, error) {
	var out []domain.SeoRedirect
	for _, redirect := range m.redirects {
		if redirect.EntryID != nil && *redirect.EntryID == entryID {
			out = append(out, *redirect)
		}
	}
	return out, nil
}

func (m *memorySeoRepo) DeleteRedirect(_ context.Context, id uuid.UUID) error {
	for path, redirect := range m.redirects {
		if redirect.ID == id {
			delete(m.redirects, path)
			return nil
		}
	}
	return sql.ErrNoRows
}

type memoryDestinationRepo struct {
	destinations []domain.Destination
}

func (m *memoryDestinationRepo) Create(_ context.Context, dest *domain.Destination) (*domain.Destination, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryDestinationRepo) Update(_ context.Context, dest *domain.Destination) (*domain.Destination, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryDestinationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Destination, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryDestinationRepo) FindBySlug(_ context.Context, slug string) (*domain.Destination, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryDestinationRepo) FindByName(_ context.Context, name string) (*domain.Destination, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryDestinationRepo) List(_ context.Context) ([]domain.Destination, error) {
	return m.destinations, nil
}
func (m *memoryDestinationRepo) ListFeatured(_ context.Context) ([]domain.Destination, error) {
	return nil, nil
}
func (m *memoryDestinationRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return false, nil
}
func (m *memoryDestinationRepo) AddGalleryImage(_ context.Context, image *domain.DestinationGalleryImage) (*domain.DestinationGalleryImage, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryDestinationRepo) ListGalleryImages(_ context.Context, destinationID uuid.UUID) ([]domain.DestinationGalleryImage, error) {
	return nil, nil
}
func (m *memoryDestinationRepo) ListGalleryImagesMissingDimensions(_ context.Context) ([]domain.DestinationGalleryImage, error) {
	return nil, nil
}
func (m *memoryDestinationRepo) SetGalleryImageDimensions(_ context.Context, imageID uuid.UUID, width, height int) error {
	return nil
}

type memoryBlogRepo struct {
	posts []domain.BlogPost
}

func (m *memoryBlogRepo) CreateCategory(_ context.Context, category *domain.BlogCategory) (*domain.BlogCategory, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryBlogRepo) FindCategoryBySlug(_ context.Context, slug string) (*domain.BlogCategory, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryBlogRepo) CreatePost(_ context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryBlogRepo) UpdatePost(_ context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryBlogRepo) FindPostByID(_ context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryBlogRepo) FindPostBySlug(_ context.Context, slug string) (*domain.BlogPost, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryBlogRepo) FindPostByTitle(_ context.Context, title string) (*domain.BlogPost, error) {
	return nil, sql.ErrNoRows
}
func (m *memoryBlogRepo) ListPublished(_ context.Context, limit, offset int) ([]domain.BlogPost, error) {
	return nil, nil
}
func (m *memoryBlogRepo) ListAll(_ context.Context) ([]domain.BlogPost, error) {
	return m.posts, nil
}
func (m *memoryBlogRepo) PostSlugExists(_ context.Context, slug string) (bool, error) {
	return false, nil
}
func (m *memoryBlogRepo) ReplaceSections(_ context.Context, postID uuid.UUID, sections []domain.BlogSection) error {
	return nil
}
func (m *memoryBlogRepo) ListSections(_ context.Context, postID uuid.UUID) ([]domain.BlogSection, error) {
	return nil, nil
}

func seoFixture() (*SeoService, *memorySeoRepo, *memoryTripRepo) {
	seoRepo := newMemorySeoRepo()
	tripRepo := newMemoryTripRepo()
	svc := NewSeoService(seoRepo, tripRepo, &memoryDestinationRepo{}, &memoryBlogRepo{}, "")
	return svc, seoRepo, tripRepo
}

func TestResolveForTripFallsBackWithoutEntry(t *testing.T) {
	svc, _, _ := seoFixture()
	hero := "https://cdn.example.com/siwa.webp"
	trip := domain.Trip{
		ID:           uuid.New(),
		Title:        "Siwa Oasis Escape",
		Slug:         "siwa-oasis-escape",
		Teaser:       "Five days in the western desert.",
		HeroImageURL: &hero,
	}

	resolved := svc.ResolveForTrip(context.Background(), trip)

	if !resolved.StatusFlags.Fallback {
		t.Fatal("expected fallback resolution")
	}
	if resolved.MetaTitle != trip.Title {
		t.Fatalf("expected title %q, got %q", trip.Title, resolved.MetaTitle)
	}
	if resolved.MetaDescription != trip.Teaser {
		t.Fatalf("expected teaser description, got %q", resolved.MetaDescription)
	}
	if resolved.CanonicalURL != "/trips/siwa-oasis-escape/" {
		t.Fatalf("expected canonical to default to the page path, got %q", resolved.CanonicalURL)
	}
	if resolved.MainImageURL != hero {
		t.Fatalf("expected hero image, got %q", resolved.MainImageURL)
	}
	if !resolved.IsIndexable {
		t.Fatal("expected fallback pages to stay indexable")
	}
}

func TestResolveAbsolutizesCanonicalWithBaseURL(t *testing.T) {
	seoRepo := newMemorySeoRepo()
	svc := NewSeoService(seoRepo, newMemoryTripRepo(), &memoryDestinationRepo{}, &memoryBlogRepo{}, "https://www.sandsky.travel/")
	trip := domain.Trip{ID: uuid.New(), Title: "Siwa Oasis Escape", Slug: "siwa-oasis-escape"}

	resolved := svc.ResolveForTrip(context.Background(), trip)
	if resolved.CanonicalURL != "https://www.sandsky.travel/trips/siwa-oasis-escape/" {
		t.Fatalf("expected absolute canonical, got %q", resolved.CanonicalURL)
	}

	canonical := "https://other.example.com/siwa/"
	if _, err := seoRepo.CreateEntry(context.Background(), &domain.SeoEntry{
		PageType:     domain.PageTypeTrip,
		ObjectID:     &trip.ID,
		Path:         "/trips/siwa-oasis-escape/",
		CanonicalURL: &canonical,
		IsIndexable:  true,
	}); err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}
	resolved = svc.ResolveForTrip(context.Background(), trip)
	if resolved.CanonicalURL != canonical {
		t.Fatalf("expected stored absolute canonical to pass through, got %q", resolved.CanonicalURL)
	}
}

func TestResolveForTripPrefersStoredEntry(t *testing.T) {
	svc, seoRepo, _ := seoFixture()
	trip := domain.Trip{ID: uuid.New(), Title: "Siwa Oasis Escape", Slug: "siwa-oasis-escape"}

	title := "Siwa Oasis Escape | SandSky Travel"
	entry, err := seoRepo.CreateEntry(context.Background(), &domain.SeoEntry{
		PageType:    domain.PageTypeTrip,
		ObjectID:    &trip.ID,
		Path:        "/trips/siwa-oasis-escape/",
		MetaTitle:   &title,
		IsIndexable: true,
	})
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}

	resolved := svc.ResolveForTrip(context.Background(), trip)

	if resolved.StatusFlags.Fallback {
		t.Fatal("expected a stored entry, not a fallback")
	}
	if resolved.Entry == nil || resolved.Entry.ID != entry.ID {
		t.Fatal("expected the stored entry to be attached")
	}
	if resolved.MetaTitle != title {
		t.Fatalf("expected override title, got %q", resolved.MetaTitle)
	}
	// Canonical was never set on the entry, so it falls back to the path.
	if resolved.CanonicalURL != entry.Path {
		t.Fatalf("expected canonical %q, got %q", entry.Path, resolved.CanonicalURL)
	}
}

func TestResolveForStaticHonorsDefaultIndexability(t *testing.T) {
	svc, _, _ := seoFixture()

	resolved := svc.ResolveForStatic(context.Background(), "booking_success")

	if !resolved.StatusFlags.Fallback {
		t.Fatal("expected fallback resolution")
	}
	if resolved.IsIndexable {
		t.Fatal("expected booking_success to default to noindex")
	}
	if resolved.Path != "/booking/success/" {
		t.Fatalf("unexpected path %q", resolved.Path)
	}
}

func TestRedirectTarget(t *testing.T) {
	svc, seoRepo, _ := seoFixture()
	ctx := context.Background()

	if _, _, ok := svc.RedirectTarget(ctx, "/nowhere/"); ok {
		t.Fatal("expected a miss for an unknown path")
	}

	seoRepo.redirects["/old-trips/"] = &domain.SeoRedirect{
		ID: uuid.New(), FromPath: "/old-trips/", ToPath: "/trips/", IsPermanent: true,
	}
	target, permanent, ok := svc.RedirectTarget(ctx, "old-trips/")
	if !ok || target != "/trips/" || !permanent {
		t.Fatalf("expected permanent redirect to /trips/, got %q %v %v", target, permanent, ok)
	}

	// Unusable targets read as no redirect.
	seoRepo.redirects["/loop/"] = &domain.SeoRedirect{ID: uuid.New(), FromPath: "/loop/", ToPath: "/loop/"}
	if _, _, ok := svc.RedirectTarget(ctx, "/loop/"); ok {
		t.Fatal("expected a self-referencing redirect to be ignored")
	}
	seoRepo.redirects["/bad/"] = &domain.SeoRedirect{ID: uuid.New(), FromPath: "/bad/", ToPath: "ftp://files"}
	if _, _, ok := svc.RedirectTarget(ctx, "/bad/"); ok {
		t.Fatal("expected a non-web target to be ignored")
	}
}

func TestCreateRedirectValidation(t *testing.T) {
	svc, _, _ := seoFixture()
	ctx := context.Background()

	if _, err := svc.CreateRedirect(ctx, nil, "", "/trips/", false, nil); !errors.Is(err, ErrSeoRedirectInvalid) {
		t.Fatalf("expected ErrSeoRedirectInvalid for empty from, got %v", err)
	}
	if _, err := svc.CreateRedirect(ctx, nil, "/trips/", "trips/", false, nil); !errors.Is(err, ErrSeoRedirectInvalid) {
		t.Fatalf("expected ErrSeoRedirectInvalid for a self redirect, got %v", err)
	}

	redirect, err := svc.CreateRedirect(ctx, nil, "old", "https://example.com/new", true, nil)
	if err != nil {
		t.Fatalf("CreateRedirect returned error: %v", err)
	}
	if redirect.FromPath != "/old" {
		t.Fatalf("expected normalized from path, got %q", redirect.FromPath)
	}
	if redirect.ToPath != "https://example.com/new" {
		t.Fatalf("absolute targets should pass through, got %q", redirect.ToPath)
	}
}

func TestUpdateEntryPathChangeCreatesRedirect(t *testing.T) {
	svc, seoRepo, _ := seoFixture()
	ctx := context.Background()

	entry, err := seoRepo.CreateEntry(ctx, &domain.SeoEntry{
		PageType:    domain.PageTypeStatic,
		PageCode:    strPtr("about"),
		Path:        "/about/",
		IsIndexable: true,
	})
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}

	entry.Path = "/about-us/"
	updated, err := svc.UpdateEntry(ctx, entry)
	if err != nil {
		t.Fatalf("UpdateEntry returned error: %v", err)
	}
	if updated.Path != "/about-us/" {
		t.Fatalf("expected updated path, got %q", updated.Path)
	}

	redirect, ok := seoRepo.redirects["/about/"]
	if !ok {
		t.Fatal("expected a redirect from the old path")
	}
	if redirect.ToPath != "/about-us/" || !redirect.IsPermanent {
		t.Fatalf("expected a permanent redirect to the new path, got %+v", redirect)
	}
}

func TestUpdateEntryUnknownID(t *testing.T) {
	svc, _, _ := seoFixture()
	_, err := svc.UpdateEntry(context.Background(), &domain.SeoEntry{ID: uuid.New(), Path: "/x/"})
	if !errors.Is(err, ErrSeoEntryNotFound) {
		t.Fatalf("expected ErrSeoEntryNotFound, got %v", err)
	}
}

func TestEnsureEntriesIsIdempotent(t *testing.T) {
	svc, _, _ := seoFixture()
	ctx := context.Background()

	created, err := svc.EnsureEntries(ctx)
	if err != nil {
		t.Fatalf("EnsureEntries returned error: %v", err)
	}
	if created != len(domain.StaticPagePaths) {
		t.Fatalf("expected %d static entries, got %d", len(domain.StaticPagePaths), created)
	}

	again, err := svc.EnsureEntries(ctx)
	if err != nil {
		t.Fatalf("EnsureEntries returned error: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected a second run to create nothing, got %d", again)
	}
}

func TestReplaceFAQsRenumbersPositions(t *testing.T) {
	svc, seoRepo, _ := seoFixture()
	ctx := context.Background()

	entry, err := seoRepo.CreateEntry(ctx, &domain.SeoEntry{
		PageType: domain.PageTypeStatic,
		PageCode: strPtr("contact"),
		Path:     "/contact/",
	})
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}

	faqs := []domain.SeoFaq{
		{Question: "How do I pay?", Position: 7},
		{Question: "Can I cancel?", Position: 3},
	}
	if err := svc.ReplaceFAQs(ctx, entry.ID, faqs); err != nil {
		t.Fatalf("ReplaceFAQs returned error: %v", err)
	}

	stored := seoRepo.faqs[entry.ID]
	if len(stored) != 2 {
		t.Fatalf("expected two FAQs, got %d", len(stored))
	}
	for i, faq := range stored {
		if faq.Position != i {
			t.Errorf("expected position %d, got %d", i, faq.Position)
		}
		if faq.EntryID != entry.ID {
			t.Errorf("expected entry id to be stamped, got %s", faq.EntryID)
		}
	}

	if err := svc.ReplaceFAQs(ctx, uuid.New(), faqs); !errors.Is(err, ErrSeoEntryNotFound) {
		t.Fatalf("expected ErrSeoEntryNotFound, got %v", err)
	}
}

func TestComputeStatusFlags(t *testing.T) {
	title := "Title"
	flags := ComputeStatusFlags(domain.SeoEntry{MetaTitle: &title})
	if flags.MissingTitle {
		t.Error("title is present")
	}
	if !flags.MissingDescription || !flags.MissingAlt || !flags.MissingCanonical {
		t.Error("expected description, alt and canonical to be missing")
	}
	if !flags.Incomplete {
		t.Error("expected entry to be incomplete")
	}
}
