package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

var (
	ErrSeoEntryNotFound    = errors.New("seo entry not found")
	ErrSeoRedirectInvalid  = errors.New("invalid redirect")
	ErrSeoRedirectNotFound = errors.New("redirect not found")
)

type SeoService struct {
	seo          ports.SeoRepository
	trips        ports.TripRepository
	destinations ports.DestinationRepository
	blog         ports.BlogRepository
	baseURL      string
}

// NewSeoService wires the resolver over its repositories. baseURL, when set,
// turns relative canonical paths into absolute URLs; empty leaves them relative.
func NewSeoService(
	seoRepo ports.SeoRepository,
	tripRepo ports.TripRepository,
	destinationRepo ports.DestinationRepository,
	blogRepo ports.BlogRepository,
	baseURL string,
) *SeoService {
	return &SeoService{
		seo:          seoRepo,
		trips:        tripRepo,
		destinations: destinationRepo,
		blog:         blogRepo,
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// canonicalFor absolutizes a canonical value against the configured base URL.
// Already-absolute URLs pass through untouched.
func (s *SeoService) canonicalFor(value string) string {
	if s.baseURL == "" || value == "" {
		return value
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	return s.baseURL + value
}

// fallbackMeta is what a page can offer about itself when no override exists.
type fallbackMeta struct {
	title       string
	description string
	imageURL    string
	path        string
}

// ResolveForTrip returns the trip page metadata. Resolution never errors:
// lookup failures degrade to the synthesized fallback.
func (s *SeoService) ResolveForTrip(ctx context.Context, trip domain.Trip) domain.ResolvedSeo {
	fallback := fallbackMeta{
		title:       trip.Title,
		description: trip.Teaser,
		path:        trip.PagePath(),
	}
	if trip.HeroImageURL != nil {
		fallback.imageURL = *trip.HeroImageURL
	}
	return s.resolve(ctx, domain.PageTypeTrip, &trip.ID, "", fallback)
}

func (s *SeoService) ResolveForDestination(ctx context.Context, dest domain.Destination) domain.ResolvedSeo {
	description := ""
	if dest.Tagline != nil {
		description = *dest.Tagline
	} else if dest.Description != nil {
		description = *dest.Description
	}
	fallback := fallbackMeta{
		title:       dest.Name,
		description: description,
		path:        dest.PagePath(),
	}
	if dest.HeroImageURL != nil {
		fallback.imageURL = *dest.HeroImageURL
	}
	return s.resolve(ctx, domain.PageTypeDestination, &dest.ID, "", fallback)
}

func (s *SeoService) ResolveForBlogPost(ctx context.Context, post domain.BlogPost) domain.ResolvedSeo {
	title := post.Title
	if post.SeoTitle != nil && *post.SeoTitle != "" {
		title = *post.SeoTitle
	}
	description := ""
	switch {
	case post.SeoDescription != nil && *post.SeoDescription != "":
		description = *post.SeoDescription
	case post.Excerpt != nil && *post.Excerpt != "":
		description = *post.Excerpt
	case post.Intro != nil:
		description = *post.Intro
	}
	fallback := fallbackMeta{
		title:       title,
		description: description,
		path:        post.PagePath(),
	}
	if post.HeroImageURL != nil {
		fallback.imageURL = *post.HeroImageURL
	}
	return s.resolve(ctx, domain.PageTypeBlogPost, &post.ID, "", fallback)
}

func (s *SeoService) ResolveForStatic(ctx context.Context, pageCode string) domain.ResolvedSeo {
	fallback := fallbackMeta{
		title: titleCasePageCode(pageCode),
		path:  domain.StaticPagePaths[pageCode],
	}
	indexable := true
	if meta, ok := domain.StaticPageMeta[pageCode]; ok {
		fallback.title = meta.Title
		indexable = meta.Indexable
	}
	resolved := s.resolve(ctx, domain.PageTypeStatic, nil, pageCode, fallback)
	if resolved.StatusFlags.Fallback {
		resolved.IsIndexable = indexable
	}
	return resolved
}

func (s *SeoService) resolve(ctx context.Context, pageType domain.PageType, objectID *uuid.UUID, pageCode string, fallback fallbackMeta) domain.ResolvedSeo {
	entry := s.lookupEntry(ctx, pageType, objectID, pageCode, fallback.path)
	if entry == nil {
		return domain.ResolvedSeo{
			PageType:        pageType,
			Path:            fallback.path,
			MetaTitle:       fallback.title,
			MetaDescription: fallback.description,
			AltText:         fallback.title,
			MainImageURL:    fallback.imageURL,
			CanonicalURL:    s.canonicalFor(fallback.path),
			IsIndexable:     true,
			StatusFlags:     domain.SeoStatusFlags{Fallback: true},
		}
	}

	resolved := domain.ResolvedSeo{
		Entry:           entry,
		PageType:        pageType,
		Path:            entry.Path,
		MetaTitle:       stringOr(entry.MetaTitle, ""),
		MetaDescription: stringOr(entry.MetaDescription, ""),
		MetaKeywords:    stringOr(entry.MetaKeywords, ""),
		AltText:         stringOr(entry.AltText, ""),
		MainImageURL:    stringOr(entry.MainImageURL, ""),
		CanonicalURL:    stringOr(entry.CanonicalURL, ""),
		BodyOverride:    stringOr(entry.BodyOverride, ""),
		IsIndexable:     entry.IsIndexable,
	}
	if resolved.CanonicalURL == "" {
		resolved.CanonicalURL = entry.Path
	}
	resolved.CanonicalURL = s.canonicalFor(resolved.CanonicalURL)
	return resolved
}

func (s *SeoService) lookupEntry(ctx context.Context, pageType domain.PageType, objectID *uuid.UUID, pageCode, path string) *domain.SeoEntry {
	if objectID != nil && *objectID != uuid.Nil {
		if entry, err := s.seo.FindEntryByObject(ctx, pageType, *objectID); err == nil {
			return entry
		}
	}
	if pageCode != "" {
		if entry, err := s.seo.FindEntryByPageCode(ctx, pageType, pageCode); err == nil {
			return entry
		}
	}
	if path != "" {
		if entry, err := s.seo.FindEntryByPath(ctx, pageType, domain.NormalizeSeoPath(path)); err == nil {
			return entry
		}
	}
	return nil
}

// BuildContext layers active FAQs and snippets on top of a resolved payload.
type SeoContext struct {
	domain.ResolvedSeo
	FAQs         []domain.SeoFaq     `json:"faqs"`
	HeadSnippets []domain.SeoSnippet `json:"head_snippets"`
	BodySnippets []domain.SeoSnippet `json:"body_snippets"`
}

func (s *SeoService) BuildContext(ctx context.Context, resolved domain.ResolvedSeo) (*SeoContext, error) {
	built := SeoContext{
		ResolvedSeo:  resolved,
		FAQs:         []domain.SeoFaq{},
		HeadSnippets: []domain.SeoSnippet{},
		BodySnippets: []domain.SeoSnippet{},
	}
	if resolved.Entry == nil {
		return &built, nil
	}

	var err error
	if built.FAQs, err = s.seo.ListActiveFAQs(ctx, resolved.Entry.ID); err != nil {
		return nil, err
	}
	if built.HeadSnippets, err = s.seo.ListActiveSnippets(ctx, resolved.Entry.ID, domain.SnippetPlacementHead); err != nil {
		return nil, err
	}
	if built.BodySnippets, err = s.seo.ListActiveSnippets(ctx, resolved.Entry.ID, domain.SnippetPlacementBody); err != nil {
		return nil, err
	}
	return &built, nil
}

// EnsureEntries backfills a SeoEntry for every static page, trip, destination
// and blog post that lacks one. Safe to run repeatedly.
func (s *SeoService) EnsureEntries(ctx context.Context) (int, error) {
	created := 0

	for code, path := range domain.StaticPagePaths {
		entry := domain.SeoEntry{
			PageType:    domain.PageTypeStatic,
			PageCode:    strPtr(code),
			Path:        path,
			IsIndexable: true,
		}
		if meta, ok := domain.StaticPageMeta[code]; ok {
			entry.MetaTitle = strPtr(meta.Title)
			entry.IsIndexable = meta.Indexable
		}
		n, err := s.ensureEntry(ctx, entry)
		if err != nil {
			return created, err
		}
		created += n
	}

	trips, err := s.trips.List(ctx, domain.TripListFilter{IncludeServices: true})
	if err != nil {
		return created, err
	}
	for i := range trips {
		trip := trips[i]
		n, err := s.ensureEntry(ctx, domain.SeoEntry{
			PageType:    domain.PageTypeTrip,
			ObjectID:    &trip.ID,
			Slug:        strPtr(trip.Slug),
			Path:        trip.PagePath(),
			MetaTitle:   strPtr(trip.Title),
			IsIndexable: true,
		})
		if err != nil {
			return created, err
		}
		created += n
	}

	destinations, err := s.destinations.List(ctx)
	if err != nil {
		return created, err
	}
	for i := range destinations {
		dest := destinations[i]
		n, err := s.ensureEntry(ctx, domain.SeoEntry{
			PageType:    domain.PageTypeDestination,
			ObjectID:    &dest.ID,
			Slug:        strPtr(dest.Slug),
			Path:        dest.PagePath(),
			MetaTitle:   strPtr(dest.Name),
			IsIndexable: true,
		})
		if err != nil {
			return created, err
		}
		created += n
	}

	posts, err := s.blog.ListAll(ctx)
	if err != nil {
		return created, err
	}
	for i := range posts {
		post := posts[i]
		n, err := s.ensureEntry(ctx, domain.SeoEntry{
			PageType:    domain.PageTypeBlogPost,
			ObjectID:    &post.ID,
			Slug:        strPtr(post.Slug),
			Path:        post.PagePath(),
			MetaTitle:   strPtr(post.Title),
			IsIndexable: true,
		})
		if err != nil {
			return created, err
		}
		created += n
	}

	return created, nil
}

func (s *SeoService) ensureEntry(ctx context.Context, entry domain.SeoEntry) (int, error) {
	var err error
	if entry.ObjectID != nil {
		_, err = s.seo.FindEntryByObject(ctx, entry.PageType, *entry.ObjectID)
	} else {
		_, err = s.seo.FindEntryByPageCode(ctx, entry.PageType, stringOr(entry.PageCode, ""))
	}
	if err == nil {
		return 0, nil
	}
	if !isNotFound(err) {
		return 0, err
	}

	entry.Path = domain.NormalizeSeoPath(entry.Path)
	if _, err = s.seo.CreateEntry(ctx, &entry); err != nil {
		if isUniqueViolation(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

// CreateRedirect normalizes both paths and upserts on from_path. Empty or
// self-referencing pairs are refused.
func (s *SeoService) CreateRedirect(ctx context.Context, entryID *uuid.UUID, fromPath, toPath string, isPermanent bool, note *string) (*domain.SeoRedirect, error) {
	from := domain.NormalizeSeoPath(fromPath)
	to := strings.TrimSpace(toPath)
	if !strings.HasPrefix(to, "http://") && !strings.HasPrefix(to, "https://") {
		to = domain.NormalizeSeoPath(to)
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: both paths are required", ErrSeoRedirectInvalid)
	}
	if from == to {
		return nil, fmt.Errorf("%w: redirect would point to itself", ErrSeoRedirectInvalid)
	}
	return s.seo.UpsertRedirect(ctx, &domain.SeoRedirect{
		EntryID:     entryID,
		FromPath:    from,
		ToPath:      to,
		IsPermanent: isPermanent,
		Note:        note,
	})
}

func (s *SeoService) DeleteRedirect(ctx context.Context, id uuid.UUID) error {
	if err := s.seo.DeleteRedirect(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrSeoRedirectNotFound
		}
		return err
	}
	return nil
}

// RedirectTarget is consulted by the redirect middleware for every request
// path. A miss or an unusable target reads as no redirect.
func (s *SeoService) RedirectTarget(ctx context.Context, path string) (string, bool, bool) {
	normalized := domain.NormalizeSeoPath(path)
	if normalized == "" {
		return "", false, false
	}
	redirect, err := s.seo.FindRedirect(ctx, normalized)
	if err != nil {
		return "", false, false
	}
	target := strings.TrimSpace(redirect.ToPath)
	if target == "" || target == normalized {
		return "", false, false
	}
	if !strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return "", false, false
	}
	return target, redirect.IsPermanent, true
}

// DashboardEntry pairs an entry with its computed completeness flags.
type DashboardEntry struct {
	Entry domain.SeoEntry       `json:"entry"`
	Flags domain.SeoStatusFlags `json:"flags"`
}

type DashboardPage struct {
	Entries []DashboardEntry `json:"entries"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func (s *SeoService) ListDashboard(ctx context.Context, filter domain.SeoEntryFilter) (*DashboardPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	entries, total, err := s.seo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := DashboardPage{
		Entries: make([]DashboardEntry, 0, len(entries)),
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}
	for _, entry := range entries {
		page.Entries = append(page.Entries, DashboardEntry{
			Entry: entry,
			Flags: ComputeStatusFlags(entry),
		})
	}
	return &page, nil
}

func (s *SeoService) GetEntry(ctx context.Context, id uuid.UUID) (*domain.SeoEntry, error) {
	entry, err := s.seo.FindEntryByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSeoEntryNotFound
		}
		return nil, err
	}
	if entry.FAQs, err = s.seo.ListActiveFAQs(ctx, entry.ID); err != nil {
		return nil, err
	}
	head, err := s.seo.ListActiveSnippets(ctx, entry.ID, domain.SnippetPlacementHead)
	if err != nil {
		return nil, err
	}
	body, err := s.seo.ListActiveSnippets(ctx, entry.ID, domain.SnippetPlacementBody)
	if err != nil {
		return nil, err
	}
	entry.Snippets = append(head, body...)
	return entry, nil
}

// UpdateEntry saves an entry. When the path changed, a permanent redirect
// from the old path is recorded automatically.
func (s *SeoService) UpdateEntry(ctx context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error) {
	existing, err := s.seo.FindEntryByID(ctx, entry.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSeoEntryNotFound
		}
		return nil, err
	}

	entry.Path = domain.NormalizeSeoPath(entry.Path)
	updated, err := s.seo.UpdateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	if existing.Path != updated.Path && existing.Path != "" {
		if _, redirectErr := s.CreateRedirect(ctx, &updated.ID, existing.Path, updated.Path, true, nil); redirectErr != nil &&
			!errors.Is(redirectErr, ErrSeoRedirectInvalid) {
			return nil, redirectErr
		}
	}
	return updated, nil
}

func (s *SeoService) ListRedirects(ctx context.Context, entryID uuid.UUID) ([]domain.SeoRedirect, error) {
	return s.seo.ListRedirectsForEntry(ctx, entryID)
}

// ReplaceFAQs swaps the full FAQ set for an entry, renumbering positions.
func (s *SeoService) ReplaceFAQs(ctx context.Context, entryID uuid.UUID, faqs []domain.SeoFaq) error {
	if _, err := s.GetEntry(ctx, entryID); err != nil {
		return err
	}
	for i := range faqs {
		faqs[i].EntryID = entryID
		faqs[i].Position = i
	}
	return s.seo.ReplaceFAQs(ctx, entryID, faqs)
}

// ReplaceSnippets swaps the full snippet set for an entry, renumbering positions.
func (s *SeoService) ReplaceSnippets(ctx context.Context, entryID uuid.UUID, snippets []domain.SeoSnippet) error {
	if _, err := s.GetEntry(ctx, entryID); err != nil {
		return err
	}
	for i := range snippets {
		snippets[i].EntryID = entryID
		snippets[i].Position = i
		if snippets[i].Placement != domain.SnippetPlacementBody {
			snippets[i].Placement = domain.SnippetPlacementHead
		}
	}
	return s.seo.ReplaceSnippets(ctx, entryID, snippets)
}

// ComputeStatusFlags derives the dashboard completeness flags for an entry.
func ComputeStatusFlags(entry domain.SeoEntry) domain.SeoStatusFlags {
	flags := domain.SeoStatusFlags{
		MissingTitle:       stringOr(entry.MetaTitle, "") == "",
		MissingDescription: stringOr(entry.MetaDescription, "") == "",
		MissingAlt:         stringOr(entry.AltText, "") == "",
		MissingCanonical:   stringOr(entry.CanonicalURL, "") == "",
	}
	flags.Incomplete = flags.MissingTitle || flags.MissingDescription || flags.MissingAlt
	return flags
}

func titleCasePageCode(code string) string {
	words := strings.FieldsFunc(code, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func stringOr(ptr *string, fallback string) string {
	if ptr == nil {
		return fallback
	}
	return *ptr
}

func strPtr(value string) *string {
	return &value
}
