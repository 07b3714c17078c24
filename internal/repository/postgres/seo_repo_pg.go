package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

const seoEntryColumns = `
	e.id, e.page_type, e.object_id, e.page_code, e.slug, e.path, e.meta_title,
	e.meta_description, e.meta_keywords, e.alt_text, e.main_image_url,
	e.canonical_url, e.body_override, e.is_indexable, e.created_at, e.updated_at,
	(SELECT COUNT(*)::int FROM seo_redirect r WHERE r.entry_id = e.id) AS redirect_count
`

type SeoRepository struct {
	db *sqlx.DB
}

func NewSeoRepo(db *sqlx.DB) *SeoRepository {
	return &SeoRepository{db: db}
}

func (r *SeoRepository) FindEntryByObject(ctx context.Context, pageType domain.PageType, objectID uuid.UUID) (*domain.SeoEntry, error) {
	const query = `
		SELECT ` + seoEntryColumns + `
		FROM seo_entry e
		WHERE e.page_type = $1 AND e.object_id = $2
	`
	var entry domain.SeoEntry
	if err := r.db.GetContext(ctx, &entry, query, pageType, objectID); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SeoRepository) FindEntryByPageCode(ctx context.Context, pageType domain.PageType, pageCode string) (*domain.SeoEntry, error) {
	const query = `
		SELECT ` + seoEntryColumns + `
		FROM seo_entry e
		WHERE e.page_type = $1 AND e.page_code = $2
	`
	var entry domain.SeoEntry
	if err := r.db.GetContext(ctx, &entry, query, pageType, pageCode); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SeoRepository) FindEntryByPath(ctx context.Context, pageType domain.PageType, path string) (*domain.SeoEntry, error) {
	const query = `
		SELECT ` + seoEntryColumns + `
		FROM seo_entry e
		WHERE e.page_type = $1 AND e.path = $2
	`
	var entry domain.SeoEntry
	if err := r.db.GetContext(ctx, &entry, query, pageType, path); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SeoRepository) FindEntryByID(ctx context.Context, id uuid.UUID) (*domain.SeoEntry, error) {
	const query = `
		SELECT ` + seoEntryColumns + `
		FROM seo_entry e
		WHERE e.id = $1
	`
	var entry domain.SeoEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SeoRepository) ListEntries(ctx context.Context, filter domain.SeoEntryFilter) ([]domain.SeoEntry, int, error) {
	where := "WHERE 1 = 1"
	params := make([]any, 0, 4)

	if filter.PageType != nil {
		params = append(params, *filter.PageType)
		where += fmt.Sprintf(" AND e.page_type = $%d", len(params))
	}
	if filter.IncompleteOnly {
		where += ` AND (
			e.meta_title IS NULL OR e.meta_title = '' OR
			e.meta_description IS NULL OR e.meta_description = '' OR
			e.alt_text IS NULL OR e.alt_text = ''
		)`
	}
	if trimmed := strings.TrimSpace(filter.Search); trimmed != "" {
		params = append(params, "%"+trimmed+"%")
		where += fmt.Sprintf(` AND (
			e.path ILIKE $%d OR e.meta_title ILIKE $%d OR e.slug ILIKE $%d
		)`, len(params), len(params), len(params))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)::int FROM seo_entry e `+where, params...); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	params = append(params, limit)
	limitClause := fmt.Sprintf(" LIMIT $%d", len(params))
	params = append(params, filter.Offset)
	limitClause += fmt.Sprintf(" OFFSET $%d", len(params))

	query := `SELECT ` + seoEntryColumns + ` FROM seo_entry e ` + where +
		` ORDER BY e.page_type ASC, e.path ASC` + limitClause

	entries := make([]domain.SeoEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, params...); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *SeoRepository) CreateEntry(ctx context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error) {
	const query = `
		INSERT INTO seo_entry (
			page_type, object_id, page_code, slug, path, meta_title,
			meta_description, meta_keywords, alt_text, main_image_url,
			canonical_url, body_override, is_indexable
		) VALUES (
			:page_type, :object_id, :page_code, :slug, :path, :meta_title,
			:meta_description, :meta_keywords, :alt_text, :main_image_url,
			:canonical_url, :body_override, :is_indexable
		)
		RETURNING id
	`

	rows, err := r.db.NamedQueryContext(ctx, query, r.entryArgs(entry))
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
	return r.FindEntryByID(ctx, id)
}

func (r *SeoRepository) UpdateEntry(ctx context.Context, entry *domain.SeoEntry) (*domain.SeoEntry, error) {
	const query = `
		UPDATE seo_entry
		SET slug = :slug,
		    path = :path,
		    meta_title = :meta_title,
		    meta_description = :meta_description,
		    meta_keywords = :meta_keywords,
		    alt_text = :alt_text,
		    main_image_url = :main_image_url,
		    canonical_url = :canonical_url,
		    body_override = :body_override,
		    is_indexable = :is_indexable,
		    updated_at = NOW()
		WHERE id = :id
	`

	args := r.entryArgs(entry)
	args["id"] = entry.ID

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
	return r.FindEntryByID(ctx, entry.ID)
}

func (r *SeoRepository) entryArgs(entry *domain.SeoEntry) map[string]any {
	var objectID any
	if entry.ObjectID != nil {
		objectID = *entry.ObjectID
	}
	return map[string]any{
		"page_type":        entry.PageType,
		"object_id":        objectID,
		"page_code":        nullString(entry.PageCode),
		"slug":             nullString(entry.Slug),
		"path":             entry.Path,
		"meta_title":       nullString(entry.MetaTitle),
		"meta_description": nullString(entry.MetaDescription),
		"meta_keywords":    nullString(entry.MetaKeywords),
		"alt_text":         nullString(entry.AltText),
		"main_image_url":   nullString(entry.MainImageURL),
		"canonical_url":    nullString(entry.CanonicalURL),
		"body_override":    nullString(entry.BodyOverride),
		"is_indexable":     entry.IsIndexable,
	}
}

func (r *SeoRepository) ListActiveFAQs(ctx context.Context, entryID uuid.UUID) ([]domain.SeoFaq, error) {
	const query = `
		SELECT id, entry_id, question, answer, position, is_active
		FROM seo_faq
		WHERE entry_id = $1 AND is_active = TRUE
		ORDER BY position ASC, id ASC
	`
	faqs := make([]domain.SeoFaq, 0)
	if err := r.db.SelectContext(ctx, &faqs, query, entryID); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *SeoRepository) ListActiveSnippets(ctx context.Context, entryID uuid.UUID, placement domain.SnippetPlacement) ([]domain.SeoSnippet, error) {
	const query = `
		SELECT id, entry_id, name, placement, value, position, is_active
		FROM seo_snippet
		WHERE entry_id = $1 AND placement = $2 AND is_active = TRUE
		ORDER BY position ASC, id ASC
	`
	snippets := make([]domain.SeoSnippet, 0)
	if err := r.db.SelectContext(ctx, &snippets, query, entryID, placement); err != nil {
		return nil, err
	}
	return snippets, nil
}

func (r *SeoRepository) ReplaceFAQs(ctx context.Context, entryID uuid.UUID, faqs []domain.SeoFaq) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM seo_faq WHERE entry_id = $1`, entryID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for i, faq := range faqs {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO seo_faq (entry_id, question, answer, position, is_active)
			VALUES ($1, $2, $3, $4, $5)
		`, entryID, faq.Question, nullString(faq.Answer), i, faq.IsActive); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SeoRepository) ReplaceSnippets(ctx context.Context, entryID uuid.UUID, snippets []domain.SeoSnippet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM seo_snippet WHERE entry_id = $1`, entryID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for i, snippet := range snippets {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO seo_snippet (entry_id, name, placement, value, position, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, entryID, snippet.Name, snippet.Placement, snippet.Value, i, snippet.IsActive); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SeoRepository) FindRedirect(ctx context.Context, fromPath string) (*domain.SeoRedirect, error) {
	const query = `
		SELECT id, entry_id, from_path, to_path, is_permanent, note, created_at, updated_at
		FROM seo_redirect
		WHERE from_path = $1
	`
	var redirect domain.SeoRedirect
	if err := r.db.GetContext(ctx, &redirect, query, fromPath); err != nil {
		return nil, err
	}
	return &redirect, nil
}

func (r *SeoRepository) UpsertRedirect(ctx context.Context, redirect *domain.SeoRedirect) (*domain.SeoRedirect, error) {
	const query = `
		INSERT INTO seo_redirect (entry_id, from_path, to_path, is_permanent, note)
		VALUES (:entry_id, :from_path, :to_path, :is_permanent, :note)
		ON CONFLICT (from_path) DO UPDATE
		SET to_path = EXCLUDED.to_path,
		    is_permanent = EXCLUDED.is_permanent,
		    note = EXCLUDED.note,
		    entry_id = EXCLUDED.entry_id,
		    updated_at = NOW()
		RETURNING id, entry_id, from_path, to_path, is_permanent, note, created_at, updated_at
	`

	var entryID any
	if redirect.EntryID != nil {
		entryID = *redirect.EntryID
	}
	args := map[string]any{
		"entry_id":     entryID,
		"from_path":    redirect.FromPath,
		"to_path":      redirect.ToPath,
		"is_permanent": redirect.IsPermanent,
		"note":         nullString(redirect.Note),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var saved domain.SeoRedirect
		if err = rows.StructScan(&saved); err != nil {
			return nil, err
		}
		return &saved, nil
	}
	return nil, sql.ErrNoRows
}

func (r *SeoRepository) ListRedirectsForEntry(ctx context.Context, entryID uuid.UUID) ([]domain.SeoRedirect, error) {
	const query = `
		SELECT id, entry_id, from_path, to_path, is_permanent, note, created_at, updated_at
		FROM seo_redirect
		WHERE entry_id = $1
		ORDER BY created_at DESC
	`
	redirects := make([]domain.SeoRedirect, 0)
	if err := r.db.SelectContext(ctx, &redirects, query, entryID); err != nil {
		return nil, err
	}
	return redirects, nil
}

func (r *SeoRepository) DeleteRedirect(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seo_redirect WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.SeoRepository = (*SeoRepository)(nil)
