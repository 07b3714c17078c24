package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

type SeoHandler struct {
	seo *service.SeoService
}

type updateSeoEntryRequest struct {
	Path            string  `json:"path"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	MetaKeywords    *string `json:"meta_keywords"`
	AltText         *string `json:"alt_text"`
	MainImageURL    *string `json:"main_image_url"`
	CanonicalURL    *string `json:"canonical_url"`
	BodyOverride    *string `json:"body_override"`
	IsIndexable     bool    `json:"is_indexable"`
}

type replaceSeoFaqsRequest struct {
	FAQs []struct {
		Question string  `json:"question"`
		Answer   *string `json:"answer"`
		IsActive bool    `json:"is_active"`
	} `json:"faqs"`
}

type replaceSeoSnippetsRequest struct {
	Snippets []struct {
		Name      string `json:"name"`
		Placement string `json:"placement"`
		Value     string `json:"value"`
		IsActive  bool   `json:"is_active"`
	} `json:"snippets"`
}

type createSeoRedirectRequest struct {
	EntryID     *string `json:"entry_id"`
	FromPath    string  `json:"from_path"`
	ToPath      string  `json:"to_path"`
	IsPermanent bool    `json:"is_permanent"`
	Note        *string `json:"note"`
}

// RegisterSeoPublic exposes the read-only SEO payload routes.
func RegisterSeoPublic(e *echo.Echo, seo *service.SeoService) {
	handler := &SeoHandler{seo: seo}
	e.GET("/api/v1/seo/static/:code", handler.staticPage)
}

func RegisterSeoDashboard(e *echo.Echo, auth *service.AuthService, seo *service.SeoService) {
	handler := &SeoHandler{seo: seo}

	staff := e.Group("/api/v1/staff/seo", RequireAuth(auth))
	staff.GET("/entries", handler.listEntries)
	staff.GET("/entries/:id", handler.getEntry)
	staff.PUT("/entries/:id", handler.updateEntry)
	staff.PUT("/entries/:id/faqs", handler.replaceFAQs)
	staff.PUT("/entries/:id/snippets", handler.replaceSnippets)
	staff.GET("/entries/:id/redirects", handler.listRedirects)
	staff.POST("/redirects", handler.createRedirect)
	staff.DELETE("/redirects/:id", handler.deleteRedirect)
	staff.POST("/sync", handler.sync)
}

// staticPage handles GET /api/v1/seo/static/{code}
func (h *SeoHandler) staticPage(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if _, ok := domain.StaticPagePaths[code]; !ok {
		return c.JSON(http.StatusNotFound, util.Error("unknown page code"))
	}

	resolved := h.seo.ResolveForStatic(c.Request().Context(), code)
	seoCtx, err := h.seo.BuildContext(c.Request().Context(), resolved)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to build seo payload"))
	}
	return c.JSON(http.StatusOK, util.Data("seo", seoCtx))
}

// listEntries handles GET /api/v1/staff/seo/entries
func (h *SeoHandler) listEntries(c echo.Context) error {
	var filter domain.SeoEntryFilter
	if raw := strings.TrimSpace(c.QueryParam("page_type")); raw != "" {
		pageType := domain.PageType(raw)
		if !pageType.Valid() {
			return c.JSON(http.StatusBadRequest, util.Error("unknown page_type filter"))
		}
		filter.PageType = &pageType
	}
	filter.IncompleteOnly = strings.EqualFold(c.QueryParam("incomplete"), "true")
	filter.Search = strings.TrimSpace(c.QueryParam("search"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	page, err := h.seo.ListDashboard(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list entries"))
	}
	return c.JSON(http.StatusOK, page)
}

// getEntry handles GET /api/v1/staff/seo/entries/{id}
func (h *SeoHandler) getEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid entry id"))
	}
	entry, err := h.seo.GetEntry(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSeoEntryNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load entry"))
	}
	return c.JSON(http.StatusOK, util.Data("entry", entry))
}

// updateEntry handles PUT /api/v1/staff/seo/entries/{id}
func (h *SeoHandler) updateEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid entry id"))
	}
	var req updateSeoEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Path) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("path is required"))
	}

	entry := domain.SeoEntry{
		ID:              id,
		Path:            req.Path,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		AltText:         req.AltText,
		MainImageURL:    req.MainImageURL,
		CanonicalURL:    req.CanonicalURL,
		BodyOverride:    req.BodyOverride,
		IsIndexable:     req.IsIndexable,
	}
	updated, err := h.seo.UpdateEntry(c.Request().Context(), &entry)
	if err != nil {
		if errors.Is(err, service.ErrSeoEntryNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update entry"))
	}
	return c.JSON(http.StatusOK, util.Data("entry", updated))
}

// replaceFAQs handles PUT /api/v1/staff/seo/entries/{id}/faqs
func (h *SeoHandler) replaceFAQs(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid entry id"))
	}
	var req replaceSeoFaqsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	faqs := make([]domain.SeoFaq, 0, len(req.FAQs))
	for _, faq := range req.FAQs {
		if strings.TrimSpace(faq.Question) == "" {
			return c.JSON(http.StatusBadRequest, util.Error("every faq needs a question"))
		}
		faqs = append(faqs, domain.SeoFaq{
			Question: faq.Question,
			Answer:   faq.Answer,
			IsActive: faq.IsActive,
		})
	}

	if err := h.seo.ReplaceFAQs(c.Request().Context(), id, faqs); err != nil {
		if errors.Is(err, service.ErrSeoEntryNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save faqs"))
	}
	return c.JSON(http.StatusOK, util.Data("faqs", faqs))
}

// replaceSnippets handles PUT /api/v1/staff/seo/entries/{id}/snippets
func (h *SeoHandler) replaceSnippets(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid entry id"))
	}
	var req replaceSeoSnippetsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	snippets := make([]domain.SeoSnippet, 0, len(req.Snippets))
	for _, snippet := range req.Snippets {
		if strings.TrimSpace(snippet.Value) == "" {
			return c.JSON(http.StatusBadRequest, util.Error("every snippet needs a value"))
		}
		snippets = append(snippets, domain.SeoSnippet{
			Name:      snippet.Name,
			Placement: domain.SnippetPlacement(snippet.Placement),
			Value:     snippet.Value,
			IsActive:  snippet.IsActive,
		})
	}

	if err := h.seo.ReplaceSnippets(c.Request().Context(), id, snippets); err != nil {
		if errors.Is(err, service.ErrSeoEntryNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save snippets"))
	}
	return c.JSON(http.StatusOK, util.Data("snippets", snippets))
}

// listRedirects handles GET /api/v1/staff/seo/entries/{id}/redirects
func (h *SeoHandler) listRedirects(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid entry id"))
	}
	redirects, err := h.seo.ListRedirects(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list redirects"))
	}
	return c.JSON(http.StatusOK, util.Data("redirects", redirects))
}

// createRedirect handles POST /api/v1/staff/seo/redirects
func (h *SeoHandler) createRedirect(c echo.Context) error {
	var req createSeoRedirectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	var entryID *uuid.UUID
	if req.EntryID != nil && strings.TrimSpace(*req.EntryID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.EntryID))
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("entry_id must be a valid uuid"))
		}
		entryID = &id
	}

	redirect, err := h.seo.CreateRedirect(c.Request().Context(), entryID, req.FromPath, req.ToPath, req.IsPermanent, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrSeoRedirectInvalid) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create redirect"))
	}
	return c.JSON(http.StatusCreated, util.Data("redirect", redirect))
}

// deleteRedirect handles DELETE /api/v1/staff/seo/redirects/{id}
func (h *SeoHandler) deleteRedirect(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid redirect id"))
	}
	if err := h.seo.DeleteRedirect(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrSeoRedirectNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete redirect"))
	}
	return c.NoContent(http.StatusNoContent)
}

// sync handles POST /api/v1/staff/seo/sync
func (h *SeoHandler) sync(c echo.Context) error {
	created, err := h.seo.EnsureEntries(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sync entries"))
	}
	return c.JSON(http.StatusOK, util.Data("created", created))
}
