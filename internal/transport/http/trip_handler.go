package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

type TripHandler struct {
	trips *service.TripService
	seo   *service.SeoService
}

type TripDetailResponse struct {
	Content domain.TripContent    `json:"content"`
	Related []domain.Trip         `json:"related_trips"`
	Reviews service.ReviewSummary `json:"review_summary"`
	Seo     *service.SeoContext   `json:"seo,omitempty"`
}

func RegisterTrips(e *echo.Echo, trips *service.TripService, seo *service.SeoService) {
	handler := &TripHandler{trips: trips, seo: seo}
	e.GET("/api/v1/trips", handler.list)
	e.GET("/api/v1/trips/:slug", handler.detail)
}

// list handles GET /api/v1/trips
func (h *TripHandler) list(c echo.Context) error {
	filter := domain.TripListFilter{
		DestinationSlug: strings.TrimSpace(c.QueryParam("destination")),
		IncludeServices: strings.EqualFold(c.QueryParam("include_services"), "true"),
	}
	trips, err := h.trips.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list trips"))
	}
	return c.JSON(http.StatusOK, util.Data("trips", trips))
}

// detail handles GET /api/v1/trips/{slug}
func (h *TripHandler) detail(c echo.Context) error {
	detail, err := h.trips.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load trip"))
	}

	resp := TripDetailResponse{Content: detail.Content, Related: detail.Related, Reviews: detail.Reviews}
	resolved := h.seo.ResolveForTrip(c.Request().Context(), detail.Content.Trip)
	if seoCtx, seoErr := h.seo.BuildContext(c.Request().Context(), resolved); seoErr == nil {
		resp.Seo = seoCtx
	}
	return c.JSON(http.StatusOK, resp)
}
