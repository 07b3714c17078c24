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

type DestinationHandler struct {
	destinations *service.DestinationService
	seo          *service.SeoService
}

type DestinationDetailResponse struct {
	Destination domain.Destination  `json:"destination"`
	Trips       []domain.Trip       `json:"trips"`
	Seo         *service.SeoContext `json:"seo,omitempty"`
}

func RegisterDestinations(e *echo.Echo, destinations *service.DestinationService, seo *service.SeoService) {
	handler := &DestinationHandler{destinations: destinations, seo: seo}
	e.GET("/api/v1/destinations", handler.list)
	e.GET("/api/v1/destinations/:slug", handler.detail)
}

// list handles GET /api/v1/destinations
func (h *DestinationHandler) list(c echo.Context) error {
	var (
		destinations []domain.Destination
		err          error
	)
	if strings.EqualFold(c.QueryParam("featured"), "true") {
		destinations, err = h.destinations.ListFeatured(c.Request().Context())
	} else {
		destinations, err = h.destinations.List(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list destinations"))
	}
	return c.JSON(http.StatusOK, util.Data("destinations", destinations))
}

// detail handles GET /api/v1/destinations/{slug}
func (h *DestinationHandler) detail(c echo.Context) error {
	detail, err := h.destinations.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load destination"))
	}

	resp := DestinationDetailResponse{Destination: detail.Destination, Trips: detail.Trips}
	resolved := h.seo.ResolveForDestination(c.Request().Context(), detail.Destination)
	if seoCtx, seoErr := h.seo.BuildContext(c.Request().Context(), resolved); seoErr == nil {
		resp.Seo = seoCtx
	}
	return c.JSON(http.StatusOK, resp)
}
