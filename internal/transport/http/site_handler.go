package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

type SiteHandler struct {
	site *service.SiteService
}

func RegisterSite(e *echo.Echo, site *service.SiteService) {
	handler := &SiteHandler{site: site}
	e.GET("/api/v1/site/configuration", handler.configuration)
}

// configuration handles GET /api/v1/site/configuration
func (h *SiteHandler) configuration(c echo.Context) error {
	config, err := h.site.Configuration(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load site configuration"))
	}
	return c.JSON(http.StatusOK, util.Data("configuration", config))
}
