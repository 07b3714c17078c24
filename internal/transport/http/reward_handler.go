package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

type RewardHandler struct {
	rewards         *service.RewardService
	defaultCurrency string
}

func RegisterRewards(e *echo.Echo, rewards *service.RewardService, defaultCurrency string) {
	handler := &RewardHandler{rewards: rewards, defaultCurrency: strings.ToUpper(strings.TrimSpace(defaultCurrency))}
	e.GET("/api/v1/rewards/phases", handler.phases)
	e.GET("/api/v1/rewards/progress", handler.progress)
}

// phases handles GET /api/v1/rewards/phases
func (h *RewardHandler) phases(c echo.Context) error {
	phases, err := h.rewards.LoadActivePhases(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load reward phases"))
	}
	return c.JSON(http.StatusOK, util.Data("phases", phases))
}

// progress handles GET /api/v1/rewards/progress
func (h *RewardHandler) progress(c echo.Context) error {
	totalCents, err := strconv.ParseInt(c.QueryParam("total_cents"), 10, 64)
	if err != nil || totalCents < 0 {
		return c.JSON(http.StatusBadRequest, util.Error("total_cents must be a non-negative integer"))
	}
	currency := strings.TrimSpace(c.QueryParam("currency"))
	if currency == "" {
		currency = h.defaultCurrency
	}
	if currency == "" {
		return c.JSON(http.StatusBadRequest, util.Error("currency is required"))
	}

	phases, err := h.rewards.LoadActivePhases(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load reward phases"))
	}
	return c.JSON(http.StatusOK, h.rewards.Progress(totalCents, currency, phases))
}
