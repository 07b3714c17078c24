package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

type DashboardHandler struct {
	bookings *service.BookingService
	rewards  *service.RewardService
}

type DashboardSummary struct {
	Bookings           domain.BookingCounts `json:"bookings"`
	ActiveRewardPhases int                  `json:"active_reward_phases"`
}

func RegisterDashboard(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService, rewards *service.RewardService) {
	handler := &DashboardHandler{bookings: bookings, rewards: rewards}
	e.GET("/api/v1/staff/dashboard", handler.summary, RequireAuth(auth))
}

// summary handles GET /api/v1/staff/dashboard
func (h *DashboardHandler) summary(c echo.Context) error {
	counts, err := h.bookings.Counts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load booking counts"))
	}
	activePhases, err := h.rewards.CountActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load reward phases"))
	}
	return c.JSON(http.StatusOK, DashboardSummary{
		Bookings:           *counts,
		ActiveRewardPhases: activePhases,
	})
}
