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

type noPhaseRewardRepo struct{}

func (r *noPhaseRewardRepo) ListPhases(_ context.Context, _ bool) ([]domain.RewardPhase, error) {
	return nil, nil
}
func (r *noPhaseRewardRepo) FindPhaseByID(_ context.Context, _ uuid.UUID) (*domain.RewardPhase, error) {
	return nil, sql.ErrNoRows
}
func (r *noPhaseRewardRepo) CreatePhase(_ context.Context, phase *domain.RewardPhase) (*domain.RewardPhase, error) {
	return phase, nil
}
func (r *noPhaseRewardRepo) SetPhaseTrips(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error {
	return nil
}
func (r *noPhaseRewardRepo) CountActive(_ context.Context) (int, error) {
	return 0, nil
}
func (r *noPhaseRewardRepo) PhaseSlugExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func routePaths(e *echo.Echo) map[string]bool {
	paths := make(map[string]bool)
	for _, route := range e.Routes() {
		paths[route.Method+" "+route.Path] = true
	}
	return paths
}

func TestNewRouterRegistersGatedGroups(t *testing.T) {
	e := NewRouter([]string{"*"}, RouterDeps{
		EnablePublicAPI:    true,
		EnableSeoDashboard: true,
	})
	paths := routePaths(e)

	for _, want := range []string{
		"GET /api/v1/trips",
		"GET /api/v1/seo/static/:code",
		"GET /api/v1/staff/seo/entries",
		"POST /api/v1/bookings",
		"GET /health",
	} {
		if !paths[want] {
			t.Errorf("expected route %s to be registered", want)
		}
	}
}

func TestNewRouterHonorsDisabledFlags(t *testing.T) {
	e := NewRouter([]string{"*"}, RouterDeps{
		EnablePublicAPI:    false,
		EnableSeoDashboard: false,
	})
	paths := routePaths(e)

	for _, gone := range []string{
		"GET /api/v1/trips",
		"GET /api/v1/blog",
		"GET /api/v1/rewards/phases",
		"GET /api/v1/seo/static/:code",
		"GET /api/v1/staff/seo/entries",
	} {
		if paths[gone] {
			t.Errorf("expected route %s to be gated off", gone)
		}
	}
	// Bookings and auth stay up regardless.
	for _, want := range []string{
		"POST /api/v1/bookings",
		"POST /api/v1/auth/login",
	} {
		if !paths[want] {
			t.Errorf("expected route %s to survive the flags", want)
		}
	}
}

func TestRewardProgressFallsBackToDefaultCurrency(t *testing.T) {
	e := echo.New()
	RegisterRewards(e, service.NewRewardService(&noPhaseRewardRepo{}), "usd")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rewards/progress?total_cents=5000", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with the default currency, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRewardProgressRequiresSomeCurrency(t *testing.T) {
	e := echo.New()
	RegisterRewards(e, service.NewRewardService(&noPhaseRewardRepo{}), "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rewards/progress?total_cents=5000", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without any currency, got %d", rec.Code)
	}
}
