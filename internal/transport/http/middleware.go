package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

const (
	contextUserKey  = "auth.staff"
	contextTokenKey = "auth.token"
)

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header"))
			}
			token := strings.TrimSpace(parts[1])
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
			}
			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

func CurrentStaff(c echo.Context) (*domain.StaffUser, bool) {
	user, ok := c.Get(contextUserKey).(*domain.StaffUser)
	return user, ok
}

// SeoRedirect consults the redirect table before routing. Matches are exact
// on the normalized path; the query string is carried over to the target.
func SeoRedirect(seo *service.SeoService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if seo == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}
			target, permanent, ok := seo.RedirectTarget(c.Request().Context(), c.Request().URL.Path)
			if !ok {
				return next(c)
			}
			if query := c.Request().URL.RawQuery; query != "" {
				if strings.Contains(target, "?") {
					target += "&" + query
				} else {
					target += "?" + query
				}
			}
			status := http.StatusFound
			if permanent {
				status = http.StatusMovedPermanently
			}
			return c.Redirect(status, target)
		}
	}
}
