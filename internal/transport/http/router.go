package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sandsky/travel-backend/internal/service"
)

// RouterDeps collects everything the route table needs. The Enable flags gate
// whole route groups so a deployment can run booking-only or without the SEO
// dashboard.
type RouterDeps struct {
	Auth         *service.AuthService
	Trips        *service.TripService
	Destinations *service.DestinationService
	Blog         *service.BlogService
	Bookings     *service.BookingService
	Rewards      *service.RewardService
	Seo          *service.SeoService
	Site         *service.SiteService
	Gallery      *service.GalleryService

	DefaultCurrency    string
	EnablePublicAPI    bool
	EnableSeoDashboard bool
}

func NewRouter(allowOrigins []string, deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	allowCredentials := true
	for _, origin := range allowOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	registerLogging(e)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: allowCredentials,
	}))
	e.Pre(SeoRedirect(deps.Seo))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	RegisterAuth(e, deps.Auth)
	if deps.EnablePublicAPI {
		RegisterTrips(e, deps.Trips, deps.Seo)
		RegisterDestinations(e, deps.Destinations, deps.Seo)
		RegisterBlog(e, deps.Blog, deps.Seo)
		RegisterRewards(e, deps.Rewards, deps.DefaultCurrency)
		RegisterSeoPublic(e, deps.Seo)
		RegisterSite(e, deps.Site)
	}
	RegisterBookings(e, deps.Auth, deps.Bookings)
	if deps.EnableSeoDashboard {
		RegisterSeoDashboard(e, deps.Auth, deps.Seo)
	}
	RegisterDashboard(e, deps.Auth, deps.Bookings, deps.Rewards)
	RegisterGallery(e, deps.Auth, deps.Gallery)
	RegisterSwagger(e)

	return e
}
