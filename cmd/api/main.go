package main

import (
	"log"
	"time"

	"github.com/sandsky/travel-backend/internal/config"
	"github.com/sandsky/travel-backend/internal/logging"
	miniorepo "github.com/sandsky/travel-backend/internal/repository/minio"
	"github.com/sandsky/travel-backend/internal/repository/postgres"
	"github.com/sandsky/travel-backend/internal/service"
	transporthttp "github.com/sandsky/travel-backend/internal/transport/http"
	"github.com/sandsky/travel-backend/internal/transport/mail"
	"github.com/sandsky/travel-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if mirror := logging.Attach(cfg.LogstashTCPAddr); mirror != nil {
		defer mirror.Close()
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	destinationRepo := postgres.NewDestinationRepo(db)
	tripRepo := postgres.NewTripRepo(db)
	blogRepo := postgres.NewBlogRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	rewardRepo := postgres.NewRewardRepo(db)
	seoRepo := postgres.NewSeoRepo(db)
	staffRepo := postgres.NewStaffRepo(db)
	siteRepo := postgres.NewSiteRepo(db)

	siteService := service.NewSiteService(siteRepo)
	authService := service.NewAuthService(staffRepo, util.NewJWTManager(cfg.JWTSecret, sessionTTL))
	destinationService := service.NewDestinationService(destinationRepo, tripRepo)
	tripService := service.NewTripService(tripRepo)
	blogService := service.NewBlogService(blogRepo)
	rewardService := service.NewRewardService(rewardRepo)
	seoService := service.NewSeoService(seoRepo, tripRepo, destinationRepo, blogRepo, cfg.SiteBaseURL)
	mailer := mail.NewBookingMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, siteService)
	bookingService := service.NewBookingService(
		bookingRepo,
		tripRepo,
		rewardService,
		util.NewQuickActionSigner(cfg.QuickActionSecret),
		mailer,
	)

	var galleryService *service.GalleryService
	if cfg.R2Endpoint != "" {
		client, err := miniorepo.NewClient(cfg.R2Endpoint, cfg.R2AccessKey, cfg.R2SecretKey, cfg.R2UseSSL)
		if err != nil {
			log.Fatalf("connect object storage: %v", err)
		}
		storage := miniorepo.NewStorage(client, cfg.R2PublicBaseURL)
		galleryService = service.NewGalleryService(destinationRepo, storage, service.GalleryServiceConfig{
			Bucket:       cfg.R2Bucket,
			MaxBytes:     cfg.GalleryImageMax,
			MaxDimension: cfg.GalleryMaxDimension,
		})
	} else {
		log.Println("object storage not configured, gallery uploads disabled")
		galleryService = service.NewGalleryService(destinationRepo, nil, service.GalleryServiceConfig{})
	}

	e := transporthttp.NewRouter(cfg.AllowOrigins, transporthttp.RouterDeps{
		Auth:               authService,
		Trips:              tripService,
		Destinations:       destinationService,
		Blog:               blogService,
		Bookings:           bookingService,
		Rewards:            rewardService,
		Seo:                seoService,
		Site:               siteService,
		Gallery:            galleryService,
		DefaultCurrency:    cfg.DefaultCurrency,
		EnablePublicAPI:    cfg.EnablePublicAPI,
		EnableSeoDashboard: cfg.EnableSeoDashboard,
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
