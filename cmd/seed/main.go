package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandsky/travel-backend/internal/config"
	miniorepo "github.com/sandsky/travel-backend/internal/repository/minio"
	"github.com/sandsky/travel-backend/internal/repository/postgres"
	"github.com/sandsky/travel-backend/internal/seed"
	"github.com/sandsky/travel-backend/internal/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Seed and maintain the travel catalogue",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	var tripDir, blogDir string

	destinationsCmd := &cobra.Command{
		Use:   "destinations",
		Short: "Upsert the fixed destination catalogue and featured grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, cleanup, err := buildSeeder()
			if err != nil {
				return err
			}
			defer cleanup()
			result, err := seeder.SeedDestinations(cmd.Context())
			if err != nil {
				return err
			}
			log.Printf("destinations: %s", result)
			return nil
		},
	}

	tripsCmd := &cobra.Command{
		Use:   "trips",
		Short: "Upsert trips from a directory of YAML files",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, cleanup, err := buildSeeder()
			if err != nil {
				return err
			}
			defer cleanup()
			result, err := seeder.SeedTrips(cmd.Context(), tripDir)
			if err != nil {
				return err
			}
			log.Printf("trips: %s", result)
			return nil
		},
	}
	tripsCmd.Flags().StringVar(&tripDir, "dir", "seeds/trips", "directory of trip YAML files")

	blogCmd := &cobra.Command{
		Use:   "blog",
		Short: "Upsert blog posts from a directory of YAML files",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, cleanup, err := buildSeeder()
			if err != nil {
				return err
			}
			defer cleanup()
			result, err := seeder.SeedBlog(cmd.Context(), blogDir)
			if err != nil {
				return err
			}
			log.Printf("blog: %s", result)
			return nil
		},
	}
	blogCmd.Flags().StringVar(&blogDir, "dir", "seeds/blog", "directory of blog YAML files")

	seoCmd := &cobra.Command{
		Use:   "seo",
		Short: "Backfill SEO entries for every known page",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, cleanup, err := buildSeeder()
			if err != nil {
				return err
			}
			defer cleanup()
			created, err := seeder.Seo.EnsureEntries(cmd.Context())
			if err != nil {
				return err
			}
			log.Printf("seo: created=%d", created)
			return nil
		},
	}

	var allTripDir, allBlogDir string
	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Run every seeding step, destinations first",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, cleanup, err := buildSeeder()
			if err != nil {
				return err
			}
			defer cleanup()

			results := seeder.RunAll(cmd.Context(), allTripDir, allBlogDir)
			failed := 0
			for _, step := range results {
				status := "ok"
				if step.Err != nil {
					status = "FAILED: " + step.Err.Error()
					failed++
				}
				log.Printf("%-14s %8s  %s  %s", step.Name, step.Duration.Round(time.Millisecond), step.Detail, status)
			}
			if failed > 0 {
				return fmt.Errorf("%d seeding step(s) failed", failed)
			}
			return nil
		},
	}
	allCmd.Flags().StringVar(&allTripDir, "trips-dir", "seeds/trips", "directory of trip YAML files")
	allCmd.Flags().StringVar(&allBlogDir, "blog-dir", "seeds/blog", "directory of blog YAML files")

	pricesCmd := &cobra.Command{
		Use:   "prices",
		Short: "Bulk price maintenance",
	}
	var (
		adultDelta       int64
		onlyDestinations string
		slugRegex        string
		includeServices  bool
		snapshotPath     string
		dryRun           bool
	)
	adjustCmd := &cobra.Command{
		Use:   "adjust",
		Short: "Add a fixed cent delta to matching trip base prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, cleanup, err := buildSeeder()
			if err != nil {
				return err
			}
			defer cleanup()

			opts := seed.AdjustPricesOptions{
				AdultDeltaCents: adultDelta,
				SlugRegex:       slugRegex,
				IncludeServices: includeServices,
				SnapshotPath:    snapshotPath,
				DryRun:          dryRun,
			}
			if onlyDestinations != "" {
				opts.OnlyDestinations = strings.Split(onlyDestinations, ",")
			}
			updated, err := seeder.AdjustPrices(cmd.Context(), opts)
			if err != nil {
				return err
			}
			log.Printf("prices: updated=%d", updated)
			return nil
		},
	}
	adjustCmd.Flags().Int64Var(&adultDelta, "adult-delta", 1500, "cents to add to each base price")
	adjustCmd.Flags().StringVar(&onlyDestinations, "only-destinations", "", "comma-separated destination names to include")
	adjustCmd.Flags().StringVar(&slugRegex, "slug-regex", "", "regex filter on trip slug")
	adjustCmd.Flags().BoolVar(&includeServices, "include-services", false, "include service rows, excluded by default")
	adjustCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write a before/after CSV to this path")
	adjustCmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview without writing")
	pricesCmd.AddCommand(adjustCmd)

	var staffEmail, staffName, staffPassword string
	staffCmd := &cobra.Command{
		Use:   "staff",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := postgres.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			auth := service.NewAuthService(postgres.NewStaffRepo(db), nil)
			user, err := auth.Bootstrap(cmd.Context(), staffEmail, staffName, staffPassword)
			if err != nil {
				return err
			}
			log.Printf("staff: created %s (%s)", user.Email, user.ID)
			return nil
		},
	}
	staffCmd.Flags().StringVar(&staffEmail, "email", "", "account email")
	staffCmd.Flags().StringVar(&staffName, "name", "", "display name")
	staffCmd.Flags().StringVar(&staffPassword, "password", "", "account password")
	_ = staffCmd.MarkFlagRequired("email")
	_ = staffCmd.MarkFlagRequired("password")

	probeCmd := &cobra.Command{
		Use:   "probe-dimensions",
		Short: "Backfill missing gallery image dimensions from object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, cleanup, err := buildSeeder()
			if err != nil {
				return err
			}
			defer cleanup()
			updated, failed, err := seeder.Gallery.ProbeMissingDimensions(cmd.Context())
			if err != nil {
				return err
			}
			log.Printf("probe-dimensions: updated=%d failed=%d", updated, failed)
			return nil
		},
	}

	root.AddCommand(destinationsCmd, tripsCmd, blogCmd, seoCmd, allCmd, pricesCmd, staffCmd, probeCmd)
	return root
}

func buildSeeder() (*seed.Seeder, func(), error) {
	cfg := config.Load()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	destinationRepo := postgres.NewDestinationRepo(db)
	tripRepo := postgres.NewTripRepo(db)
	blogRepo := postgres.NewBlogRepo(db)
	seoRepo := postgres.NewSeoRepo(db)

	var galleryService *service.GalleryService
	if cfg.R2Endpoint != "" {
		client, err := miniorepo.NewClient(cfg.R2Endpoint, cfg.R2AccessKey, cfg.R2SecretKey, cfg.R2UseSSL)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("connect object storage: %w", err)
		}
		storage := miniorepo.NewStorage(client, cfg.R2PublicBaseURL)
		galleryService = service.NewGalleryService(destinationRepo, storage, service.GalleryServiceConfig{
			Bucket:       cfg.R2Bucket,
			MaxBytes:     cfg.GalleryImageMax,
			MaxDimension: cfg.GalleryMaxDimension,
		})
	} else {
		galleryService = service.NewGalleryService(destinationRepo, nil, service.GalleryServiceConfig{})
	}

	seeder := &seed.Seeder{
		Destinations:    service.NewDestinationService(destinationRepo, tripRepo),
		DestinationRepo: destinationRepo,
		Trips:           tripRepo,
		Blog:            blogRepo,
		Seo:             service.NewSeoService(seoRepo, tripRepo, destinationRepo, blogRepo, cfg.SiteBaseURL),
		Gallery:         galleryService,
	}
	return seeder, func() { db.Close() }, nil
}
