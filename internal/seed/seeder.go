package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sandsky/travel-backend/internal/repository/ports"
	"github.com/sandsky/travel-backend/internal/service"
)

// Seeder bundles everything the seeding commands need. Every step is
// idempotent so the whole set can be re-run against a populated database.
type Seeder struct {
	Destinations    *service.DestinationService
	DestinationRepo ports.DestinationRepository
	Trips           ports.TripRepository
	Blog            ports.BlogRepository
	Seo             *service.SeoService
	Gallery         *service.GalleryService
}

// StepResult is one line of the run-all summary.
type StepResult struct {
	Name     string
	Duration time.Duration
	Detail   string
	Err      error
}

// RunAll executes every seeding step, destinations first so the later steps
// can resolve their catalogue references. Failures are collected, not fatal.
func (s *Seeder) RunAll(ctx context.Context, tripDir, blogDir string) []StepResult {
	steps := []struct {
		name string
		run  func(context.Context) (string, error)
	}{
		{"destinations", func(ctx context.Context) (string, error) {
			res, err := s.SeedDestinations(ctx)
			return res.String(), err
		}},
		{"trips", func(ctx context.Context) (string, error) {
			res, err := s.SeedTrips(ctx, tripDir)
			return res.String(), err
		}},
		{"blog", func(ctx context.Context) (string, error) {
			res, err := s.SeedBlog(ctx, blogDir)
			return res.String(), err
		}},
		{"seo", func(ctx context.Context) (string, error) {
			created, err := s.Seo.EnsureEntries(ctx)
			return fmt.Sprintf("created=%d", created), err
		}},
	}

	results := make([]StepResult, 0, len(steps))
	for _, step := range steps {
		start := time.Now()
		detail, err := step.run(ctx)
		results = append(results, StepResult{
			Name:     step.name,
			Duration: time.Since(start),
			Detail:   detail,
			Err:      err,
		})
		if err != nil {
			log.Printf("seed step %s failed: %v", step.name, err)
		}
	}
	return results
}

// UpsertResult counts what a seeding step did.
type UpsertResult struct {
	Created int
	Updated int
	Skipped int
}

func (r UpsertResult) String() string {
	return fmt.Sprintf("created=%d updated=%d skipped=%d", r.Created, r.Updated, r.Skipped)
}
