package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
)

// AdjustPricesOptions filters which trips get the bulk price delta.
type AdjustPricesOptions struct {
	AdultDeltaCents  int64
	OnlyDestinations []string
	SlugRegex        string
	IncludeServices  bool
	SnapshotPath     string
	DryRun           bool
}

// AdjustPrices applies a fixed cent delta to the base price of every matching
// trip. Prices never go below zero. A snapshot CSV with before/after values
// can be written regardless of dry-run.
func (s *Seeder) AdjustPrices(ctx context.Context, opts AdjustPricesOptions) (int, error) {
	var slugPattern *regexp.Regexp
	if strings.TrimSpace(opts.SlugRegex) != "" {
		compiled, err := regexp.Compile(opts.SlugRegex)
		if err != nil {
			return 0, fmt.Errorf("invalid slug regex: %w", err)
		}
		slugPattern = compiled
	}

	wantedDestinations := make(map[string]struct{}, len(opts.OnlyDestinations))
	for _, name := range opts.OnlyDestinations {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			wantedDestinations[trimmed] = struct{}{}
		}
	}

	trips, err := s.Trips.List(ctx, domain.TripListFilter{IncludeServices: opts.IncludeServices})
	if err != nil {
		return 0, err
	}

	matched := make([]domain.Trip, 0, len(trips))
	for _, trip := range trips {
		if len(wantedDestinations) > 0 {
			if trip.DestinationName == nil {
				continue
			}
			if _, ok := wantedDestinations[*trip.DestinationName]; !ok {
				continue
			}
		}
		if slugPattern != nil && !slugPattern.MatchString(trip.Slug) {
			continue
		}
		matched = append(matched, trip)
	}
	if len(matched) == 0 {
		log.Println("seed prices: no trips matched the filters")
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(matched))
	for _, trip := range matched {
		newPrice := trip.BasePriceCents + opts.AdultDeltaCents
		if newPrice < 0 {
			newPrice = 0
		}
		log.Printf("seed prices: %s | %s | %d -> %d", trip.Slug, trip.Title, trip.BasePriceCents, newPrice)
		ids = append(ids, trip.ID)
	}

	if opts.SnapshotPath != "" {
		if err := writePriceSnapshot(opts.SnapshotPath, matched, opts.AdultDeltaCents); err != nil {
			return 0, err
		}
	}
	if opts.DryRun {
		log.Printf("seed prices: dry-run, %d trip(s) would change", len(ids))
		return 0, nil
	}
	return s.Trips.AdjustBasePrices(ctx, ids, opts.AdultDeltaCents)
}

func writePriceSnapshot(path string, trips []domain.Trip, deltaCents int64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"trip_id", "slug", "title", "destination", "old_cents", "new_cents", "is_service"}); err != nil {
		return err
	}
	for _, trip := range trips {
		destination := ""
		if trip.DestinationName != nil {
			destination = *trip.DestinationName
		}
		newPrice := trip.BasePriceCents + deltaCents
		if newPrice < 0 {
			newPrice = 0
		}
		record := []string{
			trip.ID.String(),
			trip.Slug,
			trip.Title,
			destination,
			strconv.FormatInt(trip.BasePriceCents, 10),
			strconv.FormatInt(newPrice, 10),
			strconv.FormatBool(trip.IsService),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
