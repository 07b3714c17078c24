package seed

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/util"
)

// tripFile is the YAML schema a trip seed file follows. One file per trip.
type tripFile struct {
	Title          string  `json:"title"`
	Destination    string  `json:"destination"`
	Teaser         string  `json:"teaser"`
	CardImageURL   *string `json:"card_image_url"`
	HeroImageURL   *string `json:"hero_image_url"`
	DurationDays   int     `json:"duration_days"`
	GroupSizeMax   int     `json:"group_size_max"`
	BasePriceCents int64   `json:"base_price_cents"`
	Currency       string  `json:"currency"`
	TourTypeLabel  string  `json:"tour_type_label"`
	IsService      bool    `json:"is_service"`

	Highlights []string `json:"highlights"`
	About      string   `json:"about"`
	Itinerary  []struct {
		Day   int    `json:"day"`
		Title string `json:"title"`
		Steps []struct {
			Time        *string `json:"time"`
			Title       string  `json:"title"`
			Description *string `json:"description"`
		} `json:"steps"`
	} `json:"itinerary"`
	Inclusions []string `json:"inclusions"`
	Exclusions []string `json:"exclusions"`
	FAQs       []struct {
		Question string  `json:"question"`
		Answer   *string `json:"answer"`
	} `json:"faqs"`
	Extras []struct {
		Name       string `json:"name"`
		PriceCents int64  `json:"price_cents"`
	} `json:"extras"`
	AdditionalDestinations []string `json:"additional_destinations"`
}

// SeedTrips loads every .yaml/.yml file under dir and upserts one trip per
// file, keyed on title. A file whose destination is not in the catalogue is
// logged and skipped rather than failing the run.
func (s *Seeder) SeedTrips(ctx context.Context, dir string) (UpsertResult, error) {
	var result UpsertResult

	files, err := listYAMLFiles(dir)
	if err != nil {
		return result, err
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("seed trips: read %s: %v", file, err)
			result.Skipped++
			continue
		}
		var spec tripFile
		if err := yaml.Unmarshal(data, &spec); err != nil {
			log.Printf("seed trips: parse %s: %v", file, err)
			result.Skipped++
			continue
		}
		if strings.TrimSpace(spec.Title) == "" {
			log.Printf("seed trips: %s has no title, skipping", file)
			result.Skipped++
			continue
		}

		dest, err := s.DestinationRepo.FindByName(ctx, strings.TrimSpace(spec.Destination))
		if err != nil {
			log.Printf("seed trips: %s: destination %q not found, skipping", file, spec.Destination)
			result.Skipped++
			continue
		}

		trip, created, err := s.upsertTrip(ctx, spec, dest.ID)
		if err != nil {
			log.Printf("seed trips: %s: %v", file, err)
			result.Skipped++
			continue
		}
		if err := s.writeTripChildren(ctx, trip.ID, spec); err != nil {
			return result, fmt.Errorf("write children for %q: %w", spec.Title, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func (s *Seeder) upsertTrip(ctx context.Context, spec tripFile, destinationID uuid.UUID) (*domain.Trip, bool, error) {
	currency := strings.ToUpper(strings.TrimSpace(spec.Currency))
	if currency == "" {
		currency = "USD"
	}

	existing, err := s.Trips.FindByTitle(ctx, spec.Title)
	if err == nil {
		existing.DestinationID = destinationID
		existing.Teaser = spec.Teaser
		existing.CardImageURL = spec.CardImageURL
		existing.HeroImageURL = spec.HeroImageURL
		existing.DurationDays = spec.DurationDays
		existing.GroupSizeMax = spec.GroupSizeMax
		existing.BasePriceCents = spec.BasePriceCents
		existing.Currency = currency
		existing.TourTypeLabel = spec.TourTypeLabel
		existing.IsService = spec.IsService
		updated, err := s.Trips.Update(ctx, existing)
		return updated, false, err
	}

	var slugErr error
	slug := util.UniqueSlug(spec.Title, func(candidate string) bool {
		exists, existsErr := s.Trips.SlugExists(ctx, candidate)
		if existsErr != nil {
			slugErr = existsErr
			return false
		}
		return exists
	})
	if slugErr != nil {
		return nil, false, slugErr
	}

	created, err := s.Trips.Create(ctx, &domain.Trip{
		Title:          spec.Title,
		Slug:           slug,
		DestinationID:  destinationID,
		Teaser:         spec.Teaser,
		CardImageURL:   spec.CardImageURL,
		HeroImageURL:   spec.HeroImageURL,
		DurationDays:   spec.DurationDays,
		GroupSizeMax:   spec.GroupSizeMax,
		BasePriceCents: spec.BasePriceCents,
		Currency:       currency,
		TourTypeLabel:  spec.TourTypeLabel,
		IsService:      spec.IsService,
	})
	return created, true, err
}

func (s *Seeder) writeTripChildren(ctx context.Context, tripID uuid.UUID, spec tripFile) error {
	highlights := make([]domain.TripHighlight, 0, len(spec.Highlights))
	for i, text := range spec.Highlights {
		highlights = append(highlights, domain.TripHighlight{Text: text, Position: i})
	}
	if err := s.Trips.ReplaceHighlights(ctx, tripID, highlights); err != nil {
		return err
	}

	if strings.TrimSpace(spec.About) != "" {
		if err := s.Trips.UpsertAbout(ctx, tripID, spec.About); err != nil {
			return err
		}
	}

	days := make([]domain.TripItineraryDay, 0, len(spec.Itinerary))
	for _, day := range spec.Itinerary {
		entry := domain.TripItineraryDay{DayNumber: day.Day, Title: day.Title}
		for i, step := range day.Steps {
			entry.Steps = append(entry.Steps, domain.TripItineraryStep{
				TimeLabel:   step.Time,
				Title:       step.Title,
				Description: step.Description,
				Position:    i,
			})
		}
		days = append(days, entry)
	}
	if err := s.Trips.ReplaceItinerary(ctx, tripID, days); err != nil {
		return err
	}

	inclusions := make([]domain.TripInclusion, 0, len(spec.Inclusions))
	for i, text := range spec.Inclusions {
		inclusions = append(inclusions, domain.TripInclusion{Text: text, Position: i})
	}
	if err := s.Trips.ReplaceInclusions(ctx, tripID, inclusions); err != nil {
		return err
	}

	exclusions := make([]domain.TripExclusion, 0, len(spec.Exclusions))
	for i, text := range spec.Exclusions {
		exclusions = append(exclusions, domain.TripExclusion{Text: text, Position: i})
	}
	if err := s.Trips.ReplaceExclusions(ctx, tripID, exclusions); err != nil {
		return err
	}

	faqs := make([]domain.TripFAQ, 0, len(spec.FAQs))
	for i, faq := range spec.FAQs {
		faqs = append(faqs, domain.TripFAQ{Question: faq.Question, Answer: faq.Answer, Position: i})
	}
	if err := s.Trips.ReplaceFAQs(ctx, tripID, faqs); err != nil {
		return err
	}

	extras := make([]domain.TripExtra, 0, len(spec.Extras))
	for i, extra := range spec.Extras {
		extras = append(extras, domain.TripExtra{Name: extra.Name, PriceCents: extra.PriceCents, Position: i})
	}
	if err := s.Trips.ReplaceExtras(ctx, tripID, extras); err != nil {
		return err
	}

	if len(spec.AdditionalDestinations) > 0 {
		ids := make([]uuid.UUID, 0, len(spec.AdditionalDestinations))
		for _, name := range spec.AdditionalDestinations {
			dest, err := s.DestinationRepo.FindByName(ctx, strings.TrimSpace(name))
			if err != nil {
				log.Printf("seed trips: additional destination %q not found, skipping", name)
				continue
			}
			ids = append(ids, dest.ID)
		}
		if err := s.Trips.SetAdditionalDestinations(ctx, tripID, ids); err != nil {
			return err
		}
	}
	return nil
}

func listYAMLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
