package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

var ErrTripNotFound = errors.New("trip not found")

const relatedTripLimit = 4

type TripService struct {
	trips ports.TripRepository
}

func NewTripService(tripRepo ports.TripRepository) *TripService {
	return &TripService{trips: tripRepo}
}

func (s *TripService) List(ctx context.Context, filter domain.TripListFilter) ([]domain.Trip, error) {
	return s.trips.List(ctx, filter)
}

// TripDetail is the full detail page payload.
type TripDetail struct {
	Content domain.TripContent `json:"content"`
	Related []domain.Trip      `json:"related_trips"`
	Reviews ReviewSummary      `json:"review_summary"`
}

type ReviewSummary struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

func summarizeReviews(reviews []domain.Review) ReviewSummary {
	summary := ReviewSummary{Count: len(reviews)}
	if summary.Count == 0 {
		return summary
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	summary.AverageRating = float64(total) / float64(summary.Count)
	return summary
}

// GetBySlug loads the trip with all child content and related trips. Curated
// relations come first; the list is padded with recent trips up to the limit.
func (s *TripService) GetBySlug(ctx context.Context, slug string) (*TripDetail, error) {
	trip, err := s.trips.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	content, err := s.trips.Content(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	related, err := s.relatedTrips(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	return &TripDetail{
		Content: *content,
		Related: related,
		Reviews: summarizeReviews(content.Reviews),
	}, nil
}

func (s *TripService) relatedTrips(ctx context.Context, tripID uuid.UUID) ([]domain.Trip, error) {
	relations, err := s.trips.ListRelations(ctx, tripID)
	if err != nil {
		return nil, err
	}

	related := make([]domain.Trip, 0, relatedTripLimit)
	seen := map[uuid.UUID]struct{}{tripID: {}}

	if len(relations) > 0 {
		ids := make([]uuid.UUID, 0, len(relations))
		for _, rel := range relations {
			ids = append(ids, rel.ToTrip)
		}
		curated, err := s.trips.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uuid.UUID]domain.Trip, len(curated))
		for _, t := range curated {
			byID[t.ID] = t
		}
		// Preserve the curated ordering, not the query ordering.
		for _, rel := range relations {
			if t, ok := byID[rel.ToTrip]; ok {
				if _, dup := seen[t.ID]; dup {
					continue
				}
				related = append(related, t)
				seen[t.ID] = struct{}{}
				if len(related) == relatedTripLimit {
					return related, nil
				}
			}
		}
	}

	fallback, err := s.trips.ListOthers(ctx, tripID, relatedTripLimit+len(seen))
	if err != nil {
		return nil, err
	}
	for _, t := range fallback {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		related = append(related, t)
		seen[t.ID] = struct{}{}
		if len(related) == relatedTripLimit {
			break
		}
	}
	return related, nil
}
