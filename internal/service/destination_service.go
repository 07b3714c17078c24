package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
	"github.com/sandsky/travel-backend/internal/util"
)

var (
	ErrDestinationNotFound   = errors.New("destination not found")
	ErrDestinationValidation = errors.New("destination validation failed")
)

type DestinationService struct {
	destinations ports.DestinationRepository
	trips        ports.TripRepository
}

func NewDestinationService(destinationRepo ports.DestinationRepository, tripRepo ports.TripRepository) *DestinationService {
	return &DestinationService{
		destinations: destinationRepo,
		trips:        tripRepo,
	}
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.destinations.List(ctx)
}

func (s *DestinationService) ListFeatured(ctx context.Context) ([]domain.Destination, error) {
	return s.destinations.ListFeatured(ctx)
}

// DestinationDetail is the landing page payload: the destination, its gallery
// and the trips that visit it.
type DestinationDetail struct {
	Destination domain.Destination `json:"destination"`
	Trips       []domain.Trip      `json:"trips"`
}

func (s *DestinationService) GetBySlug(ctx context.Context, slug string) (*DestinationDetail, error) {
	dest, err := s.destinations.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	gallery, err := s.destinations.ListGalleryImages(ctx, dest.ID)
	if err != nil {
		return nil, err
	}
	dest.Gallery = gallery

	trips, err := s.trips.List(ctx, domain.TripListFilter{DestinationSlug: dest.Slug})
	if err != nil {
		return nil, err
	}

	return &DestinationDetail{Destination: *dest, Trips: trips}, nil
}

// Ensure creates the destination when absent, keyed on its catalogue name.
func (s *DestinationService) Ensure(ctx context.Context, dest domain.Destination) (*domain.Destination, bool, error) {
	name := strings.TrimSpace(dest.Name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: name is required", ErrDestinationValidation)
	}
	if !domain.IsAllowedDestinationName(name) {
		return nil, false, fmt.Errorf("%w: %q is not in the destination catalogue", ErrDestinationValidation, name)
	}

	existing, err := s.destinations.FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	dest.Name = name
	if dest.Slug == "" {
		var slugErr error
		dest.Slug = util.UniqueSlug(name, func(candidate string) bool {
			exists, existsErr := s.destinations.SlugExists(ctx, candidate)
			if existsErr != nil {
				slugErr = existsErr
				return false
			}
			return exists
		})
		if slugErr != nil {
			return nil, false, slugErr
		}
	}

	created, err := s.destinations.Create(ctx, &dest)
	if err != nil {
		if isUniqueViolation(err) {
			existing, findErr := s.destinations.FindByName(ctx, name)
			if findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return created, true, nil
}
