package service

import (
	"context"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

type SiteService struct {
	site ports.SiteRepository
}

func NewSiteService(siteRepo ports.SiteRepository) *SiteService {
	return &SiteService{site: siteRepo}
}

func (s *SiteService) Configuration(ctx context.Context) (*domain.SiteConfiguration, error) {
	return s.site.GetConfiguration(ctx)
}

func (s *SiteService) BookingEmailSettings(ctx context.Context) (*domain.BookingEmailSettings, error) {
	return s.site.GetBookingEmailSettings(ctx)
}
