package seed

import (
	"context"

	"github.com/sandsky/travel-backend/internal/domain"
)

// featuredGrid is the visual order of the destination grid, top-left to
// bottom-right. Position is 1-based.
var featuredGrid = []string{
	"Giza", "Cairo", "Alexandria", "Ain El Sokhna",
	"Fayoum", "Bahareya Oasis", "Sinai", "Siwa",
}

var destinationTaglines = map[string]string{
	"Siwa":                  "A remote oasis of salt lakes, palm groves and ancient springs",
	"Fayoum":                "Golden dunes, shimmering lakes and the Valley of the Whales",
	"White & Black Desert":  "Chalk formations and volcanic hills under a sea of stars",
	"Farafra":               "The quiet gateway to the White Desert",
	"Dakhla":                "Mudbrick villages and hot springs at the edge of the Sahara",
	"Kharga":                "Desert fortresses along the old caravan routes",
	"Bahareya Oasis":        "Palm gardens, golden mummies and black-topped mountains",
	"Giza":                  "The pyramids, the Sphinx and five thousand years of history",
	"Cairo":                 "The city that never sleeps, from Khan el-Khalili to the Nile",
	"Alexandria":            "The Mediterranean bride with its ancient library and sea forts",
	"Ain El Sokhna":         "The closest Red Sea escape to the capital",
	"Sinai":                 "Mountains, monasteries and reefs between two gulfs",
	"Luxor":                 "The world's greatest open-air museum",
	"Aswan":                 "Nubian islands and granite shores on the slow Nile",
}

// SeedDestinations upserts the fixed destination catalogue and enforces the
// featured grid ordering. Destinations outside the grid keep their rows but
// are never featured by this step.
func (s *Seeder) SeedDestinations(ctx context.Context) (UpsertResult, error) {
	var result UpsertResult

	featuredPos := make(map[string]int, len(featuredGrid))
	for i, name := range featuredGrid {
		featuredPos[name] = i + 1
	}

	for _, name := range domain.AllowedDestinationNames {
		dest := domain.Destination{Name: name}
		if tagline, ok := destinationTaglines[name]; ok {
			dest.Tagline = &tagline
		}

		existing, created, err := s.Destinations.Ensure(ctx, dest)
		if err != nil {
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		}

		pos, featured := featuredPos[name]
		changed := false
		if existing.IsFeatured != featured {
			existing.IsFeatured = featured
			changed = true
		}
		if featured && existing.FeaturedPosition != pos {
			existing.FeaturedPosition = pos
			changed = true
		}
		if existing.Tagline == nil && dest.Tagline != nil {
			existing.Tagline = dest.Tagline
			changed = true
		}
		if !changed {
			if !created {
				result.Skipped++
			}
			continue
		}
		if _, err := s.DestinationRepo.Update(ctx, existing); err != nil {
			return result, err
		}
		if !created {
			result.Updated++
		}
	}
	return result, nil
}
