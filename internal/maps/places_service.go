package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"voyage/internal/types"
)

// PlacesService searches points of interest with the Google Places text search API.
// It serves as the attraction source when TripAdvisor results are not wanted.
type PlacesService struct {
	client    *maps.Client
	minRating float32
	limit     int
}

// NewPlacesService creates a new PlacesService with the given API Key.
// Extra client options (e.g. maps.WithBaseURL in tests) are passed through.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &PlacesService{client: client, minRating: 3.5, limit: 20}, nil
}

// SearchAttractions returns well-rated tourist attractions in location, in the
// same shape as the TripAdvisor search so the planner can use either.
func (s *PlacesService) SearchAttractions(ctx context.Context, location string) (*types.AttractionResults, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", types.ErrNotFound)
	}
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    "top attractions in " + location,
		Language: "en",
		Type:     maps.PlaceTypeTouristAttraction,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: places api: %v", types.ErrUpstream, err)
	}

	out := &types.AttractionResults{}
	for _, r := range resp.Results {
		if r.Rating > 0 && r.Rating < s.minRating {
			continue
		}
		rating := float64(r.Rating)
		out.Locations = append(out.Locations, types.Attraction{
			Title:     r.Name,
			PlaceID:   r.PlaceID,
			PlaceType: firstOr(r.Types, "attraction"),
			Location:  r.FormattedAddress,
			Rating:    &rating,
			Reviews:   r.UserRatingsTotal,
		})
		if len(out.Locations) >= s.limit {
			break
		}
	}
	if len(out.Locations) == 0 {
		return nil, fmt.Errorf("%w: no attractions for %q", types.ErrNotFound, location)
	}
	return out, nil
}

func firstOr(list []string, def string) string {
	if len(list) == 0 {
		return def
	}
	return list[0]
}
