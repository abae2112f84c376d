package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"voyage/internal/types"
)

// Geocoder resolves place names with the Google Geocoding API.
type Geocoder struct {
	client *maps.Client
}

func NewGeocoder(apiKey string, opts ...maps.ClientOption) (*Geocoder, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &Geocoder{client: client}, nil
}

func (g *Geocoder) Resolve(ctx context.Context, location string) (types.Point, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return types.Point{}, fmt.Errorf("%w: empty location", types.ErrNotFound)
	}
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: location})
	if err != nil {
		return types.Point{}, fmt.Errorf("%w: geocoding api: %v", types.ErrUpstream, err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%w: no results for location %q", types.ErrNotFound, location)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

func newClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: google maps api key is empty", types.ErrConfig)
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
