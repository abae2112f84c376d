// README: OpenWeatherMap direct geocoding; resolves free-text places to coordinates.
package geocode

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voyage/internal/restclient"
	"voyage/internal/types"
)

const openWeatherGeoURL = "http://api.openweathermap.org/geo/1.0/direct"

// Resolver turns a place name into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, location string) (types.Point, error)
}

type Place struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// OpenWeather implements Resolver against the OpenWeatherMap geocoding API.
type OpenWeather struct {
	apiKey  string
	baseURL string
	rest    *restclient.Client
}

func NewOpenWeather(apiKey string, timeout time.Duration) (*OpenWeather, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: openweather api key is empty", types.ErrConfig)
	}
	return &OpenWeather{
		apiKey:  apiKey,
		baseURL: openWeatherGeoURL,
		rest:    restclient.New("openweather geocoding", timeout),
	}, nil
}

// Search returns up to limit matches, most relevant first.
func (g *OpenWeather) Search(ctx context.Context, location string, limit int) ([]Place, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", types.ErrNotFound)
	}
	params := url.Values{}
	params.Set("q", location)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("appid", g.apiKey)

	var places []Place
	if err := g.rest.GetJSON(ctx, g.baseURL, params, &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("%w: no results for location %q", types.ErrNotFound, location)
	}
	return places, nil
}

func (g *OpenWeather) Resolve(ctx context.Context, location string) (types.Point, error) {
	places, err := g.Search(ctx, location, 1)
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{Lat: places[0].Lat, Lng: places[0].Lon}, nil
}
