// README: Amadeus reference-data client; finds the airport nearest to a named place.
package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"voyage/internal/geocode"
	"voyage/internal/logger"
	"voyage/internal/restclient"
	"voyage/internal/types"
)

const (
	// tokenSafety is subtracted from expires_in so a token is never used at the edge of expiry.
	tokenSafety   = 30 * time.Second
	searchRadius  = 500
	defaultPage   = 5
	tokenPath     = "/v1/security/oauth2/token"
	airportsPath  = "/v1/reference-data/locations/airports"
	defaultAPIURL = "https://test.api.amadeus.com"
)

type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Timeout   time.Duration
	// PageLimit is how many airports within the radius are compared; 0 means 5.
	PageLimit int
}

type Client struct {
	cfg   Config
	rest  *restclient.Client
	geo   geocode.Resolver
	cache TokenCache
}

func NewClient(cfg Config, geo geocode.Resolver, cache TokenCache) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return nil, fmt.Errorf("%w: amadeus api key and secret are required", types.ErrConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIURL
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = defaultPage
	}
	if cache == nil {
		cache = NewMemoryTokenCache()
	}
	return &Client{
		cfg:   cfg,
		rest:  restclient.New("amadeus", cfg.Timeout),
		geo:   geo,
		cache: cache,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached access token or fetches a new one with client credentials.
func (c *Client) token(ctx context.Context) (string, error) {
	if tok, ok, err := c.cache.Get(ctx, c.cfg.APIKey); err != nil {
		logger.Log.Warn("amadeus token cache read failed", zap.Error(err))
	} else if ok {
		return tok, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.APIKey)
	form.Set("client_secret", c.cfg.APISecret)
	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tr tokenResponse
	if err := c.rest.Do(ctx, http.MethodPost, c.cfg.BaseURL+tokenPath, nil, header, strings.NewReader(form.Encode()), &tr); err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: amadeus: token response without access_token", types.ErrParse)
	}

	ttl := time.Duration(tr.ExpiresIn)*time.Second - tokenSafety
	if ttl > 0 {
		if err := c.cache.Set(ctx, c.cfg.APIKey, tr.AccessToken, ttl); err != nil {
			logger.Log.Warn("amadeus token cache write failed", zap.Error(err))
		}
	}
	return tr.AccessToken, nil
}

type airportsResponse struct {
	Data []Airport `json:"data"`
}

type Airport struct {
	Name     string `json:"name"`
	IATACode string `json:"iataCode"`
	GeoCode  struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"geoCode"`
	Address struct {
		CityName    string `json:"cityName"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
	DistanceKm float64 `json:"-"`
}

// Airports lists airports within 500 km of location, nearest first.
func (c *Client) Airports(ctx context.Context, location string) ([]Airport, error) {
	point, err := c.geo.Resolve(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", location, err)
	}
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	airports, err := c.searchAirports(ctx, point, tok)
	if restclient.StatusCode(err) == http.StatusUnauthorized {
		// The cached token was revoked or expired early; drop it and try once more.
		logger.Log.Warn("amadeus rejected access token, refreshing", zap.String("location", location))
		if derr := c.cache.Delete(ctx, c.cfg.APIKey); derr != nil {
			logger.Log.Warn("amadeus token cache delete failed", zap.Error(derr))
		}
		if tok, err = c.token(ctx); err != nil {
			return nil, err
		}
		airports, err = c.searchAirports(ctx, point, tok)
	}
	if err != nil {
		return nil, fmt.Errorf("airport search: %w", err)
	}

	for i := range airports {
		a := &airports[i]
		a.DistanceKm = distanceKm(point, types.Point{Lat: a.GeoCode.Latitude, Lng: a.GeoCode.Longitude})
	}
	sortByDistance(airports, func(a Airport) float64 { return a.DistanceKm })
	return airports, nil
}

func (c *Client) searchAirports(ctx context.Context, point types.Point, tok string) ([]Airport, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(point.Lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(searchRadius))
	params.Set("page[limit]", strconv.Itoa(c.cfg.PageLimit))
	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok)

	var resp airportsResponse
	if err := c.rest.Do(ctx, http.MethodGet, c.cfg.BaseURL+airportsPath, params, header, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// NearestAirport returns the IATA code of the airport closest to location.
func (c *Client) NearestAirport(ctx context.Context, location string) (string, error) {
	airports, err := c.Airports(ctx, location)
	if err != nil {
		return "", err
	}
	for _, a := range airports {
		if a.IATACode != "" {
			return a.IATACode, nil
		}
	}
	return "", fmt.Errorf("%w: no airport within %d km of %q", types.ErrNotFound, searchRadius, location)
}
