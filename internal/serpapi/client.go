// README: SerpApi search engines (google_flights, google_hotels, tripadvisor).
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"voyage/internal/restclient"
	"voyage/internal/types"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// Client talks to one SerpApi account. TripAdvisor may use a separate key.
type Client struct {
	apiKey      string
	tripKey     string
	baseURL     string
	rest        *restclient.Client
	tripAdvisor string
}

type Option func(*Client)

// WithTripAdvisorKey uses key for the tripadvisor engine only.
func WithTripAdvisorKey(key string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) != "" {
			c.tripKey = key
		}
	}
}

// WithBaseURL points the client at another endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: serpapi key is empty", types.ErrConfig)
	}
	c := &Client{
		apiKey:      apiKey,
		tripKey:     apiKey,
		baseURL:     defaultBaseURL,
		rest:        restclient.New("serpapi", timeout),
		tripAdvisor: "www.tripadvisor.in",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// search runs one engine query. SerpApi reports some failures as 200 with an
// "error" field, so the body is checked before decoding into out.
func (c *Client) search(ctx context.Context, params url.Values, out any) error {
	var raw json.RawMessage
	if err := c.rest.GetJSON(ctx, c.baseURL, params, &raw); err != nil {
		return err
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: serpapi: %v", types.ErrParse, err)
	}
	if envelope.Error != "" {
		return fmt.Errorf("%w: serpapi %s: %s", types.ErrUpstream, params.Get("engine"), envelope.Error)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: serpapi %s: %v", types.ErrParse, params.Get("engine"), err)
	}
	return nil
}
