package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"voyage/internal/types"
)

// SearchAttractions asks TripAdvisor for things to do in location.
func (c *Client) SearchAttractions(ctx context.Context, location string) (*types.AttractionResults, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", types.ErrNotFound)
	}
	params := url.Values{}
	params.Set("engine", "tripadvisor")
	params.Set("api_key", c.tripKey)
	params.Set("q", location)
	params.Set("tripadvisor_domain", c.tripAdvisor)
	params.Set("ssrc", "A")

	var out types.AttractionResults
	if err := c.search(ctx, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
