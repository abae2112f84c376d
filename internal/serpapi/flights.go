package serpapi

import (
	"context"
	"fmt"
	"net/url"

	"voyage/internal/types"
)

// SearchFlights returns round-trip options between two IATA codes, priced in INR.
func (c *Client) SearchFlights(ctx context.Context, origin, dest, outbound, inbound string) (*types.FlightResults, error) {
	if origin == "" || dest == "" {
		return nil, fmt.Errorf("%w: flight search needs both airport codes", types.ErrNotFound)
	}
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("api_key", c.apiKey)
	params.Set("departure_id", origin)
	params.Set("arrival_id", dest)
	params.Set("outbound_date", outbound)
	params.Set("return_date", inbound)
	params.Set("currency", "INR")
	params.Set("gl", "in")
	params.Set("hl", "en")
	params.Set("type", "1")
	params.Set("deep_search", "true")
	params.Set("sort_by", "2")

	var out types.FlightResults
	if err := c.search(ctx, params, &out); err != nil {
		return nil, err
	}
	out.DepartureID, out.ArrivalID = origin, dest
	return &out, nil
}
