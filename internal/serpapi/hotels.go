package serpapi

import (
	"context"
	"net/url"
	"strconv"

	"voyage/internal/types"
)

// SearchHotels runs a free-text hotel query, nightly rates in USD.
func (c *Client) SearchHotels(ctx context.Context, query, checkIn, checkOut string, adults int) (*types.HotelResults, error) {
	if adults <= 0 {
		adults = 2
	}
	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("api_key", c.apiKey)
	params.Set("q", query)
	params.Set("check_in_date", checkIn)
	params.Set("check_out_date", checkOut)
	params.Set("adults", strconv.Itoa(adults))
	params.Set("gl", "us")
	params.Set("hl", "en")
	params.Set("currency", "USD")

	var out types.HotelResults
	if err := c.search(ctx, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
