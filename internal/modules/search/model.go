// README: Detailed search view: filter and sort options plus the views returned to clients.
package search

import (
	"errors"

	"voyage/internal/types"
	"voyage/internal/weather"
)

var ErrBadRequest = errors.New("bad search request")

const (
	StopsNonStop = "Non-stop"
	StopsOne     = "1 Stop"
	StopsTwoPlus = "2+ Stops"
)

type FlightSort string

const (
	FlightPriceAsc     FlightSort = "price_asc"
	FlightPriceDesc    FlightSort = "price_desc"
	FlightDurationAsc  FlightSort = "duration_asc"
	FlightDurationDesc FlightSort = "duration_desc"
)

type HotelSort string

const (
	HotelRecommended HotelSort = "recommended"
	HotelPriceAsc    HotelSort = "price_asc"
	HotelPriceDesc   HotelSort = "price_desc"
	HotelRatingDesc  HotelSort = "rating_desc"
)

type FlightQuery struct {
	Departure   string `json:"departure" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Outbound    string `json:"outbound_date" binding:"required"`
	Return      string `json:"return_date" binding:"required"`
}

type FlightFilter struct {
	MaxPrice *float64   `json:"max_price,omitempty"`
	Stops    []string   `json:"stops,omitempty"`
	Airlines []string   `json:"airlines,omitempty"`
	SortBy   FlightSort `json:"sort_by,omitempty"`
}

type FlightView struct {
	DepartureID   string               `json:"departure_id"`
	ArrivalID     string               `json:"arrival_id"`
	PriceInsights *types.PriceInsights `json:"price_insights,omitempty"`
	Airlines      []string             `json:"airlines"`
	Total         int                  `json:"total"`
	Options       []types.FlightOption `json:"options"`
}

type HotelQuery struct {
	Query    string `json:"query" binding:"required"`
	CheckIn  string `json:"check_in_date" binding:"required"`
	CheckOut string `json:"check_out_date" binding:"required"`
	Adults   int    `json:"adults"`
}

type HotelFilter struct {
	Amenities []string  `json:"amenities,omitempty"`
	MaxPrice  *float64  `json:"max_price,omitempty"`
	SortBy    HotelSort `json:"sort_by,omitempty"`
}

type HotelView struct {
	Amenities  []string              `json:"amenities"`
	Total      int                   `json:"total"`
	Properties []types.HotelProperty `json:"properties"`
}

// Overview gathers every source for one request; a failed section carries its error text.
type Overview struct {
	Weather     *types.Forecast          `json:"weather,omitempty"`
	Days        []weather.Day            `json:"days,omitempty"`
	Flights     *types.FlightResults     `json:"flights,omitempty"`
	Hotels      *types.HotelResults      `json:"hotels,omitempty"`
	Attractions *types.AttractionResults `json:"attractions,omitempty"`
	Errors      map[string]string        `json:"errors,omitempty"`
}
