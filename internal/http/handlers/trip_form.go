package handlers

import (
	"fmt"
	"strings"
	"time"

	"voyage/internal/modules/trips"
	"voyage/internal/service"
	"voyage/internal/types"
)

// tripForm is the wire shape of a trip request. Flight budget is INR, hotel
// budget is USD per night. Duration defaults to the nights between the dates.
type tripForm struct {
	Destination  string  `json:"destination" form:"destination"`
	Departure    string  `json:"departure" form:"departure"`
	StartDate    string  `json:"start_date" form:"start_date"`
	EndDate      string  `json:"end_date" form:"end_date"`
	Duration     int     `json:"duration" form:"duration"`
	Adults       int     `json:"adults" form:"adults"`
	TravelType   string  `json:"travel_type" form:"travel_type"`
	FlightBudget float64 `json:"flight_budget" form:"flight_budget"`
	HotelBudget  float64 `json:"hotel_budget" form:"hotel_budget"`
}

func (f tripForm) build() (service.TripRequest, error) {
	start, err := time.Parse(service.DateLayout, strings.TrimSpace(f.StartDate))
	if err != nil {
		return service.TripRequest{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", trips.ErrBadRequest)
	}
	end, err := time.Parse(service.DateLayout, strings.TrimSpace(f.EndDate))
	if err != nil {
		return service.TripRequest{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", trips.ErrBadRequest)
	}
	travelType, err := service.ParseTravelType(f.TravelType)
	if err != nil {
		return service.TripRequest{}, fmt.Errorf("%w: %v", trips.ErrBadRequest, err)
	}
	duration := f.Duration
	if duration == 0 {
		duration = int(end.Sub(start).Hours() / 24)
	}
	adults := f.Adults
	if adults == 0 {
		adults = 1
	}
	return service.TripRequest{
		Destination:  strings.TrimSpace(f.Destination),
		Departure:    strings.TrimSpace(f.Departure),
		StartDate:    start,
		EndDate:      end,
		Duration:     duration,
		Adults:       adults,
		TravelType:   travelType,
		FlightBudget: types.INR(f.FlightBudget),
		HotelBudget:  types.USD(f.HotelBudget),
	}, nil
}
