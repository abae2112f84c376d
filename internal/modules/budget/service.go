// README: Budget service compares the cheapest flight and hotel against the traveller's limits.
package budget

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"voyage/internal/logger"
	"voyage/internal/types"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Check never fails: a missing or unpriced payload leaves its half out of the notes.
func (s *Service) Check(flights *types.FlightResults, hotels *types.HotelResults, limits Limits) Result {
	var res Result

	if flights != nil {
		if price, ok := CheapestFlight(flights.BestFlights); ok {
			cost := types.Money{Amount: price, Currency: limits.Flight.Currency}
			res.FlightCost = &cost
			if price > limits.Flight.Amount {
				res.Notes = append(res.Notes, fmt.Sprintf("Flight cost (%s) exceeds budget (%s)", cost, limits.Flight))
			} else {
				res.Notes = append(res.Notes, fmt.Sprintf("Flights within budget: %s", cost))
			}
		} else if len(flights.BestFlights) > 0 {
			logger.Log.Warn("budget check skipped flights: no priced option", zap.Int("options", len(flights.BestFlights)))
		}
	}

	if hotels != nil {
		if rate, ok := CheapestNightlyRate(hotels.Properties); ok {
			r := types.Money{Amount: rate, Currency: limits.Hotel.Currency}
			total := types.Money{Amount: rate * float64(limits.Nights), Currency: limits.Hotel.Currency}
			res.HotelRate, res.HotelTotal = &r, &total
			if rate > limits.Hotel.Amount {
				res.Notes = append(res.Notes, fmt.Sprintf("Hotel cost (%s/night) exceeds budget (%s/night)", r, limits.Hotel))
			} else {
				res.Notes = append(res.Notes, fmt.Sprintf("Hotels within budget: %s/night", r))
			}
		} else if len(hotels.Properties) > 0 {
			logger.Log.Warn("budget check skipped hotels: no priced property", zap.Int("properties", len(hotels.Properties)))
		}
	}

	res.Feasible = true
	for _, n := range res.Notes {
		if strings.Contains(n, "exceeds") {
			res.Feasible = false
			break
		}
	}
	return res
}

// CheapestFlight returns the lowest price among options; unpriced options never win.
func CheapestFlight(options []types.FlightOption) (float64, bool) {
	var best float64
	found := false
	for _, o := range options {
		if o.Price == nil {
			continue
		}
		if !found || *o.Price < best {
			best, found = *o.Price, true
		}
	}
	return best, found
}

// CheapestNightlyRate uses rate_per_night.extracted_lowest only.
func CheapestNightlyRate(props []types.HotelProperty) (float64, bool) {
	var best float64
	found := false
	for _, p := range props {
		if p.RatePerNight == nil || p.RatePerNight.ExtractedLowest == nil {
			continue
		}
		if v := *p.RatePerNight.ExtractedLowest; !found || v < best {
			best, found = v, true
		}
	}
	return best, found
}
