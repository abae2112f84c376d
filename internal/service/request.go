// README: Trip request, travel types and the outcome returned by one planning run.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"voyage/internal/modules/budget"
	"voyage/internal/types"
)

const DateLayout = "2006-01-02"

// ErrInvalidRequest is returned by Validate.
var ErrInvalidRequest = errors.New("invalid trip request")

type TravelType string

const (
	Relaxation     TravelType = "Relaxation"
	Adventure      TravelType = "Adventure"
	Sightseeing    TravelType = "Sightseeing"
	Family         TravelType = "Family"
	Romantic       TravelType = "Romantic"
	BudgetFriendly TravelType = "Budget-friendly"
)

var travelTypes = []TravelType{Relaxation, Adventure, Sightseeing, Family, Romantic, BudgetFriendly}

// ParseTravelType accepts any casing of a known travel type.
func ParseTravelType(s string) (TravelType, error) {
	s = strings.TrimSpace(s)
	for _, t := range travelTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown travel type %q", ErrInvalidRequest, s)
}

// TripRequest is immutable once built; a re-plan builds a new one.
type TripRequest struct {
	Destination  string      `json:"destination"`
	Departure    string      `json:"departure"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	Duration     int         `json:"duration"` // nights
	Adults       int         `json:"adults"`
	TravelType   TravelType  `json:"travel_type"`
	FlightBudget types.Money `json:"flight_budget"`
	HotelBudget  types.Money `json:"hotel_budget"`
}

// Validate checks the request shape. Duration is not cross-checked against the dates.
func (r TripRequest) Validate() error {
	var problems []string
	if strings.TrimSpace(r.Destination) == "" {
		problems = append(problems, "destination is required")
	}
	if strings.TrimSpace(r.Departure) == "" {
		problems = append(problems, "departure is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		problems = append(problems, "start and end dates are required")
	} else if r.EndDate.Before(r.StartDate) {
		problems = append(problems, "end_date is before start_date")
	}
	if r.Duration <= 0 {
		problems = append(problems, "duration must be positive")
	}
	if r.Adults <= 0 {
		problems = append(problems, "adults must be positive")
	}
	if _, err := ParseTravelType(string(r.TravelType)); err != nil {
		problems = append(problems, err.Error())
	}
	if r.FlightBudget.Amount <= 0 {
		problems = append(problems, "flight budget must be positive")
	}
	if r.HotelBudget.Amount <= 0 {
		problems = append(problems, "hotel budget must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}

// WithDestination returns a copy aimed at another destination; dates and budgets stay.
func (r TripRequest) WithDestination(dest string) TripRequest {
	r.Destination = dest
	return r
}

func (r TripRequest) start() string { return r.StartDate.Format(DateLayout) }
func (r TripRequest) end() string   { return r.EndDate.Format(DateLayout) }

// Step names a pipeline stage; the values double as metric and span labels.
type Step string

const (
	StepFetchWeather      Step = "fetch_weather"
	StepAnalyzeWeather    Step = "analyze_weather"
	StepSuggestAlternates Step = "suggest_alternates"
	StepSearchFlights     Step = "search_flights"
	StepSearchHotels      Step = "search_hotels"
	StepSearchAttractions Step = "search_attractions"
	StepCheckBudget       Step = "check_budget"
	StepGenerateItinerary Step = "generate_itinerary"
)

type RawData struct {
	Weather     *types.Forecast          `json:"weather"`
	Flights     *types.FlightResults     `json:"flights"`
	Hotels      *types.HotelResults      `json:"hotels"`
	Attractions *types.AttractionResults `json:"attractions"`
}

// Outcome is what a run hands back to the caller.
type Outcome struct {
	RunID                 types.ID      `json:"run_id"`
	Success               bool          `json:"success"`
	ItineraryMarkdown     string        `json:"itinerary_markdown"`
	WeatherFavorable      bool          `json:"weather_favorable"`
	WeatherAnalysis       string        `json:"weather_analysis"`
	AlternateDestinations []string      `json:"alternate_destinations"`
	AlternateReasons      []string      `json:"alternate_reasons,omitempty"`
	BudgetFeasible        bool          `json:"budget_feasible"`
	BudgetNotes           string        `json:"budget_notes"`
	Budget                budget.Result `json:"budget"`
	Messages              []string      `json:"messages"`
	Steps                 []Step        `json:"steps"`
	RawData               RawData       `json:"raw_data"`
}
