package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voyage/internal/ai"
	"voyage/internal/modules/budget"
	"voyage/internal/weather"
)

const (
	analysisUnavailable = "Weather data unavailable, proceeding with planning."
	analysisFailed      = "Could not analyze weather, proceeding with planning."
	itineraryFailed     = "# Error generating itinerary\n\nPlease try again."
)

func (p *TripPlanner) fetchWeather(ctx context.Context, rec *planningRecord) error {
	fc, err := p.deps.Weather.Forecast(ctx, rec.Destination, rec.StartDate, rec.EndDate)
	if err != nil {
		rec.weather = nil
		rec.trace(fmt.Sprintf("Weather fetch error: %v", err))
		return err
	}
	rec.weather = fc
	remarks := fc.Remarks
	if remarks == "" {
		remarks = "Success"
	}
	rec.trace("Weather data fetched: " + remarks)
	return nil
}

// analyzeWeather fails open: anything short of a clear "unfavorable" verdict keeps planning.
func (p *TripPlanner) analyzeWeather(ctx context.Context, rec *planningRecord) error {
	defer func() { rec.trace("Weather analysis: " + rec.weatherAnalysis) }()

	if rec.weather == nil || rec.weather.Data == nil {
		rec.weatherFavorable = true
		rec.weatherAnalysis = analysisUnavailable
		return nil
	}

	prompt := weatherAnalysisPrompt(rec, weather.Summarize(rec.weather.Data))
	var verdict ai.WeatherAssessment
	if err := p.deps.LLM.GenerateStructured(ctx, prompt, ai.WeatherAssessmentSchema, &verdict); err != nil {
		rec.weatherFavorable = true
		rec.weatherAnalysis = analysisFailed
		return fmt.Errorf("weather analysis: %w", err)
	}
	rec.weatherFavorable = verdict.IsFavorable
	rec.weatherAnalysis = verdict.Summary
	return nil
}

func (p *TripPlanner) suggestAlternates(ctx context.Context, rec *planningRecord) error {
	rec.needsReplanning = true

	var alt ai.AlternateDestinations
	if err := p.deps.LLM.GenerateStructured(ctx, alternatesPrompt(rec), ai.AlternateDestinationsSchema, &alt); err != nil {
		rec.alternates = []string{}
		rec.trace(fmt.Sprintf("Alternate suggestion failed: %v", err))
		return err
	}
	rec.alternates = normalizeCities(alt.Destinations)
	rec.reasons = alt.Reasons
	rec.trace("Suggested alternates: " + strings.Join(rec.alternates, ", "))
	return nil
}

// normalizeCities lowercases, trims and de-duplicates model output.
func normalizeCities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (p *TripPlanner) searchFlights(ctx context.Context, rec *planningRecord) error {
	fail := func(err error) error {
		rec.flights = nil
		rec.trace(fmt.Sprintf("Flight search failed: %v", err))
		return err
	}
	dep, err := p.deps.Airports.NearestAirport(ctx, rec.Departure)
	if err != nil {
		return fail(err)
	}
	arr, err := p.deps.Airports.NearestAirport(ctx, rec.Destination)
	if err != nil {
		return fail(err)
	}
	flights, err := p.deps.Flights.SearchFlights(ctx, dep, arr, rec.start(), rec.end())
	if err != nil {
		return fail(err)
	}
	rec.flights = flights
	rec.trace(fmt.Sprintf("Found flights from %s to %s", dep, arr))
	return nil
}

func (p *TripPlanner) searchHotels(ctx context.Context, rec *planningRecord) error {
	query := fmt.Sprintf("%s hotels in %s", rec.TravelType, rec.Destination)
	hotels, err := p.deps.Hotels.SearchHotels(ctx, query, rec.start(), rec.end(), rec.Adults)
	if err != nil {
		rec.hotels = nil
		rec.trace(fmt.Sprintf("Hotel search failed: %v", err))
		return err
	}
	rec.hotels = hotels
	rec.trace("Found hotels in " + rec.Destination)
	return nil
}

func (p *TripPlanner) searchAttractions(ctx context.Context, rec *planningRecord) error {
	attractions, err := p.deps.Attractions.SearchAttractions(ctx, rec.Destination)
	if err != nil {
		rec.attractions = nil
		rec.trace(fmt.Sprintf("Attractions search failed: %v", err))
		return err
	}
	rec.attractions = attractions
	rec.trace("Found attractions in " + rec.Destination)
	return nil
}

func (p *TripPlanner) checkBudget(_ context.Context, rec *planningRecord) error {
	rec.budget = p.deps.Budget.Check(rec.flights, rec.hotels, budget.Limits{
		Flight: rec.FlightBudget,
		Hotel:  rec.HotelBudget,
		Nights: rec.Duration,
	})
	rec.budgetNotes = rec.budget.Summary()
	rec.trace("Budget check: " + rec.budgetNotes)
	return nil
}

func (p *TripPlanner) generateItinerary(ctx context.Context, rec *planningRecord) error {
	text, err := p.deps.LLM.GenerateText(ctx, itineraryPrompt(itineraryContext(rec)))
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty itinerary from model")
	}
	if err != nil {
		rec.itinerary = itineraryFailed
		rec.trace(fmt.Sprintf("Itinerary generation failed: %v", err))
		return err
	}
	rec.itinerary = text
	rec.trace("Itinerary generated successfully")
	return nil
}
