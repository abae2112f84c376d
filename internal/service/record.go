package service

import (
	"voyage/internal/modules/budget"
	"voyage/internal/types"
)

// planningRecord is owned by exactly one run and mutated step by step.
type planningRecord struct {
	TripRequest
	runID types.ID

	weather          *types.Forecast
	weatherFavorable bool
	weatherAnalysis  string

	alternates []string
	reasons    []string

	flights     *types.FlightResults
	hotels      *types.HotelResults
	attractions *types.AttractionResults

	budget      budget.Result
	budgetNotes string

	itinerary       string
	needsReplanning bool

	messages []string
	steps    []Step
}

func newRecord(req TripRequest) *planningRecord {
	return &planningRecord{
		TripRequest:      req,
		runID:            types.NewID(),
		weatherFavorable: true,
		budget:           budget.Result{Feasible: true},
	}
}

func (r *planningRecord) trace(msg string) {
	r.messages = append(r.messages, msg)
}

func (r *planningRecord) outcome() Outcome {
	alternates, reasons := []string{}, []string(nil)
	if r.needsReplanning && r.alternates != nil {
		alternates, reasons = r.alternates, r.reasons
	}
	return Outcome{
		RunID:                 r.runID,
		Success:               !r.needsReplanning,
		ItineraryMarkdown:     r.itinerary,
		WeatherFavorable:      r.weatherFavorable,
		WeatherAnalysis:       r.weatherAnalysis,
		AlternateDestinations: alternates,
		AlternateReasons:      reasons,
		BudgetFeasible:        r.budget.Feasible,
		BudgetNotes:           r.budgetNotes,
		Budget:                r.budget,
		Messages:              r.messages,
		Steps:                 r.steps,
		RawData: RawData{
			Weather:     r.weather,
			Flights:     r.flights,
			Hotels:      r.hotels,
			Attractions: r.attractions,
		},
	}
}
