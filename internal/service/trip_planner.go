// README: TripPlanner runs the weather -> search -> budget -> itinerary pipeline for one request.
package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"voyage/internal/ai"
	"voyage/internal/logger"
	"voyage/internal/modules/budget"
	"voyage/internal/observability"
	"voyage/internal/types"
)

type WeatherForecaster interface {
	Forecast(ctx context.Context, location string, start, end time.Time) (*types.Forecast, error)
}

type AirportResolver interface {
	NearestAirport(ctx context.Context, location string) (string, error)
}

type FlightSearcher interface {
	SearchFlights(ctx context.Context, origin, dest, outbound, inbound string) (*types.FlightResults, error)
}

type HotelSearcher interface {
	SearchHotels(ctx context.Context, query, checkIn, checkOut string, adults int) (*types.HotelResults, error)
}

type AttractionSearcher interface {
	SearchAttractions(ctx context.Context, location string) (*types.AttractionResults, error)
}

// Deps are the planner's collaborators. Metrics may be nil.
type Deps struct {
	Weather     WeatherForecaster
	Airports    AirportResolver
	Flights     FlightSearcher
	Hotels      HotelSearcher
	Attractions AttractionSearcher
	LLM         ai.Invoker
	Budget      *budget.Service
	Metrics     *observability.Metrics
}

// TripPlanner holds no per-run state; concurrent PlanTrip calls share nothing but collaborators.
type TripPlanner struct {
	deps   Deps
	tracer trace.Tracer
}

func NewTripPlanner(deps Deps) (*TripPlanner, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"weather", deps.Weather == nil},
		{"airports", deps.Airports == nil},
		{"flights", deps.Flights == nil},
		{"hotels", deps.Hotels == nil},
		{"attractions", deps.Attractions == nil},
		{"llm", deps.LLM == nil},
	}
	for _, r := range required {
		if r.missing {
			return nil, fmt.Errorf("%w: trip planner needs a %s client", types.ErrConfig, r.name)
		}
	}
	if deps.Budget == nil {
		deps.Budget = budget.NewService()
	}
	return &TripPlanner{deps: deps, tracer: otel.Tracer("voyage/planner")}, nil
}

// PlanTrip runs every step in order and always returns a well-formed Outcome;
// collaborator failures are absorbed into defaults and trace messages.
func (p *TripPlanner) PlanTrip(ctx context.Context, req TripRequest) Outcome {
	rec := newRecord(req)
	ctx, span := p.tracer.Start(ctx, "PlanTrip", trace.WithAttributes(
		attribute.String("run.id", string(rec.runID)),
		attribute.String("trip.destination", req.Destination),
		attribute.String("trip.departure", req.Departure),
	))
	defer span.End()

	log := logger.Log.With(zap.String("run_id", string(rec.runID)), zap.String("destination", req.Destination))
	log.Info("planning started")

	p.step(ctx, log, rec, StepFetchWeather, p.fetchWeather)
	p.step(ctx, log, rec, StepAnalyzeWeather, p.analyzeWeather)

	if !rec.weatherFavorable {
		p.step(ctx, log, rec, StepSuggestAlternates, p.suggestAlternates)
		p.deps.Metrics.ObservePlan("replan")
		span.SetAttributes(attribute.Bool("trip.needs_replanning", true))
		log.Info("planning ended with alternates", zap.Strings("alternates", rec.alternates))
		return rec.outcome()
	}

	p.step(ctx, log, rec, StepSearchFlights, p.searchFlights)
	p.step(ctx, log, rec, StepSearchHotels, p.searchHotels)
	p.step(ctx, log, rec, StepSearchAttractions, p.searchAttractions)
	p.step(ctx, log, rec, StepCheckBudget, p.checkBudget)
	p.step(ctx, log, rec, StepGenerateItinerary, p.generateItinerary)

	p.deps.Metrics.ObservePlan("itinerary")
	span.SetAttributes(attribute.Bool("trip.budget_feasible", rec.budget.Feasible))
	log.Info("planning finished", zap.Bool("budget_feasible", rec.budget.Feasible))
	return rec.outcome()
}

type stepFunc func(ctx context.Context, rec *planningRecord) error

// step runs fn inside its own span. fn records its trace message itself and
// returns the error it absorbed, if any, for logging.
func (p *TripPlanner) step(ctx context.Context, log *zap.Logger, rec *planningRecord, name Step, fn stepFunc) {
	ctx, span := p.tracer.Start(ctx, "step."+string(name))
	defer span.End()

	started := time.Now()
	err := fn(ctx, rec)
	elapsed := time.Since(started)
	rec.steps = append(rec.steps, name)

	outcome := "ok"
	if err != nil {
		outcome = "absorbed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("step failed, continuing", zap.String("step", string(name)), zap.Duration("elapsed", elapsed), zap.Error(err))
	} else {
		log.Debug("step done", zap.String("step", string(name)), zap.Duration("elapsed", elapsed))
	}
	p.deps.Metrics.ObserveStep(string(name), outcome, elapsed)
}
