// README: Builds the outbound provider clients shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"voyage/internal/ai"
	"voyage/internal/amadeus"
	"voyage/internal/config"
	"voyage/internal/geocode"
	"voyage/internal/logger"
	"voyage/internal/maps"
	"voyage/internal/modules/budget"
	"voyage/internal/observability"
	"voyage/internal/serpapi"
	"voyage/internal/service"
	"voyage/internal/types"
	"voyage/internal/weather"
)

// Providers holds one client per external interface of the planner.
type Providers struct {
	LLM         ai.Invoker
	Geocoder    geocode.Resolver
	Weather     *weather.Client
	Airports    *amadeus.Client
	Flights     *serpapi.Client
	Attractions service.AttractionSearcher

	closers []func()
}

// NewProviders builds every client from cfg. tokenCache may be nil (in-memory).
func NewProviders(ctx context.Context, cfg config.Config, tokenCache amadeus.TokenCache) (*Providers, error) {
	p := &Providers{}
	timeout := cfg.Providers.Timeout

	switch cfg.AI.Provider {
	case "openai":
		llm, err := ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel)
		if err != nil {
			return nil, err
		}
		p.LLM = llm
	default:
		llm, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiModel)
		if err != nil {
			return nil, err
		}
		p.LLM = llm
		p.closers = append(p.closers, llm.Close)
	}

	if cfg.Providers.GoogleMapsKey != "" {
		geo, err := maps.NewGeocoder(cfg.Providers.GoogleMapsKey)
		if err != nil {
			return nil, fmt.Errorf("%w: google geocoder: %v", types.ErrConfig, err)
		}
		p.Geocoder = geo
	} else {
		geo, err := geocode.NewOpenWeather(cfg.Providers.OpenWeatherKey, timeout)
		if err != nil {
			return nil, err
		}
		p.Geocoder = geo
	}

	p.Weather = weather.NewClient(p.Geocoder, timeout)

	airports, err := amadeus.NewClient(amadeus.Config{
		APIKey:    cfg.Providers.AmadeusKey,
		APISecret: cfg.Providers.AmadeusSecret,
		BaseURL:   cfg.Providers.AmadeusBaseURL,
		Timeout:   timeout,
	}, p.Geocoder, tokenCache)
	if err != nil {
		return nil, err
	}
	p.Airports = airports

	serp, err := serpapi.NewClient(cfg.Providers.SerpAPIKey, timeout, serpapi.WithTripAdvisorKey(cfg.Providers.TripAdvisorKey))
	if err != nil {
		return nil, err
	}
	p.Flights = serp
	p.Attractions = serp

	if cfg.Providers.Attractions == "places" {
		places, err := maps.NewPlacesService(cfg.Providers.GoogleMapsKey)
		if err != nil {
			return nil, fmt.Errorf("%w: places: %v", types.ErrConfig, err)
		}
		p.Attractions = places
	}

	logger.Log.Info("providers ready",
		zap.String("llm", cfg.AI.Provider),
		zap.Bool("google_geocoder", cfg.Providers.GoogleMapsKey != ""),
		zap.String("attractions", cfg.Providers.Attractions),
	)
	return p, nil
}

// Planner wires the providers into a trip planner.
func (p *Providers) Planner(metrics *observability.Metrics) (*service.TripPlanner, error) {
	return service.NewTripPlanner(service.Deps{
		Weather:     p.Weather,
		Airports:    p.Airports,
		Flights:     p.Flights,
		Hotels:      p.Flights,
		Attractions: p.Attractions,
		LLM:         p.LLM,
		Budget:      budget.NewService(),
		Metrics:     metrics,
	})
}

func (p *Providers) Close() {
	for _, c := range p.closers {
		c()
	}
}
