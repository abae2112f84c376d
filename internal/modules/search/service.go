// README: Search service backs the detailed flight and hotel views and the overview page.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voyage/internal/logger"
	"voyage/internal/service"
	"voyage/internal/types"
	"voyage/internal/weather"
)

type Deps struct {
	Weather     service.WeatherForecaster
	Airports    service.AirportResolver
	Flights     service.FlightSearcher
	Hotels      service.HotelSearcher
	Attractions service.AttractionSearcher
}

// Service caches raw provider payloads; filters and sorts run on copies per request.
type Service struct {
	deps  Deps
	cache *cache.Cache
}

func NewService(deps Deps, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{deps: deps, cache: cache.New(ttl, 2*ttl)}
}

func (s *Service) Flights(ctx context.Context, q FlightQuery, f FlightFilter) (*FlightView, error) {
	if strings.TrimSpace(q.Departure) == "" || strings.TrimSpace(q.Destination) == "" {
		return nil, fmt.Errorf("%w: departure and destination are required", ErrBadRequest)
	}
	res, err := s.flightResults(ctx, q)
	if err != nil {
		return nil, err
	}

	all := res.All()
	options := FilterFlights(all, f)
	SortFlights(options, f.SortBy)
	return &FlightView{
		DepartureID:   res.DepartureID,
		ArrivalID:     res.ArrivalID,
		PriceInsights: res.PriceInsights,
		Airlines:      Airlines(all),
		Total:         len(all),
		Options:       options,
	}, nil
}

func (s *Service) flightResults(ctx context.Context, q FlightQuery) (*types.FlightResults, error) {
	key := strings.ToLower(strings.Join([]string{"flights", q.Departure, q.Destination, q.Outbound, q.Return}, "|"))
	if v, ok := s.cache.Get(key); ok {
		return v.(*types.FlightResults), nil
	}
	dep, err := s.deps.Airports.NearestAirport(ctx, q.Departure)
	if err != nil {
		return nil, fmt.Errorf("departure airport: %w", err)
	}
	arr, err := s.deps.Airports.NearestAirport(ctx, q.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination airport: %w", err)
	}
	res, err := s.deps.Flights.SearchFlights(ctx, dep, arr, q.Outbound, q.Return)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, res)
	return res, nil
}

// Hotels merges organic properties and ads before filtering.
func (s *Service) Hotels(ctx context.Context, q HotelQuery, f HotelFilter) (*HotelView, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrBadRequest)
	}
	key := strings.ToLower(fmt.Sprintf("hotels|%s|%s|%s|%d", q.Query, q.CheckIn, q.CheckOut, q.Adults))
	var res *types.HotelResults
	if v, ok := s.cache.Get(key); ok {
		res = v.(*types.HotelResults)
	} else {
		var err error
		if res, err = s.deps.Hotels.SearchHotels(ctx, q.Query, q.CheckIn, q.CheckOut, q.Adults); err != nil {
			return nil, err
		}
		s.cache.SetDefault(key, res)
	}

	all := make([]types.HotelProperty, 0, len(res.Properties)+len(res.Ads))
	all = append(all, res.Properties...)
	all = append(all, res.Ads...)
	props := FilterHotels(all, f)
	SortHotels(props, f.SortBy)
	return &HotelView{Amenities: Amenities(all), Total: len(all), Properties: props}, nil
}

// Overview fetches all four sources concurrently. Section failures are
// reported in Errors; only a cancelled context fails the whole call.
func (s *Service) Overview(ctx context.Context, req service.TripRequest) (*Overview, error) {
	start, end := req.StartDate.Format(service.DateLayout), req.EndDate.Format(service.DateLayout)
	var (
		out                                     Overview
		weatherErr, flightErr, hotelErr, attErr error
	)

	// Sections swallow their own failures; only cancellation is returned so
	// that the remaining sections stop early.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Weather, weatherErr = s.deps.Weather.Forecast(gctx, req.Destination, req.StartDate, req.EndDate)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Flights, flightErr = s.flightResults(gctx, FlightQuery{
			Departure: req.Departure, Destination: req.Destination, Outbound: start, Return: end,
		})
		return gctx.Err()
	})
	g.Go(func() error {
		query := fmt.Sprintf("%s hotels in %s", req.TravelType, req.Destination)
		out.Hotels, hotelErr = s.deps.Hotels.SearchHotels(gctx, query, start, end, req.Adults)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Attractions, attErr = s.deps.Attractions.SearchAttractions(gctx, req.Destination)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for section, err := range map[string]error{
		"weather": weatherErr, "flights": flightErr, "hotels": hotelErr, "attractions": attErr,
	} {
		if err == nil {
			continue
		}
		if out.Errors == nil {
			out.Errors = map[string]string{}
		}
		out.Errors[section] = err.Error()
		logger.Log.Warn("overview section failed", zap.String("section", section), zap.Error(err))
	}
	if out.Weather != nil {
		out.Days = weather.Days(out.Weather.Data)
	}
	return &out, nil
}
