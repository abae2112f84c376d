package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"voyage/internal/ai"
	"voyage/internal/types"
)

type MockWeather struct{ mock.Mock }

func (m *MockWeather) Forecast(ctx context.Context, location string, start, end time.Time) (*types.Forecast, error) {
	args := m.Called(ctx, location, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Forecast), args.Error(1)
}

type MockAirports struct{ mock.Mock }

func (m *MockAirports) NearestAirport(ctx context.Context, location string) (string, error) {
	args := m.Called(ctx, location)
	return args.String(0), args.Error(1)
}

type MockFlights struct{ mock.Mock }

func (m *MockFlights) SearchFlights(ctx context.Context, origin, dest, outbound, inbound string) (*types.FlightResults, error) {
	args := m.Called(ctx, origin, dest, outbound, inbound)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FlightResults), args.Error(1)
}

type MockHotels struct{ mock.Mock }

func (m *MockHotels) SearchHotels(ctx context.Context, query, checkIn, checkOut string, adults int) (*types.HotelResults, error) {
	args := m.Called(ctx, query, checkIn, checkOut, adults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HotelResults), args.Error(1)
}

type MockAttractions struct{ mock.Mock }

func (m *MockAttractions) SearchAttractions(ctx context.Context, location string) (*types.AttractionResults, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AttractionResults), args.Error(1)
}

type MockLLM struct{ mock.Mock }

func (m *MockLLM) GenerateStructured(ctx context.Context, prompt string, schema *ai.Schema, out any) error {
	args := m.Called(ctx, prompt, schema, out)
	return args.Error(0)
}

func (m *MockLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
