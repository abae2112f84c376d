package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/types"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClampToHorizon(t *testing.T) {
	today := day("2025-10-28")

	tests := []struct {
		name        string
		start, end  string
		wantStart   string
		wantEnd     string
		wantEmpty   bool
		wantRemarks []string
	}{
		{
			name: "inside window", start: "2025-11-01", end: "2025-11-08",
			wantStart: "2025-11-01", wantEnd: "2025-11-08",
		},
		{
			name: "start in past", start: "2025-10-20", end: "2025-10-30",
			wantStart: "2025-10-28", wantEnd: "2025-10-30",
			wantRemarks: []string{"Requested start date 2025-10-20 is in the past; adjusted to 2025-10-28."},
		},
		{
			name: "end before start", start: "2025-11-05", end: "2025-11-01",
			wantStart: "2025-11-05", wantEnd: "2025-11-05",
			wantRemarks: []string{"End date is before start date; adjusted to same as start date."},
		},
		{
			name: "end beyond horizon", start: "2025-11-01", end: "2025-11-20",
			wantStart: "2025-11-01", wantEnd: "2025-11-12",
			wantRemarks: []string{"Requested end date 2025-11-20 exceeds 16-day forecast limit; adjusted to 2025-11-12."},
		},
		{
			name: "last forecastable day", start: "2025-11-12", end: "2025-11-12",
			wantStart: "2025-11-12", wantEnd: "2025-11-12",
		},
		{
			name: "entirely beyond horizon", start: "2025-12-01", end: "2025-12-08",
			wantEmpty:   true,
			wantStart:   "2025-12-01",
			wantEnd:     "2025-12-08",
			wantRemarks: []string{"No forecast data available: dates (2025-12-01 to 2025-12-08) are beyond the 16-day limit."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ClampToHorizon(today, day(tt.start), day(tt.end))
			assert.Equal(t, tt.wantEmpty, w.Empty)
			assert.Equal(t, tt.wantStart, w.Start.Format(dateLayout))
			assert.Equal(t, tt.wantEnd, w.End.Format(dateLayout))
			assert.Equal(t, tt.wantRemarks, w.Remarks)
		})
	}
}

func TestSummarize(t *testing.T) {
	data := &types.ForecastData{
		Daily: types.DailySeries{
			TemperatureMax:     []float64{31.2, 33.76, 29.9},
			PrecipitationHours: []float64{2, 0, 5.5},
		},
		Hourly: types.HourlySeries{Rain: []float64{0.4, 1.2, 0, 3.1}},
	}
	want := "Temperatures: 29.9°C to 33.8°C\nTotal precipitation: 4.7mm\nRainy hours: 7.5"
	assert.Equal(t, want, Summarize(data))
}

func TestSummarize_OmitsMissingSeries(t *testing.T) {
	data := &types.ForecastData{Hourly: types.HourlySeries{Rain: []float64{1, 2}}}
	assert.Equal(t, "Total precipitation: 3.0mm", Summarize(data))

	assert.Equal(t, "Weather data summary unavailable", Summarize(&types.ForecastData{}))
	assert.Equal(t, "Weather data summary unavailable", Summarize(nil))
}

type stubResolver struct {
	point types.Point
	err   error
}

func (s stubResolver) Resolve(context.Context, string) (types.Point, error) { return s.point, s.err }

func newTestClient(t *testing.T, geo stubResolver, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(geo, time.Second)
	c.baseURL = srv.URL
	c.now = func() time.Time { return day("2025-10-28").Add(15 * time.Hour) }
	return c
}

func TestForecast(t *testing.T) {
	c := newTestClient(t, stubResolver{point: types.Point{Lat: 13.75, Lng: 100.5}}, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "13.75", q.Get("latitude"))
		assert.Equal(t, "2025-11-01", q.Get("start_date"))
		assert.Equal(t, "2025-11-08", q.Get("end_date"))
		assert.Equal(t, "best_match", q.Get("models"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Contains(t, q.Get("daily"), "precipitation_hours")
		assert.Contains(t, q.Get("hourly"), "rain")
		_, _ = w.Write([]byte(`{"latitude":13.75,"longitude":100.5,"daily":{"time":["2025-11-01"],"temperature_2m_max":[32.1]},"hourly":{"time":["2025-11-01T00:00"],"rain":[0.5]}}`))
	})

	f, err := c.Forecast(context.Background(), "Bangkok", day("2025-11-01"), day("2025-11-08"))
	require.NoError(t, err)
	require.NotNil(t, f.Data)
	assert.Equal(t, "Data fetched successfully for the valid forecast window.", f.Remarks)
	assert.Equal(t, []float64{32.1}, f.Data.Daily.TemperatureMax)
}

func TestForecast_ClampedRemarks(t *testing.T) {
	c := newTestClient(t, stubResolver{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-11-12", r.URL.Query().Get("end_date"))
		_, _ = w.Write([]byte(`{"daily":{},"hourly":{}}`))
	})

	f, err := c.Forecast(context.Background(), "Bangkok", day("2025-11-01"), day("2025-11-30"))
	require.NoError(t, err)
	assert.Equal(t, "Requested end date 2025-11-30 exceeds 16-day forecast limit; adjusted to 2025-11-12.", f.Remarks)
}

func TestForecast_BeyondHorizon(t *testing.T) {
	c := newTestClient(t, stubResolver{}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	f, err := c.Forecast(context.Background(), "Bangkok", day("2026-01-01"), day("2026-01-05"))
	require.NoError(t, err)
	assert.Nil(t, f.Data)
	assert.Contains(t, f.Remarks, "beyond the 16-day limit")
}

func TestForecast_ResolveFails(t *testing.T) {
	c := newTestClient(t, stubResolver{err: types.ErrNotFound}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.Forecast(context.Background(), "Atlantis", day("2025-11-01"), day("2025-11-02"))
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestForecast_Upstream(t *testing.T) {
	c := newTestClient(t, stubResolver{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Forecast(context.Background(), "Bangkok", day("2025-11-01"), day("2025-11-02"))
	assert.ErrorIs(t, err, types.ErrUpstream)
}

func TestCondition(t *testing.T) {
	label, icon := Condition(63)
	assert.Equal(t, "Moderate rain", label)
	assert.Equal(t, "🌧️", icon)

	label, icon = Condition(42)
	assert.Equal(t, "Unknown", label)
	assert.Equal(t, "❓", icon)
}

func TestDays(t *testing.T) {
	data := &types.ForecastData{Daily: types.DailySeries{
		Time:           []string{"2025-11-01", "2025-11-02"},
		WeatherCode:    []int{0, 95},
		TemperatureMax: []float64{33, 31},
		RainSum:        []float64{0},
	}}

	days := Days(data)
	require.Len(t, days, 2)
	assert.Equal(t, "Clear sky", days[0].Condition)
	assert.Equal(t, "Thunderstorm", days[1].Condition)
	require.NotNil(t, days[1].TempMax)
	assert.Equal(t, 31.0, *days[1].TempMax)
	assert.Nil(t, days[1].RainMM)
	assert.Nil(t, days[0].TempMin)
	assert.Nil(t, Days(nil))
}
