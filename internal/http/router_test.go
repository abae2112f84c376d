package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/infra"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/search"
	"voyage/internal/modules/trips"
	"voyage/internal/observability"
	"voyage/internal/service"
	"voyage/internal/types"
)

type memRuns struct {
	mu   sync.Mutex
	runs map[types.ID]*trips.Run
}

func (m *memRuns) Create(_ context.Context, r *trips.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID] = r
	return nil
}

func (m *memRuns) Get(_ context.Context, id types.ID) (*trips.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, trips.ErrNotFound
	}
	return r, nil
}

func (m *memRuns) List(_ context.Context, q trips.ListQuery) ([]trips.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []trips.Summary
	for _, r := range m.runs {
		if r.CallerID == q.CallerID {
			out = append(out, trips.Summary{ID: r.ID, Destination: r.Request.Destination})
		}
	}
	return out, nil
}

// rainyPlanner rejects Cherrapunji and plans everything else.
type rainyPlanner struct{}

func (rainyPlanner) PlanTrip(_ context.Context, req service.TripRequest) service.Outcome {
	out := service.Outcome{RunID: types.NewID(), AlternateDestinations: []string{}}
	if req.Destination == "Cherrapunji" {
		out.WeatherFavorable = false
		out.AlternateDestinations = []string{"Shillong", "Guwahati"}
		return out
	}
	out.Success = true
	out.WeatherFavorable = true
	out.ItineraryMarkdown = "# " + req.Destination
	return out
}

type limitQuota struct {
	mu   sync.Mutex
	used int
	max  int
}

func (q *limitQuota) Consume(context.Context, string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used >= q.max {
		return quota.ErrQuotaExceeded
	}
	q.used++
	return nil
}

func (q *limitQuota) Usage(_ context.Context, caller string) (quota.Usage, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return quota.Usage{CallerID: caller, Used: q.used, Limit: q.max, Remaining: q.max - q.used}, nil
}

type stubProviders struct{}

func (stubProviders) Forecast(context.Context, string, time.Time, time.Time) (*types.Forecast, error) {
	return &types.Forecast{Start: "2026-11-01", End: "2026-11-05"}, nil
}
func (stubProviders) NearestAirport(context.Context, string) (string, error) { return "GOI", nil }
func (stubProviders) SearchFlights(_ context.Context, o, d, _, _ string) (*types.FlightResults, error) {
	p := 4200.0
	return &types.FlightResults{DepartureID: o, ArrivalID: d, BestFlights: []types.FlightOption{{Price: &p}}}, nil
}
func (stubProviders) SearchHotels(context.Context, string, string, string, int) (*types.HotelResults, error) {
	return &types.HotelResults{Properties: []types.HotelProperty{{Name: "Sea View"}}}, nil
}
func (stubProviders) SearchAttractions(context.Context, string) (*types.AttractionResults, error) {
	return &types.AttractionResults{}, nil
}

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, raw string) (*infra.CallerToken, error) {
	return &infra.CallerToken{UID: raw}, nil
}

func newTestServer(t *testing.T, q *limitQuota, verifier infra.TokenVerifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	p := stubProviders{}
	return NewServer(ServerDeps{
		Trips:    trips.NewService(&memRuns{runs: map[types.ID]*trips.Run{}}, rainyPlanner{}, q),
		Search:   search.NewService(search.Deps{Weather: p, Airports: p, Flights: p, Hotels: p, Attractions: p}, time.Minute),
		Quota:    q,
		Verifier: verifier,
		Metrics:  observability.NewMetrics(),
	}).Routes()
}

func do(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func planBody(dest string) map[string]any {
	return map[string]any{
		"destination":   dest,
		"departure":     "Delhi",
		"start_date":    "2026-11-01",
		"end_date":      "2026-11-05",
		"adults":        2,
		"travel_type":   "relaxation",
		"flight_budget": 15000,
		"hotel_budget":  120,
	}
}

func decodeRun(t *testing.T, w *httptest.ResponseRecorder) trips.Run {
	t.Helper()
	var run trips.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	return run
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestServer(t, &limitQuota{max: 5}, nil)

	w := do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = do(r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlan_ThenGetAndExport(t *testing.T) {
	r := newTestServer(t, &limitQuota{max: 5}, nil)

	w := do(r, http.MethodPost, "/api/trips/plan", planBody("New Delhi"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	run := decodeRun(t, w)
	assert.True(t, run.Outcome.Success)
	assert.Equal(t, 4, run.Request.Duration)
	assert.Equal(t, service.Relaxation, run.Request.TravelType)

	w = do(r, http.MethodGet, "/api/trips/"+string(run.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/trips/"+string(run.ID)+"/itinerary.md", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="itinerary_new_delhi.md"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "# New Delhi", w.Body.String())

	w = do(r, http.MethodGet, "/api/trips", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Delhi")
}

func TestPlan_BadRequests(t *testing.T) {
	r := newTestServer(t, &limitQuota{max: 5}, nil)

	body := planBody("Goa")
	body["start_date"] = "01/11/2026"
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/trips/plan", body, "").Code)

	body = planBody("Goa")
	body["travel_type"] = "Cruise"
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/trips/plan", body, "").Code)

	body = planBody("Goa")
	body["flight_budget"] = 0
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/trips/plan", body, "").Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/trips/not-an-id", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/trips/abc123", nil, "").Code)
}

func TestReplanFlow(t *testing.T) {
	r := newTestServer(t, &limitQuota{max: 5}, nil)

	w := do(r, http.MethodPost, "/api/trips/plan", planBody("Cherrapunji"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	parent := decodeRun(t, w)
	assert.Equal(t, []string{"Shillong", "Guwahati"}, parent.Outcome.AlternateDestinations)

	w = do(r, http.MethodGet, "/api/trips/"+string(parent.ID)+"/itinerary.md", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/trips/"+string(parent.ID)+"/replan", map[string]string{"destination": "Paris"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/api/trips/"+string(parent.ID)+"/replan", map[string]string{"destination": "shillong"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	child := decodeRun(t, w)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
	assert.Equal(t, "Shillong", child.Request.Destination)
	assert.True(t, child.Outcome.Success)
}

func TestPlan_QuotaExhausted(t *testing.T) {
	q := &limitQuota{max: 1}
	r := newTestServer(t, q, nil)

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/trips/plan", planBody("Goa"), "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/trips/plan", planBody("Goa"), "").Code)

	w := do(r, http.MethodGet, "/api/quota", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":0`)
}

func TestRunsAreScopedToCaller(t *testing.T) {
	r := newTestServer(t, &limitQuota{max: 5}, stubVerifier{})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/trips/plan", planBody("Goa"), "").Code)

	w := do(r, http.MethodPost, "/api/trips/plan", planBody("Goa"), "alice")
	require.Equal(t, http.StatusCreated, w.Code)
	run := decodeRun(t, w)
	assert.Equal(t, "alice", run.CallerID)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/trips/"+string(run.ID), nil, "alice").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/trips/"+string(run.ID), nil, "bob").Code)
}

func TestSearchRoutes(t *testing.T) {
	r := newTestServer(t, &limitQuota{max: 5}, nil)

	w := do(r, http.MethodPost, "/api/search/flights", map[string]any{
		"query":  map[string]string{"departure": "Delhi", "destination": "Goa", "outbound_date": "2026-11-01", "return_date": "2026-11-05"},
		"filter": map[string]any{"sort_by": "price_asc"},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = do(r, http.MethodPost, "/api/search/flights", map[string]any{"query": map[string]string{"departure": "Delhi"}}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/search/hotels", map[string]any{
		"query": map[string]any{"query": "hotels in Goa", "check_in_date": "2026-11-01", "check_out_date": "2026-11-05"},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Sea View")

	w = do(r, http.MethodGet, "/api/search/overview?destination=Goa&departure=Delhi&start_date=2026-11-01&end_date=2026-11-05&travel_type=Family", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"flights"`)
	assert.NotContains(t, w.Body.String(), `"errors"`)
}
