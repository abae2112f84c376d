// README: Smoke and latency cases for a running API; includes HTTP, DB, Redis and load checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"voyage/internal/infra"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client

	// runID is set by the plan case and reused by the fetch/export cases.
	runID string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.PlanTimeout},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "trip history store reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "airport token cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "apply embedded migrations",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if err := infra.RunMigrations(r.cfg.DSN); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "tables from embedded migrations",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				tables, err := infra.MigrationTables()
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("API: metrics", http.MethodGet, base+"/metrics", nil, []int{200}, []int{404}),

		// Validation
		httpCase("Plan: missing fields -> 400", base+"/api/trips/plan", map[string]any{}, []int{400}, []int{401}),
		httpCase("Plan: unknown travel type -> 400", base+"/api/trips/plan", planPayload(r.cfg, "Cruise"), []int{400}, []int{401}),
		httpCase("Search: flights without destination -> 400", base+"/api/search/flights", map[string]any{
			"query": map[string]string{"departure": r.cfg.Departure},
		}, []int{400}, []int{401}),

		// Planning flow
		{
			Name:  "Plan: full pipeline",
			Focus: "plan, persist and return a run id",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: "SKIP", Note: "live=false (calls paid providers)"}
				}
				var run struct {
					ID      string `json:"id"`
					Outcome struct {
						Success               bool     `json:"success"`
						AlternateDestinations []string `json:"alternate_destinations"`
						Messages              []string `json:"messages"`
					} `json:"outcome"`
				}
				res := r.doJSON(ctx, http.MethodPost, base+"/api/trips/plan", planPayload(r.cfg, "Relaxation"), &run)
				if res.Status != "PASS" {
					return res
				}
				r.runID = run.ID
				res.Note = fmt.Sprintf("id=%s success=%t steps=%d alternates=%d",
					run.ID, run.Outcome.Success, len(run.Outcome.Messages), len(run.Outcome.AlternateDestinations))
				return res
			},
		},
		{
			Name:  "Plan: fetch stored run",
			Focus: "GET /api/trips/:id",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.runID == "" {
					return Result{Status: "SKIP", Note: "no run planned"}
				}
				return r.doJSON(ctx, http.MethodGet, base+"/api/trips/"+r.runID, nil, nil)
			},
		},
		{
			Name:  "Plan: export itinerary",
			Focus: "markdown download or 409 without itinerary",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.runID == "" {
					return Result{Status: "SKIP", Note: "no run planned"}
				}
				return r.status(ctx, http.MethodGet, base+"/api/trips/"+r.runID+"/itinerary.md", nil, []int{200, 409}, nil)
			},
		},
		httpCaseMethod("Plan: unknown run -> 404", http.MethodGet, base+"/api/trips/0123456789abcdef", nil, []int{404}, []int{401}),
		httpCaseMethod("Quota: usage", http.MethodGet, base+"/api/quota", nil, []int{200}, []int{401, 404}),

		// Performance
		{
			Name:  "Perf: health throughput",
			Focus: "router and middleware overhead",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/health", nil)
			},
		},
		{
			Name:  "Perf: rate limit engages",
			Focus: "burst of validation requests ends in 429",
			Run: func(ctx context.Context, r *Runner) Result {
				return burstUntilLimited(ctx, r, base+"/api/trips/plan")
			},
		},
	}
}

func planPayload(cfg Config, travelType string) map[string]any {
	start := time.Now().AddDate(0, 0, 7)
	return map[string]any{
		"destination":   cfg.Destination,
		"departure":     cfg.Departure,
		"start_date":    start.Format("2006-01-02"),
		"end_date":      start.AddDate(0, 0, 4).Format("2006-01-02"),
		"adults":        2,
		"travel_type":   travelType,
		"flight_budget": 20000,
		"hotel_budget":  150,
	}
}

func (r *Runner) newRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}
	return req, nil
}

func (r *Runner) doJSON(ctx context.Context, method, url string, body, out any) Result {
	req, err := r.newRequest(ctx, method, url, body)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)
	if resp.StatusCode >= 300 {
		return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return Result{Status: "FAIL", Latency: latency, Note: "decode: " + err.Error()}
		}
	}
	return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
}

func (r *Runner) status(ctx context.Context, method, url string, body any, okStatuses, pendingStatuses []int) Result {
	req, err := r.newRequest(ctx, method, url, body)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	latency := time.Since(start)

	note := fmt.Sprintf("status=%d", resp.StatusCode)
	switch {
	case slices.Contains(okStatuses, resp.StatusCode):
		return Result{Status: "PASS", Latency: latency, Note: note}
	case slices.Contains(pendingStatuses, resp.StatusCode):
		return Result{Status: "PENDING", Latency: latency, Note: note}
	default:
		return Result{Status: "FAIL", Latency: latency, Note: note}
	}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			return r.status(ctx, method, url, body, okStatuses, pendingStatuses)
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, method, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, err := r.newRequest(ctx, method, url, payload)
				if err != nil {
					errCount.Add(1)
					return
				}
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

// burstUntilLimited sends invalid plan requests until the limiter answers 429.
func burstUntilLimited(ctx context.Context, r *Runner, url string) Result {
	for i := 1; i <= r.cfg.BurstProbe; i++ {
		req, err := r.newRequest(ctx, http.MethodPost, url, map[string]any{})
		if err != nil {
			return Result{Status: "FAIL", Note: err.Error()}
		}
		resp, err := r.httpc.Do(req)
		if err != nil {
			return Result{Status: "FAIL", Note: err.Error()}
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			return Result{Status: "PASS", Note: fmt.Sprintf("limited after %d requests", i)}
		}
	}
	return Result{Status: "PENDING", Note: fmt.Sprintf("no 429 within %d requests", r.cfg.BurstProbe)}
}
