// README: Trips service runs the planner, persists outcomes and turns alternates into re-plans.
package trips

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"voyage/internal/logger"
	"voyage/internal/service"
	"voyage/internal/types"
)

var (
	ErrNotFound         = errors.New("trip run not found")
	ErrBadRequest       = errors.New("bad request")
	ErrUnknownAlternate = errors.New("destination is not one of the suggested alternates")
	ErrNoItinerary      = errors.New("trip run has no itinerary")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Planner interface {
	PlanTrip(ctx context.Context, req service.TripRequest) service.Outcome
}

// Quota is consumed once per pipeline run.
type Quota interface {
	Consume(ctx context.Context, callerID string) error
}

type RunStore interface {
	Create(ctx context.Context, r *Run) error
	Get(ctx context.Context, id types.ID) (*Run, error)
	List(ctx context.Context, q ListQuery) ([]Summary, error)
}

type Service struct {
	store   RunStore
	planner Planner
	quota   Quota
}

// NewService wires the store and planner; quota may be nil (unlimited).
func NewService(store RunStore, planner Planner, quota Quota) *Service {
	return &Service{store: store, planner: planner, quota: quota}
}

func (s *Service) Plan(ctx context.Context, callerID string, req service.TripRequest) (*Run, error) {
	return s.run(ctx, callerID, req, nil)
}

// Replan plans again from a parent run that ended with alternates. The new
// request keeps the parent's dates, travellers and budgets.
func (s *Service) Replan(ctx context.Context, callerID string, parentID types.ID, destination string) (*Run, error) {
	parent, err := s.Get(ctx, callerID, parentID)
	if err != nil {
		return nil, err
	}
	chosen, ok := matchAlternate(parent.Outcome.AlternateDestinations, destination)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlternate, destination)
	}
	return s.run(ctx, callerID, parent.Request.WithDestination(chosen), &parent.ID)
}

func (s *Service) run(ctx context.Context, callerID string, req service.TripRequest, parent *types.ID) (*Run, error) {
	if callerID == "" {
		return nil, fmt.Errorf("%w: missing caller", ErrBadRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if s.quota != nil {
		if err := s.quota.Consume(ctx, callerID); err != nil {
			return nil, err
		}
	}

	out := s.planner.PlanTrip(ctx, req)
	r := &Run{
		ID:        out.RunID,
		ParentID:  parent,
		CallerID:  callerID,
		Request:   req,
		Outcome:   out,
		CreatedAt: nowUTC(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		logger.Log.Error("persist trip run", zap.String("run_id", string(r.ID)), zap.Error(err))
		return nil, fmt.Errorf("persist trip run: %w", err)
	}
	return r, nil
}

// Get hides other callers' runs behind ErrNotFound.
func (s *Service) Get(ctx context.Context, callerID string, id types.ID) (*Run, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing run id", ErrBadRequest)
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.CallerID != callerID {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, callerID string, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	offset = max(offset, 0)
	return s.store.List(ctx, ListQuery{CallerID: callerID, Limit: limit, Offset: offset})
}

// ExportMarkdown returns the download filename and body of a run's itinerary.
func (s *Service) ExportMarkdown(ctx context.Context, callerID string, id types.ID) (string, string, error) {
	r, err := s.Get(ctx, callerID, id)
	if err != nil {
		return "", "", err
	}
	if !r.Outcome.Success || strings.TrimSpace(r.Outcome.ItineraryMarkdown) == "" {
		return "", "", ErrNoItinerary
	}
	return Filename(r.Request.Destination), r.Outcome.ItineraryMarkdown, nil
}

// Filename is itinerary_<destination>.md with the destination lowercased and spaces as underscores.
func Filename(destination string) string {
	return "itinerary_" + strings.ReplaceAll(strings.ToLower(destination), " ", "_") + ".md"
}

func matchAlternate(alternates []string, destination string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(destination))
	for _, a := range alternates {
		if strings.ToLower(strings.TrimSpace(a)) == want && want != "" {
			return a, true
		}
	}
	return "", false
}
