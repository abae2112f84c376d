// README: Trip run store backed by PostgreSQL.
package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"voyage/internal/types"
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *Run) error {
	reqJSON, err := json.Marshal(r.Request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	outJSON, err := json.Marshal(r.Outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	query, args, err := psql.Insert("trip_runs").
		Columns("id", "parent_id", "caller_id", "destination", "departure", "start_date", "end_date",
			"success", "budget_feasible", "request", "outcome", "created_at").
		Values(string(r.ID), idPtr(r.ParentID), r.CallerID, r.Request.Destination, r.Request.Departure,
			r.Request.StartDate, r.Request.EndDate, r.Outcome.Success, r.Outcome.BudgetFeasible,
			reqJSON, outJSON, r.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, query, args...)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Run, error) {
	query, args, err := psql.Select("id", "parent_id", "caller_id", "request", "outcome", "created_at").
		From("trip_runs").
		Where(sq.Eq{"id": string(id)}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		r        Run
		parentID *string
		reqJSON  []byte
		outJSON  []byte
	)
	err = s.db.QueryRow(ctx, query, args...).Scan(&r.ID, &parentID, &r.CallerID, &reqJSON, &outJSON, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reqJSON, &r.Request); err != nil {
		return nil, fmt.Errorf("decode request of run %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(outJSON, &r.Outcome); err != nil {
		return nil, fmt.Errorf("decode outcome of run %s: %w", r.ID, err)
	}
	if parentID != nil {
		p := types.ID(*parentID)
		r.ParentID = &p
	}
	return &r, nil
}

// List returns the caller's runs, newest first.
func (s *Store) List(ctx context.Context, q ListQuery) ([]Summary, error) {
	query, args, err := psql.Select("id", "parent_id", "destination", "departure", "start_date", "end_date",
		"success", "budget_feasible", "created_at").
		From("trip_runs").
		Where(sq.Eq{"caller_id": q.CallerID}).
		OrderBy("created_at DESC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sm       Summary
			parentID *string
		)
		if err := rows.Scan(&sm.ID, &parentID, &sm.Destination, &sm.Departure, &sm.StartDate, &sm.EndDate,
			&sm.Success, &sm.BudgetFeasible, &sm.CreatedAt); err != nil {
			return nil, err
		}
		if parentID != nil {
			p := types.ID(*parentID)
			sm.ParentID = &p
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func nowUTC() time.Time { return time.Now().UTC() }
