// README: Monthly planning quota persisted per caller and calendar month.
package quota

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Consume adds one run to the caller's month unless that would pass limit.
// A new month starts a new row, which is the lazy reset.
func (s *Store) Consume(ctx context.Context, callerID, month string, limit int) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO plan_quota (caller_id, month, used, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (caller_id, month) DO UPDATE
			SET used = plan_quota.used + 1, updated_at = NOW()
			WHERE plan_quota.used < $3
	`, callerID, month, limit)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExceeded
	}
	return nil
}

func (s *Store) Used(ctx context.Context, callerID, month string) (int, error) {
	var used int
	err := s.db.QueryRow(ctx, `SELECT used FROM plan_quota WHERE caller_id = $1 AND month = $2`, callerID, month).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return used, err
}
