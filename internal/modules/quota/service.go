// README: Quota service meters planning runs per caller per month.
package quota

import (
	"context"
	"time"
)

type Service struct {
	store *Store
	limit int
	now   func() time.Time
}

func NewService(store *Store, monthlyLimit int) *Service {
	if monthlyLimit <= 0 {
		monthlyLimit = DefaultMonthlyRuns
	}
	return &Service{store: store, limit: monthlyLimit, now: time.Now}
}

func (s *Service) month() string {
	return s.now().UTC().Format("2006-01")
}

// Consume charges one planning run to callerID.
func (s *Service) Consume(ctx context.Context, callerID string) error {
	return s.store.Consume(ctx, callerID, s.month(), s.limit)
}

func (s *Service) Usage(ctx context.Context, callerID string) (Usage, error) {
	month := s.month()
	used, err := s.store.Used(ctx, callerID, month)
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		CallerID:  callerID,
		Month:     month,
		Used:      used,
		Limit:     s.limit,
		Remaining: max(s.limit-used, 0),
	}, nil
}
