package quota

import "errors"

// ErrQuotaExceeded is returned when a caller has used this month's planning runs.
var ErrQuotaExceeded = errors.New("monthly planning quota exceeded")

// DefaultMonthlyRuns is used when the configured quota is not positive.
const DefaultMonthlyRuns = 50

type Usage struct {
	CallerID  string `json:"caller_id"`
	Month     string `json:"month"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}
