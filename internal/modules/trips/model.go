// README: Stored planning runs and their lineage (re-plans point at their parent).
package trips

import (
	"time"

	"voyage/internal/service"
	"voyage/internal/types"
)

type Run struct {
	ID        types.ID            `json:"id"`
	ParentID  *types.ID           `json:"parent_id,omitempty"`
	CallerID  string              `json:"caller_id"`
	Request   service.TripRequest `json:"request"`
	Outcome   service.Outcome     `json:"outcome"`
	CreatedAt time.Time           `json:"created_at"`
}

// Summary is the list view of a run.
type Summary struct {
	ID             types.ID  `json:"id"`
	ParentID       *types.ID `json:"parent_id,omitempty"`
	Destination    string    `json:"destination"`
	Departure      string    `json:"departure"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Success        bool      `json:"success"`
	BudgetFeasible bool      `json:"budget_feasible"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListQuery struct {
	CallerID string
	Limit    int
	Offset   int
}
