// README: Budget check inputs and verdicts for one planning run.
package budget

import (
	"strings"

	"voyage/internal/types"
)

type Limits struct {
	Flight types.Money // round trip, INR
	Hotel  types.Money // per night, USD
	Nights int
}

type Result struct {
	Feasible bool     `json:"feasible"`
	Notes    []string `json:"notes"`
	// Estimated spend per currency; flights and hotels are quoted in different ones.
	FlightCost *types.Money `json:"flight_cost,omitempty"`
	HotelRate  *types.Money `json:"hotel_rate,omitempty"`
	HotelTotal *types.Money `json:"hotel_total,omitempty"`
}

const pendingNote = "Budget analysis pending"

// Summary is the notes joined for display.
func (r Result) Summary() string {
	if len(r.Notes) == 0 {
		return pendingNote
	}
	return strings.Join(r.Notes, "; ")
}
