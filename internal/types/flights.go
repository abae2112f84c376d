// README: Flight search payload (google_flights engine shape).
package types

type FlightResults struct {
	BestFlights   []FlightOption `json:"best_flights"`
	OtherFlights  []FlightOption `json:"other_flights"`
	PriceInsights *PriceInsights `json:"price_insights,omitempty"`
	DepartureID   string         `json:"departure_id,omitempty"`
	ArrivalID     string         `json:"arrival_id,omitempty"`
}

// All returns best and other options in provider order.
func (r *FlightResults) All() []FlightOption {
	if r == nil {
		return nil
	}
	out := make([]FlightOption, 0, len(r.BestFlights)+len(r.OtherFlights))
	out = append(out, r.BestFlights...)
	return append(out, r.OtherFlights...)
}

type FlightOption struct {
	Flights       []FlightLeg `json:"flights"`
	Layovers      []Layover   `json:"layovers,omitempty"`
	TotalDuration *int        `json:"total_duration,omitempty"`
	Price         *float64    `json:"price,omitempty"`
	Type          string      `json:"type,omitempty"`
	AirlineLogo   string      `json:"airline_logo,omitempty"`
}

// Stops is the number of layovers.
func (f FlightOption) Stops() int { return len(f.Layovers) }

// Airlines lists the distinct carriers across legs.
func (f FlightOption) Airlines() []string {
	seen := make(map[string]bool, len(f.Flights))
	var out []string
	for _, leg := range f.Flights {
		if leg.Airline == "" || seen[leg.Airline] {
			continue
		}
		seen[leg.Airline] = true
		out = append(out, leg.Airline)
	}
	return out
}

type FlightLeg struct {
	DepartureAirport Airport `json:"departure_airport"`
	ArrivalAirport   Airport `json:"arrival_airport"`
	Duration         int     `json:"duration"`
	Airplane         string  `json:"airplane,omitempty"`
	Airline          string  `json:"airline"`
	TravelClass      string  `json:"travel_class,omitempty"`
	FlightNumber     string  `json:"flight_number,omitempty"`
}

type Airport struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

type Layover struct {
	Duration int    `json:"duration"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}

type PriceInsights struct {
	LowestPrice       float64   `json:"lowest_price"`
	PriceLevel        string    `json:"price_level"`
	TypicalPriceRange []float64 `json:"typical_price_range"`
}
