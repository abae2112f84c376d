// README: Hotel search payload (google_hotels engine shape).
package types

type HotelResults struct {
	Properties []HotelProperty `json:"properties"`
	Ads        []HotelProperty `json:"ads,omitempty"`
}

type HotelProperty struct {
	Type           string   `json:"type,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Link           string   `json:"link,omitempty"`
	RatePerNight   *Rate    `json:"rate_per_night,omitempty"`
	ExtractedPrice *float64 `json:"extracted_price,omitempty"`
	OverallRating  *float64 `json:"overall_rating,omitempty"`
	Reviews        int      `json:"reviews,omitempty"`
	HotelClass     string   `json:"hotel_class,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	PropertyToken  string   `json:"property_token,omitempty"`
}

type Rate struct {
	Lowest          string   `json:"lowest,omitempty"`
	ExtractedLowest *float64 `json:"extracted_lowest,omitempty"`
}

// NightlyRate returns the lowest nightly rate; ads only carry extracted_price.
func (h HotelProperty) NightlyRate() (float64, bool) {
	if h.RatePerNight != nil && h.RatePerNight.ExtractedLowest != nil {
		return *h.RatePerNight.ExtractedLowest, true
	}
	if h.ExtractedPrice != nil {
		return *h.ExtractedPrice, true
	}
	return 0, false
}
