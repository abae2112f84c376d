// README: Attraction search payload.
package types

type AttractionResults struct {
	Locations []Attraction `json:"locations,omitempty"`
	Results   []Attraction `json:"results,omitempty"`
}

// Items returns whichever list the provider filled.
func (r *AttractionResults) Items() []Attraction {
	if r == nil {
		return nil
	}
	if len(r.Locations) > 0 {
		return r.Locations
	}
	return r.Results
}

type Attraction struct {
	Title       string   `json:"title"`
	PlaceID     string   `json:"place_id,omitempty"`
	PlaceType   string   `json:"place_type,omitempty"`
	Link        string   `json:"link,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Reviews     int      `json:"reviews,omitempty"`
	Location    string   `json:"location,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}
