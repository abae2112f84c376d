// README: Forecast payload as returned by the weather client.
package types

// Forecast wraps the provider payload with the remarks produced while clamping the
// requested window. Data is nil when nothing in the window can be forecast.
type Forecast struct {
	Location Point         `json:"location"`
	Start    string        `json:"start_date"`
	End      string        `json:"end_date"`
	Data     *ForecastData `json:"data"`
	Remarks  string        `json:"remarks"`
}

type ForecastData struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Daily     DailySeries  `json:"daily"`
	Hourly    HourlySeries `json:"hourly"`
}

// DailySeries keeps only the series the planner reads; nil means the provider omitted it.
type DailySeries struct {
	Time                []string  `json:"time"`
	WeatherCode         []int     `json:"weather_code,omitempty"`
	TemperatureMax      []float64 `json:"temperature_2m_max,omitempty"`
	TemperatureMin      []float64 `json:"temperature_2m_min,omitempty"`
	PrecipitationSum    []float64 `json:"precipitation_sum,omitempty"`
	RainSum             []float64 `json:"rain_sum,omitempty"`
	PrecipitationHours  []float64 `json:"precipitation_hours,omitempty"`
	PrecipitationProbMx []float64 `json:"precipitation_probability_max,omitempty"`
	WindSpeedMax        []float64 `json:"wind_speed_10m_max,omitempty"`
	UVIndexMax          []float64 `json:"uv_index_max,omitempty"`
}

type HourlySeries struct {
	Time          []string  `json:"time"`
	Temperature   []float64 `json:"temperature_2m,omitempty"`
	Humidity      []float64 `json:"relative_humidity_2m,omitempty"`
	Rain          []float64 `json:"rain,omitempty"`
	Showers       []float64 `json:"showers,omitempty"`
	Snowfall      []float64 `json:"snowfall,omitempty"`
	CloudCover    []float64 `json:"cloud_cover,omitempty"`
	WindSpeed80m  []float64 `json:"wind_speed_80m,omitempty"`
	PrecipitProba []float64 `json:"precipitation_probability,omitempty"`
}
