package weather

import "voyage/internal/types"

type condition struct {
	label string
	icon  string
}

// WMO weather interpretation codes as documented by Open-Meteo.
var wmoCodes = map[int]condition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "💧"},
	53: {"Moderate drizzle", "💧"},
	55: {"Dense drizzle", "💧"},
	56: {"Light freezing drizzle", "❄️💧"},
	57: {"Dense freezing drizzle", "❄️💧"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Light freezing rain", "❄️🌧️"},
	67: {"Heavy freezing rain", "❄️🌧️"},
	71: {"Slight snow fall", "🌨️"},
	73: {"Moderate snow fall", "🌨️"},
	75: {"Heavy snow fall", "🌨️"},
	77: {"Snow grains", "🌨️"},
	80: {"Slight rain showers", "🌦️"},
	81: {"Moderate rain showers", "🌦️"},
	82: {"Violent rain showers", "🌦️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "🌨️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// Condition maps a WMO code to a label and icon.
func Condition(code int) (string, string) {
	if c, ok := wmoCodes[code]; ok {
		return c.label, c.icon
	}
	return "Unknown", "❓"
}

// Day is one row of the daily forecast table.
type Day struct {
	Date       string   `json:"date"`
	Condition  string   `json:"condition"`
	Icon       string   `json:"icon"`
	TempMin    *float64 `json:"temp_min,omitempty"`
	TempMax    *float64 `json:"temp_max,omitempty"`
	RainMM     *float64 `json:"rain_mm,omitempty"`
	PrecipProb *float64 `json:"precip_probability,omitempty"`
	UVIndex    *float64 `json:"uv_index,omitempty"`
	WindMaxKmh *float64 `json:"wind_max_kmh,omitempty"`
}

// Days flattens the daily series into rows; series shorter than Time leave gaps.
func Days(data *types.ForecastData) []Day {
	if data == nil {
		return nil
	}
	d := data.Daily
	out := make([]Day, 0, len(d.Time))
	for i, date := range d.Time {
		row := Day{Date: date, Condition: "Unknown", Icon: "❓"}
		if i < len(d.WeatherCode) {
			row.Condition, row.Icon = Condition(d.WeatherCode[i])
		}
		row.TempMin = at(d.TemperatureMin, i)
		row.TempMax = at(d.TemperatureMax, i)
		row.RainMM = at(d.RainSum, i)
		row.PrecipProb = at(d.PrecipitationProbMx, i)
		row.UVIndex = at(d.UVIndexMax, i)
		row.WindMaxKmh = at(d.WindSpeedMax, i)
		out = append(out, row)
	}
	return out
}

func at(series []float64, i int) *float64 {
	if i >= len(series) {
		return nil
	}
	v := series[i]
	return &v
}
