package weather

import (
	"fmt"
	"strings"

	"voyage/internal/types"
)

// Summarize renders the deterministic text handed to the weather analysis prompt.
// Series the provider omitted are left out.
func Summarize(data *types.ForecastData) string {
	if data == nil {
		return "Weather data summary unavailable"
	}
	var parts []string

	if temps := data.Daily.TemperatureMax; len(temps) > 0 {
		lo, hi := temps[0], temps[0]
		for _, v := range temps[1:] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
		parts = append(parts, fmt.Sprintf("Temperatures: %.1f°C to %.1f°C", lo, hi))
	}
	if data.Hourly.Rain != nil {
		parts = append(parts, fmt.Sprintf("Total precipitation: %.1fmm", sum(data.Hourly.Rain)))
	}
	if data.Daily.PrecipitationHours != nil {
		parts = append(parts, fmt.Sprintf("Rainy hours: %.1f", sum(data.Daily.PrecipitationHours)))
	}

	if len(parts) == 0 {
		return "Weather data summary unavailable"
	}
	return strings.Join(parts, "\n")
}

func sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total
}
