package service

import (
	"fmt"
	"strings"

	"voyage/internal/types"
)

const maxContextAttractions = 10

func weatherAnalysisPrompt(r *planningRecord, summary string) string {
	return fmt.Sprintf(`You are a travel weather analyst. Analyze the following weather forecast for a trip.

Destination: %s
Travel Dates: %s to %s
Travel Type: %s

Weather Data:
%s

Determine if the weather is favorable for this trip. Consider:
- Temperature extremes
- Precipitation
- Severe weather alerts
- Suitability for the travel type (e.g., outdoor activities in rain)
`, r.Destination, r.start(), r.end(), r.TravelType, summary)
}

func alternatesPrompt(r *planningRecord) string {
	return fmt.Sprintf(`You are a travel expert. The weather in %[1]s is unfavorable during %[2]s to %[3]s.

Weather concerns: %[4]s

Travel preferences:
- Travel type: %[5]s
- Duration: %[6]d days
- Departure from: %[7]s

Suggest 3-5 alternate destinations that:
1. Have better weather during these dates
2. Match the travel type and preferences
3. Are accessible from %[7]s
4. Offer similar experiences
5. Are given as city names only, lower case, with no country or region.

Provide the destinations as a JSON list with one reason per destination.
`, r.Destination, r.start(), r.end(), r.weatherAnalysis, r.TravelType, r.Duration, r.Departure)
}

func itineraryPrompt(context string) string {
	return `You are an expert travel planner. Create a detailed day-by-day itinerary for the following trip:

` + context + `

Create a comprehensive itinerary that includes:
1. Day-wise activities with timings
2. Recommended restaurants for meals
3. Travel tips and important notes
4. Estimated costs per day
5. Backup plans for bad weather days

Make it engaging, practical, and tailored to the traveler's preferences.

Write the itinerary in a friendly, informative markdown format suitable for a travel guide.
Include emojis where appropriate to make it visually appealing.
`
}

// itineraryContext is the fact block handed to the itinerary prompt.
func itineraryContext(r *planningRecord) string {
	analysis := r.weatherAnalysis
	if analysis == "" {
		analysis = "Not analyzed"
	}
	parts := []string{
		"Destination: " + r.Destination,
		fmt.Sprintf("Duration: %d days (%s to %s)", r.Duration, r.start(), r.end()),
		fmt.Sprintf("Travelers: %d adults", r.Adults),
		"Travel Type: " + string(r.TravelType),
		fmt.Sprintf("Budget: Flights %s, Hotels %s/night", r.FlightBudget, r.HotelBudget),
		"\nWeather: " + analysis,
	}
	if titles := attractionTitles(r.attractions, maxContextAttractions); len(titles) > 0 {
		parts = append(parts, "\nTop Attractions: "+strings.Join(titles, ", "))
	}
	if r.budgetNotes != "" {
		parts = append(parts, "\nBudget Analysis: "+r.budgetNotes)
	}
	return strings.Join(parts, "\n")
}

func attractionTitles(res *types.AttractionResults, limit int) []string {
	items := res.Items()
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]string, 0, len(items))
	for _, a := range items {
		title := a.Title
		if title == "" {
			title = "Unknown"
		}
		out = append(out, title)
	}
	return out
}
