package ai

// WeatherAssessment is the structured answer to the weather analysis prompt.
type WeatherAssessment struct {
	IsFavorable     bool     `json:"is_favorable"`
	Summary         string   `json:"summary"`
	Concerns        []string `json:"concerns"`
	Recommendations string   `json:"recommendations"`
}

// WeatherAssessmentSchema describes WeatherAssessment.
var WeatherAssessmentSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"is_favorable":    {Type: TypeBoolean, Description: "true when the weather suits the trip"},
		"summary":         {Type: TypeString, Description: "one paragraph weather summary"},
		"concerns":        {Type: TypeArray, Items: &Schema{Type: TypeString}},
		"recommendations": {Type: TypeString},
	},
	Required: []string{"is_favorable", "summary", "concerns", "recommendations"},
}

// AlternateDestinations is the structured answer to the alternates prompt.
type AlternateDestinations struct {
	Destinations []string `json:"destinations"`
	Reasons      []string `json:"reasons"`
}

// AlternateDestinationsSchema describes AlternateDestinations.
var AlternateDestinationsSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"destinations": {Type: TypeArray, Items: &Schema{Type: TypeString, Description: "lowercase city name"}},
		"reasons":      {Type: TypeArray, Items: &Schema{Type: TypeString}},
	},
	Required: []string{"destinations", "reasons"},
}
