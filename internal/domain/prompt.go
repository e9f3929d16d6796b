package domain

import (
	"fmt"
	"strings"
)

// DefaultTemperature keeps the model close to deterministic.
const DefaultTemperature = 0.2

// SystemInstruction constrains the model to conservative, data-grounded output.
const SystemInstruction = "Act as an expert hydrogeologist. Your analysis must be rigorously grounded in data from " +
	"official sources like government geological surveys and meteorological agencies. Provide a precise, " +
	"quantitative groundwater forecast. Prioritize verifiable data over speculation. When providing scores and " +
	"predictions, maintain a conservative and data-driven approach. Clearly state the key factors influencing your forecast."

const basePrompt = "Generate a detailed groundwater forecast, prioritizing data from official government " +
	"meteorological and geological survey sources. Ensure all time-series data (historicalWaterLevels, " +
	"predictedWaterLevels, rainfallData) is sorted chronologically by year. Crucially, the 'predictedWaterLevels' " +
	"array must start exactly one year after the final year in 'historicalWaterLevels'. The 'rainfallData' array " +
	"must correspond to the same years as the 'historicalWaterLevels' data. All scores must be between 0 and 100. " +
	"The 'conclusion' field must be a concise summary formatted as a markdown bulleted list (e.g., using '-' or '*'). " +
	"Each point should highlight a key takeaway from the analysis."

// Prompt is a fully formed remote request, minus the response schema which the
// adapter owns.
type Prompt struct {
	Text              string
	SystemInstruction string
	Temperature       float32
}

// BuildPrompt composes the request text for req. It fails with
// KindInvalidRequest when req has no usable addressing key.
func BuildPrompt(req PredictionRequest) (Prompt, error) {
	if err := req.Validate(); err != nil {
		return Prompt{}, err
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	if req.ByCoordinates() {
		fmt.Fprintf(&b, " The coordinates are lat: %g, lon: %g. Include a 'locationName' in the response.",
			req.Coordinates.Lat, req.Coordinates.Lon)
	} else {
		fmt.Fprintf(&b, " The location is: %q.", strings.TrimSpace(req.Location))
	}
	b.WriteString(advisoryClause(req.Advisory))

	return Prompt{
		Text:              b.String(),
		SystemInstruction: SystemInstruction,
		Temperature:       DefaultTemperature,
	}, nil
}

func advisoryClause(a Advisory) string {
	if a.empty() {
		return ""
	}
	var parts []string
	if v := strings.TrimSpace(a.Rainfall); v != "" {
		parts = append(parts, fmt.Sprintf("average annual rainfall of %s mm", v))
	}
	if v := strings.TrimSpace(a.Soil); v != "" {
		parts = append(parts, fmt.Sprintf("a dominant soil type of '%s'", v))
	}
	if v := strings.TrimSpace(a.Population); v != "" {
		parts = append(parts, fmt.Sprintf("a population density of %s people per square kilometer", v))
	}
	return " Use the following user-provided data as a primary source for your analysis, overriding general data where specified: " +
		strings.Join(parts, ", ") + "."
}
