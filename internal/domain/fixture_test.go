package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const validPayload = `{
  "locationName": "Jaipur, Rajasthan",
  "coordinates": {"lat": 26.91, "lon": 75.79},
  "keyMetrics": {
    "avgAnnualRainfall": {"value": "650 mm", "score": 42},
    "dominantSoilType": {"value": "Sandy Loam", "score": 55},
    "populationDensity": {"value": "598 /km²", "score": 71},
    "keyGeologicalFormation": {"value": "Alluvium", "score": 63}
  },
  "currentWaterLevelIndex": {"score": 34, "condition": "Moderate"},
  "historicalWaterLevels": [
    {"year": 2018, "score": 48}, {"year": 2019, "score": 45}, {"year": 2020, "score": 41},
    {"year": 2021, "score": 38}, {"year": 2022, "score": 34}
  ],
  "predictedWaterLevels": [
    {"year": 2023, "score": 31}, {"year": 2024, "score": 29}, {"year": 2025, "score": 27}
  ],
  "rainfallData": [
    {"year": 2018, "rainfall": 610}, {"year": 2019, "rainfall": 720}, {"year": 2020, "rainfall": 580},
    {"year": 2021, "rainfall": 655}, {"year": 2022, "rainfall": 590}
  ],
  "recommendations": [
    {"title": "Rainwater harvesting", "description": "Mandate rooftop harvesting for new buildings."}
  ],
  "report": {
    "coreFactors": "Over-extraction for agriculture.",
    "shortTerm": {
      "confidence": "High", "confidenceScore": 78, "keyFactors": "Monsoon variability.",
      "scenarios": {"mostLikely": "Slow decline.", "optimistic": "Stabilisation.", "pessimistic": "Rapid decline."}
    },
    "longTerm": {
      "confidence": "Medium", "confidenceScore": 52, "keyFactors": "Urban growth.",
      "scenarios": {"mostLikely": "Continued decline.", "optimistic": "Recovery.", "pessimistic": "Depletion."}
    },
    "conclusion": "- Levels are falling\n- Recharge is insufficient"
  }
}`

// payloadWith decodes validPayload, applies edit to its generic form, and
// returns the re-encoded JSON.
func payloadWith(t *testing.T, edit func(m map[string]any)) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(validPayload), &m))
	edit(m)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}

func mustCandidate(t *testing.T, payload string) RawCandidate {
	t.Helper()
	c, err := DecodeCandidate(payload)
	require.NoError(t, err)
	return c
}

func series(points ...[2]float64) []any {
	out := make([]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{"year": p[0], "score": p[1]})
	}
	return out
}

func rainfallSeries(points ...[2]float64) []any {
	out := make([]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{"year": p[0], "rainfall": p[1]})
	}
	return out
}

func section(m map[string]any, key string) map[string]any {
	return m[key].(map[string]any)
}
