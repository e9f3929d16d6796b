package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RawCandidate is the decoded but untrusted model output. Pointer fields
// distinguish an absent or null field from a zero value.
type RawCandidate struct {
	LocationName           *string              `json:"locationName"`
	Coordinates            *rawCoordinates      `json:"coordinates"`
	KeyMetrics             *rawKeyMetrics       `json:"keyMetrics"`
	CurrentWaterLevelIndex *rawWaterLevelIndex  `json:"currentWaterLevelIndex"`
	HistoricalWaterLevels  []*rawWaterLevel     `json:"historicalWaterLevels"`
	PredictedWaterLevels   []*rawWaterLevel     `json:"predictedWaterLevels"`
	RainfallData           []*rawRainfall       `json:"rainfallData"`
	Recommendations        []*rawRecommendation `json:"recommendations"`
	Report                 *rawOutlookReport    `json:"report"`
}

type rawCoordinates struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type rawMetric struct {
	Value string   `json:"value"`
	Score *float64 `json:"score"`
}

type rawKeyMetrics struct {
	AvgAnnualRainfall      *rawMetric `json:"avgAnnualRainfall"`
	DominantSoilType       *rawMetric `json:"dominantSoilType"`
	PopulationDensity      *rawMetric `json:"populationDensity"`
	KeyGeologicalFormation *rawMetric `json:"keyGeologicalFormation"`
}

func (k *rawKeyMetrics) byField() map[string]*rawMetric {
	return map[string]*rawMetric{
		FieldAvgAnnualRainfall:      k.AvgAnnualRainfall,
		FieldDominantSoilType:       k.DominantSoilType,
		FieldPopulationDensity:      k.PopulationDensity,
		FieldKeyGeologicalFormation: k.KeyGeologicalFormation,
	}
}

type rawWaterLevelIndex struct {
	Score     *float64 `json:"score"`
	Condition string   `json:"condition"`
}

// Years decode as float64 because models sometimes emit 2021.0.
type rawWaterLevel struct {
	Year  *float64 `json:"year"`
	Score *float64 `json:"score"`
}

type rawRainfall struct {
	Year     *float64 `json:"year"`
	Rainfall *float64 `json:"rainfall"`
}

type rawRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type rawOutlook struct {
	Confidence      string    `json:"confidence"`
	ConfidenceScore *float64  `json:"confidenceScore"`
	KeyFactors      string    `json:"keyFactors"`
	Scenarios       Scenarios `json:"scenarios"`
}

type rawOutlookReport struct {
	CoreFactors string      `json:"coreFactors"`
	ShortTerm   *rawOutlook `json:"shortTerm"`
	LongTerm    *rawOutlook `json:"longTerm"`
	Conclusion  string      `json:"conclusion"`
}

// StripCodeFence removes a surrounding markdown code fence such as
// "```json ... ```". Text without a complete fence is returned trimmed.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// Drop the info string ("json", "JSON", ...) on the opening line.
	if i := strings.IndexAny(s, "\n{["); i >= 0 && !strings.ContainsAny(s[:i], "{[") {
		s = s[i:]
	}
	return strings.TrimSpace(s)
}

// DecodeCandidate parses model output text into a candidate. Any failure is
// KindMalformedPayload.
func DecodeCandidate(text string) (RawCandidate, error) {
	body := StripCodeFence(text)
	if body == "" {
		return RawCandidate{}, NewError(KindMalformedPayload, errors.New("empty payload"))
	}
	var c RawCandidate
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return RawCandidate{}, NewError(KindMalformedPayload, fmt.Errorf("decode candidate: %w", err))
	}
	return c, nil
}
