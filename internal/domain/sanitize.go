package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Sanitize turns a validated candidate into a report that satisfies the report
// invariants. req supplies the fallback location label. The candidate is not
// modified; every slice in the report is freshly allocated.
//
// Sanitize assumes Validate(c) returned nil.
func Sanitize(c RawCandidate, req PredictionRequest) (PredictionReport, error) {
	r := PredictionReport{
		Coordinates: Coordinates{Lat: *c.Coordinates.Lat, Lon: *c.Coordinates.Lon},
	}
	if c.LocationName != nil {
		r.LocationName = strings.TrimSpace(*c.LocationName)
	}

	// 1. Scores.
	r.CurrentWaterLevelIndex = WaterLevelIndex{
		Score:     clampScore(*c.CurrentWaterLevelIndex.Score),
		Condition: c.CurrentWaterLevelIndex.Condition,
	}
	r.CurrentWaterLevelIndex.Condition = normalizeCondition(r.CurrentWaterLevelIndex.Condition, r.CurrentWaterLevelIndex.Score)
	r.KeyMetrics = KeyMetrics{
		AvgAnnualRainfall:      sanitizeMetric(c.KeyMetrics.AvgAnnualRainfall),
		DominantSoilType:       sanitizeMetric(c.KeyMetrics.DominantSoilType),
		PopulationDensity:      sanitizeMetric(c.KeyMetrics.PopulationDensity),
		KeyGeologicalFormation: sanitizeMetric(c.KeyMetrics.KeyGeologicalFormation),
	}
	r.Report = OutlookReport{
		CoreFactors: c.Report.CoreFactors,
		ShortTerm:   sanitizeOutlook(c.Report.ShortTerm),
		LongTerm:    sanitizeOutlook(c.Report.LongTerm),
		Conclusion:  c.Report.Conclusion,
	}
	r.HistoricalWaterLevels = waterLevels(c.HistoricalWaterLevels)
	r.PredictedWaterLevels = waterLevels(c.PredictedWaterLevels)
	r.RainfallData = rainfall(c.RainfallData)

	// 2. Chronological order.
	byYear := func(a, b WaterLevelPoint) int { return cmp.Compare(a.Year, b.Year) }
	slices.SortStableFunc(r.HistoricalWaterLevels, byYear)
	slices.SortStableFunc(r.PredictedWaterLevels, byYear)
	slices.SortStableFunc(r.RainfallData, func(a, b RainfallPoint) int { return cmp.Compare(a.Year, b.Year) })

	// 3. Continuity between history and prediction.
	if err := checkContinuity(r.HistoricalWaterLevels, r.PredictedWaterLevels); err != nil {
		return PredictionReport{}, err
	}

	// 4. Rainfall aligned with historical years.
	r.RainfallData = alignRainfall(r.RainfallData, r.HistoricalWaterLevels)

	// 5. Location label.
	if r.LocationName == "" {
		r.LocationName = fallbackLocationName(req, r.Coordinates)
	}

	r.Recommendations = make([]Recommendation, 0, len(c.Recommendations))
	for _, rec := range c.Recommendations {
		r.Recommendations = append(r.Recommendations, Recommendation{Title: rec.Title, Description: rec.Description})
	}

	return r, nil
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func sanitizeMetric(m *rawMetric) Metric {
	return Metric{Value: m.Value, Score: clampScore(*m.Score)}
}

func sanitizeOutlook(o *rawOutlook) Outlook {
	score := clampScore(*o.ConfidenceScore)
	return Outlook{
		Confidence:      normalizeConfidence(o.Confidence, score),
		ConfidenceScore: score,
		KeyFactors:      o.KeyFactors,
		Scenarios:       o.Scenarios,
	}
}

func waterLevels(in []*rawWaterLevel) []WaterLevelPoint {
	out := make([]WaterLevelPoint, 0, len(in))
	for _, p := range in {
		out = append(out, WaterLevelPoint{Year: int(math.Round(*p.Year)), Score: clampScore(*p.Score)})
	}
	return out
}

func rainfall(in []*rawRainfall) []RainfallPoint {
	out := make([]RainfallPoint, 0, len(in))
	for _, p := range in {
		out = append(out, RainfallPoint{Year: int(math.Round(*p.Year)), Rainfall: *p.Rainfall})
	}
	return out
}

func checkContinuity(historical, predicted []WaterLevelPoint) error {
	if len(historical) == 0 || len(predicted) == 0 {
		return nil
	}
	last := historical[len(historical)-1].Year
	first := predicted[0].Year
	if first != last+1 {
		return NewError(KindInconsistentTimeline,
			fmt.Errorf("prediction starts in %d, historical data ends in %d", first, last))
	}
	return nil
}

// alignRainfall keeps the rainfall entries whose year appears in the
// historical series. Forward-looking rainfall is dropped.
func alignRainfall(data []RainfallPoint, historical []WaterLevelPoint) []RainfallPoint {
	years := make(map[int]struct{}, len(historical))
	for _, p := range historical {
		years[p.Year] = struct{}{}
	}
	out := data[:0]
	for _, p := range data {
		if _, ok := years[p.Year]; ok {
			out = append(out, p)
		}
	}
	return out
}

func fallbackLocationName(req PredictionRequest, coords Coordinates) string {
	if req.ByCoordinates() {
		return FormatCoordinatesLabel(*req.Coordinates)
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		return loc
	}
	return FormatCoordinatesLabel(coords)
}

// FormatCoordinatesLabel renders a location label from coordinates with two
// decimal places.
func FormatCoordinatesLabel(c Coordinates) string {
	return fmt.Sprintf("Forecast for %.2f°, %.2f°", c.Lat, c.Lon)
}

func normalizeCondition(label string, score float64) string {
	for _, c := range []string{ConditionSafe, ConditionModerate, ConditionDanger} {
		if strings.EqualFold(strings.TrimSpace(label), c) {
			return c
		}
	}
	switch {
	case score >= 60:
		return ConditionSafe
	case score >= 30:
		return ConditionModerate
	default:
		return ConditionDanger
	}
}

func normalizeConfidence(label string, score float64) string {
	for _, c := range []string{ConfidenceHigh, ConfidenceMedium, ConfidenceLow} {
		if strings.EqualFold(strings.TrimSpace(label), c) {
			return c
		}
	}
	switch {
	case score >= 70:
		return ConfidenceHigh
	case score >= 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
