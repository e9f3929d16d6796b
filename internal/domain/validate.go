package domain

import "fmt"

// Validate confirms every required field of the candidate is present and
// non-null. It fails on the first omission with a KindMissingField error
// naming the field as a dotted path.
func Validate(c RawCandidate) error {
	present := map[string]bool{
		FieldLocationName:           c.LocationName != nil,
		FieldCoordinates:            c.Coordinates != nil,
		FieldKeyMetrics:             c.KeyMetrics != nil,
		FieldCurrentWaterLevelIndex: c.CurrentWaterLevelIndex != nil,
		FieldHistoricalWaterLevels:  c.HistoricalWaterLevels != nil,
		FieldPredictedWaterLevels:   c.PredictedWaterLevels != nil,
		FieldRainfallData:           c.RainfallData != nil,
		FieldRecommendations:        c.Recommendations != nil,
		FieldReport:                 c.Report != nil,
	}
	for _, f := range RequiredTopLevelFields {
		if !present[f] {
			return MissingField(f)
		}
	}

	if c.Coordinates.Lat == nil {
		return MissingField(FieldCoordinates + "." + FieldLat)
	}
	if c.Coordinates.Lon == nil {
		return MissingField(FieldCoordinates + "." + FieldLon)
	}

	metrics := c.KeyMetrics.byField()
	for _, f := range KeyMetricFields {
		m := metrics[f]
		if m == nil {
			return MissingField(FieldKeyMetrics + "." + f)
		}
		if m.Score == nil {
			return MissingField(FieldKeyMetrics + "." + f + "." + FieldScore)
		}
	}

	if c.CurrentWaterLevelIndex.Score == nil {
		return MissingField(FieldCurrentWaterLevelIndex + "." + FieldScore)
	}

	if err := validateWaterLevels(FieldHistoricalWaterLevels, c.HistoricalWaterLevels); err != nil {
		return err
	}
	if err := validateWaterLevels(FieldPredictedWaterLevels, c.PredictedWaterLevels); err != nil {
		return err
	}
	for i, p := range c.RainfallData {
		switch {
		case p == nil:
			return MissingField(fmt.Sprintf("%s[%d]", FieldRainfallData, i))
		case p.Year == nil:
			return MissingField(fmt.Sprintf("%s[%d].%s", FieldRainfallData, i, FieldYear))
		case p.Rainfall == nil:
			return MissingField(fmt.Sprintf("%s[%d].%s", FieldRainfallData, i, FieldRainfall))
		}
	}
	for i, r := range c.Recommendations {
		if r == nil {
			return MissingField(fmt.Sprintf("%s[%d]", FieldRecommendations, i))
		}
	}

	if err := validateOutlook(FieldShortTerm, c.Report.ShortTerm); err != nil {
		return err
	}
	return validateOutlook(FieldLongTerm, c.Report.LongTerm)
}

func validateWaterLevels(field string, series []*rawWaterLevel) error {
	for i, p := range series {
		switch {
		case p == nil:
			return MissingField(fmt.Sprintf("%s[%d]", field, i))
		case p.Year == nil:
			return MissingField(fmt.Sprintf("%s[%d].%s", field, i, FieldYear))
		case p.Score == nil:
			return MissingField(fmt.Sprintf("%s[%d].%s", field, i, FieldScore))
		}
	}
	return nil
}

func validateOutlook(horizon string, o *rawOutlook) error {
	path := FieldReport + "." + horizon
	if o == nil {
		return MissingField(path)
	}
	if o.ConfidenceScore == nil {
		return MissingField(path + "." + FieldConfidenceScore)
	}
	return nil
}
