package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CompletePayload(t *testing.T) {
	assert.NoError(t, Validate(mustCandidate(t, validPayload)))
}

func TestValidate_MissingTopLevelFields(t *testing.T) {
	for _, field := range RequiredTopLevelFields {
		t.Run("absent "+field, func(t *testing.T) {
			c := mustCandidate(t, payloadWith(t, func(m map[string]any) { delete(m, field) }))
			assertMissing(t, Validate(c), field)
		})
		t.Run("null "+field, func(t *testing.T) {
			c := mustCandidate(t, payloadWith(t, func(m map[string]any) { m[field] = nil }))
			assertMissing(t, Validate(c), field)
		})
	}
}

func TestValidate_ReportsFirstOmissionInContractOrder(t *testing.T) {
	c := mustCandidate(t, payloadWith(t, func(m map[string]any) {
		delete(m, FieldReport)
		delete(m, FieldKeyMetrics)
	}))
	assertMissing(t, Validate(c), FieldKeyMetrics)
}

func TestValidate_NestedFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(m map[string]any)
		field string
	}{
		{
			name:  "short-term outlook",
			edit:  func(m map[string]any) { delete(section(m, FieldReport), FieldShortTerm) },
			field: "report.shortTerm",
		},
		{
			name:  "long-term outlook null",
			edit:  func(m map[string]any) { section(m, FieldReport)[FieldLongTerm] = nil },
			field: "report.longTerm",
		},
		{
			name:  "outlook confidence score",
			edit:  func(m map[string]any) { delete(section(section(m, FieldReport), FieldLongTerm), FieldConfidenceScore) },
			field: "report.longTerm.confidenceScore",
		},
		{
			name:  "key metric",
			edit:  func(m map[string]any) { delete(section(m, FieldKeyMetrics), FieldDominantSoilType) },
			field: "keyMetrics.dominantSoilType",
		},
		{
			name:  "key metric score",
			edit:  func(m map[string]any) { delete(section(section(m, FieldKeyMetrics), FieldPopulationDensity), FieldScore) },
			field: "keyMetrics.populationDensity.score",
		},
		{
			name:  "current index score",
			edit:  func(m map[string]any) { delete(section(m, FieldCurrentWaterLevelIndex), FieldScore) },
			field: "currentWaterLevelIndex.score",
		},
		{
			name:  "longitude",
			edit:  func(m map[string]any) { delete(section(m, FieldCoordinates), FieldLon) },
			field: "coordinates.lon",
		},
		{
			name: "series year",
			edit: func(m map[string]any) {
				m[FieldPredictedWaterLevels] = []any{map[string]any{"score": 30.0}}
			},
			field: "predictedWaterLevels[0].year",
		},
		{
			name: "null rainfall entry",
			edit: func(m map[string]any) {
				m[FieldRainfallData] = []any{map[string]any{"year": 2018.0, "rainfall": 600.0}, nil}
			},
			field: "rainfallData[1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCandidate(t, payloadWith(t, tt.edit))
			assertMissing(t, Validate(c), tt.field)
		})
	}
}

func TestValidate_EmptySeriesArePresent(t *testing.T) {
	c := mustCandidate(t, payloadWith(t, func(m map[string]any) {
		m[FieldPredictedWaterLevels] = []any{}
		m[FieldRecommendations] = []any{}
	}))
	assert.NoError(t, Validate(c))
}

func TestValidate_EmptyLocationNameIsPresent(t *testing.T) {
	c := mustCandidate(t, payloadWith(t, func(m map[string]any) { m[FieldLocationName] = "" }))
	assert.NoError(t, Validate(c))
}

func assertMissing(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var de *Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %T", err)
	assert.Equal(t, KindMissingField, de.Kind)
	assert.Equal(t, field, de.Field)
}
