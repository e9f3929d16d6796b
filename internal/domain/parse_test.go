package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReport(t *testing.T) {
	t.Run("fenced valid payload", func(t *testing.T) {
		r, err := ParseReport("```json\n"+validPayload+"\n```", LocationRequest("Jaipur", Advisory{}))
		require.NoError(t, err)
		assert.Equal(t, "Jaipur, Rajasthan", r.LocationName)
		assert.Len(t, r.RainfallData, 5)
	})

	t.Run("zero request falls back to payload coordinates", func(t *testing.T) {
		payload := payloadWith(t, func(m map[string]any) { m[FieldLocationName] = " " })
		r, err := ParseReport(payload, PredictionRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Forecast for 26.91°, 75.79°", r.LocationName)
	})

	tests := []struct {
		name    string
		payload string
		kind    Kind
	}{
		{"empty", "", KindMalformedPayload},
		{"not json", "the forecast is sunny", KindMalformedPayload},
		{"missing report", payloadWith(t, func(m map[string]any) { delete(m, FieldReport) }), KindMissingField},
		{"gap in timeline", payloadWith(t, func(m map[string]any) {
			m[FieldPredictedWaterLevels] = []any{map[string]any{"year": 2030, "score": 10}}
		}), KindInconsistentTimeline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReport(tt.payload, PredictionRequest{})
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}
