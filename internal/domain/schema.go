package domain

// Field names of the structured response contract. The model is asked to
// answer in exactly this shape.
const (
	FieldLocationName           = "locationName"
	FieldCoordinates            = "coordinates"
	FieldLat                    = "lat"
	FieldLon                    = "lon"
	FieldKeyMetrics             = "keyMetrics"
	FieldAvgAnnualRainfall      = "avgAnnualRainfall"
	FieldDominantSoilType       = "dominantSoilType"
	FieldPopulationDensity      = "populationDensity"
	FieldKeyGeologicalFormation = "keyGeologicalFormation"
	FieldValue                  = "value"
	FieldScore                  = "score"
	FieldCondition              = "condition"
	FieldCurrentWaterLevelIndex = "currentWaterLevelIndex"
	FieldHistoricalWaterLevels  = "historicalWaterLevels"
	FieldPredictedWaterLevels   = "predictedWaterLevels"
	FieldRainfallData           = "rainfallData"
	FieldYear                   = "year"
	FieldRainfall               = "rainfall"
	FieldRecommendations        = "recommendations"
	FieldTitle                  = "title"
	FieldDescription            = "description"
	FieldReport                 = "report"
	FieldCoreFactors            = "coreFactors"
	FieldShortTerm              = "shortTerm"
	FieldLongTerm               = "longTerm"
	FieldConclusion             = "conclusion"
	FieldConfidence             = "confidence"
	FieldConfidenceScore        = "confidenceScore"
	FieldKeyFactors             = "keyFactors"
	FieldScenarios              = "scenarios"
	FieldMostLikely             = "mostLikely"
	FieldOptimistic             = "optimistic"
	FieldPessimistic            = "pessimistic"
)

// RequiredTopLevelFields lists the top-level fields a complete response
// carries, in the order the validator checks them.
var RequiredTopLevelFields = []string{
	FieldLocationName,
	FieldCoordinates,
	FieldKeyMetrics,
	FieldCurrentWaterLevelIndex,
	FieldHistoricalWaterLevels,
	FieldPredictedWaterLevels,
	FieldRainfallData,
	FieldRecommendations,
	FieldReport,
}

// KeyMetricFields lists the four named key metrics.
var KeyMetricFields = []string{
	FieldAvgAnnualRainfall,
	FieldDominantSoilType,
	FieldPopulationDensity,
	FieldKeyGeologicalFormation,
}
