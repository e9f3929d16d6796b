package domain

// Condition bands for the current water level index.
const (
	ConditionSafe     = "Safe"
	ConditionModerate = "Moderate"
	ConditionDanger   = "Danger"
)

// Confidence labels for an outlook horizon.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Metric is a qualitative value with a 0-100 impact score.
type Metric struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// KeyMetrics holds the four named drivers of the forecast.
type KeyMetrics struct {
	AvgAnnualRainfall      Metric `json:"avgAnnualRainfall"`
	DominantSoilType       Metric `json:"dominantSoilType"`
	PopulationDensity      Metric `json:"populationDensity"`
	KeyGeologicalFormation Metric `json:"keyGeologicalFormation"`
}

// KeyMetricDisplayNames maps key metric fields to short labels.
var KeyMetricDisplayNames = map[string]string{
	FieldAvgAnnualRainfall:      "Rainfall",
	FieldDominantSoilType:       "Soil Type",
	FieldPopulationDensity:      "Population",
	FieldKeyGeologicalFormation: "Geology",
}

// WaterLevelIndex is the current condition of the aquifer.
type WaterLevelIndex struct {
	Score     float64 `json:"score"`
	Condition string  `json:"condition"`
}

// WaterLevelPoint is one year of a water level series.
type WaterLevelPoint struct {
	Year  int     `json:"year"`
	Score float64 `json:"score"`
}

// RainfallPoint is total annual rainfall in millimeters.
type RainfallPoint struct {
	Year     int     `json:"year"`
	Rainfall float64 `json:"rainfall"`
}

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Scenarios struct {
	MostLikely  string `json:"mostLikely"`
	Optimistic  string `json:"optimistic"`
	Pessimistic string `json:"pessimistic"`
}

// Outlook is one forecast horizon.
type Outlook struct {
	Confidence      string    `json:"confidence"`
	ConfidenceScore float64   `json:"confidenceScore"`
	KeyFactors      string    `json:"keyFactors"`
	Scenarios       Scenarios `json:"scenarios"`
}

// OutlookReport is the narrative part of the forecast.
type OutlookReport struct {
	CoreFactors string  `json:"coreFactors"`
	ShortTerm   Outlook `json:"shortTerm"`
	LongTerm    Outlook `json:"longTerm"`
	Conclusion  string  `json:"conclusion"`
}

// PredictionReport is a validated, sanitized forecast. Consumers must treat
// it as read-only.
type PredictionReport struct {
	LocationName           string            `json:"locationName"`
	Coordinates            Coordinates       `json:"coordinates"`
	KeyMetrics             KeyMetrics        `json:"keyMetrics"`
	CurrentWaterLevelIndex WaterLevelIndex   `json:"currentWaterLevelIndex"`
	HistoricalWaterLevels  []WaterLevelPoint `json:"historicalWaterLevels"`
	PredictedWaterLevels   []WaterLevelPoint `json:"predictedWaterLevels"`
	RainfallData           []RainfallPoint   `json:"rainfallData"`
	Recommendations        []Recommendation  `json:"recommendations"`
	Report                 OutlookReport     `json:"report"`
}
