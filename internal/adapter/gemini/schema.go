package gemini

import (
	"sync"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"google.golang.org/genai"
)

var (
	schemaOnce sync.Once
	schema     *genai.Schema
)

// ResponseSchema returns the JSON schema the model must answer in. The value
// is shared; callers must not modify it.
func ResponseSchema() *genai.Schema {
	schemaOnce.Do(func() { schema = buildSchema() })
	return schema
}

func buildSchema() *genai.Schema {
	metric := func(desc string) *genai.Schema {
		return object(desc, map[string]*genai.Schema{
			domain.FieldValue: str("Value with units, e.g. '650 mm'."),
			domain.FieldScore: number("Groundwater favourability score, 0 to 100."),
		}, domain.FieldValue, domain.FieldScore)
	}
	levels := func(desc string) *genai.Schema {
		return array(desc, object("", map[string]*genai.Schema{
			domain.FieldYear:  integer(""),
			domain.FieldScore: number("Water level index, 0 to 100."),
		}, domain.FieldYear, domain.FieldScore))
	}
	outlook := func(desc string) *genai.Schema {
		return object(desc, map[string]*genai.Schema{
			domain.FieldConfidence:      enum("Confidence label.", domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow),
			domain.FieldConfidenceScore: number("Confidence, 0 to 100."),
			domain.FieldKeyFactors:      str(""),
			domain.FieldScenarios: object("", map[string]*genai.Schema{
				domain.FieldMostLikely:  str(""),
				domain.FieldOptimistic:  str(""),
				domain.FieldPessimistic: str(""),
			}, domain.FieldMostLikely, domain.FieldOptimistic, domain.FieldPessimistic),
		}, domain.FieldConfidence, domain.FieldConfidenceScore, domain.FieldKeyFactors, domain.FieldScenarios)
	}

	return object("Groundwater forecast.", map[string]*genai.Schema{
		domain.FieldLocationName: str("Human-readable name of the forecast location."),
		domain.FieldCoordinates: object("", map[string]*genai.Schema{
			domain.FieldLat: number(""),
			domain.FieldLon: number(""),
		}, domain.FieldLat, domain.FieldLon),
		domain.FieldKeyMetrics: object("", map[string]*genai.Schema{
			domain.FieldAvgAnnualRainfall:      metric("Average annual rainfall."),
			domain.FieldDominantSoilType:       metric("Dominant soil type."),
			domain.FieldPopulationDensity:      metric("Population density."),
			domain.FieldKeyGeologicalFormation: metric("Key geological formation."),
		}, domain.KeyMetricFields...),
		domain.FieldCurrentWaterLevelIndex: object("", map[string]*genai.Schema{
			domain.FieldScore:     number("Current water level index, 0 to 100."),
			domain.FieldCondition: enum("", domain.ConditionSafe, domain.ConditionModerate, domain.ConditionDanger),
		}, domain.FieldScore, domain.FieldCondition),
		domain.FieldHistoricalWaterLevels: levels("Past yearly water levels, sorted by year."),
		domain.FieldPredictedWaterLevels:  levels("Forecast yearly water levels, starting the year after the last historical year."),
		domain.FieldRainfallData: array("Yearly rainfall for the historical years.", object("", map[string]*genai.Schema{
			domain.FieldYear:     integer(""),
			domain.FieldRainfall: number("Rainfall in mm."),
		}, domain.FieldYear, domain.FieldRainfall)),
		domain.FieldRecommendations: array("", object("", map[string]*genai.Schema{
			domain.FieldTitle:       str(""),
			domain.FieldDescription: str(""),
		}, domain.FieldTitle, domain.FieldDescription)),
		domain.FieldReport: object("", map[string]*genai.Schema{
			domain.FieldCoreFactors: str(""),
			domain.FieldShortTerm:   outlook("Outlook for the next one to two years."),
			domain.FieldLongTerm:    outlook("Outlook for the next five to ten years."),
			domain.FieldConclusion:  str("Markdown bulleted list of key takeaways."),
		}, domain.FieldCoreFactors, domain.FieldShortTerm, domain.FieldLongTerm, domain.FieldConclusion),
	}, domain.RequiredTopLevelFields...)
}

func object(desc string, props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: desc,
		Properties:  props,
		Required:    required,
	}
}

func array(desc string, items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Description: desc, Items: items}
}

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func number(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: desc}
}

func integer(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger, Description: desc}
}

func enum(desc string, values ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Format: "enum", Description: desc, Enum: values}
}
