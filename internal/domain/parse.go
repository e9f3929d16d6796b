package domain

// ParseReport runs a raw model response through decoding, validation, and
// sanitization. req supplies the fallback location label; a zero request
// falls back to the payload's own coordinates.
func ParseReport(text string, req PredictionRequest) (PredictionReport, error) {
	c, err := DecodeCandidate(text)
	if err != nil {
		return PredictionReport{}, err
	}
	if err := Validate(c); err != nil {
		return PredictionReport{}, err
	}
	return Sanitize(c, req)
}
