package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are within range.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Advisory carries optional user-supplied data that overrides the model's
// general knowledge. Values are free text, e.g. "850" mm or "Clay Loam".
type Advisory struct {
	Rainfall   string `json:"rainfall,omitempty"`
	Soil       string `json:"soil,omitempty"`
	Population string `json:"population,omitempty"`
}

func (a Advisory) empty() bool {
	return strings.TrimSpace(a.Rainfall) == "" &&
		strings.TrimSpace(a.Soil) == "" &&
		strings.TrimSpace(a.Population) == ""
}

// PredictionRequest asks for one forecast. Exactly one of Location or
// Coordinates is the addressing key.
type PredictionRequest struct {
	Location    string       `json:"location,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Advisory    Advisory     `json:"advisory,omitempty"`
}

// LocationRequest addresses a forecast by place name.
func LocationRequest(location string, advisory Advisory) PredictionRequest {
	return PredictionRequest{Location: location, Advisory: advisory}
}

// CoordinateRequest addresses a forecast by coordinates.
func CoordinateRequest(lat, lon float64, advisory Advisory) PredictionRequest {
	return PredictionRequest{Coordinates: &Coordinates{Lat: lat, Lon: lon}, Advisory: advisory}
}

// ByCoordinates reports whether coordinates are the addressing key.
func (r PredictionRequest) ByCoordinates() bool {
	return strings.TrimSpace(r.Location) == "" && r.Coordinates != nil
}

// Validate checks the addressing key.
func (r PredictionRequest) Validate() error {
	hasLocation := strings.TrimSpace(r.Location) != ""
	switch {
	case hasLocation && r.Coordinates != nil:
		return NewError(KindInvalidRequest, errors.New("both location and coordinates supplied"))
	case !hasLocation && r.Coordinates == nil:
		return NewError(KindInvalidRequest, errors.New("either location or coordinates must be provided"))
	case r.Coordinates != nil && !r.Coordinates.Valid():
		return NewError(KindInvalidRequest, fmt.Errorf("coordinates out of range: %g, %g", r.Coordinates.Lat, r.Coordinates.Lon))
	}
	return nil
}
