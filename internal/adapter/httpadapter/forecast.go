package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
)

const maxBodyBytes = 16 << 10

// submitRequest addresses a forecast by location text or by coordinates.
type submitRequest struct {
	Location    string              `json:"location,omitempty"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
	Rainfall    string              `json:"rainfall,omitempty"`
	Soil        string              `json:"soil,omitempty"`
	Population  string              `json:"population,omitempty"`
}

func (r submitRequest) toDomain() domain.PredictionRequest {
	adv := domain.Advisory{Rainfall: r.Rainfall, Soil: r.Soil, Population: r.Population}
	return domain.PredictionRequest{
		Location:    r.Location,
		Coordinates: r.Coordinates,
		Advisory:    adv,
	}
}

type forceErrorRequest struct {
	Message string `json:"message"`
}

// handleSubmit starts a logical request in the background and answers 202.
// Progress is observed through GET /v1/forecast. Addressing problems surface
// as the session's error state, not as an HTTP error.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var body submitRequest
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	req := body.toDomain()
	if !s.track() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server is shutting down"})
		return
	}
	go func() {
		defer s.inflight.Done()
		s.svc.Submit(s.submitCtx, req)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.State())
}

func (s *Server) handleCancel(w http.ResponseWriter, _ *http.Request) {
	s.svc.CancelToIdle()
	writeJSON(w, http.StatusOK, s.svc.State())
}

func (s *Server) handleForceError(w http.ResponseWriter, r *http.Request) {
	var body forceErrorRequest
	if err := decodeBody(r, &body); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.svc.ForceError(body.Message)
	writeJSON(w, http.StatusOK, s.svc.State())
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
