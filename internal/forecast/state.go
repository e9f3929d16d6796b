package forecast

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
)

// Status is the observable phase of a logical request.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is the value observers see. A new State replaces the previous one on
// every transition; observers must not modify it or the report it points to.
type State struct {
	Status       Status                   `json:"status"`
	Data         *domain.PredictionReport `json:"data,omitempty"`
	Error        string                   `json:"error,omitempty"`
	RetryAttempt int                      `json:"retryAttempt"`
	RequestID    string                   `json:"requestId,omitempty"`
}

// Retrying reports whether the request is waiting out a backoff.
func (s State) Retrying() bool {
	return s.Status == StatusLoading && s.RetryAttempt > 0
}

// Terminal reports whether the logical request has finished.
func (s State) Terminal() bool {
	return s.Status == StatusSuccess || s.Status == StatusError
}

// Event drives a transition. The set is closed: Started, RetryScheduled,
// Succeeded, Failed, and Reset.
type Event interface {
	event()
}

// Started begins a new logical request.
type Started struct{ RequestID string }

// RetryScheduled announces that attempt Attempt failed transiently.
type RetryScheduled struct{ Attempt int }

// Succeeded carries the sanitized report.
type Succeeded struct{ Report *domain.PredictionReport }

// Failed ends a request with a user-presentable message.
type Failed struct{ Message string }

// Reset discards the current request.
type Reset struct{}

func (Started) event()        {}
func (RetryScheduled) event() {}
func (Succeeded) event()      {}
func (Failed) event()         {}
func (Reset) event()          {}

// ErrInvalidTransition is returned by Transition for events the current
// status does not accept.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition computes the state that follows s on e. It is pure.
//
//	Started         any     → loading, retryAttempt 0
//	RetryScheduled  loading → loading, retryAttempt = attempt (non-decreasing)
//	Succeeded       loading → success
//	Failed          any     → error
//	Reset           any     → idle
func Transition(s State, e Event) (State, error) {
	switch e := e.(type) {
	case Started:
		return State{Status: StatusLoading, RequestID: e.RequestID}, nil
	case RetryScheduled:
		if s.Status != StatusLoading {
			return s, fmt.Errorf("%w: retry from %s", ErrInvalidTransition, s.Status)
		}
		if e.Attempt < s.RetryAttempt {
			return s, fmt.Errorf("%w: retry attempt %d after %d", ErrInvalidTransition, e.Attempt, s.RetryAttempt)
		}
		return State{Status: StatusLoading, RetryAttempt: e.Attempt, RequestID: s.RequestID}, nil
	case Succeeded:
		if s.Status != StatusLoading {
			return s, fmt.Errorf("%w: success from %s", ErrInvalidTransition, s.Status)
		}
		if e.Report == nil {
			return s, fmt.Errorf("%w: success without report", ErrInvalidTransition)
		}
		return State{Status: StatusSuccess, Data: e.Report, RequestID: s.RequestID}, nil
	case Failed:
		return State{Status: StatusError, Error: e.Message, RequestID: s.RequestID}, nil
	case Reset:
		return State{Status: StatusIdle}, nil
	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, e)
	}
}
