package forecast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"github.com/couchcryptid/groundwater-forecast-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Generator performs one remote structured-generation call and returns the
// model's text. Failures are classified as *domain.Error.
type Generator interface {
	Generate(ctx context.Context, p domain.Prompt) (string, error)
}

// Connectivity reports whether the network is reachable. An offline result
// makes any failure retriable.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// Observer receives every state transition, in order.
type Observer interface {
	Observe(State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(State)

func (f ObserverFunc) Observe(s State) { f(s) }

// Policy controls retries and the minimum loading time.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MinLoading  time.Duration
}

// DefaultPolicy is three attempts, 1.5s base backoff, and a 750ms floor.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   1500 * time.Millisecond,
		MinLoading:  750 * time.Millisecond,
	}
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces the real clock, typically with a fake in tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithConnectivity sets the offline indicator.
func WithConnectivity(c Connectivity) Option {
	return func(s *Session) { s.conn = c }
}

// WithObservers registers observers at construction.
func WithObservers(obs ...Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, obs...) }
}

// WithRequestIDs replaces the request ID generator.
func WithRequestIDs(next func() string) Option {
	return func(s *Session) { s.newID = next }
}

// Session owns the request state for one presentation session. It runs at
// most one logical request at a time; starting a new one supersedes the old.
//
// Observers are called synchronously while the session lock is held and must
// not call back into the Session.
type Session struct {
	gen     Generator
	conn    Connectivity
	clock   clockwork.Clock
	policy  Policy
	logger  *slog.Logger
	metrics *observability.Metrics
	newID   func() string

	mu         sync.Mutex
	state      State
	generation uint64
	observers  []Observer
}

// NewSession creates an idle Session.
func NewSession(gen Generator, policy Policy, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Session {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	s := &Session{
		gen:     gen,
		clock:   clockwork.NewRealClock(),
		policy:  policy,
		logger:  logger,
		metrics: metrics,
		newID:   uuid.NewString,
		state:   State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe adds an observer for subsequent transitions.
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SubmitByLocation runs a logical request addressed by place name.
func (s *Session) SubmitByLocation(ctx context.Context, location string, advisory domain.Advisory) State {
	return s.Submit(ctx, domain.LocationRequest(location, advisory))
}

// SubmitByCoordinates runs a logical request addressed by coordinates.
func (s *Session) SubmitByCoordinates(ctx context.Context, lat, lon float64, advisory domain.Advisory) State {
	return s.Submit(ctx, domain.CoordinateRequest(lat, lon, advisory))
}

// CancelToIdle returns the session to idle. Results of the request in flight,
// if any, are discarded when they arrive.
func (s *Session) CancelToIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.transition(Reset{})
}

// ForceError ends the session in the error state without attempting a remote
// call, e.g. when the caller cannot determine a location at all.
func (s *Session) ForceError(message string) {
	if message == "" {
		message = UserMessage(domain.KindUnexpected)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.transition(Failed{Message: message})
}

// begin starts a logical request and returns its generation.
func (s *Session) begin(requestID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.transition(Started{RequestID: requestID})
	return s.generation
}

// apply transitions on behalf of the request with generation gen. It returns
// false, leaving the state untouched, once that request has been superseded.
func (s *Session) apply(gen uint64, e Event) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return s.state, false
	}
	ok := s.transition(e)
	return s.state, ok
}

// current reports whether gen is still the live request.
func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

// transition must be called with s.mu held.
func (s *Session) transition(e Event) bool {
	next, err := Transition(s.state, e)
	if err != nil {
		s.logger.Error("state transition rejected", "error", err, "status", s.state.Status)
		return false
	}
	s.state = next
	for _, o := range s.observers {
		o.Observe(next)
	}
	return true
}
