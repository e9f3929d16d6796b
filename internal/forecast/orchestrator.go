package forecast

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Submit runs one logical request to completion and returns the state it
// ended in: success, error, or idle when it was cancelled or superseded.
//
// Attempts run sequentially. A transient failure (network, 5xx, or offline)
// is retried after BaseDelay * 2^(attempt-1) until MaxAttempts is reached; any
// other failure ends the request immediately. Cancelling ctx abandons the
// request and returns the session to idle.
func (s *Session) Submit(ctx context.Context, req domain.PredictionRequest) State {
	requestID := s.newID()
	logger := s.logger.With("request_id", requestID)
	gen := s.begin(requestID)

	s.metrics.RequestsInFlight.Inc()
	defer s.metrics.RequestsInFlight.Dec()
	started := s.clock.Now()

	final, outcome := s.run(ctx, gen, req, logger)

	s.metrics.Requests.WithLabelValues(outcome).Inc()
	s.metrics.RequestDuration.Observe(s.clock.Since(started).Seconds())
	logger.Info("forecast request finished", "outcome", outcome, "status", final.Status)
	return final
}

func (s *Session) run(ctx context.Context, gen uint64, req domain.PredictionRequest, logger *slog.Logger) (State, string) {
	prompt, err := domain.BuildPrompt(req)
	if err != nil {
		logger.Warn("invalid forecast request", "error", err)
		return s.fail(gen, domain.KindOf(err))
	}

	for attempt := 1; ; attempt++ {
		if !s.current(gen) {
			return s.superseded()
		}

		attemptStart := s.clock.Now()
		report, err := s.attempt(ctx, prompt, req)
		s.metrics.AttemptDuration.Observe(s.clock.Since(attemptStart).Seconds())

		if err == nil {
			s.metrics.Attempts.WithLabelValues("success").Inc()
			// The floor is not cancellable; a reset meanwhile makes the
			// transition below a no-op.
			if elapsed := s.clock.Since(attemptStart); elapsed < s.policy.MinLoading {
				s.clock.Sleep(s.policy.MinLoading - elapsed)
			}
			st, ok := s.apply(gen, Succeeded{Report: report})
			if !ok {
				return s.superseded()
			}
			logger.Info("forecast ready", "attempt", attempt, "location", report.LocationName)
			return st, "success"
		}

		if ctx.Err() != nil {
			logger.Info("forecast request abandoned", "attempt", attempt, "reason", ctx.Err())
			return s.abandon(gen)
		}

		kind := domain.KindOf(err)
		s.metrics.AttemptFailures.WithLabelValues(string(kind)).Inc()
		offline := s.offline(ctx)
		retriable := offline || kind.Retriable()

		if retriable && attempt < s.policy.MaxAttempts {
			s.metrics.Attempts.WithLabelValues("retry").Inc()
			delay := backoffDelay(s.policy.BaseDelay, attempt)
			logger.Warn("attempt failed, retrying",
				"attempt", attempt,
				"kind", kind,
				"offline", offline,
				"delay", delay,
				"error", err,
			)
			if _, ok := s.apply(gen, RetryScheduled{Attempt: attempt}); !ok {
				return s.superseded()
			}
			if !sleepWithContext(ctx, s.clock, delay) {
				return s.abandon(gen)
			}
			continue
		}

		s.metrics.Attempts.WithLabelValues("failure").Inc()
		logger.Error("forecast request failed",
			"attempt", attempt,
			"kind", kind,
			"offline", offline,
			"retriable", retriable,
			"error", err,
		)
		if offline {
			kind = domain.KindNetworkUnavailable
		}
		return s.fail(gen, kind)
	}
}

// attempt performs one remote call and parses its payload into a report.
func (s *Session) attempt(ctx context.Context, prompt domain.Prompt, req domain.PredictionRequest) (*domain.PredictionReport, error) {
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	report, err := domain.ParseReport(text, req)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Session) fail(gen uint64, kind domain.Kind) (State, string) {
	st, ok := s.apply(gen, Failed{Message: UserMessage(kind)})
	if !ok {
		return s.superseded()
	}
	return st, "error"
}

func (s *Session) abandon(gen uint64) (State, string) {
	if _, ok := s.apply(gen, Reset{}); !ok {
		return s.superseded()
	}
	return State{Status: StatusIdle}, "cancelled"
}

func (s *Session) superseded() (State, string) {
	return State{Status: StatusIdle}, "superseded"
}

func (s *Session) offline(ctx context.Context) bool {
	if s.conn == nil {
		return false
	}
	return !s.conn.Online(ctx)
}

// backoffDelay returns base * 2^(attempt-1).
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base << (attempt - 1)
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
