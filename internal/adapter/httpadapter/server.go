package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"github.com/couchcryptid/groundwater-forecast-service/internal/forecast"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ForecastService is the session the API drives. *forecast.Session implements it.
type ForecastService interface {
	Submit(ctx context.Context, req domain.PredictionRequest) forecast.State
	State() forecast.State
	CancelToIdle()
	ForceError(message string)
}

// Server exposes health, readiness, metrics, and forecast HTTP endpoints.
type Server struct {
	httpServer *http.Server
	svc        ForecastService
	logger     *slog.Logger

	// Submissions outlive the HTTP request that started them and are
	// cancelled on Shutdown.
	submitCtx    context.Context
	cancelSubmit context.CancelFunc
	inflight     sync.WaitGroup

	mu      sync.Mutex
	closing bool // guards inflight.Add against a concurrent Wait
}

// NewServer creates an HTTP server with /healthz, /readyz, and /metrics
// routes, plus the forecast API under /v1.
func NewServer(addr string, ready sharedobs.ReadinessChecker, svc ForecastService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	submitCtx, cancel := context.WithCancel(context.Background())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:          svc,
		logger:       logger,
		submitCtx:    submitCtx,
		cancelSubmit: cancel,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("/v1/", s.apiRouter())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections, then cancels any forecast request
// still running and waits for it to return.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	s.cancelSubmit()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// track registers a background submission. It fails once Shutdown has begun.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.inflight.Add(1)
	return true
}
