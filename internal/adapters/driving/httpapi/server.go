package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
	"github.com/kmikayilov/permeability-measurement-app/internal/logger"
)

// Routes.
const (
	plotPath        = "/plot"
	correctionsPath = "/api/v1/corrections"
	healthPath      = "/healthz"
	metricsPath     = "/metrics"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API for the correction pipeline.
type Server struct {
	ports    *Ports
	settings domain.ServerSettings
	metrics  *Metrics
	limiter  *RateLimiter
	handler  http.Handler
}

// NewServer creates a new HTTP server with the given ports and settings.
func NewServer(ports *Ports, settings domain.ServerSettings) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if settings.RequestTimeout <= 0 {
		return nil, fmt.Errorf("%w: request timeout must be positive", domain.ErrInvalidInput)
	}

	s := &Server{
		ports:    ports,
		settings: settings,
		metrics:  NewMetrics(),
		limiter: NewRateLimiter(RateLimitConfig{
			RequestsPerSecond: settings.RateLimitRPS,
			BurstSize:         settings.RateLimitBurst,
		}),
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	plot := s.metrics.instrument(plotPath, http.HandlerFunc(s.handlePlot))
	mux.Handle("POST "+plotPath, plot)
	mux.Handle("POST "+correctionsPath, plot)
	mux.Handle(plotPath, methodNotAllowed("POST, OPTIONS"))
	mux.Handle(correctionsPath, methodNotAllowed("POST, OPTIONS"))

	mux.Handle("GET "+healthPath, s.metrics.instrument(healthPath, http.HandlerFunc(s.handleHealth)))
	mux.Handle("GET "+metricsPath, s.metrics.Handler())
	mux.HandleFunc("/", notFound)

	return chain(mux,
		withRequestID,
		withLogging,
		withRecovery,
		withCORS(s.settings),
		withRateLimit(s.limiter, s.metrics),
		withBodyLimit(s.settings.MaxBodyBytes),
	)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.settings.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.settings.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	readHeaderTimeout := s.settings.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 10 * time.Second
	}

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	logger.Info("listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
