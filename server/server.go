// Package server exposes the isochrone service over HTTP.
//
//	POST /v1/isochrones  samples + limits → GeoJSON, one feature per limit
//	GET  /healthz        liveness
//	GET  /metrics        Prometheus exposition
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/isochrone"
	"github.com/katalvlaran/isochrone/config"
	"github.com/katalvlaran/isochrone/metrics"
)

// Server is the HTTP adapter around an isochrone.Service.
type Server struct {
	svc     *isochrone.Service
	cfg     config.ServerConfig
	metrics *metrics.Registry
	logger  *slog.Logger
	router  *mux.Router
}

// New wires the routes. reg may be nil, in which case a private registry is
// used so /metrics still answers.
func New(svc *isochrone.Service, cfg config.ServerConfig, reg *metrics.Registry, logger *slog.Logger) *Server {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		svc:     svc,
		cfg:     cfg,
		metrics: reg,
		logger:  logger,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/v1/isochrones", s.computeIsochrones).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg.PrometheusRegistry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	s.router.Use(s.panicRecoveryMiddleware)
	s.router.Use(s.metricsMiddleware)
	s.router.Use(s.loggingMiddleware)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
