// Package api hosts the HTTP front-end surface for submitting requests and
// polling run status.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	v0 "github.com/provision-dev/provision/internal/api/handlers/v0"
	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/internal/status"
	"github.com/provision-dev/provision/internal/version"
)

// Server is the HTTP API server.
type Server struct {
	mux    *http.ServeMux
	api    huma.API
	server *http.Server
	logger *zap.Logger
}

// NewServer wires the API routes, metrics endpoint, and CORS middleware.
func NewServer(cfg *config.Config, runner v0.Runner, registry *status.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	humaAPI := humago.New(mux, huma.DefaultConfig("Provision API", version.Version))

	v0.RegisterPingEndpoint(humaAPI, "/v0")
	v0.RegisterConfigEndpoint(humaAPI, "/v0", cfg)
	v0.RegisterRunEndpoints(humaAPI, "/v0", runner, registry, logger)

	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		mux:    mux,
		api:    humaAPI,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.ServerAddress,
			Handler:           cors.Default().Handler(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// HumaAPI returns the Huma API instance for registering additional routes.
func (s *Server) HumaAPI() huma.API { return s.api }

// Mux returns the HTTP ServeMux for registering custom handlers.
func (s *Server) Mux() *http.ServeMux { return s.mux }

// Start begins listening for incoming HTTP requests and blocks until the
// server stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
