// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vhlong/telegate/internal/core/account"
	"github.com/vhlong/telegate/internal/core/audit"
	"github.com/vhlong/telegate/internal/core/contact"
	"github.com/vhlong/telegate/internal/core/roster"
	"github.com/vhlong/telegate/internal/core/settings"
	"github.com/vhlong/telegate/internal/platform/config"
	"github.com/vhlong/telegate/internal/platform/constants"
	"github.com/vhlong/telegate/internal/platform/middleware"
	"github.com/vhlong/telegate/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 whenever the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, refresh).
	Auth *auth.Handler

	// Account manages linked Telegram accounts.
	Account *account.Handler

	// Roster handles bulk group-membership operations.
	Roster *roster.Handler

	// Contact proxies the Telegram address book.
	Contact *contact.Handler

	// Settings manages per-user pipeline preferences.
	Settings *settings.Handler

	// Audit exposes the operation trail.
	Audit *audit.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Everything below requires an authenticated user.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)

			protected.Route("/accounts", func(accounts chi.Router) {
				h.Account.RegisterRoutes(accounts)
				accounts.Route("/{accountID}/groups", h.Roster.RegisterRoutes)
				accounts.Route("/{accountID}/contacts", h.Contact.RegisterRoutes)
			})
			protected.Route("/settings", h.Settings.RegisterRoutes)
			protected.Route("/audit", h.Audit.RegisterRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: r,

			// The write timeout must cover a full bulk membership run, which
			// paces itself for minutes on large lists.
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.GlobalRequestTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
