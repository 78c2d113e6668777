// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the chi router, the middleware chain and the users
handlers into a runnable [http.Server].

Routes:

	GET  /health, /ready               probes, unauthenticated
	/api/v1/auth/...                   register, login, verify-account, password
	/api/v1/me                         own profile (bearer required)
	/api/v1/addresses/...              own address book (bearer required)
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/platform/config"
	"github.com/taibuivan/userdesk/internal/platform/constants"
	"github.com/taibuivan/userdesk/internal/platform/middleware"
	"github.com/taibuivan/userdesk/internal/platform/respond"
	"github.com/taibuivan/userdesk/internal/users/account"
	"github.com/taibuivan/userdesk/internal/users/address"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the handler sets mounted by [NewServer]. All fields are required.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, verification and password changes.
	Auth *auth.Handler

	// Account serves the caller's own profile.
	Account *account.Handler

	// Address manages the caller's address book.
	Address *address.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// CORS runs before Authenticate so a 401 still carries the CORS headers
	// a browser needs to read it.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.New("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed))
	})

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.NoStore)
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/me", h.Account.Routes())
		api.Mount("/addresses", h.Address.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router, for in-process tests.
func (s *Server) Handler() http.Handler { return s.router }

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
