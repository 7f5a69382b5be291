package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"supermarket-dashboard/internal/config"
	"supermarket-dashboard/internal/errors"
	"supermarket-dashboard/internal/handlers"
	"supermarket-dashboard/internal/middleware"
	"supermarket-dashboard/internal/services"
)

type Server struct {
	router       chi.Router
	logger       *slog.Logger
	rateLimiter  *middleware.RateLimiter
	apiHandlers  *handlers.APIHandlers
	sseHandlers  *handlers.SSEHandlers
	pageHandlers *handlers.PageHandlers
}

func NewServer(analytics *services.Analytics, cfg *config.Config, logger *slog.Logger) *Server {
	view := handlers.View{
		Currency:      cfg.Data.Currency,
		TableRowLimit: cfg.Data.TableRowLimit,
	}

	s := &Server{
		router:       chi.NewRouter(),
		logger:       logger,
		rateLimiter:  middleware.NewRateLimiter(cfg.Security),
		apiHandlers:  handlers.NewAPIHandlers(analytics, logger, cfg.Data.Currency),
		sseHandlers:  handlers.NewSSEHandlers(analytics, logger, view),
		pageHandlers: handlers.NewPageHandlers(analytics, logger, view),
	}
	s.setupMiddleware(cfg.Security)
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware(security config.SecurityConfig) {
	s.router.Use(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
		middleware.Tracing(s.logger),
		middleware.SecurityHeaders(),
		middleware.CORS(security),
		middleware.TrustedProxy(security),
		middleware.RateLimit(s.rateLimiter, s.logger),
		chimiddleware.Compress(5),
	)
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/", s.pageHandlers.HandleDashboard)
	r.Get("/health", s.apiHandlers.HandleHealth)
	r.Get("/admin/stats", s.apiHandlers.HandleStats)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.apiHandlers.HandleOptions)
		r.Get("/report", s.apiHandlers.HandleReport)
		r.Get("/rows", s.apiHandlers.HandleRows)
	})

	// Datastar posts signals; GET carries them in the datastar query parameter.
	r.Post("/sse/report", s.sseHandlers.HandleReport)
	r.Get("/sse/report", s.sseHandlers.HandleReport)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, r, s.logger, errors.NotFound("Route not found").WithDetails(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, r, s.logger, errors.MethodNotAllowed("Method not allowed").WithDetails(r.Method))
	})
}

// RateLimiter exposes the limiter so its sweep can run beside the server.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
