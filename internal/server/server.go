package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/arise/internal/progression"
	"github.com/meltforce/arise/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	records *storage.Records
	tracker *progression.Tracker
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(records *storage.Records, tracker *progression.Tracker, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		records: records,
		tracker: tracker,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints (no auth — tsnet handles access)
		r.Get("/workout", s.handleGetWorkout)
		r.Get("/progress", s.handleGetProgress)
		r.Get("/analytics/monthly", s.handleMonthlyAnalytics)
		r.Get("/levelup", s.handleGetLevelUp)
		r.Get("/quote", s.handleQuote)

		// Mutating endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/workout/exercises/{id}/log", s.handleLogExercise)
			r.Post("/levelup/ack", s.handleAckLevelUp)
		})
	})
}
