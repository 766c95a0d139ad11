package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"headroom/internal/config"
	"headroom/internal/store"
)

// Server is the read-only headroom inspection API. It exposes attention
// state, selection history, turn telemetry, and the coordination pool:
// it never mutates working memory.
type Server struct {
	cfg       config.Config
	workspace string
	db        *store.DB
	router    chi.Router
	version   string
	started   time.Time
}

// New creates a new Server. db may be nil when the telemetry database
// could not be opened; the /api/turns routes then report unavailability.
func New(cfg config.Config, workspace string, db *store.DB, version string) *Server {
	s := &Server{
		cfg:       cfg,
		workspace: workspace,
		db:        db,
		version:   version,
		started:   time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/state", s.handleState)
		r.Get("/history", s.handleHistory)
		r.Get("/turns", s.handleTurns)
		r.Get("/pool", s.handlePool)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := false
	if s.db != nil && s.db.Ping() == nil {
		dbOK = true
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"version":   s.version,
		"uptime":    time.Since(s.started).Seconds(),
		"workspace": s.workspace,
		"db":        dbOK,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
