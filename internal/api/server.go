// Package api provides the HTTP server for aircast. It is the boundary the
// external collaborators speak to: event producers POST activity, connection
// and song-start events in; UI collaborators read reward and analytics state
// out and stream live notifications over SSE.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aircast-fm/aircast/internal/app/analytics"
	"github.com/aircast-fm/aircast/internal/app/ingest"
	"github.com/aircast-fm/aircast/internal/app/rewards"
	"github.com/aircast-fm/aircast/internal/infra/events"
	"github.com/aircast-fm/aircast/internal/infra/registry"
)

// Version is the reported server version.
const Version = "0.1.0"

// Server is the aircast HTTP API server.
type Server struct {
	dispatcher     *ingest.Dispatcher
	rewards        *rewards.Service
	analytics      *analytics.Service
	registry       *registry.Manager
	hub            *events.Hub
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(d *ingest.Dispatcher, rw *rewards.Service, an *analytics.Service, reg *registry.Manager, hub *events.Hub) *Server {
	return &Server{
		dispatcher: d,
		rewards:    rw,
		analytics:  an,
		registry:   reg,
		hub:        hub,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	// Inbound events
	r.Route("/api/events", func(r chi.Router) {
		r.Post("/activity", s.handleActivityEvent)
		r.Post("/connection", s.handleConnectionEvent)
		r.Post("/song-start", s.handleSongStartEvent)
	})

	// Reward state
	r.Route("/api/rewards", func(r chi.Router) {
		r.Get("/badges", s.handleBadgeCatalog)
		r.Get("/leaderboard/{period}", s.handleLeaderboard)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/points", s.handleUserPoints)
			r.Get("/badges", s.handleUserBadges)
			r.Get("/ledger", s.handleUserLedger)
			r.Get("/streak", s.handleUserStreak)
			r.Post("/login", s.handleRegisterLogin)
		})
	})

	// Listener registry (owned by the registry collaborator, hosted here)
	r.Route("/api/listeners", func(r chi.Router) {
		r.Post("/", s.handleRegisterListener)
		r.Get("/{id}", s.handleGetListener)
	})

	// Analytics snapshot — on demand, never pushed
	r.Get("/api/analytics/snapshot", s.handleAnalyticsSnapshot)

	// Live notification feed
	if s.hub != nil {
		r.Get("/api/live/feed", s.hub.HandleFeed)
	}

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}
