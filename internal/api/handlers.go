package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/aircast-fm/aircast/internal/domain"
)

// ─── Event Ingestion ────────────────────────────────────────────────────────

// handleActivityEvent ingests one activity event.
// POST /api/events/activity
func (s *Server) handleActivityEvent(w http.ResponseWriter, r *http.Request) {
	var ev domain.ActivityEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity event")
		return
	}

	if err := s.dispatcher.SubmitActivity(ev); err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handleConnectionEvent ingests a connect or disconnect.
// POST /api/events/connection
func (s *Server) handleConnectionEvent(w http.ResponseWriter, r *http.Request) {
	var ev domain.ConnectionEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid connection event")
		return
	}

	connID, err := s.dispatcher.SubmitConnection(ev)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"conn_id": connID,
	})
}

// handleSongStartEvent ingests a song going on air.
// POST /api/events/song-start
func (s *Server) handleSongStartEvent(w http.ResponseWriter, r *http.Request) {
	var ev domain.SongStartEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid song start event")
		return
	}

	if err := s.dispatcher.SubmitSongStart(ev); err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// ─── Reward State ───────────────────────────────────────────────────────────

// handleBadgeCatalog returns the static badge catalog.
// GET /api/rewards/badges
func (s *Server) handleBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": s.rewards.Catalog(),
	})
}

// handleLeaderboard returns the ranked snapshot for a period.
// GET /api/rewards/leaderboard/{period}
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	period, err := domain.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":  period,
		"entries": s.rewards.Leaderboard(period),
	})
}

// handleUserPoints returns a user's point counters and streak.
// GET /api/rewards/users/{id}/points
func (s *Server) handleUserPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.rewards.UserPoints(chi.URLParam(r, "id"))
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// handleUserBadges returns a user's earned badges.
// GET /api/rewards/users/{id}/badges
func (s *Server) handleUserBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.rewards.UserBadges(chi.URLParam(r, "id"))
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

// handleUserLedger returns a user's current activity ledger.
// GET /api/rewards/users/{id}/ledger
func (s *Server) handleUserLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.rewards.UserLedger(chi.URLParam(r, "id"))
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ledger": ledger})
}

// handleUserStreak returns a user's login streak state.
// GET /api/rewards/users/{id}/streak
func (s *Server) handleUserStreak(w http.ResponseWriter, r *http.Request) {
	points, err := s.rewards.UserPoints(chi.URLParam(r, "id"))
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"consecutive_days": points.ConsecutiveDays,
		"last_login_date":  points.LastLoginDate.String(),
	})
}

// handleRegisterLogin registers a login for the streak tracker. Routed
// through the dispatcher so a new-day login lands in the replay log.
// POST /api/rewards/users/{id}/login
func (s *Server) handleRegisterLogin(w http.ResponseWriter, r *http.Request) {
	days, err := s.dispatcher.SubmitLogin(chi.URLParam(r, "id"))
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"consecutive_days": days})
}

// ─── Listener Registry ──────────────────────────────────────────────────────

// handleRegisterListener registers or updates a listener.
// POST /api/listeners
func (s *Server) handleRegisterListener(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid listener")
		return
	}

	if err := s.registry.Register(u); err != nil {
		if errors.Is(err, domain.ErrEmptyUserID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// handleGetListener resolves a listener by id.
// GET /api/listeners/{id}
func (s *Server) handleGetListener(w http.ResponseWriter, r *http.Request) {
	u, err := s.registry.Resolve(chi.URLParam(r, "id"))
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ─── Analytics ──────────────────────────────────────────────────────────────

// handleAnalyticsSnapshot assembles the on-demand analytics report.
// GET /api/analytics/snapshot
func (s *Server) handleAnalyticsSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analytics.Snapshot())
}

// writeSubmitError maps core errors onto HTTP statuses. Core failures are
// local and recoverable; the producer gets an explicit result, never a 5xx
// for its own malformed input.
func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSessionExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyUserID), errors.Is(err, domain.ErrUnknownPeriod):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
