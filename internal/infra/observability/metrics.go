// Package observability exposes the Prometheus metrics for the engagement
// core: event ingestion volume, reward mutations, and live listener gauges.
// Served by the API layer at /metrics when enabled.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ingest Metrics ─────────────────────────────────────────────────────────

// EventsProcessed tracks successfully processed inbound events by kind.
var EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aircast",
	Subsystem: "ingest",
	Name:      "events_processed_total",
	Help:      "Total inbound events processed, by activity kind.",
}, []string{"kind"})

// EventsDropped tracks events logged and dropped, by reason.
var EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aircast",
	Subsystem: "ingest",
	Name:      "events_dropped_total",
	Help:      "Total malformed or unresolvable events dropped, by reason.",
}, []string{"reason"})

// ─── Reward Metrics ─────────────────────────────────────────────────────────

// PointsAwarded tracks total points credited, activity and bonus alike.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aircast",
	Subsystem: "rewards",
	Name:      "points_awarded_total",
	Help:      "Total points credited across all users.",
})

// BadgesAwarded tracks badge awards by badge id.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aircast",
	Subsystem: "rewards",
	Name:      "badges_awarded_total",
	Help:      "Total badges awarded, by badge id.",
}, []string{"badge"})

// LeaderboardRebuilds tracks full leaderboard recomputes.
var LeaderboardRebuilds = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aircast",
	Subsystem: "rewards",
	Name:      "leaderboard_rebuilds_total",
	Help:      "Total leaderboard rebuilds.",
})

// WeeklyResets tracks weekly point sweeps.
var WeeklyResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aircast",
	Subsystem: "rewards",
	Name:      "weekly_resets_total",
	Help:      "Total weekly point resets.",
})

// ─── Analytics Metrics ──────────────────────────────────────────────────────

// LiveListeners tracks the current number of connected listener sessions.
var LiveListeners = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "aircast",
	Subsystem: "analytics",
	Name:      "live_listeners",
	Help:      "Current number of connected listener sessions.",
})

// SongPlays tracks total song starts.
var SongPlays = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aircast",
	Subsystem: "analytics",
	Name:      "song_plays_total",
	Help:      "Total songs that went on air.",
})

// SessionListening tracks per-session listening time at disconnect.
var SessionListening = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "aircast",
	Subsystem: "analytics",
	Name:      "session_listening_seconds",
	Help:      "Listening time accumulated by a session at disconnect.",
	Buckets:   []float64{60, 300, 900, 1800, 3600, 7200, 14400},
})
