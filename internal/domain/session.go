package domain

import "time"

// ─── Listener Sessions ──────────────────────────────────────────────────────

// ListenerSession is a live connection, alive from connect to disconnect.
type ListenerSession struct {
	ConnID               string          `json:"conn_id"`
	DisplayName          string          `json:"display_name"`
	ConnectedAt          time.Time       `json:"connected_at"`
	SessionStart         time.Time       `json:"session_start"`
	AccumulatedListening time.Duration   `json:"accumulated_listening"`
	SongsListened        map[string]bool `json:"-"`
}

// SessionRecord is the retained snapshot of a finished session.
type SessionRecord struct {
	ID             string        `json:"id"`
	ConnID         string        `json:"conn_id"`
	DisplayName    string        `json:"display_name"`
	ConnectedAt    time.Time     `json:"connected_at"`
	DisconnectedAt time.Time     `json:"disconnected_at"`
	ListeningTime  time.Duration `json:"listening_time"`
	SongsListened  int           `json:"songs_listened"`
}

// DailyAggregate is the per-calendar-day listening rollup. It grows for the
// current day and becomes immutable once the day rolls over.
type DailyAggregate struct {
	Date            Day             `json:"date"`
	UniqueListeners map[string]bool `json:"-"`
	TotalListening  time.Duration   `json:"total_listening"`
	SongsPlayed     map[string]bool `json:"-"`
}

// ─── Analytics Report ───────────────────────────────────────────────────────

// SongPlayCount is a song's global play counter plus its current audience.
type SongPlayCount struct {
	SongID           string `json:"song_id"`
	PlayCount        int64  `json:"play_count"`
	CurrentListeners int    `json:"current_listeners"`
}

// LiveListener is a connection's live listening time at snapshot.
type LiveListener struct {
	ConnID        string        `json:"conn_id"`
	DisplayName   string        `json:"display_name"`
	ListeningTime time.Duration `json:"listening_time"`
}

// DayStats is one day of the rolling aggregate history.
type DayStats struct {
	Date               string  `json:"date"`
	UniqueListeners    int     `json:"unique_listeners"`
	TotalMinutes       float64 `json:"total_minutes"`
	SongsPlayed        int     `json:"songs_played"`
	AvgMinutesListener float64 `json:"avg_minutes_per_listener"`
}

// AnalyticsReport is the on-demand snapshot assembled for callers.
// Everything here is derived and recomputed on read, never cached stale.
type AnalyticsReport struct {
	GeneratedAt           time.Time       `json:"generated_at"`
	SimultaneousListeners int             `json:"simultaneous_listeners"`
	TopSongs              []SongPlayCount `json:"top_songs"`
	LiveListeners         []LiveListener  `json:"live_listeners"`
	History               []DayStats      `json:"history"`
}
