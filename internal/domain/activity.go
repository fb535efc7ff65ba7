// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "time"

// ─── Activity Types ─────────────────────────────────────────────────────────

// ActivityKind is a fixed enumeration of user actions that earn points.
type ActivityKind string

const (
	ActivityChatMessage        ActivityKind = "chat_message"
	ActivityMusicRequest       ActivityKind = "music_request"
	ActivitySongListenComplete ActivityKind = "song_listen_complete"
	ActivityAddFriend          ActivityKind = "add_friend"
	ActivitySongComment        ActivityKind = "song_comment"
	ActivityCommentLike        ActivityKind = "comment_like"
	ActivityDailyLogin         ActivityKind = "daily_login"
	ActivityRoomVisit          ActivityKind = "room_visit"
	ActivityShareSong          ActivityKind = "share_song"
	ActivityEventParticipation ActivityKind = "event_participation"
	ActivityListeningTimeHour  ActivityKind = "listening_time_hour"
)

// pointValues is the fixed activity → point-value table.
// Loaded at startup, never mutated. Unknown kinds award 0 and never error.
var pointValues = map[ActivityKind]int64{
	ActivityChatMessage:        2,
	ActivityMusicRequest:       5,
	ActivitySongListenComplete: 3,
	ActivityAddFriend:          10,
	ActivitySongComment:        3,
	ActivityCommentLike:        1,
	ActivityDailyLogin:         10,
	ActivityRoomVisit:          1,
	ActivityShareSong:          5,
	ActivityEventParticipation: 15,
	ActivityListeningTimeHour:  5,
}

// activityDescriptions are the human-readable labels used in "points earned"
// notifications shown by the UI layer.
var activityDescriptions = map[ActivityKind]string{
	ActivityChatMessage:        "sent a chat message",
	ActivityMusicRequest:       "requested a song",
	ActivitySongListenComplete: "listened to a full song",
	ActivityAddFriend:          "added a friend",
	ActivitySongComment:        "commented on a song",
	ActivityCommentLike:        "liked a comment",
	ActivityDailyLogin:         "logged in today",
	ActivityRoomVisit:          "visited a room",
	ActivityShareSong:          "shared a song",
	ActivityEventParticipation: "joined an event",
	ActivityListeningTimeHour:  "listened for an hour",
}

// PointValue returns the fixed point value for an activity kind.
// Unknown kinds are worth 0 — by contract this is not an error.
func PointValue(kind ActivityKind) int64 {
	return pointValues[kind]
}

// Describe returns the human-readable description of an activity kind.
func Describe(kind ActivityKind) string {
	if d, ok := activityDescriptions[kind]; ok {
		return d
	}
	return string(kind)
}

// KnownKinds returns all activity kinds in the point table.
func KnownKinds() []ActivityKind {
	kinds := make([]ActivityKind, 0, len(pointValues))
	for k := range pointValues {
		kinds = append(kinds, k)
	}
	return kinds
}

// ─── Activity Records & Events ──────────────────────────────────────────────

// ActivityRecord is a single entry in a user's activity ledger.
// Immutable once appended; belongs to exactly one user's ledger.
type ActivityRecord struct {
	Kind      ActivityKind      `json:"kind"`
	Timestamp time.Time         `json:"timestamp"`
	Points    int64             `json:"points"`
	Details   map[string]string `json:"details,omitempty"`
}

// ActivityEvent is an inbound activity delivered by the event producer.
type ActivityEvent struct {
	UserID    string            `json:"user_id"`
	Kind      ActivityKind      `json:"kind"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// ConnectionEventKind distinguishes connect from disconnect.
type ConnectionEventKind string

const (
	ConnectionConnect    ConnectionEventKind = "connect"
	ConnectionDisconnect ConnectionEventKind = "disconnect"
)

// ConnectionEvent is an inbound listener connection lifecycle event.
type ConnectionEvent struct {
	ConnID      string              `json:"conn_id"`
	Kind        ConnectionEventKind `json:"kind"`
	DisplayName string              `json:"display_name,omitempty"`
}

// SongStartEvent marks a song going on air.
type SongStartEvent struct {
	SongID string `json:"song_id"`
}
