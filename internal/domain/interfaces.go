package domain

import "time"

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// User is an identity reference owned by the external user registry.
// The core never creates or deletes users, only looks them up by id.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// UserRegistry resolves user identities.
type UserRegistry interface {
	// Resolve returns the user for id, or ErrUserNotFound.
	Resolve(id string) (User, error)
}

// Notifier receives derived state changes for the UI/notification layer.
// Implementations must not block: the core calls these inline while holding
// per-user critical sections.
type Notifier interface {
	PointsEarned(userID string, points int64, kind ActivityKind, totalPoints int64)
	BadgeEarned(userID string, badge Badge, earnedAt time.Time)
	LeaderboardUpdated(period Period, entries []LeaderboardEntry)
	Announce(message string)
}

// NopNotifier discards all notifications. Useful for tests and replay.
type NopNotifier struct{}

func (NopNotifier) PointsEarned(string, int64, ActivityKind, int64) {}
func (NopNotifier) BadgeEarned(string, Badge, time.Time)            {}
func (NopNotifier) LeaderboardUpdated(Period, []LeaderboardEntry)   {}
func (NopNotifier) Announce(string)                                 {}

