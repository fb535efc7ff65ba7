// Package events is the outbound channel of the engagement core: derived
// state changes (points earned, badge earned, leaderboard updated) are
// broadcast to interested listeners and served to UI clients over SSE.
package events

import (
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
)

// Event type tags carried in every broadcast payload.
const (
	TypePointsEarned       = "points_earned"
	TypeBadgeEarned        = "badge_earned"
	TypeLeaderboardUpdated = "leaderboard_updated"
	TypeAnnouncement       = "announcement"
)

// PointsEarnedEvent notifies the UI layer of a point credit.
type PointsEarnedEvent struct {
	Type        string              `json:"type"`
	UserID      string              `json:"user_id"`
	Points      int64               `json:"points"`
	Kind        domain.ActivityKind `json:"activity_kind"`
	Description string              `json:"description"`
	TotalPoints int64               `json:"total_points"`
}

// BadgeEarnedEvent notifies the UI layer of a badge award.
type BadgeEarnedEvent struct {
	Type     string       `json:"type"`
	UserID   string       `json:"user_id"`
	Badge    domain.Badge `json:"badge"`
	EarnedAt time.Time    `json:"earned_at"`
}

// LeaderboardUpdatedEvent carries a freshly rebuilt ranked snapshot.
type LeaderboardUpdatedEvent struct {
	Type    string                    `json:"type"`
	Period  domain.Period             `json:"period"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// AnnouncementEvent is a system chat-style broadcast.
type AnnouncementEvent struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
