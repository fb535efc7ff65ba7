package domain

import "time"

// ─── Badges ─────────────────────────────────────────────────────────────────
// The badge catalog is static configuration: fixed at process start, never
// created or destroyed at runtime. Each badge carries a declarative unlock
// predicate so evaluation iterates the table generically instead of a
// hardcoded switch.

// BadgeCategory groups badges for display.
type BadgeCategory string

const (
	CategoryChat      BadgeCategory = "chat"
	CategoryMusic     BadgeCategory = "music"
	CategorySocial    BadgeCategory = "social"
	CategoryStreak    BadgeCategory = "streak"
	CategoryMilestone BadgeCategory = "milestone"
)

// Badge is a static catalog entry with a one-time bonus-point reward.
type Badge struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"display_name"`
	Description string        `json:"description"`
	BonusPoints int64         `json:"bonus_points"`
	Category    BadgeCategory `json:"category"`

	// Unlock evaluates the award condition against a user's progress.
	Unlock func(p BadgeProgress) bool `json:"-"`
}

// AwardedBadge records a badge earned by a user. Created exactly once per
// (user, badge) pair; re-evaluation of an earned badge is a no-op.
type AwardedBadge struct {
	BadgeID  string    `json:"badge_id"`
	UserID   string    `json:"user_id"`
	EarnedAt time.Time `json:"earned_at"`

	// Seq is the per-user award sequence. It is the stable ordering key:
	// EarnedAt alone cannot order two badges awarded by the same credit.
	Seq int64 `json:"-"`
}

// kindAtLeast builds an occurrence-threshold predicate over the monotonic
// per-kind counters.
func kindAtLeast(kind ActivityKind, n int64) func(BadgeProgress) bool {
	return func(p BadgeProgress) bool { return p.KindCount(kind) >= n }
}

// streakAtLeast builds a consecutive-day threshold predicate.
func streakAtLeast(days int) func(BadgeProgress) bool {
	return func(p BadgeProgress) bool { return p.ConsecutiveDays >= days }
}

// BadgeCatalog returns the fixed badge rule table.
//
// The "welcome" badge carries no bonus so that total-point accounting stays
// an exact sum of activity values plus non-zero badge bonuses.
func BadgeCatalog() []Badge {
	return []Badge{
		{
			ID:          "welcome",
			DisplayName: "Welcome Aboard",
			Description: "Joined the station and earned your first activity.",
			BonusPoints: 0,
			Category:    CategoryMilestone,
			Unlock:      func(p BadgeProgress) bool { return p.ActivityCount >= 1 },
		},
		{
			ID:          "chat_rookie",
			DisplayName: "Chat Rookie",
			Description: "Sent 10 chat messages.",
			BonusPoints: 20,
			Category:    CategoryChat,
			Unlock:      kindAtLeast(ActivityChatMessage, 10),
		},
		{
			ID:          "chat_veteran",
			DisplayName: "Chat Veteran",
			Description: "Sent 100 chat messages.",
			BonusPoints: 100,
			Category:    CategoryChat,
			Unlock:      kindAtLeast(ActivityChatMessage, 100),
		},
		{
			ID:          "music_lover",
			DisplayName: "Music Lover",
			Description: "Requested 10 songs.",
			BonusPoints: 30,
			Category:    CategoryMusic,
			Unlock:      kindAtLeast(ActivityMusicRequest, 10),
		},
		{
			ID:          "commentator",
			DisplayName: "Commentator",
			Description: "Commented on 20 songs.",
			BonusPoints: 40,
			Category:    CategoryMusic,
			Unlock:      kindAtLeast(ActivitySongComment, 20),
		},
		{
			ID:          "social_butterfly",
			DisplayName: "Social Butterfly",
			Description: "Added 10 friends.",
			BonusPoints: 50,
			Category:    CategorySocial,
			Unlock:      kindAtLeast(ActivityAddFriend, 10),
		},
		{
			ID:          "sharer",
			DisplayName: "Song Sharer",
			Description: "Shared 10 songs.",
			BonusPoints: 30,
			Category:    CategorySocial,
			Unlock:      kindAtLeast(ActivityShareSong, 10),
		},
		{
			ID:          "marathon_listener",
			DisplayName: "Marathon Listener",
			Description: "Accumulated 24 hours of listening time.",
			BonusPoints: 100,
			Category:    CategoryMusic,
			Unlock:      kindAtLeast(ActivityListeningTimeHour, 24),
		},
		{
			ID:          "event_regular",
			DisplayName: "Event Regular",
			Description: "Participated in 5 station events.",
			BonusPoints: 75,
			Category:    CategorySocial,
			Unlock:      kindAtLeast(ActivityEventParticipation, 5),
		},
		{
			ID:          "streak_week",
			DisplayName: "One Week Streak",
			Description: "Logged in 7 days in a row.",
			BonusPoints: 50,
			Category:    CategoryStreak,
			Unlock:      streakAtLeast(7),
		},
		{
			ID:          "loyal_fan",
			DisplayName: "Loyal Fan",
			Description: "Logged in 30 days in a row.",
			BonusPoints: 200,
			Category:    CategoryStreak,
			Unlock:      streakAtLeast(30),
		},
	}
}
