package domain

// ─── Leaderboard Types ──────────────────────────────────────────────────────

// Period selects which point window a leaderboard ranks.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodAllTime Period = "alltime"
)

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodAllTime:
		return Period(s), nil
	}
	return "", ErrUnknownPeriod
}

// LeaderboardEntry is a user's position on a ranked snapshot.
// Derived and recomputed, never persisted as source of truth.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      int64  `json:"points"`
	Rank        int    `json:"rank"`
}

// Leaderboards bundles the three ranked snapshots produced by a rebuild.
type Leaderboards struct {
	Daily   []LeaderboardEntry `json:"daily"`
	Weekly  []LeaderboardEntry `json:"weekly"`
	AllTime []LeaderboardEntry `json:"alltime"`
}

// ByPeriod returns the snapshot for the given period.
func (l Leaderboards) ByPeriod(p Period) []LeaderboardEntry {
	switch p {
	case PeriodDaily:
		return l.Daily
	case PeriodWeekly:
		return l.Weekly
	default:
		return l.AllTime
	}
}
