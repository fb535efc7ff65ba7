package domain

// ─── Points State ───────────────────────────────────────────────────────────

// PointsState holds a user's point counters and streak state.
//
// TotalPoints is monotonically non-decreasing: it always equals the sum of
// every activity point ever credited plus every badge bonus ever earned,
// independent of ledger truncation. DailyPoints resets lazily on the first
// activity of a new calendar day; WeeklyPoints is zeroed by the scheduled
// weekly sweep.
type PointsState struct {
	TotalPoints     int64 `json:"total_points"`
	DailyPoints     int64 `json:"daily_points"`
	WeeklyPoints    int64 `json:"weekly_points"`
	LastLoginDate   Day   `json:"last_login_date"`
	ConsecutiveDays int   `json:"consecutive_days"`

	// KindCounts are monotonic per-kind occurrence counters. They never
	// shrink when the ledger evicts old records, so occurrence-threshold
	// badges above the ledger cap stay reachable.
	KindCounts map[ActivityKind]int64 `json:"kind_counts"`

	// LastActiveDate drives the lazy daily reset.
	LastActiveDate Day `json:"last_active_date"`

	// Seq is the registration sequence, assigned at lazy init.
	// It is the stable tie-break key for leaderboard ranking.
	Seq int64 `json:"-"`
}

// NewPointsState returns an initialized points state with the given
// registration sequence.
func NewPointsState(seq int64) *PointsState {
	return &PointsState{
		KindCounts: make(map[ActivityKind]int64),
		Seq:        seq,
	}
}

// Snapshot returns a deep copy safe to read without holding the owner's lock.
func (p *PointsState) Snapshot() PointsState {
	cp := *p
	cp.KindCounts = make(map[ActivityKind]int64, len(p.KindCounts))
	for k, v := range p.KindCounts {
		cp.KindCounts[k] = v
	}
	return cp
}

// BadgeProgress is the read-only view a badge predicate evaluates against.
type BadgeProgress struct {
	KindCounts      map[ActivityKind]int64
	ConsecutiveDays int
	TotalPoints     int64
	ActivityCount   int64
}

// KindCount returns the monotonic occurrence count for a kind.
func (p BadgeProgress) KindCount(kind ActivityKind) int64 {
	return p.KindCounts[kind]
}
