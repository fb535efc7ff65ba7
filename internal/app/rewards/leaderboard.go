package rewards

import (
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/dsa"
	"github.com/aircast-fm/aircast/internal/infra/observability"
)

// ─── Leaderboard Builder ────────────────────────────────────────────────────
// A rebuild is a full O(U log N) pass over every user with initialized
// state, invoked after a mutation or on demand — never per query at high
// frequency. Ranking is strictly by points descending; ties are broken by
// registration sequence, so the first-registered user wins.

// userSnap is a consistent copy of one user's counters, taken under that
// user's lock.
type userSnap struct {
	id     string
	name   string
	seq    int64
	daily  int64
	weekly int64
	total  int64
}

// Rebuild recomputes all three ranked snapshots, caches them for queries,
// and publishes a leaderboard-updated notification per period.
func (s *Service) Rebuild() domain.Leaderboards {
	snaps := s.snapshotUsers()

	boards := domain.Leaderboards{
		Daily:   rank(snaps, s.cfg.TopN, func(u userSnap) int64 { return u.daily }),
		Weekly:  rank(snaps, s.cfg.TopN, func(u userSnap) int64 { return u.weekly }),
		AllTime: rank(snaps, s.cfg.TopN, func(u userSnap) int64 { return u.total }),
	}

	s.boardMu.Lock()
	s.boards = boards
	s.boardMu.Unlock()

	observability.LeaderboardRebuilds.Inc()
	s.notifier.LeaderboardUpdated(domain.PeriodDaily, boards.Daily)
	s.notifier.LeaderboardUpdated(domain.PeriodWeekly, boards.Weekly)
	s.notifier.LeaderboardUpdated(domain.PeriodAllTime, boards.AllTime)
	return boards
}

// Leaderboard returns the cached snapshot for a period. A period with no
// data yields an empty ranked sequence, never an error.
func (s *Service) Leaderboard(period domain.Period) []domain.LeaderboardEntry {
	s.boardMu.RLock()
	defer s.boardMu.RUnlock()
	entries := s.boards.ByPeriod(period)
	if entries == nil {
		return []domain.LeaderboardEntry{}
	}
	return entries
}

// Leaderboards returns all cached snapshots.
func (s *Service) Leaderboards() domain.Leaderboards {
	s.boardMu.RLock()
	defer s.boardMu.RUnlock()
	return s.boards
}

// snapshotUsers copies every user's counters under their lock.
func (s *Service) snapshotUsers() []userSnap {
	s.mu.RLock()
	states := make([]*userState, 0, len(s.users))
	for _, u := range s.users {
		states = append(states, u)
	}
	s.mu.RUnlock()

	snaps := make([]userSnap, 0, len(states))
	for _, u := range states {
		u.mu.Lock()
		snaps = append(snaps, userSnap{
			id:     u.user.ID,
			name:   u.user.DisplayName,
			seq:    u.points.Seq,
			daily:  u.points.DailyPoints,
			weekly: u.points.WeeklyPoints,
			total:  u.points.TotalPoints,
		})
		u.mu.Unlock()
	}
	return snaps
}

// rank selects the top n users by the given counter.
func rank(snaps []userSnap, n int, points func(userSnap) int64) []domain.LeaderboardEntry {
	top := dsa.NewTopN(n, func(a, b userSnap) bool {
		pa, pb := points(a), points(b)
		if pa != pb {
			return pa > pb
		}
		return a.seq < b.seq
	})
	for _, snap := range snaps {
		top.Add(snap)
	}

	ranked := top.Ranked()
	entries := make([]domain.LeaderboardEntry, 0, len(ranked))
	for i, u := range ranked {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      u.id,
			DisplayName: u.name,
			Points:      points(u),
			Rank:        i + 1,
		})
	}
	return entries
}

// ─── Weekly Reset ───────────────────────────────────────────────────────────

// ResetWeekly zeroes every user's weekly points and rebuilds. Invoked by
// the scheduled boundary check, not by a client action.
func (s *Service) ResetWeekly() {
	s.mu.RLock()
	states := make([]*userState, 0, len(s.users))
	for _, u := range s.users {
		states = append(states, u)
	}
	s.mu.RUnlock()

	for _, u := range states {
		u.mu.Lock()
		u.points.WeeklyPoints = 0
		u.mu.Unlock()
	}

	observability.WeeklyResets.Inc()
	s.log.Info().Int("users", len(states)).Msg("weekly points reset")
	s.Rebuild()
}

// MaybeResetWeekly fires the weekly sweep when the ISO week of at differs
// from the last observed week. Comparing week ids cannot skip a boundary
// under load or clock drift the way exact wall-clock matching can. The first
// call only records the baseline week. Returns true if a reset fired.
func (s *Service) MaybeResetWeekly(at time.Time) bool {
	week := domain.DayOf(at).WeekID()

	s.resetMu.Lock()
	if s.lastResetWeek == 0 {
		s.lastResetWeek = week
		s.resetMu.Unlock()
		return false
	}
	if week == s.lastResetWeek {
		s.resetMu.Unlock()
		return false
	}
	s.lastResetWeek = week
	s.resetMu.Unlock()

	s.ResetWeekly()
	return true
}
