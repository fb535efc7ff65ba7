package analytics

import (
	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/dsa"
)

// ─── Snapshot ───────────────────────────────────────────────────────────────

// Snapshot assembles the on-demand analytics report: concurrent listener
// count, top songs by play count with their current audience, per-connection
// live listening time, and the rolling daily aggregate history. Everything
// is derived and recomputed on read — never cached stale.
func (s *Service) Snapshot() domain.AnalyticsReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	report := domain.AnalyticsReport{
		GeneratedAt:           now,
		SimultaneousListeners: len(s.live),
		TopSongs:              s.topSongsLocked(),
		LiveListeners:         make([]domain.LiveListener, 0, len(s.live)),
		History:               s.historyStatsLocked(),
	}

	for _, sess := range s.live {
		report.LiveListeners = append(report.LiveListeners, domain.LiveListener{
			ConnID:        sess.ConnID,
			DisplayName:   sess.DisplayName,
			ListeningTime: sess.AccumulatedListening + now.Sub(sess.SessionStart),
		})
	}
	return report
}

// topSongsLocked ranks songs by global play count, ties broken by song id
// for a stable order, and counts each song's current live audience.
func (s *Service) topSongsLocked() []domain.SongPlayCount {
	top := dsa.NewTopN(s.cfg.TopSongs, func(a, b domain.SongPlayCount) bool {
		if a.PlayCount != b.PlayCount {
			return a.PlayCount > b.PlayCount
		}
		return a.SongID < b.SongID
	})

	for songID, plays := range s.songPlays {
		listeners := 0
		for _, sess := range s.live {
			if sess.SongsListened[songID] {
				listeners++
			}
		}
		top.Add(domain.SongPlayCount{
			SongID:           songID,
			PlayCount:        plays,
			CurrentListeners: listeners,
		})
	}
	return top.Ranked()
}

// historyStatsLocked builds the rolling N-day aggregate history, today
// first, including days with no recorded activity.
func (s *Service) historyStatsLocked() []domain.DayStats {
	today := domain.DayOf(s.now())
	stats := make([]domain.DayStats, 0, s.cfg.HistoryDays)

	for i := 0; i < s.cfg.HistoryDays; i++ {
		day := domain.DayOf(today.Time().AddDate(0, 0, -i))
		ds := domain.DayStats{Date: day.String()}

		if agg, ok := s.days[day]; ok {
			ds.UniqueListeners = len(agg.UniqueListeners)
			ds.TotalMinutes = agg.TotalListening.Minutes()
			ds.SongsPlayed = len(agg.SongsPlayed)
			if ds.UniqueListeners > 0 {
				ds.AvgMinutesListener = ds.TotalMinutes / float64(ds.UniqueListeners)
			}
		}
		stats = append(stats, ds)
	}
	return stats
}
