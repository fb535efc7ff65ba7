// Package analytics tracks listener sessions and listening statistics:
// connection lifetime, accumulated listening duration, per-day unique
// listeners and songs played, and global song play counters.
package analytics

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/dsa"
	"github.com/aircast-fm/aircast/internal/infra/observability"
	"github.com/aircast-fm/aircast/internal/logging"
)

// Config controls analytics bounds.
type Config struct {
	HistoryCap  int // Retained session records (default: 1000)
	HistoryDays int // Days of daily aggregates in a snapshot (default: 7)
	TopSongs    int // Songs in the snapshot top list (default: 10)
}

// DefaultConfig returns the reference bounds.
func DefaultConfig() Config {
	return Config{HistoryCap: 1000, HistoryDays: 7, TopSongs: 10}
}

// Service owns the live session set, the bounded session history, the
// per-day aggregates, and the song play counters. A single mutex guards all
// of it; no operation blocks or suspends.
type Service struct {
	cfg Config
	log zerolog.Logger

	mu        sync.Mutex
	live      map[string]*domain.ListenerSession
	history   *dsa.Ring[domain.SessionRecord]
	days      map[domain.Day]*domain.DailyAggregate
	songPlays map[string]int64

	now func() time.Time // injectable clock for testing
}

// New creates the analytics service.
func New(cfg Config) *Service {
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = DefaultConfig().HistoryCap
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultConfig().HistoryDays
	}
	if cfg.TopSongs <= 0 {
		cfg.TopSongs = DefaultConfig().TopSongs
	}

	return &Service{
		cfg:       cfg,
		log:       logging.WithComponent("analytics"),
		live:      make(map[string]*domain.ListenerSession),
		history:   dsa.NewRing[domain.SessionRecord](cfg.HistoryCap),
		days:      make(map[domain.Day]*domain.DailyAggregate),
		songPlays: make(map[string]int64),
		now:       time.Now,
	}
}

// ─── Connection Lifecycle ───────────────────────────────────────────────────

// OnConnect creates a live session and registers the connection in today's
// unique-listener set. An empty connID gets a generated one. Returns the
// effective connection id.
func (s *Service) OnConnect(connID, displayName string) (string, error) {
	if connID == "" {
		connID = uuid.NewString()
	}
	if displayName == "" {
		displayName = connID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live[connID]; ok {
		return connID, domain.ErrSessionExists
	}

	now := s.now()
	s.live[connID] = &domain.ListenerSession{
		ConnID:        connID,
		DisplayName:   displayName,
		ConnectedAt:   now,
		SessionStart:  now,
		SongsListened: make(map[string]bool),
	}
	s.todayLocked().UniqueListeners[connID] = true

	observability.LiveListeners.Set(float64(len(s.live)))
	s.log.Debug().Str("conn", connID).Msg("listener connected")
	return connID, nil
}

// OnDisconnect folds the elapsed session time into the listening totals,
// snapshots a SessionRecord into the bounded history, and removes the live
// session.
func (s *Service) OnDisconnect(connID string) (domain.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live[connID]
	if !ok {
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}

	now := s.now()
	elapsed := now.Sub(sess.SessionStart)
	if elapsed < 0 {
		elapsed = 0
	}
	sess.AccumulatedListening += elapsed
	s.todayLocked().TotalListening += elapsed

	record := domain.SessionRecord{
		ID:             uuid.NewString(),
		ConnID:         sess.ConnID,
		DisplayName:    sess.DisplayName,
		ConnectedAt:    sess.ConnectedAt,
		DisconnectedAt: now,
		ListeningTime:  sess.AccumulatedListening,
		SongsListened:  len(sess.SongsListened),
	}
	s.history.Append(record)
	delete(s.live, connID)

	observability.LiveListeners.Set(float64(len(s.live)))
	observability.SessionListening.Observe(record.ListeningTime.Seconds())
	s.log.Debug().
		Str("conn", connID).
		Dur("listening", record.ListeningTime).
		Msg("listener disconnected")
	return record, nil
}

// OnSongStart counts the song in today's aggregate, increments its global
// play counter, and attributes it to every live session for
// simultaneous-listener-per-song statistics.
func (s *Service) OnSongStart(songID string) {
	if songID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.songPlays[songID]++
	s.todayLocked().SongsPlayed[songID] = true
	for _, sess := range s.live {
		sess.SongsListened[songID] = true
	}

	observability.SongPlays.Inc()
}

// LiveCount returns the current number of connected sessions.
func (s *Service) LiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// SessionHistory returns the retained session records, oldest first.
func (s *Service) SessionHistory() []domain.SessionRecord {
	return s.history.Items()
}

// todayLocked returns today's aggregate, creating it on first touch.
// Past aggregates stay in the map and are immutable once the day rolls over.
func (s *Service) todayLocked() *domain.DailyAggregate {
	day := domain.DayOf(s.now())
	agg, ok := s.days[day]
	if !ok {
		agg = &domain.DailyAggregate{
			Date:            day,
			UniqueListeners: make(map[string]bool),
			SongsPlayed:     make(map[string]bool),
		}
		s.days[day] = agg
	}
	return agg
}
