// Package rewards implements the reward state of the engagement core:
// per-user point counters, the bounded activity ledger, login streaks,
// at-most-once badge awarding, and ranked leaderboard snapshots.
//
// All state hangs off the Service — no ambient globals. A store-level
// RWMutex guards the user map; a per-user mutex serializes every mutation
// of one user's aggregates, so concurrent credits can never lose a delta,
// double-evict the ledger, or double-award a badge.
package rewards

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/dsa"
	"github.com/aircast-fm/aircast/internal/logging"
)

// Config controls reward bounds.
type Config struct {
	LedgerCap int // Max activity records kept per user (default: 100)
	TopN      int // Leaderboard size (default: 20)
}

// DefaultConfig returns the reference bounds.
func DefaultConfig() Config {
	return Config{LedgerCap: 100, TopN: 20}
}

// Service owns all reward aggregates.
type Service struct {
	cfg      Config
	registry domain.UserRegistry
	notifier domain.Notifier
	catalog  []domain.Badge
	log      zerolog.Logger

	mu      sync.RWMutex
	users   map[string]*userState
	nextSeq int64

	boardMu sync.RWMutex
	boards  domain.Leaderboards

	resetMu       sync.Mutex
	lastResetWeek int // ISO week id; 0 until the first boundary check

	now func() time.Time // injectable clock for testing
}

// userState holds one user's aggregates, guarded by its own mutex.
type userState struct {
	mu            sync.Mutex
	user          domain.User
	points        *domain.PointsState
	ledger        *dsa.Ring[domain.ActivityRecord]
	badges        map[string]domain.AwardedBadge
	badgeSeq      int64
	activityCount int64
}

// New creates the reward service. notifier may be nil.
func New(cfg Config, registry domain.UserRegistry, notifier domain.Notifier) *Service {
	if cfg.LedgerCap <= 0 {
		cfg.LedgerCap = DefaultConfig().LedgerCap
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	if notifier == nil {
		notifier = domain.NopNotifier{}
	}

	return &Service{
		cfg:      cfg,
		registry: registry,
		notifier: notifier,
		catalog:  domain.BadgeCatalog(),
		log:      logging.WithComponent("rewards"),
		users:    make(map[string]*userState),
		now:      time.Now,
	}
}

// getOrCreate lazily initializes reward state for a resolved user.
func (s *Service) getOrCreate(user domain.User) *userState {
	s.mu.RLock()
	u, ok := s.users[user.ID]
	s.mu.RUnlock()
	if ok {
		return u
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[user.ID]; ok {
		return u
	}

	s.nextSeq++
	u = &userState{
		user:   user,
		points: domain.NewPointsState(s.nextSeq),
		ledger: dsa.NewRing[domain.ActivityRecord](s.cfg.LedgerCap),
		badges: make(map[string]domain.AwardedBadge),
	}
	s.users[user.ID] = u
	return u
}

// lookup returns the state for a user that already has one.
func (s *Service) lookup(userID string) (*userState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	return u, ok
}

// ─── Read Accessors ─────────────────────────────────────────────────────────

// UserPoints returns a snapshot of a user's point counters.
// Users known to the registry but without reward state get a zero state.
func (s *Service) UserPoints(userID string) (domain.PointsState, error) {
	if _, err := s.registry.Resolve(userID); err != nil {
		return domain.PointsState{}, err
	}
	u, ok := s.lookup(userID)
	if !ok {
		return domain.PointsState{KindCounts: map[domain.ActivityKind]int64{}}, nil
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.points.Snapshot(), nil
}

// UserBadges returns the badges a user has earned, in award order.
func (s *Service) UserBadges(userID string) ([]domain.AwardedBadge, error) {
	if _, err := s.registry.Resolve(userID); err != nil {
		return nil, err
	}
	u, ok := s.lookup(userID)
	if !ok {
		return []domain.AwardedBadge{}, nil
	}

	u.mu.Lock()
	out := make([]domain.AwardedBadge, 0, len(u.badges))
	for _, b := range u.badges {
		out = append(out, b)
	}
	u.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

// UserLedger returns the current (truncated) activity ledger, oldest first.
// Occurrence counts derived from this view can regress after eviction; the
// monotonic counters in PointsState never do.
func (s *Service) UserLedger(userID string) ([]domain.ActivityRecord, error) {
	if _, err := s.registry.Resolve(userID); err != nil {
		return nil, err
	}
	u, ok := s.lookup(userID)
	if !ok {
		return []domain.ActivityRecord{}, nil
	}
	return u.ledger.Items(), nil
}

// UserCount returns the number of users with initialized reward state.
func (s *Service) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Catalog returns the static badge catalog.
func (s *Service) Catalog() []domain.Badge {
	return s.catalog
}
