package rewards

import (
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/observability"
)

// ─── Points Accumulator ─────────────────────────────────────────────────────

// CreditResult reports the outcome of a single activity credit.
type CreditResult struct {
	PointsAwarded int64              `json:"points_awarded"`
	Badges        []domain.Badge     `json:"badges,omitempty"` // newly awarded by this credit
	Totals        domain.PointsState `json:"totals"`
}

// CreditActivity credits the fixed point value for the event's activity
// kind, appends an ActivityRecord to the user's bounded ledger, evaluates
// the badge table synchronously, and then rebuilds the leaderboards.
//
// Unknown activity kinds award 0 points and are still recorded — never an
// error. An id that does not resolve in the user registry makes the call a
// safe no-op reported as domain.ErrUserNotFound.
func (s *Service) CreditActivity(ev domain.ActivityEvent) (CreditResult, error) {
	if ev.UserID == "" {
		return CreditResult{}, domain.ErrEmptyUserID
	}
	user, err := s.registry.Resolve(ev.UserID)
	if err != nil {
		return CreditResult{}, err
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	u := s.getOrCreate(user)

	u.mu.Lock()
	s.rollDayLocked(u, ts)

	points := domain.PointValue(ev.Kind)
	u.ledger.Append(domain.ActivityRecord{
		Kind:      ev.Kind,
		Timestamp: ts,
		Points:    points,
		Details:   ev.Details,
	})
	u.activityCount++
	u.points.KindCounts[ev.Kind]++
	u.points.TotalPoints += points
	u.points.DailyPoints += points
	u.points.WeeklyPoints += points

	awarded := s.evaluateLocked(u, ts)
	totals := u.points.Snapshot()
	u.mu.Unlock()

	observability.PointsAwarded.Add(float64(points))
	s.notifier.PointsEarned(user.ID, points, ev.Kind, totals.TotalPoints)
	s.log.Debug().
		Str("user", user.ID).
		Str("kind", string(ev.Kind)).
		Int64("points", points).
		Int64("total", totals.TotalPoints).
		Msg("activity credited")

	s.Rebuild()

	return CreditResult{PointsAwarded: points, Badges: awarded, Totals: totals}, nil
}

// rollDayLocked applies the lazy daily reset: the first activity of a new
// calendar day zeroes DailyPoints before the new credit lands.
func (s *Service) rollDayLocked(u *userState, ts time.Time) {
	day := domain.DayOf(ts)
	if u.points.LastActiveDate != day {
		u.points.DailyPoints = 0
		u.points.LastActiveDate = day
	}
}
