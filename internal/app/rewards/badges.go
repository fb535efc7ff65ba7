package rewards

import (
	"fmt"
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/observability"
)

// ─── Badge Evaluator ────────────────────────────────────────────────────────
// Awarding iterates the declarative badge table generically: every badge the
// user does not yet hold is checked against their current progress. A
// presence check before insert makes re-evaluation a no-op, so running
// Evaluate twice never double-awards.

// Evaluate checks every unearned catalog badge for the user and awards the
// ones whose unlock condition is met. Returns the newly awarded badges.
func (s *Service) Evaluate(userID string) ([]domain.Badge, error) {
	user, err := s.registry.Resolve(userID)
	if err != nil {
		return nil, err
	}

	u := s.getOrCreate(user)
	u.mu.Lock()
	awarded := s.evaluateLocked(u, s.now())
	u.mu.Unlock()

	if len(awarded) > 0 {
		s.Rebuild()
	}
	return awarded, nil
}

// evaluateLocked runs the badge table under the user's lock, which makes
// awarding mutually exclusive with further credits for the same user. Bonus
// points are credited into all three counters on award.
func (s *Service) evaluateLocked(u *userState, at time.Time) []domain.Badge {
	var earned []domain.Badge
	for _, badge := range s.catalog {
		if _, ok := u.badges[badge.ID]; ok {
			continue
		}

		progress := domain.BadgeProgress{
			KindCounts:      u.points.KindCounts,
			ConsecutiveDays: u.points.ConsecutiveDays,
			TotalPoints:     u.points.TotalPoints,
			ActivityCount:   u.activityCount,
		}
		if !badge.Unlock(progress) {
			continue
		}

		u.badgeSeq++
		u.badges[badge.ID] = domain.AwardedBadge{
			BadgeID:  badge.ID,
			UserID:   u.user.ID,
			EarnedAt: at,
			Seq:      u.badgeSeq,
		}
		u.points.TotalPoints += badge.BonusPoints
		u.points.DailyPoints += badge.BonusPoints
		u.points.WeeklyPoints += badge.BonusPoints
		earned = append(earned, badge)

		observability.BadgesAwarded.WithLabelValues(badge.ID).Inc()
		observability.PointsAwarded.Add(float64(badge.BonusPoints))
		s.notifier.BadgeEarned(u.user.ID, badge, at)
		s.notifier.Announce(fmt.Sprintf("%s unlocked the badge %q!", u.user.DisplayName, badge.DisplayName))
		s.log.Info().
			Str("user", u.user.ID).
			Str("badge", badge.ID).
			Int64("bonus", badge.BonusPoints).
			Msg("badge awarded")
	}
	return earned
}
