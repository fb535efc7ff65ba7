package rewards

import (
	"strconv"
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
)

// ─── Streak Tracker ─────────────────────────────────────────────────────────

// RegisterLogin registers a login for today. It returns the resulting
// consecutive-day streak and whether a new calendar day was registered.
func (s *Service) RegisterLogin(userID string) (int, bool, error) {
	return s.RegisterLoginAt(userID, s.now())
}

// RegisterLoginAt registers a login on the calendar day of at.
//
// No-op if a login was already registered that day, reported with
// newDay=false. A gap of exactly one calendar day extends the streak by one;
// any longer gap resets it to 1, as does a first-ever login. A genuine
// new-day registration credits the fixed daily-login activity through the
// accumulator, carrying the streak in the event details for
// streak-dependent badges.
func (s *Service) RegisterLoginAt(userID string, at time.Time) (days int, newDay bool, err error) {
	user, err := s.registry.Resolve(userID)
	if err != nil {
		return 0, false, err
	}
	if at.IsZero() {
		at = s.now()
	}

	u := s.getOrCreate(user)

	u.mu.Lock()
	today := domain.DayOf(at)
	if !u.points.LastLoginDate.IsZero() && u.points.LastLoginDate == today {
		days = u.points.ConsecutiveDays
		u.mu.Unlock()
		return days, false, nil
	}

	switch {
	case u.points.LastLoginDate.IsZero():
		u.points.ConsecutiveDays = 1
	case today.DaysSince(u.points.LastLoginDate) == 1:
		u.points.ConsecutiveDays++
	default:
		u.points.ConsecutiveDays = 1
	}
	u.points.LastLoginDate = today
	days = u.points.ConsecutiveDays
	u.mu.Unlock()

	_, err = s.CreditActivity(domain.ActivityEvent{
		UserID:    userID,
		Kind:      domain.ActivityDailyLogin,
		Timestamp: at,
		Details:   map[string]string{"consecutive_days": strconv.Itoa(days)},
	})
	return days, true, err
}
