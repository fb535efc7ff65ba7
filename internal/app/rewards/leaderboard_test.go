package rewards

import (
	"testing"
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
)

func TestLeaderboardRanksByPointsDescending(t *testing.T) {
	s, _ := newTestService(t, Config{})

	credit(t, s, "alice", domain.ActivityChatMessage, 3) // 6
	credit(t, s, "bob", domain.ActivityMusicRequest, 2)  // 10
	credit(t, s, "carol", domain.ActivityRoomVisit, 1)   // 1

	entries := s.Leaderboard(domain.PeriodAllTime)
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	wantOrder := []string{"bob", "alice", "carol"}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("rank %d = %s, want %s", i+1, entries[i].UserID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entry %d Rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
	if entries[0].Points != 10 || entries[0].DisplayName != "Bob" {
		t.Errorf("top entry = %+v", entries[0])
	}
}

func TestLeaderboardTieBreakByRegistrationOrder(t *testing.T) {
	s, _ := newTestService(t, Config{})

	// Equal points everywhere: the first user to gain state outranks.
	credit(t, s, "carol", domain.ActivityChatMessage, 1)
	credit(t, s, "alice", domain.ActivityChatMessage, 1)
	credit(t, s, "bob", domain.ActivityChatMessage, 1)

	entries := s.Leaderboard(domain.PeriodAllTime)
	wantOrder := []string{"carol", "alice", "bob"}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("rank %d = %s, want %s", i+1, entries[i].UserID, want)
		}
	}
}

func TestLeaderboardBounded(t *testing.T) {
	reg := make(fakeRegistry)
	for _, id := range []string{"u0", "u1", "u2", "u3", "u4"} {
		reg[id] = domain.User{ID: id, DisplayName: id}
	}
	s := New(Config{TopN: 3}, reg, nil)

	for id := range reg {
		if _, err := s.CreditActivity(domain.ActivityEvent{UserID: id, Kind: domain.ActivityChatMessage}); err != nil {
			t.Fatalf("credit %s: %v", id, err)
		}
	}

	if got := len(s.Leaderboard(domain.PeriodAllTime)); got != 3 {
		t.Errorf("entries = %d, want 3", got)
	}
}

func TestLeaderboardEmptyPeriodIsNotNil(t *testing.T) {
	s, _ := newTestService(t, Config{})
	entries := s.Leaderboard(domain.PeriodDaily)
	if entries == nil {
		t.Fatal("empty leaderboard should be an empty slice, not nil")
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want empty", entries)
	}
}

func TestRebuildIsDeterministic(t *testing.T) {
	s, _ := newTestService(t, Config{})

	credit(t, s, "alice", domain.ActivityChatMessage, 2)
	credit(t, s, "bob", domain.ActivityChatMessage, 2)

	first := s.Rebuild()
	second := s.Rebuild()

	if len(first.AllTime) != len(second.AllTime) {
		t.Fatal("rebuild lengths differ")
	}
	for i := range first.AllTime {
		if first.AllTime[i] != second.AllTime[i] {
			t.Errorf("rebuild %d differs: %+v vs %+v", i, first.AllTime[i], second.AllTime[i])
		}
	}
}

func TestResetWeeklyZeroesOnlyWeekly(t *testing.T) {
	s, _ := newTestService(t, Config{})

	credit(t, s, "alice", domain.ActivityMusicRequest, 2) // 10 points

	s.ResetWeekly()

	points, _ := s.UserPoints("alice")
	if points.WeeklyPoints != 0 {
		t.Errorf("WeeklyPoints = %d, want 0", points.WeeklyPoints)
	}
	if points.TotalPoints != 10 {
		t.Errorf("TotalPoints = %d, want 10", points.TotalPoints)
	}
	if points.DailyPoints != 10 {
		t.Errorf("DailyPoints = %d, want 10", points.DailyPoints)
	}

	weekly := s.Leaderboard(domain.PeriodWeekly)
	if len(weekly) != 1 || weekly[0].Points != 0 {
		t.Errorf("weekly board after reset = %v", weekly)
	}
}

func TestMaybeResetWeeklyFiresOncePerWeek(t *testing.T) {
	s, now := newTestService(t, Config{})
	credit(t, s, "alice", domain.ActivityMusicRequest, 1)

	// First call records the baseline week; same week never fires,
	// whatever wall-clock week the process was constructed in.
	if s.MaybeResetWeekly(*now) {
		t.Error("baseline check fired a reset")
	}
	if s.MaybeResetWeekly(now.Add(time.Hour)) {
		t.Error("reset fired within the same ISO week")
	}

	// Next week: fires exactly once.
	next := now.AddDate(0, 0, 7)
	if !s.MaybeResetWeekly(next) {
		t.Error("reset did not fire after week boundary")
	}
	if s.MaybeResetWeekly(next) {
		t.Error("reset fired twice for the same week")
	}

	points, _ := s.UserPoints("alice")
	if points.WeeklyPoints != 0 {
		t.Errorf("WeeklyPoints = %d, want 0", points.WeeklyPoints)
	}
}
