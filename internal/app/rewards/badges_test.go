package rewards

import (
	"sync"
	"testing"
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
)

func TestEvaluateIsIdempotent(t *testing.T) {
	s, _ := newTestService(t, Config{})

	credit(t, s, "alice", domain.ActivityChatMessage, 10)

	// Re-running the evaluator awards nothing further and changes no totals.
	before, _ := s.UserPoints("alice")
	for i := 0; i < 3; i++ {
		awarded, err := s.Evaluate("alice")
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if len(awarded) != 0 {
			t.Errorf("re-evaluation awarded %v", awarded)
		}
	}
	after, _ := s.UserPoints("alice")
	if after.TotalPoints != before.TotalPoints {
		t.Errorf("TotalPoints drifted %d → %d across re-evaluations", before.TotalPoints, after.TotalPoints)
	}
}

func TestBadgeBonusLandsInAllCounters(t *testing.T) {
	s, _ := newTestService(t, Config{})

	// 10 music requests: 50 activity points + 30 music_lover bonus.
	res := credit(t, s, "alice", domain.ActivityMusicRequest, 10)

	if res.Totals.TotalPoints != 80 {
		t.Errorf("TotalPoints = %d, want 80", res.Totals.TotalPoints)
	}
	if res.Totals.DailyPoints != 80 {
		t.Errorf("DailyPoints = %d, want 80", res.Totals.DailyPoints)
	}
	if res.Totals.WeeklyPoints != 80 {
		t.Errorf("WeeklyPoints = %d, want 80", res.Totals.WeeklyPoints)
	}
}

func TestBadgeAwardedAtMostOnceUnderConcurrency(t *testing.T) {
	s, _ := newTestService(t, Config{})

	// 20 goroutines × 5 chats = 100 chats: exactly welcome, chat_rookie
	// and chat_veteran must be held afterwards, each once.
	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				s.CreditActivity(domain.ActivityEvent{UserID: "alice", Kind: domain.ActivityChatMessage})
			}
		}()
	}
	wg.Wait()

	badges, _ := s.UserBadges("alice")
	held := make(map[string]int)
	for _, b := range badges {
		held[b.BadgeID]++
	}
	for _, id := range []string{"welcome", "chat_rookie", "chat_veteran"} {
		if held[id] != 1 {
			t.Errorf("badge %q held %d times, want 1", id, held[id])
		}
	}

	// Conservation: 100 chats × 2 + 20 + 100 bonus.
	points, _ := s.UserPoints("alice")
	if points.TotalPoints != 320 {
		t.Errorf("TotalPoints = %d, want 320", points.TotalPoints)
	}
	if points.KindCounts[domain.ActivityChatMessage] != 100 {
		t.Errorf("chat count = %d, want 100", points.KindCounts[domain.ActivityChatMessage])
	}
}

func TestBadgesOrderedByAwardUnderFrozenClock(t *testing.T) {
	// All awards land on the same frozen instant: EarnedAt cannot order
	// them, the award sequence must.
	s, _ := newTestService(t, Config{})

	credit(t, s, "alice", domain.ActivityChatMessage, 100)

	badges, _ := s.UserBadges("alice")
	if len(badges) != 3 {
		t.Fatalf("badges = %d, want 3", len(badges))
	}
	wantOrder := []string{"welcome", "chat_rookie", "chat_veteran"}
	for i, want := range wantOrder {
		if badges[i].BadgeID != want {
			t.Errorf("badges[%d] = %s, want %s", i, badges[i].BadgeID, want)
		}
	}
}

func TestBadgesSortedByEarnedTime(t *testing.T) {
	s, now := newTestService(t, Config{})

	credit(t, s, "alice", domain.ActivityChatMessage, 1) // welcome
	*now = now.Add(time.Hour)
	credit(t, s, "alice", domain.ActivityChatMessage, 9) // chat_rookie later

	badges, _ := s.UserBadges("alice")
	if len(badges) != 2 {
		t.Fatalf("badges = %d, want 2", len(badges))
	}
	if badges[0].BadgeID != "welcome" || badges[1].BadgeID != "chat_rookie" {
		t.Errorf("order = %s, %s; want welcome first", badges[0].BadgeID, badges[1].BadgeID)
	}
	if badges[1].EarnedAt.Before(badges[0].EarnedAt) {
		t.Error("badges not in EarnedAt order")
	}
}
