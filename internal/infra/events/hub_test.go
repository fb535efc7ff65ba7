package events

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/aircast-fm/aircast/internal/domain"
)

func TestHubSubscribeAndBroadcast(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe()
	defer unsub()

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount = %d, want 1", hub.ClientCount())
	}

	hub.Broadcast(map[string]string{"hello": "world"})

	select {
	case data := <-ch:
		var got map[string]string
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["hello"] != "world" {
			t.Errorf("payload = %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	_, unsub := hub.Subscribe()
	unsub()

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount = %d after unsubscribe, want 0", hub.ClientCount())
	}
	// Double unsubscribe must not panic.
	unsub()
}

func TestHubDropsMessagesForSlowClient(t *testing.T) {
	hub := NewHub()
	_, unsub := hub.Subscribe() // never drained
	defer unsub()

	// Overflow the subscriber buffer; Broadcast must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast(map[string]int{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a slow client")
	}
}

func TestHubPointsEarnedEvent(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe()
	defer unsub()

	hub.PointsEarned("alice", 5, domain.ActivityMusicRequest, 25)

	var ev PointsEarnedEvent
	if err := json.Unmarshal(<-ch, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != TypePointsEarned {
		t.Errorf("Type = %q, want %q", ev.Type, TypePointsEarned)
	}
	if ev.UserID != "alice" || ev.Points != 5 || ev.TotalPoints != 25 {
		t.Errorf("event = %+v", ev)
	}
	if ev.Description != "requested a song" {
		t.Errorf("Description = %q", ev.Description)
	}
}

func TestHubBadgeEarnedEvent(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe()
	defer unsub()

	badge := domain.BadgeCatalog()[1]
	earnedAt := time.Now()
	hub.BadgeEarned("alice", badge, earnedAt)

	var ev BadgeEarnedEvent
	if err := json.Unmarshal(<-ch, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != TypeBadgeEarned || ev.Badge.ID != badge.ID {
		t.Errorf("event = %+v", ev)
	}
}

func TestHubLeaderboardUpdatedEvent(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe()
	defer unsub()

	hub.LeaderboardUpdated(domain.PeriodDaily, []domain.LeaderboardEntry{
		{UserID: "alice", DisplayName: "Alice", Points: 10, Rank: 1},
	})

	var ev LeaderboardUpdatedEvent
	if err := json.Unmarshal(<-ch, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Period != domain.PeriodDaily || len(ev.Entries) != 1 {
		t.Errorf("event = %+v", ev)
	}
}
