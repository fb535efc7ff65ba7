package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aircast-fm/aircast/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestActivityLogRoundTrip(t *testing.T) {
	db := openTestDB(t)

	ts := time.Date(2025, time.March, 10, 12, 30, 0, 0, time.UTC)
	events := []domain.ActivityEvent{
		{UserID: "alice", Kind: domain.ActivityChatMessage, Timestamp: ts},
		{UserID: "bob", Kind: domain.ActivityMusicRequest, Timestamp: ts.Add(time.Minute),
			Details: map[string]string{"song": "midnight"}},
		{UserID: "alice", Kind: domain.ActivityDailyLogin, Timestamp: ts.Add(2 * time.Minute)},
	}
	for _, ev := range events {
		if err := db.AppendActivity(ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := db.CountActivities()
	if err != nil || n != 3 {
		t.Fatalf("CountActivities = (%d, %v), want (3, nil)", n, err)
	}

	var got []domain.ActivityEvent
	if err := db.ReplayActivities(func(ev domain.ActivityEvent) error {
		got = append(got, ev)
		return nil
	}); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("replayed %d events, want 3", len(got))
	}
	// Replay preserves append order.
	for i, want := range events {
		if got[i].UserID != want.UserID || got[i].Kind != want.Kind {
			t.Errorf("event %d = %s/%s, want %s/%s", i, got[i].UserID, got[i].Kind, want.UserID, want.Kind)
		}
		if !got[i].Timestamp.Equal(want.Timestamp) {
			t.Errorf("event %d timestamp = %v, want %v", i, got[i].Timestamp, want.Timestamp)
		}
	}
	if got[1].Details["song"] != "midnight" {
		t.Errorf("details = %v", got[1].Details)
	}
}

func TestReplayAbortsOnCallbackError(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		db.AppendActivity(domain.ActivityEvent{UserID: "alice", Kind: domain.ActivityChatMessage, Timestamp: time.Now()})
	}

	count := 0
	err := db.ReplayActivities(func(domain.ActivityEvent) error {
		count++
		if count == 2 {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != domain.ErrUserNotFound {
		t.Errorf("err = %v, want callback error", err)
	}
	if count != 2 {
		t.Errorf("callback ran %d times, want 2", count)
	}
}

func TestListenerUpsertAndGet(t *testing.T) {
	db := openTestDB(t)

	if err := db.UpsertListener(domain.User{ID: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	u, found, err := db.GetListener("alice")
	if err != nil || !found {
		t.Fatalf("get = (%v, %v)", found, err)
	}
	if u.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q", u.DisplayName)
	}

	// Upsert updates in place.
	db.UpsertListener(domain.User{ID: "alice", DisplayName: "Alice B"})
	u, _, _ = db.GetListener("alice")
	if u.DisplayName != "Alice B" {
		t.Errorf("DisplayName after upsert = %q", u.DisplayName)
	}

	if _, found, _ := db.GetListener("ghost"); found {
		t.Error("unknown listener reported found")
	}
}

func TestListListeners(t *testing.T) {
	db := openTestDB(t)

	db.UpsertListener(domain.User{ID: "alice", DisplayName: "Alice"})
	db.UpsertListener(domain.User{ID: "bob", DisplayName: "Bob"})

	users, err := db.ListListeners()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("listed %d listeners, want 2", len(users))
	}
}

func TestOpenCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("open in missing dir: %v", err)
	}
	defer db.Close()

	if err := db.AppendActivity(domain.ActivityEvent{
		UserID: "alice", Kind: domain.ActivityChatMessage, Timestamp: time.Now(),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.AppendActivity(domain.ActivityEvent{UserID: "alice", Kind: domain.ActivityChatMessage, Timestamp: time.Now()})
	db.Close()

	// Reopening applies migrations again and keeps the data.
	db, err = Open(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()

	n, _ := db.CountActivities()
	if n != 1 {
		t.Errorf("CountActivities after reopen = %d, want 1", n)
	}
}
