package domain

import "testing"

func TestPointValue(t *testing.T) {
	tests := []struct {
		kind ActivityKind
		want int64
	}{
		{ActivityChatMessage, 2},
		{ActivityMusicRequest, 5},
		{ActivitySongListenComplete, 3},
		{ActivityAddFriend, 10},
		{ActivitySongComment, 3},
		{ActivityCommentLike, 1},
		{ActivityDailyLogin, 10},
		{ActivityRoomVisit, 1},
		{ActivityShareSong, 5},
		{ActivityEventParticipation, 15},
		{ActivityListeningTimeHour, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := PointValue(tt.kind); got != tt.want {
				t.Errorf("PointValue(%s) = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestPointValueUnknownKind(t *testing.T) {
	if got := PointValue("dance_battle"); got != 0 {
		t.Errorf("unknown kind should be worth 0, got %d", got)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(ActivityChatMessage); got != "sent a chat message" {
		t.Errorf("Describe(chat_message) = %q", got)
	}
	// Unknown kinds fall back to the raw kind string.
	if got := Describe("dance_battle"); got != "dance_battle" {
		t.Errorf("Describe(unknown) = %q, want raw kind", got)
	}
}

func TestKnownKinds(t *testing.T) {
	kinds := KnownKinds()
	if len(kinds) != 11 {
		t.Fatalf("expected 11 known kinds, got %d", len(kinds))
	}
	seen := make(map[ActivityKind]bool)
	for _, k := range kinds {
		if seen[k] {
			t.Errorf("duplicate kind %s", k)
		}
		seen[k] = true
	}
}
