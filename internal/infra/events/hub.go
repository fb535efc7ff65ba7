package events

import (
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/aircast-fm/aircast/internal/domain"
)

// ─── Live Notification Hub ──────────────────────────────────────────────────
// In-process fanout: the core publishes, UI collaborators subscribe. A slow
// client never blocks the core — its messages are dropped instead.

// Hub manages subscriber channels for the live notification feed.
// It implements domain.Notifier.
type Hub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewHub creates an empty broadcast hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan []byte]struct{})}
}

// Subscribe registers a client. Returns the channel and an unsubscribe func.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 32)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast marshals the event and sends it to every subscriber.
func (h *Hub) Broadcast(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
			// Client too slow — drop message
		}
	}
}

// ─── domain.Notifier ────────────────────────────────────────────────────────

// PointsEarned broadcasts a point credit with its human-readable description.
func (h *Hub) PointsEarned(userID string, points int64, kind domain.ActivityKind, totalPoints int64) {
	h.Broadcast(PointsEarnedEvent{
		Type:        TypePointsEarned,
		UserID:      userID,
		Points:      points,
		Kind:        kind,
		Description: domain.Describe(kind),
		TotalPoints: totalPoints,
	})
}

// BadgeEarned broadcasts a badge award.
func (h *Hub) BadgeEarned(userID string, badge domain.Badge, earnedAt time.Time) {
	h.Broadcast(BadgeEarnedEvent{
		Type:     TypeBadgeEarned,
		UserID:   userID,
		Badge:    badge,
		EarnedAt: earnedAt,
	})
}

// LeaderboardUpdated broadcasts a rebuilt ranked snapshot.
func (h *Hub) LeaderboardUpdated(period domain.Period, entries []domain.LeaderboardEntry) {
	h.Broadcast(LeaderboardUpdatedEvent{
		Type:    TypeLeaderboardUpdated,
		Period:  period,
		Entries: entries,
	})
}

// Announce broadcasts a system chat-style announcement.
func (h *Hub) Announce(message string) {
	h.Broadcast(AnnouncementEvent{
		Type:    TypeAnnouncement,
		Message: message,
		At:      time.Now(),
	})
}

// ─── SSE Feed ───────────────────────────────────────────────────────────────

// HandleFeed serves the live notification feed via Server-Sent Events.
// GET /api/live/feed
func (h *Hub) HandleFeed(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	ch, unsub := h.Subscribe()
	defer unsub()

	for {
		select {
		case <-r.Context().Done():
			return
		case data, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			w.Write(data)
			w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
