// Package ingest is the single entry point for inbound events. It validates
// and routes typed events to the reward and analytics services, appends the
// activity replay log, and counts outcomes.
//
// A malformed or unresolvable event is logged and dropped; nothing here
// propagates a fatal condition back to the event producer.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/aircast-fm/aircast/internal/app/analytics"
	"github.com/aircast-fm/aircast/internal/app/rewards"
	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/observability"
	"github.com/aircast-fm/aircast/internal/logging"
)

// ReplayLog is the append-only activity log the dispatcher writes through.
type ReplayLog interface {
	AppendActivity(ev domain.ActivityEvent) error
	ReplayActivities(fn func(domain.ActivityEvent) error) error
}

// Dispatcher routes inbound events to the engagement services.
type Dispatcher struct {
	rewards   *rewards.Service
	analytics *analytics.Service
	replay    ReplayLog // nil disables the replay log
	log       zerolog.Logger

	processed atomic.Int64
	dropped   atomic.Int64
}

// New creates a dispatcher. replay may be nil.
func New(rw *rewards.Service, an *analytics.Service, replay ReplayLog) *Dispatcher {
	return &Dispatcher{
		rewards:   rw,
		analytics: an,
		replay:    replay,
		log:       logging.WithComponent("ingest"),
	}
}

// SubmitActivity processes one activity event. Daily logins route through
// the streak tracker, which itself credits the accumulator on a genuine
// new-day registration; everything else is credited directly. A same-day
// duplicate login is a no-op and is not appended to the replay log.
func (d *Dispatcher) SubmitActivity(ev domain.ActivityEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	record := true
	var err error
	if ev.Kind == domain.ActivityDailyLogin {
		_, record, err = d.rewards.RegisterLoginAt(ev.UserID, ev.Timestamp)
	} else {
		_, err = d.rewards.CreditActivity(ev)
	}
	if err != nil {
		d.drop(err, "user", ev.UserID)
		return err
	}

	if record {
		d.appendReplay(ev)
	}

	d.processed.Add(1)
	observability.EventsProcessed.WithLabelValues(string(ev.Kind)).Inc()
	return nil
}

// SubmitLogin registers a login for userID, appending it to the replay log
// only when a new calendar day was registered. Returns the streak length.
func (d *Dispatcher) SubmitLogin(userID string) (int, error) {
	ev := domain.ActivityEvent{
		UserID:    userID,
		Kind:      domain.ActivityDailyLogin,
		Timestamp: time.Now(),
	}

	days, newDay, err := d.rewards.RegisterLoginAt(ev.UserID, ev.Timestamp)
	if err != nil {
		d.drop(err, "user", ev.UserID)
		return 0, err
	}
	if newDay {
		d.appendReplay(ev)
	}

	d.processed.Add(1)
	observability.EventsProcessed.WithLabelValues(string(ev.Kind)).Inc()
	return days, nil
}

// appendReplay writes an event through the replay log if one is configured.
func (d *Dispatcher) appendReplay(ev domain.ActivityEvent) {
	if d.replay == nil {
		return
	}
	if err := d.replay.AppendActivity(ev); err != nil {
		// State is already updated; a log write failure costs replay
		// fidelity, not correctness.
		d.log.Warn().Err(err).Str("user", ev.UserID).Msg("replay log append failed")
	}
}

// SubmitConnection processes a connect or disconnect. Returns the effective
// connection id for connects.
func (d *Dispatcher) SubmitConnection(ev domain.ConnectionEvent) (string, error) {
	switch ev.Kind {
	case domain.ConnectionConnect:
		connID, err := d.analytics.OnConnect(ev.ConnID, ev.DisplayName)
		if err != nil {
			d.drop(err, "conn", ev.ConnID)
			return connID, err
		}
		d.processed.Add(1)
		observability.EventsProcessed.WithLabelValues("connect").Inc()
		return connID, nil

	case domain.ConnectionDisconnect:
		if _, err := d.analytics.OnDisconnect(ev.ConnID); err != nil {
			d.drop(err, "conn", ev.ConnID)
			return ev.ConnID, err
		}
		d.processed.Add(1)
		observability.EventsProcessed.WithLabelValues("disconnect").Inc()
		return ev.ConnID, nil

	default:
		err := fmt.Errorf("unknown connection event kind %q", ev.Kind)
		d.drop(err, "conn", ev.ConnID)
		return ev.ConnID, err
	}
}

// SubmitSongStart processes a song going on air.
func (d *Dispatcher) SubmitSongStart(ev domain.SongStartEvent) error {
	if ev.SongID == "" {
		err := errors.New("empty song id")
		d.drop(err, "song", "")
		return err
	}
	d.analytics.OnSongStart(ev.SongID)
	d.processed.Add(1)
	observability.EventsProcessed.WithLabelValues("song_start").Inc()
	return nil
}

// Stats returns the processed and dropped event counts.
func (d *Dispatcher) Stats() (processed, dropped int64) {
	return d.processed.Load(), d.dropped.Load()
}

// Replay re-feeds the activity log through the accumulator in append order,
// rebuilding reward state. Run before serving traffic: notifications
// produced during replay go to a hub with no subscribers yet.
func (d *Dispatcher) Replay(ctx context.Context) (int, error) {
	if d.replay == nil {
		return 0, nil
	}

	count := 0
	err := d.replay.ReplayActivities(func(ev domain.ActivityEvent) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var crediting error
		if ev.Kind == domain.ActivityDailyLogin {
			_, _, crediting = d.rewards.RegisterLoginAt(ev.UserID, ev.Timestamp)
		} else {
			_, crediting = d.rewards.CreditActivity(ev)
		}
		if crediting != nil {
			// A user no longer in the registry loses replayed history.
			d.log.Warn().Err(crediting).Str("user", ev.UserID).Msg("replay skipped event")
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("replay: %w", err)
	}

	d.log.Info().Int("events", count).Msg("activity log replayed")
	return count, nil
}

// drop records a dropped event with its reason.
func (d *Dispatcher) drop(err error, idKey, id string) {
	d.dropped.Add(1)
	observability.EventsDropped.WithLabelValues(dropReason(err)).Inc()
	d.log.Warn().Err(err).Str(idKey, id).Msg("event dropped")
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrEmptyUserID):
		return "empty_user_id"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, domain.ErrSessionExists):
		return "session_exists"
	default:
		return "invalid"
	}
}
