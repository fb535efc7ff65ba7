package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Every failure in
// the core is local and recoverable; none is fatal to the event producer.

var (
	// ErrUserNotFound means the id did not resolve in the user registry.
	// Mutating calls treat this as a safe no-op reported to the caller.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownPeriod means a leaderboard period string was invalid.
	ErrUnknownPeriod = errors.New("unknown leaderboard period")

	// ErrSessionNotFound means a disconnect arrived for an unknown connection.
	ErrSessionNotFound = errors.New("listener session not found")

	// ErrSessionExists means a connect arrived for an already-live connection.
	ErrSessionExists = errors.New("listener session already connected")

	// ErrEmptyUserID means an event carried no user identifier.
	ErrEmptyUserID = errors.New("empty user id")
)
