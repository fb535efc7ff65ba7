// Package sqlite provides the persistence layer of the engagement core:
// the append-only activity replay log and the registered listener table.
//
// The replay log is the only durability the core offers — in-memory state
// may be rebuilt by re-feeding the log through the accumulator at startup,
// or lost on restart. That trade-off is a deployment concern, not a core
// contract.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/aircast-fm/aircast/internal/domain"
)

// DB wraps the sqlite connection.
type DB struct {
	db *sql.DB
}

// Open creates or opens the aircast database in dir and applies migrations.
// The directory is created if it does not exist.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dir, "aircast.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent appends.
	conn.SetMaxOpenConns(1)

	db := &DB{db: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Append-only activity replay log
		`CREATE TABLE IF NOT EXISTS activity_log (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      TEXT NOT NULL,
			kind         TEXT NOT NULL,
			timestamp    TEXT NOT NULL,
			details_json TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_user ON activity_log(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_time ON activity_log(timestamp)`,

		// Registered listeners (backing table for the user registry)
		`CREATE TABLE IF NOT EXISTS listeners (
			id           TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	}
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// ─── Activity Log Operations ────────────────────────────────────────────────

// AppendActivity appends an activity event to the replay log.
func (db *DB) AppendActivity(ev domain.ActivityEvent) error {
	details := ev.Details
	if details == nil {
		details = map[string]string{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}

	_, err = db.db.Exec(`
		INSERT INTO activity_log (user_id, kind, timestamp, details_json)
		VALUES (?, ?, ?, ?)
	`, ev.UserID, string(ev.Kind), ev.Timestamp.Format(time.RFC3339Nano), string(detailsJSON))
	return err
}

// ReplayActivities streams the replay log in append order through fn.
// A non-nil error from fn aborts the replay.
func (db *DB) ReplayActivities(fn func(domain.ActivityEvent) error) error {
	rows, err := db.db.Query(`
		SELECT user_id, kind, timestamp, details_json
		FROM activity_log ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev          domain.ActivityEvent
			kind        string
			tsStr       string
			detailsJSON string
		)
		if err := rows.Scan(&ev.UserID, &kind, &tsStr, &detailsJSON); err != nil {
			return err
		}
		ev.Kind = domain.ActivityKind(kind)
		ev.Timestamp, _ = time.Parse(time.RFC3339Nano, tsStr)
		if err := json.Unmarshal([]byte(detailsJSON), &ev.Details); err != nil {
			ev.Details = nil
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountActivities returns the replay log length.
func (db *DB) CountActivities() (int64, error) {
	var n int64
	err := db.db.QueryRow(`SELECT COUNT(*) FROM activity_log`).Scan(&n)
	return n, err
}

// ─── Listener Operations ────────────────────────────────────────────────────

// UpsertListener inserts or updates a registered listener.
func (db *DB) UpsertListener(u domain.User) error {
	_, err := db.db.Exec(`
		INSERT INTO listeners (id, display_name)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name
	`, u.ID, u.DisplayName)
	return err
}

// GetListener retrieves a listener by id.
func (db *DB) GetListener(id string) (domain.User, bool, error) {
	var u domain.User
	err := db.db.QueryRow(`
		SELECT id, display_name FROM listeners WHERE id = ?
	`, id).Scan(&u.ID, &u.DisplayName)
	if err == sql.ErrNoRows {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

// ListListeners returns all registered listeners ordered by registration.
func (db *DB) ListListeners() ([]domain.User, error) {
	rows, err := db.db.Query(`
		SELECT id, display_name FROM listeners ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.DisplayName); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
