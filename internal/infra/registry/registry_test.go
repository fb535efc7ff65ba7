package registry

import (
	"errors"
	"testing"

	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/sqlite"
)

func TestInMemoryRegisterAndResolve(t *testing.T) {
	m := NewManager(nil)

	if err := m.Register(domain.User{ID: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := m.Resolve("alice")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if u.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q", u.DisplayName)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}

func TestResolveUnknownUser(t *testing.T) {
	m := NewManager(nil)
	if _, err := m.Resolve("ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
	if _, err := m.Resolve(""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("empty id err = %v, want ErrUserNotFound", err)
	}
}

func TestRegisterEmptyID(t *testing.T) {
	m := NewManager(nil)
	if err := m.Register(domain.User{}); !errors.Is(err, domain.ErrEmptyUserID) {
		t.Errorf("err = %v, want ErrEmptyUserID", err)
	}
}

func TestRegisterDefaultsDisplayName(t *testing.T) {
	m := NewManager(nil)
	m.Register(domain.User{ID: "bob"})

	u, _ := m.Resolve("bob")
	if u.DisplayName != "bob" {
		t.Errorf("DisplayName = %q, want id fallback", u.DisplayName)
	}
}

func TestDatabaseBackedRegistry(t *testing.T) {
	dir := t.TempDir()

	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	m := NewManager(db)
	if err := m.Register(domain.User{ID: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	db.Close()

	// A fresh manager over the same database sees the user after Load.
	db, err = sqlite.Open(dir)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer db.Close()

	m2 := NewManager(db)
	if err := m2.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	u, err := m2.Resolve("alice")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if u.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q", u.DisplayName)
	}
}

func TestResolveFallsThroughToDatabase(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := db.UpsertListener(domain.User{ID: "carol", DisplayName: "Carol"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Cold cache: Resolve reads through to the listeners table.
	m := NewManager(db)
	u, err := m.Resolve("carol")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if u.DisplayName != "Carol" {
		t.Errorf("DisplayName = %q", u.DisplayName)
	}
}
