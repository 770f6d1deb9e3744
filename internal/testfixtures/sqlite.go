package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/studio-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides typed repositories backed by a temporary SQLite
// database for integration-style tests.
type SQLiteHarness struct {
	Store          *sqlite.Store
	Users          *sqlite.UserRepository
	Sessions       *sqlite.SessionRepository
	Brands         *sqlite.BrandRepository
	Rooms          *sqlite.RoomRepository
	BrandSchedules *sqlite.BrandScheduleRepository
	Availability   *sqlite.AvailabilityRepository
	Assignments    *sqlite.AssignmentRepository
}

// NewSQLiteHarness opens and migrates a database under a temporary directory
// and wires every repository over it. Cleanup is registered with the
// provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "scheduler.db")
	store, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	tb.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	return &SQLiteHarness{
		Store:          store,
		Users:          sqlite.NewUserRepository(store),
		Sessions:       sqlite.NewSessionRepository(store),
		Brands:         sqlite.NewBrandRepository(store),
		Rooms:          sqlite.NewRoomRepository(store),
		BrandSchedules: sqlite.NewBrandScheduleRepository(store),
		Availability:   sqlite.NewAvailabilityRepository(store),
		Assignments:    sqlite.NewAssignmentRepository(store),
	}
}
