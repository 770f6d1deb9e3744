package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/studio-scheduler/internal/persistence"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "scheduler.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}
	return store
}

func TestStore_PutGetDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "room:r-1", []byte(`{"id":"r-1"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := store.Get(ctx, "room:r-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `{"id":"r-1"}` {
		t.Fatalf("unexpected value: %s", value)
	}

	// Put replaces an existing record.
	if err := store.Put(ctx, "room:r-1", []byte(`{"id":"r-1","name":"A"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, err = store.Get(ctx, "room:r-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `{"id":"r-1","name":"A"}` {
		t.Fatalf("unexpected value after overwrite: %s", value)
	}

	if err := store.Delete(ctx, "room:r-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "room:r-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "room:r-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_ListByPrefix(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"room:r-2", "room:r-1", "brand:b-1"} {
		if err := store.Put(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	records, err := store.ListByPrefix(ctx, "room:")
	if err != nil {
		t.Fatalf("ListByPrefix failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Key != "room:r-1" || records[1].Key != "room:r-2" {
		t.Fatalf("expected key order, got %q and %q", records[0].Key, records[1].Key)
	}

	empty, err := store.ListByPrefix(ctx, "session:")
	if err != nil {
		t.Fatalf("ListByPrefix failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no records, got %d", len(empty))
	}
}

func TestStore_PutClaimed_RejectsHeldSlots(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	claims := []persistence.SlotClaim{
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-1", Date: "2026-09-01", Slot: "10:00"},
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-1", Date: "2026-09-01", Slot: "11:00"},
	}
	if err := store.PutClaimed(ctx, "assignment:a-1", []byte("{}"), claims); err != nil {
		t.Fatalf("PutClaimed failed: %v", err)
	}

	// A second booking overlapping on one slot must fail and leave no trace.
	overlap := []persistence.SlotClaim{
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-1", Date: "2026-09-01", Slot: "11:00"},
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-1", Date: "2026-09-01", Slot: "12:00"},
	}
	err := store.PutClaimed(ctx, "assignment:a-2", []byte("{}"), overlap)
	if !errors.Is(err, persistence.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if _, err := store.Get(ctx, "assignment:a-2"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected losing record to be absent, got %v", err)
	}

	// The same slots in another room or on another day stay free.
	elsewhere := []persistence.SlotClaim{
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-2", Date: "2026-09-01", Slot: "11:00"},
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-1", Date: "2026-09-02", Slot: "11:00"},
	}
	if err := store.PutClaimed(ctx, "assignment:a-3", []byte("{}"), elsewhere); err != nil {
		t.Fatalf("PutClaimed failed: %v", err)
	}
}

func TestStore_PutClaimed_RejectsDoubleBookedHosts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := []persistence.SlotClaim{
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-1", Date: "2026-09-01", Slot: "10:00"},
		{Scope: persistence.ClaimScopeHost, OwnerID: "h-1", Date: "2026-09-01", Slot: "10:00"},
	}
	if err := store.PutClaimed(ctx, "assignment:a-1", []byte("{}"), first); err != nil {
		t.Fatalf("PutClaimed failed: %v", err)
	}

	// Booking the same host into a different room at the same hour trips
	// the host claim even though the room claim is free.
	conflicting := []persistence.SlotClaim{
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-2", Date: "2026-09-01", Slot: "10:00"},
		{Scope: persistence.ClaimScopeHost, OwnerID: "h-1", Date: "2026-09-01", Slot: "10:00"},
	}
	err := store.PutClaimed(ctx, "assignment:a-2", []byte("{}"), conflicting)
	if !errors.Is(err, persistence.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if _, err := store.Get(ctx, "assignment:a-2"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected losing record to be absent, got %v", err)
	}

	// Another host in another room at the same hour is fine.
	other := []persistence.SlotClaim{
		{Scope: persistence.ClaimScopeRoom, OwnerID: "r-2", Date: "2026-09-01", Slot: "10:00"},
		{Scope: persistence.ClaimScopeHost, OwnerID: "h-2", Date: "2026-09-01", Slot: "10:00"},
	}
	if err := store.PutClaimed(ctx, "assignment:a-3", []byte("{}"), other); err != nil {
		t.Fatalf("PutClaimed failed: %v", err)
	}
}

func TestStore_DeleteClaimed_ReleasesSlots(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	claims := []persistence.SlotClaim{{Scope: persistence.ClaimScopeRoom, OwnerID: "r-1", Date: "2026-09-01", Slot: "10:00"}}
	if err := store.PutClaimed(ctx, "assignment:a-1", []byte("{}"), claims); err != nil {
		t.Fatalf("PutClaimed failed: %v", err)
	}
	if err := store.DeleteClaimed(ctx, "assignment:a-1"); err != nil {
		t.Fatalf("DeleteClaimed failed: %v", err)
	}

	// The slot is free again after the booking is removed.
	if err := store.PutClaimed(ctx, "assignment:a-2", []byte("{}"), claims); err != nil {
		t.Fatalf("expected released slot to be claimable, got %v", err)
	}

	if err := store.DeleteClaimed(ctx, "assignment:a-missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
