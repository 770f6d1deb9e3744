package application

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/example/studio-scheduler/internal/matching"
)

func matchingFixture() *MatchingService {
	users := newUserRepoStub(
		User{ID: "admin-1", Email: "ops@example.com", Name: "Ops", Role: RoleAdmin},
		User{ID: "host-1", Email: "alice@example.com", Name: "Alice", Role: RoleHost},
		User{ID: "host-2", Email: "bob@example.com", Name: "Bob", Role: RoleHost, BrandTags: []string{"brand-2"}},
	)
	rooms := newRoomRepoStub(
		Room{ID: "room-1", Name: "Studio A", IsActive: true},
		Room{ID: "room-2", Name: "Storage", IsActive: false},
	)
	schedules := newBrandScheduleRepoStub(BrandSchedule{
		ID:         "bs-1",
		BrandID:    "brand-1",
		BrandName:  "Glow Cosmetics",
		DaysOfWeek: []string{"Tuesday"},
		TimeSlots:  []string{"09:00", "10:00"},
	})
	availability := newAvailabilityRepoStub(
		HostAvailability{ID: "av-1", HostID: "host-1", HostName: "Alice", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00", "11:00"}},
		HostAvailability{ID: "av-2", HostID: "host-2", HostName: "Bob", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00"}},
	)
	assignments := newAssignmentRepoStub(Assignment{
		ID: "as-1", RoomID: "room-1", RoomName: "Studio A", Date: "2026-09-01",
		BrandID: "brand-9", BrandName: "Other", HostID: "host-9", HostName: "Zoe",
		TimeSlots: []string{"10:00"},
	})

	return NewMatchingService(availability, assignments, rooms, schedules, users)
}

func TestMatchingService_AvailableHosts(t *testing.T) {
	t.Parallel()

	t.Run("lists compatible hosts with annotations", func(t *testing.T) {
		t.Parallel()

		svc := matchingFixture()
		matches, err := svc.AvailableHosts(context.Background(), AvailableHostsParams{
			Principal: adminPrincipal,
			BrandID:   "brand-1",
			Date:      "2026-09-01",
			TimeSlots: []string{"09:00", "10:00"},
		})
		if err != nil {
			t.Fatalf("AvailableHosts failed: %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected one compatible host, got %+v", matches)
		}
		alice := matches[0]
		if alice.Host.ID != "host-1" {
			t.Fatalf("unexpected host: %+v", alice.Host)
		}
		// 10:00 is booked in room-1 by another host; Alice is still free.
		if !alice.IsFullyAvailable {
			t.Fatalf("expected full availability, got %+v", alice)
		}
		if !slices.Equal(alice.AvailableSlots, []string{"09:00", "10:00", "11:00"}) {
			t.Fatalf("unexpected available slots: %v", alice.AvailableSlots)
		}
	})

	t.Run("excludes admin accounts from the roster", func(t *testing.T) {
		t.Parallel()

		svc := matchingFixture()
		matches, err := svc.AvailableHosts(context.Background(), AvailableHostsParams{
			Principal: adminPrincipal,
			BrandID:   "brand-2",
			Date:      "2026-09-01",
			TimeSlots: []string{"09:00"},
		})
		if err != nil {
			t.Fatalf("AvailableHosts failed: %v", err)
		}
		for _, match := range matches {
			if match.Host.ID == "admin-1" {
				t.Fatalf("expected admins excluded, got %+v", matches)
			}
		}
	})

	t.Run("rejects missing parameters", func(t *testing.T) {
		t.Parallel()

		svc := matchingFixture()
		_, err := svc.AvailableHosts(context.Background(), AvailableHostsParams{Principal: adminPrincipal})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestMatchingService_RequiresAdmin(t *testing.T) {
	t.Parallel()

	svc := matchingFixture()

	if _, err := svc.AvailableHosts(context.Background(), AvailableHostsParams{
		Principal: hostPrincipal,
		BrandID:   "brand-1",
		Date:      "2026-09-01",
		TimeSlots: []string{"09:00"},
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("AvailableHosts: expected ErrUnauthorized for host principal, got %v", err)
	}

	if _, err := svc.RoomAvailability(context.Background(), hostPrincipal, "room-1", "2026-09-01"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("RoomAvailability: expected ErrUnauthorized for host principal, got %v", err)
	}

	if _, err := svc.MatchBrandSchedule(context.Background(), MatchBrandScheduleParams{
		Principal:  hostPrincipal,
		ScheduleID: "bs-1",
		Date:       "2026-09-01",
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("MatchBrandSchedule: expected ErrUnauthorized for host principal, got %v", err)
	}
}

func TestMatchingService_RoomAvailability(t *testing.T) {
	t.Parallel()

	svc := matchingFixture()
	report, err := svc.RoomAvailability(context.Background(), adminPrincipal, "room-1", "2026-09-01")
	if err != nil {
		t.Fatalf("RoomAvailability failed: %v", err)
	}

	if report.Room.ID != "room-1" || report.Date != "2026-09-01" {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if len(report.Availability) != 14 {
		t.Fatalf("expected one entry per canonical slot, got %d", len(report.Availability))
	}

	for _, entry := range report.Availability {
		switch entry.TimeSlot {
		case "10:00":
			if entry.IsAvailable || entry.Assignment == nil || entry.Assignment.ID != "as-1" {
				t.Fatalf("expected 10:00 occupied by as-1, got %+v", entry)
			}
		default:
			if !entry.IsAvailable || entry.Assignment != nil {
				t.Fatalf("expected %s free, got %+v", entry.TimeSlot, entry)
			}
		}
	}

	if _, err := svc.RoomAvailability(context.Background(), adminPrincipal, "room-missing", "2026-09-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown room, got %v", err)
	}
}

func TestMatchingService_MatchBrandSchedule(t *testing.T) {
	t.Parallel()

	t.Run("projects the schedule onto a scheduled day", func(t *testing.T) {
		t.Parallel()

		svc := matchingFixture()
		// 2026-09-01 is a Tuesday.
		report, err := svc.MatchBrandSchedule(context.Background(), MatchBrandScheduleParams{
			Principal:  adminPrincipal,
			ScheduleID: "bs-1",
			Date:       "2026-09-01",
		})
		if err != nil {
			t.Fatalf("MatchBrandSchedule failed: %v", err)
		}

		if report.DayOfWeek != "Tuesday" {
			t.Fatalf("expected Tuesday, got %s", report.DayOfWeek)
		}
		if len(report.Rooms) != 1 || report.Rooms[0].Room.ID != "room-1" {
			t.Fatalf("expected only the active room, got %+v", report.Rooms)
		}
		if !slices.Equal(report.Rooms[0].AvailableSlots, []string{"09:00"}) {
			t.Fatalf("expected 09:00 free in room-1, got %v", report.Rooms[0].AvailableSlots)
		}
		if report.Summary.TotalRooms != 1 || report.Summary.FullyAvailableRooms != 0 {
			t.Fatalf("unexpected summary: %+v", report.Summary)
		}
		if report.Summary.AvailableHosts != 1 || report.Hosts[0].Host.ID != "host-1" {
			t.Fatalf("unexpected hosts: %+v", report.Hosts)
		}
	})

	t.Run("rejects dates outside the schedule", func(t *testing.T) {
		t.Parallel()

		svc := matchingFixture()
		// 2026-09-02 is a Wednesday.
		_, err := svc.MatchBrandSchedule(context.Background(), MatchBrandScheduleParams{
			Principal:  adminPrincipal,
			ScheduleID: "bs-1",
			Date:       "2026-09-02",
		})
		var mismatch *matching.DayMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected DayMismatchError, got %v", err)
		}
		if mismatch.DayOfWeek != "Wednesday" || !slices.Equal(mismatch.ScheduledDays, []string{"Tuesday"}) {
			t.Fatalf("unexpected mismatch detail: %+v", mismatch)
		}
	})

	t.Run("fails for unknown schedules", func(t *testing.T) {
		t.Parallel()

		svc := matchingFixture()
		_, err := svc.MatchBrandSchedule(context.Background(), MatchBrandScheduleParams{
			Principal:  adminPrincipal,
			ScheduleID: "bs-missing",
			Date:       "2026-09-01",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
