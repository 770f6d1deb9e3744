package application

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func availabilityFixture() (*AvailabilityService, *availabilityRepoStub, *assignmentRepoStub) {
	users := newUserRepoStub(
		User{ID: "host-1", Email: "alice@example.com", Name: "Alice", Role: RoleHost},
		User{ID: "host-2", Email: "bob@example.com", Name: "Bob", Role: RoleHost},
	)
	availability := newAvailabilityRepoStub()
	assignments := newAssignmentRepoStub()
	svc := NewAvailabilityService(availability, assignments, users, sequentialIDs("availability"), fixedNow)
	return svc, availability, assignments
}

func TestAvailabilityService_SubmitAvailability(t *testing.T) {
	t.Parallel()

	t.Run("records a valid declaration", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := availabilityFixture()
		record, err := svc.SubmitAvailability(context.Background(), SubmitAvailabilityParams{
			Principal: hostPrincipal,
			Date:      "2026-09-01",
			TimeSlots: []string{"10:00", "09:00", "10:00"},
		})
		if err != nil {
			t.Fatalf("SubmitAvailability failed: %v", err)
		}
		if record.HostName != "Alice" {
			t.Fatalf("expected host name resolved, got %q", record.HostName)
		}
		if !slices.Equal(record.TimeSlots, []string{"09:00", "10:00"}) {
			t.Fatalf("expected deduplicated sorted slots, got %v", record.TimeSlots)
		}
		if len(repo.records) != 1 {
			t.Fatalf("expected one record, got %d", len(repo.records))
		}
	})

	t.Run("requires at least two slots", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := availabilityFixture()
		_, err := svc.SubmitAvailability(context.Background(), SubmitAvailabilityParams{
			Principal: hostPrincipal,
			Date:      "2026-09-01",
			TimeSlots: []string{"09:00"},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["timeSlots"]; !ok {
			t.Fatalf("expected timeSlots field error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects non-canonical slots and malformed dates", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := availabilityFixture()
		_, err := svc.SubmitAvailability(context.Background(), SubmitAvailabilityParams{
			Principal: hostPrincipal,
			Date:      "Sep 1",
			TimeSlots: []string{"09:30", "25:00"},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["date"]; !ok {
			t.Fatalf("expected date field error, got %v", vErr.FieldErrors)
		}
	})
}

func TestAvailabilityService_ListAvailability(t *testing.T) {
	t.Parallel()

	svc, repo, _ := availabilityFixture()
	repo.records = []HostAvailability{
		{ID: "av-1", HostID: "host-1", Date: "2026-09-02"},
		{ID: "av-2", HostID: "host-2", Date: "2026-09-01"},
		{ID: "av-3", HostID: "host-1", Date: "2026-09-01"},
	}

	mine, err := svc.ListAvailability(context.Background(), hostPrincipal)
	if err != nil {
		t.Fatalf("ListAvailability failed: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "av-3" || mine[1].ID != "av-1" {
		t.Fatalf("expected own records sorted by date, got %+v", mine)
	}

	all, err := svc.ListAvailability(context.Background(), adminPrincipal)
	if err != nil {
		t.Fatalf("ListAvailability failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all records for admin, got %d", len(all))
	}
}

func TestAvailabilityService_DeleteAvailability(t *testing.T) {
	t.Parallel()

	t.Run("hosts may delete their own unbooked records", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := availabilityFixture()
		repo.records = []HostAvailability{
			{ID: "av-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00"}},
		}

		if err := svc.DeleteAvailability(context.Background(), hostPrincipal, "av-1"); err != nil {
			t.Fatalf("DeleteAvailability failed: %v", err)
		}
		if len(repo.records) != 0 {
			t.Fatalf("expected record removed")
		}
	})

	t.Run("refuses deletion while hours are booked", func(t *testing.T) {
		t.Parallel()

		svc, repo, assignments := availabilityFixture()
		repo.records = []HostAvailability{
			{ID: "av-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00"}},
		}
		assignments.records = []Assignment{
			{ID: "as-1", RoomID: "room-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"10:00"}},
		}

		err := svc.DeleteAvailability(context.Background(), hostPrincipal, "av-1")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(repo.records) != 1 {
			t.Fatalf("expected record preserved")
		}
	})

	t.Run("admins may always delete", func(t *testing.T) {
		t.Parallel()

		svc, repo, assignments := availabilityFixture()
		repo.records = []HostAvailability{
			{ID: "av-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"09:00"}},
		}
		assignments.records = []Assignment{
			{ID: "as-1", RoomID: "room-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"09:00"}},
		}

		if err := svc.DeleteAvailability(context.Background(), adminPrincipal, "av-1"); err != nil {
			t.Fatalf("DeleteAvailability failed: %v", err)
		}
	})

	t.Run("rejects other hosts' records", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := availabilityFixture()
		repo.records = []HostAvailability{
			{ID: "av-1", HostID: "host-2", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00"}},
		}

		if err := svc.DeleteAvailability(context.Background(), hostPrincipal, "av-1"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestAvailabilityService_HostScheduleStats(t *testing.T) {
	t.Parallel()

	svc, repo, assignments := availabilityFixture()
	repo.records = []HostAvailability{
		{ID: "av-1", HostID: "host-1", HostName: "Alice", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00", "11:00"}},
		{ID: "av-2", HostID: "host-1", HostName: "Alice", Date: "2026-09-02", TimeSlots: []string{"09:00"}},
		{ID: "av-3", HostID: "host-2", HostName: "Bob", Date: "2026-09-01", TimeSlots: []string{"12:00", "13:00"}},
	}
	assignments.records = []Assignment{
		{ID: "as-1", RoomID: "room-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00"}},
	}

	if _, err := svc.HostScheduleStats(context.Background(), hostPrincipal); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for host, got %v", err)
	}

	stats, err := svc.HostScheduleStats(context.Background(), adminPrincipal)
	if err != nil {
		t.Fatalf("HostScheduleStats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for two hosts, got %d", len(stats))
	}

	alice := stats[0]
	if alice.HostID != "host-1" || alice.TotalDays != 2 || alice.TotalSlots != 4 || alice.AssignedSlots != 2 || alice.RemainingSlots != 2 {
		t.Fatalf("unexpected stats for host-1: %+v", alice)
	}
	bob := stats[1]
	if bob.HostID != "host-2" || bob.TotalSlots != 2 || bob.AssignedSlots != 0 {
		t.Fatalf("unexpected stats for host-2: %+v", bob)
	}
}
