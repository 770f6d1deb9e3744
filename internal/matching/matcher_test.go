package matching

import (
	"errors"
	"slices"
	"testing"
)

func matcherFixture() (ScheduleTemplate, []RoomProfile, []HostProfile, *Index) {
	schedule := ScheduleTemplate{
		ID:         "bs-1",
		BrandID:    "brand-1",
		BrandName:  "Glow Cosmetics",
		DaysOfWeek: []string{"Monday", "Wednesday"},
		TimeSlots:  []string{"10:00", "11:00"},
	}
	rooms := []RoomProfile{
		{ID: "room-1", Name: "Studio A", IsActive: true},
		{ID: "room-2", Name: "Studio B", IsActive: true},
		{ID: "room-3", Name: "Storage", IsActive: false},
	}
	hosts := []HostProfile{
		{ID: "host-1", Name: "Alice", Affinity: Flexible()},
		{ID: "host-2", Name: "Bob", Affinity: ExclusiveTo("brand-9")},
	}
	// 2026-09-02 is a Wednesday.
	ix := NewIndex("2026-09-02", Snapshot{
		Availability: []AvailabilityRecord{
			{ID: "av-1", HostID: "host-1", Date: "2026-09-02", TimeSlots: []string{"10:00", "11:00"}},
			{ID: "av-2", HostID: "host-2", Date: "2026-09-02", TimeSlots: []string{"10:00", "11:00"}},
		},
		Assignments: []AssignmentRecord{
			{ID: "as-1", RoomID: "room-2", HostID: "host-9", Date: "2026-09-02", TimeSlots: []string{"10:00"}},
		},
	})
	return schedule, rooms, hosts, ix
}

func TestMatch_ReportsRoomsHostsAndSummary(t *testing.T) {
	t.Parallel()

	schedule, rooms, hosts, ix := matcherFixture()
	report, err := NewMatcher().Match(schedule, "2026-09-02", rooms, hosts, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.DayOfWeek != "Wednesday" {
		t.Fatalf("expected Wednesday, got %s", report.DayOfWeek)
	}
	if len(report.Rooms) != 2 {
		t.Fatalf("expected inactive room excluded, got %d rooms", len(report.Rooms))
	}

	studioA := report.Rooms[0]
	if !studioA.IsFullyAvailable || !slices.Equal(studioA.AvailableSlots, []string{"10:00", "11:00"}) {
		t.Fatalf("unexpected match for room-1: %+v", studioA)
	}
	studioB := report.Rooms[1]
	if studioB.IsFullyAvailable || !slices.Equal(studioB.AvailableSlots, []string{"11:00"}) {
		t.Fatalf("unexpected match for room-2: %+v", studioB)
	}

	if len(report.Hosts) != 1 || report.Hosts[0].Host.ID != "host-1" {
		t.Fatalf("expected only the compatible host, got %+v", report.Hosts)
	}

	summary := report.Summary
	if summary.TotalRooms != 2 || summary.AvailableRooms != 2 || summary.FullyAvailableRooms != 1 {
		t.Fatalf("unexpected room summary: %+v", summary)
	}
	if summary.TotalHosts != 2 || summary.AvailableHosts != 1 || summary.FullyAvailableHosts != 1 {
		t.Fatalf("unexpected host summary: %+v", summary)
	}
}

func TestMatch_ExcludesFullyOccupiedRooms(t *testing.T) {
	t.Parallel()

	schedule, rooms, hosts, _ := matcherFixture()
	ix := NewIndex("2026-09-02", Snapshot{
		Assignments: []AssignmentRecord{
			{ID: "as-1", RoomID: "room-2", HostID: "host-9", Date: "2026-09-02", TimeSlots: []string{"10:00", "11:00"}},
		},
	})

	report, err := NewMatcher().Match(schedule, "2026-09-02", rooms, hosts, ix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Rooms) != 1 || report.Rooms[0].Room.ID != "room-1" {
		t.Fatalf("expected the occupied room dropped, got %+v", report.Rooms)
	}
	if report.Summary.TotalRooms != 2 || report.Summary.AvailableRooms != 1 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
}

func TestMatch_RejectsDateOutsideScheduledDays(t *testing.T) {
	t.Parallel()

	schedule, rooms, hosts, _ := matcherFixture()
	// 2026-09-03 is a Thursday.
	ix := NewIndex("2026-09-03", Snapshot{})

	_, err := NewMatcher().Match(schedule, "2026-09-03", rooms, hosts, ix)
	var mismatch *DayMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DayMismatchError, got %v", err)
	}
	if mismatch.DayOfWeek != "Thursday" {
		t.Fatalf("expected Thursday, got %s", mismatch.DayOfWeek)
	}
	if !slices.Equal(mismatch.ScheduledDays, []string{"Monday", "Wednesday"}) {
		t.Fatalf("unexpected scheduled days: %v", mismatch.ScheduledDays)
	}
}

func TestMatch_RejectsMalformedDate(t *testing.T) {
	t.Parallel()

	schedule, rooms, hosts, ix := matcherFixture()
	if _, err := NewMatcher().Match(schedule, "09/02/2026", rooms, hosts, ix); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestWeekdayOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date string
		want string
	}{
		{"2026-08-30", "Sunday"},
		{"2026-08-31", "Monday"},
		{"2026-09-05", "Saturday"},
	}
	for _, tc := range cases {
		got, err := WeekdayOf(tc.date)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("expected %s for %s, got %s", tc.want, tc.date, got)
		}
	}
}
