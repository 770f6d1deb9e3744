package matching

import (
	"slices"
	"testing"
)

func finderFixture() (*Index, []HostProfile) {
	ix := NewIndex("2026-09-01", Snapshot{
		Availability: []AvailabilityRecord{
			{ID: "av-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00", "11:00"}},
			{ID: "av-2", HostID: "host-2", Date: "2026-09-01", TimeSlots: []string{"10:00"}},
			{ID: "av-3", HostID: "host-3", Date: "2026-09-01", TimeSlots: []string{"15:00"}},
			{ID: "av-4", HostID: "host-4", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00"}},
		},
	})
	hosts := []HostProfile{
		{ID: "host-1", Name: "Alice", Affinity: Flexible()},
		{ID: "host-2", Name: "Bob", Affinity: Flexible()},
		{ID: "host-3", Name: "Carol", Affinity: Flexible()},
		{ID: "host-4", Name: "Dave", Affinity: ExclusiveTo("brand-2")},
	}
	return ix, hosts
}

func TestFind_AnnotatesPartialAndFullMatches(t *testing.T) {
	t.Parallel()

	ix, hosts := finderFixture()
	finder := NewFinder(RequireAnyOverlap)

	matches := finder.Find(hosts, "brand-1", []string{"09:00", "10:00"}, ix)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	alice := matches[0]
	if alice.Host.ID != "host-1" || !alice.IsFullyAvailable {
		t.Fatalf("expected host-1 fully available first, got %+v", alice)
	}
	if !slices.Equal(alice.MatchingSlots, []string{"09:00", "10:00"}) {
		t.Fatalf("unexpected matching slots for host-1: %v", alice.MatchingSlots)
	}
	if !slices.Equal(alice.AvailableSlots, []string{"09:00", "10:00", "11:00"}) {
		t.Fatalf("unexpected available slots for host-1: %v", alice.AvailableSlots)
	}

	bob := matches[1]
	if bob.Host.ID != "host-2" || bob.IsFullyAvailable {
		t.Fatalf("expected host-2 partially available second, got %+v", bob)
	}
	if !slices.Equal(bob.MatchingSlots, []string{"10:00"}) {
		t.Fatalf("unexpected matching slots for host-2: %v", bob.MatchingSlots)
	}
}

func TestFind_ExcludesIncompatibleAndNonOverlappingHosts(t *testing.T) {
	t.Parallel()

	ix, hosts := finderFixture()
	finder := NewFinder(RequireAnyOverlap)

	matches := finder.Find(hosts, "brand-1", []string{"09:00"}, ix)
	for _, match := range matches {
		if match.Host.ID == "host-3" {
			t.Fatalf("expected host-3 excluded for no overlapping slot")
		}
		if match.Host.ID == "host-4" {
			t.Fatalf("expected host-4 excluded for brand exclusivity")
		}
	}
}

func TestFind_ExclusiveHostIncludedForListedBrand(t *testing.T) {
	t.Parallel()

	ix, hosts := finderFixture()
	finder := NewFinder(RequireAnyOverlap)

	matches := finder.Find(hosts, "brand-2", []string{"09:00", "10:00"}, ix)
	found := false
	for _, match := range matches {
		if match.Host.ID == "host-4" {
			found = true
			if !match.IsFullyAvailable {
				t.Fatalf("expected host-4 fully available, got %+v", match)
			}
		}
	}
	if !found {
		t.Fatalf("expected host-4 in matches for its listed brand")
	}
}

func TestFind_ExcludesHostsBookedDuringRequestedSlots(t *testing.T) {
	t.Parallel()

	// host-1 declared 09:00-11:00 but is already committed elsewhere at
	// 10:00; a request touching 10:00 must drop them entirely, not shrink
	// the match to the remaining free overlap.
	ix := NewIndex("2026-09-01", Snapshot{
		Availability: []AvailabilityRecord{
			{ID: "av-1", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"09:00", "10:00", "11:00"}},
		},
		Assignments: []AssignmentRecord{
			{ID: "as-1", RoomID: "room-9", HostID: "host-1", Date: "2026-09-01", TimeSlots: []string{"10:00"}},
		},
	})
	hosts := []HostProfile{{ID: "host-1", Name: "Alice", Affinity: Flexible()}}
	finder := NewFinder(RequireAnyOverlap)

	if matches := finder.Find(hosts, "brand-1", []string{"09:00", "10:00"}, ix); len(matches) != 0 {
		t.Fatalf("expected booked host excluded, got %+v", matches)
	}

	// A request clear of the booked hour keeps the host, with the booked
	// slot absent from their free set.
	matches := finder.Find(hosts, "brand-1", []string{"09:00"}, ix)
	if len(matches) != 1 {
		t.Fatalf("expected host included for non-conflicting request, got %+v", matches)
	}
	if !slices.Equal(matches[0].AvailableSlots, []string{"09:00", "11:00"}) {
		t.Fatalf("unexpected free slots: %v", matches[0].AvailableSlots)
	}
}

func TestFind_PreservesRosterOrder(t *testing.T) {
	t.Parallel()

	ix, hosts := finderFixture()
	finder := NewFinder(RequireAnyOverlap)

	matches := finder.Find(hosts, "brand-1", []string{"09:00", "10:00", "15:00"}, ix)
	var ids []string
	for _, match := range matches {
		ids = append(ids, match.Host.ID)
	}
	want := []string{"host-1", "host-2", "host-3"}
	if !slices.Equal(ids, want) {
		t.Fatalf("expected roster order %v, got %v", want, ids)
	}
}

func TestFind_FullCoveragePolicyDropsPartialHosts(t *testing.T) {
	t.Parallel()

	ix, hosts := finderFixture()
	finder := NewFinder(RequireFullCoverage)

	matches := finder.Find(hosts, "brand-1", []string{"09:00", "10:00"}, ix)
	if len(matches) != 1 || matches[0].Host.ID != "host-1" {
		t.Fatalf("expected only host-1 under full coverage, got %+v", matches)
	}
}
