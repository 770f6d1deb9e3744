package timeslot

import (
	"slices"
	"testing"
)

func TestNew_DropsEmptyAndDuplicates(t *testing.T) {
	t.Parallel()

	set := New("09:00", "", "10:00", "09:00")
	if set.Len() != 2 {
		t.Fatalf("expected 2 slots, got %d", set.Len())
	}
	if !set.Contains("09:00") || !set.Contains("10:00") {
		t.Fatalf("expected members 09:00 and 10:00, got %v", set.Slice())
	}
}

func TestSlice_SortedChronologically(t *testing.T) {
	t.Parallel()

	set := New("22:00", "09:00", "15:00")
	got := set.Slice()
	want := []string{"09:00", "15:00", "22:00"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIntersect(t *testing.T) {
	t.Parallel()

	a := New("09:00", "10:00", "11:00")
	b := New("10:00", "11:00", "12:00")

	got := Intersect(a, b).Slice()
	want := []string{"10:00", "11:00"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if Intersect(a, New()).Len() != 0 {
		t.Fatalf("expected empty intersection with empty set")
	}
}

func TestDifference(t *testing.T) {
	t.Parallel()

	a := New("09:00", "10:00", "11:00")
	b := New("10:00")

	got := Difference(a, b).Slice()
	want := []string{"09:00", "11:00"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIsSubset(t *testing.T) {
	t.Parallel()

	if !IsSubset(New("09:00"), New("09:00", "10:00")) {
		t.Fatalf("expected subset to hold")
	}
	if IsSubset(New("09:00", "11:00"), New("09:00", "10:00")) {
		t.Fatalf("expected subset to fail for missing member")
	}
	if !IsSubset(New(), New("09:00")) {
		t.Fatalf("expected empty set to be a subset of everything")
	}
}

func TestAnyOverlap(t *testing.T) {
	t.Parallel()

	if !AnyOverlap(New("09:00", "10:00"), New("10:00", "12:00")) {
		t.Fatalf("expected overlap on shared slot")
	}
	if AnyOverlap(New("09:00"), New("10:00")) {
		t.Fatalf("expected no overlap for disjoint sets")
	}
	if AnyOverlap(New(), New("10:00")) {
		t.Fatalf("expected no overlap with empty set")
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	slots := Canonical()
	if len(slots) != 14 {
		t.Fatalf("expected 14 canonical slots, got %d", len(slots))
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "22:00" {
		t.Fatalf("unexpected canonical bounds: %s .. %s", slots[0], slots[len(slots)-1])
	}
	if !IsCanonical("14:00") {
		t.Fatalf("expected 14:00 to be canonical")
	}
	if IsCanonical("14:30") {
		t.Fatalf("expected 14:30 to be rejected")
	}
}
