package matching

import (
	"slices"
	"testing"
)

func TestFlexibleAffinity_AcceptsEveryBrand(t *testing.T) {
	t.Parallel()

	affinity := Flexible()
	for _, brandID := range []string{"brand-1", "brand-2", ""} {
		if !affinity.IsCompatible(brandID) {
			t.Fatalf("expected flexible host to accept brand %q", brandID)
		}
	}
	if affinity.Brands() != nil {
		t.Fatalf("expected no brand list for flexible affinity, got %v", affinity.Brands())
	}
}

func TestExclusiveAffinity_AcceptsOnlyListedBrands(t *testing.T) {
	t.Parallel()

	affinity := ExclusiveTo("brand-1", "brand-2")
	if !affinity.IsCompatible("brand-1") {
		t.Fatalf("expected listed brand to be accepted")
	}
	if affinity.IsCompatible("brand-3") {
		t.Fatalf("expected unlisted brand to be rejected")
	}

	want := []string{"brand-1", "brand-2"}
	if got := affinity.Brands(); !slices.Equal(got, want) {
		t.Fatalf("expected brands %v, got %v", want, got)
	}
}

func TestAffinityFromTags_EmptyMeansFlexible(t *testing.T) {
	t.Parallel()

	for _, tags := range [][]string{nil, {}, {""}} {
		affinity := AffinityFromTags(tags)
		if affinity.Kind() != AffinityFlexible {
			t.Fatalf("expected tags %v to produce a flexible affinity", tags)
		}
		if !affinity.IsCompatible("any-brand") {
			t.Fatalf("expected tags %v to accept any brand", tags)
		}
	}
}
