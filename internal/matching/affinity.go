package matching

import "github.com/example/studio-scheduler/internal/timeslot"

// BrandAffinityKind distinguishes hosts that accept any brand from hosts
// restricted to an explicit brand list.
type BrandAffinityKind int

const (
	// AffinityFlexible means the host works with every brand.
	AffinityFlexible BrandAffinityKind = iota
	// AffinityExclusive means the host works only with the listed brands.
	AffinityExclusive
)

// BrandAffinity is a host's brand compatibility declaration. The zero value
// is flexible; an exclusive affinity carries the permitted brand IDs.
type BrandAffinity struct {
	kind   BrandAffinityKind
	brands timeslot.Set
}

// Flexible returns an affinity compatible with every brand.
func Flexible() BrandAffinity {
	return BrandAffinity{kind: AffinityFlexible}
}

// ExclusiveTo returns an affinity restricted to the given brand IDs. An
// empty list degrades to Flexible, matching how an absent tag list is
// interpreted on ingest.
func ExclusiveTo(brandIDs ...string) BrandAffinity {
	set := timeslot.New(brandIDs...)
	if set.Len() == 0 {
		return Flexible()
	}
	return BrandAffinity{kind: AffinityExclusive, brands: set}
}

// AffinityFromTags converts a stored tag list into an affinity. Nil or
// empty lists mean the host has not restricted themselves to any brand.
func AffinityFromTags(tags []string) BrandAffinity {
	return ExclusiveTo(tags...)
}

// Kind returns the affinity variant.
func (a BrandAffinity) Kind() BrandAffinityKind {
	if a.kind == AffinityExclusive && a.brands.Len() == 0 {
		return AffinityFlexible
	}
	return a.kind
}

// IsCompatible reports whether the host may stream for the brand.
func (a BrandAffinity) IsCompatible(brandID string) bool {
	if a.Kind() == AffinityFlexible {
		return true
	}
	return a.brands.Contains(brandID)
}

// Brands returns the permitted brand IDs of an exclusive affinity, sorted.
// Flexible affinities return nil.
func (a BrandAffinity) Brands() []string {
	if a.Kind() == AffinityFlexible {
		return nil
	}
	return a.brands.Slice()
}
