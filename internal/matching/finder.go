package matching

import "github.com/example/studio-scheduler/internal/timeslot"

// HostMatch is a roster host that could serve a request, annotated with
// how much of the request they cover.
type HostMatch struct {
	Host HostProfile

	// AvailableSlots is every slot the host is free for on the day,
	// regardless of the request.
	AvailableSlots []string
	// MatchingSlots is the intersection of the host's free slots with the
	// requested slots.
	MatchingSlots []string
	// IsFullyAvailable reports whether the host covers every requested
	// slot.
	IsFullyAvailable bool
}

// Finder lists hosts able to serve a brand's request on a day.
type Finder struct {
	policy SlotPolicy
}

// NewFinder builds a finder using the given inclusion policy. Discovery
// callers pass RequireAnyOverlap.
func NewFinder(policy SlotPolicy) *Finder {
	return &Finder{policy: policy}
}

// Find returns the hosts compatible with the brand whose free slots
// satisfy the policy against the requested slots. A host already booked
// into any room during one of the requested slots is excluded outright,
// even when their remaining free slots still overlap the request.
// Results preserve the roster order of hosts; ranking is left to the
// caller.
func (f *Finder) Find(hosts []HostProfile, brandID string, requestedSlots []string, ix *Index) []HostMatch {
	requested := timeslot.FromSlice(requestedSlots)
	matches := make([]HostMatch, 0, len(hosts))
	for _, host := range hosts {
		if !host.Affinity.IsCompatible(brandID) {
			continue
		}
		if timeslot.AnyOverlap(ix.HostBookedSlots(host.ID), requested) {
			continue
		}
		free := ix.HostFreeSlots(host.ID)
		if !f.policy(free, requested) {
			continue
		}
		matches = append(matches, HostMatch{
			Host:             host,
			AvailableSlots:   free.Slice(),
			MatchingSlots:    timeslot.Intersect(free, requested).Slice(),
			IsFullyAvailable: timeslot.IsSubset(requested, free),
		})
	}
	return matches
}
