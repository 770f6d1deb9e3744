package matching

import "github.com/example/studio-scheduler/internal/timeslot"

// SlotPolicy decides whether a host with the given free slots can serve a
// request for the given slots. The booking path and the discovery path
// deliberately use different policies.
type SlotPolicy func(free, requested timeslot.Set) bool

// RequireFullCoverage accepts only when every requested slot is free for
// the host. Committed bookings use this policy so an assignment never
// claims an hour the host did not offer or has already given away.
func RequireFullCoverage(free, requested timeslot.Set) bool {
	return timeslot.IsSubset(requested, free)
}

// RequireAnyOverlap accepts when the host is free for at least one of the
// requested slots. Discovery listings use this policy so partially
// matching hosts still surface, annotated with the slots they cover.
func RequireAnyOverlap(free, requested timeslot.Set) bool {
	return timeslot.AnyOverlap(free, requested)
}
