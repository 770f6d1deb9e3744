package matching

import (
	"fmt"

	"github.com/example/studio-scheduler/internal/timeslot"
)

// Verdict codes, in the order the checks run.
const (
	CodeBrandIncompatible = "BRAND_INCOMPATIBLE"
	CodeRoomSlotOccupied  = "ROOM_SLOT_OCCUPIED"
	CodeHostNotAvailable  = "HOST_NOT_AVAILABLE"
)

// Verdict is the outcome of validating a proposed assignment. A valid
// verdict carries no code or reason; an invalid one names the first check
// that failed plus the detail fields for that check.
type Verdict struct {
	Valid  bool
	Code   string
	Reason string

	// UnavailableSlots lists the requested slots already taken in the
	// room. Set only for CodeRoomSlotOccupied.
	UnavailableSlots []string
	// HostAvailableSlots lists the slots the host could still serve. Set
	// only for CodeHostNotAvailable.
	HostAvailableSlots []string
	// HostBrandTags lists the brands an exclusive host is restricted to.
	// Set only for CodeBrandIncompatible.
	HostBrandTags []string
}

// Proposal is a would-be assignment to validate: one host, one room, one
// brand, one day, one or more slots.
type Proposal struct {
	Host      HostProfile
	BrandID   string
	BrandName string
	RoomID    string
	Date      string
	TimeSlots []string
}

// Validator runs the assignment checks in a fixed order: brand
// compatibility, then room slot occupancy, then host availability. The
// first failing check decides the verdict; later checks do not run.
type Validator struct {
	policy SlotPolicy
}

// NewValidator builds a validator using the given host-availability
// policy. Booking callers pass RequireFullCoverage.
func NewValidator(policy SlotPolicy) *Validator {
	return &Validator{policy: policy}
}

// Validate checks the proposal against the day's index.
func (v *Validator) Validate(p Proposal, ix *Index) Verdict {
	if !p.Host.Affinity.IsCompatible(p.BrandID) {
		return Verdict{
			Code:          CodeBrandIncompatible,
			Reason:        fmt.Sprintf("host %s is not compatible with brand %s", p.Host.Name, p.BrandName),
			HostBrandTags: p.Host.Affinity.Brands(),
		}
	}

	requested := timeslot.FromSlice(p.TimeSlots)

	if taken := timeslot.Intersect(requested, ix.RoomOccupiedSlots(p.RoomID)); taken.Len() > 0 {
		return Verdict{
			Code:             CodeRoomSlotOccupied,
			Reason:           "some requested time slots are already booked in this room",
			UnavailableSlots: taken.Slice(),
		}
	}

	free := ix.HostFreeSlots(p.Host.ID)
	if !v.policy(free, requested) {
		return Verdict{
			Code:               CodeHostNotAvailable,
			Reason:             fmt.Sprintf("host %s is not available for the requested time slots on %s", p.Host.Name, p.Date),
			HostAvailableSlots: free.Slice(),
		}
	}

	return Verdict{Valid: true}
}
