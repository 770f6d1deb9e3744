package matching

import "github.com/example/studio-scheduler/internal/timeslot"

// Index answers slot-occupancy questions for one calendar day from a
// snapshot of availability and assignment records. All methods are linear
// scans over the snapshot; callers pre-filter persistence reads by date so
// the scanned sets stay small.
type Index struct {
	date string
	snap Snapshot
}

// NewIndex builds an index over the snapshot for the given date. Records
// for other dates in the snapshot are ignored.
func NewIndex(date string, snap Snapshot) *Index {
	return &Index{date: date, snap: snap}
}

// Date returns the calendar day the index answers for.
func (ix *Index) Date() string {
	return ix.date
}

// HostDeclaredSlots returns the union of every availability record the
// host submitted for the day. Duplicate records for the same (host, date)
// are unioned rather than rejected, so a stray double submission widens
// availability instead of corrupting it.
func (ix *Index) HostDeclaredSlots(hostID string) timeslot.Set {
	declared := timeslot.New()
	for _, rec := range ix.snap.Availability {
		if rec.HostID != hostID || rec.Date != ix.date {
			continue
		}
		declared = timeslot.Union(declared, timeslot.FromSlice(rec.TimeSlots))
	}
	return declared
}

// HostBookedSlots returns every slot the host is already assigned to on
// the day, across all rooms.
func (ix *Index) HostBookedSlots(hostID string) timeslot.Set {
	booked := timeslot.New()
	for _, rec := range ix.snap.Assignments {
		if rec.HostID != hostID || rec.Date != ix.date {
			continue
		}
		booked = timeslot.Union(booked, timeslot.FromSlice(rec.TimeSlots))
	}
	return booked
}

// HostFreeSlots returns the slots the host declared and has not yet been
// booked into. This is the set a new assignment must fit inside.
func (ix *Index) HostFreeSlots(hostID string) timeslot.Set {
	return timeslot.Difference(ix.HostDeclaredSlots(hostID), ix.HostBookedSlots(hostID))
}

// RoomOccupiedSlots returns every slot already assigned in the room on
// the day.
func (ix *Index) RoomOccupiedSlots(roomID string) timeslot.Set {
	occupied := timeslot.New()
	for _, rec := range ix.snap.Assignments {
		if rec.RoomID != roomID || rec.Date != ix.date {
			continue
		}
		occupied = timeslot.Union(occupied, timeslot.FromSlice(rec.TimeSlots))
	}
	return occupied
}

// RoomFreeSlots returns the slots of the template that are still open in
// the room on the day.
func (ix *Index) RoomFreeSlots(roomID string, template timeslot.Set) timeslot.Set {
	return timeslot.Difference(template, ix.RoomOccupiedSlots(roomID))
}

// RoomAssignments returns the room's assignment records for the day, in
// snapshot order.
func (ix *Index) RoomAssignments(roomID string) []AssignmentRecord {
	var out []AssignmentRecord
	for _, rec := range ix.snap.Assignments {
		if rec.RoomID == roomID && rec.Date == ix.date {
			out = append(out, rec)
		}
	}
	return out
}
