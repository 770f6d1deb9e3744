// Package matching implements the availability, compatibility, and
// conflict-validation core of the studio scheduler. Everything in this
// package is pure computation over point-in-time snapshots supplied by the
// caller; nothing here performs I/O or mutates shared state.
package matching

import "time"

// AvailabilityRecord is a host-submitted declaration of free hours for one
// calendar day. More than one record may exist for the same (host, date)
// pair; consumers must union them.
type AvailabilityRecord struct {
	ID        string
	HostID    string
	HostName  string
	Date      string
	TimeSlots []string
	CreatedAt time.Time
}

// AssignmentRecord is a committed booking of a host to a room for a brand
// on one calendar day. Records are immutable once written.
type AssignmentRecord struct {
	ID        string
	RoomID    string
	RoomName  string
	Date      string
	BrandID   string
	BrandName string
	HostID    string
	HostName  string
	TimeSlots []string
	CreatedAt time.Time
	CreatedBy string
}

// HostProfile is the roster entry the finder and matcher filter over.
type HostProfile struct {
	ID       string
	Email    string
	Name     string
	Affinity BrandAffinity
}

// RoomProfile is a physical streaming room. Inactive rooms are excluded
// from matching results.
type RoomProfile struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
}

// ScheduleTemplate is a brand's recurring weekly pattern: weekday names
// plus a slot template. It is projected onto a concrete date by
// MatchSchedule; it is not itself a booking.
type ScheduleTemplate struct {
	ID         string
	BrandID    string
	BrandName  string
	DaysOfWeek []string
	TimeSlots  []string
}

// Snapshot bundles the availability and assignment state the core computes
// over. Callers fetch it from persistence; the core never fetches.
type Snapshot struct {
	Availability []AvailabilityRecord
	Assignments  []AssignmentRecord
}
