// Package timeslot models bookable time as discrete canonical hour labels
// such as "09:00". Two slots are either identical or disjoint; there is no
// partial overlap, no duration other than one hour, and no cross-midnight
// spanning. Labels are compared by exact string equality only; dates and
// times are opaque wall-clock tokens, never converted between timezones.
package timeslot

import "sort"

// Set is an unordered collection of slot labels.
type Set map[string]struct{}

// New builds a Set from the provided labels, dropping empty strings and
// duplicates.
func New(slots ...string) Set {
	set := make(Set, len(slots))
	for _, slot := range slots {
		if slot == "" {
			continue
		}
		set[slot] = struct{}{}
	}
	return set
}

// FromSlice builds a Set from a slice of labels.
func FromSlice(slots []string) Set {
	return New(slots...)
}

// Contains reports whether the slot is a member of the set.
func (s Set) Contains(slot string) bool {
	_, ok := s[slot]
	return ok
}

// Len returns the number of slots in the set.
func (s Set) Len() int {
	return len(s)
}

// Slice returns the members sorted ascending. Lexicographic order matches
// chronological order for canonical "HH:00" labels.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for slot := range s {
		out = append(out, slot)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the slots present in both sets.
func Intersect(a, b Set) Set {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(Set)
	for slot := range a {
		if b.Contains(slot) {
			out[slot] = struct{}{}
		}
	}
	return out
}

// Difference returns the slots of a that are not in b.
func Difference(a, b Set) Set {
	out := make(Set, len(a))
	for slot := range a {
		if !b.Contains(slot) {
			out[slot] = struct{}{}
		}
	}
	return out
}

// Union returns the slots present in either set.
func Union(a, b Set) Set {
	out := make(Set, len(a)+len(b))
	for slot := range a {
		out[slot] = struct{}{}
	}
	for slot := range b {
		out[slot] = struct{}{}
	}
	return out
}

// IsSubset reports whether every slot of a is in b.
func IsSubset(a, b Set) bool {
	if len(a) > len(b) {
		return false
	}
	for slot := range a {
		if !b.Contains(slot) {
			return false
		}
	}
	return true
}

// AnyOverlap reports whether the two sets share at least one slot.
func AnyOverlap(a, b Set) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for slot := range a {
		if b.Contains(slot) {
			return true
		}
	}
	return false
}

// canonicalSlots is the fixed list of bookable hours offered by the studio.
var canonicalSlots = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
	"21:00", "22:00",
}

// Canonical returns the bookable slot labels in chronological order.
// Callers must not mutate the returned slice.
func Canonical() []string {
	return canonicalSlots
}

// IsCanonical reports whether the label is one of the bookable hours.
func IsCanonical(slot string) bool {
	for _, canonical := range canonicalSlots {
		if slot == canonical {
			return true
		}
	}
	return false
}
