package matching

import (
	"fmt"
	"time"

	"github.com/example/studio-scheduler/internal/timeslot"
)

// DayMismatchError reports that a schedule was matched against a date
// whose weekday the schedule does not run on.
type DayMismatchError struct {
	Date          string
	DayOfWeek     string
	ScheduledDays []string
}

func (e *DayMismatchError) Error() string {
	return fmt.Sprintf("schedule does not run on %s (%s)", e.DayOfWeek, e.Date)
}

// RoomMatch is one active room's fit for a schedule template on a day.
type RoomMatch struct {
	Room RoomProfile

	// AvailableSlots is the template slots still open in the room.
	AvailableSlots []string
	// IsFullyAvailable reports whether every template slot is open.
	IsFullyAvailable bool
}

// MatchSummary gives the headline counts of a match report.
type MatchSummary struct {
	TotalRooms          int
	AvailableRooms      int
	FullyAvailableRooms int
	TotalHosts          int
	AvailableHosts      int
	FullyAvailableHosts int
}

// MatchReport is the full result of projecting a brand schedule onto one
// calendar day.
type MatchReport struct {
	Schedule  ScheduleTemplate
	Date      string
	DayOfWeek string
	Rooms     []RoomMatch
	Hosts     []HostMatch
	Summary   MatchSummary
}

// Matcher projects brand schedule templates onto concrete dates.
type Matcher struct {
	finder *Finder
}

// NewMatcher builds a matcher. Host inclusion uses the any-overlap
// discovery policy; full coverage is reported per host, not filtered on.
func NewMatcher() *Matcher {
	return &Matcher{finder: NewFinder(RequireAnyOverlap)}
}

// WeekdayOf returns the English weekday name of a YYYY-MM-DD date. Dates
// are wall-clock tokens; no timezone conversion is applied.
func WeekdayOf(date string) (string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.Weekday().String(), nil
}

// Match evaluates the schedule against the date. Inactive rooms are
// skipped entirely. A date falling outside the schedule's weekdays
// returns a *DayMismatchError.
func (m *Matcher) Match(schedule ScheduleTemplate, date string, rooms []RoomProfile, hosts []HostProfile, ix *Index) (*MatchReport, error) {
	dayOfWeek, err := WeekdayOf(date)
	if err != nil {
		return nil, err
	}
	if !containsDay(schedule.DaysOfWeek, dayOfWeek) {
		return nil, &DayMismatchError{
			Date:          date,
			DayOfWeek:     dayOfWeek,
			ScheduledDays: schedule.DaysOfWeek,
		}
	}

	template := timeslot.FromSlice(schedule.TimeSlots)
	report := &MatchReport{
		Schedule:  schedule,
		Date:      date,
		DayOfWeek: dayOfWeek,
	}

	for _, room := range rooms {
		if !room.IsActive {
			continue
		}
		report.Summary.TotalRooms++
		free := ix.RoomFreeSlots(room.ID, template)
		if free.Len() == 0 {
			continue
		}
		match := RoomMatch{
			Room:             room,
			AvailableSlots:   free.Slice(),
			IsFullyAvailable: free.Len() == template.Len(),
		}
		report.Rooms = append(report.Rooms, match)
		report.Summary.AvailableRooms++
		if match.IsFullyAvailable {
			report.Summary.FullyAvailableRooms++
		}
	}

	report.Hosts = m.finder.Find(hosts, schedule.BrandID, schedule.TimeSlots, ix)
	report.Summary.TotalHosts = len(hosts)
	report.Summary.AvailableHosts = len(report.Hosts)
	for _, host := range report.Hosts {
		if host.IsFullyAvailable {
			report.Summary.FullyAvailableHosts++
		}
	}

	return report, nil
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
