package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/studio-scheduler/internal/matching"
	"github.com/example/studio-scheduler/internal/timeslot"
)

// AvailableHostsParams wraps a host discovery request. RoomID is accepted
// for contract compatibility but does not affect the computation.
type AvailableHostsParams struct {
	Principal Principal
	BrandID   string
	RoomID    string
	Date      string
	TimeSlots []string
}

// SlotAvailability reports one canonical slot's state in a room, with the
// occupying booking when taken.
type SlotAvailability struct {
	TimeSlot    string
	IsAvailable bool
	Assignment  *Assignment
}

// RoomAvailabilityReport is a room's full-day occupancy picture.
type RoomAvailabilityReport struct {
	Room         Room
	Date         string
	Availability []SlotAvailability
}

// MatchBrandScheduleParams wraps a schedule projection request.
type MatchBrandScheduleParams struct {
	Principal  Principal
	ScheduleID string
	Date       string
}

// MatchingService answers discovery questions: which hosts fit a request,
// how occupied a room is, and how a brand schedule lands on a date.
type MatchingService struct {
	availability AvailabilityRepository
	assignments  AssignmentRepository
	rooms        RoomRepository
	schedules    BrandScheduleRepository
	users        UserRepository
	finder       *matching.Finder
	matcher      *matching.Matcher
	logger       *slog.Logger
}

// NewMatchingService constructs a matching service with the provided dependencies.
func NewMatchingService(availability AvailabilityRepository, assignments AssignmentRepository, rooms RoomRepository, schedules BrandScheduleRepository, users UserRepository) *MatchingService {
	return NewMatchingServiceWithLogger(availability, assignments, rooms, schedules, users, nil)
}

// NewMatchingServiceWithLogger constructs a matching service with a specified logger.
func NewMatchingServiceWithLogger(availability AvailabilityRepository, assignments AssignmentRepository, rooms RoomRepository, schedules BrandScheduleRepository, users UserRepository, logger *slog.Logger) *MatchingService {
	return &MatchingService{
		availability: availability,
		assignments:  assignments,
		rooms:        rooms,
		schedules:    schedules,
		users:        users,
		finder:       matching.NewFinder(matching.RequireAnyOverlap),
		matcher:      matching.NewMatcher(),
		logger:       defaultLogger(logger),
	}
}

func (s *MatchingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MatchingService", operation, attrs...)
}

// AvailableHosts lists the hosts compatible with the brand that can cover
// at least one of the requested slots on the date.
func (s *MatchingService) AvailableHosts(ctx context.Context, params AvailableHostsParams) (matches []matching.HostMatch, err error) {
	if s == nil {
		err = fmt.Errorf("MatchingService is nil")
		return
	}
	if s.availability == nil || s.assignments == nil || s.users == nil {
		err = fmt.Errorf("matching repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "AvailableHosts",
		"principal_id", params.Principal.UserID,
		"brand_id", params.BrandID,
		"date", params.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to find available hosts", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(matches)).InfoContext(ctx, "available hosts computed")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	vErr := &ValidationError{}
	if params.BrandID == "" {
		vErr.add("brandId", "brandId is required")
	}
	if _, parseErr := time.Parse("2006-01-02", params.Date); parseErr != nil {
		vErr.add("date", "date must be formatted YYYY-MM-DD")
	}
	if len(params.TimeSlots) == 0 {
		vErr.add("timeSlots", "at least one time slot is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var users []User
	users, err = s.users.ListUsers(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	hosts := make([]matching.HostProfile, 0, len(users))
	for _, user := range users {
		if user.Role != RoleHost {
			continue
		}
		hosts = append(hosts, hostProfileOf(user))
	}

	var ix *matching.Index
	ix, err = buildDayIndex(ctx, s.availability, s.assignments, params.Date)
	if err != nil {
		return
	}

	matches = s.finder.Find(hosts, params.BrandID, params.TimeSlots, ix)
	return
}

// RoomAvailability reports each canonical slot's occupancy in a room on a
// date, including the booking holding any taken slot.
func (s *MatchingService) RoomAvailability(ctx context.Context, principal Principal, roomID, date string) (report RoomAvailabilityReport, err error) {
	if s == nil {
		err = fmt.Errorf("MatchingService is nil")
		return
	}
	if s.availability == nil || s.assignments == nil || s.rooms == nil {
		err = fmt.Errorf("matching repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "RoomAvailability",
		"principal_id", principal.UserID,
		"room_id", roomID,
		"date", date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute room availability", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room availability computed")
	}()

	if !principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	if _, parseErr := time.Parse("2006-01-02", date); parseErr != nil {
		vErr := &ValidationError{}
		vErr.add("date", "date must be formatted YYYY-MM-DD")
		err = vErr
		return
	}

	var room Room
	room, err = s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	var assignments []Assignment
	assignments, err = s.assignments.ListAssignmentsByDate(ctx, date)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	bySlot := make(map[string]*Assignment)
	for i := range assignments {
		assignment := assignments[i]
		if assignment.RoomID != roomID {
			continue
		}
		for _, slot := range assignment.TimeSlots {
			if _, ok := bySlot[slot]; !ok {
				bySlot[slot] = &assignments[i]
			}
		}
	}

	report = RoomAvailabilityReport{Room: room, Date: date}
	for _, slot := range timeslot.Canonical() {
		entry := SlotAvailability{TimeSlot: slot, IsAvailable: true}
		if assignment, ok := bySlot[slot]; ok {
			entry.IsAvailable = false
			entry.Assignment = assignment
		}
		report.Availability = append(report.Availability, entry)
	}
	return
}

// MatchBrandSchedule projects a recurring schedule onto a date, reporting
// room and host fit. A date outside the schedule's weekdays fails with
// *matching.DayMismatchError.
func (s *MatchingService) MatchBrandSchedule(ctx context.Context, params MatchBrandScheduleParams) (report *matching.MatchReport, err error) {
	if s == nil {
		err = fmt.Errorf("MatchingService is nil")
		return
	}
	if s.availability == nil || s.assignments == nil || s.rooms == nil || s.schedules == nil || s.users == nil {
		err = fmt.Errorf("matching repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "MatchBrandSchedule",
		"principal_id", params.Principal.UserID,
		"schedule_id", params.ScheduleID,
		"date", params.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to match brand schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"available_rooms", report.Summary.AvailableRooms,
			"available_hosts", report.Summary.AvailableHosts,
		).InfoContext(ctx, "brand schedule matched")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	vErr := &ValidationError{}
	if params.ScheduleID == "" {
		vErr.add("brandScheduleId", "brandScheduleId is required")
	}
	if _, parseErr := time.Parse("2006-01-02", params.Date); parseErr != nil {
		vErr.add("date", "date must be formatted YYYY-MM-DD")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var schedule BrandSchedule
	schedule, err = s.schedules.GetBrandSchedule(ctx, params.ScheduleID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	var roomRecords []Room
	roomRecords, err = s.rooms.ListRooms(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	rooms := make([]matching.RoomProfile, 0, len(roomRecords))
	for _, room := range roomRecords {
		rooms = append(rooms, matching.RoomProfile{
			ID:          room.ID,
			Name:        room.Name,
			Description: room.Description,
			IsActive:    room.IsActive,
		})
	}

	var users []User
	users, err = s.users.ListUsers(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	hosts := make([]matching.HostProfile, 0, len(users))
	for _, user := range users {
		if user.Role != RoleHost {
			continue
		}
		hosts = append(hosts, hostProfileOf(user))
	}

	var ix *matching.Index
	ix, err = buildDayIndex(ctx, s.availability, s.assignments, params.Date)
	if err != nil {
		return
	}

	report, err = s.matcher.Match(matching.ScheduleTemplate{
		ID:         schedule.ID,
		BrandID:    schedule.BrandID,
		BrandName:  schedule.BrandName,
		DaysOfWeek: schedule.DaysOfWeek,
		TimeSlots:  schedule.TimeSlots,
	}, params.Date, rooms, hosts, ix)
	return
}
