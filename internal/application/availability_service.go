package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/studio-scheduler/internal/timeslot"
)

// minAvailabilitySlots is the smallest availability declaration accepted.
const minAvailabilitySlots = 2

// AvailabilityRepository captures the persistence operations for host availability.
type AvailabilityRepository interface {
	CreateAvailability(ctx context.Context, availability HostAvailability) (HostAvailability, error)
	GetAvailability(ctx context.Context, id string) (HostAvailability, error)
	DeleteAvailability(ctx context.Context, id string) error
	ListAvailability(ctx context.Context) ([]HostAvailability, error)
	ListAvailabilityByDate(ctx context.Context, date string) ([]HostAvailability, error)
	ListAvailabilityByHost(ctx context.Context, hostID string) ([]HostAvailability, error)
}

// AvailabilityService manages hosts' declared free hours.
type AvailabilityService struct {
	availability AvailabilityRepository
	assignments  AssignmentRepository
	users        UserRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewAvailabilityService constructs an availability service with the provided dependencies.
func NewAvailabilityService(availability AvailabilityRepository, assignments AssignmentRepository, users UserRepository, idGenerator func() string, now func() time.Time) *AvailabilityService {
	return NewAvailabilityServiceWithLogger(availability, assignments, users, idGenerator, now, nil)
}

// NewAvailabilityServiceWithLogger constructs an availability service with a specified logger.
func NewAvailabilityServiceWithLogger(availability AvailabilityRepository, assignments AssignmentRepository, users UserRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AvailabilityService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		availability: availability,
		assignments:  assignments,
		users:        users,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *AvailabilityService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AvailabilityService", operation, attrs...)
}

// SubmitAvailability records the principal's free hours for one day.
func (s *AvailabilityService) SubmitAvailability(ctx context.Context, params SubmitAvailabilityParams) (availability HostAvailability, err error) {
	if s == nil {
		err = fmt.Errorf("AvailabilityService is nil")
		return
	}
	if s.availability == nil || s.users == nil {
		err = fmt.Errorf("availability repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "SubmitAvailability",
		"principal_id", params.Principal.UserID,
		"date", params.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to submit availability", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("availability_id", availability.ID).InfoContext(ctx, "availability submitted")
	}()

	vErr := &ValidationError{}
	if _, parseErr := time.Parse("2006-01-02", params.Date); parseErr != nil {
		vErr.add("date", "date must be formatted YYYY-MM-DD")
	}
	slots := timeslot.FromSlice(params.TimeSlots)
	if slots.Len() < minAvailabilitySlots {
		vErr.add("timeSlots", fmt.Sprintf("at least %d time slots are required", minAvailabilitySlots))
	}
	for _, slot := range slots.Slice() {
		if !timeslot.IsCanonical(slot) {
			vErr.add("timeSlots", fmt.Sprintf("unknown time slot %q", slot))
			break
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var host User
	host, err = s.users.GetUser(ctx, params.Principal.UserID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	candidate := HostAvailability{
		ID:        s.idGenerator(),
		HostID:    host.ID,
		HostName:  host.Name,
		Date:      params.Date,
		TimeSlots: slots.Slice(),
		CreatedAt: s.now(),
	}

	availability, err = s.availability.CreateAvailability(ctx, candidate)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// ListAvailability returns availability records visible to the principal.
// Administrators see every record; hosts see only their own.
func (s *AvailabilityService) ListAvailability(ctx context.Context, principal Principal) (records []HostAvailability, err error) {
	if s == nil {
		err = fmt.Errorf("AvailabilityService is nil")
		return
	}
	if s.availability == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListAvailability",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list availability", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(records)).InfoContext(ctx, "availability listed")
	}()

	if principal.IsAdmin() {
		records, err = s.availability.ListAvailability(ctx)
	} else {
		records, err = s.availability.ListAvailabilityByHost(ctx, principal.UserID)
	}
	if err != nil {
		err = mapRepoError(err)
		return
	}

	sortAvailability(records)
	return
}

// ListAvailabilityForDate returns every host's availability on a day for
// administrators.
func (s *AvailabilityService) ListAvailabilityForDate(ctx context.Context, principal Principal, date string) (records []HostAvailability, err error) {
	if s == nil {
		err = fmt.Errorf("AvailabilityService is nil")
		return
	}
	if s.availability == nil {
		return nil, nil
	}
	if !principal.IsAdmin() {
		return nil, ErrUnauthorized
	}

	records, err = s.availability.ListAvailabilityByDate(ctx, date)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	sortAvailability(records)
	return
}

// DeleteAvailability removes a declaration. Hosts may delete their own
// records only while no assignment overlaps the declared hours;
// administrators may always delete.
func (s *AvailabilityService) DeleteAvailability(ctx context.Context, principal Principal, availabilityID string) error {
	if s == nil {
		return fmt.Errorf("AvailabilityService is nil")
	}
	if s.availability == nil {
		return fmt.Errorf("availability repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteAvailability",
		"principal_id", principal.UserID,
		"availability_id", availabilityID,
	)

	record, err := s.availability.GetAvailability(ctx, availabilityID)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete availability", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if !principal.IsAdmin() {
		if record.HostID != principal.UserID {
			logger.ErrorContext(ctx, "failed to delete availability", "error", ErrUnauthorized, "error_kind", ErrorKind(ErrUnauthorized))
			return ErrUnauthorized
		}
		booked, bookErr := s.hostBookedSlots(ctx, record.HostID, record.Date)
		if bookErr != nil {
			logger.ErrorContext(ctx, "failed to delete availability", "error", bookErr, "error_kind", ErrorKind(bookErr))
			return bookErr
		}
		if timeslot.AnyOverlap(booked, timeslot.FromSlice(record.TimeSlots)) {
			vErr := &ValidationError{}
			vErr.add("availabilityId", "availability with booked time slots cannot be deleted")
			logger.ErrorContext(ctx, "failed to delete availability", "error", vErr, "error_kind", ErrorKind(vErr))
			return vErr
		}
	}

	if err := s.availability.DeleteAvailability(ctx, availabilityID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete availability", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "availability deleted")
	return nil
}

// HostScheduleStats summarizes every host's declared and booked hours for
// administrators.
func (s *AvailabilityService) HostScheduleStats(ctx context.Context, principal Principal) (stats []HostScheduleStats, err error) {
	if s == nil {
		err = fmt.Errorf("AvailabilityService is nil")
		return
	}
	if s.availability == nil || s.assignments == nil {
		err = fmt.Errorf("availability repositories not configured")
		return
	}
	if !principal.IsAdmin() {
		return nil, ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "HostScheduleStats",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute host stats", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(stats)).InfoContext(ctx, "host stats computed")
	}()

	var records []HostAvailability
	records, err = s.availability.ListAvailability(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	type hostAccumulator struct {
		name  string
		dates map[string]struct{}
		slots int
	}
	byHost := make(map[string]*hostAccumulator)
	var hostOrder []string
	for _, record := range records {
		acc, ok := byHost[record.HostID]
		if !ok {
			acc = &hostAccumulator{name: record.HostName, dates: make(map[string]struct{})}
			byHost[record.HostID] = acc
			hostOrder = append(hostOrder, record.HostID)
		}
		acc.dates[record.Date] = struct{}{}
		acc.slots += len(record.TimeSlots)
	}

	stats = make([]HostScheduleStats, 0, len(hostOrder))
	sort.Strings(hostOrder)
	for _, hostID := range hostOrder {
		acc := byHost[hostID]
		assigned := 0
		var assignedRecords []Assignment
		assignedRecords, err = s.assignments.ListAssignmentsByHost(ctx, hostID)
		if err != nil {
			err = mapRepoError(err)
			return
		}
		for _, assignment := range assignedRecords {
			assigned += len(assignment.TimeSlots)
		}
		stats = append(stats, HostScheduleStats{
			HostID:         hostID,
			HostName:       acc.name,
			TotalDays:      len(acc.dates),
			TotalSlots:     acc.slots,
			AssignedSlots:  assigned,
			RemainingSlots: max(acc.slots-assigned, 0),
		})
	}

	return
}

func (s *AvailabilityService) hostBookedSlots(ctx context.Context, hostID, date string) (timeslot.Set, error) {
	booked := timeslot.New()
	if s.assignments == nil {
		return booked, nil
	}
	assignments, err := s.assignments.ListAssignmentsByHost(ctx, hostID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	for _, assignment := range assignments {
		if assignment.Date != date {
			continue
		}
		booked = timeslot.Union(booked, timeslot.FromSlice(assignment.TimeSlots))
	}
	return booked, nil
}

func sortAvailability(records []HostAvailability) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date == records[j].Date {
			return records[i].ID < records[j].ID
		}
		return records[i].Date < records[j].Date
	})
}
