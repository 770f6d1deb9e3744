package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/example/studio-scheduler/internal/matching"
	"github.com/example/studio-scheduler/internal/timeslot"
)

// AssignmentRepository captures the persistence operations for room assignments.
// CreateAssignment must atomically claim the (room, date, slot) tuples of
// the record and fail with persistence.ErrSlotTaken when any is held.
type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, assignment Assignment) (Assignment, error)
	GetAssignment(ctx context.Context, id string) (Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
	ListAssignments(ctx context.Context) ([]Assignment, error)
	ListAssignmentsByDate(ctx context.Context, date string) ([]Assignment, error)
	ListAssignmentsByHost(ctx context.Context, hostID string) ([]Assignment, error)
}

// AssignmentRejectedError carries the validation verdict of a booking that
// failed one of the compatibility or availability checks.
type AssignmentRejectedError struct {
	Verdict matching.Verdict
}

func (e *AssignmentRejectedError) Error() string {
	return fmt.Sprintf("assignment rejected: %s", e.Verdict.Code)
}

// HostRoom groups a host's bookings in one room.
type HostRoom struct {
	Room        Room
	Assignments []Assignment
}

// AssignmentService validates and books hosts into rooms. Bookings for the
// same room and day are serialized through a keyed mutex so the
// validate-then-write window cannot admit two conflicting writers in one
// process; the repository's slot claims close the same window across
// processes.
type AssignmentService struct {
	assignments  AssignmentRepository
	availability AvailabilityRepository
	rooms        RoomRepository
	brands       BrandRepository
	users        UserRepository
	validator    *matching.Validator
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAssignmentService constructs an assignment service with the provided dependencies.
func NewAssignmentService(assignments AssignmentRepository, availability AvailabilityRepository, rooms RoomRepository, brands BrandRepository, users UserRepository, idGenerator func() string, now func() time.Time) *AssignmentService {
	return NewAssignmentServiceWithLogger(assignments, availability, rooms, brands, users, idGenerator, now, nil)
}

// NewAssignmentServiceWithLogger constructs an assignment service with a specified logger.
func NewAssignmentServiceWithLogger(assignments AssignmentRepository, availability AvailabilityRepository, rooms RoomRepository, brands BrandRepository, users UserRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AssignmentService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AssignmentService{
		assignments:  assignments,
		availability: availability,
		rooms:        rooms,
		brands:       brands,
		users:        users,
		validator:    matching.NewValidator(matching.RequireFullCoverage),
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *AssignmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AssignmentService", operation, attrs...)
}

// roomDayLock returns the mutex serializing writes for one room and day.
func (s *AssignmentService) roomDayLock(roomID, date string) *sync.Mutex {
	key := roomID + "|" + date
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// ValidateAssignment dry-runs the booking checks for administrators
// without writing anything.
func (s *AssignmentService) ValidateAssignment(ctx context.Context, params ValidateAssignmentParams) (verdict matching.Verdict, err error) {
	if s == nil {
		err = fmt.Errorf("AssignmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ValidateAssignment",
		"principal_id", params.Principal.UserID,
		"room_id", params.Input.RoomID,
		"date", params.Input.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to validate assignment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("valid", verdict.Valid, "code", verdict.Code).InfoContext(ctx, "assignment validated")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	verdict, _, err = s.checkProposal(ctx, params.Input)
	return
}

// CreateAssignment books a host into a room for administrators. The
// booking is re-validated under the room-day lock immediately before the
// write.
func (s *AssignmentService) CreateAssignment(ctx context.Context, params CreateAssignmentParams) (assignment Assignment, err error) {
	if s == nil {
		err = fmt.Errorf("AssignmentService is nil")
		return
	}
	if s.assignments == nil {
		err = fmt.Errorf("assignment repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateAssignment",
		"principal_id", params.Principal.UserID,
		"room_id", params.Input.RoomID,
		"date", params.Input.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create assignment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("assignment_id", assignment.ID).InfoContext(ctx, "assignment created")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	lock := s.roomDayLock(params.Input.RoomID, params.Input.Date)
	lock.Lock()
	defer lock.Unlock()

	var verdict matching.Verdict
	var refs proposalRefs
	verdict, refs, err = s.checkProposal(ctx, params.Input)
	if err != nil {
		return
	}
	if !verdict.Valid {
		err = &AssignmentRejectedError{Verdict: verdict}
		return
	}

	candidate := Assignment{
		ID:        s.idGenerator(),
		RoomID:    refs.room.ID,
		RoomName:  refs.room.Name,
		Date:      params.Input.Date,
		BrandID:   refs.brand.ID,
		BrandName: refs.brand.Name,
		HostID:    refs.host.ID,
		HostName:  refs.host.Name,
		TimeSlots: timeslot.FromSlice(params.Input.TimeSlots).Slice(),
		CreatedAt: s.now(),
		CreatedBy: params.Principal.UserID,
	}

	assignment, err = s.assignments.CreateAssignment(ctx, candidate)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// GetAssignment returns a booking visible to the principal. Hosts may only
// view their own bookings.
func (s *AssignmentService) GetAssignment(ctx context.Context, principal Principal, assignmentID string) (Assignment, error) {
	if s == nil {
		return Assignment{}, fmt.Errorf("AssignmentService is nil")
	}
	if s.assignments == nil {
		return Assignment{}, fmt.Errorf("assignment repository not configured")
	}

	assignment, err := s.assignments.GetAssignment(ctx, assignmentID)
	if err != nil {
		return Assignment{}, mapRepoError(err)
	}
	if !principal.IsAdmin() && assignment.HostID != principal.UserID {
		return Assignment{}, ErrUnauthorized
	}
	return assignment, nil
}

// DeleteAssignment cancels a booking for administrators.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, principal Principal, assignmentID string) error {
	if s == nil {
		return fmt.Errorf("AssignmentService is nil")
	}
	if !principal.IsAdmin() {
		return ErrUnauthorized
	}
	if s.assignments == nil {
		return fmt.Errorf("assignment repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteAssignment",
		"principal_id", principal.UserID,
		"assignment_id", assignmentID,
	)

	if err := s.assignments.DeleteAssignment(ctx, assignmentID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete assignment", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "assignment deleted")
	return nil
}

// ListAssignments returns bookings visible to the principal. Administrators
// see every booking; hosts see only their own.
func (s *AssignmentService) ListAssignments(ctx context.Context, principal Principal) (assignments []Assignment, err error) {
	if s == nil {
		err = fmt.Errorf("AssignmentService is nil")
		return
	}
	if s.assignments == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListAssignments",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list assignments", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(assignments)).InfoContext(ctx, "assignments listed")
	}()

	if principal.IsAdmin() {
		assignments, err = s.assignments.ListAssignments(ctx)
	} else {
		assignments, err = s.assignments.ListAssignmentsByHost(ctx, principal.UserID)
	}
	if err != nil {
		err = mapRepoError(err)
		return
	}

	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].Date == assignments[j].Date {
			return assignments[i].ID < assignments[j].ID
		}
		return assignments[i].Date < assignments[j].Date
	})

	return
}

// MyRooms returns the rooms the principal is booked into, with their
// bookings, recomputed from the assignment records.
func (s *AssignmentService) MyRooms(ctx context.Context, principal Principal) (rooms []HostRoom, err error) {
	if s == nil {
		err = fmt.Errorf("AssignmentService is nil")
		return
	}
	if s.assignments == nil || s.rooms == nil {
		err = fmt.Errorf("assignment repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "MyRooms",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list host rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(rooms)).InfoContext(ctx, "host rooms listed")
	}()

	var assignments []Assignment
	assignments, err = s.assignments.ListAssignmentsByHost(ctx, principal.UserID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	byRoom := make(map[string][]Assignment)
	var roomOrder []string
	for _, assignment := range assignments {
		if _, ok := byRoom[assignment.RoomID]; !ok {
			roomOrder = append(roomOrder, assignment.RoomID)
		}
		byRoom[assignment.RoomID] = append(byRoom[assignment.RoomID], assignment)
	}

	sort.Strings(roomOrder)
	rooms = make([]HostRoom, 0, len(roomOrder))
	for _, roomID := range roomOrder {
		var room Room
		room, err = s.rooms.GetRoom(ctx, roomID)
		if err != nil {
			if errors.Is(mapRepoError(err), ErrNotFound) {
				err = nil
				continue
			}
			err = mapRepoError(err)
			return
		}
		bookings := byRoom[roomID]
		sort.Slice(bookings, func(i, j int) bool {
			if bookings[i].Date == bookings[j].Date {
				return bookings[i].ID < bookings[j].ID
			}
			return bookings[i].Date < bookings[j].Date
		})
		rooms = append(rooms, HostRoom{Room: room, Assignments: bookings})
	}

	return
}

// proposalRefs carries the resolved records behind a validated proposal.
type proposalRefs struct {
	host  User
	brand Brand
	room  Room
}

func (s *AssignmentService) checkProposal(ctx context.Context, input AssignmentInput) (matching.Verdict, proposalRefs, error) {
	var refs proposalRefs
	if s.assignments == nil || s.availability == nil || s.rooms == nil || s.brands == nil || s.users == nil {
		return matching.Verdict{}, refs, fmt.Errorf("assignment repositories not configured")
	}

	vErr := &ValidationError{}
	if input.RoomID == "" {
		vErr.add("roomId", "roomId is required")
	}
	if input.BrandID == "" {
		vErr.add("brandId", "brandId is required")
	}
	if input.HostID == "" {
		vErr.add("hostId", "hostId is required")
	}
	if _, parseErr := time.Parse("2006-01-02", input.Date); parseErr != nil {
		vErr.add("date", "date must be formatted YYYY-MM-DD")
	}
	if len(input.TimeSlots) == 0 {
		vErr.add("timeSlots", "at least one time slot is required")
	}
	for _, slot := range input.TimeSlots {
		if !timeslot.IsCanonical(slot) {
			vErr.add("timeSlots", fmt.Sprintf("unknown time slot %q", slot))
			break
		}
	}
	if vErr.HasErrors() {
		return matching.Verdict{}, refs, vErr
	}

	var err error
	refs.room, err = s.rooms.GetRoom(ctx, input.RoomID)
	if err != nil {
		return matching.Verdict{}, refs, mapRepoError(err)
	}
	refs.brand, err = s.brands.GetBrand(ctx, input.BrandID)
	if err != nil {
		return matching.Verdict{}, refs, mapRepoError(err)
	}
	refs.host, err = s.users.GetUser(ctx, input.HostID)
	if err != nil {
		return matching.Verdict{}, refs, mapRepoError(err)
	}

	ix, err := buildDayIndex(ctx, s.availability, s.assignments, input.Date)
	if err != nil {
		return matching.Verdict{}, refs, err
	}

	verdict := s.validator.Validate(matching.Proposal{
		Host:      hostProfileOf(refs.host),
		BrandID:   refs.brand.ID,
		BrandName: refs.brand.Name,
		RoomID:    refs.room.ID,
		Date:      input.Date,
		TimeSlots: input.TimeSlots,
	}, ix)

	return verdict, refs, nil
}
