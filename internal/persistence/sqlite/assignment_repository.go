package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/persistence"
)

// AssignmentRepository stores committed bookings under the assignment:
// prefix. Writes claim every booked slot twice in the same transaction,
// once for the room and once for the host, so neither a room nor a host
// can be double-booked even when two validations interleave.
type AssignmentRepository struct {
	store persistence.RecordStore
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(store persistence.RecordStore) *AssignmentRepository {
	return &AssignmentRepository{store: store}
}

func assignmentKey(id string) string {
	return persistence.KeyPrefixAssignment + id
}

func assignmentToRecord(assignment application.Assignment) persistence.AssignmentRecord {
	return persistence.AssignmentRecord{
		ID:        assignment.ID,
		RoomID:    assignment.RoomID,
		RoomName:  assignment.RoomName,
		Date:      assignment.Date,
		BrandID:   assignment.BrandID,
		BrandName: assignment.BrandName,
		HostID:    assignment.HostID,
		HostName:  assignment.HostName,
		TimeSlots: assignment.TimeSlots,
		CreatedAt: assignment.CreatedAt,
		CreatedBy: assignment.CreatedBy,
	}
}

func assignmentFromRecord(rec persistence.AssignmentRecord) application.Assignment {
	return application.Assignment{
		ID:        rec.ID,
		RoomID:    rec.RoomID,
		RoomName:  rec.RoomName,
		Date:      rec.Date,
		BrandID:   rec.BrandID,
		BrandName: rec.BrandName,
		HostID:    rec.HostID,
		HostName:  rec.HostName,
		TimeSlots: rec.TimeSlots,
		CreatedAt: rec.CreatedAt,
		CreatedBy: rec.CreatedBy,
	}
}

// CreateAssignment stores a booking and claims its slots atomically. When
// any slot is already claimed the write fails with
// persistence.ErrSlotTaken and nothing is stored.
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, assignment application.Assignment) (application.Assignment, error) {
	value, err := json.Marshal(assignmentToRecord(assignment))
	if err != nil {
		return application.Assignment{}, fmt.Errorf("failed to encode assignment: %w", err)
	}

	claims := make([]persistence.SlotClaim, 0, 2*len(assignment.TimeSlots))
	for _, slot := range assignment.TimeSlots {
		claims = append(claims,
			persistence.SlotClaim{
				Scope:   persistence.ClaimScopeRoom,
				OwnerID: assignment.RoomID,
				Date:    assignment.Date,
				Slot:    slot,
			},
			persistence.SlotClaim{
				Scope:   persistence.ClaimScopeHost,
				OwnerID: assignment.HostID,
				Date:    assignment.Date,
				Slot:    slot,
			},
		)
	}

	if err := r.store.PutClaimed(ctx, assignmentKey(assignment.ID), value, claims); err != nil {
		return application.Assignment{}, err
	}
	return assignment, nil
}

// GetAssignment returns the booking with the given ID.
func (r *AssignmentRepository) GetAssignment(ctx context.Context, id string) (application.Assignment, error) {
	value, err := r.store.Get(ctx, assignmentKey(id))
	if err != nil {
		return application.Assignment{}, err
	}
	var rec persistence.AssignmentRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return application.Assignment{}, fmt.Errorf("failed to decode assignment record: %w", err)
	}
	return assignmentFromRecord(rec), nil
}

// DeleteAssignment removes a booking and releases its slot claims.
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id string) error {
	return r.store.DeleteClaimed(ctx, assignmentKey(id))
}

// ListAssignments returns every stored booking.
func (r *AssignmentRepository) ListAssignments(ctx context.Context) ([]application.Assignment, error) {
	return r.list(ctx, func(application.Assignment) bool { return true })
}

// ListAssignmentsByDate returns the bookings for one day.
func (r *AssignmentRepository) ListAssignmentsByDate(ctx context.Context, date string) ([]application.Assignment, error) {
	return r.list(ctx, func(a application.Assignment) bool { return a.Date == date })
}

// ListAssignmentsByHost returns one host's bookings.
func (r *AssignmentRepository) ListAssignmentsByHost(ctx context.Context, hostID string) ([]application.Assignment, error) {
	return r.list(ctx, func(a application.Assignment) bool { return a.HostID == hostID })
}

func (r *AssignmentRepository) list(ctx context.Context, keep func(application.Assignment) bool) ([]application.Assignment, error) {
	stored, err := r.store.ListByPrefix(ctx, persistence.KeyPrefixAssignment)
	if err != nil {
		return nil, err
	}
	assignments := make([]application.Assignment, 0, len(stored))
	for _, item := range stored {
		var rec persistence.AssignmentRecord
		if err := json.Unmarshal(item.Value, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode assignment record %s: %w", item.Key, err)
		}
		if assignment := assignmentFromRecord(rec); keep(assignment) {
			assignments = append(assignments, assignment)
		}
	}
	return assignments, nil
}
