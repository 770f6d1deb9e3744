package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/persistence"
)

// AvailabilityRepository stores hosts' declared free hours under the
// schedule: prefix.
type AvailabilityRepository struct {
	store persistence.RecordStore
}

// NewAvailabilityRepository creates a new availability repository.
func NewAvailabilityRepository(store persistence.RecordStore) *AvailabilityRepository {
	return &AvailabilityRepository{store: store}
}

func availabilityKey(id string) string {
	return persistence.KeyPrefixAvailability + id
}

func availabilityToRecord(availability application.HostAvailability) persistence.AvailabilityRecord {
	return persistence.AvailabilityRecord{
		ID:        availability.ID,
		HostID:    availability.HostID,
		HostName:  availability.HostName,
		Date:      availability.Date,
		TimeSlots: availability.TimeSlots,
		CreatedAt: availability.CreatedAt,
	}
}

func availabilityFromRecord(rec persistence.AvailabilityRecord) application.HostAvailability {
	return application.HostAvailability{
		ID:        rec.ID,
		HostID:    rec.HostID,
		HostName:  rec.HostName,
		Date:      rec.Date,
		TimeSlots: rec.TimeSlots,
		CreatedAt: rec.CreatedAt,
	}
}

// CreateAvailability stores a new declaration.
func (r *AvailabilityRepository) CreateAvailability(ctx context.Context, availability application.HostAvailability) (application.HostAvailability, error) {
	value, err := json.Marshal(availabilityToRecord(availability))
	if err != nil {
		return application.HostAvailability{}, fmt.Errorf("failed to encode availability: %w", err)
	}
	if err := r.store.Put(ctx, availabilityKey(availability.ID), value); err != nil {
		return application.HostAvailability{}, err
	}
	return availability, nil
}

// GetAvailability returns the declaration with the given ID.
func (r *AvailabilityRepository) GetAvailability(ctx context.Context, id string) (application.HostAvailability, error) {
	value, err := r.store.Get(ctx, availabilityKey(id))
	if err != nil {
		return application.HostAvailability{}, err
	}
	var rec persistence.AvailabilityRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return application.HostAvailability{}, fmt.Errorf("failed to decode availability record: %w", err)
	}
	return availabilityFromRecord(rec), nil
}

// DeleteAvailability removes the declaration with the given ID.
func (r *AvailabilityRepository) DeleteAvailability(ctx context.Context, id string) error {
	return r.store.Delete(ctx, availabilityKey(id))
}

// ListAvailability returns every stored declaration.
func (r *AvailabilityRepository) ListAvailability(ctx context.Context) ([]application.HostAvailability, error) {
	return r.list(ctx, func(application.HostAvailability) bool { return true })
}

// ListAvailabilityByDate returns the declarations for one day.
func (r *AvailabilityRepository) ListAvailabilityByDate(ctx context.Context, date string) ([]application.HostAvailability, error) {
	return r.list(ctx, func(a application.HostAvailability) bool { return a.Date == date })
}

// ListAvailabilityByHost returns one host's declarations.
func (r *AvailabilityRepository) ListAvailabilityByHost(ctx context.Context, hostID string) ([]application.HostAvailability, error) {
	return r.list(ctx, func(a application.HostAvailability) bool { return a.HostID == hostID })
}

func (r *AvailabilityRepository) list(ctx context.Context, keep func(application.HostAvailability) bool) ([]application.HostAvailability, error) {
	stored, err := r.store.ListByPrefix(ctx, persistence.KeyPrefixAvailability)
	if err != nil {
		return nil, err
	}
	declarations := make([]application.HostAvailability, 0, len(stored))
	for _, item := range stored {
		var rec persistence.AvailabilityRecord
		if err := json.Unmarshal(item.Value, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode availability record %s: %w", item.Key, err)
		}
		if availability := availabilityFromRecord(rec); keep(availability) {
			declarations = append(declarations, availability)
		}
	}
	return declarations, nil
}
