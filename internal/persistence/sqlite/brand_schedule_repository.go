package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/persistence"
)

// BrandScheduleRepository stores recurring weekly patterns under the
// brand-schedule: prefix.
type BrandScheduleRepository struct {
	store persistence.RecordStore
}

// NewBrandScheduleRepository creates a new brand schedule repository.
func NewBrandScheduleRepository(store persistence.RecordStore) *BrandScheduleRepository {
	return &BrandScheduleRepository{store: store}
}

func brandScheduleKey(id string) string {
	return persistence.KeyPrefixBrandSchedule + id
}

func brandScheduleToRecord(schedule application.BrandSchedule) persistence.BrandScheduleRecord {
	return persistence.BrandScheduleRecord{
		ID:         schedule.ID,
		BrandID:    schedule.BrandID,
		BrandName:  schedule.BrandName,
		DaysOfWeek: schedule.DaysOfWeek,
		TimeSlots:  schedule.TimeSlots,
		CreatedAt:  schedule.CreatedAt,
		UpdatedAt:  schedule.UpdatedAt,
	}
}

func brandScheduleFromRecord(rec persistence.BrandScheduleRecord) application.BrandSchedule {
	return application.BrandSchedule{
		ID:         rec.ID,
		BrandID:    rec.BrandID,
		BrandName:  rec.BrandName,
		DaysOfWeek: rec.DaysOfWeek,
		TimeSlots:  rec.TimeSlots,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

// CreateBrandSchedule stores a new recurring pattern.
func (r *BrandScheduleRepository) CreateBrandSchedule(ctx context.Context, schedule application.BrandSchedule) (application.BrandSchedule, error) {
	if err := r.put(ctx, schedule); err != nil {
		return application.BrandSchedule{}, err
	}
	return schedule, nil
}

// GetBrandSchedule returns the pattern with the given ID.
func (r *BrandScheduleRepository) GetBrandSchedule(ctx context.Context, id string) (application.BrandSchedule, error) {
	value, err := r.store.Get(ctx, brandScheduleKey(id))
	if err != nil {
		return application.BrandSchedule{}, err
	}
	var rec persistence.BrandScheduleRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return application.BrandSchedule{}, fmt.Errorf("failed to decode brand schedule record: %w", err)
	}
	return brandScheduleFromRecord(rec), nil
}

// UpdateBrandSchedule replaces the stored pattern.
func (r *BrandScheduleRepository) UpdateBrandSchedule(ctx context.Context, schedule application.BrandSchedule) (application.BrandSchedule, error) {
	if _, err := r.GetBrandSchedule(ctx, schedule.ID); err != nil {
		return application.BrandSchedule{}, err
	}
	if err := r.put(ctx, schedule); err != nil {
		return application.BrandSchedule{}, err
	}
	return schedule, nil
}

// DeleteBrandSchedule removes the pattern with the given ID.
func (r *BrandScheduleRepository) DeleteBrandSchedule(ctx context.Context, id string) error {
	return r.store.Delete(ctx, brandScheduleKey(id))
}

// ListBrandSchedules returns every stored pattern.
func (r *BrandScheduleRepository) ListBrandSchedules(ctx context.Context) ([]application.BrandSchedule, error) {
	stored, err := r.store.ListByPrefix(ctx, persistence.KeyPrefixBrandSchedule)
	if err != nil {
		return nil, err
	}
	schedules := make([]application.BrandSchedule, 0, len(stored))
	for _, item := range stored {
		var rec persistence.BrandScheduleRecord
		if err := json.Unmarshal(item.Value, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode brand schedule record %s: %w", item.Key, err)
		}
		schedules = append(schedules, brandScheduleFromRecord(rec))
	}
	return schedules, nil
}

func (r *BrandScheduleRepository) put(ctx context.Context, schedule application.BrandSchedule) error {
	value, err := json.Marshal(brandScheduleToRecord(schedule))
	if err != nil {
		return fmt.Errorf("failed to encode brand schedule: %w", err)
	}
	return r.store.Put(ctx, brandScheduleKey(schedule.ID), value)
}
