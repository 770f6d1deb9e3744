package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/studio-scheduler/internal/timeslot"
)

// weekdayNames is the accepted spelling for schedule days, Sunday first.
var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// BrandScheduleRepository captures the persistence operations needed by the service.
type BrandScheduleRepository interface {
	CreateBrandSchedule(ctx context.Context, schedule BrandSchedule) (BrandSchedule, error)
	GetBrandSchedule(ctx context.Context, id string) (BrandSchedule, error)
	UpdateBrandSchedule(ctx context.Context, schedule BrandSchedule) (BrandSchedule, error)
	DeleteBrandSchedule(ctx context.Context, id string) error
	ListBrandSchedules(ctx context.Context) ([]BrandSchedule, error)
}

// BrandScheduleService manages brands' recurring weekly streaming patterns.
type BrandScheduleService struct {
	schedules   BrandScheduleRepository
	brands      BrandRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBrandScheduleService constructs a brand schedule service with the provided dependencies.
func NewBrandScheduleService(schedules BrandScheduleRepository, brands BrandRepository, idGenerator func() string, now func() time.Time) *BrandScheduleService {
	return NewBrandScheduleServiceWithLogger(schedules, brands, idGenerator, now, nil)
}

// NewBrandScheduleServiceWithLogger constructs a brand schedule service with a specified logger.
func NewBrandScheduleServiceWithLogger(schedules BrandScheduleRepository, brands BrandRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BrandScheduleService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BrandScheduleService{
		schedules:   schedules,
		brands:      brands,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *BrandScheduleService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BrandScheduleService", operation, attrs...)
}

// CreateBrandSchedule validates input and persists a recurring schedule for administrators.
func (s *BrandScheduleService) CreateBrandSchedule(ctx context.Context, params CreateBrandScheduleParams) (schedule BrandSchedule, err error) {
	if s == nil {
		err = fmt.Errorf("BrandScheduleService is nil")
		return
	}
	if s.schedules == nil || s.brands == nil {
		err = fmt.Errorf("brand schedule repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateBrandSchedule",
		"principal_id", params.Principal.UserID,
		"brand_id", params.Input.BrandID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create brand schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("schedule_id", schedule.ID).InfoContext(ctx, "brand schedule created")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	vErr := validateBrandScheduleInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var brand Brand
	brand, err = s.brands.GetBrand(ctx, params.Input.BrandID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	now := s.now()
	candidate := BrandSchedule{
		ID:         s.idGenerator(),
		BrandID:    brand.ID,
		BrandName:  brand.Name,
		DaysOfWeek: normalizeDays(params.Input.DaysOfWeek),
		TimeSlots:  timeslot.FromSlice(params.Input.TimeSlots).Slice(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	schedule, err = s.schedules.CreateBrandSchedule(ctx, candidate)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// GetBrandSchedule returns a single recurring schedule for any authenticated user.
func (s *BrandScheduleService) GetBrandSchedule(ctx context.Context, principal Principal, scheduleID string) (BrandSchedule, error) {
	if s == nil {
		return BrandSchedule{}, fmt.Errorf("BrandScheduleService is nil")
	}
	if s.schedules == nil {
		return BrandSchedule{}, fmt.Errorf("brand schedule repository not configured")
	}

	schedule, err := s.schedules.GetBrandSchedule(ctx, scheduleID)
	if err != nil {
		return BrandSchedule{}, mapRepoError(err)
	}
	return schedule, nil
}

// UpdateBrandSchedule validates input and updates a recurring schedule for administrators.
func (s *BrandScheduleService) UpdateBrandSchedule(ctx context.Context, params UpdateBrandScheduleParams) (schedule BrandSchedule, err error) {
	if s == nil {
		err = fmt.Errorf("BrandScheduleService is nil")
		return
	}
	if s.schedules == nil || s.brands == nil {
		err = fmt.Errorf("brand schedule repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBrandSchedule",
		"principal_id", params.Principal.UserID,
		"schedule_id", params.ScheduleID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update brand schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("schedule_id", schedule.ID).InfoContext(ctx, "brand schedule updated")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	var existing BrandSchedule
	existing, err = s.schedules.GetBrandSchedule(ctx, params.ScheduleID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateBrandScheduleInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var brand Brand
	brand, err = s.brands.GetBrand(ctx, params.Input.BrandID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := existing
	updated.BrandID = brand.ID
	updated.BrandName = brand.Name
	updated.DaysOfWeek = normalizeDays(params.Input.DaysOfWeek)
	updated.TimeSlots = timeslot.FromSlice(params.Input.TimeSlots).Slice()
	updated.UpdatedAt = s.now()

	schedule, err = s.schedules.UpdateBrandSchedule(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// DeleteBrandSchedule removes a recurring schedule when requested by an administrator.
func (s *BrandScheduleService) DeleteBrandSchedule(ctx context.Context, principal Principal, scheduleID string) error {
	if s == nil {
		return fmt.Errorf("BrandScheduleService is nil")
	}
	if !principal.IsAdmin() {
		return ErrUnauthorized
	}
	if s.schedules == nil {
		return fmt.Errorf("brand schedule repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteBrandSchedule",
		"principal_id", principal.UserID,
		"schedule_id", scheduleID,
	)

	if err := s.schedules.DeleteBrandSchedule(ctx, scheduleID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete brand schedule", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "brand schedule deleted")
	return nil
}

// ListBrandSchedules returns every recurring schedule for any authenticated
// user, sorted by brand name.
func (s *BrandScheduleService) ListBrandSchedules(ctx context.Context, principal Principal) (schedules []BrandSchedule, err error) {
	if s == nil {
		err = fmt.Errorf("BrandScheduleService is nil")
		return
	}
	if s.schedules == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListBrandSchedules",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list brand schedules", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(schedules)).InfoContext(ctx, "brand schedules listed")
	}()

	var raw []BrandSchedule
	raw, err = s.schedules.ListBrandSchedules(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	schedules = make([]BrandSchedule, len(raw))
	copy(schedules, raw)

	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].BrandName == schedules[j].BrandName {
			return schedules[i].ID < schedules[j].ID
		}
		return schedules[i].BrandName < schedules[j].BrandName
	})

	return
}

func validateBrandScheduleInput(input BrandScheduleInput) *ValidationError {
	vErr := &ValidationError{}

	if input.BrandID == "" {
		vErr.add("brandId", "brandId is required")
	}
	if len(input.DaysOfWeek) == 0 {
		vErr.add("daysOfWeek", "at least one day is required")
	}
	for _, day := range input.DaysOfWeek {
		if !isWeekdayName(day) {
			vErr.add("daysOfWeek", fmt.Sprintf("unknown day %q", day))
			break
		}
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

	return vErr
}

func isWeekdayName(day string) bool {
	for _, name := range weekdayNames {
		if day == name {
			return true
		}
	}
	return false
}

// normalizeDays deduplicates day names and orders them Sunday first.
func normalizeDays(days []string) []string {
	requested := make(map[string]struct{}, len(days))
	for _, day := range days {
		requested[day] = struct{}{}
	}
	out := make([]string, 0, len(requested))
	for _, name := range weekdayNames {
		if _, ok := requested[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
