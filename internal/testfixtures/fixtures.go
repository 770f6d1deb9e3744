package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/studio-scheduler/internal/application"
)

var (
	userCounter         uint64
	brandCounter        uint64
	roomCounter         uint64
	availabilityCounter uint64
	assignmentCounter   uint64
	scheduleCounter     uint64
)

var referenceTime = time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate is a Tuesday, which keeps weekday based fixtures stable.
const ReferenceDate = "2026-09-01"

// UserFixture represents a deterministic host or admin account.
type UserFixture struct {
	ID        string
	Email     string
	Name      string
	Role      application.Role
	BrandTags []string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic host fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := UserFixture{
		ID:        id,
		Email:     fmt.Sprintf("%s@example.com", id),
		Name:      fmt.Sprintf("Host %03d", idx),
		Role:      application.RoleHost,
		Password:  fmt.Sprintf("password-%03d", idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) { f.ID = id }
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(f *UserFixture) { f.Email = email }
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(f *UserFixture) { f.Name = name }
}

// WithUserRole sets the account role.
func WithUserRole(role application.Role) UserOption {
	return func(f *UserFixture) { f.Role = role }
}

// AsAdmin marks the account as an administrator.
func AsAdmin() UserOption {
	return func(f *UserFixture) { f.Role = application.RoleAdmin }
}

// WithBrandTags restricts the host to the given brands. No tags means the
// host streams for any brand.
func WithBrandTags(tags ...string) UserOption {
	return func(f *UserFixture) { f.BrandTags = append([]string(nil), tags...) }
}

// WithUserPassword overrides the generated password.
func WithUserPassword(password string) UserOption {
	return func(f *UserFixture) { f.Password = password }
}

// Application returns the fixture as an application.User value.
func (f UserFixture) Application() application.User {
	return application.User{
		ID:        f.ID,
		Email:     f.Email,
		Name:      f.Name,
		Role:      f.Role,
		BrandTags: append([]string(nil), f.BrandTags...),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f UserFixture) Principal() application.Principal {
	return application.Principal{UserID: f.ID, Role: f.Role}
}

// Input returns the fixture as an application.UserInput.
func (f UserFixture) Input() application.UserInput {
	return application.UserInput{
		Email:     f.Email,
		Name:      f.Name,
		Role:      f.Role,
		BrandTags: append([]string(nil), f.BrandTags...),
	}
}

// BrandFixture represents a deterministic sponsor brand.
type BrandFixture struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BrandOption configures the generated brand fixture.
type BrandOption func(*BrandFixture)

// NewBrandFixture returns a deterministic brand fixture with optional overrides.
func NewBrandFixture(opts ...BrandOption) BrandFixture {
	idx := atomic.AddUint64(&brandCounter, 1)
	id := fmt.Sprintf("brand-%03d", idx)
	fixture := BrandFixture{
		ID:        id,
		Name:      fmt.Sprintf("Brand %03d", idx),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBrandID overrides the generated brand ID.
func WithBrandID(id string) BrandOption {
	return func(f *BrandFixture) { f.ID = id }
}

// WithBrandName overrides the generated brand name.
func WithBrandName(name string) BrandOption {
	return func(f *BrandFixture) { f.Name = name }
}

// Application returns the fixture as an application.Brand value.
func (f BrandFixture) Application() application.Brand {
	return application.Brand{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.BrandInput.
func (f BrandFixture) Input() application.BrandInput {
	return application.BrandInput{Name: f.Name, Description: f.Description}
}

// RoomFixture represents a deterministic streaming room.
type RoomFixture struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomOption configures the generated room fixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a deterministic room fixture with optional overrides.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	id := fmt.Sprintf("room-%03d", idx)
	fixture := RoomFixture{
		ID:        id,
		Name:      fmt.Sprintf("Studio %03d", idx),
		IsActive:  true,
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id string) RoomOption {
	return func(f *RoomFixture) { f.ID = id }
}

// WithRoomName overrides the generated room name.
func WithRoomName(name string) RoomOption {
	return func(f *RoomFixture) { f.Name = name }
}

// Inactive marks the room as out of service.
func Inactive() RoomOption {
	return func(f *RoomFixture) { f.IsActive = false }
}

// Application returns the fixture as an application.Room value.
func (f RoomFixture) Application() application.Room {
	return application.Room{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.RoomInput.
func (f RoomFixture) Input() application.RoomInput {
	return application.RoomInput{Name: f.Name, Description: f.Description, IsActive: f.IsActive}
}

// AvailabilityFixture represents a host's declared slots for one date.
type AvailabilityFixture struct {
	ID        string
	HostID    string
	HostName  string
	Date      string
	TimeSlots []string
	CreatedAt time.Time
}

// AvailabilityOption configures the generated availability fixture.
type AvailabilityOption func(*AvailabilityFixture)

// NewAvailabilityFixture returns a deterministic availability declaration.
func NewAvailabilityFixture(opts ...AvailabilityOption) AvailabilityFixture {
	idx := atomic.AddUint64(&availabilityCounter, 1)
	fixture := AvailabilityFixture{
		ID:        fmt.Sprintf("availability-%03d", idx),
		HostID:    fmt.Sprintf("user-%03d", idx),
		HostName:  fmt.Sprintf("Host %03d", idx),
		Date:      ReferenceDate,
		TimeSlots: []string{"10:00", "14:00"},
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// ForHost binds the availability to a host fixture.
func ForHost(host UserFixture) AvailabilityOption {
	return func(f *AvailabilityFixture) {
		f.HostID = host.ID
		f.HostName = host.Name
	}
}

// OnDate sets the availability date.
func OnDate(date string) AvailabilityOption {
	return func(f *AvailabilityFixture) { f.Date = date }
}

// WithSlots sets the declared slots.
func WithSlots(slots ...string) AvailabilityOption {
	return func(f *AvailabilityFixture) { f.TimeSlots = append([]string(nil), slots...) }
}

// Application returns the fixture as an application.HostAvailability value.
func (f AvailabilityFixture) Application() application.HostAvailability {
	return application.HostAvailability{
		ID:        f.ID,
		HostID:    f.HostID,
		HostName:  f.HostName,
		Date:      f.Date,
		TimeSlots: append([]string(nil), f.TimeSlots...),
		CreatedAt: f.CreatedAt,
	}
}

// AssignmentFixture represents a deterministic booking.
type AssignmentFixture struct {
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

// AssignmentOption configures the generated assignment fixture.
type AssignmentOption func(*AssignmentFixture)

// NewAssignmentFixture returns a deterministic booking with optional overrides.
func NewAssignmentFixture(opts ...AssignmentOption) AssignmentFixture {
	idx := atomic.AddUint64(&assignmentCounter, 1)
	fixture := AssignmentFixture{
		ID:        fmt.Sprintf("assignment-%03d", idx),
		RoomID:    fmt.Sprintf("room-%03d", idx),
		RoomName:  fmt.Sprintf("Studio %03d", idx),
		Date:      ReferenceDate,
		BrandID:   fmt.Sprintf("brand-%03d", idx),
		BrandName: fmt.Sprintf("Brand %03d", idx),
		HostID:    fmt.Sprintf("user-%03d", idx),
		HostName:  fmt.Sprintf("Host %03d", idx),
		TimeSlots: []string{"10:00"},
		CreatedAt: referenceTime,
		CreatedBy: "admin-1",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// InRoom binds the booking to a room fixture.
func InRoom(room RoomFixture) AssignmentOption {
	return func(f *AssignmentFixture) {
		f.RoomID = room.ID
		f.RoomName = room.Name
	}
}

// ForBrand binds the booking to a brand fixture.
func ForBrand(brand BrandFixture) AssignmentOption {
	return func(f *AssignmentFixture) {
		f.BrandID = brand.ID
		f.BrandName = brand.Name
	}
}

// WithAssignedHost binds the booking to a host fixture.
func WithAssignedHost(host UserFixture) AssignmentOption {
	return func(f *AssignmentFixture) {
		f.HostID = host.ID
		f.HostName = host.Name
	}
}

// OnAssignmentDate sets the booking date.
func OnAssignmentDate(date string) AssignmentOption {
	return func(f *AssignmentFixture) { f.Date = date }
}

// WithAssignmentSlots sets the booked slots.
func WithAssignmentSlots(slots ...string) AssignmentOption {
	return func(f *AssignmentFixture) { f.TimeSlots = append([]string(nil), slots...) }
}

// Application returns the fixture as an application.Assignment value.
func (f AssignmentFixture) Application() application.Assignment {
	return application.Assignment{
		ID:        f.ID,
		RoomID:    f.RoomID,
		RoomName:  f.RoomName,
		Date:      f.Date,
		BrandID:   f.BrandID,
		BrandName: f.BrandName,
		HostID:    f.HostID,
		HostName:  f.HostName,
		TimeSlots: append([]string(nil), f.TimeSlots...),
		CreatedAt: f.CreatedAt,
		CreatedBy: f.CreatedBy,
	}
}

// Input returns the fixture as an application.AssignmentInput.
func (f AssignmentFixture) Input() application.AssignmentInput {
	return application.AssignmentInput{
		RoomID:    f.RoomID,
		Date:      f.Date,
		BrandID:   f.BrandID,
		HostID:    f.HostID,
		TimeSlots: append([]string(nil), f.TimeSlots...),
	}
}

// BrandScheduleFixture represents a brand's weekly schedule template.
type BrandScheduleFixture struct {
	ID         string
	BrandID    string
	BrandName  string
	DaysOfWeek []string
	TimeSlots  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BrandScheduleOption configures the generated schedule fixture.
type BrandScheduleOption func(*BrandScheduleFixture)

// NewBrandScheduleFixture returns a deterministic weekly template. The
// default days include the weekday of ReferenceDate.
func NewBrandScheduleFixture(opts ...BrandScheduleOption) BrandScheduleFixture {
	idx := atomic.AddUint64(&scheduleCounter, 1)
	fixture := BrandScheduleFixture{
		ID:         fmt.Sprintf("schedule-%03d", idx),
		BrandID:    fmt.Sprintf("brand-%03d", idx),
		BrandName:  fmt.Sprintf("Brand %03d", idx),
		DaysOfWeek: []string{"Tuesday", "Thursday"},
		TimeSlots:  []string{"10:00", "14:00"},
		CreatedAt:  referenceTime,
		UpdatedAt:  referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// ScheduledForBrand binds the template to a brand fixture.
func ScheduledForBrand(brand BrandFixture) BrandScheduleOption {
	return func(f *BrandScheduleFixture) {
		f.BrandID = brand.ID
		f.BrandName = brand.Name
	}
}

// OnDays sets the weekday names of the template.
func OnDays(days ...string) BrandScheduleOption {
	return func(f *BrandScheduleFixture) { f.DaysOfWeek = append([]string(nil), days...) }
}

// WithScheduleSlots sets the slot template.
func WithScheduleSlots(slots ...string) BrandScheduleOption {
	return func(f *BrandScheduleFixture) { f.TimeSlots = append([]string(nil), slots...) }
}

// Application returns the fixture as an application.BrandSchedule value.
func (f BrandScheduleFixture) Application() application.BrandSchedule {
	return application.BrandSchedule{
		ID:         f.ID,
		BrandID:    f.BrandID,
		BrandName:  f.BrandName,
		DaysOfWeek: append([]string(nil), f.DaysOfWeek...),
		TimeSlots:  append([]string(nil), f.TimeSlots...),
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Input returns the fixture as an application.BrandScheduleInput.
func (f BrandScheduleFixture) Input() application.BrandScheduleInput {
	return application.BrandScheduleInput{
		BrandID:    f.BrandID,
		DaysOfWeek: append([]string(nil), f.DaysOfWeek...),
		TimeSlots:  append([]string(nil), f.TimeSlots...),
	}
}
