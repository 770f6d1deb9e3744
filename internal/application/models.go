package application

import "time"

// Role identifies the permission tier of an account.
type Role string

const (
	// RoleAdmin may manage brands, rooms, schedules, and assignments.
	RoleAdmin Role = "admin"
	// RoleHost may manage their own availability and view their bookings.
	RoleHost Role = "host"
)

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// UserInput captures caller provided user attributes.
type UserInput struct {
	Email     string
	Name      string
	Role      Role
	BrandTags []string
}

// User represents a host or admin account exposed by the application services.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	BrandTags []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserParams wraps the data required to create a user.
type CreateUserParams struct {
	Principal Principal
	Input     UserInput
	Password  string
}

// UpdateUserParams wraps the data required to update a user.
type UpdateUserParams struct {
	Principal Principal
	UserID    string
	Input     UserInput
}

// UserCredentials models the authentication attributes persisted for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
	Disabled     bool
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User    User
	Session Session
}

// SignupParams captures the data required to self-register a host account.
type SignupParams struct {
	Email    string
	Name     string
	Password string
}

// BrandInput captures caller provided brand fields.
type BrandInput struct {
	Name        string
	Description string
}

// Brand represents a sponsor whose sessions are streamed from the studio.
type Brand struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateBrandParams wraps the data required to create a brand.
type CreateBrandParams struct {
	Principal Principal
	Input     BrandInput
}

// UpdateBrandParams wraps the data required to update a brand.
type UpdateBrandParams struct {
	Principal Principal
	BrandID   string
	Input     BrandInput
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name        string
	Description string
	IsActive    bool
}

// Room represents a physical streaming room.
type Room struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// UpdateRoomParams wraps the data required to update a room.
type UpdateRoomParams struct {
	Principal Principal
	RoomID    string
	Input     RoomInput
}

// BrandScheduleInput captures caller provided recurring schedule fields.
type BrandScheduleInput struct {
	BrandID    string
	DaysOfWeek []string
	TimeSlots  []string
}

// BrandSchedule represents a brand's recurring weekly streaming pattern.
type BrandSchedule struct {
	ID         string
	BrandID    string
	BrandName  string
	DaysOfWeek []string
	TimeSlots  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateBrandScheduleParams wraps the data required to create a brand schedule.
type CreateBrandScheduleParams struct {
	Principal Principal
	Input     BrandScheduleInput
}

// UpdateBrandScheduleParams wraps the data required to update a brand schedule.
type UpdateBrandScheduleParams struct {
	Principal  Principal
	ScheduleID string
	Input      BrandScheduleInput
}

// HostAvailability represents a host's declared free hours for one day.
type HostAvailability struct {
	ID        string
	HostID    string
	HostName  string
	Date      string
	TimeSlots []string
	CreatedAt time.Time
}

// SubmitAvailabilityParams wraps the data required to declare availability.
type SubmitAvailabilityParams struct {
	Principal Principal
	Date      string
	TimeSlots []string
}

// Assignment represents a committed booking of a host to a room.
type Assignment struct {
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

// AssignmentInput captures caller provided assignment fields.
type AssignmentInput struct {
	RoomID    string
	Date      string
	BrandID   string
	HostID    string
	TimeSlots []string
}

// CreateAssignmentParams wraps the data required to create an assignment.
type CreateAssignmentParams struct {
	Principal Principal
	Input     AssignmentInput
}

// ValidateAssignmentParams wraps the data required to dry-run an assignment.
type ValidateAssignmentParams struct {
	Principal Principal
	Input     AssignmentInput
}

// HostScheduleStats summarizes one host's declared and booked hours.
type HostScheduleStats struct {
	HostID         string
	HostName       string
	TotalDays      int
	TotalSlots     int
	AssignedSlots  int
	RemainingSlots int
}
