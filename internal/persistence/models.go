package persistence

import "time"

// Key prefixes for the record store. Every stored document lives under
// exactly one prefix; prefix scans are the only query primitive.
const (
	KeyPrefixUser          = "user:"
	KeyPrefixBrand         = "brand:"
	KeyPrefixRoom          = "room:"
	KeyPrefixAvailability  = "schedule:"
	KeyPrefixAssignment    = "assignment:"
	KeyPrefixBrandSchedule = "brand-schedule:"
	KeyPrefixSession       = "session:"
)

// Record is one stored document: an opaque key and a JSON value.
type Record struct {
	Key   string
	Value []byte
}

// Claim scopes. Room claims keep two bookings out of the same room slot;
// host claims keep one host out of two rooms in the same slot.
const (
	ClaimScopeRoom = "room"
	ClaimScopeHost = "host"
)

// SlotClaim names one (scope, owner, date, slot) tuple an assignment
// occupies. Claims are unique per store; inserting a held claim fails
// the write.
type SlotClaim struct {
	Scope   string
	OwnerID string
	Date    string
	Slot    string
}

// UserRecord is the stored shape of an account.
type UserRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	BrandTags    []string  `json:"brandTags,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	Disabled     bool      `json:"disabled,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BrandRecord is the stored shape of a sponsor brand.
type BrandRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomRecord is the stored shape of a streaming room.
type RoomRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AvailabilityRecord is the stored shape of a host's declared free hours.
type AvailabilityRecord struct {
	ID        string    `json:"id"`
	HostID    string    `json:"hostId"`
	HostName  string    `json:"hostName"`
	Date      string    `json:"date"`
	TimeSlots []string  `json:"timeSlots"`
	CreatedAt time.Time `json:"createdAt"`
}

// AssignmentRecord is the stored shape of a committed booking.
type AssignmentRecord struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	RoomName  string    `json:"roomName"`
	Date      string    `json:"date"`
	BrandID   string    `json:"brandId"`
	BrandName string    `json:"brandName"`
	HostID    string    `json:"hostId"`
	HostName  string    `json:"hostName"`
	TimeSlots []string  `json:"timeSlots"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// BrandScheduleRecord is the stored shape of a recurring weekly pattern.
type BrandScheduleRecord struct {
	ID         string    `json:"id"`
	BrandID    string    `json:"brandId"`
	BrandName  string    `json:"brandName"`
	DaysOfWeek []string  `json:"daysOfWeek"`
	TimeSlots  []string  `json:"timeSlots"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SessionRecord is the stored shape of an issued session.
type SessionRecord struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}
