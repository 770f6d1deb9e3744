package application

import (
	"context"
	"strconv"
	"time"

	"github.com/example/studio-scheduler/internal/persistence"
	"github.com/example/studio-scheduler/internal/timeslot"
)

// In-memory repository stubs shared across the service tests. Each stub
// keeps records in insertion order and honors the persistence sentinels.

type userRepoStub struct {
	users     []User
	hashes    map[string]string
	createErr error
	listErr   error
}

func newUserRepoStub(users ...User) *userRepoStub {
	return &userRepoStub{users: users, hashes: make(map[string]string)}
}

func (r *userRepoStub) CreateUser(_ context.Context, user User, passwordHash string) (User, error) {
	if r.createErr != nil {
		return User{}, r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return User{}, persistence.ErrDuplicate
		}
	}
	r.users = append(r.users, user)
	r.hashes[user.ID] = passwordHash
	return user, nil
}

func (r *userRepoStub) GetUser(_ context.Context, id string) (User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, persistence.ErrNotFound
}

func (r *userRepoStub) UpdateUser(_ context.Context, user User) (User, error) {
	for i, existing := range r.users {
		if existing.ID == user.ID {
			r.users[i] = user
			return user, nil
		}
	}
	return User{}, persistence.ErrNotFound
}

func (r *userRepoStub) DeleteUser(_ context.Context, id string) error {
	for i, existing := range r.users {
		if existing.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *userRepoStub) ListUsers(_ context.Context) ([]User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *userRepoStub) GetUserCredentialsByEmail(_ context.Context, email string) (UserCredentials, error) {
	for _, user := range r.users {
		if user.Email == email {
			return UserCredentials{User: user, PasswordHash: r.hashes[user.ID]}, nil
		}
	}
	return UserCredentials{}, persistence.ErrNotFound
}

type sessionRepoStub struct {
	sessions    map[string]Session
	deleteCalls []time.Time
	createErr   error
	deleteErr   error
}

func newSessionRepoStub() *sessionRepoStub {
	return &sessionRepoStub{sessions: make(map[string]Session)}
}

func (r *sessionRepoStub) seed(session Session) {
	r.sessions[session.Token] = session
}

func (r *sessionRepoStub) CreateSession(_ context.Context, session Session) (Session, error) {
	if r.createErr != nil {
		return Session{}, r.createErr
	}
	r.sessions[session.Token] = session
	return session, nil
}

func (r *sessionRepoStub) GetSession(_ context.Context, token string) (Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (r *sessionRepoStub) UpdateSession(_ context.Context, session Session) (Session, error) {
	r.sessions[session.Token] = session
	return session, nil
}

func (r *sessionRepoStub) RevokeSession(_ context.Context, token string, revokedAt time.Time) (Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return Session{}, persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	r.sessions[token] = session
	return session, nil
}

func (r *sessionRepoStub) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleteCalls = append(r.deleteCalls, reference)
	return nil
}

type brandRepoStub struct {
	brands []Brand
}

func newBrandRepoStub(brands ...Brand) *brandRepoStub {
	return &brandRepoStub{brands: brands}
}

func (r *brandRepoStub) CreateBrand(_ context.Context, brand Brand) (Brand, error) {
	r.brands = append(r.brands, brand)
	return brand, nil
}

func (r *brandRepoStub) GetBrand(_ context.Context, id string) (Brand, error) {
	for _, brand := range r.brands {
		if brand.ID == id {
			return brand, nil
		}
	}
	return Brand{}, persistence.ErrNotFound
}

func (r *brandRepoStub) UpdateBrand(_ context.Context, brand Brand) (Brand, error) {
	for i, existing := range r.brands {
		if existing.ID == brand.ID {
			r.brands[i] = brand
			return brand, nil
		}
	}
	return Brand{}, persistence.ErrNotFound
}

func (r *brandRepoStub) DeleteBrand(_ context.Context, id string) error {
	for i, existing := range r.brands {
		if existing.ID == id {
			r.brands = append(r.brands[:i], r.brands[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *brandRepoStub) ListBrands(_ context.Context) ([]Brand, error) {
	out := make([]Brand, len(r.brands))
	copy(out, r.brands)
	return out, nil
}

type roomRepoStub struct {
	rooms []Room
}

func newRoomRepoStub(rooms ...Room) *roomRepoStub {
	return &roomRepoStub{rooms: rooms}
}

func (r *roomRepoStub) CreateRoom(_ context.Context, room Room) (Room, error) {
	r.rooms = append(r.rooms, room)
	return room, nil
}

func (r *roomRepoStub) GetRoom(_ context.Context, id string) (Room, error) {
	for _, room := range r.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return Room{}, persistence.ErrNotFound
}

func (r *roomRepoStub) UpdateRoom(_ context.Context, room Room) (Room, error) {
	for i, existing := range r.rooms {
		if existing.ID == room.ID {
			r.rooms[i] = room
			return room, nil
		}
	}
	return Room{}, persistence.ErrNotFound
}

func (r *roomRepoStub) DeleteRoom(_ context.Context, id string) error {
	for i, existing := range r.rooms {
		if existing.ID == id {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *roomRepoStub) ListRooms(_ context.Context) ([]Room, error) {
	out := make([]Room, len(r.rooms))
	copy(out, r.rooms)
	return out, nil
}

type brandScheduleRepoStub struct {
	schedules []BrandSchedule
}

func newBrandScheduleRepoStub(schedules ...BrandSchedule) *brandScheduleRepoStub {
	return &brandScheduleRepoStub{schedules: schedules}
}

func (r *brandScheduleRepoStub) CreateBrandSchedule(_ context.Context, schedule BrandSchedule) (BrandSchedule, error) {
	r.schedules = append(r.schedules, schedule)
	return schedule, nil
}

func (r *brandScheduleRepoStub) GetBrandSchedule(_ context.Context, id string) (BrandSchedule, error) {
	for _, schedule := range r.schedules {
		if schedule.ID == id {
			return schedule, nil
		}
	}
	return BrandSchedule{}, persistence.ErrNotFound
}

func (r *brandScheduleRepoStub) UpdateBrandSchedule(_ context.Context, schedule BrandSchedule) (BrandSchedule, error) {
	for i, existing := range r.schedules {
		if existing.ID == schedule.ID {
			r.schedules[i] = schedule
			return schedule, nil
		}
	}
	return BrandSchedule{}, persistence.ErrNotFound
}

func (r *brandScheduleRepoStub) DeleteBrandSchedule(_ context.Context, id string) error {
	for i, existing := range r.schedules {
		if existing.ID == id {
			r.schedules = append(r.schedules[:i], r.schedules[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *brandScheduleRepoStub) ListBrandSchedules(_ context.Context) ([]BrandSchedule, error) {
	out := make([]BrandSchedule, len(r.schedules))
	copy(out, r.schedules)
	return out, nil
}

type availabilityRepoStub struct {
	records []HostAvailability
}

func newAvailabilityRepoStub(records ...HostAvailability) *availabilityRepoStub {
	return &availabilityRepoStub{records: records}
}

func (r *availabilityRepoStub) CreateAvailability(_ context.Context, availability HostAvailability) (HostAvailability, error) {
	r.records = append(r.records, availability)
	return availability, nil
}

func (r *availabilityRepoStub) GetAvailability(_ context.Context, id string) (HostAvailability, error) {
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return HostAvailability{}, persistence.ErrNotFound
}

func (r *availabilityRepoStub) DeleteAvailability(_ context.Context, id string) error {
	for i, record := range r.records {
		if record.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *availabilityRepoStub) ListAvailability(_ context.Context) ([]HostAvailability, error) {
	out := make([]HostAvailability, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *availabilityRepoStub) ListAvailabilityByDate(_ context.Context, date string) ([]HostAvailability, error) {
	var out []HostAvailability
	for _, record := range r.records {
		if record.Date == date {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *availabilityRepoStub) ListAvailabilityByHost(_ context.Context, hostID string) ([]HostAvailability, error) {
	var out []HostAvailability
	for _, record := range r.records {
		if record.HostID == hostID {
			out = append(out, record)
		}
	}
	return out, nil
}

// assignmentRepoStub mirrors the production claim behavior: a create fails
// with ErrSlotTaken when any (room, date, slot) tuple is already held.
type assignmentRepoStub struct {
	records []Assignment
}

func newAssignmentRepoStub(records ...Assignment) *assignmentRepoStub {
	return &assignmentRepoStub{records: records}
}

func (r *assignmentRepoStub) CreateAssignment(_ context.Context, assignment Assignment) (Assignment, error) {
	requested := timeslot.FromSlice(assignment.TimeSlots)
	for _, existing := range r.records {
		if existing.RoomID != assignment.RoomID || existing.Date != assignment.Date {
			continue
		}
		if timeslot.AnyOverlap(requested, timeslot.FromSlice(existing.TimeSlots)) {
			return Assignment{}, persistence.ErrSlotTaken
		}
	}
	r.records = append(r.records, assignment)
	return assignment, nil
}

func (r *assignmentRepoStub) GetAssignment(_ context.Context, id string) (Assignment, error) {
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return Assignment{}, persistence.ErrNotFound
}

func (r *assignmentRepoStub) DeleteAssignment(_ context.Context, id string) error {
	for i, record := range r.records {
		if record.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (r *assignmentRepoStub) ListAssignments(_ context.Context) ([]Assignment, error) {
	out := make([]Assignment, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *assignmentRepoStub) ListAssignmentsByDate(_ context.Context, date string) ([]Assignment, error) {
	var out []Assignment
	for _, record := range r.records {
		if record.Date == date {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *assignmentRepoStub) ListAssignmentsByHost(_ context.Context, hostID string) ([]Assignment, error) {
	var out []Assignment
	for _, record := range r.records {
		if record.HostID == hostID {
			out = append(out, record)
		}
	}
	return out, nil
}

// sequentialIDs returns a generator yielding prefix-1, prefix-2, and so on.
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

func fixedNow() time.Time {
	return time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
}
