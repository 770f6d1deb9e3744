package testfixtures

import (
	"time"

	"github.com/example/studio-scheduler/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock  *Clock
	IDs    *IDGenerator
	Tokens *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:  NewClock(time.Time{}),
		IDs:    NewIDGenerator("id"),
		Tokens: NewIDGenerator("token"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDs == nil {
		factory.IDs = NewIDGenerator("id")
	}
	if factory.Tokens == nil {
		factory.Tokens = NewIDGenerator("token")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDs = generator
	}
}

// WithTokenGenerator overrides the session token generator.
func WithTokenGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Tokens = generator
	}
}

// RepositorySet bundles the repositories the application services consume.
// A SQLiteHarness satisfies every field.
type RepositorySet struct {
	Users          application.UserRepository
	Credentials    application.CredentialStore
	Sessions       application.SessionRepository
	Brands         application.BrandRepository
	Rooms          application.RoomRepository
	BrandSchedules application.BrandScheduleRepository
	Availability   application.AvailabilityRepository
	Assignments    application.AssignmentRepository
}

// Repositories adapts a SQLiteHarness into a RepositorySet.
func (h *SQLiteHarness) Repositories() RepositorySet {
	return RepositorySet{
		Users:          h.Users,
		Credentials:    h.Users,
		Sessions:       h.Sessions,
		Brands:         h.Brands,
		Rooms:          h.Rooms,
		BrandSchedules: h.BrandSchedules,
		Availability:   h.Availability,
		Assignments:    h.Assignments,
	}
}

// ServiceSet bundles fully wired application services for tests.
type ServiceSet struct {
	Auth           *application.AuthService
	Users          *application.UserService
	Brands         *application.BrandService
	Rooms          *application.RoomService
	BrandSchedules *application.BrandScheduleService
	Availability   *application.AvailabilityService
	Assignments    *application.AssignmentService
	Matching       *application.MatchingService
}

// Services wires every application service over the given repositories with
// the factory's deterministic clock and generators.
func (f *ServiceFactory) Services(repos RepositorySet, sessionTTL time.Duration) *ServiceSet {
	ids := f.IDs.NextFunc()
	tokens := f.Tokens.NextFunc()
	now := f.Clock.NowFunc()

	return &ServiceSet{
		Auth:           application.NewAuthService(repos.Credentials, repos.Sessions, ids, tokens, now, sessionTTL),
		Users:          application.NewUserService(repos.Users, ids, now),
		Brands:         application.NewBrandService(repos.Brands, ids, now),
		Rooms:          application.NewRoomService(repos.Rooms, ids, now),
		BrandSchedules: application.NewBrandScheduleService(repos.BrandSchedules, repos.Brands, ids, now),
		Availability:   application.NewAvailabilityService(repos.Availability, repos.Assignments, repos.Users, ids, now),
		Assignments:    application.NewAssignmentService(repos.Assignments, repos.Availability, repos.Rooms, repos.Brands, repos.Users, ids, now),
		Matching:       application.NewMatchingService(repos.Availability, repos.Assignments, repos.Rooms, repos.BrandSchedules, repos.Users),
	}
}
