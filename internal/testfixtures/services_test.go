package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/example/studio-scheduler/internal/application"
)

// Exercises the full stack: services from the factory over real SQLite
// repositories, from signup through booking a validated assignment.
func TestServiceFactoryOverSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := NewSQLiteHarness(t)
	factory := NewServiceFactory()
	services := factory.Services(harness.Repositories(), 24*time.Hour)

	if err := services.Auth.EnsureBootstrapAdmin(ctx, "admin@example.com", "Admin", "bootstrap-password"); err != nil {
		t.Fatalf("EnsureBootstrapAdmin returned error: %v", err)
	}

	adminLogin, err := services.Auth.Authenticate(ctx, application.AuthenticateParams{
		Email:    "admin@example.com",
		Password: "bootstrap-password",
	})
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	admin := application.Principal{UserID: adminLogin.User.ID, Role: adminLogin.User.Role}
	if !admin.IsAdmin() {
		t.Fatalf("bootstrap account role = %q, want admin", adminLogin.User.Role)
	}

	host, err := services.Auth.Signup(ctx, application.SignupParams{
		Email:    "mika@example.com",
		Name:     "Mika",
		Password: "host-password",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	hostPrincipal := application.Principal{UserID: host.ID, Role: host.Role}

	room, err := services.Rooms.CreateRoom(ctx, application.CreateRoomParams{
		Principal: admin,
		Input:     application.RoomInput{Name: "Studio A", IsActive: true},
	})
	if err != nil {
		t.Fatalf("CreateRoom returned error: %v", err)
	}

	brand, err := services.Brands.CreateBrand(ctx, application.CreateBrandParams{
		Principal: admin,
		Input:     application.BrandInput{Name: "Glowline"},
	})
	if err != nil {
		t.Fatalf("CreateBrand returned error: %v", err)
	}

	if _, err := services.Availability.SubmitAvailability(ctx, application.SubmitAvailabilityParams{
		Principal: hostPrincipal,
		Date:      ReferenceDate,
		TimeSlots: []string{"10:00", "14:00"},
	}); err != nil {
		t.Fatalf("SubmitAvailability returned error: %v", err)
	}

	input := application.AssignmentInput{
		RoomID:    room.ID,
		Date:      ReferenceDate,
		BrandID:   brand.ID,
		HostID:    host.ID,
		TimeSlots: []string{"10:00"},
	}

	verdict, err := services.Assignments.ValidateAssignment(ctx, application.ValidateAssignmentParams{
		Principal: admin,
		Input:     input,
	})
	if err != nil {
		t.Fatalf("ValidateAssignment returned error: %v", err)
	}
	if !verdict.Valid {
		t.Fatalf("verdict = %+v, want valid", verdict)
	}

	assignment, err := services.Assignments.CreateAssignment(ctx, application.CreateAssignmentParams{
		Principal: admin,
		Input:     input,
	})
	if err != nil {
		t.Fatalf("CreateAssignment returned error: %v", err)
	}
	if assignment.RoomName != "Studio A" || assignment.HostName != "Mika" || assignment.BrandName != "Glowline" {
		t.Fatalf("assignment denormalized names = %+v", assignment)
	}
	if assignment.CreatedBy != admin.UserID {
		t.Fatalf("CreatedBy = %q, want %q", assignment.CreatedBy, admin.UserID)
	}

	// The booked slot must now be rejected while the untouched slot stays open.
	verdict, err = services.Assignments.ValidateAssignment(ctx, application.ValidateAssignmentParams{
		Principal: admin,
		Input:     input,
	})
	if err != nil {
		t.Fatalf("ValidateAssignment after booking returned error: %v", err)
	}
	if verdict.Valid {
		t.Fatal("expected verdict to reject the already booked slot")
	}

	report, err := services.Matching.RoomAvailability(ctx, admin, room.ID, ReferenceDate)
	if err != nil {
		t.Fatalf("RoomAvailability returned error: %v", err)
	}
	var sawBookedSlot bool
	for _, slot := range report.Availability {
		if slot.TimeSlot == "10:00" {
			sawBookedSlot = true
			if slot.IsAvailable {
				t.Fatal("expected booked slot to be reported occupied")
			}
			if slot.Assignment == nil || slot.Assignment.ID != assignment.ID {
				t.Fatalf("occupying assignment = %+v", slot.Assignment)
			}
		}
	}
	if !sawBookedSlot {
		t.Fatalf("slot report missing booked slot: %+v", report.Availability)
	}

	rooms, err := services.Assignments.MyRooms(ctx, hostPrincipal)
	if err != nil {
		t.Fatalf("MyRooms returned error: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Room.ID != room.ID || len(rooms[0].Assignments) != 1 {
		t.Fatalf("MyRooms = %+v", rooms)
	}
}
