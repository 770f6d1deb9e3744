package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("issues sessions for valid credentials", func(t *testing.T) {
		t.Parallel()

		now := fixedNow()
		users := newUserRepoStub(User{ID: "user-1", Email: "alice@example.com", Name: "Alice", Role: RoleHost})
		users.hashes["user-1"] = "stored-hash"
		sessions := newSessionRepoStub()

		svc := NewAuthService(users, sessions, sequentialIDs("session"), sequentialIDs("token"), func() time.Time { return now }, time.Hour)
		svc.verifyPassword = func(hash, password string) error {
			if hash != "stored-hash" || password != "secret123" {
				return ErrInvalidCredentials
			}
			return nil
		}

		result, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "Alice@Example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if result.User.ID != "user-1" {
			t.Fatalf("unexpected user: %+v", result.User)
		}
		if result.Session.Token != "token-1" {
			t.Fatalf("expected issued token, got %s", result.Session.Token)
		}
		if !result.Session.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Fatalf("unexpected expiry %v", result.Session.ExpiresAt)
		}
		if len(sessions.deleteCalls) != 1 {
			t.Fatalf("expected expired-session pruning, got %d calls", len(sessions.deleteCalls))
		}
	})

	t.Run("rejects wrong passwords with sentinel error", func(t *testing.T) {
		t.Parallel()

		users := newUserRepoStub(User{ID: "user-1", Email: "alice@example.com"})
		svc := NewAuthService(users, newSessionRepoStub(), nil, nil, fixedNow, time.Hour)
		svc.verifyPassword = func(string, string) error { return ErrInvalidCredentials }

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "alice@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("maps unknown accounts to invalid credentials", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(newUserRepoStub(), newSessionRepoStub(), nil, nil, fixedNow, time.Hour)

		_, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "nobody@example.com", Password: "secret123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()

	t.Run("creates host accounts", func(t *testing.T) {
		t.Parallel()

		users := newUserRepoStub()
		svc := NewAuthService(users, newSessionRepoStub(), sequentialIDs("user"), sequentialIDs("token"), fixedNow, time.Hour)

		user, err := svc.Signup(context.Background(), SignupParams{Email: "Bob@Example.com", Name: " Bob ", Password: "longenough"})
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
		if user.Role != RoleHost {
			t.Fatalf("expected host role, got %s", user.Role)
		}
		if user.Email != "bob@example.com" || user.Name != "Bob" {
			t.Fatalf("expected normalized fields, got %+v", user)
		}
		if users.hashes[user.ID] == "" || users.hashes[user.ID] == "longenough" {
			t.Fatalf("expected password to be stored hashed")
		}
	})

	t.Run("rejects invalid input with field errors", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(newUserRepoStub(), newSessionRepoStub(), nil, nil, fixedNow, time.Hour)

		_, err := svc.Signup(context.Background(), SignupParams{Email: "not-an-email", Name: "", Password: "short"})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"email", "name", "password"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field error for %s, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("maps duplicate emails", func(t *testing.T) {
		t.Parallel()

		users := newUserRepoStub(User{ID: "user-1", Email: "bob@example.com"})
		svc := NewAuthService(users, newSessionRepoStub(), sequentialIDs("user"), nil, fixedNow, time.Hour)

		_, err := svc.Signup(context.Background(), SignupParams{Email: "bob@example.com", Name: "Bob", Password: "longenough"})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	t.Parallel()

	t.Run("returns the principal for active sessions", func(t *testing.T) {
		t.Parallel()

		now := fixedNow()
		users := newUserRepoStub(User{ID: "user-1", Email: "alice@example.com", Role: RoleAdmin})
		sessions := newSessionRepoStub()
		sessions.seed(Session{ID: "session-1", UserID: "user-1", Token: "tok", ExpiresAt: now.Add(time.Minute)})

		svc := NewAuthService(users, sessions, nil, nil, func() time.Time { return now }, time.Hour)

		principal, err := svc.ValidateSession(context.Background(), "tok")
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		if principal.UserID != "user-1" || !principal.IsAdmin() {
			t.Fatalf("unexpected principal: %+v", principal)
		}
	})

	t.Run("rejects expired sessions", func(t *testing.T) {
		t.Parallel()

		now := fixedNow()
		sessions := newSessionRepoStub()
		sessions.seed(Session{ID: "session-1", UserID: "user-1", Token: "tok", ExpiresAt: now.Add(-time.Minute)})

		svc := NewAuthService(newUserRepoStub(), sessions, nil, nil, func() time.Time { return now }, time.Hour)

		_, err := svc.ValidateSession(context.Background(), "tok")
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("rejects revoked sessions", func(t *testing.T) {
		t.Parallel()

		now := fixedNow()
		revoked := now.Add(-time.Minute)
		sessions := newSessionRepoStub()
		sessions.seed(Session{ID: "session-1", UserID: "user-1", Token: "tok", ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked})

		svc := NewAuthService(newUserRepoStub(), sessions, nil, nil, func() time.Time { return now }, time.Hour)

		_, err := svc.ValidateSession(context.Background(), "tok")
		if !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})

	t.Run("maps unknown tokens to unauthorized", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(newUserRepoStub(), newSessionRepoStub(), nil, nil, fixedNow, time.Hour)

		_, err := svc.ValidateSession(context.Background(), "missing")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestAuthService_EnsureBootstrapAdmin(t *testing.T) {
	t.Parallel()

	t.Run("seeds the admin account once", func(t *testing.T) {
		t.Parallel()

		users := newUserRepoStub()
		svc := NewAuthService(users, newSessionRepoStub(), sequentialIDs("user"), nil, fixedNow, time.Hour)

		if err := svc.EnsureBootstrapAdmin(context.Background(), "Admin@Example.com", "Ops", "bootstrap-pass"); err != nil {
			t.Fatalf("EnsureBootstrapAdmin failed: %v", err)
		}
		if len(users.users) != 1 || users.users[0].Role != RoleAdmin {
			t.Fatalf("expected one admin account, got %+v", users.users)
		}

		if err := svc.EnsureBootstrapAdmin(context.Background(), "admin@example.com", "Ops", "bootstrap-pass"); err != nil {
			t.Fatalf("second EnsureBootstrapAdmin failed: %v", err)
		}
		if len(users.users) != 1 {
			t.Fatalf("expected existing account untouched, got %d accounts", len(users.users))
		}
	})

	t.Run("skips when not configured", func(t *testing.T) {
		t.Parallel()

		users := newUserRepoStub()
		svc := NewAuthService(users, newSessionRepoStub(), nil, nil, fixedNow, time.Hour)

		if err := svc.EnsureBootstrapAdmin(context.Background(), "", "", ""); err != nil {
			t.Fatalf("expected nil for empty config, got %v", err)
		}
		if len(users.users) != 0 {
			t.Fatalf("expected no account, got %+v", users.users)
		}
	})
}
