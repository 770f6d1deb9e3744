package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/persistence"
)

// SessionRepository stores issued sessions under the session: prefix,
// keyed by token so request authentication is a single point read.
type SessionRepository struct {
	store persistence.RecordStore
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(store persistence.RecordStore) *SessionRepository {
	return &SessionRepository{store: store}
}

func sessionKey(token string) string {
	return persistence.KeyPrefixSession + token
}

func sessionToRecord(session application.Session) persistence.SessionRecord {
	return persistence.SessionRecord{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		RevokedAt: session.RevokedAt,
	}
}

func sessionFromRecord(rec persistence.SessionRecord) application.Session {
	return application.Session{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Token:     rec.Token,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		RevokedAt: rec.RevokedAt,
	}
}

// CreateSession stores a newly issued session.
func (r *SessionRepository) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	if err := r.put(ctx, session); err != nil {
		return application.Session{}, err
	}
	return session, nil
}

// GetSession returns the session issued under the given token.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (application.Session, error) {
	value, err := r.store.Get(ctx, sessionKey(token))
	if err != nil {
		return application.Session{}, err
	}
	var rec persistence.SessionRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return application.Session{}, fmt.Errorf("failed to decode session record: %w", err)
	}
	return sessionFromRecord(rec), nil
}

// UpdateSession replaces the stored session.
func (r *SessionRepository) UpdateSession(ctx context.Context, session application.Session) (application.Session, error) {
	if _, err := r.GetSession(ctx, session.Token); err != nil {
		return application.Session{}, err
	}
	if err := r.put(ctx, session); err != nil {
		return application.Session{}, err
	}
	return session, nil
}

// RevokeSession marks the session issued under token as revoked.
func (r *SessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	session, err := r.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, err
	}
	session.RevokedAt = &revokedAt
	session.UpdatedAt = revokedAt
	if err := r.put(ctx, session); err != nil {
		return application.Session{}, err
	}
	return session, nil
}

// DeleteExpiredSessions removes every session that expired before the
// reference time.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	stored, err := r.store.ListByPrefix(ctx, persistence.KeyPrefixSession)
	if err != nil {
		return err
	}
	for _, item := range stored {
		var rec persistence.SessionRecord
		if err := json.Unmarshal(item.Value, &rec); err != nil {
			return fmt.Errorf("failed to decode session record %s: %w", item.Key, err)
		}
		if !rec.ExpiresAt.Before(reference) {
			continue
		}
		if err := r.store.Delete(ctx, item.Key); err != nil && !errors.Is(err, persistence.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (r *SessionRepository) put(ctx context.Context, session application.Session) error {
	value, err := json.Marshal(sessionToRecord(session))
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.store.Put(ctx, sessionKey(session.Token), value)
}
