package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/persistence"
)

// UserRepository stores accounts under the user: prefix. It backs both
// the account management and the credential lookup interfaces.
type UserRepository struct {
	store persistence.RecordStore
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store persistence.RecordStore) *UserRepository {
	return &UserRepository{store: store}
}

func userKey(id string) string {
	return persistence.KeyPrefixUser + id
}

func userToRecord(user application.User, passwordHash string, disabled bool) persistence.UserRecord {
	return persistence.UserRecord{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		BrandTags:    user.BrandTags,
		PasswordHash: passwordHash,
		Disabled:     disabled,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func userFromRecord(rec persistence.UserRecord) application.User {
	return application.User{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		Role:      application.Role(rec.Role),
		BrandTags: rec.BrandTags,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// CreateUser stores a new account. The email must not belong to another
// account; a taken email fails with persistence.ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, user application.User, passwordHash string) (application.User, error) {
	records, err := r.listRecords(ctx)
	if err != nil {
		return application.User{}, err
	}
	for _, rec := range records {
		if rec.Email == user.Email {
			return application.User{}, persistence.ErrDuplicate
		}
	}

	value, err := json.Marshal(userToRecord(user, passwordHash, false))
	if err != nil {
		return application.User{}, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := r.store.Put(ctx, userKey(user.ID), value); err != nil {
		return application.User{}, err
	}
	return user, nil
}

// GetUser returns the account with the given ID.
func (r *UserRepository) GetUser(ctx context.Context, id string) (application.User, error) {
	rec, err := r.getRecord(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return userFromRecord(rec), nil
}

// UpdateUser replaces the stored account attributes while preserving the
// password hash.
func (r *UserRepository) UpdateUser(ctx context.Context, user application.User) (application.User, error) {
	existing, err := r.getRecord(ctx, user.ID)
	if err != nil {
		return application.User{}, err
	}

	if user.Email != existing.Email {
		records, err := r.listRecords(ctx)
		if err != nil {
			return application.User{}, err
		}
		for _, rec := range records {
			if rec.ID != user.ID && rec.Email == user.Email {
				return application.User{}, persistence.ErrDuplicate
			}
		}
	}

	updated := userToRecord(user, existing.PasswordHash, existing.Disabled)
	updated.CreatedAt = existing.CreatedAt
	value, err := json.Marshal(updated)
	if err != nil {
		return application.User{}, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := r.store.Put(ctx, userKey(user.ID), value); err != nil {
		return application.User{}, err
	}
	return userFromRecord(updated), nil
}

// DeleteUser removes the account with the given ID.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	return r.store.Delete(ctx, userKey(id))
}

// ListUsers returns every stored account.
func (r *UserRepository) ListUsers(ctx context.Context) ([]application.User, error) {
	records, err := r.listRecords(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]application.User, 0, len(records))
	for _, rec := range records {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

// GetUserCredentialsByEmail returns the account and password hash for the
// given email address.
func (r *UserRepository) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	records, err := r.listRecords(ctx)
	if err != nil {
		return application.UserCredentials{}, err
	}
	for _, rec := range records {
		if rec.Email == email {
			return application.UserCredentials{
				User:         userFromRecord(rec),
				PasswordHash: rec.PasswordHash,
				Disabled:     rec.Disabled,
			}, nil
		}
	}
	return application.UserCredentials{}, persistence.ErrNotFound
}

func (r *UserRepository) getRecord(ctx context.Context, id string) (persistence.UserRecord, error) {
	value, err := r.store.Get(ctx, userKey(id))
	if err != nil {
		return persistence.UserRecord{}, err
	}
	var rec persistence.UserRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return persistence.UserRecord{}, fmt.Errorf("failed to decode user record: %w", err)
	}
	return rec, nil
}

func (r *UserRepository) listRecords(ctx context.Context) ([]persistence.UserRecord, error) {
	stored, err := r.store.ListByPrefix(ctx, persistence.KeyPrefixUser)
	if err != nil {
		return nil, err
	}
	records := make([]persistence.UserRecord, 0, len(stored))
	for _, item := range stored {
		var rec persistence.UserRecord
		if err := json.Unmarshal(item.Value, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode user record %s: %w", item.Key, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
