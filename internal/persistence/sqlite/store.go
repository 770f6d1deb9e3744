// Package sqlite persists records in a single SQLite database. Every
// domain document is stored as a JSON value under a prefixed key in the
// records table; assignment slot claims live in a separate table whose
// primary key enforces one booking per (scope, owner, date, slot), with
// a room-scoped and a host-scoped claim per booked hour.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/studio-scheduler/internal/persistence"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS slot_claims (
	scope      TEXT NOT NULL,
	owner_id   TEXT NOT NULL,
	date       TEXT NOT NULL,
	slot       TEXT NOT NULL,
	record_key TEXT NOT NULL,
	PRIMARY KEY (scope, owner_id, date, slot)
);

CREATE INDEX IF NOT EXISTS idx_slot_claims_record_key ON slot_claims (record_key);
`

// Store is the SQLite-backed record store.
type Store struct {
	db     *sql.DB
	retry  *RetryHelper
	mapper *ErrorMapper
}

var _ persistence.RecordStore = (*Store)(nil)

// Open opens the database at dsn and configures the connection pool.
// SQLite allows a single writer, so the pool is capped at one connection.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	return &Store{
		db:     db,
		retry:  NewRetryHelper(DefaultRetryConfig()),
		mapper: NewErrorMapper(),
	}, nil
}

// Migrate creates the schema. It is idempotent and safe to run on every
// startup.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping tests the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Put creates or replaces the record under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.retry.WithRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, string(value), time.Now().UTC().Format(time.RFC3339))
		return err
	})
}

// Get returns the record value under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err != nil {
		return nil, s.mapper.MapError(err)
	}
	return []byte(value), nil
}

// Delete removes the record under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.retry.WithRetry(ctx, func() error {
		result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

// ListByPrefix returns every record whose key starts with prefix, ordered
// by key.
func (s *Store) ListByPrefix(ctx context.Context, prefix string) ([]persistence.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM records WHERE key LIKE ? || '%' ORDER BY key", prefix)
	if err != nil {
		return nil, s.mapper.MapError(err)
	}
	defer rows.Close()

	var records []persistence.Record
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, s.mapper.MapError(err)
		}
		records = append(records, persistence.Record{Key: key, Value: []byte(value)})
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapper.MapError(err)
	}
	return records, nil
}

// PutClaimed writes the record and its slot claims in one transaction.
// The slot_claims primary key rejects the insert when any claim is held,
// which surfaces as persistence.ErrSlotTaken with nothing stored.
func (s *Store) PutClaimed(ctx context.Context, key string, value []byte, claims []persistence.SlotClaim) error {
	return s.retry.WithRetry(ctx, func() error {
		return s.withTransaction(ctx, func(tx *sql.Tx) error {
			for _, claim := range claims {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO slot_claims (scope, owner_id, date, slot, record_key) VALUES (?, ?, ?, ?, ?)",
					claim.Scope, claim.OwnerID, claim.Date, claim.Slot, key)
				if err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)",
				key, string(value), time.Now().UTC().Format(time.RFC3339))
			return err
		})
	})
}

// DeleteClaimed removes the record under key together with every claim it
// holds.
func (s *Store) DeleteClaimed(ctx context.Context, key string) error {
	return s.retry.WithRetry(ctx, func() error {
		return s.withTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM slot_claims WHERE record_key = ?", key); err != nil {
				return err
			}
			result, err := tx.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key)
			if err != nil {
				return err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return persistence.ErrNotFound
			}
			return nil
		})
	})
}

// withTransaction executes fn within a transaction, rolling back on error
// or panic.
func (s *Store) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ErrorMapper maps SQLite driver errors to persistence layer errors.
type ErrorMapper struct{}

// NewErrorMapper creates a new error mapper.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps SQLite-specific errors to the persistence sentinels.
func (em *ErrorMapper) MapError(err error) error {
	if err == nil {
		return nil
	}

	if err == sql.ErrNoRows {
		return persistence.ErrNotFound
	}

	errStr := err.Error()

	// Claims are the only tuples with a composite unique key, so a
	// violation there means the slot is already booked.
	if strings.Contains(errStr, "UNIQUE constraint failed: slot_claims") {
		return persistence.ErrSlotTaken
	}
	if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "constraint failed") {
		return persistence.ErrDuplicate
	}
	if strings.Contains(errStr, "database is locked") || strings.Contains(errStr, "database locked") {
		return fmt.Errorf("database locked: %w", err)
	}

	return err
}

// RetryConfig configures retry behavior for database operations.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns a retry configuration with sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

// RetryHelper retries operations that fail with transient errors such as
// a locked database file.
type RetryHelper struct {
	config RetryConfig
	mapper *ErrorMapper
}

// NewRetryHelper creates a new retry helper.
func NewRetryHelper(config RetryConfig) *RetryHelper {
	return &RetryHelper{
		config: config,
		mapper: NewErrorMapper(),
	}
}

// WithRetry executes fn, retrying with exponential backoff while the
// mapped error is transient.
func (rh *RetryHelper) WithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := rh.config.InitialDelay

	for attempt := 0; attempt <= rh.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * rh.config.BackoffFactor)
				if delay > rh.config.MaxDelay {
					delay = rh.config.MaxDelay
				}
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = rh.mapper.MapError(err)
		if !isRetryableError(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("operation failed after %d retries: %w", rh.config.MaxRetries, lastErr)
}

// isRetryableError reports whether the mapped error is transient.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "database locked") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database is busy")
}
