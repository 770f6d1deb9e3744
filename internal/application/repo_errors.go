package application

import (
	"errors"

	"github.com/example/studio-scheduler/internal/persistence"
)

// mapRepoError translates persistence sentinels into application sentinels.
// Errors already expressed in application terms pass through unchanged.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrSlotTaken):
		return ErrSlotConflict
	}
	return err
}
