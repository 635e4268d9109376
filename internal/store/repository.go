package store

import (
	"errors"

	"tickler/internal/model"
)

var ErrNotFound = errors.New("store: task not found")

// Repository persists full snapshots of the collection. Load is expected to
// perform whatever recovery its backing medium supports and to degrade to an
// empty collection rather than fail the launch.
type Repository interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
	Close() error
}
