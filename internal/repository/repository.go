package repository

import (
	"context"
	"errors"
)

// ErrTaskNotFound is returned by lookups and updates addressing an id
// that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// Repository defines the persistence operations consumed by the task
// services. Implementations must enforce a unique constraint on
// (task_name, user_id) and surface breaches as conflict errors; the
// services' own duplicate pre-checks are advisory only.
type Repository interface {
	// CreateTask inserts a new record, assigning its id and timestamps.
	CreateTask(ctx context.Context, task *Task) error

	// GetTask retrieves a task by id. Returns a not-found error when
	// the id does not exist.
	GetTask(ctx context.Context, id string) (*Task, error)

	// FindTaskByName looks up a task by exact (taskName, userID) match.
	// Returns nil without error when no such task exists.
	FindTaskByName(ctx context.Context, taskName, userID string) (*Task, error)

	// FindDuplicateTask looks up a task with the same (taskName, userID)
	// but a different id. Returns nil without error when none exists.
	FindDuplicateTask(ctx context.Context, taskName, userID, excludeID string) (*Task, error)

	// UserHasTasks reports whether at least one task exists for the user.
	UserHasTasks(ctx context.Context, userID string) (bool, error)

	// ListTasks retrieves tasks matching the filter, ordered by the
	// sort keys applied in listed order.
	ListTasks(ctx context.Context, filter TaskFilter, sort []SortKey) ([]*Task, error)

	// UpdateTask applies the non-nil patch fields to the task with the
	// given id, refreshes its updated_at timestamp, and returns the
	// post-update record.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)

	// Close releases the underlying store connection.
	Close() error
}
