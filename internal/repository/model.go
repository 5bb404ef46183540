package repository

import "time"

// Task is the storage model for a task record. IDs and timestamps are
// assigned by the repository, never by callers.
type Task struct {
	ID          string
	TaskName    string
	Description string
	Priority    int
	Tags        []string
	IsDone      bool
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch describes a partial update. Nil fields are left untouched.
// The task id and owner are not part of the updatable set.
type TaskPatch struct {
	TaskName    *string
	Description *string
	Priority    *int
	Tags        *[]string
	IsDone      *bool
}

// IsEmpty reports whether the patch carries no field changes.
func (p TaskPatch) IsEmpty() bool {
	return p.TaskName == nil && p.Description == nil && p.Priority == nil &&
		p.Tags == nil && p.IsDone == nil
}

// TaskFilter selects tasks by equality predicates.
type TaskFilter struct {
	UserID string
	IsDone *bool
}

// SortDirection is the ordering applied to a sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortField names a sortable task attribute.
type SortField string

const (
	SortByPriority  SortField = "priority"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// SortKey is one (field, direction) pair of a sort specification.
// Keys are applied in listed order.
type SortKey struct {
	Field     SortField
	Direction SortDirection
}
