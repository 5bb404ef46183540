package domain

import "time"

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          string    `json:"id"`
	TaskName    string    `json:"taskName"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Tags        []string  `json:"tags"`
	IsDone      bool      `json:"isDone"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsOwnedBy reports whether the task belongs to the given user.
func (t Task) IsOwnedBy(userID string) bool {
	return t.UserID == userID
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.TaskName
}
