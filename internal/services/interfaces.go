package services

import (
	"context"

	"taskboard/internal/domain"
)

// CreateTaskInput is the full candidate record for task creation.
// Tags may be omitted; it defaults to an empty list.
type CreateTaskInput struct {
	TaskName    string   `json:"taskName"`
	Description string   `json:"description"`
	Priority    int      `json:"priority"`
	Tags        []string `json:"tags"`
	UserID      string   `json:"userId"`
}

// UpdateTaskInput identifies a task and carries any subset of its
// mutable fields. Nil fields are left untouched.
type UpdateTaskInput struct {
	TaskID      string    `json:"taskId"`
	UserID      string    `json:"userId"`
	TaskName    *string   `json:"taskName"`
	Description *string   `json:"description"`
	Priority    *int      `json:"priority"`
	Tags        *[]string `json:"tags"`
	IsDone      *bool     `json:"isDone"`
}

// TaskService orchestrates task mutations: validation, per-user
// uniqueness, persistence, and failure classification.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)
}

// QueryService orchestrates task listings filtered by completion state
// with deterministic ordering.
type QueryService interface {
	ListActiveTasks(ctx context.Context, userID string) ([]domain.Task, error)
	ListFinishedTasks(ctx context.Context, userID string) ([]domain.Task, error)
}
