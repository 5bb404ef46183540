package services

import (
	"context"

	"taskboard/internal/repository"
)

// mockRepository is a hand-rolled repository stub. Unset functions
// return zero values so each test only wires the calls it cares about.
type mockRepository struct {
	createTaskFn        func(ctx context.Context, task *repository.Task) error
	getTaskFn           func(ctx context.Context, id string) (*repository.Task, error)
	findTaskByNameFn    func(ctx context.Context, taskName, userID string) (*repository.Task, error)
	findDuplicateTaskFn func(ctx context.Context, taskName, userID, excludeID string) (*repository.Task, error)
	userHasTasksFn      func(ctx context.Context, userID string) (bool, error)
	listTasksFn         func(ctx context.Context, filter repository.TaskFilter, sort []repository.SortKey) ([]*repository.Task, error)
	updateTaskFn        func(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error)

	findDuplicateCalls int
}

func (m *mockRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	if m.createTaskFn != nil {
		return m.createTaskFn(ctx, task)
	}
	return nil
}

func (m *mockRepository) GetTask(ctx context.Context, id string) (*repository.Task, error) {
	if m.getTaskFn != nil {
		return m.getTaskFn(ctx, id)
	}
	return nil, repository.ErrTaskNotFound
}

func (m *mockRepository) FindTaskByName(ctx context.Context, taskName, userID string) (*repository.Task, error) {
	if m.findTaskByNameFn != nil {
		return m.findTaskByNameFn(ctx, taskName, userID)
	}
	return nil, nil
}

func (m *mockRepository) FindDuplicateTask(ctx context.Context, taskName, userID, excludeID string) (*repository.Task, error) {
	m.findDuplicateCalls++
	if m.findDuplicateTaskFn != nil {
		return m.findDuplicateTaskFn(ctx, taskName, userID, excludeID)
	}
	return nil, nil
}

func (m *mockRepository) UserHasTasks(ctx context.Context, userID string) (bool, error) {
	if m.userHasTasksFn != nil {
		return m.userHasTasksFn(ctx, userID)
	}
	return false, nil
}

func (m *mockRepository) ListTasks(ctx context.Context, filter repository.TaskFilter, sort []repository.SortKey) ([]*repository.Task, error) {
	if m.listTasksFn != nil {
		return m.listTasksFn(ctx, filter, sort)
	}
	return []*repository.Task{}, nil
}

func (m *mockRepository) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(ctx, id, patch)
	}
	return nil, repository.ErrTaskNotFound
}

func (m *mockRepository) Close() error {
	return nil
}
