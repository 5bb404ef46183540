package services

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/validation"
)

// queryServiceImpl implements the QueryService interface
type queryServiceImpl struct {
	repo          repository.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewQueryService creates a new QueryService instance
func NewQueryService(repo repository.Repository) QueryService {
	return &queryServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// ListActiveTasks returns the user's unfinished tasks, highest priority
// first, newest first among equal priorities.
func (q *queryServiceImpl) ListActiveTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	sort := []repository.SortKey{
		{Field: repository.SortByPriority, Direction: repository.SortDesc},
		{Field: repository.SortByCreatedAt, Direction: repository.SortDesc},
	}
	return q.listTasks(ctx, userID, false, sort, "active")
}

// ListFinishedTasks returns the user's completed tasks, most recently
// completed first.
func (q *queryServiceImpl) ListFinishedTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	sort := []repository.SortKey{
		{Field: repository.SortByUpdatedAt, Direction: repository.SortDesc},
	}
	return q.listTasks(ctx, userID, true, sort, "completed")
}

// listTasks runs the shared query flow: userId check, user-existence
// probe, then the filtered sorted retrieval. The probe treats "has at
// least one task on record" as user existence; there is no separate
// user registry to consult.
func (q *queryServiceImpl) listTasks(ctx context.Context, userID string, isDone bool, sort []repository.SortKey, label string) ([]domain.Task, error) {
	if err := q.taskValidator.ValidateUserID(userID); err != nil {
		return nil, err
	}

	hasTasks, err := q.repo.UserHasTasks(ctx, userID)
	if err != nil {
		return nil, classifyQueryError(label, err)
	}
	if !hasTasks {
		return nil, errors.NewNotFoundError("User not found")
	}

	filter := repository.TaskFilter{
		UserID: userID,
		IsDone: &isDone,
	}

	dbTasks, err := q.repo.ListTasks(ctx, filter, sort)
	if err != nil {
		return nil, classifyQueryError(label, err)
	}

	return q.mapper.Task.FromStorageSlice(dbTasks), nil
}
