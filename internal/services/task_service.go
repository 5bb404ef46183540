package services

import (
	"context"
	stderrors "errors"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Repository) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// CreateTask validates the candidate record, guards per-user name
// uniqueness, and inserts it. The duplicate pre-check gives a friendly
// message in the common case; the storage unique constraint is the
// actual guarantee under concurrent writers, and its breach is
// re-mapped to the same message.
func (t *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateCreate(input.TaskName, input.Description, input.UserID, input.Priority, input.Tags); err != nil {
		return nil, err
	}

	existing, err := t.repo.FindTaskByName(ctx, input.TaskName, input.UserID)
	if err != nil {
		return nil, classifyMutationError("create", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(MsgDuplicateTask, nil)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	dbTask := &repository.Task{
		TaskName:    input.TaskName,
		Description: input.Description,
		Priority:    input.Priority,
		Tags:        tags,
		IsDone:      false,
		UserID:      input.UserID,
	}

	if err := t.repo.CreateTask(ctx, dbTask); err != nil {
		return nil, classifyMutationError("create", err)
	}

	domainTask := t.mapper.Task.FromStorage(*dbTask)
	return &domainTask, nil
}

// UpdateTask loads the task, checks ownership, validates whichever
// mutable fields are present, and applies them as a partial update.
// The task id and owner are never part of the updatable set.
func (t *taskServiceImpl) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateIdentifiers(input.TaskID, input.UserID); err != nil {
		return nil, err
	}

	existing, err := t.repo.GetTask(ctx, input.TaskID)
	if err != nil {
		if stderrors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.NewNotFoundError("Task not found")
		}
		return nil, classifyMutationError("update", err)
	}

	if existing.UserID != input.UserID {
		return nil, errors.NewUnauthorizedError("Unauthorized: You can only update your own tasks")
	}

	changes := validation.Changes{
		TaskName:    input.TaskName,
		Description: input.Description,
		Priority:    input.Priority,
		Tags:        input.Tags,
	}
	if err := t.taskValidator.ValidateChanges(changes, existing.TaskName); err != nil {
		return nil, err
	}

	// An unchanged name cannot collide, so the duplicate probe is
	// skipped; the storage unique constraint still guards races.
	if input.TaskName != nil && *input.TaskName != existing.TaskName {
		duplicate, err := t.repo.FindDuplicateTask(ctx, *input.TaskName, input.UserID, input.TaskID)
		if err != nil {
			return nil, classifyMutationError("update", err)
		}
		if duplicate != nil {
			return nil, errors.NewConflictError(MsgDuplicateTask, nil)
		}
	}

	patch := repository.TaskPatch{
		TaskName:    input.TaskName,
		Description: input.Description,
		Priority:    input.Priority,
		Tags:        input.Tags,
		IsDone:      input.IsDone,
	}

	updated, err := t.repo.UpdateTask(ctx, input.TaskID, patch)
	if err != nil {
		if stderrors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.NewNotFoundError("Task not found")
		}
		return nil, classifyMutationError("update", err)
	}

	domainTask := t.mapper.Task.FromStorage(*updated)
	return &domainTask, nil
}
