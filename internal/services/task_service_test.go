package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/errors"
	"taskboard/internal/repository"
	"taskboard/internal/validation"
)

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		input          CreateTaskInput
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:  "should create a valid task",
			input: validCreateInput("Buy milk", "u1"),
		},
		{
			name: "should create a task without tags",
			input: CreateTaskInput{
				TaskName:    "Buy milk",
				Description: "Two liters of whole milk",
				Priority:    3,
				UserID:      "u1",
			},
		},
		{
			name: "should fail when required fields are missing",
			input: CreateTaskInput{
				Description: "Two liters of whole milk",
				Priority:    3,
				UserID:      "u1",
			},
			errorAssertion: func(t *testing.T, err error) {
				appErr, ok := errors.AsAppError(err)
				require.True(t, ok)
				assert.True(t, appErr.IsType(errors.ErrorTypeValidation))
				assert.Equal(t, validation.MsgRequiredCreateFields, appErr.Message)
			},
		},
		{
			name: "should fail with short description",
			input: CreateTaskInput{
				TaskName:    "Buy milk",
				Description: "Short",
				Priority:    3,
				UserID:      "u1",
			},
			errorAssertion: func(t *testing.T, err error) {
				appErr, ok := errors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, "Description must be at least 10 characters long", appErr.Message)
			},
		},
		{
			name: "should fail when description equals taskName",
			input: CreateTaskInput{
				TaskName:    "A rather long task name",
				Description: "A rather long task name",
				Priority:    3,
				UserID:      "u1",
			},
			errorAssertion: func(t *testing.T, err error) {
				appErr, ok := errors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, "Description cannot be the same as taskName", appErr.Message)
			},
		},
		{
			name: "should fail with too many tags",
			input: CreateTaskInput{
				TaskName:    "T",
				Description: "Ten chars!",
				Priority:    3,
				Tags:        []string{"a", "b", "c", "d", "e", "f"},
				UserID:      "u1",
			},
			errorAssertion: func(t *testing.T, err error) {
				appErr, ok := errors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, "Tags cannot exceed 5 items", appErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := setupServices(t)

			result, err := service.CreateTask(context.Background(), tt.input)

			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.ID)
				assert.False(t, result.IsDone)
				assert.NotNil(t, result.Tags)
				assert.Equal(t, tt.input.UserID, result.UserID)
				if tt.input.Tags == nil {
					assert.Equal(t, []string{}, result.Tags)
				}
			}
		})
	}
}

func TestTaskService_CreateTask_DuplicateName(t *testing.T) {
	service, _, _ := setupServices(t)
	ctx := context.Background()

	mustCreate(t, service, validCreateInput("Buy milk", "u1"))

	// Second create with the same (taskName, userId) hits the pre-check.
	result, err := service.CreateTask(ctx, validCreateInput("Buy milk", "u1"))
	require.Error(t, err)
	assert.Nil(t, result)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
	assert.Equal(t, MsgDuplicateTask, appErr.Message)

	// The same name under another user is fine.
	mustCreate(t, service, validCreateInput("Buy milk", "u2"))
}

func TestTaskService_CreateTask_RaceLosesToConstraint(t *testing.T) {
	// The pre-check sees nothing, but the insert hits the unique
	// constraint: the storage conflict is re-mapped to the same message.
	repo := &mockRepository{
		createTaskFn: func(ctx context.Context, task *repository.Task) error {
			return errors.NewConflictError("task name already exists for user", fmt.Errorf("UNIQUE constraint failed"))
		},
	}
	service := NewTaskService(repo)

	_, err := service.CreateTask(context.Background(), validCreateInput("Buy milk", "u1"))
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
	assert.Equal(t, MsgDuplicateTask, appErr.Message)
}

func TestTaskService_CreateTask_UnknownError(t *testing.T) {
	repo := &mockRepository{
		createTaskFn: func(ctx context.Context, task *repository.Task) error {
			return fmt.Errorf("connection reset")
		},
	}
	service := NewTaskService(repo)

	_, err := service.CreateTask(context.Background(), validCreateInput("Buy milk", "u1"))
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsType(errors.ErrorTypeUnknown))
	assert.Equal(t, "Failed to create task: connection reset", appErr.Message)
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Run("should fail without identifiers", func(t *testing.T) {
		service, _, _ := setupServices(t)

		_, err := service.UpdateTask(context.Background(), UpdateTaskInput{UserID: "u1"})
		require.Error(t, err)
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, validation.MsgRequiredIdentifiers, appErr.Message)
	})

	t.Run("should fail for a missing task", func(t *testing.T) {
		service, _, _ := setupServices(t)

		_, err := service.UpdateTask(context.Background(), UpdateTaskInput{TaskID: "missing", UserID: "u1"})
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
		assert.Equal(t, "Task not found", appErr.Message)
	})

	t.Run("should reject updates by another user", func(t *testing.T) {
		service, _, _ := setupServices(t)
		task := mustCreate(t, service, validCreateInput("Buy milk", "u1"))

		_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID:   task.ID,
			UserID:   "u2",
			Priority: intPtr(5),
		})
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsType(errors.ErrorTypeUnauthorized))
		assert.Equal(t, "Unauthorized: You can only update your own tasks", appErr.Message)
	})

	t.Run("should apply a partial update", func(t *testing.T) {
		service, _, _ := setupServices(t)
		task := mustCreate(t, service, validCreateInput("Buy milk", "u1"))

		updated, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID:   task.ID,
			UserID:   "u1",
			Priority: intPtr(5),
		})
		require.NoError(t, err)

		assert.Equal(t, 5, updated.Priority)
		assert.Equal(t, task.TaskName, updated.TaskName)
		assert.Equal(t, task.Description, updated.Description)
		assert.Equal(t, task.Tags, updated.Tags)
		assert.Equal(t, task.UserID, updated.UserID)
		assert.Equal(t, task.ID, updated.ID)
	})

	t.Run("should mark a task done", func(t *testing.T) {
		service, _, _ := setupServices(t)
		task := mustCreate(t, service, validCreateInput("Buy milk", "u1"))

		updated, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID: task.ID,
			UserID: "u1",
			IsDone: boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, updated.IsDone)
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		service, queries, _ := setupServices(t)
		task := mustCreate(t, service, validCreateInput("Buy milk", "u1"))

		_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID:   task.ID,
			UserID:   "u1",
			TaskName: strPtr(""),
		})
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsType(errors.ErrorTypeValidation))
		assert.Equal(t, validation.MsgTaskNameEmpty, appErr.Message)

		// The stored record keeps its name.
		tasks, err := queries.ListActiveTasks(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy milk", tasks[0].TaskName)
	})

	t.Run("should validate description against stored name", func(t *testing.T) {
		service, _, _ := setupServices(t)
		task := mustCreate(t, service, validCreateInput("Buy milk today", "u1"))

		_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID:      task.ID,
			UserID:      "u1",
			Description: strPtr("Buy milk today"),
		})
		require.Error(t, err)
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, validation.MsgDescriptionEqualsName, appErr.Message)
	})

	t.Run("should validate description against proposed name", func(t *testing.T) {
		service, _, _ := setupServices(t)
		task := mustCreate(t, service, validCreateInput("Buy milk", "u1"))

		_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID:      task.ID,
			UserID:      "u1",
			TaskName:    strPtr("Replacement name here"),
			Description: strPtr("Replacement name here"),
		})
		require.Error(t, err)
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, validation.MsgDescriptionEqualsName, appErr.Message)
	})

	t.Run("should reject renaming onto another task", func(t *testing.T) {
		service, _, _ := setupServices(t)
		mustCreate(t, service, validCreateInput("Buy milk", "u1"))
		task := mustCreate(t, service, validCreateInput("Buy bread", "u1"))

		_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID:   task.ID,
			UserID:   "u1",
			TaskName: strPtr("Buy milk"),
		})
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
		assert.Equal(t, MsgDuplicateTask, appErr.Message)
	})

	t.Run("should allow renaming to an unused name", func(t *testing.T) {
		service, _, _ := setupServices(t)
		task := mustCreate(t, service, validCreateInput("Buy milk", "u1"))

		updated, err := service.UpdateTask(context.Background(), UpdateTaskInput{
			TaskID:   task.ID,
			UserID:   "u1",
			TaskName: strPtr("Buy oat milk"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", updated.TaskName)
	})
}

func TestTaskService_UpdateTask_UnchangedNameSkipsDuplicateLookup(t *testing.T) {
	stored := &repository.Task{
		ID:          "t1",
		TaskName:    "Buy milk",
		Description: "Two liters of whole milk",
		Priority:    3,
		Tags:        []string{},
		UserID:      "u1",
	}

	repo := &mockRepository{
		getTaskFn: func(ctx context.Context, id string) (*repository.Task, error) {
			return stored, nil
		},
		updateTaskFn: func(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
			return stored, nil
		},
	}
	service := NewTaskService(repo)

	_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
		TaskID:   "t1",
		UserID:   "u1",
		TaskName: strPtr("Buy milk"),
		Priority: intPtr(5),
	})
	require.NoError(t, err)
	assert.Zero(t, repo.findDuplicateCalls)

	// A changed name does trigger the lookup.
	_, err = service.UpdateTask(context.Background(), UpdateTaskInput{
		TaskID:   "t1",
		UserID:   "u1",
		TaskName: strPtr("Buy bread"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findDuplicateCalls)
}

func TestTaskService_UpdateTask_UnknownError(t *testing.T) {
	repo := &mockRepository{
		getTaskFn: func(ctx context.Context, id string) (*repository.Task, error) {
			return &repository.Task{ID: id, TaskName: "Buy milk", UserID: "u1"}, nil
		},
		updateTaskFn: func(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}
	service := NewTaskService(repo)

	_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
		TaskID: "t1",
		UserID: "u1",
		IsDone: boolPtr(true),
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsType(errors.ErrorTypeUnknown))
	assert.Equal(t, "Failed to update task: connection reset", appErr.Message)
}

func TestTaskService_UpdateTask_StoreValidationSurfaced(t *testing.T) {
	repo := &mockRepository{
		getTaskFn: func(ctx context.Context, id string) (*repository.Task, error) {
			return &repository.Task{ID: id, TaskName: "Buy milk", UserID: "u1"}, nil
		},
		updateTaskFn: func(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
			return nil, errors.NewStoreValidationError([]string{"Priority must be between 1 and 5"}, nil)
		},
	}
	service := NewTaskService(repo)

	_, err := service.UpdateTask(context.Background(), UpdateTaskInput{
		TaskID: "t1",
		UserID: "u1",
		IsDone: boolPtr(true),
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsType(errors.ErrorTypeStoreValidation))
	assert.Equal(t, "Validation Error: Priority must be between 1 and 5", appErr.Message)
}
