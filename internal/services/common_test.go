package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/repository/sqlite"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int { return &n }
func boolPtr(b bool) *bool { return &b }
func tagsPtr(t []string) *[]string { return &t }

// setupServices builds the services on a real SQLite store so tests
// exercise the actual uniqueness constraint and sort behavior.
func setupServices(t *testing.T) (TaskService, QueryService, repository.Repository) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "taskboard.db")
	repo, err := sqlite.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return NewTaskService(repo), NewQueryService(repo), repo
}

func validCreateInput(name, userID string) CreateTaskInput {
	return CreateTaskInput{
		TaskName:    name,
		Description: "A test description long enough",
		Priority:    3,
		Tags:        []string{"one"},
		UserID:      userID,
	}
}

func mustCreate(t *testing.T, service TaskService, input CreateTaskInput) *domain.Task {
	t.Helper()

	task, err := service.CreateTask(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, task)
	return task
}
