package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/repository"
	"taskboard/internal/repository/sqlite/migrations"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const taskColumns = "id, task_name, description, priority, tags, is_done, user_id, created_at, updated_at"

// SQLiteRepository implements the repository.Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a new task, assigning its id and timestamps.
// A unique index on (task_name, user_id) rejects duplicates; the
// breach surfaces as a conflict error.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	if task.Tags == nil {
		task.Tags = []string{}
	}

	tagsJSON, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	task.ID = uuid.NewString()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.db, query,
		task.ID, task.TaskName, task.Description, task.Priority,
		string(tagsJSON), task.IsDone, task.UserID,
		FormatTimeForDB(task.CreatedAt), FormatTimeForDB(task.UpdatedAt))
}

// GetTask retrieves a task by id
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := QuerySingle(ctx, r.db, query, ScanTask, "task", id)
	if err == sql.ErrNoRows {
		return nil, repository.ErrTaskNotFound
	}
	return task, err
}

// FindTaskByName looks up a task by exact (taskName, userID) match
func (r *SQLiteRepository) FindTaskByName(ctx context.Context, taskName, userID string) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_name = ? AND user_id = ?`

	task, err := QuerySingle(ctx, r.db, query, ScanTask, "task", taskName, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return task, err
}

// FindDuplicateTask looks up a task sharing (taskName, userID) with a different id
func (r *SQLiteRepository) FindDuplicateTask(ctx context.Context, taskName, userID, excludeID string) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_name = ? AND user_id = ? AND id <> ?`

	task, err := QuerySingle(ctx, r.db, query, ScanTask, "task", taskName, userID, excludeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return task, err
}

// UserHasTasks reports whether at least one task exists for the user
func (r *SQLiteRepository) UserHasTasks(ctx context.Context, userID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE user_id = ? LIMIT 1`, userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, HandleDatabaseError("check user tasks", err)
	}
	return true, nil
}

// ListTasks retrieves tasks matching the filter, ordered by the sort keys
func (r *SQLiteRepository) ListTasks(ctx context.Context, filter repository.TaskFilter, sort []repository.SortKey) ([]*repository.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.IsDone != nil {
		conditions = append(conditions, "is_done = ?")
		args = append(args, *filter.IsDone)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if orderBy := buildOrderBy(sort); orderBy != "" {
		query += " ORDER BY " + orderBy
	}

	tasks, err := QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*repository.Task{}
	}
	return tasks, nil
}

// buildOrderBy renders sort keys as an ORDER BY clause. Fields and
// directions are restricted to the known sets, never caller text.
func buildOrderBy(sort []repository.SortKey) string {
	var clauses []string
	for _, key := range sort {
		var column string
		switch key.Field {
		case repository.SortByPriority:
			column = "priority"
		case repository.SortByCreatedAt:
			column = "created_at"
		case repository.SortByUpdatedAt:
			column = "updated_at"
		default:
			continue
		}

		direction := "ASC"
		if key.Direction == repository.SortDesc {
			direction = "DESC"
		}

		clauses = append(clauses, column+" "+direction)
	}
	return strings.Join(clauses, ", ")
}

// UpdateTask applies the non-nil patch fields and refreshes updated_at,
// then reads back the post-update record. CHECK constraints revalidate
// field rules at the storage level; breaches surface as store
// validation errors, unique breaches as conflicts.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
	setClauses := []string{"updated_at = ?"}
	args := []interface{}{FormatTimeForDB(time.Now().UTC())}

	if patch.TaskName != nil {
		setClauses = append(setClauses, "task_name = ?")
		args = append(args, *patch.TaskName)
	}
	if patch.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Priority != nil {
		setClauses = append(setClauses, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return nil, fmt.Errorf("marshal tags: %w", err)
		}
		setClauses = append(setClauses, "tags = ?")
		args = append(args, string(tagsJSON))
	}
	if patch.IsDone != nil {
		setClauses = append(setClauses, "is_done = ?")
		args = append(args, *patch.IsDone)
	}

	args = append(args, id)
	query := `UPDATE tasks SET ` + strings.Join(setClauses, ", ") + ` WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("update task", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return nil, repository.ErrTaskNotFound
	}

	return r.GetTask(ctx, id)
}
