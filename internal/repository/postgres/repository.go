package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/repository"
	"taskboard/internal/validation"

	apperrors "taskboard/internal/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = "id, task_name, description, priority, tags, is_done, user_id, created_at, updated_at"

// Postgres error codes for constraint violations.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// constraintMessages maps schema constraint names to the messages the
// service layer surfaces for the same rules.
var constraintMessages = map[string]string{
	"task_name_not_empty":         validation.MsgTaskNameEmpty,
	"task_description_min_length": validation.MsgDescriptionTooShort,
	"task_description_not_name":   validation.MsgDescriptionEqualsName,
	"task_priority_range":         validation.MsgPriorityOutOfRange,
	"task_tags_max":               validation.MsgTooManyTags,
}

// PostgresRepository implements the repository.Repository interface on
// a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// New connects to the database and ensures the schema exists.
func New(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	repo := &PostgresRepository{pool: pool}
	if err := repo.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return repo, nil
}

func (r *PostgresRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			task_name   TEXT NOT NULL,
			description TEXT NOT NULL,
			priority    INTEGER NOT NULL,
			tags        JSONB NOT NULL DEFAULT '[]',
			is_done     BOOLEAN NOT NULL DEFAULT FALSE,
			user_id     TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL,
			CONSTRAINT task_name_not_empty CHECK (length(task_name) > 0),
			CONSTRAINT task_description_min_length CHECK (length(description) >= 10),
			CONSTRAINT task_description_not_name CHECK (description <> task_name),
			CONSTRAINT task_priority_range CHECK (priority BETWEEN 1 AND 5),
			CONSTRAINT task_tags_max CHECK (jsonb_array_length(tags) <= 5)
		)`)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_name_user ON tasks(task_name, user_id)`)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_user_done ON tasks(user_id, is_done)`)
	return err
}

// Close releases the connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// classifyError maps pgx constraint violations onto the application
// error taxonomy and wraps everything else.
func classifyError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperrors.NewConflictError("task name already exists for user", err)
		case codeCheckViolation:
			msg := pgErr.ConstraintName
			if friendly, ok := constraintMessages[pgErr.ConstraintName]; ok {
				msg = friendly
			}
			return apperrors.NewStoreValidationError([]string{msg}, err)
		}
	}
	return fmt.Errorf("database operation failed: %s: %w", operation, err)
}

func scanTask(row pgx.Row) (*repository.Task, error) {
	task := &repository.Task{}
	var tagsJSON []byte

	err := row.Scan(
		&task.ID,
		&task.TaskName,
		&task.Description,
		&task.Priority,
		&tagsJSON,
		&task.IsDone,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &task.Tags); err != nil {
		return nil, err
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	return task, nil
}

// CreateTask inserts a new task, assigning its id and timestamps
func (r *PostgresRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	if task.Tags == nil {
		task.Tags = []string{}
	}

	tagsJSON, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	task.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err = r.pool.Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9)`,
		task.ID, task.TaskName, task.Description, task.Priority,
		string(tagsJSON), task.IsDone, task.UserID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return classifyError("create task", err)
	}
	return nil
}

// GetTask retrieves a task by id
func (r *PostgresRepository) GetTask(ctx context.Context, id string) (*repository.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrTaskNotFound
	}
	if err != nil {
		return nil, classifyError("get task", err)
	}
	return task, nil
}

// FindTaskByName looks up a task by exact (taskName, userID) match
func (r *PostgresRepository) FindTaskByName(ctx context.Context, taskName, userID string) (*repository.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_name = $1 AND user_id = $2`, taskName, userID)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyError("find task by name", err)
	}
	return task, nil
}

// FindDuplicateTask looks up a task sharing (taskName, userID) with a different id
func (r *PostgresRepository) FindDuplicateTask(ctx context.Context, taskName, userID, excludeID string) (*repository.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_name = $1 AND user_id = $2 AND id <> $3`, taskName, userID, excludeID)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyError("find duplicate task", err)
	}
	return task, nil
}

// UserHasTasks reports whether at least one task exists for the user
func (r *PostgresRepository) UserHasTasks(ctx context.Context, userID string) (bool, error) {
	var exists int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM tasks WHERE user_id = $1 LIMIT 1`, userID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, classifyError("check user tasks", err)
	}
	return true, nil
}

// ListTasks retrieves tasks matching the filter, ordered by the sort keys
func (r *PostgresRepository) ListTasks(ctx context.Context, filter repository.TaskFilter, sort []repository.SortKey) ([]*repository.Task, error) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.IsDone != nil {
		conditions = append(conditions, fmt.Sprintf("is_done = $%d", argIdx))
		args = append(args, *filter.IsDone)
		argIdx++
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if orderBy := buildOrderBy(sort); orderBy != "" {
		query += " ORDER BY " + orderBy
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError("list tasks", err)
	}
	defer rows.Close()

	tasks := []*repository.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, classifyError("scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("list tasks", err)
	}

	return tasks, nil
}

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

// UpdateTask applies the non-nil patch fields, refreshes updated_at,
// and returns the post-update record.
func (r *PostgresRepository) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*repository.Task, error) {
	setClauses := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC().Truncate(time.Microsecond)}
	argIdx := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.TaskName != nil {
		addClause("task_name", *patch.TaskName)
	}
	if patch.Description != nil {
		addClause("description", *patch.Description)
	}
	if patch.Priority != nil {
		addClause("priority", *patch.Priority)
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
		addClause("tags", string(tagsJSON))
	}
	if patch.IsDone != nil {
		addClause("is_done", *patch.IsDone)
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argIdx)
	args = append(args, id)

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, classifyError("update task", err)
	}
	if result.RowsAffected() == 0 {
		return nil, repository.ErrTaskNotFound
	}

	return r.GetTask(ctx, id)
}
