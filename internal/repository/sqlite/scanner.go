package sqlite

import (
	"encoding/json"

	"taskboard/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*repository.Task, error) {
	task := &repository.Task{}
	var tagsJSON string
	var createdAt, updatedAt string

	err := scanner.Scan(
		&task.ID,
		&task.TaskName,
		&task.Description,
		&task.Priority,
		&tagsJSON,
		&task.IsDone,
		&task.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &task.Tags); err != nil {
		return nil, err
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.Task, error) {
	var tasks []*repository.Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
