package domain

import (
	"taskboard/internal/repository"
)

// TaskMapper handles conversion between domain and storage Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToStorage converts a domain Task to a storage Task.
func (m *TaskMapper) ToStorage(domainTask Task) repository.Task {
	return repository.Task{
		ID:          domainTask.ID,
		TaskName:    domainTask.TaskName,
		Description: domainTask.Description,
		Priority:    domainTask.Priority,
		Tags:        domainTask.Tags,
		IsDone:      domainTask.IsDone,
		UserID:      domainTask.UserID,
		CreatedAt:   domainTask.CreatedAt,
		UpdatedAt:   domainTask.UpdatedAt,
	}
}

// FromStorage converts a storage Task to a domain Task.
func (m *TaskMapper) FromStorage(dbTask repository.Task) Task {
	tags := dbTask.Tags
	if tags == nil {
		tags = []string{}
	}
	return Task{
		ID:          dbTask.ID,
		TaskName:    dbTask.TaskName,
		Description: dbTask.Description,
		Priority:    dbTask.Priority,
		Tags:        tags,
		IsDone:      dbTask.IsDone,
		UserID:      dbTask.UserID,
		CreatedAt:   dbTask.CreatedAt,
		UpdatedAt:   dbTask.UpdatedAt,
	}
}

// FromStorageSlice converts a slice of storage Tasks to domain Tasks.
func (m *TaskMapper) FromStorageSlice(dbTasks []*repository.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromStorage(*task)
	}
	return domainTasks
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
