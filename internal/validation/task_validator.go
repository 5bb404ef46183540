package validation

import (
	"taskboard/internal/errors"
)

// Field limits enforced on task records.
const (
	DescriptionMinLength = 10
	PriorityMin          = 1
	PriorityMax          = 5
	TagsMaxItems         = 5
)

// Messages surfaced to callers on validation failure. These are part of
// the API contract and must not be reworded.
const (
	MsgRequiredCreateFields  = "taskName, description, and userId are required fields"
	MsgRequiredIdentifiers   = "taskId and userId are required"
	MsgTaskNameEmpty         = "taskName cannot be empty"
	MsgDescriptionTooShort   = "Description must be at least 10 characters long"
	MsgDescriptionEqualsName = "Description cannot be the same as taskName"
	MsgPriorityOutOfRange    = "Priority must be between 1 and 5"
	MsgTooManyTags           = "Tags cannot exceed 5 items"
	MsgUserIDRequired        = "userId is required"
)

// Changes describes the fields proposed by an update. A nil pointer
// (or nil Tags slice) means the field is absent from the payload.
type Changes struct {
	TaskName    *string
	Description *string
	Priority    *int
	Tags        *[]string
}

// TaskValidator provides validation for task mutation operations.
// Checks run in a fixed order and stop at the first failure; callers
// depend on the resulting message for a given input.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateCreate validates a full candidate record for creation.
func (tv *TaskValidator) ValidateCreate(taskName, description, userID string, priority int, tags []string) error {
	if !tv.validator.IsNonEmptyString(taskName) ||
		!tv.validator.IsNonEmptyString(description) ||
		!tv.validator.IsNonEmptyString(userID) {
		return errors.NewValidationError(MsgRequiredCreateFields, nil)
	}

	if !tv.validator.IsValidDescriptionLength(description) {
		return errors.NewValidationError(MsgDescriptionTooShort, nil)
	}

	if description == taskName {
		return errors.NewValidationError(MsgDescriptionEqualsName, nil)
	}

	if !tv.validator.IsValidPriority(priority) {
		return errors.NewValidationError(MsgPriorityOutOfRange, nil)
	}

	if !tv.validator.IsValidTagCount(tags) {
		return errors.NewValidationError(MsgTooManyTags, nil)
	}

	return nil
}

// ValidateIdentifiers validates the identifying fields of an update.
func (tv *TaskValidator) ValidateIdentifiers(taskID, userID string) error {
	if !tv.validator.IsNonEmptyString(taskID) || !tv.validator.IsNonEmptyString(userID) {
		return errors.NewValidationError(MsgRequiredIdentifiers, nil)
	}
	return nil
}

// ValidateUserID validates the user identifier of a query operation.
func (tv *TaskValidator) ValidateUserID(userID string) error {
	if !tv.validator.IsNonEmptyString(userID) {
		return errors.NewValidationError(MsgUserIDRequired, nil)
	}
	return nil
}

// ValidateChanges validates whichever mutable fields are present in an
// update payload. The description-equality rule compares against the
// effective task name: the proposed name when given, otherwise the
// stored one.
func (tv *TaskValidator) ValidateChanges(changes Changes, storedTaskName string) error {
	if changes.TaskName != nil && !tv.validator.IsNonEmptyString(*changes.TaskName) {
		return errors.NewValidationError(MsgTaskNameEmpty, nil)
	}

	if changes.Description != nil {
		if !tv.validator.IsValidDescriptionLength(*changes.Description) {
			return errors.NewValidationError(MsgDescriptionTooShort, nil)
		}

		effectiveName := storedTaskName
		if changes.TaskName != nil {
			effectiveName = *changes.TaskName
		}
		if *changes.Description == effectiveName {
			return errors.NewValidationError(MsgDescriptionEqualsName, nil)
		}
	}

	if changes.Priority != nil && !tv.validator.IsValidPriority(*changes.Priority) {
		return errors.NewValidationError(MsgPriorityOutOfRange, nil)
	}

	if changes.Tags != nil && !tv.validator.IsValidTagCount(*changes.Tags) {
		return errors.NewValidationError(MsgTooManyTags, nil)
	}

	return nil
}
