package services

import (
	"taskboard/internal/errors"
)

// MsgDuplicateTask is the message for a (taskName, userId) uniqueness
// conflict, whether caught by pre-check or by the storage constraint.
const MsgDuplicateTask = "Task with this name already exists for this user"

// classifyMutationError normalizes a failure from a mutation path into
// the uniform error shape crossing the service boundary:
//   - already-classified errors pass through unchanged, except that
//     storage uniqueness conflicts are re-mapped to the duplicate-name
//     message the pre-check would have produced
//   - anything else is wrapped as an unknown failure of the given
//     operation, e.g. "Failed to create task: <description>"
func classifyMutationError(operation string, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		if appErr.IsType(errors.ErrorTypeConflict) {
			return errors.NewConflictError(MsgDuplicateTask, appErr.Cause)
		}
		return appErr
	}
	return errors.NewUnknownError("Failed to "+operation+" task: "+errors.Describe(err), err)
}

// classifyQueryError normalizes a failure from a query path. Unlike the
// mutation paths the wrapped description falls back to the fixed text
// "Unknown error" when the failure carries no message of its own.
func classifyQueryError(operation string, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}

	description := "Unknown error"
	if err != nil && err.Error() != "" {
		description = err.Error()
	}
	return errors.NewUnknownError("Failed to retrieve "+operation+" tasks: "+description, err)
}
