package sqlite

import (
	"regexp"
	"strings"

	"taskboard/internal/errors"
	"taskboard/internal/validation"
)

// checkConstraintPattern extracts the named constraint from a SQLite
// CHECK failure, e.g. "CHECK constraint failed: task_priority_range".
var checkConstraintPattern = regexp.MustCompile(`CHECK constraint failed: (\w+)`)

// constraintMessages maps schema constraint names to the messages the
// service layer surfaces for the same rules.
var constraintMessages = map[string]string{
	"task_name_not_empty":         validation.MsgTaskNameEmpty,
	"task_description_min_length": validation.MsgDescriptionTooShort,
	"task_description_not_name":   validation.MsgDescriptionEqualsName,
	"task_priority_range":         validation.MsgPriorityOutOfRange,
	"task_tags_max":               validation.MsgTooManyTags,
}

// classifyConstraintError maps SQLite constraint failures onto the
// application error taxonomy. Returns nil when the error is not a
// constraint violation.
func classifyConstraintError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	if strings.Contains(msg, "UNIQUE constraint failed") {
		return errors.NewConflictError("task name already exists for user", err)
	}

	if matches := checkConstraintPattern.FindAllStringSubmatch(msg, -1); matches != nil {
		var messages []string
		for _, m := range matches {
			if friendly, ok := constraintMessages[m[1]]; ok {
				messages = append(messages, friendly)
			} else {
				messages = append(messages, m[1])
			}
		}
		return errors.NewStoreValidationError(messages, err)
	}

	return nil
}
