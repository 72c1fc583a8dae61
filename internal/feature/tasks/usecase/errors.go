package usecase

import "errors"

var (
	// ErrValidation is returned for malformed task input.
	// It is wrapped with a field-level message, so match it with errors.Is.
	ErrValidation = errors.New("invalid input")

	// ErrTaskNotFound is returned when no task has the given ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrForbidden is returned when the task exists but belongs to another user.
	ErrForbidden = errors.New("task belongs to another user")
)
