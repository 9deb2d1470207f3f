package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestionsAvailable is returned when the active question pool is empty.
	ErrNoQuestionsAvailable = errors.New("no questions available")
	// ErrResolutionFailed means the daily assignment could not be read back after losing the insert race.
	ErrResolutionFailed = errors.New("failed to get daily question")
	// ErrQuestionNotFound indicates the question id does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAssignmentNotFound means no question has been chosen for the date yet.
	ErrAssignmentNotFound = errors.New("daily assignment not found")
	// ErrAssignmentExists is returned by stores when another writer already assigned the date.
	ErrAssignmentExists = errors.New("daily assignment already exists")
	// ErrScoreNotFound means the user has no score for the date.
	ErrScoreNotFound = errors.New("score not found")
	// ErrScoreExists is returned when a concurrent first submission already inserted the record.
	ErrScoreExists = errors.New("score already exists")
	// ErrQuestionReferenced blocks deletion of questions used by a daily assignment.
	ErrQuestionReferenced = errors.New("question is referenced by a daily assignment")
)

// ValidationError carries a message safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
