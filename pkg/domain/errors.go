package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a question id is not in the catalog.
	ErrNotFound = errors.New("question not found")

	// ErrInvalidAnswer is returned when a value does not fit the current question.
	// It is recoverable: no state changes.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrRouting signals a catalog authoring defect found while resolving the next question.
	ErrRouting = errors.New("routing error")

	// ErrInvalidState is returned when the engine is used before start or after completion.
	ErrInvalidState = errors.New("invalid state")

	// ErrPersistence wraps fetch/append failures of the submission store.
	ErrPersistence = errors.New("persistence failure")
)

// InvalidAnswerError describes why a value was rejected.
type InvalidAnswerError struct {
	QuestionID int
	Reason     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %d: %s", e.QuestionID, e.Reason)
}

func (e *InvalidAnswerError) Unwrap() error { return ErrInvalidAnswer }

// RoutingError describes a route that could not be resolved.
type RoutingError struct {
	QuestionID int
	Key        string // option value used as routing key, if any
	Target     int    // resolved target, if any
	Reason     string
}

func (e *RoutingError) Error() string {
	msg := fmt.Sprintf("routing error at question %d", e.QuestionID)
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Target != 0 {
		msg += fmt.Sprintf(" (target %d)", e.Target)
	}
	return msg + ": " + e.Reason
}

func (e *RoutingError) Unwrap() error { return ErrRouting }
