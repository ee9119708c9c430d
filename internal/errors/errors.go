package errors

import (
	"errors"
	"fmt"
)

// Category groups errors by subsystem
type Category string

const (
	CategoryLLM      Category = "llm"
	CategoryTool     Category = "tool"
	CategoryPersona  Category = "persona"
	CategoryWorkflow Category = "workflow"
	CategoryAnnotate Category = "annotate"
	CategoryConfig   Category = "config"
	CategoryLoop     Category = "loop"
)

// CadreError is the structured error type for the project
type CadreError struct {
	Category  Category
	Code      string
	Message   string
	Retryable bool
	Cause     error
}

func (e *CadreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

func (e *CadreError) Unwrap() error {
	return e.Cause
}

func (e *CadreError) Is(target error) bool {
	t, ok := target.(*CadreError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Category == t.Category
}

// IsRetryable checks whether an error is retryable.
// Returns false for nil errors or non-CadreError types.
func IsRetryable(err error) bool {
	var ce *CadreError
	if errors.As(err, &ce) {
		return ce.Retryable
	}
	return false
}

// GetCategory extracts the error category from a CadreError.
// Returns an empty Category for nil errors or non-CadreError types.
func GetCategory(err error) Category {
	var ce *CadreError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}

// GetUserMessage returns a user-friendly message for the error.
// For CadreError it returns the Message field; for other errors it returns Error().
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *CadreError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
