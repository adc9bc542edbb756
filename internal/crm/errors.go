package crm

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrForbidden          = errors.New("not allowed for this role")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNotFound           = errors.New("record not found")
)

// ValidationError reports a form field that failed its checks. Nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// CascadeError reports the user-deletion step that failed.
type CascadeError struct {
	Step string
	Err  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("delete user: step %s: %v", e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }
