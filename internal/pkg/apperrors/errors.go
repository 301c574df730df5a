package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Entity errors
var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrRegulationNotFound = errors.New("regulation not found")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrStudentNotFound    = errors.New("student not found")
)

// Uniqueness violations
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmployeeIDExists   = errors.New("employee ID already exists")
	ErrRollNumberExists   = errors.New("roll number already exists")
	ErrDuplicateSubject   = errors.New("subject code already exists for this branch and semester")
)

// CustomError carries a sentinel plus a request-specific message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewNotFoundError wraps a not-found sentinel with a message.
func NewNotFoundError(sentinel error, message string) error {
	return &CustomError{Err: sentinel, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
