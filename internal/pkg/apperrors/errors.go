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
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
)

// Course errors
var (
	ErrCourseNotFound = errors.New("course not found")
)

// Semester errors
var (
	ErrSemesterNotFound      = errors.New("semester not found")
	ErrSemesterAlreadyExists = errors.New("semester with such semester and year already exists")
)

// Lecturer errors
var (
	ErrLecturerNotFound = errors.New("lecturer not found")
)

// Class errors
var (
	ErrClassNotFound            = errors.New("class not found")
	ErrClassNumberAlreadyExists = errors.New("class with this number already exists")
	ErrCourseNotInSemester      = errors.New("course is not offered in this semester")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// Import errors
var (
	ErrUnreadableUpload = errors.New("uploaded file could not be parsed")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
