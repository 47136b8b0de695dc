package errors

import (
	"fmt"

	"journal/internal/errors"
)

// Kind classifies an AppError so callers can decide how to react without
// matching on individual error values.
type Kind int

const (
	// KindStore marks an underlying storage or I/O failure.
	KindStore Kind = iota
	// KindValidation marks bad caller input.
	KindValidation
	// KindConflict marks a uniqueness violation the caller can resolve by choosing another key.
	KindConflict
	// KindNotFound marks a referenced record that does not exist.
	KindNotFound
	// KindConstraint marks a referential integrity failure at the store boundary.
	KindConstraint
	// KindUnauthorized marks rejected credentials.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindConstraint:
		return "constraint_violation"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "store_fault"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error classification
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return fmt.Sprintf("%s: %s", e.message, e.details)
}

// Is matches any BaseError carrying the same error code, so values produced by
// WithDetails still compare equal to the predefined error they came from.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		KindValidation,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Entry-related errors
	ErrEntryNotFound = NewBaseError(
		KindNotFound,
		"ENTRY_NOT_FOUND",
		"journal entry not found",
		"",
	)

	ErrEntryDateConflict = NewBaseError(
		KindConflict,
		"ENTRY_DATE_CONFLICT",
		"an entry already exists for this date",
		"",
	)

	ErrNoEntriesToExport = NewBaseError(
		KindValidation,
		"NO_ENTRIES_TO_EXPORT",
		"no entries to export",
		"",
	)

	// Store constraint errors
	ErrDuplicateEntryDate = NewBaseError(
		KindConstraint,
		"DUPLICATE_ENTRY_DATE",
		"entry date is already taken by another entry of this user",
		"",
	)

	ErrInvalidReference = NewBaseError(
		KindConstraint,
		"INVALID_REFERENCE",
		"referenced record does not exist",
		"",
	)

	ErrReferenceInUse = NewBaseError(
		KindConstraint,
		"REFERENCE_IN_USE",
		"record is still referenced by journal entries",
		"",
	)

	// Catalog errors
	ErrMoodNotFound = NewBaseError(
		KindNotFound,
		"MOOD_NOT_FOUND",
		"mood not found",
		"",
	)

	ErrTagNotFound = NewBaseError(
		KindNotFound,
		"TAG_NOT_FOUND",
		"tag not found",
		"",
	)

	ErrTagAlreadyExists = NewBaseError(
		KindConflict,
		"TAG_ALREADY_EXISTS",
		"a tag with this name already exists",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		KindConflict,
		"USER_ALREADY_EXISTS",
		"username is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		KindUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid username or password",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		KindNotFound,
		"SESSION_NOT_FOUND",
		"no remembered session",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindStore,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

// Unwrap exposes the driver error to errors.Is/As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the error classification
func (e *DatabaseExecuteError) Kind() Kind {
	return KindStore
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// KindOf reports the classification of err. Errors that are not AppErrors are
// treated as store faults.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindStore
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
