package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound represents a missing identity or record
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeInvalidRequest represents malformed or self-referential input
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	// ErrorTypeConflict represents a duplicate relation or record
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeForbidden represents an authorization failure
	ErrorTypeForbidden ErrorType = "forbidden"
	// ErrorTypeUnauthorized represents a failed login
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	// ErrorTypeTooLarge represents a request body over the configured limit
	ErrorTypeTooLarge ErrorType = "too_large"
	// ErrorTypeStorage represents blob storage failures
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields.
// Message is safe to show to callers; Err carries the underlying cause.
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind returns the error category
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// PublicMessage returns the caller-facing message
func (e *BaseError) PublicMessage() string {
	return e.Message
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Directory Errors

// ErrUserNotFound is returned when an email does not resolve to a profile
type ErrUserNotFound struct {
	*BaseError
	Email string
}

func NewUserNotFound(email string) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, "User not found", nil),
		Email:     email,
	}
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("[%s] user not found: %s", e.Type, e.Email)
}

// ErrProfileExists is returned when registering an email that is already taken
type ErrProfileExists struct {
	*BaseError
	Email string
}

func NewProfileExists(email string) *ErrProfileExists {
	return &ErrProfileExists{
		BaseError: NewBaseError(ErrorTypeConflict, "Email already exists!", nil),
		Email:     email,
	}
}

// ErrMissingFields is returned when required input fields are empty
type ErrMissingFields struct {
	*BaseError
	Fields []string
}

func NewMissingFields(fields []string, err error) *ErrMissingFields {
	return &ErrMissingFields{
		BaseError: NewBaseError(ErrorTypeInvalidRequest, "All fields are required!", err),
		Fields:    fields,
	}
}

// ErrInvalidCredentials is returned when email and password do not match a profile
var ErrInvalidCredentials = NewBaseError(ErrorTypeUnauthorized, "Invalid email or password!", nil)

// Friend Graph Errors

// ErrSelfFriendship is returned when a user tries to befriend themselves
var ErrSelfFriendship = NewBaseError(ErrorTypeInvalidRequest, "Cannot add yourself as friend", nil)

// ErrAlreadyFriends is returned when the pair is already linked
type ErrAlreadyFriends struct {
	*BaseError
	User1 string
	User2 string
}

func NewAlreadyFriends(user1, user2 string) *ErrAlreadyFriends {
	return &ErrAlreadyFriends{
		BaseError: NewBaseError(ErrorTypeConflict, "Already friends", nil),
		User1:     user1,
		User2:     user2,
	}
}

// Conversation Errors

// ErrNotFriends is returned when a message is sent between users who are not friends
type ErrNotFriends struct {
	*BaseError
	From string
	To   string
}

func NewNotFriends(from, to string) *ErrNotFriends {
	return &ErrNotFriends{
		BaseError: NewBaseError(ErrorTypeForbidden, "Can only message friends", nil),
		From:      from,
		To:        to,
	}
}

// Media Errors

// ErrNoFileUploaded is returned when a multipart upload carries no file
type ErrNoFileUploaded struct {
	*BaseError
	Field string
}

func NewNoFileUploaded(field string) *ErrNoFileUploaded {
	return &ErrNoFileUploaded{
		BaseError: NewBaseError(ErrorTypeInvalidRequest, fmt.Sprintf("no file uploaded in field %q", field), nil),
		Field:     field,
	}
}

// ErrUploadTooLarge is returned when an upload exceeds the size limit
type ErrUploadTooLarge struct {
	*BaseError
	Limit int64
}

func NewUploadTooLarge(limit int64, err error) *ErrUploadTooLarge {
	return &ErrUploadTooLarge{
		BaseError: NewBaseError(ErrorTypeTooLarge, "File too large!", err),
		Limit:     limit,
	}
}

// ErrStorageFailed is returned when the blob store cannot persist or remove a file
type ErrStorageFailed struct {
	*BaseError
	Path string
}

func NewStorageFailed(path string, err error) *ErrStorageFailed {
	return &ErrStorageFailed{
		BaseError: NewBaseError(ErrorTypeStorage, fmt.Sprintf("storage operation failed: %s", path), err),
		Path:      path,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type kinded interface {
	Kind() ErrorType
}

type publicMessager interface {
	PublicMessage() string
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		var k kinded
		if !stderrors.As(err, &k) {
			return false
		}
		if k.Kind() == errType {
			return true
		}
		// keep walking past a typed error whose category does not match
		u, ok := k.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// PublicMessage returns the caller-facing message carried by err,
// or fallback when err is not one of ours.
func PublicMessage(err error, fallback string) string {
	var pm publicMessager
	if stderrors.As(err, &pm) {
		return pm.PublicMessage()
	}
	return fallback
}

// IsRetryable checks if an error is retryable.
// Business-rule outcomes never are; only storage hiccups may be.
func IsRetryable(err error) bool {
	return IsErrorType(err, ErrorTypeStorage)
}
