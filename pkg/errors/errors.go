// Package errors provides custom error types for the fbohub system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the fbohub system
var (
	// ErrNotFound indicates that a requested record or location was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateFacility indicates a creation collided with an existing
	// unverified record owned by someone else
	ErrDuplicateFacility = errors.New("duplicate facility")

	// ErrProtectedRecord indicates an attempt to delete a verified record
	ErrProtectedRecord = errors.New("protected record")

	// ErrRemoteUnavailable indicates the remote store is temporarily unreachable
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrDatasetStale indicates the bundled dataset version is not newer
	// than what the store already recorded
	ErrDatasetStale = errors.New("dataset not newer than stored version")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a record or location is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConflictError represents a duplicate-creation conflict: the normalized
// name collides with an unverified record owned by another contributor, so
// the caller must edit the existing entry instead of creating a new one
type ConflictError struct {
	LocationCode string
	Name         string
	Owner        string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("facility %q at %s already exists (entered by %s); edit the existing entry instead", e.Name, e.LocationCode, e.Owner)
	}
	return fmt.Sprintf("facility %q at %s already exists; edit the existing entry instead", e.Name, e.LocationCode)
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicateFacility
}

// NewConflictError creates a new ConflictError
func NewConflictError(locationCode, name, owner string) *ConflictError {
	return &ConflictError{LocationCode: locationCode, Name: name, Owner: owner}
}

// ProtectedError represents a rejected deletion of a verified record
type ProtectedError struct {
	LocationCode string
	Name         string
}

// Error implements the error interface
func (e *ProtectedError) Error() string {
	return fmt.Sprintf("facility %q at %s is verified and cannot be deleted; submit an edit instead", e.Name, e.LocationCode)
}

// Is implements errors.Is support
func (e *ProtectedError) Is(target error) bool {
	return target == ErrProtectedRecord
}

// NewProtectedError creates a new ProtectedError
func NewProtectedError(locationCode, name string) *ProtectedError {
	return &ProtectedError{LocationCode: locationCode, Name: name}
}

// RemoteError represents a transient remote store failure. Sync treats it
// as a soft condition: fetch degrades to empty incoming data, push stays
// queued for a later attempt
type RemoteError struct {
	Operation    string // "fetch", "save", "update", "delete"
	LocationCode string
	Err          error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.LocationCode != "" {
		return fmt.Sprintf("remote %s for %s failed: %v", e.Operation, e.LocationCode, e.Err)
	}
	return fmt.Sprintf("remote %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(operation, locationCode string, err error) *RemoteError {
	return &RemoteError{Operation: operation, LocationCode: locationCode, Err: err}
}

// StoreError represents an error during local store operations
type StoreError struct {
	Operation string // "read", "write", "open", "migrate", "close"
	Key       string // location code or metadata key
	Message   string
	Err       error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store error during %s of %s: %s", e.Operation, e.Key, e.Message)
	}
	return fmt.Sprintf("store error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(operation, key string, err error) *StoreError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &StoreError{
		Operation: operation,
		Key:       key,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "yaml", "json"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// SyncError represents a hard error during sync operations. Remote
// unavailability is not a SyncError; only store failures and invalid
// requests abort a sync
type SyncError struct {
	LocationCode string
	Err          error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	return fmt.Sprintf("sync error for %s: %v", e.LocationCode, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError
func NewSyncError(locationCode string, err error) *SyncError {
	return &SyncError{LocationCode: locationCode, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is a duplicate-creation conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateFacility)
}

// IsProtected checks if an error is a protected-record rejection
func IsProtected(err error) bool {
	return errors.Is(err, ErrProtectedRecord)
}

// IsRemoteUnavailable checks if an error indicates remote store unavailability
func IsRemoteUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapStore wraps an error as a StoreError
func WrapStore(operation, key string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreError(operation, key, err)
}

// WrapRemote wraps an error as a RemoteError
func WrapRemote(operation, locationCode string, err error) error {
	if err == nil {
		return nil
	}
	return NewRemoteError(operation, locationCode, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapSync wraps an error as a SyncError
func WrapSync(locationCode string, err error) error {
	if err == nil {
		return nil
	}
	return NewSyncError(locationCode, err)
}
