package database

import (
	"errors"
	"fmt"
)

// Sentinel categories for errors.Is checks. Concrete errors below carry the
// user-facing message and satisfy Is() against their category.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// NotFoundError reports a get/update/delete that matched zero rows.
// Its message is the exact string surfaced in the envelope: "<Entity> not found".
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string        { return e.Entity + " not found" }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports caller input the repository refused, such as a
// patch with no updatable fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConfigurationError reports unusable backend configuration. The manager
// catches it during backend selection and falls back to the memory backend
// instead of failing the caller.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string        { return e.Message }
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// BackendError wraps a failure propagated from a storage backend.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *BackendError) Unwrap() error { return e.Err }

func backendErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}
