package config

import "fmt"

// Error types for configuration store operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeInvalidSetting indicates a value outside a setting catalog
	// (unsupported polling rate or lift-off distance)
	ErrTypeInvalidSetting ErrorType = iota
	// ErrTypeOutOfRange indicates an index outside the DPI profile list
	ErrTypeOutOfRange
	// ErrTypeCapacityExceeded indicates the DPI profile list is full
	ErrTypeCapacityExceeded
	// ErrTypeMinimumProfiles indicates an attempt to remove the last profile
	ErrTypeMinimumProfiles
	// ErrTypeWriteFailed indicates the settings file could not be persisted
	ErrTypeWriteFailed
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalidSetting:
		return "Invalid Setting"
	case ErrTypeOutOfRange:
		return "Out Of Range"
	case ErrTypeCapacityExceeded:
		return "Capacity Exceeded"
	case ErrTypeMinimumProfiles:
		return "Minimum Profiles"
	case ErrTypeWriteFailed:
		return "Store Write Failed"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// ConfigError represents an error from a configuration store operation.
// Validation errors (every type except ErrTypeWriteFailed) are rejected
// before any side effect: neither the in-memory configuration nor the
// persisted file changes.
type ConfigError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewInvalidSettingError creates an invalid-setting error
func NewInvalidSettingError(message string) *ConfigError {
	return &ConfigError{Type: ErrTypeInvalidSetting, Message: message}
}

// NewOutOfRangeError creates an out-of-range index error
func NewOutOfRangeError(message string) *ConfigError {
	return &ConfigError{Type: ErrTypeOutOfRange, Message: message}
}

// NewCapacityExceededError creates a profile-capacity error
func NewCapacityExceededError(message string) *ConfigError {
	return &ConfigError{Type: ErrTypeCapacityExceeded, Message: message}
}

// NewMinimumProfilesError creates a minimum-profile-count error
func NewMinimumProfilesError(message string) *ConfigError {
	return &ConfigError{Type: ErrTypeMinimumProfiles, Message: message}
}

// NewWriteFailedError creates a persistence-write error
func NewWriteFailedError(message string, err error) *ConfigError {
	return &ConfigError{Type: ErrTypeWriteFailed, Message: message, Err: err}
}

// IsInvalidSetting checks if an error is an invalid-setting error
func IsInvalidSetting(err error) bool {
	if cfgErr, ok := err.(*ConfigError); ok {
		return cfgErr.Type == ErrTypeInvalidSetting
	}
	return false
}

// IsOutOfRange checks if an error is an out-of-range index error
func IsOutOfRange(err error) bool {
	if cfgErr, ok := err.(*ConfigError); ok {
		return cfgErr.Type == ErrTypeOutOfRange
	}
	return false
}

// IsCapacityExceeded checks if an error is a capacity error
func IsCapacityExceeded(err error) bool {
	if cfgErr, ok := err.(*ConfigError); ok {
		return cfgErr.Type == ErrTypeCapacityExceeded
	}
	return false
}

// IsMinimumProfiles checks if an error is a minimum-profile-count error
func IsMinimumProfiles(err error) bool {
	if cfgErr, ok := err.(*ConfigError); ok {
		return cfgErr.Type == ErrTypeMinimumProfiles
	}
	return false
}

// IsWriteFailed checks if an error is a persistence-write error
func IsWriteFailed(err error) bool {
	if cfgErr, ok := err.(*ConfigError); ok {
		return cfgErr.Type == ErrTypeWriteFailed
	}
	return false
}

// IsValidationError checks if an error is any synchronous validation error
// (as opposed to a persistence failure).
func IsValidationError(err error) bool {
	if cfgErr, ok := err.(*ConfigError); ok {
		return cfgErr.Type != ErrTypeWriteFailed
	}
	return false
}
