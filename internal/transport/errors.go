package transport

import "fmt"

// Error types for HID transport operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeDeviceNotFound indicates no matching mouse was enumerated
	ErrTypeDeviceNotFound ErrorType = iota
	// ErrTypeOpenFailed indicates the HID handle could not be opened
	ErrTypeOpenFailed
	// ErrTypeNotConnected indicates a send was attempted without a connection
	ErrTypeNotConnected
	// ErrTypeWriteFailed indicates a report did not reach the device
	ErrTypeWriteFailed
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeDeviceNotFound:
		return "Device Not Found"
	case ErrTypeOpenFailed:
		return "Open Failed"
	case ErrTypeNotConnected:
		return "Not Connected"
	case ErrTypeWriteFailed:
		return "Write Failed"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// TransportError represents an error from an HID transport operation
type TransportError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Path    string    // HID device path involved (if any)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (device: %s)", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewDeviceNotFoundError creates a device-not-found error
func NewDeviceNotFoundError(message string) *TransportError {
	return &TransportError{Type: ErrTypeDeviceNotFound, Message: message}
}

// NewOpenFailedError creates an open-failed error
func NewOpenFailedError(message, path string, err error) *TransportError {
	return &TransportError{Type: ErrTypeOpenFailed, Message: message, Path: path, Err: err}
}

// NewNotConnectedError creates a not-connected error
func NewNotConnectedError(message string) *TransportError {
	return &TransportError{Type: ErrTypeNotConnected, Message: message}
}

// NewWriteFailedError creates a write-failed error
func NewWriteFailedError(message, path string, err error) *TransportError {
	return &TransportError{Type: ErrTypeWriteFailed, Message: message, Path: path, Err: err}
}

// IsDeviceNotFound checks if an error is a device-not-found error
func IsDeviceNotFound(err error) bool {
	if tErr, ok := err.(*TransportError); ok {
		return tErr.Type == ErrTypeDeviceNotFound
	}
	return false
}

// IsOpenFailed checks if an error is an open-failed error
func IsOpenFailed(err error) bool {
	if tErr, ok := err.(*TransportError); ok {
		return tErr.Type == ErrTypeOpenFailed
	}
	return false
}

// IsNotConnected checks if an error is a not-connected error
func IsNotConnected(err error) bool {
	if tErr, ok := err.(*TransportError); ok {
		return tErr.Type == ErrTypeNotConnected
	}
	return false
}

// IsWriteFailed checks if an error is a write-failed error
func IsWriteFailed(err error) bool {
	if tErr, ok := err.(*TransportError); ok {
		return tErr.Type == ErrTypeWriteFailed
	}
	return false
}
