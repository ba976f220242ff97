package core

import (
	"fmt"
)

// ErrorCategory classifies what part of the driver an error came from.
type ErrorCategory int

const (
	ErrCategoryNone     ErrorCategory = iota // No error
	ErrCategoryDevice                        // adb command execution failed
	ErrCategorySnapshot                      // UI snapshot could not be obtained or parsed
	ErrCategoryLocator                       // element lookup against the snapshot failed
	ErrCategoryApp                           // activity manager rejected an app command
	ErrCategoryInput                         // input event could not be delivered
	ErrCategoryConfig                        // invalid configuration
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryDevice:
		return "device"
	case ErrCategorySnapshot:
		return "snapshot"
	case ErrCategoryLocator:
		return "locator"
	case ErrCategoryApp:
		return "app"
	case ErrCategoryInput:
		return "input"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// DriverError represents a structured error with category and details
type DriverError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: element_not_found, snapshot_parse_failed, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context
	Cause    error                  // Underlying error
}

// Error implements the error interface
func (e *DriverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DriverError) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so errors.Is works against the predefined
// values even after WithCause/WithDetails copies.
func (e *DriverError) Is(target error) bool {
	t, ok := target.(*DriverError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause
func (e *DriverError) WithCause(cause error) *DriverError {
	return &DriverError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *DriverError) WithMessage(msg string) *DriverError {
	return &DriverError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details
func (e *DriverError) WithDetails(details map[string]interface{}) *DriverError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &DriverError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors
var (
	// Device errors
	ErrDeviceCommand = &DriverError{
		Category: ErrCategoryDevice,
		Code:     "device_command_failed",
		Message:  "device command failed",
	}
	ErrNotConnected = &DriverError{
		Category: ErrCategoryDevice,
		Code:     "wlan_unavailable",
		Message:  "device is not connected to WLAN",
	}
	ErrRootUnavailable = &DriverError{
		Category: ErrCategoryDevice,
		Code:     "root_unavailable",
		Message:  "device does not allow root access",
	}

	// Snapshot errors
	ErrSnapshotUnavailable = &DriverError{
		Category: ErrCategorySnapshot,
		Code:     "snapshot_unavailable",
		Message:  "UI snapshot file missing after pull",
	}
	ErrSnapshotParse = &DriverError{
		Category: ErrCategorySnapshot,
		Code:     "snapshot_parse_failed",
		Message:  "UI snapshot markup could not be parsed",
	}

	// Locator errors
	ErrElementNotFound = &DriverError{
		Category: ErrCategoryLocator,
		Code:     "element_not_found",
		Message:  "no such element",
	}
	ErrBoundsParse = &DriverError{
		Category: ErrCategoryLocator,
		Code:     "bounds_parse_failed",
		Message:  "element bounds attribute is malformed",
	}

	// App errors
	ErrAppCommand = &DriverError{
		Category: ErrCategoryApp,
		Code:     "am_command_failed",
		Message:  "activity manager rejected the command",
	}

	// Input errors
	ErrNonASCIIText = &DriverError{
		Category: ErrCategoryInput,
		Code:     "non_ascii_text",
		Message:  "input text must be ASCII",
	}

	// Config errors
	ErrInvalidConfig = &DriverError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)
