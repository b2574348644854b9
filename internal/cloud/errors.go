package cloud

import "errors"

// Domain-specific errors for cloud API operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnauthorized is returned when the API token is missing, expired,
	// or rejected by the vendor.
	ErrUnauthorized = errors.New("cloud: authentication rejected")

	// ErrDeviceNotFound is returned when the vendor does not know the
	// requested device identifier.
	ErrDeviceNotFound = errors.New("cloud: device not found")

	// ErrCommandRejected is returned when the vendor refuses a command,
	// typically because the device is in an incompatible state.
	ErrCommandRejected = errors.New("cloud: command rejected")

	// ErrRequestFailed is returned for any other non-success response.
	ErrRequestFailed = errors.New("cloud: request failed")
)
