package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrVacuumNotFound) {
//	    // handle not found case
//	}
var (
	// ErrVacuumNotFound is returned when a vacuum ID does not exist.
	ErrVacuumNotFound = errors.New("device: not found")

	// ErrVacuumExists is returned when creating a vacuum with an ID that already exists.
	ErrVacuumExists = errors.New("device: already exists")

	// ErrInvalidVacuum is returned when vacuum validation fails.
	ErrInvalidVacuum = errors.New("device: invalid")

	// ErrInvalidName is returned when a vacuum name is empty or too long.
	ErrInvalidName = errors.New("device: invalid name")

	// ErrInvalidSlug is returned when a slug format is invalid.
	ErrInvalidSlug = errors.New("device: invalid slug")
)
