package domain

import "errors"

// Error kinds the transport layer maps to HTTP statuses.
var (
	// ErrNotTrained is returned when a prediction or simulation is requested
	// before any successful training run.
	ErrNotTrained = errors.New("models are not trained yet")

	// ErrDataFormat is returned when an uploaded dataset is missing required
	// columns or contains values that cannot be coerced.
	ErrDataFormat = errors.New("invalid data format")

	ErrDatasetNotFound = errors.New("dataset not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
