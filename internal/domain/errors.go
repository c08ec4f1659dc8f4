package domain

import "errors"

var (
	// ErrJobNotFound is returned when a job ID is not present in the job table.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidState is returned when an operation is not permitted for the
	// job's current status, e.g. cancelling a job that already started.
	ErrInvalidState = errors.New("job cannot be cancelled in its current state")
)
