package timeslot

import (
	timeslotRepo "rideconnect/database/repository/timeslot"
)

// ValidationError rejects malformed slot input. It never touches other slots.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

var (
	ErrNotFound  = timeslotRepo.ErrNotFound
	ErrDuplicate = timeslotRepo.ErrDuplicate
)
