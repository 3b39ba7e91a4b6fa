package domain

import "errors"

var (
	// ErrInvalidTransition is returned when a booking state transition is not allowed
	ErrInvalidTransition = errors.New("domain: invalid booking state transition")

	// ErrCapacityExceeded is returned when taking a spot would overrun session capacity
	ErrCapacityExceeded = errors.New("domain: session capacity exceeded")

	// ErrNoClassesRemaining is returned when debiting a subscription with zero credits
	ErrNoClassesRemaining = errors.New("domain: no classes remaining on subscription")
)
