package services

import "errors"

// Validation failures are rejected synchronously and never reach the store.
var (
	ErrInvalidLimit     = errors.New("limit must be a positive integer")
	ErrMissingGuestID   = errors.New("guestId is required for unauthenticated feed requests")
	ErrInvalidDirection = errors.New("direction must be accept or reject")
	ErrUnknownAction    = errors.New("unknown action type")
	ErrMissingActor     = errors.New("either actorId or guestId is required")
)

// IsValidationError reports whether err is a synchronous input rejection.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrMissingGuestID) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrUnknownAction) ||
		errors.Is(err, ErrMissingActor)
}
