package registration

import (
	"errors"
)

// Step-level failures of the registration pipeline. Messages are surfaced
// verbatim to the registrant.
var (
	ErrValidation    = errors.New("Incomplete parameters.")
	ErrCaptcha       = errors.New("hCaptcha invalid.")
	ErrEventNotFound = errors.New("Event not found.")
	ErrDuplicate     = errors.New("Someone has already registered with that email.")
	ErrCapacity      = errors.New("Event is full.")
	ErrIssuance      = errors.New("QR Upload fail.")
	ErrMail          = errors.New("Fail to send mail.")

	// ErrFatal means the compensating cleanup after a mail failure itself
	// failed: an attendee record or uploaded image may be left behind.
	ErrFatal = errors.New("Fatal error.")
)

// WindowClosedError is returned when registration is attempted at or after
// the event's start time. The message depends on the walk-in policy.
type WindowClosedError struct {
	AllowWalkIn bool
}

func (e *WindowClosedError) Error() string {
	if e.AllowWalkIn {
		return "Online registration has ended. But, walk-in applicants are accepted."
	}
	return "Thank you for you interest, but the registration has ended."
}
