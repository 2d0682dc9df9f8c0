package registration

import (
	"errors"
	"fmt"
)

// Typed failure modes of the registration flow. Handlers map each of these to
// a distinct HTTP response; nothing in this package knows about transports.
var (
	ErrConferenceNotFound = errors.New("conference not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrForbidden          = errors.New("caller is not allowed to perform this operation")
	ErrAlreadyRegistered  = errors.New("attendee is already registered for this conference")
	ErrConferenceFull     = errors.New("conference has no remaining seats")
	ErrPaymentNotApproved = errors.New("payment was not approved")
)

// PaymentError is a synchronous gateway rejection. Reason carries the
// gateway's wording and is safe to show to the caller.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed: %s", e.Reason)
}

// InvariantError reports that an enrollment write and its paired attendee
// counter update could not be coupled, i.e. the 1:1 pairing between confirmed
// enrollments and counter increments is broken. It is the only error in the
// taxonomy that signals data inconsistency rather than a caller mistake, and
// it must always be logged with the invariant_violation marker.
type InvariantError struct {
	Op           string
	ConferenceId string
	EnrollmentId string
	Err          error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation during %s for conference %s, enrollment %s: %v",
		e.Op, e.ConferenceId, e.EnrollmentId, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
