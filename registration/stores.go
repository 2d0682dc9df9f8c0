package registration

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"conference-webapp/model"
)

// ConferenceStore is the orchestrator's view of conference records. The
// counter operations are conditional and evaluated by the store itself:
// IncrementAttendees must only succeed while attendees < max_attendees, and
// DecrementAttendees must never take the counter below zero.
type ConferenceStore interface {
	GetConference(ctx context.Context, id primitive.ObjectID) (model.Conference, error)

	// IncrementAttendees returns the new counter value, ErrConferenceFull
	// when the conference is at capacity, or ErrConferenceNotFound.
	IncrementAttendees(ctx context.Context, id primitive.ObjectID) (int, error)

	// DecrementAttendees returns the new counter value and whether the
	// decrement had to be clamped because the counter was already zero.
	DecrementAttendees(ctx context.Context, id primitive.ObjectID) (int, bool, error)
}

// EnrollmentStore owns enrollment records. CreateEnrollment must enforce
// uniqueness of the (attendee, conference) pair as a hard constraint and
// report a violation as ErrAlreadyRegistered, so a concurrent duplicate
// fails at write time instead of slipping past a read check.
type EnrollmentStore interface {
	CreateEnrollment(ctx context.Context, enr model.Enrollment) error
	GetEnrollment(ctx context.Context, id primitive.ObjectID) (model.Enrollment, error)
	FindEnrollment(ctx context.Context, attendeeId, conferenceId primitive.ObjectID) (model.Enrollment, bool, error)
	ListEnrollments(ctx context.Context, attendeeId primitive.ObjectID) ([]model.Enrollment, error)

	// DeleteEnrollment returns ErrEnrollmentNotFound when nothing was
	// deleted, so a concurrent double-cancel cannot decrement twice.
	DeleteEnrollment(ctx context.Context, id primitive.ObjectID) error
}

// IntentStore holds pending redirect-payment intents keyed by the gateway's
// payment id.
type IntentStore interface {
	SaveIntent(ctx context.Context, intent model.PaymentIntent) error
	GetIntent(ctx context.Context, paymentId string) (model.PaymentIntent, bool, error)
	DeleteIntent(ctx context.Context, paymentId string) error
}

// UserStore resolves attendee records, used when assembling notifications.
type UserStore interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (model.UserData, error)
}

// ChargeRequest is a synchronous card charge.
type ChargeRequest struct {
	Amount    float64
	Currency  model.Currency
	Reference string
	Card      model.CardDetails
}

// RedirectIntent is the gateway's answer to phase 1 of a redirect payment.
type RedirectIntent struct {
	PaymentId   string `json:"payment_id"`
	ApprovalUrl string `json:"approval_url"`
}

// Gateway is the payment provider as seen by the orchestrator. Charge is the
// synchronous card path; the redirect pair implements the two-phase flow.
// Implementations translate provider failures into *PaymentError; capture
// reports "not approved" as (false, nil).
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) error
	CreateRedirectIntent(ctx context.Context, amount float64, currency model.Currency, conferenceId, title string) (RedirectIntent, error)
	CaptureRedirectIntent(ctx context.Context, paymentId, payerId string) (bool, error)
}

// Notifier delivers the best-effort confirmation message. Errors are logged
// by the orchestrator and never affect the registration result.
type Notifier interface {
	RegistrationConfirmed(attendee model.UserData, conf model.Conference, enr model.Enrollment) error
}
