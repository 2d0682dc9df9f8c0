// Package registration holds the registration orchestrator, the sole
// authority over enrollment records and conference attendee counters. Every
// path that creates or removes a seat (free registration, card payment,
// PayPal redirect and its callback, cancellation) funnels through it.
package registration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"conference-webapp/model"
)

// Caller is the resolved identity of the requester. Handlers build it once
// from the verified token; the orchestrator checks capabilities on the typed
// role instead of comparing claim strings at every call site.
type Caller struct {
	Id   primitive.ObjectID
	Role model.Role
}

// PaymentChoice is the caller's declared way of paying. Exactly one of the
// three variants below is accepted.
type PaymentChoice interface {
	method() model.PaymentMethod
}

type Free struct{}

type CardPayment struct {
	Card model.CardDetails
}

type PayPalRedirect struct{}

func (Free) method() model.PaymentMethod        { return model.PaymentMethodFree }
func (CardPayment) method() model.PaymentMethod { return model.PaymentMethodCard }
func (PayPalRedirect) method() model.PaymentMethod {
	return model.PaymentMethodPayPal
}

// Outcome is the result of a successful AttemptRegister or callback
// confirmation. Redirect is non-nil for phase 1 of the PayPal flow, in which
// case no enrollment exists yet and the other fields are zero.
type Outcome struct {
	Enrollment model.Enrollment `json:"enrollment"`
	Attendees  int              `json:"attendees"`
	Redirect   *RedirectIntent  `json:"redirect,omitempty"`
}

type Orchestrator struct {
	conferences ConferenceStore
	enrollments EnrollmentStore
	intents     IntentStore
	users       UserStore
	gateway     Gateway
	notifier    Notifier
	log         zerolog.Logger

	// bound on the synchronous gateway charge; on expiry the charge is
	// reported as a payment failure, never left indeterminate
	chargeTimeout time.Duration
}

func NewOrchestrator(
	conferences ConferenceStore,
	enrollments EnrollmentStore,
	intents IntentStore,
	users UserStore,
	gateway Gateway,
	notifier Notifier,
	chargeTimeout time.Duration,
	log zerolog.Logger,
) *Orchestrator {
	if chargeTimeout <= 0 {
		chargeTimeout = 15 * time.Second
	}
	return &Orchestrator{
		conferences:   conferences,
		enrollments:   enrollments,
		intents:       intents,
		users:         users,
		gateway:       gateway,
		notifier:      notifier,
		chargeTimeout: chargeTimeout,
		log:           log,
	}
}

// AttemptRegister runs the precondition chain (conference exists, not already
// registered, seats remain), completes payment according to the declared
// choice and, except for the PayPal redirect case, writes the enrollment and
// increments the attendee counter as one coupled unit.
func (o *Orchestrator) AttemptRegister(ctx context.Context, caller Caller, conferenceId primitive.ObjectID, choice PaymentChoice) (Outcome, error) {
	if caller.Role != model.RoleAttendee {
		return Outcome{}, ErrForbidden
	}

	conf, err := o.conferences.GetConference(ctx, conferenceId)
	if err != nil {
		return Outcome{}, err
	}

	if _, exists, err := o.enrollments.FindEnrollment(ctx, caller.Id, conferenceId); err != nil {
		return Outcome{}, err
	} else if exists {
		return Outcome{}, ErrAlreadyRegistered
	}

	// advisory check for an early, friendly rejection; the authoritative
	// capacity decision is the conditional increment below
	if conf.Attendees >= conf.MaxAttendees {
		return Outcome{}, ErrConferenceFull
	}

	if conf.Free() {
		choice = Free{}
	}

	switch pay := choice.(type) {
	case Free:
		return o.confirmSeat(ctx, caller.Id, conf, model.PaymentMethodFree, "")

	case CardPayment:
		reference := uuid.NewString()
		chargeCtx, cancel := context.WithTimeout(ctx, o.chargeTimeout)
		defer cancel()
		err := o.gateway.Charge(chargeCtx, ChargeRequest{
			Amount:    conf.TicketPrice,
			Currency:  conf.Currency,
			Reference: reference,
			Card:      pay.Card,
		})
		if err != nil {
			return Outcome{}, asPaymentError(err)
		}
		return o.confirmSeat(ctx, caller.Id, conf, model.PaymentMethodCard, reference)

	case PayPalRedirect:
		redirect, err := o.gateway.CreateRedirectIntent(ctx, conf.TicketPrice, conf.Currency, conf.Id.Hex(), conf.Title)
		if err != nil {
			return Outcome{}, asPaymentError(err)
		}
		intent := model.PaymentIntent{
			PaymentId:    redirect.PaymentId,
			AttendeeId:   caller.Id,
			ConferenceId: conf.Id,
			Amount:       conf.TicketPrice,
			Currency:     conf.Currency,
			CreatedAt:    time.Now().UTC(),
		}
		if err := o.intents.SaveIntent(ctx, intent); err != nil {
			return Outcome{}, err
		}
		return Outcome{Redirect: &redirect}, nil

	default:
		return Outcome{}, &PaymentError{Reason: "unsupported payment method"}
	}
}

// ConfirmPayPalCallback is phase 2 of the redirect flow, invoked when the
// provider sends the buyer back. It is idempotent per payment id: a replayed
// or duplicate callback for an already-confirmed payment returns the existing
// enrollment without touching the counter.
//
// The enrollee is taken from the stored intent, not from the caller or the
// redirect parameters: the return leg arrives on the buyer's bare browser
// without a bearer token, and the intent record is the identity that was
// authenticated when the payment was started. The caller, when one is
// present, is only consulted as a fallback for callbacks replayed after the
// intent was consumed.
func (o *Orchestrator) ConfirmPayPalCallback(ctx context.Context, caller Caller, paymentId, payerId string, conferenceId primitive.ObjectID) (Outcome, error) {
	intent, found, err := o.intents.GetIntent(ctx, paymentId)
	if err != nil {
		return Outcome{}, err
	}
	if !found {
		// Either an unknown payment id or a callback replayed after the
		// intent was consumed. With an authenticated attendee, an existing
		// enrollment means the payment was already reconciled; report
		// success idempotently.
		if caller.Role == model.RoleAttendee {
			if enr, exists, err := o.enrollments.FindEnrollment(ctx, caller.Id, conferenceId); err != nil {
				return Outcome{}, err
			} else if exists {
				return o.existingSeat(ctx, enr)
			}
		}
		return Outcome{}, ErrPaymentNotApproved
	}

	if intent.ConferenceId != conferenceId {
		o.log.Warn().
			Str("payment_id", paymentId).
			Str("intent_conference", intent.ConferenceId.Hex()).
			Str("callback_conference", conferenceId.Hex()).
			Msg("paypal callback conference mismatch")
		return Outcome{}, ErrPaymentNotApproved
	}

	approved, err := o.gateway.CaptureRedirectIntent(ctx, paymentId, payerId)
	if err != nil {
		o.log.Error().Err(err).Str("payment_id", paymentId).Msg("paypal capture failed")
		return Outcome{}, ErrPaymentNotApproved
	}
	if !approved {
		return Outcome{}, ErrPaymentNotApproved
	}

	// duplicate callback or race with a concurrent attempt: the seat is
	// already held, never increment twice for one approved payment
	if enr, exists, err := o.enrollments.FindEnrollment(ctx, intent.AttendeeId, intent.ConferenceId); err != nil {
		return Outcome{}, err
	} else if exists {
		o.consumeIntent(ctx, paymentId)
		return o.existingSeat(ctx, enr)
	}

	conf, err := o.conferences.GetConference(ctx, intent.ConferenceId)
	if err != nil {
		return Outcome{}, err
	}

	outcome, err := o.confirmSeat(ctx, intent.AttendeeId, conf, model.PaymentMethodPayPal, paymentId)
	if err != nil {
		return Outcome{}, err
	}
	o.consumeIntent(ctx, paymentId)
	return outcome, nil
}

// Cancel removes the caller's enrollment and decrements the attendee counter
// exactly once. A counter already at zero is clamped and reported, never
// driven negative.
func (o *Orchestrator) Cancel(ctx context.Context, caller Caller, enrollmentId primitive.ObjectID) error {
	if caller.Role != model.RoleAttendee {
		return ErrForbidden
	}

	enr, err := o.enrollments.GetEnrollment(ctx, enrollmentId)
	if err != nil {
		return err
	}
	if enr.AttendeeId != caller.Id {
		return ErrForbidden
	}

	if err := o.enrollments.DeleteEnrollment(ctx, enrollmentId); err != nil {
		return err
	}

	count, clamped, err := o.conferences.DecrementAttendees(ctx, enr.ConferenceId)
	switch {
	case errors.Is(err, ErrConferenceNotFound):
		// conference was deleted concurrently, nothing left to decrement
		o.log.Warn().
			Str("conference_id", enr.ConferenceId.Hex()).
			Str("enrollment_id", enrollmentId.Hex()).
			Msg("cancelled enrollment for a conference that no longer exists")
		return nil
	case err != nil:
		inv := &InvariantError{
			Op:           "cancel",
			ConferenceId: enr.ConferenceId.Hex(),
			EnrollmentId: enrollmentId.Hex(),
			Err:          err,
		}
		o.logInvariant(inv, "enrollment deleted but counter not decremented")
		return inv
	}
	if clamped {
		o.log.Error().
			Bool("invariant_violation", true).
			Str("conference_id", enr.ConferenceId.Hex()).
			Str("enrollment_id", enrollmentId.Hex()).
			Msg("attendee counter was already zero on cancel, clamped")
	}
	o.log.Info().
		Str("conference_id", enr.ConferenceId.Hex()).
		Str("enrollment_id", enrollmentId.Hex()).
		Int("attendees", count).
		Msg("enrollment cancelled")
	return nil
}

// IsRegistered reports whether the caller holds a seat at the conference.
func (o *Orchestrator) IsRegistered(ctx context.Context, caller Caller, conferenceId primitive.ObjectID) (bool, error) {
	if caller.Role != model.RoleAttendee {
		return false, ErrForbidden
	}
	_, exists, err := o.enrollments.FindEnrollment(ctx, caller.Id, conferenceId)
	return exists, err
}

// ListEnrollments returns all of the caller's enrollments.
func (o *Orchestrator) ListEnrollments(ctx context.Context, caller Caller) ([]model.Enrollment, error) {
	if caller.Role != model.RoleAttendee {
		return nil, ErrForbidden
	}
	return o.enrollments.ListEnrollments(ctx, caller.Id)
}

// confirmSeat writes the enrollment in its terminal confirmed form and
// couples it to the counter increment. The enrollment is created first so the
// unique pair index arbitrates concurrent duplicates; if the conditional
// increment then fails, the enrollment is compensated away. A failed
// compensation is the one unrecoverable condition and surfaces as an
// InvariantError.
func (o *Orchestrator) confirmSeat(ctx context.Context, attendeeId primitive.ObjectID, conf model.Conference, method model.PaymentMethod, reference string) (Outcome, error) {
	enr := model.Enrollment{
		Id:               primitive.NewObjectID(),
		AttendeeId:       attendeeId,
		ConferenceId:     conf.Id,
		Status:           model.EnrollmentConfirmed,
		PaymentStatus:    model.PaymentCompleted,
		PaymentMethod:    method,
		PaymentReference: reference,
		CreatedAt:        time.Now().UTC(),
	}

	if err := o.enrollments.CreateEnrollment(ctx, enr); err != nil {
		return Outcome{}, err
	}

	count, err := o.conferences.IncrementAttendees(ctx, conf.Id)
	if err != nil {
		if delErr := o.enrollments.DeleteEnrollment(ctx, enr.Id); delErr != nil {
			inv := &InvariantError{
				Op:           "register",
				ConferenceId: conf.Id.Hex(),
				EnrollmentId: enr.Id.Hex(),
				Err:          delErr,
			}
			o.logInvariant(inv, "enrollment created, counter not incremented, compensation failed")
			return Outcome{}, inv
		}
		return Outcome{}, err
	}

	o.log.Info().
		Str("conference_id", conf.Id.Hex()).
		Str("attendee_id", attendeeId.Hex()).
		Str("payment_method", string(method)).
		Int("attendees", count).
		Msg("registration confirmed")

	o.notify(attendeeId, conf, enr)

	return Outcome{Enrollment: enr, Attendees: count}, nil
}

// existingSeat packages an already-confirmed enrollment as a successful
// outcome, re-reading the current counter for the response.
func (o *Orchestrator) existingSeat(ctx context.Context, enr model.Enrollment) (Outcome, error) {
	conf, err := o.conferences.GetConference(ctx, enr.ConferenceId)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Enrollment: enr, Attendees: conf.Attendees}, nil
}

// consumeIntent is best-effort: a leftover intent is harmless because the
// enrollment-exists check wins on any replay.
func (o *Orchestrator) consumeIntent(ctx context.Context, paymentId string) {
	if err := o.intents.DeleteIntent(ctx, paymentId); err != nil {
		o.log.Warn().Err(err).Str("payment_id", paymentId).Msg("could not delete consumed payment intent")
	}
}

// notify fires the confirmation message on its own goroutine. Failures are
// logged and dropped; they never roll back a registration.
func (o *Orchestrator) notify(attendeeId primitive.ObjectID, conf model.Conference, enr model.Enrollment) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		attendee, err := o.users.GetUser(ctx, attendeeId)
		if err != nil {
			o.log.Error().Err(err).Str("attendee_id", attendeeId.Hex()).Msg("could not resolve attendee for notification")
			return
		}
		if err := o.notifier.RegistrationConfirmed(attendee, conf, enr); err != nil {
			o.log.Error().Err(err).
				Str("attendee_id", attendeeId.Hex()).
				Str("conference_id", conf.Id.Hex()).
				Msg("registration confirmation notification failed")
		}
	}()
}

func (o *Orchestrator) logInvariant(inv *InvariantError, msg string) {
	o.log.Error().
		Bool("invariant_violation", true).
		Str("op", inv.Op).
		Str("conference_id", inv.ConferenceId).
		Str("enrollment_id", inv.EnrollmentId).
		Err(inv.Err).
		Msg(msg)
}

func asPaymentError(err error) error {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &PaymentError{Reason: "payment gateway timed out"}
	}
	return &PaymentError{Reason: err.Error()}
}
