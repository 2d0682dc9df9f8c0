package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"conference-webapp/registration"
)

// PayPalSuccess is the provider-initiated return leg of the redirect flow.
// It answers with a redirect to the conference page carrying the outcome,
// because the UA arriving here is the buyer's browser, not an API client.
// The browser carries no bearer token; the orchestrator resolves the
// enrollee from the stored payment intent.
func PayPalSuccess(c *fiber.Ctx) error {
	paymentId := c.Query("paymentId")
	payerId := c.Query("PayerID")
	rawConfId := c.Query("conferenceId")

	if paymentId == "" || payerId == "" || rawConfId == "" {
		return c.Redirect(fmt.Sprintf("/conference/%s?error=missing_payment_params", rawConfId))
	}
	confId, err := primitive.ObjectIDFromHex(rawConfId)
	if err != nil {
		return c.Redirect("/conference?error=missing_payment_params")
	}

	_, confirmErr := Core.ConfirmPayPalCallback(c.Context(), optionalCaller(c), paymentId, payerId, confId)
	switch confirmErr {
	case nil:
		return c.Redirect(fmt.Sprintf("/conference/%s?success=payment_completed", rawConfId))
	case registration.ErrAlreadyRegistered:
		return c.Redirect(fmt.Sprintf("/conference/%s?success=already_registered", rawConfId))
	case registration.ErrPaymentNotApproved:
		return c.Redirect(fmt.Sprintf("/conference/%s?error=payment_not_approved", rawConfId))
	case registration.ErrConferenceNotFound:
		return c.Redirect(fmt.Sprintf("/conference/%s?error=conference_not_found", rawConfId))
	case registration.ErrConferenceFull:
		return c.Redirect(fmt.Sprintf("/conference/%s?error=conference_full", rawConfId))
	default:
		return c.Redirect(fmt.Sprintf("/conference/%s?error=registration_failed", rawConfId))
	}
}
