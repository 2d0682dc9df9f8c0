package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"conference-webapp/errors"
	"conference-webapp/model"
	"conference-webapp/registration"
)

// registerRequest is the body of POST /conference/:confId/registration.
type registerRequest struct {
	PaymentMethod string             `json:"payment_method"`
	Card          *model.CardDetails `json:"card,omitempty"`
}

func Register(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	confId, ok := objectIdParam(c, "confId")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed conference id")
	}

	req := new(registerRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("cannot parse registration request: %v", err))
	}

	var choice registration.PaymentChoice
	switch model.PaymentMethod(req.PaymentMethod) {
	case model.PaymentMethodFree, "":
		choice = registration.Free{}
	case model.PaymentMethodCard:
		if req.Card == nil {
			return errors.RaiseBadRequestError(c, "card details are required for card payments")
		}
		choice = registration.CardPayment{Card: *req.Card}
	case model.PaymentMethodPayPal:
		choice = registration.PayPalRedirect{}
	default:
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unknown payment method %q", req.PaymentMethod))
	}

	outcome, err := Core.AttemptRegister(c.Context(), caller, confId, choice)
	if err != nil {
		return errors.RaiseRegistrationError(c, err)
	}

	if outcome.Redirect != nil {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "approve the payment to finish registration",
			"data":    outcome.Redirect})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "registration confirmed",
		"data":    outcome})
}

func RegistrationStatus(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	confId, ok := objectIdParam(c, "confId")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed conference id")
	}

	registered, err := Core.IsRegistered(c.Context(), caller, confId)
	if err != nil {
		return errors.RaiseRegistrationError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "",
		"data":    fiber.Map{"is_registered": registered}})
}

func GetMyRegistrations(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	enrollments, err := Core.ListEnrollments(c.Context(), caller)
	if err != nil {
		return errors.RaiseRegistrationError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "", "data": enrollments})
}

func CancelRegistration(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	enrollmentId, ok := objectIdParam(c, "id")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed enrollment id")
	}

	if err := Core.Cancel(c.Context(), caller, enrollmentId); err != nil {
		return errors.RaiseRegistrationError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "registration cancelled",
		"data":    fmt.Sprintf("enrollment %v was cancelled", c.Params("id"))})
}
