package errors

import (
	goerrors "errors"

	"github.com/gofiber/fiber/v2"

	"conference-webapp/registration"
)

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusForbidden, "lack of permissions", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

// RaiseRegistrationError maps every typed failure of the registration flow
// to its own status and message, so the caller can always distinguish "full"
// from "already registered" from "payment declined". Unknown errors become a
// generic 500 without leaking internals.
func RaiseRegistrationError(c *fiber.Ctx, err error) error {
	var payErr *registration.PaymentError
	var invErr *registration.InvariantError

	switch {
	case goerrors.Is(err, registration.ErrConferenceNotFound):
		return RaiseNotFoundError(c, "conference not found")
	case goerrors.Is(err, registration.ErrEnrollmentNotFound):
		return RaiseNotFoundError(c, "enrollment not found")
	case goerrors.Is(err, registration.ErrForbidden):
		return RaisePermissionsError(c, "operation not allowed for this account")
	case goerrors.Is(err, registration.ErrAlreadyRegistered):
		return RaiseError(c, fiber.StatusConflict, "already registered", "you already hold a seat at this conference")
	case goerrors.Is(err, registration.ErrConferenceFull):
		return RaiseError(c, fiber.StatusConflict, "conference is full", "no seats remaining")
	case goerrors.Is(err, registration.ErrPaymentNotApproved):
		return RaiseError(c, fiber.StatusPaymentRequired, "payment not approved", "the payment was not approved by the provider")
	case goerrors.As(err, &payErr):
		return RaiseError(c, fiber.StatusPaymentRequired, "payment failed", payErr.Reason)
	case goerrors.As(err, &invErr):
		return RaiseInternalServerError(c, "registration state inconsistency detected, support has been alerted")
	default:
		return RaiseInternalServerError(c, "unexpected error")
	}
}
