package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
)

func Authorize(signKey string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(signKey),
		ErrorHandler: jwtError,
		ContextKey:   "identity",
	})
}

// AuthorizeOptional verifies a bearer token when one is present but lets the
// request through without one. Used on the PayPal return leg, where the
// buyer's browser carries no Authorization header and the enrollee identity
// is pinned server-side by the stored payment intent.
func AuthorizeOptional(signKey string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(signKey),
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Next()
		},
		ContextKey: "identity",
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}
