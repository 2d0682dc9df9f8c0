package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"conference-webapp/handlers"
	"conference-webapp/middleware"
)

func SetupRoutes(app *fiber.App, signKey string) {
	api := app.Group("/", logger.New())

	//Auth
	api.Post("/login", handlers.Login)
	api.Post("/signup", handlers.Signup)

	//Conference (public reads, organizer writes)
	conference := api.Group("/conference")
	conference.Get("/", handlers.GetConferences)
	conference.Get("/:id", handlers.GetConference)

	authorized := middleware.Authorize(signKey)
	conference.Post("/", authorized, handlers.CreateNewConference)
	conference.Put("/:id", authorized, handlers.UpdateConference)
	conference.Delete("/:id", authorized, handlers.DeleteConference)

	//Speaker (public reads, organizer writes)
	speaker := api.Group("/speaker")
	speaker.Get("/", handlers.GetSpeakers)
	speaker.Get("/:id", handlers.GetSpeaker)
	speaker.Post("/", authorized, handlers.CreateSpeaker)
	speaker.Put("/:id", authorized, handlers.UpdateSpeaker)
	speaker.Delete("/:id", authorized, handlers.DeleteSpeaker)

	//Registration (attendee only, checked by the orchestrator)
	conference.Post("/:confId/registration", authorized, handlers.Register)
	conference.Get("/:confId/registration/status", authorized, handlers.RegistrationStatus)

	registration := api.Group("/registration", authorized)
	registration.Get("/", handlers.GetMyRegistrations)
	registration.Delete("/:id", handlers.CancelRegistration)

	//Payment provider callback (reached by the buyer's browser, no token)
	api.Get("/payment/paypal/success", middleware.AuthorizeOptional(signKey), handlers.PayPalSuccess)
}
