package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"conference-webapp/config"
	"conference-webapp/database"
	"conference-webapp/handlers"
	"conference-webapp/logger"
	"conference-webapp/notification"
	"conference-webapp/payment"
	"conference-webapp/registration"
	"conference-webapp/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load configuration")
	}
	logger.Init(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.DBInit(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to the database")
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("cannot create database indexes")
	}

	conferences := database.NewConferenceCollection(db, log.Logger)
	enrollments := database.NewEnrollmentCollection(db)
	intents := database.NewIntentCollection(db)
	users := database.NewUserCollection(db)
	speakers := database.NewSpeakerCollection(db)

	gateway := &payment.Gateway{
		Cards:  payment.NewSimulatedCardProcessor(),
		PayPal: payment.NewPayPalClient(cfg.PayPal),
	}

	var notifier registration.Notifier
	if cfg.SMTP.Enabled {
		notifier = notification.NewEmailSender(cfg.SMTP)
	} else {
		notifier = &notification.LogSender{Log: log.Logger}
	}

	handlers.Core = registration.NewOrchestrator(
		conferences, enrollments, intents, users,
		gateway, notifier, cfg.Card.ChargeTimeout, log.Logger)
	handlers.Conferences = conferences
	handlers.Speakers = speakers
	handlers.Users = users
	handlers.SignKey = cfg.Auth.SignKey
	handlers.TokenTTL = cfg.Auth.TokenTTL

	app := fiber.New()
	router.SetupRoutes(app, cfg.Auth.SignKey)

	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
