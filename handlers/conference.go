package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"conference-webapp/database"
	"conference-webapp/errors"
	"conference-webapp/model"
	"conference-webapp/registration"
)

func GetConferences(c *fiber.Ctx) error {
	conferences, dbErr := Conferences.ListConferences(c.Context())
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "", "data": conferences})
}

func GetConference(c *fiber.Ctx) error {
	confId, ok := objectIdParam(c, "id")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed conference id")
	}

	conference, dbErr := Conferences.GetConference(c.Context(), confId)
	if dbErr == registration.ErrConferenceNotFound {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("conference %v not found", c.Params("id")))
	}
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "", "data": conference})
}

func CreateNewConference(c *fiber.Ctx) error {
	if !isOrganizer(c) {
		return errors.RaisePermissionsError(c, "only an organizer can perform this operation")
	}
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	newConf := new(model.Conference)
	if jsonErr := c.BodyParser(newConf); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable conference parameters: %v", jsonErr))
	}
	newConf.Id = primitive.NewObjectID()
	newConf.Title = strings.TrimSpace(newConf.Title)
	newConf.Attendees = 0
	newConf.CreatedBy = caller.Id
	newConf.CreatedAt = time.Now().UTC()
	if newConf.Currency == "" {
		newConf.Currency = model.CurrencyUSD
	}
	if newConf.SpeakerIds == nil {
		newConf.SpeakerIds = []primitive.ObjectID{}
	}
	if newConf.HashTags == nil {
		newConf.HashTags = []string{}
	}

	if validationErr := validateConferenceInput(*newConf); validationErr != nil {
		return errors.RaiseBadRequestError(c,
			fmt.Sprintf("incorrect input for conference parameters: %v", validationErr))
	}

	if writeErr := Conferences.CreateConference(c.Context(), *newConf); writeErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", writeErr))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "message": "conference created", "data": newConf})
}

func UpdateConference(c *fiber.Ctx) error {
	if !isOrganizer(c) {
		return errors.RaisePermissionsError(c, "only an organizer can perform this operation")
	}
	confId, ok := objectIdParam(c, "id")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed conference id")
	}

	current, dbErr := Conferences.GetConference(c.Context(), confId)
	if dbErr == registration.ErrConferenceNotFound {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("conference %v not found", c.Params("id")))
	}
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}

	updated := new(model.Conference)
	if jsonErr := c.BodyParser(updated); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable conference parameters: %v", jsonErr))
	}
	updated.Id = current.Id
	updated.Title = strings.TrimSpace(updated.Title)
	updated.Attendees = current.Attendees
	updated.CreatedBy = current.CreatedBy
	updated.CreatedAt = current.CreatedAt
	if updated.Currency == "" {
		updated.Currency = current.Currency
	}
	if updated.SpeakerIds == nil {
		updated.SpeakerIds = current.SpeakerIds
	}
	if updated.HashTags == nil {
		updated.HashTags = current.HashTags
	}

	if validationErr := validateConferenceInput(*updated); validationErr != nil {
		return errors.RaiseBadRequestError(c,
			fmt.Sprintf("incorrect input for conference parameters: %v", validationErr))
	}

	updateErr := Conferences.UpdateConference(c.Context(), *updated)
	if updateErr == database.ErrCapacityBelowAttendees {
		return errors.RaiseBadRequestError(c,
			fmt.Sprintf("cannot set max attendees to %v, more seats are already taken", updated.MaxAttendees))
	}
	if updateErr == registration.ErrConferenceNotFound {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("conference %v not found", c.Params("id")))
	}
	if updateErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", updateErr))
	}

	return c.JSON(fiber.Map{"status": "success", "message": "conference updated", "data": updated})
}

func DeleteConference(c *fiber.Ctx) error {
	if !isOrganizer(c) {
		return errors.RaisePermissionsError(c, "only an organizer can perform this operation")
	}
	confId, ok := objectIdParam(c, "id")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed conference id")
	}

	deleteErr := Conferences.DeleteConference(c.Context(), confId)
	if deleteErr == registration.ErrConferenceNotFound {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("conference %v not found", c.Params("id")))
	}
	if deleteErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("failed to delete: %v", deleteErr))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "entity deleted",
		"data":    fmt.Sprintf("conference with id %v was deleted", c.Params("id"))})
}

func validateConferenceInput(conf model.Conference) error {
	if len(conf.Title) < 2 {
		return fmt.Errorf("conference title is too short")
	}
	if len(conf.Title) > 100 {
		return fmt.Errorf("conference title cannot be more than 100 characters")
	}
	if len(conf.Description) > 1000 {
		return fmt.Errorf("conference description cannot be more than 1000 characters")
	}
	if conf.MaxAttendees < 1 {
		return fmt.Errorf("conference must allow at least one attendee")
	}
	if conf.TicketPrice < 0 {
		return fmt.Errorf("ticket price cannot be negative")
	}
	if !conf.Currency.Valid() {
		return fmt.Errorf("unknown currency %v", conf.Currency)
	}
	if conf.EndDate.Before(conf.StartDate) {
		return fmt.Errorf("conference cannot end before it starts")
	}
	return nil
}
