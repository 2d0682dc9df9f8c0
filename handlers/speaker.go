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
)

func GetSpeakers(c *fiber.Ctx) error {
	speakers, dbErr := Speakers.ListSpeakers(c.Context())
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "", "data": speakers})
}

func GetSpeaker(c *fiber.Ctx) error {
	speakerId, ok := objectIdParam(c, "id")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed speaker id")
	}

	speaker, dbErr := Speakers.GetSpeaker(c.Context(), speakerId)
	if dbErr == database.ErrSpeakerNotFound {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("speaker %v not found", c.Params("id")))
	}
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "", "data": speaker})
}

func CreateSpeaker(c *fiber.Ctx) error {
	if !isOrganizer(c) {
		return errors.RaisePermissionsError(c, "only an organizer can perform this operation")
	}

	speaker := new(model.Speaker)
	if jsonErr := c.BodyParser(speaker); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable speaker parameters: %v", jsonErr))
	}
	speaker.Id = primitive.NewObjectID()
	speaker.Name = strings.TrimSpace(speaker.Name)
	speaker.Surname = strings.TrimSpace(speaker.Surname)
	speaker.CreatedAt = time.Now().UTC()

	if speaker.Name == "" || speaker.Surname == "" {
		return errors.RaiseBadRequestError(c, "speaker name and surname are required")
	}

	if writeErr := Speakers.CreateSpeaker(c.Context(), *speaker); writeErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", writeErr))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "message": "speaker created", "data": speaker})
}

func UpdateSpeaker(c *fiber.Ctx) error {
	if !isOrganizer(c) {
		return errors.RaisePermissionsError(c, "only an organizer can perform this operation")
	}
	speakerId, ok := objectIdParam(c, "id")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed speaker id")
	}

	speaker := new(model.Speaker)
	if jsonErr := c.BodyParser(speaker); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable speaker parameters: %v", jsonErr))
	}
	speaker.Id = speakerId
	speaker.Name = strings.TrimSpace(speaker.Name)
	speaker.Surname = strings.TrimSpace(speaker.Surname)

	if speaker.Name == "" || speaker.Surname == "" {
		return errors.RaiseBadRequestError(c, "speaker name and surname are required")
	}

	updateErr := Speakers.UpdateSpeaker(c.Context(), *speaker)
	if updateErr == database.ErrSpeakerNotFound {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("speaker %v not found", c.Params("id")))
	}
	if updateErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", updateErr))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "speaker updated", "data": speaker})
}

func DeleteSpeaker(c *fiber.Ctx) error {
	if !isOrganizer(c) {
		return errors.RaisePermissionsError(c, "only an organizer can perform this operation")
	}
	speakerId, ok := objectIdParam(c, "id")
	if !ok {
		return errors.RaiseBadRequestError(c, "malformed speaker id")
	}

	deleteErr := Speakers.DeleteSpeaker(c.Context(), speakerId)
	if deleteErr == database.ErrSpeakerNotFound {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("speaker %v not found", c.Params("id")))
	}
	if deleteErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("failed to delete: %v", deleteErr))
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "entity deleted",
		"data":    fmt.Sprintf("speaker with id %v was deleted", c.Params("id"))})
}
