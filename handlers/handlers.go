// Package handlers contains the HTTP surface. Handlers parse and validate
// requests, resolve the caller from the verified token, and delegate to the
// registration orchestrator or the stores; no business rule lives here.
package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"conference-webapp/errors"
	"conference-webapp/model"
	"conference-webapp/registration"
)

// Store interfaces consumed by the handlers. The database package provides
// the Mongo-backed implementations; tests swap in fakes.
type ConferenceStore interface {
	GetConference(ctx context.Context, id primitive.ObjectID) (model.Conference, error)
	ListConferences(ctx context.Context) ([]model.Conference, error)
	CreateConference(ctx context.Context, conf model.Conference) error
	UpdateConference(ctx context.Context, conf model.Conference) error
	DeleteConference(ctx context.Context, id primitive.ObjectID) error
}

type SpeakerStore interface {
	ListSpeakers(ctx context.Context) ([]model.Speaker, error)
	GetSpeaker(ctx context.Context, id primitive.ObjectID) (model.Speaker, error)
	CreateSpeaker(ctx context.Context, speaker model.Speaker) error
	UpdateSpeaker(ctx context.Context, speaker model.Speaker) error
	DeleteSpeaker(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	GetUserByLogin(ctx context.Context, login string) (model.UserData, error)
	CreateUser(ctx context.Context, user model.UserData) error
}

// Package-level dependencies, wired once in main.
var (
	Core        *registration.Orchestrator
	Conferences ConferenceStore
	Speakers    SpeakerStore
	Users       UserStore
	SignKey     string
	TokenTTL    = 8 * time.Hour
)

// callerIdentity builds the typed caller from the verified JWT claims.
func callerIdentity(c *fiber.Ctx) (registration.Caller, error) {
	token, ok := c.Locals("identity").(*jwt.Token)
	if !ok {
		return registration.Caller{}, errors.RaisePermissionsError(c, "missing identity")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return registration.Caller{}, errors.RaisePermissionsError(c, "malformed identity claims")
	}

	rawId, _ := claims["id"].(string)
	id, err := primitive.ObjectIDFromHex(rawId)
	if err != nil {
		return registration.Caller{}, errors.RaisePermissionsError(c, "malformed identity claims")
	}

	rawRole, _ := claims["role"].(string)
	role := model.Role(rawRole)
	if !role.Valid() {
		return registration.Caller{}, errors.RaisePermissionsError(c, "unknown role")
	}

	return registration.Caller{Id: id, Role: role}, nil
}

// optionalCaller resolves the caller when a verified token is present on the
// request and returns the zero Caller otherwise. Routes behind
// AuthorizeOptional use this instead of callerIdentity.
func optionalCaller(c *fiber.Ctx) registration.Caller {
	token, ok := c.Locals("identity").(*jwt.Token)
	if !ok {
		return registration.Caller{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return registration.Caller{}
	}

	rawId, _ := claims["id"].(string)
	id, err := primitive.ObjectIDFromHex(rawId)
	if err != nil {
		return registration.Caller{}
	}

	rawRole, _ := claims["role"].(string)
	role := model.Role(rawRole)
	if !role.Valid() {
		return registration.Caller{}
	}

	return registration.Caller{Id: id, Role: role}
}

func isOrganizer(c *fiber.Ctx) bool {
	token, ok := c.Locals("identity").(*jwt.Token)
	if !ok {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return model.Role(role) == model.RoleOrganizer
}

func objectIdParam(c *fiber.Ctx, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	return id, err == nil
}
