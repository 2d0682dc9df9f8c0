package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
)

func (r Role) Valid() bool {
	return r == RoleOrganizer || r == RoleAttendee
}

type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Login          string             `json:"login" bson:"login,omitempty"`
	Name           string             `json:"name" bson:"name,omitempty"`
	HashedPassword string             `json:"-" bson:"password_hash,omitempty"`
	Role           Role               `json:"role" bson:"role,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at,omitempty"`
}
