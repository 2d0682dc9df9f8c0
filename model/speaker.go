package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Speaker struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Surname      string             `json:"surname" bson:"surname"`
	Bio          string             `json:"bio" bson:"bio"`
	Role         string             `json:"role" bson:"role"`
	ProfileImage string             `json:"profile_image" bson:"profile_image"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
