package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD, CurrencyAUD}

func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

type Conference struct {
	Id           primitive.ObjectID   `json:"_id" bson:"_id"`
	Title        string               `json:"title" bson:"title"`
	Description  string               `json:"description" bson:"description"`
	Category     string               `json:"category" bson:"category"`
	HashTags     []string             `json:"hash_tags" bson:"hash_tags"`
	Location     string               `json:"location" bson:"location"`
	Image        string               `json:"image" bson:"image"`
	StartDate    time.Time            `json:"start_date" bson:"start_date"`
	EndDate      time.Time            `json:"end_date" bson:"end_date"`
	TicketPrice  float64              `json:"ticket_price" bson:"ticket_price"`
	Currency     Currency             `json:"currency" bson:"currency"`
	MaxAttendees int                  `json:"max_attendees" bson:"max_attendees"`
	Attendees    int                  `json:"attendees" bson:"attendees"`
	SpeakerIds   []primitive.ObjectID `json:"speaker_ids" bson:"speaker_ids"`
	CreatedBy    primitive.ObjectID   `json:"created_by" bson:"created_by"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
}

// Free reports whether registration requires no payment at all.
func (c Conference) Free() bool {
	return c.TicketPrice == 0
}
