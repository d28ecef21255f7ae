package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type InteractionType string

const (
	InteractionTypeCall    InteractionType = "call"
	InteractionTypeEmail   InteractionType = "email"
	InteractionTypeMeeting InteractionType = "meeting"
	InteractionTypeNote    InteractionType = "note"
)

// Interaction records a touch point with a contact.
type Interaction struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"`
	ContactID bson.ObjectID   `bson:"contact_id"`
	Type      InteractionType `bson:"type"`
	Notes     *string         `bson:"notes,omitempty"`
	Date      time.Time       `bson:"date"`
}
