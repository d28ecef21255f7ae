package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Instance is a tenant registry entry: it maps a user to the name of the
// tenant database provisioned for them. Entries are never updated.
type Instance struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"user_id"`
	DBName    string        `bson:"db_name"`
	CreatedAt time.Time     `bson:"created_at"`
}
