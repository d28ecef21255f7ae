package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Company is an employer on the careers board.
type Company struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	Description *string       `bson:"description,omitempty"`
	Industry    *string       `bson:"industry,omitempty"`
	Website     *string       `bson:"website,omitempty"`
	LogoURL     *string       `bson:"logo_url,omitempty"`
}
