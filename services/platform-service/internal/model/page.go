package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Page is a CMS page. Slugs are unique within a tenant.
type Page struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Slug      string        `bson:"slug"`
	Content   string        `bson:"content"`
	Published bool          `bson:"published"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
