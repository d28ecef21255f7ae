package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const DefaultRole = "user"

// User represents an account. The same document, under the same ID, is stored
// in the admin database and in the user's tenant database.
type User struct {
	ID                     bson.ObjectID `bson:"_id,omitempty"`
	Name                   string        `bson:"name"`
	Email                  string        `bson:"email"`
	PasswordHash           string        `bson:"password_hash,omitempty"`
	Image                  *string       `bson:"image,omitempty"`
	Role                   string        `bson:"role"`
	PhoneNumber            *string       `bson:"phone_number,omitempty"`
	TermsAccepted          bool          `bson:"terms_accepted"`
	NewsletterSubscription *bool         `bson:"newsletter_subscription,omitempty"`
	CreatedAt              time.Time     `bson:"created_at"`
	UpdatedAt              time.Time     `bson:"updated_at"`
}
