package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ContactStatus string

const (
	ContactStatusLead     ContactStatus = "lead"
	ContactStatusProspect ContactStatus = "prospect"
	ContactStatusCustomer ContactStatus = "customer"
	ContactStatusOther    ContactStatus = "other"
)

// Contact is a CRM contact. Emails are unique within a tenant.
type Contact struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	FirstName string        `bson:"first_name"`
	LastName  string        `bson:"last_name"`
	Email     string        `bson:"email"`
	Phone     *string       `bson:"phone,omitempty"`
	Company   *string       `bson:"company,omitempty"`
	JobTitle  *string       `bson:"job_title,omitempty"`
	Status    ContactStatus `bson:"status"`
	Notes     *string       `bson:"notes,omitempty"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
