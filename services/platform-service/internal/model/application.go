package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied      ApplicationStatus = "applied"
	ApplicationStatusReviewed     ApplicationStatus = "reviewed"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusHired        ApplicationStatus = "hired"
)

// Application is a contact applying to a job.
type Application struct {
	ID            bson.ObjectID     `bson:"_id,omitempty"`
	JobID         bson.ObjectID     `bson:"job_id"`
	ContactID     bson.ObjectID     `bson:"contact_id"`
	SubmittedDate time.Time         `bson:"submitted_date"`
	CoverLetter   *string           `bson:"cover_letter,omitempty"`
	ResumeURL     string            `bson:"resume_url"`
	Status        ApplicationStatus `bson:"status"`
}
