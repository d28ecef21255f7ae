package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// Job is an opening posted by a company.
type Job struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Title        string        `bson:"title"`
	CompanyID    bson.ObjectID `bson:"company_id"`
	Description  string        `bson:"description"`
	Location     string        `bson:"location"`
	SalaryRange  *string       `bson:"salary_range,omitempty"`
	Type         JobType       `bson:"type"`
	PostedDate   time.Time     `bson:"posted_date"`
	ClosingDate  *time.Time    `bson:"closing_date,omitempty"`
	IsActive     bool          `bson:"is_active"`
	Requirements []string      `bson:"requirements"`
}
