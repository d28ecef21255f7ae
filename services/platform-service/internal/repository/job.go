package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

type JobRepository interface {
	CreateJob(ctx context.Context, job *model.Job) (*model.Job, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
	ListJobs(ctx context.Context, params FilterJobsParams) ([]*model.Job, error)
}

// FilterJobsParams defines the parameters for filtering and paginating jobs.
type FilterJobsParams struct {
	CompanyID  *string
	ActiveOnly bool
	ListParams
}

const jobCollection = "jobs"

type jobMongoRepository struct {
	db *mongo.Database
}

func NewJobMongoRepository(db *mongo.Database) JobRepository {
	return &jobMongoRepository{db: db}
}

func (r *jobMongoRepository) CreateJob(ctx context.Context, job *model.Job) (*model.Job, error) {
	if job.PostedDate.IsZero() {
		job.PostedDate = time.Now().UTC()
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}

	objectID, err := insertOne(ctx, r.db.Collection(jobCollection), job)
	if err != nil {
		return nil, err
	}
	job.ID = objectID

	return job, nil
}

func (r *jobMongoRepository) GetJob(ctx context.Context, id string) (*model.Job, error) {
	return findByID[model.Job](ctx, r.db.Collection(jobCollection), id)
}

func (r *jobMongoRepository) ListJobs(ctx context.Context, params FilterJobsParams) ([]*model.Job, error) {
	filter := bson.M{}
	if params.CompanyID != nil {
		companyID, err := parseObjectID(*params.CompanyID)
		if err != nil {
			return nil, err
		}
		filter["company_id"] = companyID
	}
	if params.ActiveOnly {
		filter["is_active"] = true
	}

	return findAll[model.Job](
		ctx,
		r.db.Collection(jobCollection),
		filter,
		params.findOptions(bson.D{{Key: "posted_date", Value: -1}, {Key: "_id", Value: -1}}),
	)
}
