package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

type ApplicationRepository interface {
	CreateApplication(ctx context.Context, application *model.Application) (*model.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string, params ListParams) ([]*model.Application, error)
}

const applicationCollection = "applications"

type applicationMongoRepository struct {
	db *mongo.Database
}

func NewApplicationMongoRepository(db *mongo.Database) ApplicationRepository {
	return &applicationMongoRepository{db: db}
}

func (r *applicationMongoRepository) CreateApplication(
	ctx context.Context,
	application *model.Application,
) (*model.Application, error) {
	if application.SubmittedDate.IsZero() {
		application.SubmittedDate = time.Now().UTC()
	}
	if application.Status == "" {
		application.Status = model.ApplicationStatusApplied
	}

	objectID, err := insertOne(ctx, r.db.Collection(applicationCollection), application)
	if err != nil {
		return nil, err
	}
	application.ID = objectID

	return application, nil
}

func (r *applicationMongoRepository) ListApplicationsByJob(
	ctx context.Context,
	jobID string,
	params ListParams,
) ([]*model.Application, error) {
	objectID, err := parseObjectID(jobID)
	if err != nil {
		return nil, err
	}

	return findAll[model.Application](
		ctx,
		r.db.Collection(applicationCollection),
		bson.M{"job_id": objectID},
		params.findOptions(bson.D{{Key: "submitted_date", Value: -1}, {Key: "_id", Value: -1}}),
	)
}
