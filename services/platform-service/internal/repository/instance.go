package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

// InstanceRepository stores tenant registry entries in the admin database.
type InstanceRepository interface {
	// CreateInstance inserts a registry entry. It fails with
	// ErrDuplicateInstance when the user already has one and with
	// ErrDuplicateDatabaseName when another user owns the database name.
	CreateInstance(ctx context.Context, instance *model.Instance) (*model.Instance, error)

	// GetInstanceByUserID returns mongo.ErrNoDocuments when the user has no entry.
	GetInstanceByUserID(ctx context.Context, userID string) (*model.Instance, error)
}

const instanceCollection = "instances"

type instanceMongoRepository struct {
	db *mongo.Database
}

func NewInstanceMongoRepository(db *mongo.Database) InstanceRepository {
	return &instanceMongoRepository{db: db}
}

func (r *instanceMongoRepository) CreateInstance(
	ctx context.Context,
	instance *model.Instance,
) (*model.Instance, error) {
	instance.CreatedAt = time.Now().UTC()

	objectID, err := insertOne(ctx, r.db.Collection(instanceCollection), instance)
	if err != nil {
		switch {
		case duplicateKeyOn(err, instanceUserIndex):
			return nil, ErrDuplicateInstance
		case duplicateKeyOn(err, instanceDBNameIndex):
			return nil, ErrDuplicateDatabaseName
		default:
			return nil, err
		}
	}

	instance.ID = objectID

	return instance, nil
}

func (r *instanceMongoRepository) GetInstanceByUserID(
	ctx context.Context,
	userID string,
) (*model.Instance, error) {
	return findOne[model.Instance](ctx, r.db.Collection(instanceCollection), bson.M{"user_id": userID})
}
