package inmem

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

type instanceRepository struct {
	store  *Store
	dbName string
}

// Instances returns an InstanceRepository over the named database.
func (s *Store) Instances(dbName string) repository.InstanceRepository {
	return &instanceRepository{store: s, dbName: dbName}
}

func (r *instanceRepository) CreateInstance(
	_ context.Context,
	instance *model.Instance,
) (*model.Instance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "CreateInstance"); err != nil {
		return nil, err
	}

	db := r.store.db(r.dbName)
	for _, existing := range db.instances {
		if existing.UserID == instance.UserID {
			return nil, repository.ErrDuplicateInstance
		}
		if existing.DBName == instance.DBName {
			return nil, repository.ErrDuplicateDatabaseName
		}
	}

	instance.ID = bson.NewObjectID()
	instance.CreatedAt = time.Now().UTC()
	db.instances = append(db.instances, clone(instance))

	return instance, nil
}

func (r *instanceRepository) GetInstanceByUserID(_ context.Context, userID string) (*model.Instance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "GetInstanceByUserID"); err != nil {
		return nil, err
	}

	for _, instance := range r.store.db(r.dbName).instances {
		if instance.UserID == userID {
			return clone(instance), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}
