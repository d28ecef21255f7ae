package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

// UserRepository defines the interface for user-related database operations.
// The same implementation serves the admin database and tenant databases.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error)

	// EnsureUser inserts user under its existing ID unless a document with
	// that ID is already present. It reports whether a document was created.
	EnsureUser(ctx context.Context, user *model.User) (bool, error)
}

// FilterUsersParams defines the parameters for filtering and paginating users.
type FilterUsersParams struct {
	Email    *string
	Limit    uint64
	Offset   uint64
	SortBy   *string
	SortDesc bool
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository returns a UserRepository over db. Indexes are created
// separately by EnsureAdminIndexes and EnsureTenantIndexes.
func NewUserMongoRepository(db *mongo.Database) UserRepository {
	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.DefaultRole
	}

	objectID, err := insertOne(ctx, r.db.Collection(userCollection), user)
	if err != nil {
		return nil, mapUserWriteError(err)
	}
	user.ID = objectID

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	return findByID[model.User](ctx, r.db.Collection(userCollection), id)
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.db.Collection(userCollection), bson.M{"email": email})
}

func (r *userMongoRepository) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	return findOne[model.User](ctx, r.db.Collection(userCollection), bson.M{"phone_number": phone})
}

func (r *userMongoRepository) ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error) {
	sortBy := "created_at"
	if params.SortBy != nil {
		sortBy = *params.SortBy
	}

	sortOrder := 1
	if params.SortDesc {
		sortOrder = -1
	}

	sort := bson.D{{Key: sortBy, Value: sortOrder}}
	if sortBy != "_id" {
		// _id breaks ties so that paging over equal timestamps is stable.
		sort = append(sort, bson.E{Key: "_id", Value: sortOrder})
	}
	findOptions := ListParams{Limit: params.Limit, Offset: params.Offset}.findOptions(sort)

	filter := bson.M{}
	if params.Email != nil {
		filter["email"] = *params.Email
	}

	return findAll[model.User](ctx, r.db.Collection(userCollection), filter, findOptions)
}

func (r *userMongoRepository) EnsureUser(ctx context.Context, user *model.User) (bool, error) {
	if user.ID.IsZero() {
		return false, fmt.Errorf("%w: user has no id", ErrInvalidID)
	}

	// The upsert takes _id from the filter.
	doc := *user
	doc.ID = bson.ObjectID{}

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{"$setOnInsert": doc},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return false, mapUserWriteError(err)
	}

	return result.UpsertedCount == 1, nil
}

func mapUserWriteError(err error) error {
	switch {
	case duplicateKeyOn(err, userEmailIndex):
		return ErrDuplicateEmail
	case duplicateKeyOn(err, userPhoneIndex):
		return ErrDuplicatePhone
	default:
		return err
	}
}
