package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

type userRepository struct {
	store  *Store
	dbName string
}

// Users returns a UserRepository over the named database.
func (s *Store) Users(dbName string) repository.UserRepository {
	return &userRepository{store: s, dbName: dbName}
}

func (r *userRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "CreateUser"); err != nil {
		return nil, err
	}

	db := r.store.db(r.dbName)
	if err := checkUserUnique(db, user); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.DefaultRole
	}
	db.users = append(db.users, clone(user))

	return user, nil
}

func (r *userRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return r.find("GetUser", func(u *model.User) bool { return u.ID == objectID })
}

func (r *userRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find("GetUserByEmail", func(u *model.User) bool { return u.Email == email })
}

func (r *userRepository) GetUserByPhone(_ context.Context, phone string) (*model.User, error) {
	return r.find("GetUserByPhone", func(u *model.User) bool {
		return u.PhoneNumber != nil && *u.PhoneNumber == phone
	})
}

func (r *userRepository) find(op string, match func(*model.User) bool) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, op); err != nil {
		return nil, err
	}

	for _, user := range r.store.db(r.dbName).users {
		if match(user) {
			return clone(user), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// ListUsers returns users in id order; SortBy and SortDesc are ignored.
func (r *userRepository) ListUsers(_ context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "ListUsers"); err != nil {
		return nil, err
	}

	users := make([]*model.User, 0)
	for _, user := range r.store.db(r.dbName).users {
		if params.Email != nil && user.Email != *params.Email {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID.Hex() < users[j].ID.Hex() })

	return page(users, params.Limit, params.Offset), nil
}

func (r *userRepository) EnsureUser(_ context.Context, user *model.User) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "EnsureUser"); err != nil {
		return false, err
	}
	if user.ID.IsZero() {
		return false, fmt.Errorf("%w: user has no id", repository.ErrInvalidID)
	}

	db := r.store.db(r.dbName)
	for _, existing := range db.users {
		if existing.ID == user.ID {
			return false, nil
		}
	}
	if err := checkUserUnique(db, user); err != nil {
		return false, err
	}

	db.users = append(db.users, clone(user))
	return true, nil
}

func checkUserUnique(db *database, user *model.User) error {
	for _, existing := range db.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if user.PhoneNumber != nil && existing.PhoneNumber != nil && *existing.PhoneNumber == *user.PhoneNumber {
			return repository.ErrDuplicatePhone
		}
	}
	return nil
}
