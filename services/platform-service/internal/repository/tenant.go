package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TenantStore prepares tenant databases and opens repositories over them.
// Repositories are cheap views; callers build them per request from the
// resolved database.
type TenantStore interface {
	EnsureIndexes(ctx context.Context, db *mongo.Database) error
	Users(db *mongo.Database) UserRepository
	Pages(db *mongo.Database) PageRepository
	ContentBlocks(db *mongo.Database) ContentBlockRepository
	Contacts(db *mongo.Database) ContactRepository
	Interactions(db *mongo.Database) InteractionRepository
	Companies(db *mongo.Database) CompanyRepository
	Jobs(db *mongo.Database) JobRepository
	Applications(db *mongo.Database) ApplicationRepository
}

type tenantMongoStore struct{}

func NewTenantMongoStore() TenantStore {
	return tenantMongoStore{}
}

func (tenantMongoStore) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureTenantIndexes(ctx, db)
}

func (tenantMongoStore) Users(db *mongo.Database) UserRepository {
	return NewUserMongoRepository(db)
}

func (tenantMongoStore) Pages(db *mongo.Database) PageRepository {
	return NewPageMongoRepository(db)
}

func (tenantMongoStore) ContentBlocks(db *mongo.Database) ContentBlockRepository {
	return NewContentBlockMongoRepository(db)
}

func (tenantMongoStore) Contacts(db *mongo.Database) ContactRepository {
	return NewContactMongoRepository(db)
}

func (tenantMongoStore) Interactions(db *mongo.Database) InteractionRepository {
	return NewInteractionMongoRepository(db)
}

func (tenantMongoStore) Companies(db *mongo.Database) CompanyRepository {
	return NewCompanyMongoRepository(db)
}

func (tenantMongoStore) Jobs(db *mongo.Database) JobRepository {
	return NewJobMongoRepository(db)
}

func (tenantMongoStore) Applications(db *mongo.Database) ApplicationRepository {
	return NewApplicationMongoRepository(db)
}
