package inmem

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

type tenantStore struct {
	store *Store
}

// Tenants returns a TenantStore whose repositories are selected by the name
// of the database handle they are given.
func (s *Store) Tenants() repository.TenantStore {
	return tenantStore{store: s}
}

func (t tenantStore) EnsureIndexes(_ context.Context, db *mongo.Database) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := t.store.failure(db.Name(), "EnsureIndexes"); err != nil {
		return err
	}

	t.store.db(db.Name()).indexed = true
	return nil
}

func (t tenantStore) Users(db *mongo.Database) repository.UserRepository {
	return t.store.Users(db.Name())
}

func (t tenantStore) Pages(db *mongo.Database) repository.PageRepository {
	return &pageRepository{store: t.store, dbName: db.Name()}
}

func (t tenantStore) ContentBlocks(db *mongo.Database) repository.ContentBlockRepository {
	return &contentBlockRepository{store: t.store, dbName: db.Name()}
}

func (t tenantStore) Contacts(db *mongo.Database) repository.ContactRepository {
	return &contactRepository{store: t.store, dbName: db.Name()}
}

func (t tenantStore) Interactions(db *mongo.Database) repository.InteractionRepository {
	return &interactionRepository{store: t.store, dbName: db.Name()}
}

func (t tenantStore) Companies(db *mongo.Database) repository.CompanyRepository {
	return &companyRepository{store: t.store, dbName: db.Name()}
}

func (t tenantStore) Jobs(db *mongo.Database) repository.JobRepository {
	return &jobRepository{store: t.store, dbName: db.Name()}
}

func (t tenantStore) Applications(db *mongo.Database) repository.ApplicationRepository {
	return &applicationRepository{store: t.store, dbName: db.Name()}
}
