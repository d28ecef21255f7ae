package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

// ContactRepository defines the CRM contact operations of a tenant database.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	GetContact(ctx context.Context, id string) (*model.Contact, error)
	ListContacts(ctx context.Context, params FilterContactsParams) ([]*model.Contact, error)
}

// FilterContactsParams defines the parameters for filtering and paginating contacts.
type FilterContactsParams struct {
	Status *model.ContactStatus
	ListParams
}

const contactCollection = "contacts"

type contactMongoRepository struct {
	db *mongo.Database
}

func NewContactMongoRepository(db *mongo.Database) ContactRepository {
	return &contactMongoRepository{db: db}
}

func (r *contactMongoRepository) CreateContact(
	ctx context.Context,
	contact *model.Contact,
) (*model.Contact, error) {
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if contact.Status == "" {
		contact.Status = model.ContactStatusLead
	}

	objectID, err := insertOne(ctx, r.db.Collection(contactCollection), contact)
	if err != nil {
		if duplicateKeyOn(err, contactEmailIndex) {
			return nil, ErrDuplicateContactEmail
		}
		return nil, err
	}
	contact.ID = objectID

	return contact, nil
}

func (r *contactMongoRepository) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	return findByID[model.Contact](ctx, r.db.Collection(contactCollection), id)
}

func (r *contactMongoRepository) ListContacts(
	ctx context.Context,
	params FilterContactsParams,
) ([]*model.Contact, error) {
	filter := bson.M{}
	if params.Status != nil {
		filter["status"] = *params.Status
	}

	return findAll[model.Contact](
		ctx,
		r.db.Collection(contactCollection),
		filter,
		params.findOptions(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}, {Key: "_id", Value: 1}}),
	)
}
