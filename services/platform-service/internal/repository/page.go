package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

// PageRepository defines the CMS page operations of a tenant database.
type PageRepository interface {
	CreatePage(ctx context.Context, page *model.Page) (*model.Page, error)
	GetPage(ctx context.Context, id string) (*model.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*model.Page, error)
	ListPages(ctx context.Context, params FilterPagesParams) ([]*model.Page, error)
}

// FilterPagesParams defines the parameters for filtering and paginating pages.
type FilterPagesParams struct {
	Published *bool
	ListParams
}

const pageCollection = "pages"

type pageMongoRepository struct {
	db *mongo.Database
}

func NewPageMongoRepository(db *mongo.Database) PageRepository {
	return &pageMongoRepository{db: db}
}

func (r *pageMongoRepository) CreatePage(ctx context.Context, page *model.Page) (*model.Page, error) {
	now := time.Now().UTC()
	page.CreatedAt = now
	page.UpdatedAt = now

	objectID, err := insertOne(ctx, r.db.Collection(pageCollection), page)
	if err != nil {
		if duplicateKeyOn(err, pageSlugIndex) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	page.ID = objectID

	return page, nil
}

func (r *pageMongoRepository) GetPage(ctx context.Context, id string) (*model.Page, error) {
	return findByID[model.Page](ctx, r.db.Collection(pageCollection), id)
}

func (r *pageMongoRepository) GetPageBySlug(ctx context.Context, slug string) (*model.Page, error) {
	return findOne[model.Page](ctx, r.db.Collection(pageCollection), bson.M{"slug": slug})
}

func (r *pageMongoRepository) ListPages(ctx context.Context, params FilterPagesParams) ([]*model.Page, error) {
	filter := bson.M{}
	if params.Published != nil {
		filter["published"] = *params.Published
	}

	return findAll[model.Page](
		ctx,
		r.db.Collection(pageCollection),
		filter,
		params.findOptions(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
}
