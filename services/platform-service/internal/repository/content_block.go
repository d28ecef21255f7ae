package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

// ContentBlockRepository stores the typed content blocks of pages.
type ContentBlockRepository interface {
	CreateBlock(ctx context.Context, block *model.ContentBlock) (*model.ContentBlock, error)
	ListBlocksByPage(ctx context.Context, pageID string) ([]*model.ContentBlock, error)
}

const contentBlockCollection = "content_blocks"

type contentBlockMongoRepository struct {
	db *mongo.Database
}

func NewContentBlockMongoRepository(db *mongo.Database) ContentBlockRepository {
	return &contentBlockMongoRepository{db: db}
}

func (r *contentBlockMongoRepository) CreateBlock(
	ctx context.Context,
	block *model.ContentBlock,
) (*model.ContentBlock, error) {
	objectID, err := insertOne(ctx, r.db.Collection(contentBlockCollection), block)
	if err != nil {
		return nil, err
	}
	block.ID = objectID

	return block, nil
}

// ListBlocksByPage returns the blocks of a page in display order.
func (r *contentBlockMongoRepository) ListBlocksByPage(
	ctx context.Context,
	pageID string,
) ([]*model.ContentBlock, error) {
	objectID, err := parseObjectID(pageID)
	if err != nil {
		return nil, err
	}

	return findAll[model.ContentBlock](
		ctx,
		r.db.Collection(contentBlockCollection),
		bson.M{"page_id": objectID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}),
	)
}
