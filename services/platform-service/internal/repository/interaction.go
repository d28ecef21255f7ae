package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

// InteractionRepository records touch points with contacts.
type InteractionRepository interface {
	CreateInteraction(ctx context.Context, interaction *model.Interaction) (*model.Interaction, error)
	ListInteractionsByContact(ctx context.Context, contactID string, params ListParams) ([]*model.Interaction, error)
}

const interactionCollection = "interactions"

type interactionMongoRepository struct {
	db *mongo.Database
}

func NewInteractionMongoRepository(db *mongo.Database) InteractionRepository {
	return &interactionMongoRepository{db: db}
}

func (r *interactionMongoRepository) CreateInteraction(
	ctx context.Context,
	interaction *model.Interaction,
) (*model.Interaction, error) {
	if interaction.Date.IsZero() {
		interaction.Date = time.Now().UTC()
	}

	objectID, err := insertOne(ctx, r.db.Collection(interactionCollection), interaction)
	if err != nil {
		return nil, err
	}
	interaction.ID = objectID

	return interaction, nil
}

// ListInteractionsByContact returns the most recent interactions first.
func (r *interactionMongoRepository) ListInteractionsByContact(
	ctx context.Context,
	contactID string,
	params ListParams,
) ([]*model.Interaction, error) {
	objectID, err := parseObjectID(contactID)
	if err != nil {
		return nil, err
	}

	return findAll[model.Interaction](
		ctx,
		r.db.Collection(interactionCollection),
		bson.M{"contact_id": objectID},
		params.findOptions(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}),
	)
}
