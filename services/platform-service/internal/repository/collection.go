package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func insertOne(ctx context.Context, collection *mongo.Collection, doc any) (bson.ObjectID, error) {
	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		return bson.ObjectID{}, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, errors.New("failed to convert inserted ID to ObjectID")
	}

	return objectID, nil
}

func parseObjectID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objectID, nil
}

func findByID[T any](ctx context.Context, collection *mongo.Collection, id string) (*T, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	return findOne[T](ctx, collection, bson.M{"_id": objectID})
}

func findOne[T any](ctx context.Context, collection *mongo.Collection, filter any) (*T, error) {
	result := collection.FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var doc T
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func findAll[T any](
	ctx context.Context,
	collection *mongo.Collection,
	filter any,
	opts ...options.Lister[options.FindOptions],
) ([]*T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
