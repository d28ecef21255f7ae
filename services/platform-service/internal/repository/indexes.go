package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	userEmailIndex        = "email_unique"
	userPhoneIndex        = "phone_number_unique"
	instanceUserIndex     = "user_id_unique"
	instanceDBNameIndex   = "db_name_unique"
	pageSlugIndex         = "slug_unique"
	contactEmailIndex     = "contact_email_unique"
	contentBlockPageIndex = "page_id_order"
)

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(userEmailIndex),
		},
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName(userPhoneIndex),
		},
	}
}

// EnsureAdminIndexes creates the unique indexes the admin database relies on
// for email, phone, user and database name uniqueness.
func EnsureAdminIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(userCollection).Indexes().CreateMany(ctx, userIndexes()); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	instanceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(instanceUserIndex),
		},
		{
			Keys:    bson.D{{Key: "db_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(instanceDBNameIndex),
		},
	}
	if _, err := db.Collection(instanceCollection).Indexes().CreateMany(ctx, instanceIndexes); err != nil {
		return fmt.Errorf("failed to create instance indexes: %w", err)
	}

	return nil
}

// EnsureTenantIndexes creates the users collection of a tenant database along
// with the indexes of its domain collections. It is idempotent.
func EnsureTenantIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		userCollection: userIndexes(),
		pageCollection: {
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(pageSlugIndex),
			},
		},
		contentBlockCollection: {
			{
				Keys:    bson.D{{Key: "page_id", Value: 1}, {Key: "order", Value: 1}},
				Options: options.Index().SetName(contentBlockPageIndex),
			},
		},
		contactCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(contactEmailIndex),
			},
		},
		interactionCollection: {
			{Keys: bson.D{{Key: "contact_id", Value: 1}, {Key: "date", Value: -1}}},
		},
		jobCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "posted_date", Value: -1}}},
		},
		applicationCollection: {
			{Keys: bson.D{{Key: "job_id", Value: 1}}},
			{Keys: bson.D{{Key: "contact_id", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	return nil
}
