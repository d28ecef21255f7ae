package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListParams defines the pagination of list queries.
type ListParams struct {
	Limit  uint64
	Offset uint64
}

func (p ListParams) findOptions(sort bson.D) *options.FindOptionsBuilder {
	limit := p.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	findOptions := options.Find().SetLimit(int64(limit)).SetSort(sort)
	if p.Offset > 0 {
		findOptions.SetSkip(int64(p.Offset))
	}

	return findOptions
}
