package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *model.Company) (*model.Company, error)
	GetCompany(ctx context.Context, id string) (*model.Company, error)
	ListCompanies(ctx context.Context, params ListParams) ([]*model.Company, error)
}

const companyCollection = "companies"

type companyMongoRepository struct {
	db *mongo.Database
}

func NewCompanyMongoRepository(db *mongo.Database) CompanyRepository {
	return &companyMongoRepository{db: db}
}

func (r *companyMongoRepository) CreateCompany(
	ctx context.Context,
	company *model.Company,
) (*model.Company, error) {
	objectID, err := insertOne(ctx, r.db.Collection(companyCollection), company)
	if err != nil {
		return nil, err
	}
	company.ID = objectID

	return company, nil
}

func (r *companyMongoRepository) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	return findByID[model.Company](ctx, r.db.Collection(companyCollection), id)
}

func (r *companyMongoRepository) ListCompanies(ctx context.Context, params ListParams) ([]*model.Company, error) {
	return findAll[model.Company](
		ctx,
		r.db.Collection(companyCollection),
		bson.M{},
		params.findOptions(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}),
	)
}
