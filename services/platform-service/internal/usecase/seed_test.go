package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

func TestSeed_FillsTenantDatabase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.register.Register(ctx, validParams())
	require.NoError(t, err)

	seed := NewSeedUsecase(f.databases, f.store.Instances(adminDBName), f.store.Tenants())
	report, err := seed.Seed(ctx, res.UserID)
	require.NoError(t, err)

	require.Equal(t, &SeedReport{
		DBName:        res.DBName,
		Pages:         sampleDataCount,
		ContentBlocks: sampleDataCount,
		Companies:     sampleDataCount,
		Contacts:      sampleDataCount,
		Jobs:          sampleDataCount,
		Interactions:  sampleDataCount,
		Applications:  sampleDataCount,
	}, report)

	db := f.databases.Database(res.DBName)
	pages, err := f.store.Tenants().Pages(db).ListPages(ctx, repository.FilterPagesParams{})
	require.NoError(t, err)
	require.Len(t, pages, sampleDataCount)

	blocks, err := f.store.Tenants().ContentBlocks(db).ListBlocksByPage(ctx, pages[0].ID.Hex())
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, model.BlockTypeText, blocks[0].Type())

	jobs, err := f.store.Tenants().Jobs(db).ListJobs(ctx, repository.FilterJobsParams{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, jobs, sampleDataCount)

	// Nothing leaks into the admin database.
	adminPages, err := f.store.Tenants().Pages(f.databases.Admin()).ListPages(ctx, repository.FilterPagesParams{})
	require.NoError(t, err)
	require.Empty(t, adminPages)
}

func TestSeed_UnknownUser(t *testing.T) {
	f := newFixture(t)

	seed := NewSeedUsecase(f.databases, f.store.Instances(adminDBName), f.store.Tenants())
	_, err := seed.Seed(context.Background(), "507f1f77bcf86cd799439011")
	require.ErrorIs(t, err, apperror.ErrTenantNotFound)
}

func TestSeed_RunTwiceHitsSlugUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.register.Register(ctx, validParams())
	require.NoError(t, err)

	seed := NewSeedUsecase(f.databases, f.store.Instances(adminDBName), f.store.Tenants())
	_, err = seed.Seed(ctx, res.UserID)
	require.NoError(t, err)

	_, err = seed.Seed(ctx, res.UserID)
	require.ErrorIs(t, err, apperror.ErrPersistence)
	require.ErrorIs(t, err, repository.ErrDuplicateSlug)
}
