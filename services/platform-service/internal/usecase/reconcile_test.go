package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
)

func TestReconcile_NothingToRepair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.register.Register(ctx, validParams())
	require.NoError(t, err)

	report, err := f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	require.Equal(t, &ReconcileReport{Users: 1}, report)
}

func TestReconcile_CreatesMissingInstanceAndCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// An admin user written before the process stopped.
	user, err := f.store.Users(adminDBName).CreateUser(ctx, &model.User{
		Name:          "Grace",
		Email:         "grace@example.com",
		TermsAccepted: true,
	})
	require.NoError(t, err)

	report, err := f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.InstancesCreated)
	require.Equal(t, 1, report.TenantCopiesCreated)

	dbName := tenancy.DatabaseName(testPrefix, user.ID.Hex())
	instance, err := f.store.Instances(adminDBName).GetInstanceByUserID(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, dbName, instance.DBName)
	require.Equal(t, 1, f.store.UserCount(dbName))

	report, err = f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	require.Zero(t, report.InstancesCreated)
	require.Zero(t, report.TenantCopiesCreated)
}

func TestReconcile_NeverOverwritesTakenName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.register.Register(ctx, validParams())
	require.NoError(t, err)

	// Hand the first user's database name to someone else and drop the
	// first user's entry.
	f.store.DeleteInstance(adminDBName, first.UserID)
	_, err = f.store.Instances(adminDBName).CreateInstance(ctx, &model.Instance{
		UserID: "someone-else",
		DBName: first.DBName,
	})
	require.NoError(t, err)

	report, err := f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.InstancesCreated)

	instance, err := f.store.Instances(adminDBName).GetInstanceByUserID(ctx, first.UserID)
	require.NoError(t, err)
	require.Equal(t, tenancy.CandidateDatabaseName(testPrefix, first.UserID, 1), instance.DBName)

	other, err := f.store.Instances(adminDBName).GetInstanceByUserID(ctx, "someone-else")
	require.NoError(t, err)
	require.Equal(t, first.DBName, other.DBName)
}

func TestReconcile_ContinuesPastFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.register.Register(ctx, validParams())
	require.NoError(t, err)

	params := validParams()
	params.Email = "bob@example.com"
	b, err := f.register.Register(ctx, params)
	require.NoError(t, err)

	f.store.DeleteUser(a.DBName, a.User.ID)
	f.store.DeleteUser(b.DBName, b.User.ID)
	f.store.Fail(a.DBName+"/EnsureIndexes", errors.New("disk full"))

	report, err := f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Users)
	require.Equal(t, []string{a.UserID}, report.Failed)
	require.Equal(t, 1, report.TenantCopiesCreated)
	require.Equal(t, 1, f.store.UserCount(b.DBName))
}

func TestReconcile_ListFailure(t *testing.T) {
	f := newFixture(t)
	f.store.Fail("ListUsers", errors.New("cursor killed"))

	_, err := f.reconcile.Reconcile(context.Background())
	require.ErrorIs(t, err, apperror.ErrPersistence)
}

func TestReconcile_PagesThroughAllUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admins := f.store.Users(adminDBName)
	for i := range reconcileBatchSize + 5 {
		_, err := admins.CreateUser(ctx, &model.User{
			Name:  "user",
			Email: fmt.Sprintf("user%d@example.com", i),
		})
		require.NoError(t, err)
	}

	report, err := f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	require.Equal(t, reconcileBatchSize+5, report.Users)
	require.Equal(t, reconcileBatchSize+5, report.InstancesCreated)
}
