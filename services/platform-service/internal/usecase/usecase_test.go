package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository/inmem"
	"github.com/vasapolrittideah/kinext-api/shared/database"
	"github.com/vasapolrittideah/kinext-api/shared/logger"
	"github.com/vasapolrittideah/kinext-api/shared/validation"
)

const (
	adminDBName = "kinext-admin"
	testPrefix  = "kinext-"
)

// newManager returns a Manager whose client is never dialled; the in-memory
// repositories only use the database names.
func newManager(t *testing.T) *database.Manager {
	t.Helper()

	m := database.NewManager(database.Config{URI: "mongodb://127.0.0.1:1", AdminDBName: adminDBName}, logger.Nop())
	require.NoError(t, m.Open())
	t.Cleanup(func() { _ = m.Disconnect(context.Background()) })

	return m
}

type fixture struct {
	store     *inmem.Store
	databases *database.Manager
	register  RegistrationUsecase
	reconcile ReconcileUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := inmem.NewStore()
	databases := newManager(t)

	return &fixture{
		store:     store,
		databases: databases,
		register: NewRegistrationUsecase(
			databases,
			store.Users(adminDBName),
			store.Instances(adminDBName),
			store.Tenants(),
			validation.New(),
			testPrefix,
			logger.Nop(),
		),
		reconcile: NewReconcileUsecase(
			databases,
			store.Users(adminDBName),
			store.Instances(adminDBName),
			store.Tenants(),
			testPrefix,
			logger.Nop(),
		),
	}
}

func validParams() RegisterParams {
	return RegisterParams{
		Name:          "Ada Lovelace",
		Email:         "ada@example.com",
		Password:      "correct horse battery",
		TermsAccepted: true,
	}
}

func ptr[T any](v T) *T { return &v }
