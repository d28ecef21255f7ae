package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
)

// maxDatabaseNameAttempts bounds the candidate names tried for one user when
// the registry reports a database name collision.
const maxDatabaseNameAttempts = 3

// provisioner holds the steps shared by registration and reconciliation.
// Admin writes (user, registry entry) come first; tenant writes are
// idempotent so that an interrupted provisioning can be driven again.
type provisioner struct {
	databases tenancy.DatabaseProvider
	instances repository.InstanceRepository
	tenants   repository.TenantStore
	dbPrefix  string
	logger    *zerolog.Logger
}

// createInstance records the tenant database of userID in the registry. A
// taken name moves on to the next candidate; an existing entry is never
// overwritten.
func (p *provisioner) createInstance(ctx context.Context, userID string) (*model.Instance, error) {
	for attempt := range maxDatabaseNameAttempts {
		dbName := tenancy.CandidateDatabaseName(p.dbPrefix, userID, attempt)

		instance, err := p.instances.CreateInstance(ctx, &model.Instance{UserID: userID, DBName: dbName})
		if err == nil {
			return instance, nil
		}
		if !errors.Is(err, repository.ErrDuplicateDatabaseName) {
			return nil, apperror.Persistence("insert tenant instance", err)
		}

		p.logger.Warn().
			Str("user_id", userID).
			Str("db_name", dbName).
			Int("attempt", attempt).
			Msg("tenant database name already taken")
	}

	return nil, apperror.Persistence(
		"insert tenant instance",
		fmt.Errorf("%w after %d attempts", repository.ErrDuplicateDatabaseName, maxDatabaseNameAttempts),
	)
}

// provisionTenant prepares the tenant database and copies user into it under
// the same id. It reports whether the copy was created by this call.
func (p *provisioner) provisionTenant(ctx context.Context, user *model.User, dbName string) (bool, error) {
	db := p.databases.Database(dbName)

	if err := p.tenants.EnsureIndexes(ctx, db); err != nil {
		return false, apperror.Persistence("prepare tenant database", err)
	}

	created, err := p.tenants.Users(db).EnsureUser(ctx, user)
	if err != nil {
		return false, apperror.Persistence("copy user to tenant database", err)
	}

	return created, nil
}
