package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

// DatabaseProvider hands out database handles over a shared connection pool.
type DatabaseProvider interface {
	Admin() *mongo.Database
	Database(name string) *mongo.Database
}

// InstanceFinder looks up tenant registry entries. It returns
// mongo.ErrNoDocuments when the user has no entry.
type InstanceFinder interface {
	GetInstanceByUserID(ctx context.Context, userID string) (*model.Instance, error)
}

// Resolver selects the database a request reads from and writes to.
type Resolver struct {
	databases DatabaseProvider
	instances InstanceFinder
	cache     RegistryCache
	strict    bool
	metrics   *Metrics
	logger    *zerolog.Logger
}

type ResolverOption func(*Resolver)

// WithRegistryCache puts cache in front of registry lookups.
func WithRegistryCache(cache RegistryCache) ResolverOption {
	return func(r *Resolver) { r.cache = cache }
}

// WithStrictResolution makes a missing registry entry fail with
// apperror.ErrTenantNotFound instead of falling back to the admin database.
func WithStrictResolution(strict bool) ResolverOption {
	return func(r *Resolver) { r.strict = strict }
}

// WithMetrics records resolution outcomes.
func WithMetrics(metrics *Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = metrics }
}

// NewResolver creates a Resolver.
func NewResolver(
	databases DatabaseProvider,
	instances InstanceFinder,
	logger *zerolog.Logger,
	opts ...ResolverOption,
) *Resolver {
	r := &Resolver{
		databases: databases,
		instances: instances,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the admin database for anonymous sessions and the tenant
// database recorded in the registry for authenticated ones. An authenticated
// user without a registry entry is served from the admin database unless
// strict resolution is enabled.
func (r *Resolver) Resolve(ctx context.Context, session *Session) (*mongo.Database, error) {
	if session == nil || session.UserID == "" {
		r.metrics.resolved(targetAdmin)
		return r.databases.Admin(), nil
	}

	dbName, err := r.lookup(ctx, session.UserID)
	switch {
	case err == nil:
		r.metrics.resolved(targetTenant)
		return r.databases.Database(dbName), nil

	case errors.Is(err, mongo.ErrNoDocuments):
		if r.strict {
			r.metrics.resolved(targetError)
			return nil, fmt.Errorf("%w: user %s", apperror.ErrTenantNotFound, session.UserID)
		}

		r.logger.Warn().
			Str("user_id", session.UserID).
			Msg("no tenant instance found for user, using admin database")
		r.metrics.resolved(targetFallback)
		return r.databases.Admin(), nil

	default:
		r.metrics.resolved(targetError)
		return nil, apperror.Persistence("lookup tenant instance", err)
	}
}

func (r *Resolver) lookup(ctx context.Context, userID string) (string, error) {
	if r.cache != nil {
		dbName, ok, err := r.cache.Get(ctx, userID)
		switch {
		case err != nil:
			r.metrics.cacheLookup("error")
			r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to read registry cache")
		case ok:
			r.metrics.cacheLookup("hit")
			return dbName, nil
		default:
			r.metrics.cacheLookup("miss")
		}
	}

	instance, err := r.instances.GetInstanceByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, userID, instance.DBName); err != nil {
			r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to write registry cache")
		}
	}

	return instance.DBName, nil
}
