package tenancy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/shared/database"
	"github.com/vasapolrittideah/kinext-api/shared/logger"
)

const adminDB = "kinext-admin"

type memInstanceFinder struct {
	mu    sync.Mutex
	byID  map[string]*model.Instance
	err   error
	calls int
}

func (f *memInstanceFinder) GetInstanceByUserID(_ context.Context, userID string) (*model.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	instance, ok := f.byID[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return instance, nil
}

type memRegistryCache struct {
	mu     sync.Mutex
	names  map[string]string
	getErr error
}

func (c *memRegistryCache) Get(_ context.Context, userID string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return "", false, c.getErr
	}
	name, ok := c.names[userID]
	return name, ok, nil
}

func (c *memRegistryCache) Set(_ context.Context, userID, dbName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names[userID] = dbName
	return nil
}

func newManager(t *testing.T) *database.Manager {
	t.Helper()

	m := database.NewManager(database.Config{URI: "mongodb://127.0.0.1:1", AdminDBName: adminDB}, logger.Nop())
	require.NoError(t, m.Open())
	t.Cleanup(func() { _ = m.Disconnect(context.Background()) })

	return m
}

func newFinder(entries ...*model.Instance) *memInstanceFinder {
	f := &memInstanceFinder{byID: map[string]*model.Instance{}}
	for _, e := range entries {
		f.byID[e.UserID] = e
	}
	return f
}

func TestResolve_AnonymousUsesAdmin(t *testing.T) {
	finder := newFinder()
	r := NewResolver(newManager(t), finder, logger.Nop())

	db, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, adminDB, db.Name())

	db, err = r.Resolve(context.Background(), &Session{})
	require.NoError(t, err)
	require.Equal(t, adminDB, db.Name())

	require.Zero(t, finder.calls)
}

func TestResolve_ProvisionedUserUsesRegistryName(t *testing.T) {
	userID := "507f1f77bcf86cd799439011"
	// The registry name deliberately differs from the hash-derived name: the
	// registry is authoritative.
	finder := newFinder(&model.Instance{UserID: userID, DBName: "kinext-0000beef"})
	r := NewResolver(newManager(t), finder, logger.Nop())

	db, err := r.Resolve(context.Background(), &Session{UserID: userID})
	require.NoError(t, err)
	require.Equal(t, "kinext-0000beef", db.Name())
	require.NotEqual(t, DatabaseName(DefaultDatabasePrefix, userID), db.Name())
}

func TestResolve_UnknownUserFallsBackToAdmin(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	r := NewResolver(newManager(t), newFinder(), logger.Nop(), WithMetrics(metrics))

	db, err := r.Resolve(context.Background(), &Session{UserID: "64b000000000000000000000"})
	require.NoError(t, err)
	require.Equal(t, adminDB, db.Name())
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.resolutions.WithLabelValues(targetFallback)))
}

func TestResolve_StrictModeRejectsUnknownUser(t *testing.T) {
	r := NewResolver(newManager(t), newFinder(), logger.Nop(), WithStrictResolution(true))

	db, err := r.Resolve(context.Background(), &Session{UserID: "64b000000000000000000000"})
	require.ErrorIs(t, err, apperror.ErrTenantNotFound)
	require.Nil(t, db)
}

func TestResolve_RegistryFailureIsPersistenceError(t *testing.T) {
	finder := newFinder()
	finder.err = errors.New("server selection timeout")
	r := NewResolver(newManager(t), finder, logger.Nop())

	_, err := r.Resolve(context.Background(), &Session{UserID: "u1"})
	require.ErrorIs(t, err, apperror.ErrPersistence)
}

func TestResolve_CacheReadThrough(t *testing.T) {
	userID := "507f1f77bcf86cd799439011"
	finder := newFinder(&model.Instance{UserID: userID, DBName: "kinext-12345678"})
	cache := &memRegistryCache{names: map[string]string{}}
	r := NewResolver(newManager(t), finder, logger.Nop(), WithRegistryCache(cache))

	for i := 0; i < 3; i++ {
		db, err := r.Resolve(context.Background(), &Session{UserID: userID})
		require.NoError(t, err)
		require.Equal(t, "kinext-12345678", db.Name())
	}

	require.Equal(t, 1, finder.calls)
	require.Equal(t, "kinext-12345678", cache.names[userID])
}

func TestResolve_CacheErrorFallsThroughToRegistry(t *testing.T) {
	userID := "507f1f77bcf86cd799439011"
	finder := newFinder(&model.Instance{UserID: userID, DBName: "kinext-12345678"})
	cache := &memRegistryCache{names: map[string]string{}, getErr: errors.New("redis down")}
	r := NewResolver(newManager(t), finder, logger.Nop(), WithRegistryCache(cache))

	db, err := r.Resolve(context.Background(), &Session{UserID: userID})
	require.NoError(t, err)
	require.Equal(t, "kinext-12345678", db.Name())
	require.Equal(t, 1, finder.calls)
}

func TestResolve_Concurrent(t *testing.T) {
	finder := newFinder(
		&model.Instance{UserID: "a", DBName: "kinext-aaaaaaaa"},
		&model.Instance{UserID: "b", DBName: "kinext-bbbbbbbb"},
	)
	r := NewResolver(newManager(t), finder, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			userID, want := "a", "kinext-aaaaaaaa"
			if i%2 == 1 {
				userID, want = "b", "kinext-bbbbbbbb"
			}

			db, err := r.Resolve(context.Background(), &Session{UserID: userID})
			if err != nil || db.Name() != want {
				t.Errorf("resolve %s: got %v, %v", userID, db, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, FromContext(ctx))

	ctx = NewContext(ctx, &Session{UserID: "u1", Role: "user"})
	require.Equal(t, "u1", FromContext(ctx).UserID)
}
