package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var ErrNotConnected = errors.New("database manager is not connected")

// Config holds the MongoDB cluster settings shared by the admin database and
// every tenant database.
type Config struct {
	URI              string        `env:"MONGODB_URI"`
	AdminDBName      string        `env:"MONGODB_ADMIN_DB_NAME"     envDefault:"kinext-admin"`
	OperationTimeout time.Duration `env:"MONGODB_OPERATION_TIMEOUT" envDefault:"10s"`
}

// Validate checks if the database configuration is usable.
func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("missing MONGODB_URI environment variable")
	}
	if c.AdminDBName == "" {
		return fmt.Errorf("missing MONGODB_ADMIN_DB_NAME environment variable")
	}
	return nil
}

// Manager owns the single mongo.Client of the process. Tenant databases are
// logical views selected by name over the same connection pool; handles are
// cached per name.
//
// Lifecycle: NewManager -> Open or Connect -> Admin/Database -> Disconnect.
type Manager struct {
	cfg    Config
	logger *zerolog.Logger

	mu     sync.RWMutex
	client *mongo.Client
	dbs    map[string]*mongo.Database
}

// NewManager creates a Manager. No connection is made until Open or Connect.
func NewManager(cfg Config, logger *zerolog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger,
		dbs:    make(map[string]*mongo.Database),
	}
}

// Open creates the underlying client without contacting the server. The
// driver dials lazily on the first operation.
func (m *Manager) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return nil
	}

	opts := options.Client().ApplyURI(m.cfg.URI)
	if m.cfg.OperationTimeout > 0 {
		opts.SetTimeout(m.cfg.OperationTimeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return fmt.Errorf("failed to create mongo client: %w", err)
	}

	m.client = client
	return nil
}

// Connect opens the client and verifies the cluster is reachable.
func (m *Manager) Connect(ctx context.Context) error {
	if err := m.Open(); err != nil {
		return err
	}

	if err := m.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping mongo: %w", err)
	}

	m.logger.Info().Str("admin_db", m.cfg.AdminDBName).Msg("connected to MongoDB")
	return nil
}

// Ping checks connectivity with the primary.
func (m *Manager) Ping(ctx context.Context) error {
	client, err := m.currentClient()
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the connection pool and drops all cached handles.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.dbs = make(map[string]*mongo.Database)

	return err
}

// AdminName returns the name of the admin database.
func (m *Manager) AdminName() string {
	return m.cfg.AdminDBName
}

// Admin returns the admin database handle.
func (m *Manager) Admin() *mongo.Database {
	return m.Database(m.cfg.AdminDBName)
}

// Database returns the handle for the named database. It panics if the
// manager was never opened, which is a wiring bug rather than a runtime
// condition.
func (m *Manager) Database(name string) *mongo.Database {
	m.mu.RLock()
	db, ok := m.dbs[name]
	client := m.client
	m.mu.RUnlock()

	if ok {
		return db
	}
	if client == nil {
		panic(ErrNotConnected)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.dbs[name]; ok {
		return db
	}
	db = m.client.Database(name)
	m.dbs[name] = db

	return db
}

func (m *Manager) currentClient() (*mongo.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.client == nil {
		return nil, ErrNotConnected
	}
	return m.client, nil
}
