// Package inmem provides in-memory implementations of the repositories,
// keyed by database name the way the MongoDB implementations are. It backs
// the usecase and handler tests.
package inmem

import (
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Store holds the documents of every database by name. It is safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	dbs      map[string]*database
	failures map[string]error
	once     map[string]error
}

type database struct {
	indexed      bool
	users        []*model.User
	instances    []*model.Instance
	pages        []*model.Page
	blocks       []*model.ContentBlock
	contacts     []*model.Contact
	interactions []*model.Interaction
	companies    []*model.Company
	jobs         []*model.Job
	applications []*model.Application
}

func NewStore() *Store {
	return &Store{
		dbs:      make(map[string]*database),
		failures: make(map[string]error),
		once:     make(map[string]error),
	}
}

// Fail makes every call of op return err. op is a repository method name,
// optionally scoped to one database as "<db>/<method>". A nil err clears the
// failure.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// FailOnce makes the next call of op return err.
func (s *Store) FailOnce(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.once[op] = err
}

// Indexed reports whether EnsureIndexes ran for the named database.
func (s *Store) Indexed(dbName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.dbs[dbName]
	return ok && db.indexed
}

// UserCount returns the number of users stored in the named database.
func (s *Store) UserCount(dbName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if db, ok := s.dbs[dbName]; ok {
		return len(db.users)
	}
	return 0
}

// InstanceCount returns the number of registry entries in the named database.
func (s *Store) InstanceCount(dbName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if db, ok := s.dbs[dbName]; ok {
		return len(db.instances)
	}
	return 0
}

// DeleteUser removes a user from the named database. It lets tests simulate
// a provisioning that stopped before the tenant copy was written.
func (s *Store) DeleteUser(dbName string, id bson.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.dbs[dbName]
	if !ok {
		return
	}
	for i, user := range db.users {
		if user.ID == id {
			db.users = append(db.users[:i], db.users[i+1:]...)
			return
		}
	}
}

// DeleteInstance removes the registry entry of userID from the named database.
func (s *Store) DeleteInstance(dbName, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.dbs[dbName]
	if !ok {
		return
	}
	for i, instance := range db.instances {
		if instance.UserID == userID {
			db.instances = append(db.instances[:i], db.instances[i+1:]...)
			return
		}
	}
}

// db returns the named database, creating it on first use. Callers hold s.mu.
func (s *Store) db(name string) *database {
	db, ok := s.dbs[name]
	if !ok {
		db = &database{}
		s.dbs[name] = db
	}
	return db
}

// failure returns the injected error for op on dbName. Callers hold s.mu.
func (s *Store) failure(dbName, op string) error {
	for _, key := range []string{dbName + "/" + op, op} {
		if err, ok := s.once[key]; ok {
			delete(s.once, key)
			return err
		}
	}
	if err, ok := s.failures[dbName+"/"+op]; ok {
		return err
	}
	return s.failures[op]
}

func page[T any](items []*T, limit, offset uint64) []*T {
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	out := make([]*T, 0)
	for i := offset; i < uint64(len(items)) && uint64(len(out)) < limit; i++ {
		item := *items[i]
		out = append(out, &item)
	}
	return out
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}
