package tenancy

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// DefaultDatabasePrefix is prepended to the hash when naming tenant databases.
const DefaultDatabasePrefix = "kinext-"

// Hash returns the 32-bit FNV-1a digest of id.
func Hash(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

// DatabaseName derives the tenant database name for a user id: the prefix
// followed by the digest as 8 lowercase hex characters.
//
// The name is only derived when a tenant is created. Resolution always goes
// through the registry.
func DatabaseName(prefix, id string) string {
	return fmt.Sprintf("%s%08x", prefix, Hash(id))
}

// CandidateDatabaseName returns the name to try on the given creation attempt.
// Attempt 0 is DatabaseName; later attempts rehash the id with a suffix so a
// digest collision with another tenant can be stepped over.
func CandidateDatabaseName(prefix, id string, attempt int) string {
	if attempt <= 0 {
		return DatabaseName(prefix, id)
	}
	return DatabaseName(prefix, id+":"+strconv.Itoa(attempt))
}
