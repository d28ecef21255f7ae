package tenancy

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash_KnownVectors(t *testing.T) {
	require.Equal(t, uint32(0x811c9dc5), Hash(""))
	require.Equal(t, uint32(0xe40c292c), Hash("a"))
	require.Equal(t, uint32(0xbf9cf968), Hash("foobar"))
}

func TestHash_Deterministic(t *testing.T) {
	ids := []string{"", "507f1f77bcf86cd799439011", "user@example.com", "ñandú"}
	for _, id := range ids {
		require.Equal(t, Hash(id), Hash(id), id)
	}
}

func TestDatabaseName_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^kinext-[0-9a-f]{8}$`)

	require.Regexp(t, pattern, DatabaseName(DefaultDatabasePrefix, "507f1f77bcf86cd799439011"))
	require.Regexp(t, pattern, DatabaseName(DefaultDatabasePrefix, ""))
	require.Equal(t, "kinext-811c9dc5", DatabaseName(DefaultDatabasePrefix, ""))
	require.Equal(t, "acme-e40c292c", DatabaseName("acme-", "a"))
}

func TestCandidateDatabaseName(t *testing.T) {
	id := "507f1f77bcf86cd799439011"

	require.Equal(t, DatabaseName(DefaultDatabasePrefix, id), CandidateDatabaseName(DefaultDatabasePrefix, id, 0))

	seen := map[string]bool{}
	for attempt := 0; attempt < 3; attempt++ {
		name := CandidateDatabaseName(DefaultDatabasePrefix, id, attempt)
		require.Regexp(t, `^kinext-[0-9a-f]{8}$`, name)
		require.False(t, seen[name])
		seen[name] = true
	}
}
