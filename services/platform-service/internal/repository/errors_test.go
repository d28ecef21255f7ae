package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func duplicateKeyException(index string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: kinext-admin.users index: " + index + " dup key: { email: \"a@b.c\" }",
		}},
	}
}

func TestDuplicateKeyOn(t *testing.T) {
	require.True(t, duplicateKeyOn(duplicateKeyException(userEmailIndex), userEmailIndex))
	require.False(t, duplicateKeyOn(duplicateKeyException(userPhoneIndex), userEmailIndex))
	require.False(t, duplicateKeyOn(duplicateKeyException(contactEmailIndex), userEmailIndex))
	require.False(t, duplicateKeyOn(errors.New("boom"), userEmailIndex))
}

func TestMapUserWriteError(t *testing.T) {
	require.ErrorIs(t, mapUserWriteError(duplicateKeyException(userEmailIndex)), ErrDuplicateEmail)
	require.ErrorIs(t, mapUserWriteError(duplicateKeyException(userPhoneIndex)), ErrDuplicatePhone)

	other := errors.New("boom")
	require.Same(t, other, mapUserWriteError(other))
}
