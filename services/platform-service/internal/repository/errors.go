package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicatePhone        = errors.New("phone number already registered")
	ErrDuplicateInstance     = errors.New("user already has a tenant instance")
	ErrDuplicateDatabaseName = errors.New("tenant database name already taken")
	ErrDuplicateSlug         = errors.New("page slug already exists")
	ErrDuplicateContactEmail = errors.New("contact email already exists")
	ErrInvalidID             = errors.New("invalid object id")
)

// duplicateKeyOn reports whether err is a duplicate key error raised by the
// named unique index.
func duplicateKeyOn(err error, index string) bool {
	if !mongo.IsDuplicateKeyError(err) {
		return false
	}

	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorMessage("index: "+index+" dup key")
}
