package security

import (
	"errors"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// LegacyBcryptCost is the bcrypt cost used by accounts imported from the
// previous platform. New hashes are always argon2id.
const LegacyBcryptCost = 12

var ErrUnsupportedHash = errors.New("unsupported password hash format")

// HashPassword hashes a plaintext password with argon2id and returns the
// encoded hash suitable for storage.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()

	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the stored hash. Both
// argon2id and legacy bcrypt hashes are accepted.
func VerifyPassword(password, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, "$argon2"):
		return argon2.VerifyEncoded([]byte(password), []byte(hash))
	case isBcryptHash(hash):
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, ErrUnsupportedHash
	}
}

// HashLegacyPassword produces a bcrypt hash with LegacyBcryptCost. It is only
// used to seed fixtures that mimic imported accounts.
func HashLegacyPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), LegacyBcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
